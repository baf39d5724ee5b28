package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// setDefaults 每个键都要有默认值, otherwise AutomaticEnv cannot override it during Unmarshal
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.cors_origins", []string{})

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "file:db.sqlite3?_foreign_keys=on")
	v.SetDefault("database.max_idle", 5)
	v.SetDefault("database.max_open", 10)
	v.SetDefault("database.max_lifetime", 30)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.remote_addr", "")
	v.SetDefault("log.index", "logstash-inkwell")

	v.SetDefault("auth.cookie_name", "user_access_token")
	v.SetDefault("auth.session_codec", "raw")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.jwt_expiration", 24)
	v.SetDefault("auth.password_scheme", "plain")
	v.SetDefault("auth.admin_role_ids", []uint64{3, 4})
	v.SetDefault("auth.default_role_id", 1)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("posts.default_page_size", 3)
	v.SetDefault("posts.sanitize_html", false)

	v.SetDefault("cron.tag_cleanup", "")
}

// LoadConfig 从文件加载配置并填充到 Cfg. An empty path means ./configs/config.yaml;
// a missing file falls back to defaults and INKWELL_* environment variables.
func LoadConfig(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix("INKWELL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	Cfg = &cfg

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.DB.Driver)
	}
	switch c.Auth.SessionCodec {
	case "raw":
	case "jwt":
		if c.Auth.JWTSecret == "" {
			return errors.New("auth.jwt_secret is required when auth.session_codec is jwt")
		}
	default:
		return fmt.Errorf("unsupported session codec %q", c.Auth.SessionCodec)
	}
	switch c.Auth.PasswordScheme {
	case "plain", "bcrypt":
	default:
		return fmt.Errorf("unsupported password scheme %q", c.Auth.PasswordScheme)
	}
	if c.Posts.DefaultPageSize < 3 || c.Posts.DefaultPageSize > 100 {
		return fmt.Errorf("posts.default_page_size must be within [3, 100], got %d", c.Posts.DefaultPageSize)
	}
	return nil
}
