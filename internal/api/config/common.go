package config

// Config 配置主体
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	DB     DBConfig     `mapstructure:"database"`
	Log    LogConfig    `mapstructure:"log"`
	Auth   AuthConfig   `mapstructure:"auth"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Posts  PostsConfig  `mapstructure:"posts"`
	Cron   CronConfig   `mapstructure:"cron"`
}

// ServerConfig Server配置
// CORSOrigins lists the origins allowed to make credentialed cross-site requests.
// "*" allows any origin.
type ServerConfig struct {
	Port        int      `mapstructure:"port"`
	Mode        string   `mapstructure:"mode"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// DBConfig 数据库配置
type DBConfig struct {
	Driver      string `mapstructure:"driver"`
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`
	RemoteAddr string `mapstructure:"remote_addr"`
	Index      string `mapstructure:"index"`
}

// AuthConfig session cookie and credential settings.
// SessionCodec is "raw" (cookie carries the plain user id) or "jwt".
// PasswordScheme is "plain" (stored as entered) or "bcrypt".
type AuthConfig struct {
	CookieName     string   `mapstructure:"cookie_name"`
	SessionCodec   string   `mapstructure:"session_codec"`
	JWTSecret      string   `mapstructure:"jwt_secret"`
	JWTExpiration  int      `mapstructure:"jwt_expiration"`
	PasswordScheme string   `mapstructure:"password_scheme"`
	AdminRoleIDs   []uint64 `mapstructure:"admin_role_ids"`
	DefaultRoleID  uint64   `mapstructure:"default_role_id"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type PostsConfig struct {
	DefaultPageSize int  `mapstructure:"default_page_size"`
	SanitizeHTML    bool `mapstructure:"sanitize_html"`
}

// CronConfig 定时任务, empty schedule disables the job
type CronConfig struct {
	TagCleanup string `mapstructure:"tag_cleanup"`
}
