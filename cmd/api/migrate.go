package main

import (
	"Inkwell/internal/api/config"
	"Inkwell/internal/pkg/database"
	"Inkwell/internal/pkg/logger"
	log "log/slog"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the schema and seed the default roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			logger.InitLogger(cfg.Log)

			db, err := database.NewGormDB(&cfg.DB)
			if err != nil {
				return err
			}
			if err = database.Migrate(db); err != nil {
				return err
			}
			log.Info("Migration finished", "driver", cfg.DB.Driver)
			return nil
		},
	}
}
