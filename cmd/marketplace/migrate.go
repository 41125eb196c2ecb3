package main

import (
	"github.com/fekuna/florist-marketplace-service/internal/pkg/database/migrations"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "apply or roll back the database schema",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "down", Usage: "roll back every migration"},
		},
		Action: func(c *cli.Context) error {
			cfg, appLogger, err := loadConfig()
			if err != nil {
				return err
			}
			defer appLogger.Sync()

			db, err := connectPostgres(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if c.Bool("down") {
				if err := migrations.Down(db.DB); err != nil {
					return err
				}
				appLogger.Info("Migrations rolled back", zap.String("db_name", cfg.Postgres.DBName))
				return nil
			}

			if err := migrations.Up(db.DB); err != nil {
				return err
			}
			appLogger.Info("Migrations applied", zap.String("db_name", cfg.Postgres.DBName))
			return nil
		},
	}
}
