package main

import (
	"fmt"
	"time"

	"github.com/fekuna/florist-marketplace-service/internal/auth"
	listingRepoPkg "github.com/fekuna/florist-marketplace-service/internal/listing/repository"
	"github.com/fekuna/florist-marketplace-service/internal/seed"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "load demo listings and print development tokens",
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "token-ttl", Value: 7 * 24 * time.Hour, Usage: "lifetime of the printed tokens"},
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

			n, err := seed.Run(c.Context, listingRepoPkg.NewPGRepository(db), time.Now().UTC())
			if err != nil {
				return err
			}
			appLogger.Info("Seeded listings", zap.Int("count", n))

			secret := []byte(cfg.JWT.SecretKey)
			for _, u := range seed.Users() {
				u := u
				token, err := auth.SignToken(secret, &u, c.Duration("token-ttl"))
				if err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "%-10s %-8s %s\n", u.UserID, u.Role, token)
			}
			return nil
		},
	}
}
