package main

import (
	"github.com/qolzam/telar-blog/internal/pkg/log"
	"github.com/qolzam/telar-blog/internal/platform"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, closeLog, err := loadConfig()
		if err != nil {
			return err
		}
		defer closeLog()

		base, err := platform.NewBaseService(cmd.Context(), cfg, platform.DefaultServiceOptions())
		if err != nil {
			return err
		}
		defer base.Close()

		log.Info("migrations applied to %s store", cfg.Database.Type)
		return nil
	},
}
