package main

import (
	"fmt"
	"os"

	"github.com/qolzam/telar-blog/internal/pkg/log"
	platformconfig "github.com/qolzam/telar-blog/internal/platform/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "blog",
	Short: "Blog API server",
	Long: `Serves the blog read API and the view counter over HTTP and gRPC.

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, importCmd, viewsCmd)
}

// loadConfig reads the platform config and switches logging to a file when LOG_FILE is set.
// The returned close function flushes that file.
func loadConfig() (*platformconfig.Config, func(), error) {
	cfg, err := platformconfig.LoadFromEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load platform config: %w", err)
	}
	logFile := log.UseFile(log.FileOptions{
		Filename:   cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	logConfig(cfg)
	return cfg, func() { _ = logFile.Close() }, nil
}

// logConfig dumps the effective configuration, passwords masked, when DEBUG is on
func logConfig(cfg *platformconfig.Config) {
	if !cfg.Server.Debug {
		return
	}
	log.InfoStruct(cfg.Redacted())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
