package main

import (
	"fmt"

	"github.com/ananya/ideahub/internal/config"
	"github.com/ananya/ideahub/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort      int
	serveConfig    string
	serveUploadDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the student, mentor and admin dashboard endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and PORT)")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to a JSON config file")
	serveCmd.Flags().StringVar(&serveUploadDir, "upload-dir", "", "Directory for uploaded documents")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	// Precedence: flags, then environment, then the config file.
	cfg := config.FromEnv()
	if serveConfig != "" {
		fileCfg, err := config.LoadConfig(serveConfig)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if serveUploadDir != "" {
		cfg.UploadDir = serveUploadDir
	}
	cfg = cfg.MergeWithDefaults(config.Config{})

	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	srv, err := server.New(server.Config{
		Port:         cfg.Port,
		DatabaseURL:  cfg.DatabaseURL,
		APIKey:       cfg.APIKey,
		UploadDir:    cfg.UploadDir,
		TranslateURL: cfg.TranslateURL,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
