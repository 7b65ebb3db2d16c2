package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/anime-registry/internal/platform/config"
	"github.com/example/anime-registry/internal/platform/logging"
	animesconfig "github.com/example/anime-registry/services/animes/internal/config"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:           "animes",
	Short:         "Anime registry HTTP service",
	Long:          `animes serves a small CRUD API for anime titles behind HTTP Basic authentication.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. It is called once by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml); environment variables take precedence")
}

type settings struct {
	app     config.AppConfig
	service animesconfig.Config
	log     *zap.Logger
}

// loadSettings reads the shared and service configuration and builds the
// logger.
func loadSettings() (settings, error) {
	v, err := config.New(cfgFile)
	if err != nil {
		return settings{}, err
	}
	app, err := config.Load(v)
	if err != nil {
		return settings{}, err
	}
	service, err := animesconfig.Load(v, app.IsProduction())
	if err != nil {
		return settings{}, err
	}
	log, err := logging.New(app.LogLevel, app.ServiceName)
	if err != nil {
		return settings{}, err
	}
	return settings{app: app, service: service, log: log}, nil
}
