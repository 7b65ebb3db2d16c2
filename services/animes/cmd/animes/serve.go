package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/anime-registry/internal/platform/httpserver"
	"github.com/example/anime-registry/internal/platform/run"
	"github.com/example/anime-registry/services/animes/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		log := s.log
		defer func() { _ = log.Sync() }()

		a, err := app.New(cmd.Context(), s.app.ServiceName, s.service, log)
		if err != nil {
			log.Error("init app", zap.Error(err))
			return err
		}
		defer a.Close()

		log.Info("anime service configured",
			zap.String("env", s.app.Env),
			zap.String("db_driver", s.service.DBDriver),
			zap.String("credentials", s.service.CredentialsSource),
			zap.Bool("tokens", a.Tokens != nil),
			zap.Bool("events", a.Events != nil))

		srv := httpserver.New(httpserver.Options{Addr: s.app.HTTP.Addr, Handler: a.Router(s.app.HTTP.CORSOrigins)})
		runner := run.New(log)
		code := runner.WithSignals(func(context.Context) error {
			return srv.Start(log)
		}, srv.Shutdown)

		log.Info("exit", zap.Int("code", code))
		if code != 0 {
			return fmt.Errorf("server exited with code %d", code)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
