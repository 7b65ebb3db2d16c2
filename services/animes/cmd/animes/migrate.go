package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/anime-registry/services/animes/internal/app"
)

var seedUsersFile string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema and optionally seed users",
	Long: `Create the anime and users tables of the configured SQL driver (DB_DRIVER=postgres
or sqlite). With --seed-users, users from the given YAML file are inserted unless
a user with the same username already exists.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		defer func() { _ = s.log.Sync() }()

		if err := app.Migrate(cmd.Context(), s.service, seedUsersFile, s.log); err != nil {
			s.log.Error("migrate", zap.Error(err))
			return err
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&seedUsersFile, "seed-users", "", "YAML file with users to insert")
	rootCmd.AddCommand(migrateCmd)
}
