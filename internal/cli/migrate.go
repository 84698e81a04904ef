package cli

import (
	"errors"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"logyourbody/internal/adapter/postgres"
	"logyourbody/internal/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the postgres schema",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, _ []string) (err error) {
	cfg, err := config.Load(configPath, envName)
	if err != nil {
		return err
	}
	if cfg.Storage != "postgres" {
		return errors.New("migrate needs storage = \"postgres\"")
	}

	db, err := postgres.Open(cmd.Context(), cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, db.Close()) }()

	if err := db.Migrate(cmd.Context()); err != nil {
		return err
	}
	log.Infoln("schema up to date")
	return nil
}
