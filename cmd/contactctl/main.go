// Command contactctl inspects and cleans up workspace contacts from a shell.
package main

import (
	"fmt"
	"os"

	"brandlink-be/internal/bootstrap"
	"brandlink-be/internal/config"
	"brandlink-be/internal/pkg/logger"
	"brandlink-be/pkg/database"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

type rootOptions struct {
	sqlitePath string
	online     bool
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "contactctl",
		Short: "Find and merge duplicate contacts",
		Long: `contactctl works directly against the contacts database.

By default it uses DB_CONNECTION_STRING. Pass --sqlite to work on a local file
instead. Pass --online to take merge locks in Redis and publish events to NATS,
so merges from the shell coordinate with running API servers.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.sqlitePath, "sqlite", "", "path to a SQLite database file (migrated on open)")
	root.PersistentFlags().BoolVar(&opts.online, "online", false, "connect to NATS and Redis like the API server")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stdout")

	root.AddCommand(
		newDuplicatesCmd(opts),
		newMergeCmd(opts),
		newSeedCmd(opts),
	)
	return root
}

// openContainer wires the same services the API uses.
func openContainer(opts *rootOptions) (*bootstrap.Container, error) {
	cfg := config.Load()

	var db *gorm.DB
	var err error
	if opts.sqlitePath != "" {
		db, err = database.NewSQLiteDB(opts.sqlitePath)
	} else {
		db, err = database.NewGormDBFromDSN(cfg.Database.Connection, database.DefaultPoolConfig())
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	var log logger.ILogger = logger.NewNopLogger()
	if opts.verbose {
		log = logger.NewZapLogger(cfg.App.LogFilePath, false)
	}

	return bootstrap.NewContainerWithOptions(db, cfg, bootstrap.Options{
		Offline: !opts.online,
		Logger:  log,
	}), nil
}

func parseWorkspace(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("--workspace must be a UUID: %w", err)
	}
	return id, nil
}
