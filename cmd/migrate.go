package cmd

import (
	"errors"
	"fmt"
	"net"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"github.com/opendev-labs/auto-notion/internal/config"
)

// defaultMigrationsPath is the migrations source relative to the working directory.
const defaultMigrationsPath = "file://migrations"

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:       "migrate <up|down>",
		Short:     "Apply or roll back the content store schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := newCommandDeps(opts, true)
			if err != nil {
				return err
			}
			defer func() { _ = deps.Logger.Sync() }()

			m, err := migrate.New(source, migrateURL(deps.Config.Database))
			if err != nil {
				return fmt.Errorf("create migrate instance: %w", err)
			}
			defer func() { _, _ = m.Close() }()

			applied, err := runMigration(m, args[0])
			if err != nil {
				return fmt.Errorf("migration %s failed: %w", args[0], err)
			}
			if !applied {
				fmt.Fprintln(cmd.OutOrStdout(), "No migrations to apply")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Migration %s completed successfully\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", defaultMigrationsPath, "migrations source URL")
	return cmd
}

// migrateURL builds the postgres:// URL golang-migrate expects.
func migrateURL(db config.DatabaseConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(db.User, db.Password),
		Host:     net.JoinHostPort(db.Host, db.Port),
		Path:     "/" + db.DBName,
		RawQuery: url.Values{"sslmode": []string{db.SSLMode}}.Encode(),
	}
	return u.String()
}

// runMigration reports false when there was nothing to apply.
func runMigration(m *migrate.Migrate, direction string) (bool, error) {
	var err error
	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	}

	if errors.Is(err, migrate.ErrNoChange) {
		return false, nil
	}
	return err == nil, err
}
