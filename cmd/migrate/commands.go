package main

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/Satyam6458/HR-Management/internal/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	var dir string

	rootCmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Apply database schema migrations",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&dir, "dir", defaultMigrationsDir(cfg.Database.Driver),
		"directory containing migration files")

	action := func(name string, run func(*migrate.Migrate) error) *cobra.Command {
		return &cobra.Command{
			Use:   name,
			Short: name + " migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := newMigrate(dir, cfg.Database.MigrateURL())
				if err != nil {
					return err
				}
				defer m.Close()

				if err := run(m); err != nil {
					return fmt.Errorf("migration %s failed: %w", name, err)
				}
				log.Printf("migration %s completed", name)
				return nil
			},
		}
	}

	rootCmd.AddCommand(
		action("up", up),
		action("down", down),
		action("drop", func(m *migrate.Migrate) error { return m.Drop() }),
		action("version", version),
	)
	return rootCmd
}

func defaultMigrationsDir(driver string) string {
	if driver == config.DriverMySQL {
		return filepath.Join("migrations", "mysql")
	}
	return filepath.Join("migrations", "postgres")
}

func newMigrate(dir, url string) (*migrate.Migrate, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve path for %s: %w", dir, err)
	}

	m, err := migrate.New("file://"+filepath.ToSlash(absDir), url)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return m, nil
}

func up(m *migrate.Migrate) error {
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func down(m *migrate.Migrate) error {
	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func version(m *migrate.Migrate) error {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Printf("no migration applied")
		return nil
	}
	if err != nil {
		return err
	}
	log.Printf("version=%d dirty=%t", v, dirty)
	return nil
}
