package main

import (
	"path/filepath"
	"testing"

	"github.com/Satyam6458/HR-Management/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestDefaultMigrationsDir(t *testing.T) {
	assert.Equal(t, filepath.Join("migrations", "postgres"), defaultMigrationsDir(config.DriverPostgres))
	assert.Equal(t, filepath.Join("migrations", "mysql"), defaultMigrationsDir(config.DriverMySQL))
}

func TestNewRootCmd_Subcommands(t *testing.T) {
	cmd := newRootCmd(&config.Config{Database: config.DatabaseConfig{Driver: config.DriverMySQL}})

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"up", "down", "drop", "version"}, names)

	dir, err := cmd.PersistentFlags().GetString("dir")
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join("migrations", "mysql"), dir)
}

func TestNewRootCmd_RejectsArgs(t *testing.T) {
	cmd := newRootCmd(&config.Config{})
	cmd.SetArgs([]string{"up", "extra"})

	assert.Error(t, cmd.Execute())
}
