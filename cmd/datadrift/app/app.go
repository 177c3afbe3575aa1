// Package app provides the application context and dependency management
// for the datadrift CLI. It centralizes configuration, logging, and
// lifecycle management, following the dependency injection pattern.
package app

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/datadrift/pkg/errors"
)

// App represents the datadrift application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger
}

// New creates a new App instance with the given version information.
func New(version, commit, date string) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("app", "failed to load configuration", err)
	}
	app.config = config

	// Initialize logger
	logger := NewLogger(config)
	app.logger = &logger

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// CollectionRoot returns the configured dataset collection root.
func (a *App) CollectionRoot() string {
	return a.config.CollectionRoot
}

// MinTrashAgeHours returns the configured trash grace period in hours.
func (a *App) MinTrashAgeHours() int {
	return a.config.MinTrashAgeHours
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}
