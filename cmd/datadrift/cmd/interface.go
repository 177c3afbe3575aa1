// Package cmd implements the datadrift CLI subcommands.
package cmd

import "github.com/rs/zerolog"

// Application is the surface commands need from the application shell.
// It keeps commands decoupled from the app package's concrete types.
type Application interface {
	// Logger returns the configured application logger.
	Logger() *zerolog.Logger

	// Version information.
	Version() string
	Commit() string
	Date() string

	// CollectionRoot returns the configured dataset collection root.
	CollectionRoot() string

	// MinTrashAgeHours returns the configured trash grace period.
	MinTrashAgeHours() int
}
