// Package trash implements the retire operation: relocating a dataset's
// on-disk footprint into a quarantine directory instead of deleting it.
// Nothing in this package ever removes bytes; permanent deletion is a
// separate, human-driven step against the quarantine area.
package trash

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/agentstation/datadrift/pkg/constants"
	"github.com/agentstation/datadrift/pkg/errors"
	"github.com/agentstation/datadrift/pkg/logging"
	"github.com/agentstation/datadrift/pkg/paths"
)

// Trasher retires a dataset's files into quarantine.
type Trasher interface {
	// Trash moves the dataset at localPath (and its sibling metadata
	// files) to the quarantine destination derived for it.
	Trash(localPath string) error
}

// trasher is the default filesystem-backed Trasher.
type trasher struct {
	resolver paths.Resolver
	logger   *zerolog.Logger
}

// Option configures a Trasher.
type Option func(*trasher)

// WithLogger sets the logger used for trash events.
func WithLogger(logger *zerolog.Logger) Option {
	return func(t *trasher) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// New creates a Trasher that derives quarantine destinations with the
// given resolver.
func New(resolver paths.Resolver, opts ...Option) Trasher {
	t := &trasher{
		resolver: resolver,
		logger:   logging.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Trash relocates the dataset at localPath into quarantine.
//
// The move is a single os.Rename per path: atomic on one volume, and the
// quarantine directory is presumed to live on the same volume as the
// data. A rename failure is returned as-is with no cleanup, since either
// the old path or the new path exists afterwards.
//
// An occupied quarantine destination is an error: nothing is overwritten
// and the filesystem is left untouched.
func (t *trasher) Trash(localPath string) error {
	base, siblings, err := t.resolver.DatasetPaths(localPath)
	if err != nil {
		return err
	}

	trashPath, err := t.resolver.TrashPath(base)
	if err != nil {
		return err
	}

	// Refuse to clobber an earlier quarantined copy.
	if _, err := os.Stat(trashPath); err == nil {
		return errors.NewIOError("rename", trashPath, errors.ErrAlreadyExists)
	}

	if parent := filepath.Dir(trashPath); !exists(parent) {
		if err := os.MkdirAll(parent, constants.DirPermissions); err != nil {
			return errors.WrapIO("mkdir", parent, err)
		}
	}

	t.logger.Info().
		Str("base_path", base).
		Str("trash_path", trashPath).
		Msg("trashing")

	if err := os.Rename(base, trashPath); err != nil {
		return errors.WrapIO("rename", base, err)
	}

	// Sibling metadata files ride along into the same quarantine
	// directory, each via its own atomic rename.
	for _, sibling := range siblings {
		dst := filepath.Join(filepath.Dir(trashPath), filepath.Base(sibling))
		if _, err := os.Stat(dst); err == nil {
			return errors.NewIOError("rename", dst, errors.ErrAlreadyExists)
		}
		if err := os.Rename(sibling, dst); err != nil {
			return errors.WrapIO("rename", sibling, err)
		}
	}

	return nil
}

// exists reports whether a path exists.
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// nop is a Trasher that logs the move it would make and does nothing.
type nop struct {
	resolver paths.Resolver
	logger   *zerolog.Logger
}

// Nop creates a Trasher for dry runs: it resolves and logs the intended
// quarantine move without touching the filesystem.
func Nop(resolver paths.Resolver, logger *zerolog.Logger) Trasher {
	if logger == nil {
		logger = logging.Default()
	}
	return &nop{resolver: resolver, logger: logger}
}

// Trash logs the move that a real Trasher would perform.
func (n *nop) Trash(localPath string) error {
	base, _, err := n.resolver.DatasetPaths(localPath)
	if err != nil {
		return err
	}
	trashPath, err := n.resolver.TrashPath(base)
	if err != nil {
		return err
	}

	n.logger.Info().
		Str("base_path", base).
		Str("trash_path", trashPath).
		Bool("dry_run", true).
		Msg("trashing")
	return nil
}
