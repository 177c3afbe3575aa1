// Package constants defines shared constants used across the datadrift system.
package constants

import "time"

// Reconciliation defaults.
const (
	// DefaultMinTrashAge is the grace period before an archived dataset's
	// files may be moved to the trash. A dataset archived more recently
	// than this is skipped.
	DefaultMinTrashAge = 72 * time.Hour

	// TrashDirName is the quarantine directory created beneath a
	// collection root. Trashed datasets mirror their original path under
	// this directory so they remain locatable by the same derivation.
	TrashDirName = ".trash"
)

// Filesystem permissions.
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
