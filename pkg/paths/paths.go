// Package paths maps canonical dataset locations to physical file paths
// and quarantine (trash) destinations.
//
// The trash layout is the one piece of persisted-state contract owned by
// the reconciliation engine: a trashed dataset mirrors its original path
// under a ".trash" directory beneath the collection root, so quarantined
// data stays locatable by the same derivation that produced it.
package paths

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/datadrift/pkg/constants"
	"github.com/agentstation/datadrift/pkg/errors"
)

// Resolver maps dataset locations to on-disk and quarantine paths.
type Resolver interface {
	// LocalPath converts a storage URI to a local filesystem path.
	LocalPath(uri string) (string, error)

	// DatasetPaths resolves a dataset's local path to its base path and
	// any sibling metadata files that accompany it.
	DatasetPaths(localPath string) (base string, siblings []string, err error)

	// TrashPath derives the quarantine destination for a base path.
	TrashPath(basePath string) (string, error)
}

// resolver resolves paths beneath a single collection root.
type resolver struct {
	root string
}

// NewResolver creates a Resolver for datasets stored beneath root.
func NewResolver(root string) (Resolver, error) {
	if root == "" {
		return nil, errors.NewValidationError("root", root, "collection root must not be empty")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.WrapValidation("root", err)
	}
	return &resolver{root: abs}, nil
}

// LocalPath converts a file:// URI to a local filesystem path.
func (r *resolver) LocalPath(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", errors.WrapValidation("uri", err)
	}
	if u.Scheme != "file" {
		return "", errors.NewValidationError("uri", uri, "only file:// URIs can be resolved locally")
	}
	if u.Path == "" {
		return "", errors.NewValidationError("uri", uri, "URI has no path component")
	}
	return filepath.FromSlash(u.Path), nil
}

// DatasetPaths resolves a dataset's local path to its base path plus any
// sibling metadata files. A sibling is a file in the same directory whose
// name is the dataset's name extended with a dotted suffix, e.g.
// "scene1.ga-md.yaml" next to "scene1".
func (r *resolver) DatasetPaths(localPath string) (string, []string, error) {
	base := filepath.Clean(localPath)

	entries, err := os.ReadDir(filepath.Dir(base))
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil, nil
		}
		return "", nil, errors.WrapIO("readdir", filepath.Dir(base), err)
	}

	name := filepath.Base(base)
	var siblings []string
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == name {
			continue
		}
		if strings.HasPrefix(entry.Name(), name+".") {
			siblings = append(siblings, filepath.Join(filepath.Dir(base), entry.Name()))
		}
	}
	return base, siblings, nil
}

// TrashPath derives the quarantine destination for a base path. The
// original path relative to the collection root is mirrored beneath the
// root's trash directory.
func (r *resolver) TrashPath(basePath string) (string, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return "", errors.WrapValidation("base_path", err)
	}

	rel, err := filepath.Rel(r.root, abs)
	if err != nil || rel == "." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || rel == ".." {
		return "", errors.NewValidationError("base_path", basePath, "path is not beneath the collection root")
	}

	return filepath.Join(r.root, constants.TrashDirName, rel), nil
}
