// Package memory provides an in-memory dataset index for testing and
// dry-run operations.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/agentstation/datadrift/pkg/errors"
	"github.com/agentstation/datadrift/pkg/index"
)

// entry holds a dataset and its recorded storage locations.
type entry struct {
	dataset   index.Dataset
	locations []string
}

// Index is an in-memory implementation of index.Index.
type Index struct {
	mu       sync.RWMutex
	entries  map[string]*entry
	readOnly bool
}

// Ensure Index satisfies the interface.
var _ index.Index = (*Index)(nil)

// New creates a new empty in-memory index.
func New() *Index {
	return &Index{
		entries: make(map[string]*entry),
	}
}

// NewReadOnly creates an in-memory index that rejects all mutations.
// Useful for asserting that a code path never touches the index.
func NewReadOnly() *Index {
	idx := New()
	idx.readOnly = true
	return idx
}

// AddDataset registers a dataset at the given storage URI.
func (i *Index) AddDataset(_ context.Context, dataset index.Dataset, uri string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.readOnly {
		return errors.ErrReadOnly
	}
	if _, ok := i.entries[dataset.ID]; ok {
		return errors.ErrAlreadyExists
	}

	i.entries[dataset.ID] = &entry{
		dataset:   dataset,
		locations: []string{uri},
	}
	return nil
}

// AddLocation records an additional storage URI for an indexed dataset.
// Adding a location that is already recorded is a no-op.
func (i *Index) AddLocation(_ context.Context, dataset index.Dataset, uri string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.readOnly {
		return errors.ErrReadOnly
	}
	e, ok := i.entries[dataset.ID]
	if !ok {
		return errors.NewNotFoundError("dataset", dataset.ID)
	}

	if !slices.Contains(e.locations, uri) {
		e.locations = append(e.locations, uri)
	}
	return nil
}

// RemoveLocation removes a storage URI from an indexed dataset.
// Removing a location that is not recorded is a no-op.
func (i *Index) RemoveLocation(_ context.Context, dataset index.Dataset, uri string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.readOnly {
		return errors.ErrReadOnly
	}
	e, ok := i.entries[dataset.ID]
	if !ok {
		return errors.NewNotFoundError("dataset", dataset.ID)
	}

	e.locations = slices.DeleteFunc(e.locations, func(loc string) bool {
		return loc == uri
	})
	return nil
}

// Preload seeds the index with a dataset and its locations, bypassing the
// read-only guard. Intended for test setup.
func (i *Index) Preload(dataset index.Dataset, uris ...string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.entries[dataset.ID] = &entry{
		dataset:   dataset,
		locations: slices.Clone(uris),
	}
}

// Contains reports whether a dataset is registered.
func (i *Index) Contains(datasetID string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()

	_, ok := i.entries[datasetID]
	return ok
}

// Locations returns the recorded storage URIs for a dataset.
func (i *Index) Locations(datasetID string) []string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	e, ok := i.entries[datasetID]
	if !ok {
		return nil
	}
	return slices.Clone(e.locations)
}

// Len returns the number of registered datasets.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return len(i.entries)
}

// Clear removes all entries (useful for testing).
func (i *Index) Clear() {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.entries = make(map[string]*entry)
}
