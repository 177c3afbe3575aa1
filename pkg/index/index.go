// Package index defines the dataset index handle consumed by the
// reconciliation engine. The index is the catalog of known datasets and
// their storage locations; it is owned externally and this package only
// describes the mutation surface the engine invokes.
package index

import (
	"context"

	"github.com/agentstation/utc"
)

// Dataset is a dataset known to (or discovered for) the index.
// It is referenced by the engine, never owned by it.
type Dataset struct {
	// ID is the dataset's canonical identity.
	ID string `json:"id" yaml:"id"`

	// ArchivedTime is set when the dataset was logically retired in the
	// index. Nil means the dataset is active.
	ArchivedTime *utc.Time `json:"archived_time,omitempty" yaml:"archived_time,omitempty"`
}

// Archived reports whether the dataset has been logically retired.
func (d Dataset) Archived() bool {
	return d.ArchivedTime != nil
}

// Index is the mutation surface of the dataset/location catalog.
// Each call must either durably apply the mutation or return an error;
// no further consistency is assumed about the index's internals.
type Index interface {
	// AddDataset registers a dataset in the index at the given storage URI.
	AddDataset(ctx context.Context, dataset Dataset, uri string) error

	// AddLocation records an additional storage URI for an indexed dataset.
	AddLocation(ctx context.Context, dataset Dataset, uri string) error

	// RemoveLocation removes a storage URI from an indexed dataset.
	RemoveLocation(ctx context.Context, dataset Dataset, uri string) error
}
