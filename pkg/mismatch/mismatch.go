// Package mismatch defines the closed set of discrepancies the
// reconciliation engine can repair. A mismatch pairs a dataset with the
// storage location implicated, tagged with the kind of drift observed
// between the index and the filesystem.
//
// The set is sealed: new kinds are added here, and dispatch over the set
// uses a type switch with a default no-op arm so unhandled kinds are
// inert rather than an error.
package mismatch

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agentstation/datadrift/pkg/errors"
	"github.com/agentstation/datadrift/pkg/index"
)

// Kind identifies a mismatch variant.
type Kind string

// The closed set of mismatch kinds.
const (
	// KindDatasetNotIndexed: a dataset exists on disk but is absent from
	// the index (an orphan).
	KindDatasetNotIndexed Kind = "dataset_not_indexed"

	// KindArchivedDatasetOnDisk: the index marks the dataset archived but
	// its files still occupy primary storage.
	KindArchivedDatasetOnDisk Kind = "archived_dataset_on_disk"

	// KindLocationNotIndexed: a storage URI for an indexed dataset is not
	// recorded in the index.
	KindLocationNotIndexed Kind = "location_not_indexed"

	// KindLocationMissingOnDisk: an indexed location no longer exists on
	// disk.
	KindLocationMissingOnDisk Kind = "location_missing_on_disk"
)

// Kinds returns all known mismatch kinds.
func Kinds() []Kind {
	return []Kind{
		KindDatasetNotIndexed,
		KindArchivedDatasetOnDisk,
		KindLocationNotIndexed,
		KindLocationMissingOnDisk,
	}
}

// ParseKind converts a kind string (as found in report files) to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	switch k {
	case KindDatasetNotIndexed, KindArchivedDatasetOnDisk,
		KindLocationNotIndexed, KindLocationMissingOnDisk:
		return k, nil
	default:
		return "", errors.NewValidationError("kind", s, "unknown mismatch kind")
	}
}

// Mismatch is a detected discrepancy between the index and the filesystem.
// Values are immutable, produced by an external comparison pass, and
// consumed exactly once by the reconciliation run.
type Mismatch interface {
	zerolog.LogObjectMarshaler
	fmt.Stringer

	// Kind returns the mismatch variant tag.
	Kind() Kind

	// Dataset returns the dataset implicated in this mismatch.
	Dataset() index.Dataset

	// URI returns the storage location implicated in this mismatch.
	URI() string

	// sealed keeps the variant set closed to this package.
	sealed()
}

// info carries the fields shared by every mismatch kind.
type info struct {
	dataset index.Dataset
	uri     string
}

func (i info) Dataset() index.Dataset { return i.dataset }
func (i info) URI() string            { return i.uri }
func (i info) sealed()                {}

// marshal writes the common structured fields for a mismatch event.
func marshal(m Mismatch, e *zerolog.Event) {
	e.Str("kind", string(m.Kind())).
		Str("dataset_id", m.Dataset().ID).
		Str("uri", m.URI())
	if t := m.Dataset().ArchivedTime; t != nil {
		e.Time("archived_time", t.Time)
	}
}

func format(m Mismatch) string {
	return fmt.Sprintf("%s(dataset=%s, uri=%s)", m.Kind(), m.Dataset().ID, m.URI())
}

// DatasetNotIndexed reports a dataset present on disk but absent from the
// index.
type DatasetNotIndexed struct{ info }

// NewDatasetNotIndexed creates a DatasetNotIndexed mismatch.
func NewDatasetNotIndexed(dataset index.Dataset, uri string) DatasetNotIndexed {
	return DatasetNotIndexed{info{dataset: dataset, uri: uri}}
}

// Kind returns KindDatasetNotIndexed.
func (DatasetNotIndexed) Kind() Kind { return KindDatasetNotIndexed }

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (m DatasetNotIndexed) MarshalZerologObject(e *zerolog.Event) { marshal(m, e) }

// String implements fmt.Stringer.
func (m DatasetNotIndexed) String() string { return format(m) }

// ArchivedDatasetOnDisk reports a dataset the index has archived whose
// files still occupy primary storage.
type ArchivedDatasetOnDisk struct{ info }

// NewArchivedDatasetOnDisk creates an ArchivedDatasetOnDisk mismatch.
func NewArchivedDatasetOnDisk(dataset index.Dataset, uri string) ArchivedDatasetOnDisk {
	return ArchivedDatasetOnDisk{info{dataset: dataset, uri: uri}}
}

// Kind returns KindArchivedDatasetOnDisk.
func (ArchivedDatasetOnDisk) Kind() Kind { return KindArchivedDatasetOnDisk }

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (m ArchivedDatasetOnDisk) MarshalZerologObject(e *zerolog.Event) { marshal(m, e) }

// String implements fmt.Stringer.
func (m ArchivedDatasetOnDisk) String() string { return format(m) }

// LocationNotIndexed reports a storage URI for an indexed dataset that the
// index has not recorded.
type LocationNotIndexed struct{ info }

// NewLocationNotIndexed creates a LocationNotIndexed mismatch.
func NewLocationNotIndexed(dataset index.Dataset, uri string) LocationNotIndexed {
	return LocationNotIndexed{info{dataset: dataset, uri: uri}}
}

// Kind returns KindLocationNotIndexed.
func (LocationNotIndexed) Kind() Kind { return KindLocationNotIndexed }

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (m LocationNotIndexed) MarshalZerologObject(e *zerolog.Event) { marshal(m, e) }

// String implements fmt.Stringer.
func (m LocationNotIndexed) String() string { return format(m) }

// LocationMissingOnDisk reports an indexed location that no longer exists
// on disk.
type LocationMissingOnDisk struct{ info }

// NewLocationMissingOnDisk creates a LocationMissingOnDisk mismatch.
func NewLocationMissingOnDisk(dataset index.Dataset, uri string) LocationMissingOnDisk {
	return LocationMissingOnDisk{info{dataset: dataset, uri: uri}}
}

// Kind returns KindLocationMissingOnDisk.
func (LocationMissingOnDisk) Kind() Kind { return KindLocationMissingOnDisk }

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (m LocationMissingOnDisk) MarshalZerologObject(e *zerolog.Event) { marshal(m, e) }

// String implements fmt.Stringer.
func (m LocationMissingOnDisk) String() string { return format(m) }
