// Package report reads and writes mismatch report files. A report is the
// handoff artifact between the (external) comparison pass that discovers
// drift and the fix pass that repairs it: a YAML document listing each
// mismatch with its kind, dataset, and storage location.
package report

import (
	"os"
	"time"

	"github.com/agentstation/utc"
	"github.com/goccy/go-yaml"

	"github.com/agentstation/datadrift/pkg/constants"
	"github.com/agentstation/datadrift/pkg/errors"
	"github.com/agentstation/datadrift/pkg/index"
	"github.com/agentstation/datadrift/pkg/mismatch"
)

// row is one mismatch entry in a report file.
type row struct {
	Kind         string     `yaml:"kind"`
	DatasetID    string     `yaml:"dataset_id"`
	ArchivedTime *time.Time `yaml:"archived_time,omitempty"`
	URI          string     `yaml:"uri"`
}

// document is the report file layout.
type document struct {
	Mismatches []row `yaml:"mismatches"`
}

// Load reads a report file and returns its mismatch sequence in file
// order.
func Load(path string) ([]mismatch.Mismatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	ms, err := Parse(data)
	if err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return ms, nil
}

// Parse decodes a YAML report document into a mismatch sequence.
func Parse(data []byte) ([]mismatch.Mismatch, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	ms := make([]mismatch.Mismatch, 0, len(doc.Mismatches))
	for _, r := range doc.Mismatches {
		m, err := r.mismatch()
		if err != nil {
			return nil, err
		}
		ms = append(ms, m)
	}
	return ms, nil
}

// mismatch converts a report row to its mismatch value.
func (r row) mismatch() (mismatch.Mismatch, error) {
	kind, err := mismatch.ParseKind(r.Kind)
	if err != nil {
		return nil, err
	}
	if r.DatasetID == "" {
		return nil, errors.NewValidationError("dataset_id", r.DatasetID, "must not be empty")
	}
	if r.URI == "" {
		return nil, errors.NewValidationError("uri", r.URI, "must not be empty")
	}

	dataset := index.Dataset{ID: r.DatasetID}
	if r.ArchivedTime != nil {
		archived := utc.Time{Time: r.ArchivedTime.UTC()}
		dataset.ArchivedTime = &archived
	}

	switch kind {
	case mismatch.KindDatasetNotIndexed:
		return mismatch.NewDatasetNotIndexed(dataset, r.URI), nil
	case mismatch.KindArchivedDatasetOnDisk:
		if !dataset.Archived() {
			return nil, errors.NewValidationError("archived_time", nil,
				"required for archived_dataset_on_disk mismatches")
		}
		return mismatch.NewArchivedDatasetOnDisk(dataset, r.URI), nil
	case mismatch.KindLocationNotIndexed:
		return mismatch.NewLocationNotIndexed(dataset, r.URI), nil
	case mismatch.KindLocationMissingOnDisk:
		return mismatch.NewLocationMissingOnDisk(dataset, r.URI), nil
	default:
		return nil, errors.NewValidationError("kind", r.Kind, "unknown mismatch kind")
	}
}

// Marshal encodes a mismatch sequence as a YAML report document.
func Marshal(ms []mismatch.Mismatch) ([]byte, error) {
	doc := document{Mismatches: make([]row, 0, len(ms))}
	for _, m := range ms {
		r := row{
			Kind:      string(m.Kind()),
			DatasetID: m.Dataset().ID,
			URI:       m.URI(),
		}
		if t := m.Dataset().ArchivedTime; t != nil {
			utcTime := t.Time.UTC()
			r.ArchivedTime = &utcTime
		}
		doc.Mismatches = append(doc.Mismatches, r)
	}
	return yaml.Marshal(doc)
}

// Save writes a mismatch sequence to a report file.
func Save(path string, ms []mismatch.Mismatch) error {
	data, err := Marshal(ms)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
