package report_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/datadrift/internal/report"
	"github.com/agentstation/datadrift/pkg/errors"
	"github.com/agentstation/datadrift/pkg/index"
	"github.com/agentstation/datadrift/pkg/mismatch"
)

const sampleReport = `mismatches:
  - kind: dataset_not_indexed
    dataset_id: d1
    uri: file:///data/ls8/scene1
  - kind: archived_dataset_on_disk
    dataset_id: d2
    archived_time: 2025-03-01T12:00:00Z
    uri: file:///data/ls8/scene2
  - kind: location_not_indexed
    dataset_id: d3
    uri: file:///archive/ls8/scene3
  - kind: location_missing_on_disk
    dataset_id: d4
    uri: file:///data/ls8/scene4
`

func TestParse(t *testing.T) {
	ms, err := report.Parse([]byte(sampleReport))
	require.NoError(t, err)
	require.Len(t, ms, 4)

	assert.Equal(t, mismatch.KindDatasetNotIndexed, ms[0].Kind())
	assert.Equal(t, "d1", ms[0].Dataset().ID)
	assert.Equal(t, "file:///data/ls8/scene1", ms[0].URI())

	assert.Equal(t, mismatch.KindArchivedDatasetOnDisk, ms[1].Kind())
	require.NotNil(t, ms[1].Dataset().ArchivedTime)
	assert.Equal(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), ms[1].Dataset().ArchivedTime.Time)

	assert.Equal(t, mismatch.KindLocationNotIndexed, ms[2].Kind())
	assert.Equal(t, mismatch.KindLocationMissingOnDisk, ms[3].Kind())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unknown kind", "mismatches:\n  - kind: bogus\n    dataset_id: d1\n    uri: file:///x\n"},
		{"missing dataset id", "mismatches:\n  - kind: dataset_not_indexed\n    uri: file:///x\n"},
		{"missing uri", "mismatches:\n  - kind: dataset_not_indexed\n    dataset_id: d1\n"},
		{"archived without timestamp", "mismatches:\n  - kind: archived_dataset_on_disk\n    dataset_id: d1\n    uri: file:///x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := report.Parse([]byte(tt.in))
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mismatches.yaml")

	t.Run("missing file", func(t *testing.T) {
		_, err := report.Load(path)
		require.Error(t, err)
		var ioErr *errors.IOError
		assert.ErrorAs(t, err, &ioErr)
	})

	t.Run("invalid yaml surfaces as parse error", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("mismatches: [not: {valid"), 0644))
		_, err := report.Load(bad)
		require.Error(t, err)
		var parseErr *errors.ParseError
		assert.ErrorAs(t, err, &parseErr)
	})
}

func TestRoundTrip(t *testing.T) {
	archived := utc.Time{Time: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	original := []mismatch.Mismatch{
		mismatch.NewDatasetNotIndexed(index.Dataset{ID: "d1"}, "file:///data/d1"),
		mismatch.NewArchivedDatasetOnDisk(index.Dataset{ID: "d2", ArchivedTime: &archived}, "file:///data/d2"),
		mismatch.NewLocationMissingOnDisk(index.Dataset{ID: "d3"}, "file:///gone/d3"),
	}

	path := filepath.Join(t.TempDir(), "mismatches.yaml")
	require.NoError(t, report.Save(path, original))

	loaded, err := report.Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}
