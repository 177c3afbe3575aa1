package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/datadrift/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestConfigError(t *testing.T) {
	t.Run("with component", func(t *testing.T) {
		err := &pkgerrors.ConfigError{
			Component: "fix",
			Message:   "index_missing and trash_missing are mutually exclusive",
		}
		assert.Equal(t, "configuration error in fix: index_missing and trash_missing are mutually exclusive", err.Error())
	})

	t.Run("without component", func(t *testing.T) {
		err := &pkgerrors.ConfigError{Message: "invalid setup"}
		assert.Equal(t, "configuration error: invalid setup", err.Error())
	})

	t.Run("unwraps to sentinel", func(t *testing.T) {
		err := pkgerrors.NewConfigError("fix", "conflicting flags", pkgerrors.ErrConflictingRemedies)
		assert.True(t, errors.Is(err, pkgerrors.ErrConflictingRemedies))
		assert.True(t, pkgerrors.IsConflictingRemedies(err))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "min_trash_age_hours",
			Message: "must not be negative",
		}
		assert.Equal(t, "validation failed for field min_trash_age_hours: must not be negative", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "invalid configuration"}
		assert.Equal(t, "validation failed: invalid configuration", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewValidationError("min_trash_age_hours", -1, "must not be negative")
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestNotFoundError(t *testing.T) {
	err := pkgerrors.NewNotFoundError("dataset", "5f9a3c2e")
	assert.Equal(t, "dataset with ID 5f9a3c2e not found", err.Error())
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestIOError(t *testing.T) {
	base := errors.New("permission denied")
	err := pkgerrors.NewIOError("rename", "/data/ls8/scene1", base)
	assert.Equal(t, "io error during rename on /data/ls8/scene1: permission denied", err.Error())
	assert.True(t, errors.Is(err, base))
}

func TestIndexError(t *testing.T) {
	base := errors.New("connection refused")

	t.Run("with uri", func(t *testing.T) {
		err := pkgerrors.NewIndexError("add_dataset", "d1", "file:///data/d1", base)
		assert.Equal(t, "index error during add_dataset for dataset d1 at file:///data/d1: connection refused", err.Error())
		assert.True(t, errors.Is(err, base))
	})

	t.Run("without uri", func(t *testing.T) {
		err := pkgerrors.NewIndexError("remove_location", "d1", "", base)
		assert.Equal(t, "index error during remove_location for dataset d1: connection refused", err.Error())
	})
}

func TestFixError(t *testing.T) {
	base := pkgerrors.NewIndexError("add_dataset", "d2", "file:///data/d2", errors.New("boom"))
	err := pkgerrors.NewFixError("dataset_not_indexed", "d2", "file:///data/d2", base)

	require.Contains(t, err.Error(), "dataset_not_indexed")
	require.Contains(t, err.Error(), "d2")

	var indexErr *pkgerrors.IndexError
	assert.True(t, errors.As(err, &indexErr))
}

func TestParseError(t *testing.T) {
	t.Run("with file", func(t *testing.T) {
		err := pkgerrors.NewParseError("yaml", "mismatches.yaml", "unexpected node", nil)
		assert.Equal(t, "failed to parse yaml file mismatches.yaml: unexpected node", err.Error())
	})

	t.Run("wrap helper", func(t *testing.T) {
		base := errors.New("bad indent")
		err := pkgerrors.WrapParse("yaml", "report.yaml", base)
		require.Error(t, err)
		assert.True(t, errors.Is(err, base))
	})

	t.Run("wrap nil", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapParse("yaml", "report.yaml", nil))
	})
}

func TestWrapHelpers(t *testing.T) {
	t.Run("nil passthrough", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapIO("rename", "/tmp/x", nil))
		assert.NoError(t, pkgerrors.WrapValidation("field", nil))
	})

	t.Run("wrap io", func(t *testing.T) {
		base := errors.New("cross-device link")
		err := pkgerrors.WrapIO("rename", "/tmp/x", base)
		var ioErr *pkgerrors.IOError
		require.True(t, errors.As(err, &ioErr))
		assert.Equal(t, "rename", ioErr.Operation)
	})
}
