package datadrift

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/datadrift/pkg/constants"
	"github.com/agentstation/datadrift/pkg/errors"
	"github.com/agentstation/datadrift/pkg/logging"
	"github.com/agentstation/datadrift/pkg/mismatch"
	"github.com/agentstation/datadrift/pkg/paths"
	"github.com/agentstation/datadrift/pkg/trash"
)

// PreFixFunc is a side-effecting hook invoked for each mismatch before
// any fix action runs, for instrumentation or external bookkeeping.
// Its failures are not caught.
type PreFixFunc func(mismatch.Mismatch)

// fixConfig holds the configuration for a reconciliation run.
type fixConfig struct {
	indexMissing    bool
	trashMissing    bool
	trashArchived   bool
	updateLocations bool
	minTrashAge     time.Duration
	preFix          PreFixFunc
	resolver        paths.Resolver
	trasher         trash.Trasher
	logger          *zerolog.Logger
}

// FixOption configures a reconciliation run.
type FixOption func(*fixConfig) error

// newFixConfig applies options over the defaults.
func newFixConfig(opts ...FixOption) (*fixConfig, error) {
	cfg := &fixConfig{
		minTrashAge: constants.DefaultMinTrashAge,
		logger:      logging.Default(),
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// validate enforces the run's preconditions before any mismatch is
// processed.
func (c *fixConfig) validate() error {
	if c.indexMissing && c.trashMissing {
		return errors.NewConfigError("fix",
			"datasets missing from the index can either be indexed or trashed, but not both",
			errors.ErrConflictingRemedies)
	}
	if c.minTrashAge < 0 {
		return errors.NewValidationError("min_trash_age", c.minTrashAge, "must not be negative")
	}
	if (c.trashMissing || c.trashArchived) && c.resolver == nil {
		return errors.NewConfigError("fix",
			"trash remedies require a path resolver", nil)
	}
	return nil
}

// WithIndexMissing enables registering unindexed datasets into the index.
// Mutually exclusive with WithTrashMissing.
func WithIndexMissing(enabled bool) FixOption {
	return func(c *fixConfig) error {
		c.indexMissing = enabled
		return nil
	}
}

// WithTrashMissing enables retiring unindexed datasets' files into
// quarantine. Mutually exclusive with WithIndexMissing.
func WithTrashMissing(enabled bool) FixOption {
	return func(c *fixConfig) error {
		c.trashMissing = enabled
		return nil
	}
}

// WithTrashArchived enables retiring archived-but-present datasets' files
// into quarantine, subject to the minimum trash age.
func WithTrashArchived(enabled bool) FixOption {
	return func(c *fixConfig) error {
		c.trashArchived = enabled
		return nil
	}
}

// WithUpdateLocations enables bidirectional reconciliation of the index's
// location sets against observed disk state.
func WithUpdateLocations(enabled bool) FixOption {
	return func(c *fixConfig) error {
		c.updateLocations = enabled
		return nil
	}
}

// WithMinTrashAge sets the grace period an archived dataset must have
// aged past before its files may be trashed. Defaults to 72 hours.
func WithMinTrashAge(age time.Duration) FixOption {
	return func(c *fixConfig) error {
		c.minTrashAge = age
		return nil
	}
}

// WithPreFix sets a hook invoked for each mismatch before any fix action.
func WithPreFix(fn PreFixFunc) FixOption {
	return func(c *fixConfig) error {
		c.preFix = fn
		return nil
	}
}

// WithResolver sets the path resolver used to locate datasets on disk and
// derive quarantine destinations. Required when any trash remedy is
// enabled.
func WithResolver(resolver paths.Resolver) FixOption {
	return func(c *fixConfig) error {
		c.resolver = resolver
		return nil
	}
}

// WithTrasher overrides the Trasher used for retire operations. Defaults
// to a filesystem-backed trasher built from the resolver; pass trash.Nop
// for dry runs.
func WithTrasher(trasher trash.Trasher) FixOption {
	return func(c *fixConfig) error {
		c.trasher = trasher
		return nil
	}
}

// WithLogger sets the logger threaded through the run. Defaults to the
// process default logger.
func WithLogger(logger *zerolog.Logger) FixOption {
	return func(c *fixConfig) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}
