package datadrift

import (
	"context"
	"os"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/datadrift/pkg/errors"
	"github.com/agentstation/datadrift/pkg/index"
	"github.com/agentstation/datadrift/pkg/logging"
	"github.com/agentstation/datadrift/pkg/mismatch"
	"github.com/agentstation/datadrift/pkg/paths"
	"github.com/agentstation/datadrift/pkg/trash"
)

// DoIndexMissing registers a disk-only dataset into the index.
// Applicable only to DatasetNotIndexed mismatches; any other kind is a
// no-op.
func DoIndexMissing(ctx context.Context, m mismatch.Mismatch, idx index.Index) error {
	switch m := m.(type) {
	case mismatch.DatasetNotIndexed:
		return idx.AddDataset(ctx, m.Dataset(), m.URI())
	default:
		return nil
	}
}

// DoUpdateLocations keeps the index's location set for a dataset in sync
// with observed disk state, in both directions. Applicable to
// LocationNotIndexed and LocationMissingOnDisk mismatches; any other kind
// is a no-op.
func DoUpdateLocations(ctx context.Context, m mismatch.Mismatch, idx index.Index) error {
	switch m := m.(type) {
	case mismatch.LocationMissingOnDisk:
		return idx.RemoveLocation(ctx, m.Dataset(), m.URI())
	case mismatch.LocationNotIndexed:
		return idx.AddLocation(ctx, m.Dataset(), m.URI())
	default:
		return nil
	}
}

// DoTrashArchived retires the files of an archived-but-present dataset
// into quarantine. Applicable only to ArchivedDatasetOnDisk mismatches;
// any other kind is a no-op.
//
// Safety gates, in order:
//   - the dataset must have been archived more than minAge ago (a
//     dataset archived exactly at the boundary is old enough; strictly
//     younger is skipped, guarding against racing another process that
//     just archived it);
//   - the physical path must still exist (already absent means nothing
//     to do, not an error).
func DoTrashArchived(ctx context.Context, m mismatch.Mismatch, resolver paths.Resolver, trasher trash.Trasher, minAge time.Duration) error {
	switch m := m.(type) {
	case mismatch.ArchivedDatasetOnDisk:
		log := logging.Ctx(ctx)

		archived := m.Dataset().ArchivedTime
		if !m.Dataset().Archived() {
			log.Warn().
				Str("dataset_id", m.Dataset().ID).
				Msg("trash_archived.no_archive_time")
			return nil
		}
		if archived.After(utc.Now().Add(-minAge)) {
			log.Info().
				Str("dataset_id", m.Dataset().ID).
				Msg("trash_archived.too_young")
			return nil
		}

		localPath, err := resolver.LocalPath(m.URI())
		if err != nil {
			return err
		}
		if _, err := os.Stat(localPath); os.IsNotExist(err) {
			log.Warn().
				Str("path", localPath).
				Msg("trash_archived.not_exist")
			return nil
		}

		return trasher.Trash(localPath)
	default:
		return nil
	}
}

// DoTrashMissing retires the files of an unindexed dataset into
// quarantine, for operators who trust the index over the disk.
// Applicable only to DatasetNotIndexed mismatches; any other kind is a
// no-op.
func DoTrashMissing(ctx context.Context, m mismatch.Mismatch, resolver paths.Resolver, trasher trash.Trasher) error {
	switch m := m.(type) {
	case mismatch.DatasetNotIndexed:
		log := logging.Ctx(ctx)

		localPath, err := resolver.LocalPath(m.URI())
		if err != nil {
			return err
		}
		if _, err := os.Stat(localPath); os.IsNotExist(err) {
			log.Warn().
				Str("path", localPath).
				Msg("trash_missing.not_exist")
			return nil
		}

		return trasher.Trash(localPath)
	default:
		return nil
	}
}

// FixMismatches applies the enabled fix actions to each mismatch in
// sequence. Configuration is validated up front: enabling both
// index-missing and trash-missing is a configuration error raised before
// any mismatch is touched.
//
// Per-mismatch processing order is fixed: the found event, the pre-fix
// hook, location reconciliation, then index-missing or trash-missing,
// then trash-archived. Location reconciliation runs first so a dataset
// about to be indexed or trashed has an accurate location set recorded.
//
// Mismatches are processed strictly sequentially and independently; the
// first fatal error aborts the run, and fixes already applied for
// earlier mismatches stand. A canceled context aborts the run with
// errors.ErrCanceled before the next mismatch is touched.
func FixMismatches(ctx context.Context, mismatches []mismatch.Mismatch, idx index.Index, opts ...FixOption) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := newFixConfig(opts...)
	if err != nil {
		return err
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	log := cfg.logger
	ctx = logging.WithLogger(ctx, log)

	trasher := cfg.trasher
	if trasher == nil && (cfg.trashMissing || cfg.trashArchived) {
		trasher = trash.New(cfg.resolver, trash.WithLogger(log))
	}

	for _, m := range mismatches {
		// Cancellation is observed between mismatches, never mid-mismatch,
		// so an interrupted run leaves no half-applied fix behind.
		select {
		case <-ctx.Done():
			return errors.ErrCanceled
		default:
		}

		log.Info().Object("mismatch", m).Msg("mismatch.found")

		if cfg.preFix != nil {
			cfg.preFix(m)
		}

		if cfg.updateLocations {
			if err := DoUpdateLocations(ctx, m, idx); err != nil {
				return fixError(m, err)
			}
		}

		if cfg.indexMissing {
			if err := DoIndexMissing(ctx, m, idx); err != nil {
				return fixError(m, err)
			}
		} else if cfg.trashMissing {
			if err := DoTrashMissing(ctx, m, cfg.resolver, trasher); err != nil {
				return fixError(m, err)
			}
		}

		if cfg.trashArchived {
			log.Info().Object("mismatch", m).Msg("mismatch.trash")
			if err := DoTrashArchived(ctx, m, cfg.resolver, trasher, cfg.minTrashAge); err != nil {
				return fixError(m, err)
			}
		}
	}

	log.Info().Int("mismatches", len(mismatches)).Msg("fix.complete")
	return nil
}

// fixError wraps a fix action failure with the mismatch it was repairing.
func fixError(m mismatch.Mismatch, err error) error {
	return errors.NewFixError(string(m.Kind()), m.Dataset().ID, m.URI(), err)
}
