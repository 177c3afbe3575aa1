package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/datadrift"
	"github.com/agentstation/datadrift/internal/report"
	"github.com/agentstation/datadrift/pkg/errors"
	"github.com/agentstation/datadrift/pkg/index/memory"
	"github.com/agentstation/datadrift/pkg/mismatch"
	"github.com/agentstation/datadrift/pkg/paths"
	"github.com/agentstation/datadrift/pkg/trash"
)

// fixFlags holds the fix command's flag values.
type fixFlags struct {
	indexMissing    bool
	trashMissing    bool
	trashArchived   bool
	updateLocations bool
	minTrashAge     time.Duration
	collectionRoot  string
	dryRun          bool
}

// NewFixCommand creates the fix command using the app context.
func NewFixCommand(app Application) *cobra.Command {
	flags := &fixFlags{}

	cmd := &cobra.Command{
		Use:   "fix <report.yaml>",
		Short: "Apply fix actions to a mismatch report",
		Args:  cobra.ExactArgs(1),
		Long: `Fix applies the enabled remedies to each mismatch in a report file
produced by a comparison pass:

  --update-locations  reconcile the index's location records with disk
  --index-missing     register datasets found on disk but not indexed
  --trash-missing     retire unindexed datasets' files into quarantine
  --trash-archived    retire archived datasets' files into quarantine

--index-missing and --trash-missing are mutually exclusive: an orphan is
either trusted (indexed) or not (trashed), never both.

Trash remedies act on the real filesystem beneath --collection-root.
Index remedies are applied to an in-process index view assembled from
the report; integrate a live catalog through the library's index.Index
interface. Use --dry to log intended trash moves without touching
anything.`,
		Example: `  datadrift fix mismatches.yaml --update-locations --index-missing
  datadrift fix mismatches.yaml --trash-archived --collection-root /data/collections
  datadrift fix mismatches.yaml --trash-archived --min-trash-age 168h
  datadrift fix mismatches.yaml --trash-missing --dry`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, app, flags, args[0])
		},
	}

	cmd.Flags().BoolVar(&flags.indexMissing, "index-missing", false, "register unindexed datasets into the index")
	cmd.Flags().BoolVar(&flags.trashMissing, "trash-missing", false, "retire unindexed datasets' files (exclusive with --index-missing)")
	cmd.Flags().BoolVar(&flags.trashArchived, "trash-archived", false, "retire archived datasets' files")
	cmd.Flags().BoolVar(&flags.updateLocations, "update-locations", false, "reconcile index location records with disk state")
	cmd.Flags().DurationVar(&flags.minTrashAge, "min-trash-age", time.Duration(app.MinTrashAgeHours())*time.Hour, "grace period before archived data may be trashed")
	cmd.Flags().StringVar(&flags.collectionRoot, "collection-root", app.CollectionRoot(), "root directory the datasets (and the trash) live beneath")
	cmd.Flags().BoolVar(&flags.dryRun, "dry", false, "log intended trash moves without performing them")

	return cmd
}

// runFix executes the fix command.
func runFix(cmd *cobra.Command, app Application, flags *fixFlags, reportPath string) error {
	ctx := cmd.Context()
	logger := app.Logger()

	mismatches, err := report.Load(reportPath)
	if err != nil {
		return err
	}
	logger.Info().
		Int("mismatches", len(mismatches)).
		Str("report", reportPath).
		Msg("report loaded")

	opts := []datadrift.FixOption{
		datadrift.WithIndexMissing(flags.indexMissing),
		datadrift.WithTrashMissing(flags.trashMissing),
		datadrift.WithTrashArchived(flags.trashArchived),
		datadrift.WithUpdateLocations(flags.updateLocations),
		datadrift.WithMinTrashAge(flags.minTrashAge),
		datadrift.WithLogger(logger),
	}

	if flags.trashMissing || flags.trashArchived {
		if flags.collectionRoot == "" {
			return errors.NewConfigError("fix",
				"trash remedies require --collection-root (or collection_root in config)", nil)
		}
		resolver, err := paths.NewResolver(flags.collectionRoot)
		if err != nil {
			return err
		}
		opts = append(opts, datadrift.WithResolver(resolver))
		if flags.dryRun {
			opts = append(opts, datadrift.WithTrasher(trash.Nop(resolver, logger)))
		}
	}

	return datadrift.FixMismatches(ctx, mismatches, indexView(mismatches), opts...)
}

// indexView assembles an in-process index seeded with every dataset the
// report already considers indexed. Datasets reported as not indexed are
// left out, so index-missing registration behaves as it would against a
// live catalog.
func indexView(mismatches []mismatch.Mismatch) *memory.Index {
	idx := memory.New()
	for _, m := range mismatches {
		if m.Kind() == mismatch.KindDatasetNotIndexed {
			continue
		}
		if !idx.Contains(m.Dataset().ID) {
			idx.Preload(m.Dataset())
		}
	}

	// Locations the index is missing on disk must be present in the view
	// for their removal to be observable.
	for _, m := range mismatches {
		if m.Kind() == mismatch.KindLocationMissingOnDisk {
			_ = idx.AddLocation(context.Background(), m.Dataset(), m.URI())
		}
	}
	return idx
}
