// Package datadrift reconciles a dataset index with the state of the
// filesystem it catalogs. An external comparison pass produces a sequence
// of mismatches (pkg/mismatch); this package applies a configurable
// subset of fix actions to repair them: registering unindexed datasets,
// synchronizing location sets, and retiring archived or orphaned data
// into quarantine (pkg/trash) under explicit safety invariants.
//
// Example usage:
//
//	resolver, err := paths.NewResolver("/data/collections")
//	if err != nil {
//	    return err
//	}
//
//	err = datadrift.FixMismatches(ctx, mismatches, idx,
//	    datadrift.WithUpdateLocations(true),
//	    datadrift.WithIndexMissing(true),
//	    datadrift.WithTrashArchived(true),
//	    datadrift.WithResolver(resolver),
//	)
//
// Fix actions mutate the shared index handle and the filesystem; the run
// is strictly sequential and stops at the first fatal error, leaving
// earlier mismatches' fixes committed. Callers needing batch atomicity
// must provide it externally, e.g. by re-running the discovery pass.
package datadrift
