// Package reconcile compares the account state held by one authoritative
// archiver store against any number of node replica stores.
//
// The package is store- and schema-agnostic: raw rows come from a Source and
// are turned into canonical snapshots by a Normalizer supplied by the caller
// (see feature/account for the concrete account schemas and SQL readers).
//
// # Architecture
//
// 1. Index: the archiver records, normalized once and keyed by account id.
//    Built by BuildIndex and read-only afterwards.
//
// 2. Pass: ReconcileNode streams one node store, joins it against the index
//    and emits one Result per identity, plus a missing-in-node Result for every
//    archiver identity the node never yielded.
//
// 3. Aggregate: Fold/FoldPass reduce results into global and per-node Stats.
//    Aggregates merge associatively, so passes can be folded independently.
//
// 4. Pool: RunNodes runs one pass per node on a bounded errgroup and merges
//    the per-node aggregates in node order.
//
// # Equality
//
// Balances and nonces are arbitrary-precision integers. Two snapshots match
// when their nonces are both known and equal and, for Regular accounts, their
// balances are both known and equal. Special accounts have no balance and are
// compared on nonce alone.
//
// # Usage Example
//
//	idx, err := reconcile.BuildIndex(ctx, archiverSource, account.NewNormalizer())
//	if err != nil {
//	    return err
//	}
//	run, err := reconcile.RunNodes(ctx, idx, nodes, 4)
//	fmt.Printf("match rate: %.2f%%\n", run.Stats.Global.MatchRate()*100)
package reconcile
