package report_test

import (
	"errors"
	"math/big"

	"account-db-compare/core/reconcile"
)

func regular(id string, balance, nonce int64) *reconcile.Snapshot {
	return &reconcile.Snapshot{
		AccountID: id,
		Kind:      reconcile.KindRegular,
		Balance:   big.NewInt(balance),
		Nonce:     big.NewInt(nonce),
	}
}

func special(id string, nonce int64) *reconcile.Snapshot {
	return &reconcile.Snapshot{AccountID: id, Kind: reconcile.KindSpecial, Nonce: big.NewInt(nonce)}
}

func result(node string, archived, replica *reconcile.Snapshot) reconcile.Result {
	r := reconcile.Result{Node: node, Archiver: archived, Replica: replica}
	if archived != nil {
		r.AccountID = archived.AccountID
	} else {
		r.AccountID = replica.AccountID
	}
	if archived != nil && replica != nil {
		r.Mismatches = reconcile.Compare(archived, replica)
	}
	return r
}

func newRun(archived int, passes ...*reconcile.Pass) *reconcile.Run {
	agg := reconcile.NewAggregate()
	for _, p := range passes {
		agg.Merge(reconcile.FoldPass(p))
	}
	return &reconcile.Run{Archived: archived, Passes: passes, Stats: agg}
}

func samplePasses() []*reconcile.Pass {
	return []*reconcile.Pass{
		{
			Node: "node-1",
			Path: "/nodes/node-1/db/shardeum.sqlite",
			Results: []reconcile.Result{
				result("node-1", regular("aa", 10, 1), regular("aa", 10, 1)),
				result("node-1", regular("bb", 10, 5), regular("bb", 10, 6)),
				result("node-1", special("cc", 7), special("cc", 7)),
				result("node-1", regular("dd", 1, 1), nil),
				result("node-1", nil, regular("ee", 3, 3)),
			},
		},
		{
			Node: "node-2",
			Path: "/nodes/node-2/db/shardeum.sqlite",
			Err:  errors.New("file is not a database"),
		},
	}
}
