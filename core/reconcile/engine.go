package reconcile

import (
	"context"
	"fmt"
	"sort"
)

// Index is the archiver side of a run: identity to normalized snapshot.
// It is built once by BuildIndex and only read afterwards, so a single Index
// may be shared by any number of concurrent node passes.
type Index struct {
	snapshots  map[string]*Snapshot
	keys       []string
	rejected   map[string]struct{}
	rejects    []RecordError
	normalizer Normalizer
}

// BuildIndex loads and normalizes every archiver record.
// Records that fail normalization are kept out of the index and reported
// through Rejects; an error is returned only when the store cannot be read.
func BuildIndex(ctx context.Context, src Source, n Normalizer) (*Index, error) {
	idx := &Index{
		snapshots:  make(map[string]*Snapshot),
		rejected:   make(map[string]struct{}),
		normalizer: n,
	}

	err := src.Scan(ctx, func(row Row) error {
		snap, err := normalizeRow(n, row)
		if err != nil {
			if _, seen := idx.rejected[row.AccountID]; !seen {
				idx.rejected[row.AccountID] = struct{}{}
				idx.rejects = append(idx.rejects, RecordError{AccountID: row.AccountID, Err: err})
			}
			return nil
		}
		if prev, ok := idx.snapshots[snap.AccountID]; ok && prev.Timestamp > snap.Timestamp {
			return nil
		}
		idx.snapshots[snap.AccountID] = snap
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read archiver store %s: %w", src.Name(), err)
	}

	// An identity with one good and one bad record is still comparable.
	for id := range idx.snapshots {
		delete(idx.rejected, id)
	}

	idx.keys = make([]string, 0, len(idx.snapshots))
	for id := range idx.snapshots {
		idx.keys = append(idx.keys, id)
	}
	sort.Strings(idx.keys)

	return idx, nil
}

// Len returns the number of comparable archiver accounts.
func (idx *Index) Len() int {
	return len(idx.snapshots)
}

// Get returns the archiver snapshot for an identity.
func (idx *Index) Get(accountID string) (*Snapshot, bool) {
	s, ok := idx.snapshots[accountID]
	return s, ok
}

// Rejects returns the archiver records that failed normalization, one per identity.
func (idx *Index) Rejects() []RecordError {
	return idx.rejects
}

// Pass is the output of reconciling one node store against the archiver.
type Pass struct {
	// Node is the node name.
	Node string

	// Path is the node store location.
	Path string

	// Loaded is the number of node records that normalized successfully.
	Loaded int

	// Results holds one entry per identity seen in either store, ordered by
	// account id with the missing-in-node results last.
	Results []Result

	// Unparsable holds node records that failed normalization.
	Unparsable []RecordError

	// Err is set when the node could not be compared at all.
	Err error
}

// ReconcileNode compares one node store against the archiver index.
//
// It produces exactly one Result per identity found in the node store and,
// once the node stream is exhausted, one missing-in-node Result for every
// archiver identity the node never yielded.
func ReconcileNode(ctx context.Context, idx *Index, src Source) (*Pass, error) {
	node := src.Name()
	pass := &Pass{Node: node}

	replicas := make(map[string]*Snapshot)
	unparsable := make(map[string]struct{})

	err := src.Scan(ctx, func(row Row) error {
		snap, err := normalizeRow(idx.normalizer, row)
		if err != nil {
			pass.Unparsable = append(pass.Unparsable, RecordError{AccountID: row.AccountID, Node: node, Err: err})
			unparsable[row.AccountID] = struct{}{}
			return nil
		}
		if prev, ok := replicas[snap.AccountID]; ok && prev.Timestamp > snap.Timestamp {
			return nil
		}
		replicas[snap.AccountID] = snap
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read node store %s: %w", node, err)
	}
	pass.Loaded = len(replicas)

	ids := make([]string, 0, len(replicas))
	for id := range replicas {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	pass.Results = make([]Result, 0, len(ids))
	for _, id := range ids {
		if _, bad := idx.rejected[id]; bad {
			continue
		}
		replica := replicas[id]
		archived, ok := idx.snapshots[id]
		if !ok {
			pass.Results = append(pass.Results, Result{AccountID: id, Node: node, Replica: replica})
			continue
		}
		pass.Results = append(pass.Results, Result{
			AccountID:  id,
			Node:       node,
			Archiver:   archived,
			Replica:    replica,
			Mismatches: Compare(archived, replica),
		})
	}

	for _, id := range idx.keys {
		if _, ok := replicas[id]; ok {
			continue
		}
		if _, bad := unparsable[id]; bad {
			continue
		}
		pass.Results = append(pass.Results, Result{AccountID: id, Node: node, Archiver: idx.snapshots[id]})
	}

	return pass, nil
}

// Compare applies the field-level equality policy to two present snapshots.
//
// Nonces must both be decodable and equal. Balances are compared only when
// both sides have a balance field; an unknown balance never matches.
// Differing kinds are flagged on their own.
func Compare(archived, replica *Snapshot) Mismatch {
	var m Mismatch

	if archived.Kind != replica.Kind {
		m |= KindMismatch
	}

	if archived.Nonce == nil || replica.Nonce == nil || archived.Nonce.Cmp(replica.Nonce) != 0 {
		m |= NonceMismatch
	}

	if archived.BalanceApplicable() && replica.BalanceApplicable() {
		if archived.Balance == nil || replica.Balance == nil || archived.Balance.Cmp(replica.Balance) != 0 {
			m |= BalanceMismatch
		}
	}

	return m
}

// normalizeRow runs the normalizer and stamps the row identity onto the snapshot.
func normalizeRow(n Normalizer, row Row) (*Snapshot, error) {
	if row.AccountID == "" {
		return nil, &NormalizeError{Err: ErrEmptyAccountID}
	}
	snap, err := n.Normalize(row.Data)
	if err != nil {
		return nil, err
	}
	snap.AccountID = row.AccountID
	if snap.Timestamp == 0 {
		snap.Timestamp = row.Timestamp
	}
	return &snap, nil
}
