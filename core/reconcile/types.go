package reconcile

import (
	"math/big"
	"strings"
)

// Kind identifies which account sub-schema produced a snapshot.
type Kind int

const (
	// KindRegular is an account carrying tagged balance and nonce values.
	KindRegular Kind = iota
	// KindSpecial is a network/system account with a plain decimal nonce and no balance.
	KindSpecial
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindRegular:
		return "regular"
	case KindSpecial:
		return "special"
	default:
		return "unknown"
	}
}

// Row is one raw record as yielded by a store reader.
type Row struct {
	// AccountID is the join key shared by all stores.
	AccountID string

	// Data is the raw JSON payload.
	Data []byte

	// Timestamp is the store's last-update time for the record, zero if the
	// store does not track it.
	Timestamp int64
}

// Snapshot is the canonical, store-agnostic view of one account.
type Snapshot struct {
	// AccountID is the identity used to join records across stores.
	AccountID string

	// Kind is the sub-schema the payload was decoded with.
	Kind Kind

	// Balance is nil when the balance is unknown or not applicable.
	// Use BalanceApplicable to tell the two apart.
	Balance *big.Int

	// Nonce is nil when the payload carries no decodable nonce.
	Nonce *big.Int

	// Timestamp is informational only and never part of equality.
	Timestamp int64

	// Hash is the account hash as reported by the store, display only.
	Hash string
}

// BalanceApplicable reports whether the snapshot has a comparable balance field.
// Special accounts never do.
func (s *Snapshot) BalanceApplicable() bool {
	return s.Kind == KindRegular
}

// BalanceString renders the balance for reports: "N/A" when not applicable,
// "unknown" when applicable but absent.
func (s *Snapshot) BalanceString() string {
	if s == nil {
		return ""
	}
	if !s.BalanceApplicable() {
		return "N/A"
	}
	if s.Balance == nil {
		return "unknown"
	}
	return s.Balance.String()
}

// NonceString renders the nonce for reports.
func (s *Snapshot) NonceString() string {
	if s == nil {
		return ""
	}
	if s.Nonce == nil {
		return "N/A"
	}
	return s.Nonce.String()
}

// Mismatch is a set of field-level differences between two snapshots.
type Mismatch uint8

const (
	// BalanceMismatch marks differing (or unknown) balances.
	BalanceMismatch Mismatch = 1 << iota
	// NonceMismatch marks differing (or undecodable) nonces.
	NonceMismatch
	// KindMismatch marks a Regular/Special disagreement for the same identity.
	KindMismatch
)

// Has reports whether every flag in f is set.
func (m Mismatch) Has(f Mismatch) bool {
	return m&f == f
}

// Labels returns the names of the set flags in a stable order.
func (m Mismatch) Labels() []string {
	var labels []string
	if m.Has(BalanceMismatch) {
		labels = append(labels, "balance")
	}
	if m.Has(NonceMismatch) {
		labels = append(labels, "nonce")
	}
	if m.Has(KindMismatch) {
		labels = append(labels, "kind")
	}
	return labels
}

// String joins the flag labels with "|".
func (m Mismatch) String() string {
	return strings.Join(m.Labels(), "|")
}

// Status classifies a Result.
type Status string

const (
	StatusMatch             Status = "match"
	StatusMismatch          Status = "mismatch"
	StatusMissingInNode     Status = "missing_in_node"
	StatusMissingInArchiver Status = "missing_in_archiver"
)

// Result is the outcome of matching one account identity between one node
// store and the archiver. Results are immutable once built.
type Result struct {
	// AccountID is the joined identity.
	AccountID string

	// Node is the name of the node store this result belongs to.
	Node string

	// Archiver is nil when the identity is missing from the archiver.
	Archiver *Snapshot

	// Replica is nil when the identity is missing from the node store.
	Replica *Snapshot

	// Mismatches holds the differing fields when both snapshots are present.
	Mismatches Mismatch
}

// Status returns the classification of the result.
func (r *Result) Status() Status {
	switch {
	case r.Archiver == nil:
		return StatusMissingInArchiver
	case r.Replica == nil:
		return StatusMissingInNode
	case r.Mismatches != 0:
		return StatusMismatch
	default:
		return StatusMatch
	}
}

// RecordError describes a single record that could not be normalized.
type RecordError struct {
	AccountID string
	// Node is empty for archiver records.
	Node string
	Err  error
}

func (e RecordError) Error() string {
	if e.Node == "" {
		return "archiver record " + e.AccountID + ": " + e.Err.Error()
	}
	return "node " + e.Node + " record " + e.AccountID + ": " + e.Err.Error()
}

func (e RecordError) Unwrap() error { return e.Err }

// NodeFailure records a node store that could not be compared as a unit.
type NodeFailure struct {
	Node string
	Path string
	Err  error
}
