package reconcile

import "sort"

// Stats provides running totals for one node or for the whole run.
type Stats struct {
	// Compared counts identities present in both stores.
	Compared int `json:"compared"`

	// Mismatched counts compared identities with at least one differing field.
	Mismatched int `json:"mismatched"`

	// BalanceMismatches, NonceMismatches and KindMismatches count per field.
	// A result with several differing fields counts in each bucket.
	BalanceMismatches int `json:"balance_mismatches"`
	NonceMismatches   int `json:"nonce_mismatches"`
	KindMismatches    int `json:"kind_mismatches"`

	// MissingInNode counts archiver identities absent from the node store.
	MissingInNode int `json:"missing_in_node"`

	// MissingInArchiver counts node identities absent from the archiver.
	MissingInArchiver int `json:"missing_in_archiver"`

	// Unparsable counts records excluded because they failed normalization.
	Unparsable int `json:"unparsable"`
}

// Matched returns the number of compared identities without mismatches.
func (s Stats) Matched() int {
	return s.Compared - s.Mismatched
}

// MatchRate returns Matched/Compared, or 0 when nothing was compared.
func (s Stats) MatchRate() float64 {
	if s.Compared == 0 {
		return 0
	}
	return float64(s.Matched()) / float64(s.Compared)
}

// Add folds a single result into the totals.
func (s *Stats) Add(r Result) {
	switch r.Status() {
	case StatusMissingInArchiver:
		s.MissingInArchiver++
		return
	case StatusMissingInNode:
		s.MissingInNode++
		return
	}

	s.Compared++
	if r.Mismatches == 0 {
		return
	}
	s.Mismatched++
	if r.Mismatches.Has(BalanceMismatch) {
		s.BalanceMismatches++
	}
	if r.Mismatches.Has(NonceMismatch) {
		s.NonceMismatches++
	}
	if r.Mismatches.Has(KindMismatch) {
		s.KindMismatches++
	}
}

// Merge adds other's counters into s. Merging is associative and commutative.
func (s *Stats) Merge(other Stats) {
	s.Compared += other.Compared
	s.Mismatched += other.Mismatched
	s.BalanceMismatches += other.BalanceMismatches
	s.NonceMismatches += other.NonceMismatches
	s.KindMismatches += other.KindMismatches
	s.MissingInNode += other.MissingInNode
	s.MissingInArchiver += other.MissingInArchiver
	s.Unparsable += other.Unparsable
}

// Aggregate holds the global totals plus one Stats per node.
type Aggregate struct {
	// Global is the run-wide total, including archiver-side unparsable records.
	Global Stats `json:"global"`

	// Nodes maps node name to its own totals.
	Nodes map[string]*Stats `json:"nodes"`

	// ArchiverUnparsable counts archiver records excluded from the index.
	ArchiverUnparsable int `json:"archiver_unparsable"`

	// Failed lists node stores that could not be compared.
	Failed []NodeFailure `json:"-"`
}

// NewAggregate returns an empty aggregate.
func NewAggregate() *Aggregate {
	return &Aggregate{Nodes: make(map[string]*Stats)}
}

// Fold runs a single linear pass over results and returns the totals.
func Fold(results []Result) *Aggregate {
	agg := NewAggregate()
	for _, r := range results {
		agg.Add(r)
	}
	return agg
}

// FoldPass folds one node pass, including its unparsable records.
// A pass with an error is recorded as a failed node.
func FoldPass(p *Pass) *Aggregate {
	agg := NewAggregate()
	if p.Err != nil {
		agg.Failed = append(agg.Failed, NodeFailure{Node: p.Node, Path: p.Path, Err: p.Err})
		return agg
	}
	node := agg.node(p.Node)
	for _, r := range p.Results {
		agg.Add(r)
	}
	node.Unparsable += len(p.Unparsable)
	agg.Global.Unparsable += len(p.Unparsable)
	return agg
}

// Add folds one result into both the global and the per-node totals.
func (a *Aggregate) Add(r Result) {
	a.Global.Add(r)
	a.node(r.Node).Add(r)
}

// AddArchiverRejects records archiver records that failed normalization.
func (a *Aggregate) AddArchiverRejects(n int) {
	a.ArchiverUnparsable += n
	a.Global.Unparsable += n
}

// Merge adds other into a. Per-node totals are merged by node name.
func (a *Aggregate) Merge(other *Aggregate) {
	a.Global.Merge(other.Global)
	a.ArchiverUnparsable += other.ArchiverUnparsable
	for name, s := range other.Nodes {
		a.node(name).Merge(*s)
	}
	a.Failed = append(a.Failed, other.Failed...)
	sort.SliceStable(a.Failed, func(i, j int) bool {
		return a.Failed[i].Node < a.Failed[j].Node
	})
}

// NodeNames returns the names of all nodes with totals, sorted.
func (a *Aggregate) NodeNames() []string {
	names := make([]string, 0, len(a.Nodes))
	for name := range a.Nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (a *Aggregate) node(name string) *Stats {
	s, ok := a.Nodes[name]
	if !ok {
		s = &Stats{}
		a.Nodes[name] = s
	}
	return s
}
