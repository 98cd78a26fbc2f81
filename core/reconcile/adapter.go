package reconcile

import (
	"context"
)

// Source yields raw account rows from a single store.
// Implementations wrap a concrete database table; ordering is not significant.
type Source interface {
	// Name returns a human-readable name for the store (e.g. the node name).
	Name() string

	// Scan calls fn once per row. Returning an error from fn stops the scan
	// and Scan returns that error. Failing to read the store at all is also
	// reported through the returned error.
	Scan(ctx context.Context, fn func(Row) error) error
}

// Normalizer decodes one raw JSON payload into a canonical Snapshot.
// The returned snapshot's AccountID is filled in by the engine from the row.
// Failures must wrap ErrUnrecognizedShape or ErrMalformedNumber.
type Normalizer interface {
	Normalize(raw []byte) (Snapshot, error)
}

// Opener lazily opens a node store. Sources that also implement io.Closer
// are closed once their pass is complete.
type Opener func(ctx context.Context) (Source, error)

// Node is a discovered node store waiting to be compared.
type Node struct {
	// Name is the node name used to attribute results.
	Name string

	// Path is the location of the node store, for diagnostics.
	Path string

	// Open opens the node store.
	Open Opener
}
