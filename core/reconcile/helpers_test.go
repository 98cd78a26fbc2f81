package reconcile

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// mockSource is an in-memory store.
type mockSource struct {
	name    string
	rows    []Row
	scanErr error
	closed  bool
}

func (m *mockSource) Name() string {
	return m.name
}

func (m *mockSource) Scan(ctx context.Context, fn func(Row) error) error {
	if m.scanErr != nil {
		return m.scanErr
	}
	for _, r := range m.rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockSource) Close() error {
	m.closed = true
	return nil
}

// stubNormalizer decodes compact test payloads:
//
//	"r:<balance>:<nonce>"  regular account, "?" for an absent value
//	"s:<nonce>"            special account
//	anything else          unrecognized
type stubNormalizer struct{}

func (stubNormalizer) Normalize(raw []byte) (Snapshot, error) {
	parts := strings.Split(string(raw), ":")
	switch {
	case len(parts) == 3 && parts[0] == "r":
		balance, err := stubNumber(parts[1])
		if err != nil {
			return Snapshot{}, err
		}
		nonce, err := stubNumber(parts[2])
		if err != nil {
			return Snapshot{}, err
		}
		return Snapshot{Kind: KindRegular, Balance: balance, Nonce: nonce}, nil
	case len(parts) == 2 && parts[0] == "s":
		nonce, err := stubNumber(parts[1])
		if err != nil {
			return Snapshot{}, err
		}
		return Snapshot{Kind: KindSpecial, Nonce: nonce}, nil
	}
	return Snapshot{}, &NormalizeError{Err: ErrUnrecognizedShape}
}

func stubNumber(s string) (*big.Int, error) {
	if s == "?" {
		return nil, nil
	}
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, &NormalizeError{Field: "value", Err: fmt.Errorf("%w: %q", ErrMalformedNumber, s)}
	}
	return i, nil
}

func row(id, data string) Row {
	return Row{AccountID: id, Data: []byte(data)}
}

func mustIndex(rows ...Row) *Index {
	idx, err := BuildIndex(context.Background(), &mockSource{name: "archiver", rows: rows}, stubNormalizer{})
	if err != nil {
		panic(err)
	}
	return idx
}

func node(src *mockSource) Node {
	return Node{
		Name: src.name,
		Path: "/nodes/" + src.name + "/db/shardeum.sqlite",
		Open: func(ctx context.Context) (Source, error) { return src, nil },
	}
}

func failingNode(name string) Node {
	return Node{
		Name: name,
		Path: "/nodes/" + name + "/db/shardeum.sqlite",
		Open: func(ctx context.Context) (Source, error) { return nil, errors.New("file is not a database") },
	}
}
