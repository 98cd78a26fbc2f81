package reconcile

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the node pool size used when none is configured.
const DefaultWorkers = 4

// Run is the outcome of comparing every node store against one archiver index.
type Run struct {
	// Archived is the number of archiver accounts in the index.
	Archived int

	// Passes holds one pass per node, in the order the nodes were given.
	Passes []*Pass

	// Stats is the merged aggregate of all passes.
	Stats *Aggregate
}

// RunNodes reconciles every node against idx using a bounded pool of workers.
//
// Each node pass only reads the shared index and owns its own node-side state,
// so passes run without coordination. A node that cannot be opened or read is
// recorded as failed and does not stop the others. Totals are folded per pass
// and merged in node order once every pass has finished.
func RunNodes(ctx context.Context, idx *Index, nodes []Node, workers int) (*Run, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	passes := make([]*Pass, len(nodes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, n := range nodes {
		g.Go(func() error {
			passes[i] = runNode(gctx, idx, n)
			return nil
		})
	}

	// Workers never return errors; failures are carried on the pass.
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	agg := NewAggregate()
	agg.AddArchiverRejects(len(idx.Rejects()))
	for _, p := range passes {
		agg.Merge(FoldPass(p))
	}

	return &Run{Archived: idx.Len(), Passes: passes, Stats: agg}, nil
}

// runNode opens, scans and closes a single node store.
func runNode(ctx context.Context, idx *Index, n Node) *Pass {
	src, err := n.Open(ctx)
	if err != nil {
		return &Pass{Node: n.Name, Path: n.Path, Err: fmt.Errorf("failed to open node store: %w", err)}
	}
	if c, ok := src.(io.Closer); ok {
		defer c.Close()
	}

	pass, err := ReconcileNode(ctx, idx, src)
	if err != nil {
		return &Pass{Node: n.Name, Path: n.Path, Err: err}
	}
	pass.Path = n.Path
	return pass
}
