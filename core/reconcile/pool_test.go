package reconcile

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunNodes(t *testing.T) {
	idx := mustIndex(row("aa", "r:10:1"), row("bb", "r:20:2"), row("bad", "junk"))

	n1 := &mockSource{name: "node-1", rows: []Row{row("aa", "r:10:1"), row("bb", "r:20:3")}}
	n2 := &mockSource{name: "node-2", rows: []Row{row("aa", "r:10:1"), row("zz", "r:1:1"), row("cc", "??")}}

	run, err := RunNodes(context.Background(), idx, []Node{node(n1), failingNode("node-3"), node(n2)}, 2)
	require.NoError(t, err)

	require.Len(t, run.Passes, 3)
	assert.Equal(t, "node-1", run.Passes[0].Node)
	assert.Equal(t, "/nodes/node-1/db/shardeum.sqlite", run.Passes[0].Path)
	assert.Error(t, run.Passes[1].Err)
	assert.Equal(t, "node-2", run.Passes[2].Node)
	assert.Equal(t, 2, run.Archived)

	assert.True(t, n1.closed)
	assert.True(t, n2.closed)

	g := run.Stats.Global
	assert.Equal(t, 3, g.Compared)
	assert.Equal(t, 1, g.Mismatched)
	assert.Equal(t, 1, g.NonceMismatches)
	assert.Equal(t, 1, g.MissingInNode)
	assert.Equal(t, 1, g.MissingInArchiver)
	assert.Equal(t, 2, g.Unparsable)
	assert.Equal(t, 1, run.Stats.ArchiverUnparsable)

	require.Len(t, run.Stats.Failed, 1)
	assert.Equal(t, "node-3", run.Stats.Failed[0].Node)
	assert.ErrorContains(t, run.Stats.Failed[0].Err, "failed to open node store")
	assert.Equal(t, []string{"node-1", "node-2"}, run.Stats.NodeNames())
}

func TestRunNodes_WorkerCountDoesNotChangeTotals(t *testing.T) {
	rows := make([]Row, 0, 50)
	for i := 0; i < 50; i++ {
		rows = append(rows, row(fmt.Sprintf("acc-%02d", i), fmt.Sprintf("r:%d:%d", i, i)))
	}
	idx := mustIndex(rows...)

	nodes := func() []Node {
		var out []Node
		for n := 0; n < 8; n++ {
			nodeRows := make([]Row, 0, len(rows))
			for i, r := range rows {
				if i%(n+2) == 0 {
					continue
				}
				if i%5 == 0 {
					r = row(r.AccountID, fmt.Sprintf("r:%d:%d", i, i+1))
				}
				nodeRows = append(nodeRows, r)
			}
			out = append(out, node(&mockSource{name: fmt.Sprintf("node-%d", n), rows: nodeRows}))
		}
		return out
	}

	serial, err := RunNodes(context.Background(), idx, nodes(), 1)
	require.NoError(t, err)
	parallel, err := RunNodes(context.Background(), idx, nodes(), 8)
	require.NoError(t, err)

	assert.Equal(t, serial.Stats.Global, parallel.Stats.Global)
	assert.Equal(t, serial.Stats.Nodes, parallel.Stats.Nodes)
	assert.Greater(t, serial.Stats.Global.MissingInNode, 0)
	assert.Greater(t, serial.Stats.Global.NonceMismatches, 0)
}

func TestRunNodes_DefaultWorkers(t *testing.T) {
	idx := mustIndex(row("aa", "r:1:1"))
	run, err := RunNodes(context.Background(), idx, []Node{node(&mockSource{name: "node-1", rows: []Row{row("aa", "r:1:1")}})}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, run.Stats.Global.Compared)
}

func TestRunNodes_Cancelled(t *testing.T) {
	idx := mustIndex(row("aa", "r:1:1"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunNodes(ctx, idx, []Node{node(&mockSource{name: "node-1", rows: []Row{row("aa", "r:1:1")}})}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
