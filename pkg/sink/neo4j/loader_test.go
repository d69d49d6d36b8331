package neo4j

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/depmap/pkg/dag"
	"github.com/matzehuels/depmap/pkg/errors"
	"github.com/matzehuels/depmap/pkg/observability"
)

type call struct {
	cypher string
	params map[string]any
}

type fakeExecutor struct {
	calls  []call
	failOn string
}

func (f *fakeExecutor) Execute(_ context.Context, cypher string, params map[string]any) error {
	f.calls = append(f.calls, call{cypher, params})
	if f.failOn != "" && strings.Contains(cypher, f.failOn) {
		return fmt.Errorf("boom")
	}
	return nil
}

func sampleDAG(t *testing.T) *dag.DAG {
	t.Helper()
	g := dag.New(dag.Metadata{"module": "example.com/mod"})
	require.NoError(t, g.AddNode(dag.Node{ID: "example.com/mod/b", Meta: dag.Metadata{dag.MetaClass: "internal"}}))
	require.NoError(t, g.AddNode(dag.Node{ID: "example.com/mod/a", Meta: dag.Metadata{dag.MetaClass: "internal"}}))
	require.NoError(t, g.AddNode(dag.Node{ID: "github.com/x/y", Meta: dag.Metadata{dag.MetaClass: "third-party"}}))
	require.NoError(t, g.AddEdge(dag.Edge{From: "example.com/mod/a", To: "example.com/mod/b", Meta: dag.Metadata{dag.MetaClass: "internal"}}))
	require.NoError(t, g.AddEdge(dag.Edge{From: "example.com/mod/a", To: "github.com/x/y", Meta: dag.Metadata{dag.MetaClass: "third-party"}}))
	return g
}

func TestPackageRows(t *testing.T) {
	rows := PackageRows(sampleDAG(t))
	require.Len(t, rows, 3)
	assert.Equal(t, map[string]any{"path": "example.com/mod/a", "class": "internal", "module": "example.com/mod"}, rows[0])
	assert.Equal(t, "github.com/x/y", rows[2]["path"])
	assert.Equal(t, "third-party", rows[2]["class"])
}

func TestEdgeRows(t *testing.T) {
	rows := EdgeRows(sampleDAG(t))
	require.Len(t, rows, 2)
	assert.Equal(t, map[string]any{"from": "example.com/mod/a", "to": "github.com/x/y", "class": "third-party"}, rows[1])
}

func TestBatches(t *testing.T) {
	rows := make([]map[string]any, 5)
	for i := range rows {
		rows[i] = map[string]any{"i": i}
	}

	tests := []struct {
		size int
		want []int
	}{
		{2, []int{2, 2, 1}},
		{5, []int{5}},
		{10, []int{5}},
		{0, []int{5}},
		{-1, []int{5}},
	}
	for _, tt := range tests {
		var got []int
		for _, b := range Batches(rows, tt.size) {
			got = append(got, len(b))
		}
		assert.Equal(t, tt.want, got, "Batches(5 rows, %d)", tt.size)
	}
	assert.Nil(t, Batches(nil, 10))
}

func TestLoad(t *testing.T) {
	exec := &fakeExecutor{}
	l := NewLoader(exec, nil)
	l.BatchSize = 2

	require.NoError(t, l.Load(context.Background(), sampleDAG(t), LoadOptions{Clean: true}))

	// clean, index, 2 package batches, 1 edge batch
	require.Len(t, exec.calls, 5)
	assert.Equal(t, cleanQuery, exec.calls[0].cypher)
	assert.Equal(t, indexQuery, exec.calls[1].cypher)
	assert.Equal(t, packagesQuery, exec.calls[2].cypher)
	assert.Len(t, exec.calls[2].params["batch"], 2)
	assert.Len(t, exec.calls[3].params["batch"], 1)
	assert.Equal(t, edgesQuery, exec.calls[4].cypher)
	assert.Len(t, exec.calls[4].params["batch"], 2)
}

func TestLoad_NoClean(t *testing.T) {
	exec := &fakeExecutor{}
	require.NoError(t, NewLoader(exec, nil).Load(context.Background(), sampleDAG(t), LoadOptions{}))
	for _, c := range exec.calls {
		assert.NotEqual(t, cleanQuery, c.cypher)
	}
}

func TestLoad_EmptyGraph(t *testing.T) {
	exec := &fakeExecutor{}
	require.NoError(t, NewLoader(exec, nil).Load(context.Background(), dag.New(nil), LoadOptions{}))
	require.Len(t, exec.calls, 1)
	assert.Equal(t, indexQuery, exec.calls[0].cypher)
}

func TestLoad_Error(t *testing.T) {
	exec := &fakeExecutor{failOn: "DEPENDS_ON"}
	err := NewLoader(exec, nil).Load(context.Background(), sampleDAG(t), LoadOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeNetwork))
}

func TestClose_NoDriver(t *testing.T) {
	assert.NoError(t, NewLoader(&fakeExecutor{}, nil).Close(context.Background()))
}

type batchHooks struct {
	observability.NoopSinkHooks
	rows   []int
	failed int
}

func (h *batchHooks) OnBatch(_ context.Context, sink string, rows int, _ time.Duration, err error) {
	if sink != "neo4j" {
		return
	}
	h.rows = append(h.rows, rows)
	if err != nil {
		h.failed++
	}
}

func TestLoad_ReportsBatches(t *testing.T) {
	hooks := &batchHooks{}
	observability.SetSinkHooks(hooks)
	t.Cleanup(observability.Reset)

	l := NewLoader(&fakeExecutor{failOn: "DEPENDS_ON"}, nil)
	l.BatchSize = 2
	require.Error(t, l.Load(context.Background(), sampleDAG(t), LoadOptions{}))

	assert.Equal(t, []int{2, 1, 2}, hooks.rows)
	assert.Equal(t, 1, hooks.failed)
}
