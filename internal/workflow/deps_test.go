package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildChain constructs raw -> convert -> align, returning the builder's
// nodes in creation order.
func buildChain(t *testing.T) (*Builder, []*JobNode) {
	t.Helper()
	b, _, registry := newTestBuilder(t)

	raw, err := registry.Register("stack.tiff", "/data/stack.tiff")
	require.NoError(t, err)
	mid, err := b.Output("stack.mrc", false, false)
	require.NoError(t, err)
	final, err := b.Output("stack_DW.mrc", true, false)
	require.NoError(t, err)

	_, err = b.Build("convert", []Arg{Ref(raw)}, []*Artifact{raw}, []Output{mid})
	require.NoError(t, err)
	_, err = b.Build("align", []Arg{Ref(mid.Artifact)}, []*Artifact{mid.Artifact}, []Output{final})
	require.NoError(t, err)

	return b, b.Nodes()
}

func TestInferEdges(t *testing.T) {
	_, nodes := buildChain(t)

	edges := InferEdges(nodes)
	require.Len(t, edges, 1)
	assert.Equal(t, "convert[0]", edges[0].From.ID)
	assert.Equal(t, "align[0]", edges[0].To.ID)
}

func TestInferEdgesRawInputsProduceNoEdges(t *testing.T) {
	b, _, registry := newTestBuilder(t)
	raw, err := registry.Register("stack.tiff", "/data/stack.tiff")
	require.NoError(t, err)
	out, err := b.Output("stack.mrc", false, false)
	require.NoError(t, err)
	_, err = b.Build("convert", nil, []*Artifact{raw}, []Output{out})
	require.NoError(t, err)

	assert.Empty(t, InferEdges(b.Nodes()))
}

func TestInferEdgesDeduplicatesSharedArtifacts(t *testing.T) {
	b, _, _ := newTestBuilder(t)
	gain, err := b.Output("gain.mrc", false, false)
	require.NoError(t, err)
	flip, err := b.Output("gain.flipy.mrc", false, false)
	require.NoError(t, err)
	flip2, err := b.Output("gain.flipy2.mrc", false, false)
	require.NoError(t, err)

	_, err = b.Build("convert", nil, nil, []Output{gain})
	require.NoError(t, err)
	// One consumer taking the same producer's output twice over two inputs.
	_, err = b.Build("align", nil, []*Artifact{gain.Artifact, gain.Artifact}, []Output{flip, flip2})
	require.NoError(t, err)

	edges := InferEdges(b.Nodes())
	assert.Len(t, edges, 1)
}

func TestInferEdgesDeterministicOrder(t *testing.T) {
	_, nodes := buildChain(t)
	first := InferEdges(nodes)
	second := InferEdges(nodes)
	assert.Equal(t, first, second)
}

func TestCheckAcyclic(t *testing.T) {
	t.Run("chain is acyclic", func(t *testing.T) {
		_, nodes := buildChain(t)
		assert.NoError(t, checkAcyclic(nodes, InferEdges(nodes)))
	})

	t.Run("cycle is reported", func(t *testing.T) {
		_, nodes := buildChain(t)
		edges := InferEdges(nodes)
		// Force a back edge; a correct naming chain can never do this.
		edges = append(edges, Edge{From: nodes[1], To: nodes[0]})

		err := checkAcyclic(nodes, edges)
		require.Error(t, err)
		assert.ErrorContains(t, err, "cyclic dependency")
	})

	t.Run("empty graph is acyclic", func(t *testing.T) {
		assert.NoError(t, checkAcyclic(nil, nil))
	})
}
