package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestBuilder wires a catalog with a couple of generic job types, an
// empty registry, and a builder over both.
func newTestBuilder(t *testing.T) (*Builder, *Catalog, *Registry) {
	t.Helper()
	catalog := NewCatalog()
	_, err := catalog.Define("convert", "convert_wrapper.sh", Profile{Cores: 4, RuntimeSec: 180})
	require.NoError(t, err)
	_, err = catalog.Define("align", "align_wrapper.sh", Profile{Cores: 4, RuntimeSec: 600, ClusterSize: 100})
	require.NoError(t, err)
	registry := NewRegistry()
	return NewBuilder(catalog, registry), catalog, registry
}

func TestBuilderBuild(t *testing.T) {
	b, _, registry := newTestBuilder(t)

	raw, err := registry.Register("stack.tiff", "/data/stack.tiff")
	require.NoError(t, err)
	out, err := b.Output("stack.mrc", true, false)
	require.NoError(t, err)

	node, err := b.Build("convert", []Arg{Ref(raw), Ref(out.Artifact)}, []*Artifact{raw}, []Output{out})
	require.NoError(t, err)

	assert.Equal(t, "convert[0]", node.ID)
	assert.Same(t, node, out.Artifact.Producer())
	assert.Len(t, b.Nodes(), 1)

	// Per-type ordinals keep IDs unique across many invocations.
	raw2, err := registry.Register("stack2.tiff", "/data/stack2.tiff")
	require.NoError(t, err)
	out2, err := b.Output("stack2.mrc", true, false)
	require.NoError(t, err)
	node2, err := b.Build("convert", []Arg{Ref(raw2)}, []*Artifact{raw2}, []Output{out2})
	require.NoError(t, err)
	assert.Equal(t, "convert[1]", node2.ID)
}

func TestBuilderUnknownType(t *testing.T) {
	b, _, registry := newTestBuilder(t)
	raw, err := registry.Register("stack.tiff", "/data/stack.tiff")
	require.NoError(t, err)

	_, err = b.Build("foo", nil, []*Artifact{raw}, nil)
	var unknown *UnknownTypeError
	require.Error(t, err)
	assert.True(t, errors.As(err, &unknown))
	assert.Empty(t, b.Nodes(), "no node is built when the type is undefined")
}

func TestBuilderUnregisteredInput(t *testing.T) {
	b, _, _ := newTestBuilder(t)
	stray := &Artifact{Name: "stray.mrc"}

	_, err := b.Build("convert", nil, []*Artifact{stray}, nil)
	var unknown *UnknownArtifactError
	require.Error(t, err)
	assert.True(t, errors.As(err, &unknown))
}

func TestBuilderDoubleProducer(t *testing.T) {
	b, _, _ := newTestBuilder(t)

	out, err := b.Output("bar.mrc", true, false)
	require.NoError(t, err)
	_, err = b.Build("convert", nil, nil, []Output{out})
	require.NoError(t, err)

	again, err := b.Output("bar.mrc", true, false)
	require.NoError(t, err)
	_, err = b.Build("convert", nil, nil, []Output{again})
	var dup *DuplicateArtifactError
	require.Error(t, err)
	assert.True(t, errors.As(err, &dup))
	assert.Equal(t, "bar.mrc", dup.Name)
}

func TestOutputFlagsAreOrthogonal(t *testing.T) {
	b, _, _ := newTestBuilder(t)

	staged, err := b.Output("a.mrc", true, false)
	require.NoError(t, err)
	registered, err := b.Output("b.mrc", false, true)
	require.NoError(t, err)

	assert.True(t, staged.StageOut)
	assert.False(t, staged.RegisterReplica)
	assert.False(t, registered.StageOut)
	assert.True(t, registered.RegisterReplica)
}

func TestArgString(t *testing.T) {
	a := &Artifact{Name: "a.mrc"}
	assert.Equal(t, "a.mrc", Ref(a).String())
	assert.Equal(t, "-bin", Lit("-bin").String())
}
