package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogDefine(t *testing.T) {
	c := NewCatalog()
	profile := Profile{Cores: 4, RuntimeSec: 600, MemoryMB: 4192, Accelerator: "gpu:p100:2", ClusterSize: 100}

	jt, err := c.Define("motioncor2", "motioncor2_wrapper.sh", profile)
	require.NoError(t, err)
	assert.Equal(t, "motioncor2", jt.ID)
	assert.Equal(t, profile, jt.Profile)

	_, err = c.Define("motioncor2", "motioncor2_wrapper.sh", profile)
	var dup *DuplicateTypeError
	require.Error(t, err)
	assert.True(t, errors.As(err, &dup))
	assert.Equal(t, "motioncor2", dup.ID)
}

func TestCatalogLookup(t *testing.T) {
	c := NewCatalog()
	_, err := c.Define("gctf", "gctf_wrapper.sh", Profile{Cores: 4})
	require.NoError(t, err)

	jt, err := c.Lookup("gctf")
	require.NoError(t, err)
	assert.Equal(t, "gctf_wrapper.sh", jt.Executable)

	_, err = c.Lookup("foo")
	var unknown *UnknownTypeError
	require.Error(t, err)
	assert.True(t, errors.As(err, &unknown))
	assert.Equal(t, "foo", unknown.ID)
}

func TestCatalogProfileFor(t *testing.T) {
	c := NewCatalog()
	_, err := c.Define("copy_jpeg", "cp_wrapper.sh", Profile{Cores: 1, RuntimeSec: 20, ClusterSize: 100})
	require.NoError(t, err)

	p, err := c.ProfileFor("copy_jpeg")
	require.NoError(t, err)
	assert.Equal(t, 20, p.RuntimeSec)

	_, err = c.ProfileFor("foo")
	assert.Error(t, err)
}

func TestCatalogTypeIDsSorted(t *testing.T) {
	c := NewCatalog()
	for _, id := range []string{"gctf", "copy_jpeg", "motioncor2"} {
		_, err := c.Define(id, id+"_wrapper.sh", Profile{Cores: 1})
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"copy_jpeg", "gctf", "motioncor2"}, c.TypeIDs())
}
