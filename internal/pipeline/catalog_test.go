package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModePolicy(t *testing.T) {
	assert.Equal(t, 100, ModeFull.ClusterSize())
	assert.Equal(t, 5, ModeConstrained.ClusterSize())
	assert.Equal(t, 50, ModeFull.MaxJobs())
	assert.Equal(t, 5, ModeConstrained.MaxJobs())
	assert.True(t, ModeFull.Valid())
	assert.True(t, ModeConstrained.Valid())
	assert.False(t, Mode("debug").Valid())
}

func TestBuildCatalog(t *testing.T) {
	catalog, err := BuildCatalog(ModeFull, "/opt/cryoflow")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"clip_gainref", "clip_gainref_superres", "copy_jpeg", "dm2mrc_defect_map",
		"dm2mrc_gainref", "e2proc2d", "gctf", "motioncor2", "newstack_gainref",
	}, catalog.TypeIDs())

	mc2, err := catalog.Lookup("motioncor2")
	require.NoError(t, err)
	assert.Equal(t, "/opt/cryoflow/workflow/scripts/motioncor2_wrapper.sh", mc2.Executable)
	assert.Equal(t, 4, mc2.Profile.Cores)
	assert.Equal(t, 600, mc2.Profile.RuntimeSec)
	assert.Equal(t, 4192, mc2.Profile.MemoryMB)
	assert.Equal(t, "gpu:p100:2", mc2.Profile.Accelerator)
	assert.Equal(t, 100, mc2.Profile.ClusterSize)

	prologue, err := catalog.ProfileFor("dm2mrc_gainref")
	require.NoError(t, err)
	assert.Zero(t, prologue.ClusterSize, "prologue jobs are not clustered")
}

func TestBuildCatalogConstrainedClusterSizes(t *testing.T) {
	catalog, err := BuildCatalog(ModeConstrained, "/opt/cryoflow")
	require.NoError(t, err)
	for _, id := range []string{"copy_jpeg", "motioncor2", "gctf", "e2proc2d"} {
		p, err := catalog.ProfileFor(id)
		require.NoError(t, err)
		assert.Equal(t, 5, p.ClusterSize, id)
	}
}

func TestBuildCatalogUnknownMode(t *testing.T) {
	_, err := BuildCatalog(Mode("debug"), "/opt/cryoflow")
	assert.Error(t, err)
}
