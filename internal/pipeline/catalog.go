package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/vk/cryoflow/internal/workflow"
)

// Mode selects the operating profile of a run. Constrained mode targets a
// restricted scheduling queue, so it caps cluster sizes and concurrent jobs
// far lower than full mode.
type Mode string

const (
	ModeFull        Mode = "full"
	ModeConstrained Mode = "constrained"
)

// ClusterSize returns the group size for the high-volume per-micrograph job
// types under this mode.
func (m Mode) ClusterSize() int {
	if m == ModeConstrained {
		return 5
	}
	return 100
}

// MaxJobs returns the engine-level concurrent job ceiling hint for this
// mode.
func (m Mode) MaxJobs() int {
	if m == ModeConstrained {
		return 5
	}
	return 50
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeFull || m == ModeConstrained
}

// Job type identifiers. One entry per executable profile; many nodes share
// each.
const (
	typeDM2MRCGainRef       = "dm2mrc_gainref"
	typeNewstackGainRef     = "newstack_gainref"
	typeClipGainRef         = "clip_gainref"
	typeClipGainRefSuperRes = "clip_gainref_superres"
	typeDM2MRCDefectMap     = "dm2mrc_defect_map"
	typeCopyJPEG            = "copy_jpeg"
	typeMotionCor2          = "motioncor2"
	typeGCTF                = "gctf"
	typeE2Proc2D            = "e2proc2d"
)

// BuildCatalog defines every job type of the preprocessing pipeline with
// its resource profile. baseDir locates the wrapper scripts; the paths are
// opaque executable references resolved by the engine.
func BuildCatalog(mode Mode, baseDir string) (*workflow.Catalog, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("unknown operating mode %q", mode)
	}
	clusterSize := mode.ClusterSize()
	wrapper := func(name string) string {
		return filepath.Join(baseDir, "workflow", "scripts", name)
	}

	catalog := workflow.NewCatalog()
	define := func(id, script string, profile workflow.Profile) error {
		_, err := catalog.Define(id, wrapper(script), profile)
		return err
	}

	// Gain reference and defect map conversions run once per dataset, so
	// they stay unclustered.
	prologue := workflow.Profile{Cores: 4, RuntimeSec: 180}
	if err := define(typeDM2MRCGainRef, "imod_dm2mrc_wrapper.sh", prologue); err != nil {
		return nil, err
	}
	if err := define(typeNewstackGainRef, "imod_newstack_wrapper.sh", prologue); err != nil {
		return nil, err
	}
	if err := define(typeClipGainRef, "imod_clip_wrapper.sh", prologue); err != nil {
		return nil, err
	}
	if err := define(typeClipGainRefSuperRes, "imod_clip_wrapper.sh", prologue); err != nil {
		return nil, err
	}
	if err := define(typeDM2MRCDefectMap, "imod_dm2mrc_wrapper.sh", prologue); err != nil {
		return nil, err
	}

	// The per-micrograph types are fast and numerous; clustering them is
	// what keeps tens of thousands of jobs schedulable.
	if err := define(typeCopyJPEG, "cp_wrapper.sh", workflow.Profile{
		Cores: 1, RuntimeSec: 20, ClusterSize: clusterSize,
	}); err != nil {
		return nil, err
	}
	if err := define(typeMotionCor2, "motioncor2_wrapper.sh", workflow.Profile{
		Cores: 4, RuntimeSec: 600, MemoryMB: 4192, Accelerator: "gpu:p100:2", ClusterSize: clusterSize,
	}); err != nil {
		return nil, err
	}
	if err := define(typeGCTF, "gctf_wrapper.sh", workflow.Profile{
		Cores: 4, RuntimeSec: 600, MemoryMB: 4192, Accelerator: "gpu:p100:2", ClusterSize: clusterSize,
	}); err != nil {
		return nil, err
	}
	if err := define(typeE2Proc2D, "e2proc2d_wrapper.sh", workflow.Profile{
		Cores: 1, RuntimeSec: 600, MemoryMB: 2048, ClusterSize: clusterSize,
	}); err != nil {
		return nil, err
	}

	return catalog, nil
}
