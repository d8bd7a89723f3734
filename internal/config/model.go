package config

import "fmt"

// RunSpec is the unified, format-agnostic representation of one
// preprocessing run: which raw files to pick up and the acquisition
// parameters the per-image jobs need.
type RunSpec struct {
	Dataset    *Dataset
	Microscope *Microscope
	Alignment  *Alignment
}

// Dataset describes where the raw acquisition files live and how they are
// named.
type Dataset struct {
	// InputsDir is the root of the acquisition tree.
	InputsDir string
	// Prefix, Suffix, and Extension describe per-frame stack names of the
	// form <prefix>*_<suffix>.<extension>.
	Prefix    string
	Suffix    string
	Extension string
	// GainRef and DefectMap are glob patterns, relative to InputsDir,
	// locating the raw gain reference and defect map files.
	GainRef   string
	DefectMap string
}

// Microscope carries the physical acquisition parameters passed through to
// the processing jobs.
type Microscope struct {
	// Apix is the pixel size in angstroms.
	Apix float64
	// Fmdose is the dose per frame in electrons per square angstrom.
	Fmdose float64
	// Kev is the acceleration voltage.
	Kev int
	// SuperResolution records whether the detector ran in super-resolution
	// mode.
	SuperResolution bool
}

// Alignment carries the frame-selection knobs for motion correction.
type Alignment struct {
	// Throw is the number of leading frames to discard.
	Throw int
	// Trunc is the number of trailing frames to discard.
	Trunc int
}

// Validate checks that a loaded run spec is complete enough to build a
// graph from.
func (s *RunSpec) Validate() error {
	if s.Dataset == nil {
		return fmt.Errorf("run spec: missing dataset block")
	}
	if s.Dataset.InputsDir == "" {
		return fmt.Errorf("run spec: dataset.inputs_dir is required")
	}
	if s.Dataset.Suffix == "" || s.Dataset.Extension == "" {
		return fmt.Errorf("run spec: dataset.suffix and dataset.extension are required")
	}
	if s.Dataset.GainRef == "" {
		return fmt.Errorf("run spec: dataset.gain_ref is required")
	}
	if s.Dataset.DefectMap == "" {
		return fmt.Errorf("run spec: dataset.defect_map is required")
	}
	if s.Microscope == nil {
		return fmt.Errorf("run spec: missing microscope block")
	}
	if s.Microscope.Apix <= 0 {
		return fmt.Errorf("run spec: microscope.apix must be positive")
	}
	if s.Microscope.Kev <= 0 {
		return fmt.Errorf("run spec: microscope.kev must be positive")
	}
	if s.Alignment == nil {
		return fmt.Errorf("run spec: missing alignment block")
	}
	return nil
}
