package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is the top-level structure of a run spec file.
type fileRoot struct {
	Dataset    *datasetBlock    `hcl:"dataset,block"`
	Microscope *microscopeBlock `hcl:"microscope,block"`
	Alignment  *alignmentBlock  `hcl:"alignment,block"`
	Remain     hcl.Body         `hcl:",remain"`
}

// datasetBlock mirrors the `dataset` block of a run spec file.
type datasetBlock struct {
	InputsDir string `hcl:"inputs_dir"`
	Prefix    string `hcl:"prefix,optional"`
	Suffix    string `hcl:"suffix"`
	Extension string `hcl:"extension"`
	GainRef   string `hcl:"gain_ref"`
	DefectMap string `hcl:"defect_map"`
}

// microscopeBlock mirrors the `microscope` block. Optional attributes stay
// as expressions so defaults can be applied during translation.
type microscopeBlock struct {
	Apix            float64        `hcl:"apix"`
	Fmdose          float64        `hcl:"fmdose"`
	Kev             int            `hcl:"kev"`
	SuperResolution hcl.Expression `hcl:"superresolution,optional"`
}

// alignmentBlock mirrors the `alignment` block.
type alignmentBlock struct {
	Throw hcl.Expression `hcl:"throw,optional"`
	Trunc hcl.Expression `hcl:"trunc,optional"`
}
