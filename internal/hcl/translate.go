package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/cryoflow/internal/config"
)

// translate converts the HCL-specific schema into the agnostic model,
// applying defaults for optional expressions.
func (l *Loader) translate(root *fileRoot) (*config.RunSpec, error) {
	spec := &config.RunSpec{}

	if root.Dataset != nil {
		spec.Dataset = &config.Dataset{
			InputsDir: root.Dataset.InputsDir,
			Prefix:    root.Dataset.Prefix,
			Suffix:    root.Dataset.Suffix,
			Extension: root.Dataset.Extension,
			GainRef:   root.Dataset.GainRef,
			DefectMap: root.Dataset.DefectMap,
		}
	}

	if root.Microscope != nil {
		m := &config.Microscope{
			Apix:   root.Microscope.Apix,
			Fmdose: root.Microscope.Fmdose,
			Kev:    root.Microscope.Kev,
			// Detectors in this pipeline acquire in super-resolution mode
			// unless the run spec says otherwise.
			SuperResolution: true,
		}
		if err := evalInto(root.Microscope.SuperResolution, "superresolution", &m.SuperResolution); err != nil {
			return nil, err
		}
		spec.Microscope = m
	}

	a := &config.Alignment{}
	if root.Alignment != nil {
		if err := evalInto(root.Alignment.Throw, "throw", &a.Throw); err != nil {
			return nil, err
		}
		if err := evalInto(root.Alignment.Trunc, "trunc", &a.Trunc); err != nil {
			return nil, err
		}
	}
	spec.Alignment = a

	return spec, nil
}

// evalInto statically evaluates an optional expression into target, leaving
// target untouched when the attribute is absent or null.
func evalInto(expr hcl.Expression, name string, target any) error {
	if expr == nil {
		return nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return fmt.Errorf("attribute %q: %w", name, diags)
	}
	if val.IsNull() {
		return nil
	}
	if err := gocty.FromCtyValue(val, target); err != nil {
		return fmt.Errorf("attribute %q: %w", name, err)
	}
	return nil
}
