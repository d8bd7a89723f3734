package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/cryoflow/internal/config"
	"github.com/vk/cryoflow/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL run-spec loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the run spec file at path and translates it into the
// format-agnostic model.
func (l *Loader) Load(ctx context.Context, path string) (*config.RunSpec, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse run spec %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode run spec %s: %w", path, diags)
	}

	spec, err := l.translate(&root)
	if err != nil {
		return nil, fmt.Errorf("invalid run spec %s: %w", path, err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("HCL loading complete.",
		"inputs_dir", spec.Dataset.InputsDir,
		"extension", spec.Dataset.Extension,
		"apix", spec.Microscope.Apix,
	)
	return spec, nil
}
