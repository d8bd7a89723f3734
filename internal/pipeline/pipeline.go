package pipeline

import (
	"context"
	"path/filepath"

	"github.com/vk/cryoflow/internal/config"
	"github.com/vk/cryoflow/internal/ctxlog"
	"github.com/vk/cryoflow/internal/fsutil"
	"github.com/vk/cryoflow/internal/sampling"
	"github.com/vk/cryoflow/internal/workflow"
)

// Options carries the per-run policy knobs that sit outside the run spec:
// the operating mode, the base directory holding the wrapper scripts, and
// the input subsetting strategy.
type Options struct {
	Mode    Mode
	BaseDir string
	Sample  sampling.Strategy
}

// Build constructs the complete preprocessing graph for one run: it
// discovers the raw inputs, applies the sampling strategy, populates the
// catalog and registry, builds the prologue plus one subgraph per
// acquisition, and assembles the validated result. Any failure aborts with
// no partial graph.
func Build(ctx context.Context, spec *config.RunSpec, opts Options) (*workflow.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	ds := spec.Dataset

	inFlag, err := formatFlag(ds.Extension)
	if err != nil {
		return nil, err
	}

	gainPath, err := fsutil.FindFirstMatch(ds.InputsDir, ds.GainRef)
	if err != nil {
		return nil, err
	}
	if gainPath == "" {
		return nil, &workflow.EmptyInputSetError{Pattern: filepath.Join(ds.InputsDir, ds.GainRef)}
	}
	defectPath, err := fsutil.FindFirstMatch(ds.InputsDir, ds.DefectMap)
	if err != nil {
		return nil, err
	}
	if defectPath == "" {
		return nil, &workflow.EmptyInputSetError{Pattern: filepath.Join(ds.InputsDir, ds.DefectMap)}
	}

	stacks, err := fsutil.FindAcquisitions(ds.InputsDir, ds.Prefix, ds.Suffix, ds.Extension)
	if err != nil {
		return nil, err
	}
	if len(stacks) == 0 {
		pattern := filepath.Join(ds.InputsDir, ds.Prefix+"*_"+ds.Suffix+"."+ds.Extension)
		return nil, &workflow.EmptyInputSetError{Pattern: pattern}
	}
	logger.Debug("Raw discovery complete.", "stack_count", len(stacks))

	stacks = opts.Sample.Select(stacks)
	logger.Debug("Sampling applied.", "selected", len(stacks), "count", opts.Sample.Count, "seed", opts.Sample.Seed)

	catalog, err := BuildCatalog(opts.Mode, opts.BaseDir)
	if err != nil {
		return nil, err
	}
	registry := workflow.NewRegistry()
	builder := workflow.NewBuilder(catalog, registry)

	gain, err := buildPrologue(ctx, builder, registry, gainPath, defectPath)
	if err != nil {
		return nil, err
	}

	chains := newMicrographChains(ds.Suffix, ds.Extension)
	for _, stackPath := range stacks {
		if err := buildMicrograph(builder, registry, spec, chains, inFlag, gain, stackPath); err != nil {
			return nil, err
		}
	}
	logger.Debug("Node construction complete.", "node_count", len(builder.Nodes()))

	return workflow.Assemble(ctx, catalog, registry, builder.Nodes())
}
