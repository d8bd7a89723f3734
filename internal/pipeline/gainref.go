package pipeline

import (
	"context"

	"github.com/vk/cryoflow/internal/ctxlog"
	"github.com/vk/cryoflow/internal/workflow"
)

// gainRefs are the corrected gain reference artifacts the per-micrograph
// jobs consume.
type gainRefs struct {
	// flipY is the standard-resolution, Y-flipped gain reference fed to
	// MotionCor2.
	flipY *workflow.Artifact
	// flipYSuperRes is the super-resolution counterpart, staged out for
	// datasets processed at full detector resolution.
	flipYSuperRes *workflow.Artifact
}

// buildPrologue creates the once-per-dataset conversion jobs: raw gain
// reference to super-resolution MRC, binning down to standard resolution,
// Y-flips of both, and the defect map conversion.
func buildPrologue(ctx context.Context, b *workflow.Builder, registry *workflow.Registry, gainPath, defectPath string) (*gainRefs, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Building gain reference prologue.", "gain_ref", gainPath, "defect_map", defectPath)

	rawGain, err := registry.Register(baseName(gainPath), gainPath)
	if err != nil {
		return nil, err
	}

	superResName, err := gainRawToSuperRes.DeriveName(gainPath)
	if err != nil {
		return nil, err
	}
	superRes, err := b.Output(superResName, true, false)
	if err != nil {
		return nil, err
	}
	if _, err := b.Build(typeDM2MRCGainRef,
		[]workflow.Arg{workflow.Ref(rawGain), workflow.Ref(superRes.Artifact)},
		[]*workflow.Artifact{rawGain},
		[]workflow.Output{superRes},
	); err != nil {
		return nil, err
	}

	// newstack -bin 2 halves the super-resolution image down to standard
	// resolution.
	stdName, err := gainSuperResToStd.DeriveName(superResName)
	if err != nil {
		return nil, err
	}
	std, err := b.Output(stdName, true, false)
	if err != nil {
		return nil, err
	}
	if _, err := b.Build(typeNewstackGainRef,
		[]workflow.Arg{workflow.Lit("-bin"), workflow.Lit("2"), workflow.Ref(superRes.Artifact), workflow.Ref(std.Artifact)},
		[]*workflow.Artifact{superRes.Artifact},
		[]workflow.Output{std},
	); err != nil {
		return nil, err
	}

	flipYName, err := gainStdFlipY.DeriveName(stdName)
	if err != nil {
		return nil, err
	}
	flipY, err := b.Output(flipYName, true, false)
	if err != nil {
		return nil, err
	}
	if _, err := b.Build(typeClipGainRef,
		[]workflow.Arg{workflow.Lit("flipy"), workflow.Ref(std.Artifact), workflow.Ref(flipY.Artifact)},
		[]*workflow.Artifact{std.Artifact},
		[]workflow.Output{flipY},
	); err != nil {
		return nil, err
	}

	flipYSRName, err := gainSuperResFlipY.DeriveName(superResName)
	if err != nil {
		return nil, err
	}
	flipYSR, err := b.Output(flipYSRName, true, false)
	if err != nil {
		return nil, err
	}
	if _, err := b.Build(typeClipGainRefSuperRes,
		[]workflow.Arg{workflow.Lit("flipy"), workflow.Ref(superRes.Artifact), workflow.Ref(flipYSR.Artifact)},
		[]*workflow.Artifact{superRes.Artifact},
		[]workflow.Output{flipYSR},
	); err != nil {
		return nil, err
	}

	rawDefect, err := registry.Register(baseName(defectPath), defectPath)
	if err != nil {
		return nil, err
	}
	defectName, err := defectMapToMRC.DeriveName(baseName(defectPath))
	if err != nil {
		return nil, err
	}
	defect, err := b.Output(defectName, true, false)
	if err != nil {
		return nil, err
	}
	if _, err := b.Build(typeDM2MRCDefectMap,
		[]workflow.Arg{workflow.Ref(rawDefect), workflow.Ref(defect.Artifact)},
		[]*workflow.Artifact{rawDefect},
		[]workflow.Output{defect},
	); err != nil {
		return nil, err
	}

	return &gainRefs{flipY: flipY.Artifact, flipYSuperRes: flipYSR.Artifact}, nil
}
