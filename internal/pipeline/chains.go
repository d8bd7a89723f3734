package pipeline

import "github.com/vk/cryoflow/internal/workflow"

// Naming chains. Every derived artifact name in the pipeline comes from one
// of these rule lists, so the full naming convention is visible, and
// testable, in this file alone.

// Gain reference chain: raw DM4 → super-resolution MRC → standard
// resolution MRC → Y-flipped variants.
var (
	gainRawToSuperRes = workflow.Chain{{Match: "_x1.m1.dm4", Replace: "_SuperRes.x1.m1.mrc"}}
	gainSuperResToStd = workflow.Chain{{Match: "_SuperRes.x1.m1.mrc", Replace: "_std.x1.m1.mrc"}}
	gainSuperResFlipY = workflow.Chain{{Match: "_SuperRes.x1.m1.mrc", Replace: "_sr.flipy.x1.m1.mrc"}}
	gainStdFlipY      = workflow.Chain{{Match: "_std.x1.m1.mrc", Replace: "_std.flipy.x1.m1.mrc"}}

	defectMapToMRC = workflow.Chain{{Match: ".dm4", Replace: ".mrc"}}
)

// micrographChains holds the per-acquisition chains, parameterized by the
// dataset's stack suffix and extension (e.g. "_fractions.tiff").
type micrographChains struct {
	// aligned derives the motion-corrected micrograph from the raw stack.
	aligned workflow.Chain
	// doseWeighted derives MotionCor2's dose-weighted sum.
	doseWeighted workflow.Chain
	// sidecarJPEG derives the acquisition-software preview image name that
	// sits next to the stack.
	sidecarJPEG workflow.Chain
	// ctfStar, ctf, and ctfLog derive gctf's outputs from the aligned name.
	ctfStar workflow.Chain
	ctf     workflow.Chain
	ctfLog  workflow.Chain
	// ctfPreview derives the rendered CTF preview from the .ctf name.
	ctfPreview workflow.Chain
}

// newMicrographChains builds the per-acquisition chains for one dataset's
// naming convention.
func newMicrographChains(suffix, extension string) micrographChains {
	tail := "_" + suffix + "." + extension
	return micrographChains{
		aligned:      workflow.Chain{{Match: tail, Replace: ".mrc"}},
		doseWeighted: workflow.Chain{{Match: tail, Replace: "_DW.mrc"}},
		sidecarJPEG:  workflow.Chain{{Match: tail, Replace: ".jpg"}},
		ctfStar:      workflow.Chain{{Match: tail, Replace: ".mrc"}, {Match: ".mrc", Replace: ".star"}},
		ctf:          workflow.Chain{{Match: tail, Replace: ".mrc"}, {Match: ".mrc", Replace: ".ctf"}},
		ctfLog:       workflow.Chain{{Match: tail, Replace: ".mrc"}, {Match: ".mrc", Replace: "_gctf.log"}},
		ctfPreview:   workflow.Chain{{Match: tail, Replace: ".mrc"}, {Match: ".mrc", Replace: "_ctf.jpg"}},
	}
}
