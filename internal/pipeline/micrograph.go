package pipeline

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/vk/cryoflow/internal/config"
	"github.com/vk/cryoflow/internal/workflow"
)

// formatFlag maps the dataset's stack extension to MotionCor2's input
// format switch. Any other extension is a dataset assumption violation.
func formatFlag(extension string) (string, error) {
	switch extension {
	case "tiff":
		return "-InTiff", nil
	case "mrc":
		return "-InMrc", nil
	case "eer":
		return "-InEer", nil
	default:
		return "", fmt.Errorf("unsupported image extension %q (want tiff, mrc, or eer)", extension)
	}
}

// buildMicrograph creates the per-acquisition subgraph for one raw frame
// stack: sidecar JPEG copy, motion correction, CTF estimation, and the CTF
// preview render. Every derived name comes from the stack's own name, which
// is what keeps the N per-acquisition subgraphs disjoint.
func buildMicrograph(b *workflow.Builder, registry *workflow.Registry, spec *config.RunSpec, chains micrographChains, inFlag string, gain *gainRefs, stackPath string) error {
	stackName := baseName(stackPath)
	stack, err := registry.Register(stackName, stackPath)
	if err != nil {
		return err
	}

	if err := buildSidecarCopy(b, registry, chains, stackPath); err != nil {
		return err
	}

	alignedName, err := chains.aligned.Derive(stackName)
	if err != nil {
		return err
	}
	dwName, err := chains.doseWeighted.Derive(stackName)
	if err != nil {
		return err
	}
	// The aligned sum only feeds gctf downstream; the dose-weighted sum is
	// the one that leaves the run.
	aligned, err := b.Output(alignedName, false, false)
	if err != nil {
		return err
	}
	dw, err := b.Output(dwName, true, false)
	if err != nil {
		return err
	}

	m := spec.Microscope
	a := spec.Alignment
	if _, err := b.Build(typeMotionCor2,
		[]workflow.Arg{
			workflow.Lit(inFlag), workflow.Lit("./" + stackName),
			workflow.Lit("-OutMrc"), workflow.Ref(aligned.Artifact),
			workflow.Lit("-Gain"), workflow.Ref(gain.flipY),
			workflow.Lit("-Iter 7 -Tol 0.5 -RotGain 2"),
			workflow.Lit("-PixSize"), workflow.Lit(formatFloat(m.Apix)),
			workflow.Lit("-FmDose"), workflow.Lit(formatFloat(m.Fmdose)),
			workflow.Lit("-Throw"), workflow.Lit(strconv.Itoa(a.Throw)),
			workflow.Lit("-Trunc"), workflow.Lit(strconv.Itoa(a.Trunc)),
			workflow.Lit("-Gpu 0 1 -Serial 0"),
			workflow.Lit("-OutStack 0"), workflow.Lit("-SumRange 0 0"),
		},
		[]*workflow.Artifact{stack, gain.flipY},
		[]workflow.Output{aligned, dw},
	); err != nil {
		return err
	}

	starName, err := chains.ctfStar.Derive(stackName)
	if err != nil {
		return err
	}
	ctfName, err := chains.ctf.Derive(stackName)
	if err != nil {
		return err
	}
	logName, err := chains.ctfLog.Derive(stackName)
	if err != nil {
		return err
	}
	star, err := b.Output(starName, true, true)
	if err != nil {
		return err
	}
	ctf, err := b.Output(ctfName, true, true)
	if err != nil {
		return err
	}
	ctfLog, err := b.Output(logName, true, true)
	if err != nil {
		return err
	}
	if _, err := b.Build(typeGCTF,
		[]workflow.Arg{
			workflow.Lit("--apix"), workflow.Lit(formatFloat(m.Apix)),
			workflow.Lit("--kV"), workflow.Lit(strconv.Itoa(m.Kev)),
			workflow.Lit("--Cs"), workflow.Lit("2.7"),
			workflow.Lit("--ac"), workflow.Lit("0.1"),
			workflow.Lit("--ctfstar"), workflow.Ref(star.Artifact),
			workflow.Lit("--gid"), workflow.Lit("0"),
			workflow.Lit("--boxsize"), workflow.Lit("512"),
			workflow.Ref(aligned.Artifact),
		},
		[]*workflow.Artifact{aligned.Artifact},
		[]workflow.Output{star, ctf, ctfLog},
	); err != nil {
		return err
	}

	previewName, err := chains.ctfPreview.Derive(stackName)
	if err != nil {
		return err
	}
	preview, err := b.Output(previewName, true, false)
	if err != nil {
		return err
	}
	if _, err := b.Build(typeE2Proc2D,
		[]workflow.Arg{workflow.Ref(ctf.Artifact), workflow.Ref(preview.Artifact)},
		[]*workflow.Artifact{ctf.Artifact},
		[]workflow.Output{preview},
	); err != nil {
		return err
	}

	return nil
}

// buildSidecarCopy wires the acquisition software's preview JPEG through
// the run. The input uses a fake "-IN" logical name bound to the sidecar's
// physical location so the output can carry the real name without the two
// colliding in the registry.
func buildSidecarCopy(b *workflow.Builder, registry *workflow.Registry, chains micrographChains, stackPath string) error {
	jpegName, err := chains.sidecarJPEG.Derive(baseName(stackPath))
	if err != nil {
		return err
	}
	jpegPath := filepath.Join(filepath.Dir(stackPath), jpegName)

	jpegIn, err := registry.Register(jpegName+"-IN", jpegPath)
	if err != nil {
		return err
	}
	jpegOut, err := b.Output(jpegName, true, false)
	if err != nil {
		return err
	}
	_, err = b.Build(typeCopyJPEG,
		[]workflow.Arg{
			workflow.Lit("-v"), workflow.Lit("-L"),
			workflow.Lit("./" + jpegName + "-IN"),
			workflow.Ref(jpegOut.Artifact),
		},
		[]*workflow.Artifact{jpegIn},
		[]workflow.Output{jpegOut},
	)
	return err
}

// formatFloat renders acquisition parameters the way they appear on the
// wrapped tools' command lines.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func baseName(path string) string { return filepath.Base(path) }
