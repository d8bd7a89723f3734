package hcl

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/cryoflow/internal/ctxlog"
)

func testCtx(t *testing.T) context.Context {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

func writeSpec(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "run.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const fullSpec = `
dataset {
  inputs_dir = "/data/K3_20210205"
  prefix     = "May05"
  suffix     = "fractions"
  extension  = "tiff"
  gain_ref   = "*_x1.m1.dm4"
  defect_map = "*.defects.dm4"
}

microscope {
  apix            = 0.813
  fmdose          = 1.224
  kev             = 300
  superresolution = true
}

alignment {
  throw = 2
  trunc = 1
}
`

func TestLoaderLoad(t *testing.T) {
	path := writeSpec(t, fullSpec)

	spec, err := NewLoader().Load(testCtx(t), path)
	require.NoError(t, err)

	assert.Equal(t, "/data/K3_20210205", spec.Dataset.InputsDir)
	assert.Equal(t, "May05", spec.Dataset.Prefix)
	assert.Equal(t, "fractions", spec.Dataset.Suffix)
	assert.Equal(t, "tiff", spec.Dataset.Extension)
	assert.Equal(t, "*_x1.m1.dm4", spec.Dataset.GainRef)
	assert.Equal(t, "*.defects.dm4", spec.Dataset.DefectMap)

	assert.InDelta(t, 0.813, spec.Microscope.Apix, 1e-9)
	assert.InDelta(t, 1.224, spec.Microscope.Fmdose, 1e-9)
	assert.Equal(t, 300, spec.Microscope.Kev)
	assert.True(t, spec.Microscope.SuperResolution)

	assert.Equal(t, 2, spec.Alignment.Throw)
	assert.Equal(t, 1, spec.Alignment.Trunc)
}

func TestLoaderDefaults(t *testing.T) {
	path := writeSpec(t, `
dataset {
  inputs_dir = "/data/run"
  suffix     = "fractions"
  extension  = "tiff"
  gain_ref   = "*_x1.m1.dm4"
  defect_map = "*.defects.dm4"
}

microscope {
  apix   = 1.06
  fmdose = 1.0
  kev    = 200
}

alignment {}
`)

	spec, err := NewLoader().Load(testCtx(t), path)
	require.NoError(t, err)

	assert.Empty(t, spec.Dataset.Prefix)
	assert.True(t, spec.Microscope.SuperResolution, "superresolution defaults to true")
	assert.Zero(t, spec.Alignment.Throw)
	assert.Zero(t, spec.Alignment.Trunc)
}

func TestLoaderErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewLoader().Load(testCtx(t), filepath.Join(t.TempDir(), "absent.hcl"))
		assert.Error(t, err)
	})

	t.Run("invalid syntax", func(t *testing.T) {
		path := writeSpec(t, `dataset { inputs_dir = `)
		_, err := NewLoader().Load(testCtx(t), path)
		assert.Error(t, err)
	})

	t.Run("missing required attribute", func(t *testing.T) {
		path := writeSpec(t, `
dataset {
  inputs_dir = "/data/run"
  suffix     = "fractions"
  extension  = "tiff"
  gain_ref   = "*_x1.m1.dm4"
  defect_map = "*.defects.dm4"
}
microscope {
  apix = 1.06
  kev  = 200
}
alignment {}
`)
		_, err := NewLoader().Load(testCtx(t), path)
		assert.Error(t, err, "fmdose is required")
	})

	t.Run("missing microscope block fails validation", func(t *testing.T) {
		path := writeSpec(t, `
dataset {
  inputs_dir = "/data/run"
  suffix     = "fractions"
  extension  = "tiff"
  gain_ref   = "*_x1.m1.dm4"
  defect_map = "*.defects.dm4"
}
alignment {}
`)
		_, err := NewLoader().Load(testCtx(t), path)
		require.Error(t, err)
		assert.ErrorContains(t, err, "microscope")
	})
}
