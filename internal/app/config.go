package app

import (
	"errors"
	"fmt"

	"github.com/vk/cryoflow/internal/pipeline"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	RunPath string // run spec .hcl file
	BaseDir string // install prefix holding the wrapper scripts

	Mode        string
	SampleCount int
	SampleSeed  int64
	Site        string
	OutputSite  string

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.RunPath == "" {
		return nil, errors.New("RunPath is a required configuration field and cannot be empty")
	}
	if !pipeline.Mode(cfg.Mode).Valid() {
		return nil, fmt.Errorf("invalid mode %q: must be %q or %q", cfg.Mode, pipeline.ModeFull, pipeline.ModeConstrained)
	}
	if cfg.SampleCount < 0 {
		return nil, fmt.Errorf("invalid sample count %d: must not be negative", cfg.SampleCount)
	}
	if cfg.BaseDir == "" {
		cfg.BaseDir = "/opt/cryoflow"
	}
	if cfg.Site == "" {
		cfg.Site = "condorpool"
	}
	if cfg.OutputSite == "" {
		cfg.OutputSite = "local"
	}
	return &cfg, nil
}
