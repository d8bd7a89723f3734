package config

import "context"

// Loader is the interface for a format-specific run-spec loader.
type Loader interface {
	// Load reads a run specification from path and translates it into the
	// format-agnostic model.
	Load(ctx context.Context, path string) (*RunSpec, error)
}
