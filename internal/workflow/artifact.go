package workflow

import "sort"

// Artifact is a uniquely named logical file consumed and/or produced by job
// nodes. A raw artifact carries the physical source path it was discovered
// at and has no producer; every other artifact is produced by exactly one
// node.
type Artifact struct {
	// Name is the logical file name, unique within one graph.
	Name string
	// SourcePath is the physical location of a raw artifact. Empty for
	// derived artifacts.
	SourcePath string

	// producer is the single node whose outputs include this artifact,
	// or nil for raw artifacts. Set once during output binding.
	producer *JobNode
	// consumers are the nodes whose inputs include this artifact.
	consumers []*JobNode
}

// Raw reports whether the artifact was registered with a physical source
// location rather than produced by a node.
func (a *Artifact) Raw() bool { return a.SourcePath != "" }

// Producer returns the node that produces this artifact, or nil for raw
// artifacts.
func (a *Artifact) Producer() *JobNode { return a.producer }

// Registry tracks every logical name used anywhere in the graph, enforces
// uniqueness, and records the replica table mapping raw artifact names to
// their physical source locations. A registry belongs to a single graph
// construction pass and is never shared across runs.
type Registry struct {
	artifacts map[string]*Artifact
	// order preserves registration order so that iteration is deterministic.
	order []string
}

// NewRegistry creates an empty artifact registry.
func NewRegistry() *Registry {
	return &Registry{artifacts: make(map[string]*Artifact)}
}

// Register records a logical name, optionally bound to a physical source
// path for raw artifacts. Registering an existing name with the same
// physical path returns the existing artifact; a conflicting path fails
// with DuplicateArtifactError.
func (r *Registry) Register(name, sourcePath string) (*Artifact, error) {
	if existing, ok := r.artifacts[name]; ok {
		if existing.SourcePath == sourcePath {
			return existing, nil
		}
		if existing.SourcePath == "" && sourcePath != "" {
			// A derived name later claimed as a raw input means two stages
			// disagree about where the file comes from.
			return nil, &DuplicateArtifactError{Name: name, Detail: "already registered as derived artifact"}
		}
		return nil, &DuplicateArtifactError{
			Name:   name,
			Detail: "conflicting physical paths " + existing.SourcePath + " and " + sourcePath,
		}
	}
	a := &Artifact{Name: name, SourcePath: sourcePath}
	r.artifacts[name] = a
	r.order = append(r.order, name)
	return a, nil
}

// Resolve returns the artifact registered under name, or UnknownArtifactError.
func (r *Registry) Resolve(name string) (*Artifact, error) {
	a, ok := r.artifacts[name]
	if !ok {
		return nil, &UnknownArtifactError{Name: name}
	}
	return a, nil
}

// Replicas returns the replica table: every raw artifact's logical name
// mapped to its physical source location. The engine's data staging layer
// consumes this verbatim.
func (r *Registry) Replicas() map[string]string {
	out := make(map[string]string)
	for _, name := range r.order {
		if a := r.artifacts[name]; a.Raw() {
			out[name] = a.SourcePath
		}
	}
	return out
}

// Names returns all registered logical names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	sort.Strings(out)
	return out
}

// Len returns the number of registered artifacts.
func (r *Registry) Len() int { return len(r.artifacts) }
