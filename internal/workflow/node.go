package workflow

import "fmt"

// Arg is one token of a job invocation: either a literal string or a
// reference to an artifact whose staged name the engine substitutes at
// dispatch time.
type Arg struct {
	Text string
	File *Artifact
}

// Lit returns a literal argument token.
func Lit(text string) Arg { return Arg{Text: text} }

// Ref returns an argument token referencing an artifact.
func Ref(a *Artifact) Arg { return Arg{File: a} }

// String renders the token for logs and plan summaries.
func (a Arg) String() string {
	if a.File != nil {
		return a.File.Name
	}
	return a.Text
}

// Output is one declared output of a job node with its hand-off flags.
// StageOut and RegisterReplica are orthogonal: an output can survive the run
// without becoming an externally discoverable artifact, and vice versa.
type Output struct {
	Artifact *Artifact
	// StageOut marks the output to be copied to the output site after the
	// job completes.
	StageOut bool
	// RegisterReplica marks the output for registration as a first-class
	// artifact in the engine's catalog.
	RegisterReplica bool
}

// JobNode is one concrete invocation of a job type bound to specific
// artifacts. Nodes are created once during construction and never mutated
// afterwards.
type JobNode struct {
	// ID is unique within the graph and derived from the type plus the
	// node's creation ordinal, e.g. "motioncor2[42]".
	ID      string
	Type    *JobType
	Args    []Arg
	Inputs  []*Artifact
	Outputs []Output

	// seq is the creation ordinal, used to keep iteration deterministic.
	seq int
}

// Builder instantiates job nodes against a catalog and a registry. It is
// the only way nodes enter a graph, which is what lets output binding
// enforce the single-producer invariant.
type Builder struct {
	catalog  *Catalog
	registry *Registry
	nodes    []*JobNode
	perType  map[string]int
}

// NewBuilder creates a node builder over the given catalog and registry.
func NewBuilder(catalog *Catalog, registry *Registry) *Builder {
	return &Builder{catalog: catalog, registry: registry, perType: make(map[string]int)}
}

// Build creates one job node. The type must be defined in the catalog and
// every input artifact must already be registered. Each output's artifact is
// registered as a side effect when fresh; binding an output whose artifact
// already has a producer fails with DuplicateArtifactError.
func (b *Builder) Build(typeID string, args []Arg, inputs []*Artifact, outputs []Output) (*JobNode, error) {
	jt, err := b.catalog.Lookup(typeID)
	if err != nil {
		return nil, err
	}

	for _, in := range inputs {
		if _, err := b.registry.Resolve(in.Name); err != nil {
			return nil, err
		}
	}

	ordinal := b.perType[typeID]
	node := &JobNode{
		ID:      fmt.Sprintf("%s[%d]", typeID, ordinal),
		Type:    jt,
		Args:    args,
		Inputs:  inputs,
		Outputs: outputs,
		seq:     len(b.nodes),
	}

	for _, out := range outputs {
		a := out.Artifact
		if _, err := b.registry.Resolve(a.Name); err != nil {
			return nil, err
		}
		if a.producer != nil {
			return nil, &DuplicateArtifactError{
				Name:   a.Name,
				Detail: "already produced by " + a.producer.ID,
			}
		}
		a.producer = node
	}
	for _, in := range inputs {
		in.consumers = append(in.consumers, node)
	}

	b.perType[typeID] = ordinal + 1
	b.nodes = append(b.nodes, node)
	return node, nil
}

// Output registers name in the registry (when fresh) and wraps it with the
// given hand-off flags. It exists because almost every stage derives a name
// and immediately declares it as an output.
func (b *Builder) Output(name string, stageOut, registerReplica bool) (Output, error) {
	a, err := b.registry.Register(name, "")
	if err != nil {
		return Output{}, err
	}
	return Output{Artifact: a, StageOut: stageOut, RegisterReplica: registerReplica}, nil
}

// Nodes returns every node built so far, in creation order.
func (b *Builder) Nodes() []*JobNode {
	out := make([]*JobNode, len(b.nodes))
	copy(out, b.nodes)
	return out
}
