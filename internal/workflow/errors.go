package workflow

import "fmt"

// The errors below are the only ways graph construction can fail. All of
// them indicate a mismatch between the declared naming or catalog
// assumptions and the actual dataset; none is transient, and none leaves a
// partially assembled graph behind.

// DuplicateArtifactError reports an artifact name registered twice with
// conflicting identities: either two different physical source paths, or a
// second job node claiming to produce an already-produced artifact.
type DuplicateArtifactError struct {
	Name   string
	Detail string
}

func (e *DuplicateArtifactError) Error() string {
	return fmt.Sprintf("duplicate artifact %q: %s", e.Name, e.Detail)
}

// UnknownArtifactError reports a reference to an artifact that was never
// registered, or an artifact consumed by a node although it has neither a
// producer nor a physical source location.
type UnknownArtifactError struct {
	Name string
}

func (e *UnknownArtifactError) Error() string {
	return fmt.Sprintf("unknown artifact %q", e.Name)
}

// NamingChainError reports a substitution rule whose match pattern does not
// occur in the path being derived. It signals an unexpected upstream
// filename convention, which means a dataset assumption was violated.
type NamingChainError struct {
	Path    string
	Pattern string
}

func (e *NamingChainError) Error() string {
	return fmt.Sprintf("naming chain: pattern %q not found in %q", e.Pattern, e.Path)
}

// DuplicateTypeError reports a job type defined twice in the same catalog.
type DuplicateTypeError struct {
	ID string
}

func (e *DuplicateTypeError) Error() string {
	return fmt.Sprintf("duplicate job type %q", e.ID)
}

// UnknownTypeError reports a job type requested from a catalog that never
// defined it.
type UnknownTypeError struct {
	ID string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown job type %q", e.ID)
}

// CyclicDependencyError reports a cycle in the inferred edge set. A correct
// naming chain can never produce one, so this is always a construction bug.
type CyclicDependencyError struct {
	NodeID string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("cyclic dependency involving node %q", e.NodeID)
}

// EmptyInputSetError reports that raw discovery matched zero files.
type EmptyInputSetError struct {
	Pattern string
}

func (e *EmptyInputSetError) Error() string {
	return fmt.Sprintf("no raw input files matched %q", e.Pattern)
}

// ClusterChainError reports a producer/consumer chain between nodes of the
// same job type that is longer than the type's cluster group size. Splitting
// the chain across groups would lose ordering guarantees at the engine
// level, so construction refuses instead.
type ClusterChainError struct {
	TypeID    string
	ChainLen  int
	GroupSize int
}

func (e *ClusterChainError) Error() string {
	return fmt.Sprintf("job type %q: dependency chain of %d nodes exceeds cluster group size %d",
		e.TypeID, e.ChainLen, e.GroupSize)
}
