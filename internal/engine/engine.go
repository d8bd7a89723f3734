package engine

import (
	"context"

	"github.com/vk/cryoflow/internal/workflow"
)

// Options carries the engine-level scheduling hints that accompany a
// submission. They constrain how the backend runs the graph, not what the
// graph contains.
type Options struct {
	// MaxJobs caps how many jobs the backend may have in flight at once.
	MaxJobs int
	// Site names the compute site the jobs run on.
	Site string
	// OutputSite names the storage site that receives staged-out artifacts.
	OutputSite string
}

// A Submitter hands a validated graph to an execution backend.
type Submitter interface {
	Submit(ctx context.Context, g *workflow.Graph, opts Options) error
}
