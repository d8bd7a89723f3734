package engine

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vk/cryoflow/internal/ctxlog"
	"github.com/vk/cryoflow/internal/workflow"
)

// PlanWriter is a Submitter that renders the graph as a plain-text
// submission plan instead of handing it to a live backend. The output is
// deterministic for a given graph, so plans can be diffed across runs.
type PlanWriter struct {
	w io.Writer
}

// NewPlanWriter returns a PlanWriter that writes its plan to w.
func NewPlanWriter(w io.Writer) *PlanWriter {
	return &PlanWriter{w: w}
}

// Submit writes the full plan: the run header, the replica table, every
// job with its command line and staging directives, and the cluster
// grouping.
func (p *PlanWriter) Submit(ctx context.Context, g *workflow.Graph, opts Options) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Rendering submission plan.",
		"node_count", len(g.Nodes), "edge_count", len(g.Edges), "cluster_count", len(g.Clusters))

	var b strings.Builder
	fmt.Fprintf(&b, "run: %d jobs, %d edges, %d cluster groups (max concurrent jobs %d, site %s, output site %s)\n",
		len(g.Nodes), len(g.Edges), len(g.Clusters), opts.MaxJobs, opts.Site, opts.OutputSite)

	replicas := g.Replicas()
	names := make([]string, 0, len(replicas))
	for name := range replicas {
		names = append(names, name)
	}
	sort.Strings(names)
	b.WriteString("\nreplicas:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %s -> %s\n", name, replicas[name])
	}

	b.WriteString("\njobs:\n")
	for _, node := range g.Nodes {
		writeJob(&b, node)
	}

	b.WriteString("\nclusters:\n")
	for _, group := range g.Clusters {
		ids := make([]string, 0, len(group.Members))
		for _, member := range group.Members {
			ids = append(ids, member.ID)
		}
		fmt.Fprintf(&b, "  %s: [%s]\n", group.Type.ID, strings.Join(ids, " "))
	}

	_, err := io.WriteString(p.w, b.String())
	return err
}

func writeJob(b *strings.Builder, node *workflow.JobNode) {
	args := make([]string, 0, len(node.Args))
	for _, arg := range node.Args {
		args = append(args, arg.String())
	}
	fmt.Fprintf(b, "  %s: %s %s\n", node.ID, node.Type.Executable, strings.Join(args, " "))

	for _, in := range node.Inputs {
		fmt.Fprintf(b, "    in:  %s\n", in.Name)
	}
	for _, out := range node.Outputs {
		directives := ""
		if out.StageOut {
			directives += " (stage-out"
			if out.RegisterReplica {
				directives += ", register"
			}
			directives += ")"
		}
		fmt.Fprintf(b, "    out: %s%s\n", out.Artifact.Name, directives)
	}
}
