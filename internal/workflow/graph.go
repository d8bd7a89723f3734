package workflow

import (
	"context"
	"sort"

	"github.com/vk/cryoflow/internal/ctxlog"
)

// Graph is the assembled, read-only result of one construction pass: the
// node set, the inferred edges, the clustering partition, and the replica
// table. It is the single value handed to the external engine.
type Graph struct {
	Nodes    []*JobNode
	Edges    []Edge
	Clusters []ClusterGroup
	Catalog  *Catalog
	Registry *Registry
}

// Assemble composes catalog, registry, and the built node set into a
// validated Graph. It is the only externally observable entry point of the
// construction core: every invariant (known types, single producers, raw
// coverage, acyclicity, clusterability) is checked here, and any failure
// aborts with no partial graph.
func Assemble(ctx context.Context, catalog *Catalog, registry *Registry, nodes []*JobNode) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Assemble: starting graph validation.", "node_count", len(nodes), "artifact_count", registry.Len())

	for _, n := range nodes {
		if _, err := catalog.Lookup(n.Type.ID); err != nil {
			return nil, err
		}
	}

	// Every consumed artifact must come from a raw source or a producer
	// node. The builder enforces "at most one producer"; this closes the
	// "none" case.
	for _, name := range registry.Names() {
		a, err := registry.Resolve(name)
		if err != nil {
			return nil, err
		}
		if len(a.consumers) > 0 && a.producer == nil && !a.Raw() {
			return nil, &UnknownArtifactError{Name: a.Name}
		}
	}

	edges := InferEdges(nodes)
	logger.Debug("Assemble: dependency inference complete.", "edge_count", len(edges))

	if err := checkAcyclic(nodes, edges); err != nil {
		return nil, err
	}
	logger.Debug("Assemble: cycle check passed.")

	clusters, err := clusterByType(nodes, edges)
	if err != nil {
		return nil, err
	}
	logger.Debug("Assemble: clustering complete.", "cluster_count", len(clusters))

	ordered := make([]*JobNode, len(nodes))
	copy(ordered, nodes)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].seq < ordered[j].seq })

	logger.Debug("Assemble: graph construction successful.")
	return &Graph{
		Nodes:    ordered,
		Edges:    edges,
		Clusters: clusters,
		Catalog:  catalog,
		Registry: registry,
	}, nil
}

// clusterByType applies each job type's clustering policy to its nodes.
// Types appear in creation order of their first node so repeated runs
// produce identical partitions.
func clusterByType(nodes []*JobNode, edges []Edge) ([]ClusterGroup, error) {
	byType := make(map[string][]*JobNode)
	var typeOrder []string
	for _, n := range nodes {
		if _, ok := byType[n.Type.ID]; !ok {
			typeOrder = append(typeOrder, n.Type.ID)
		}
		byType[n.Type.ID] = append(byType[n.Type.ID], n)
	}

	var all []ClusterGroup
	for _, id := range typeOrder {
		typed := byType[id]
		groups, err := Cluster(typed, edges, typed[0].Type.Profile.ClusterSize)
		if err != nil {
			return nil, err
		}
		all = append(all, groups...)
	}
	return all, nil
}

// Replicas exposes the raw-artifact replica table of the underlying registry.
func (g *Graph) Replicas() map[string]string { return g.Registry.Replicas() }
