package workflow

import "sort"

// ClusterGroup is a set of same-type job nodes handed to the engine as one
// scheduling unit. Grouping trades granularity for throughput on large
// collections of small, uniform jobs.
type ClusterGroup struct {
	Type    *JobType
	Members []*JobNode
}

// Cluster partitions same-type nodes into groups of at most groupSize,
// preserving creation order. The engine guarantees ordering inside a group
// but not across groups, so nodes related by a producer/consumer chain must
// land in the same group; a chain longer than groupSize fails with
// ClusterChainError rather than silently splitting it.
func Cluster(nodesOfType []*JobNode, edges []Edge, groupSize int) ([]ClusterGroup, error) {
	if len(nodesOfType) == 0 {
		return nil, nil
	}
	typ := nodesOfType[0].Type
	if groupSize <= 1 {
		groups := make([]ClusterGroup, 0, len(nodesOfType))
		for _, n := range nodesOfType {
			groups = append(groups, ClusterGroup{Type: typ, Members: []*JobNode{n}})
		}
		return groups, nil
	}

	components := dependencyComponents(nodesOfType, edges)

	var groups []ClusterGroup
	var current []*JobNode
	for _, comp := range components {
		if len(comp) > groupSize {
			return nil, &ClusterChainError{TypeID: typ.ID, ChainLen: len(comp), GroupSize: groupSize}
		}
		if len(current)+len(comp) > groupSize {
			groups = append(groups, ClusterGroup{Type: typ, Members: current})
			current = nil
		}
		current = append(current, comp...)
	}
	if len(current) > 0 {
		groups = append(groups, ClusterGroup{Type: typ, Members: current})
	}
	return groups, nil
}

// dependencyComponents splits the node set into weakly connected components
// under the edge relation restricted to that set. Independent nodes form
// singleton components. Components come back ordered by the earliest member,
// members in creation order, so the partition is deterministic.
func dependencyComponents(nodes []*JobNode, edges []Edge) [][]*JobNode {
	inSet := make(map[string]*JobNode, len(nodes))
	for _, n := range nodes {
		inSet[n.ID] = n
	}

	parent := make(map[string]string, len(nodes))
	var find func(string) string
	find = func(id string) string {
		if parent[id] != id {
			parent[id] = find(parent[id])
		}
		return parent[id]
	}
	for _, n := range nodes {
		parent[n.ID] = n.ID
	}
	for _, e := range edges {
		if _, ok := inSet[e.From.ID]; !ok {
			continue
		}
		if _, ok := inSet[e.To.ID]; !ok {
			continue
		}
		parent[find(e.From.ID)] = find(e.To.ID)
	}

	byRoot := make(map[string][]*JobNode)
	for _, n := range nodes {
		root := find(n.ID)
		byRoot[root] = append(byRoot[root], n)
	}

	components := make([][]*JobNode, 0, len(byRoot))
	for _, comp := range byRoot {
		sort.SliceStable(comp, func(i, j int) bool { return comp[i].seq < comp[j].seq })
		components = append(components, comp)
	}
	sort.SliceStable(components, func(i, j int) bool {
		return components[i][0].seq < components[j][0].seq
	})
	return components
}
