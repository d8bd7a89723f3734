package workflow

import "sort"

// Edge is one inferred dependency: To consumes an artifact that From
// produces. Edges are never declared by callers; they are derived entirely
// from shared artifacts.
type Edge struct {
	From *JobNode
	To   *JobNode
}

// InferEdges derives the directed edge set from producer/consumer
// relationships. An input with no known producer is an externally supplied
// raw artifact and contributes no edge. The result is deterministic: edges
// are ordered by the consuming node's creation order, then the producing
// node's.
func InferEdges(nodes []*JobNode) []Edge {
	producers := make(map[string]*JobNode)
	for _, n := range nodes {
		for _, out := range n.Outputs {
			// Double production is rejected earlier, at output binding.
			producers[out.Artifact.Name] = n
		}
	}

	var edges []Edge
	seen := make(map[[2]string]struct{})
	for _, n := range nodes {
		for _, in := range n.Inputs {
			from, ok := producers[in.Name]
			if !ok || from == n {
				continue
			}
			key := [2]string{from.ID, n.ID}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			edges = append(edges, Edge{From: from, To: n})
		}
	}

	sort.SliceStable(edges, func(i, j int) bool {
		if edges[i].To.seq != edges[j].To.seq {
			return edges[i].To.seq < edges[j].To.seq
		}
		return edges[i].From.seq < edges[j].From.seq
	})
	return edges
}

// checkAcyclic verifies the edge set with Kahn's algorithm and returns a
// CyclicDependencyError naming one node on a cycle when the sort cannot
// consume every node.
func checkAcyclic(nodes []*JobNode, edges []Edge) error {
	indegree := make(map[string]int, len(nodes))
	successors := make(map[string][]*JobNode)
	byID := make(map[string]*JobNode, len(nodes))
	for _, n := range nodes {
		indegree[n.ID] = 0
		byID[n.ID] = n
	}
	for _, e := range edges {
		indegree[e.To.ID]++
		successors[e.From.ID] = append(successors[e.From.ID], e.To)
	}

	queue := make([]*JobNode, 0, len(nodes))
	for _, n := range nodes {
		if indegree[n.ID] == 0 {
			queue = append(queue, n)
		}
	}

	visited := 0
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		visited++
		for _, succ := range successors[n.ID] {
			indegree[succ.ID]--
			if indegree[succ.ID] == 0 {
				queue = append(queue, succ)
			}
		}
	}
	if visited == len(nodes) {
		return nil
	}

	// Every unconsumed node sits on or downstream of a cycle; report the
	// first by creation order so the failure is reproducible.
	var offender *JobNode
	for _, n := range nodes {
		if indegree[n.ID] > 0 && (offender == nil || n.seq < offender.seq) {
			offender = n
		}
	}
	return &CyclicDependencyError{NodeID: offender.ID}
}
