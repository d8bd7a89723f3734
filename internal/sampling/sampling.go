// Package sampling provides the selection strategy applied to the
// discovered input set before graph construction. Subsetting is a policy
// knob injected into discovery, not part of the construction core, and it
// is deterministic: the same seed and count always pick the same files.
package sampling

import "math/rand"

// Strategy selects which discovered files take part in a run.
type Strategy struct {
	// Count is the number of files to keep. Zero or negative means keep
	// everything.
	Count int
	// Seed drives the pseudo-random selection.
	Seed int64
}

// All keeps the entire input set.
func All() Strategy { return Strategy{} }

// Select returns the chosen subset, preserving the relative order of the
// input slice. The input is never mutated.
func (s Strategy) Select(files []string) []string {
	if s.Count <= 0 || s.Count >= len(files) {
		out := make([]string, len(files))
		copy(out, files)
		return out
	}

	// Deterministic sample without replacement: shuffle index positions,
	// take the first Count, then restore input order.
	rng := rand.New(rand.NewSource(s.Seed))
	indices := rng.Perm(len(files))

	chosen := make(map[int]struct{}, s.Count)
	for _, idx := range indices[:s.Count] {
		chosen[idx] = struct{}{}
	}

	out := make([]string, 0, s.Count)
	for i, f := range files {
		if _, ok := chosen[i]; ok {
			out = append(out, f)
		}
	}
	return out
}
