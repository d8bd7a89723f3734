package workflow

import "sort"

// Profile holds the resource requirements of a job type. Values are passed
// through verbatim to the external engine; the builder gives them no
// semantics beyond presence.
type Profile struct {
	// Cores requested per job.
	Cores int
	// RuntimeSec is the wall-clock ceiling in seconds.
	RuntimeSec int
	// MemoryMB is the memory ceiling in megabytes, 0 when the engine default
	// applies.
	MemoryMB int
	// Accelerator is an opaque accelerator request ("gpu:p100:2" style),
	// empty when none.
	Accelerator string
	// ClusterSize is the maximum number of same-type nodes grouped into one
	// scheduling unit. 0 or 1 disables clustering for the type.
	ClusterSize int
}

// JobType is a reusable executable profile shared by many job nodes. The
// Executable reference is opaque here and resolved by the external engine.
type JobType struct {
	ID         string
	Executable string
	Profile    Profile
}

// Catalog maps job type identifiers to their executable profiles. Like the
// artifact registry it is scoped to one construction pass.
type Catalog struct {
	types map[string]*JobType
}

// NewCatalog creates an empty transformation catalog.
func NewCatalog() *Catalog {
	return &Catalog{types: make(map[string]*JobType)}
}

// Define registers a job type exactly once. Redefinition fails with
// DuplicateTypeError.
func (c *Catalog) Define(id, executable string, profile Profile) (*JobType, error) {
	if _, ok := c.types[id]; ok {
		return nil, &DuplicateTypeError{ID: id}
	}
	jt := &JobType{ID: id, Executable: executable, Profile: profile}
	c.types[id] = jt
	return jt, nil
}

// Lookup returns the job type registered under id, or UnknownTypeError.
func (c *Catalog) Lookup(id string) (*JobType, error) {
	jt, ok := c.types[id]
	if !ok {
		return nil, &UnknownTypeError{ID: id}
	}
	return jt, nil
}

// ProfileFor returns the resource profile of a defined job type.
func (c *Catalog) ProfileFor(id string) (Profile, error) {
	jt, err := c.Lookup(id)
	if err != nil {
		return Profile{}, err
	}
	return jt.Profile, nil
}

// TypeIDs returns all defined type identifiers in sorted order.
func (c *Catalog) TypeIDs() []string {
	ids := make([]string, 0, len(c.types))
	for id := range c.types {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
