package feature

import "slices"

// Decisions is the output of one pipeline run: which features applied and
// the values they published for later features or the caller.
type Decisions struct {
	applied []Name
	values  map[Name]map[string]string
}

// NewDecisions returns an empty Decisions.
func NewDecisions() *Decisions {
	return &Decisions{values: make(map[Name]map[string]string)}
}

// MarkApplied records that a feature ran.
func (d *Decisions) MarkApplied(name Name) {
	if !slices.Contains(d.applied, name) {
		d.applied = append(d.applied, name)
	}
}

// Applied returns the features that ran, in execution order.
func (d *Decisions) Applied() []Name {
	return slices.Clone(d.applied)
}

// WasApplied reports whether name ran.
func (d *Decisions) WasApplied(name Name) bool {
	return slices.Contains(d.applied, name)
}

// Set publishes a value under the feature's namespace.
func (d *Decisions) Set(name Name, key, value string) {
	m, ok := d.values[name]
	if !ok {
		m = make(map[string]string)
		d.values[name] = m
	}
	m[key] = value
}

// Get reads a value published by a feature.
func (d *Decisions) Get(name Name, key string) (string, bool) {
	v, ok := d.values[name][key]
	return v, ok
}
