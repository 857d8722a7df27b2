package variant

import (
	"fmt"
	"sort"
)

// Registry indexes templates by ID.
type Registry struct {
	byID map[string]*Template
}

// NewRegistry builds a Registry from templates.
//
// Postcondition: Returns an error if two templates share an ID.
func NewRegistry(templates []*Template) (*Registry, error) {
	r := &Registry{byID: make(map[string]*Template, len(templates))}
	for _, t := range templates {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds t.
//
// Precondition: t must be non-nil.
// Postcondition: Returns an error if t.ID is already registered.
func (r *Registry) Register(t *Template) error {
	if _, ok := r.byID[t.ID]; ok {
		return fmt.Errorf("fighter template %q already registered", t.ID)
	}
	r.byID[t.ID] = t
	return nil
}

// Get returns the template with the given ID.
func (r *Registry) Get(id string) (*Template, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// IDs returns every registered ID in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
