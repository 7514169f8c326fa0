// schema/registry.go
package schema

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	keyward_errors "github.com/keyward/keyward/errors"
	"github.com/keyward/keyward/model"
)

// Registry is the per-credential-type catalog of addressable field paths.
// It is populated once at startup and read-only afterwards, so concurrent
// readers need no coordination beyond the registration-phase lock.
type Registry struct {
	mu    sync.RWMutex
	types map[string]model.CredentialType
	order []string
}

func NewRegistry() *Registry {
	return &Registry{
		types: make(map[string]model.CredentialType),
	}
}

// RegisterType adds a credential type to the catalog. Registration is
// append-only; re-registering an id fails with ErrDuplicateCredentialType.
func (r *Registry) RegisterType(ct model.CredentialType) error {
	if ct.ID == "" {
		return fmt.Errorf("credential type id cannot be empty")
	}
	seen := make(map[string]struct{}, len(ct.Fields))
	for _, field := range ct.Fields {
		if field.Path == "" {
			return fmt.Errorf("credential type %q declares a field with an empty path", ct.ID)
		}
		if !field.Type.IsValid() {
			return fmt.Errorf("credential type %q declares field %q with unknown type %q", ct.ID, field.Path, field.Type)
		}
		if _, dup := seen[field.Path]; dup {
			return fmt.Errorf("credential type %q declares field %q twice", ct.ID, field.Path)
		}
		seen[field.Path] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[ct.ID]; exists {
		return fmt.Errorf("%w: %s", keyward_errors.ErrDuplicateCredentialType, ct.ID)
	}
	r.types[ct.ID] = ct
	r.order = append(r.order, ct.ID)
	return nil
}

// Type returns the registered credential type for the given id.
func (r *Registry) Type(typeID string) (model.CredentialType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ct, ok := r.types[typeID]
	if !ok {
		return model.CredentialType{}, fmt.Errorf("%w: %s", keyward_errors.ErrUnknownCredentialType, typeID)
	}
	return ct, nil
}

// Types returns all registered credential types in registration order.
func (r *Registry) Types() []model.CredentialType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.CredentialType, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.types[id])
	}
	return out
}

// FieldPaths returns the declared field paths of a credential type in
// declaration order.
func (r *Registry) FieldPaths(typeID string) ([]model.FieldDef, error) {
	ct, err := r.Type(typeID)
	if err != nil {
		return nil, err
	}
	fields := make([]model.FieldDef, len(ct.Fields))
	copy(fields, ct.Fields)
	return fields, nil
}

// ResolveType returns the declared value type of a field path.
func (r *Registry) ResolveType(typeID, fieldPath string) (model.ValueType, error) {
	ct, err := r.Type(typeID)
	if err != nil {
		return "", err
	}
	for _, field := range ct.Fields {
		if field.Path == fieldPath {
			return field.Type, nil
		}
	}
	return "", &keyward_errors.UnknownFieldError{Path: fieldPath, CredentialType: typeID}
}

// Suggest returns the declared fields whose path starts with prefix, sorted
// by path. An empty prefix returns every field.
func (r *Registry) Suggest(typeID, prefix string) ([]model.FieldDef, error) {
	ct, err := r.Type(typeID)
	if err != nil {
		return nil, err
	}
	var matched []model.FieldDef
	for _, field := range ct.Fields {
		if strings.HasPrefix(field.Path, prefix) {
			matched = append(matched, field)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Path < matched[j].Path })
	return matched, nil
}
