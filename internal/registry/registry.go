package registry

import (
	"errors"
	"fmt"
	"sort"

	"sumarena/internal/domain"
)

// ErrUnknownModel is returned by Describe for identifiers outside the catalog.
var ErrUnknownModel = errors.New("unknown model")

// Registry is the static backend descriptor catalog. It is read-only
// after New and safe for concurrent use.
type Registry struct {
	byID    map[string]domain.ModelDescriptor
	ordered []domain.ModelDescriptor
}

// New builds the registry from the built-in catalog.
func New() *Registry {
	return FromDescriptors(catalog())
}

// FromDescriptors builds a registry from an explicit descriptor set.
func FromDescriptors(descriptors []domain.ModelDescriptor) *Registry {
	byID := make(map[string]domain.ModelDescriptor, len(descriptors))
	ordered := make([]domain.ModelDescriptor, 0, len(descriptors))

	for _, d := range descriptors {
		if _, ok := byID[d.ID]; ok {
			continue
		}

		byID[d.ID] = d
		ordered = append(ordered, d)
	}

	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Family != ordered[j].Family {
			return ordered[i].Family < ordered[j].Family
		}

		return ordered[i].DisplayName < ordered[j].DisplayName
	})

	return &Registry{byID: byID, ordered: ordered}
}

// Describe resolves a model identifier to its descriptor.
func (r *Registry) Describe(modelID string) (domain.ModelDescriptor, error) {
	d, ok := r.byID[modelID]
	if !ok {
		return domain.ModelDescriptor{}, fmt.Errorf("%w: %s", ErrUnknownModel, modelID)
	}

	return d, nil
}

// ListAll returns every descriptor ordered by family, then display name.
// The returned slice is a copy owned by the caller.
func (r *Registry) ListAll() []domain.ModelDescriptor {
	out := make([]domain.ModelDescriptor, len(r.ordered))
	copy(out, r.ordered)

	return out
}

// FamilyModelIDs returns the catalog identifiers belonging to one family,
// in the ListAll order.
func (r *Registry) FamilyModelIDs(family domain.ProviderFamily) []string {
	var ids []string
	for _, d := range r.ordered {
		if d.Family == family {
			ids = append(ids, d.ID)
		}
	}

	return ids
}
