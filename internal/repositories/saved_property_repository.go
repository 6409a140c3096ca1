package repositories

import (
	"context"

	"github.com/poofware/listing-browser/internal/models"
)

type SavedPropertyRepository interface {
	Create(ctx context.Context, sp *models.SavedProperty) (*models.SavedProperty, error)

	GetByID(ctx context.Context, id string) (*models.SavedProperty, error)
	ListAll(ctx context.Context) ([]*models.SavedProperty, error)
	ExistsForProperty(ctx context.Context, propertyID string) (bool, error)

	// Toggle removes the record for propertyID if one exists, otherwise it
	// stores the record returned by build. The lookup and the mutation happen
	// as one step. The returned record is nil when the property was unsaved.
	Toggle(ctx context.Context, propertyID string, build func() *models.SavedProperty) (*models.SavedProperty, error)

	Delete(ctx context.Context, id string) error
}

type savedPropertyRepo struct {
	*BaseMemoryRepo[*models.SavedProperty]
}

func NewSavedPropertyRepository() SavedPropertyRepository {
	return &savedPropertyRepo{BaseMemoryRepo: NewBaseMemoryRepo[*models.SavedProperty]("saved property")}
}

func (r *savedPropertyRepo) Create(ctx context.Context, sp *models.SavedProperty) (*models.SavedProperty, error) {
	return r.Insert(ctx, sp)
}

func (r *savedPropertyRepo) ListAll(ctx context.Context) ([]*models.SavedProperty, error) {
	return r.List(ctx)
}

func (r *savedPropertyRepo) ExistsForProperty(ctx context.Context, propertyID string) (bool, error) {
	return r.Any(ctx, func(sp *models.SavedProperty) bool {
		return sp.PropertyID == propertyID
	})
}

func (r *savedPropertyRepo) Toggle(
	_ context.Context,
	propertyID string,
	build func() *models.SavedProperty,
) (*models.SavedProperty, error) {
	var added *models.SavedProperty

	r.WithLock(func(items []*models.SavedProperty) []*models.SavedProperty {
		kept := items[:0]
		removed := false
		for _, sp := range items {
			if sp.PropertyID == propertyID {
				removed = true
				continue
			}
			kept = append(kept, sp)
		}
		if removed {
			return kept
		}

		sp := build()
		sp.PropertyID = propertyID
		added = sp.Clone()
		return append(kept, sp.Clone())
	})

	return added, nil
}
