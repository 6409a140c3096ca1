package repositories

import (
	"context"
	"strings"

	"github.com/poofware/listing-browser/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) (*models.Property, error)

	GetByID(ctx context.Context, id string) (*models.Property, error)
	ListAll(ctx context.Context) ([]*models.Property, error)
	ListByType(ctx context.Context, propertyType string) ([]*models.Property, error)
	Find(ctx context.Context, keep func(*models.Property) bool) ([]*models.Property, error)

	Update(ctx context.Context, id string, mutate func(*models.Property) error) (*models.Property, error)
	Delete(ctx context.Context, id string) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type propertyRepo struct {
	*BaseMemoryRepo[*models.Property]
}

func NewPropertyRepository() PropertyRepository {
	return &propertyRepo{BaseMemoryRepo: NewBaseMemoryRepo[*models.Property]("property")}
}

func (r *propertyRepo) Create(ctx context.Context, p *models.Property) (*models.Property, error) {
	return r.Insert(ctx, p)
}

func (r *propertyRepo) ListAll(ctx context.Context) ([]*models.Property, error) {
	return r.List(ctx)
}

// ListByType matches the property type exactly, ignoring case.
func (r *propertyRepo) ListByType(ctx context.Context, propertyType string) ([]*models.Property, error) {
	return r.Find(ctx, func(p *models.Property) bool {
		return strings.EqualFold(string(p.PropertyType), propertyType)
	})
}
