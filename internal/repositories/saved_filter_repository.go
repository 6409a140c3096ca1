package repositories

import (
	"context"

	"github.com/poofware/listing-browser/internal/models"
)

type SavedFilterRepository interface {
	Create(ctx context.Context, f *models.SavedFilter) (*models.SavedFilter, error)
	ListAll(ctx context.Context) ([]*models.SavedFilter, error)
	Delete(ctx context.Context, id string) error
}

type savedFilterRepo struct {
	*BaseMemoryRepo[*models.SavedFilter]
}

func NewSavedFilterRepository() SavedFilterRepository {
	return &savedFilterRepo{BaseMemoryRepo: NewBaseMemoryRepo[*models.SavedFilter]("saved filter")}
}

func (r *savedFilterRepo) Create(ctx context.Context, f *models.SavedFilter) (*models.SavedFilter, error) {
	return r.Insert(ctx, f)
}

func (r *savedFilterRepo) ListAll(ctx context.Context) ([]*models.SavedFilter, error) {
	return r.List(ctx)
}
