package repositories

import (
	"context"

	"github.com/poofware/listing-browser/internal/models"
)

type InquiryRepository interface {
	Create(ctx context.Context, i *models.Inquiry) (*models.Inquiry, error)
	ListAll(ctx context.Context) ([]*models.Inquiry, error)
}

type inquiryRepo struct {
	*BaseMemoryRepo[*models.Inquiry]
}

func NewInquiryRepository() InquiryRepository {
	return &inquiryRepo{BaseMemoryRepo: NewBaseMemoryRepo[*models.Inquiry]("inquiry")}
}

func (r *inquiryRepo) Create(ctx context.Context, i *models.Inquiry) (*models.Inquiry, error) {
	return r.Insert(ctx, i)
}

func (r *inquiryRepo) ListAll(ctx context.Context) ([]*models.Inquiry, error) {
	return r.List(ctx)
}
