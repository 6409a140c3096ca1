package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/poofware/listing-browser/internal/constants"
	"github.com/poofware/listing-browser/internal/dtos"
	"github.com/poofware/listing-browser/internal/models"
	"github.com/poofware/listing-browser/internal/query"
	"github.com/poofware/listing-browser/internal/repositories"
	"github.com/poofware/listing-browser/internal/utils"
)

var propertyLog = utils.ComponentLogger("property_service")

// ------------------------------------------------------------------
// Service
// ------------------------------------------------------------------

type PropertyService interface {
	GetAll(ctx context.Context) ([]*models.Property, error)
	GetByID(ctx context.Context, id string) (*models.Property, error)
	GetByType(ctx context.Context, propertyType string) ([]*models.Property, error)
	Search(ctx context.Context, criteria models.FilterCriteria) ([]*models.Property, error)

	Create(ctx context.Context, p *models.Property) (*models.Property, error)
	Update(ctx context.Context, id string, patch models.PropertyPatch) (*models.Property, error)
	Delete(ctx context.Context, id string) error

	// Browse runs the listings page query: optional rental pricing, then
	// free text, then criteria.
	Browse(ctx context.Context, q dtos.BrowseQuery) ([]*models.Property, error)
}

type propertyService struct {
	repo    repositories.PropertyRepository
	latency latency
	now     func() time.Time
}

func NewPropertyService(repo repositories.PropertyRepository, latencyScale float64) PropertyService {
	return &propertyService{
		repo:    repo,
		latency: latency{scale: latencyScale},
		now:     time.Now,
	}
}

// ------------------------------------------------------------------
// Reads
// ------------------------------------------------------------------

func (s *propertyService) GetAll(ctx context.Context) ([]*models.Property, error) {
	if err := s.latency.wait(ctx, constants.PropertyListLatency); err != nil {
		return nil, err
	}
	return s.repo.ListAll(ctx)
}

func (s *propertyService) GetByID(ctx context.Context, id string) (*models.Property, error) {
	if err := s.latency.wait(ctx, constants.PropertyGetLatency); err != nil {
		return nil, err
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		propertyLog.WithError(err).Debugf("GetByID: property id=%s", id)
		return nil, err
	}
	return p, nil
}

func (s *propertyService) GetByType(ctx context.Context, propertyType string) ([]*models.Property, error) {
	if err := s.latency.wait(ctx, constants.PropertyListLatency); err != nil {
		return nil, err
	}
	return s.repo.ListByType(ctx, propertyType)
}

func (s *propertyService) Search(ctx context.Context, criteria models.FilterCriteria) ([]*models.Property, error) {
	if err := s.latency.wait(ctx, constants.PropertySearchLatency); err != nil {
		return nil, err
	}
	out, err := s.repo.Find(ctx, query.MatchesCriteria(criteria))
	if err != nil {
		return nil, err
	}
	propertyLog.Debugf("Search: %d filters active, %d matches", criteria.ActiveCount(), len(out))
	return out, nil
}

func (s *propertyService) Browse(ctx context.Context, q dtos.BrowseQuery) ([]*models.Property, error) {
	if err := s.latency.wait(ctx, constants.PropertySearchLatency); err != nil {
		return nil, err
	}
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if q.Mode == dtos.ListingModeRent {
		all = query.ToRentalView(all)
	}
	out := query.Filter(all, query.MatchesText(q.SearchTerm), query.MatchesCriteria(q.Criteria))
	propertyLog.Debugf("Browse(%s): term=%q, %d filters active, %d matches",
		q.Mode, q.SearchTerm, q.Criteria.ActiveCount(), len(out))
	return out, nil
}

// ------------------------------------------------------------------
// Writes
// ------------------------------------------------------------------

// Create stores a copy of p under a fresh id, listed now. Any id or listing
// date on p is ignored.
func (s *propertyService) Create(ctx context.Context, p *models.Property) (*models.Property, error) {
	if err := s.latency.wait(ctx, constants.PropertyWriteLatency); err != nil {
		return nil, err
	}

	record := p.Clone()
	record.ID = uuid.NewString()
	record.ListingDate = s.now().UTC()

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	propertyLog.Infof("Created property id=%s (%s)", created.ID, created.Title)
	return created, nil
}

func (s *propertyService) Update(ctx context.Context, id string, patch models.PropertyPatch) (*models.Property, error) {
	if err := s.latency.wait(ctx, constants.PropertyWriteLatency); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, func(p *models.Property) error {
		patch.Apply(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	propertyLog.Infof("Updated property id=%s", id)
	return updated, nil
}

func (s *propertyService) Delete(ctx context.Context, id string) error {
	if err := s.latency.wait(ctx, constants.PropertyWriteLatency); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	propertyLog.Infof("Deleted property id=%s", id)
	return nil
}
