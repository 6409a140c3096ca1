package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/poofware/listing-browser/internal/constants"
	"github.com/poofware/listing-browser/internal/dtos"
	"github.com/poofware/listing-browser/internal/models"
	"github.com/poofware/listing-browser/internal/repositories"
	"github.com/poofware/listing-browser/internal/utils"
)

var filterLog = utils.ComponentLogger("filter_service")

type FilterService interface {
	GetPropertyTypes(ctx context.Context) ([]models.PropertyType, error)
	GetPriceRanges(ctx context.Context) ([]models.PriceRange, error)
	GetFilterOptions(ctx context.Context) (dtos.FilterOptions, error)

	SaveFilter(ctx context.Context, name string, criteria models.FilterCriteria) (*models.SavedFilter, error)
	GetSavedFilters(ctx context.Context) ([]*models.SavedFilter, error)
	DeleteFilter(ctx context.Context, id string) error
}

type filterService struct {
	repo    repositories.SavedFilterRepository
	latency latency
	now     func() time.Time
}

func NewFilterService(repo repositories.SavedFilterRepository, latencyScale float64) FilterService {
	return &filterService{
		repo:    repo,
		latency: latency{scale: latencyScale},
		now:     time.Now,
	}
}

func (s *filterService) GetPropertyTypes(ctx context.Context) ([]models.PropertyType, error) {
	if err := s.latency.wait(ctx, constants.FilterLatency); err != nil {
		return nil, err
	}
	return models.PropertyTypes(), nil
}

// GetPriceRanges returns the price picker buckets, cheapest first. The last
// bucket is unbounded above.
func (s *filterService) GetPriceRanges(ctx context.Context) ([]models.PriceRange, error) {
	if err := s.latency.wait(ctx, constants.FilterLatency); err != nil {
		return nil, err
	}
	return []models.PriceRange{
		{Label: "Under $200K", Min: 0, Max: utils.Ptr(int64(200_000))},
		{Label: "$200K - $400K", Min: 200_000, Max: utils.Ptr(int64(400_000))},
		{Label: "$400K - $600K", Min: 400_000, Max: utils.Ptr(int64(600_000))},
		{Label: "$600K - $800K", Min: 600_000, Max: utils.Ptr(int64(800_000))},
		{Label: "$800K - $1M", Min: 800_000, Max: utils.Ptr(int64(1_000_000))},
		{Label: "Over $1M", Min: 1_000_000, Max: nil},
	}, nil
}

// GetFilterOptions fetches types and price ranges concurrently, so it costs
// one round trip rather than two.
func (s *filterService) GetFilterOptions(ctx context.Context) (dtos.FilterOptions, error) {
	types := Async(ctx, s.GetPropertyTypes)
	ranges := Async(ctx, s.GetPriceRanges)

	t, err := types.Await(ctx)
	if err != nil {
		return dtos.FilterOptions{}, err
	}
	r, err := ranges.Await(ctx)
	if err != nil {
		return dtos.FilterOptions{}, err
	}
	return dtos.FilterOptions{PropertyTypes: t, PriceRanges: r}, nil
}

func (s *filterService) SaveFilter(ctx context.Context, name string, criteria models.FilterCriteria) (*models.SavedFilter, error) {
	if err := s.latency.wait(ctx, constants.FilterLatency); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.Join(criteria.Labels(), ", ")
	}

	saved, err := s.repo.Create(ctx, &models.SavedFilter{
		ID:        uuid.NewString(),
		Name:      name,
		Criteria:  criteria.Clone(),
		SavedDate: s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	filterLog.Infof("Saved filter id=%s (%s)", saved.ID, saved.Name)
	return saved, nil
}

func (s *filterService) GetSavedFilters(ctx context.Context) ([]*models.SavedFilter, error) {
	if err := s.latency.wait(ctx, constants.FilterLatency); err != nil {
		return nil, err
	}
	return s.repo.ListAll(ctx)
}

func (s *filterService) DeleteFilter(ctx context.Context, id string) error {
	if err := s.latency.wait(ctx, constants.FilterLatency); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	filterLog.Infof("Deleted filter id=%s", id)
	return nil
}
