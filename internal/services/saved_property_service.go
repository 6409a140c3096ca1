package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/poofware/listing-browser/internal/constants"
	"github.com/poofware/listing-browser/internal/dtos"
	"github.com/poofware/listing-browser/internal/models"
	"github.com/poofware/listing-browser/internal/repositories"
	"github.com/poofware/listing-browser/internal/utils"
)

var savedLog = utils.ComponentLogger("saved_property_service")

type SavedPropertyService interface {
	GetAll(ctx context.Context) ([]*models.SavedProperty, error)
	GetByID(ctx context.Context, id string) (*models.SavedProperty, error)
	IsPropertySaved(ctx context.Context, propertyID string) (bool, error)
	ToggleSave(ctx context.Context, propertyID string) (dtos.ToggleSaveResult, error)

	Create(ctx context.Context, sp *models.SavedProperty) (*models.SavedProperty, error)
	Delete(ctx context.Context, id string) error

	// ListWithDetails joins each saved record with its property. Records
	// whose property no longer exists are left out.
	ListWithDetails(ctx context.Context) ([]dtos.SavedPropertyDetail, error)
}

type savedPropertyService struct {
	repo       repositories.SavedPropertyRepository
	properties repositories.PropertyRepository
	latency    latency
	now        func() time.Time
}

func NewSavedPropertyService(
	repo repositories.SavedPropertyRepository,
	properties repositories.PropertyRepository,
	latencyScale float64,
) SavedPropertyService {
	return &savedPropertyService{
		repo:       repo,
		properties: properties,
		latency:    latency{scale: latencyScale},
		now:        time.Now,
	}
}

func (s *savedPropertyService) GetAll(ctx context.Context) ([]*models.SavedProperty, error) {
	if err := s.latency.wait(ctx, constants.SavedListLatency); err != nil {
		return nil, err
	}
	return s.repo.ListAll(ctx)
}

func (s *savedPropertyService) GetByID(ctx context.Context, id string) (*models.SavedProperty, error) {
	if err := s.latency.wait(ctx, constants.SavedGetLatency); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *savedPropertyService) IsPropertySaved(ctx context.Context, propertyID string) (bool, error) {
	if err := s.latency.wait(ctx, constants.SavedCheckLatency); err != nil {
		return false, err
	}
	return s.repo.ExistsForProperty(ctx, propertyID)
}

func (s *savedPropertyService) ToggleSave(ctx context.Context, propertyID string) (dtos.ToggleSaveResult, error) {
	if err := s.latency.wait(ctx, constants.SavedToggleLatency); err != nil {
		return dtos.ToggleSaveResult{}, err
	}

	added, err := s.repo.Toggle(ctx, propertyID, s.newRecord)
	if err != nil {
		return dtos.ToggleSaveResult{}, err
	}
	if added == nil {
		savedLog.Infof("Unsaved property id=%s", propertyID)
		return dtos.ToggleSaveResult{Saved: false}, nil
	}
	savedLog.Infof("Saved property id=%s as %s", propertyID, added.ID)
	return dtos.ToggleSaveResult{Saved: true, SavedProperty: added}, nil
}

// Create stores sp under a fresh id, saved now. It does not check for an
// existing record of the same property, so a second Create for one property
// stores a second record. ToggleSave then removes them all at once.
func (s *savedPropertyService) Create(ctx context.Context, sp *models.SavedProperty) (*models.SavedProperty, error) {
	if err := s.latency.wait(ctx, constants.SavedWriteLatency); err != nil {
		return nil, err
	}
	record := s.newRecord()
	record.PropertyID = sp.PropertyID
	return s.repo.Create(ctx, record)
}

func (s *savedPropertyService) Delete(ctx context.Context, id string) error {
	if err := s.latency.wait(ctx, constants.SavedWriteLatency); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *savedPropertyService) ListWithDetails(ctx context.Context) ([]dtos.SavedPropertyDetail, error) {
	if err := s.latency.wait(ctx, constants.SavedListLatency); err != nil {
		return nil, err
	}

	saved, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dtos.SavedPropertyDetail, 0, len(saved))
	for _, sp := range saved {
		p, err := s.properties.GetByID(ctx, sp.PropertyID)
		if errors.Is(err, utils.ErrNotFound) {
			savedLog.Debugf("ListWithDetails: skipping saved id=%s, property %s is gone", sp.ID, sp.PropertyID)
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, dtos.SavedPropertyDetail{
			SavedProperty:    sp,
			Property:         p,
			LocalListingDate: p.LocalListingDate().Format(time.RFC3339),
		})
	}
	return out, nil
}

func (s *savedPropertyService) newRecord() *models.SavedProperty {
	return &models.SavedProperty{
		ID:        uuid.NewString(),
		SavedDate: s.now().UTC(),
	}
}
