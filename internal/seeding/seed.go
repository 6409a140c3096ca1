package seeding

import (
	"context"
	"fmt"

	"github.com/poofware/listing-browser/internal/models"
	"github.com/poofware/listing-browser/internal/repositories"
	"github.com/poofware/listing-browser/internal/utils"
)

// SeedProperties inserts props into repo in fixture order.
func SeedProperties(ctx context.Context, repo repositories.PropertyRepository, props []*models.Property) error {
	for _, p := range props {
		if _, err := repo.Create(ctx, p); err != nil {
			return fmt.Errorf("seed property id=%s: %w", p.ID, err)
		}
	}
	utils.Logger.Infof("seeding: loaded %d properties", len(props))
	return nil
}

// SeedSavedProperties inserts saved into repo in fixture order. Records that
// point at a property missing from the catalogue are kept, with a warning.
func SeedSavedProperties(
	ctx context.Context,
	repo repositories.SavedPropertyRepository,
	saved []*models.SavedProperty,
	catalogue []*models.Property,
) error {
	known := make(map[string]struct{}, len(catalogue))
	for _, p := range catalogue {
		known[p.ID] = struct{}{}
	}

	for _, sp := range saved {
		if _, ok := known[sp.PropertyID]; !ok {
			utils.Logger.Warnf("seeding: saved property id=%s references unknown property %s", sp.ID, sp.PropertyID)
		}
		if _, err := repo.Create(ctx, sp); err != nil {
			return fmt.Errorf("seed saved property id=%s: %w", sp.ID, err)
		}
	}
	utils.Logger.Infof("seeding: loaded %d saved properties", len(saved))
	return nil
}
