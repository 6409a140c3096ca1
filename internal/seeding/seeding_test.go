package seeding

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/poofware/listing-browser/internal/models"
	"github.com/poofware/listing-browser/internal/repositories"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadProperties_EmbeddedDefault(t *testing.T) {
	props, err := LoadProperties("")
	require.NoError(t, err)
	require.Len(t, props, 8)
	require.Equal(t, "1", props[0].ID)
	require.Equal(t, "Modern Downtown Loft", props[0].Title)
	require.Equal(t, 2.5, props[1].Bathrooms)
	require.Nil(t, props[7].Coordinates)

	for _, p := range props {
		require.True(t, p.PropertyType.IsValid(), "fixture property %s", p.ID)
	}
}

func TestLoadSavedProperties_EmbeddedDefault(t *testing.T) {
	saved, err := LoadSavedProperties("")
	require.NoError(t, err)
	require.Len(t, saved, 2)
	require.Equal(t, "2", saved[0].PropertyID)
}

func TestLoadProperties_YAML(t *testing.T) {
	path := writeFile(t, "props.yaml", `
- id: a
  title: Garden Flat
  address: 1 Elm St, Portland, OR
  price: 410000
  propertyType: Apartment
  bedrooms: 1
  bathrooms: 1
  squareFeet: 700
  images: []
  description: Ground floor.
  listingDate: 2024-05-01T00:00:00Z
  coordinates:
    lat: 45.52
    lng: -122.68
- id: b
  title: Odd One
  address: Somewhere
  price: 1
  propertyType: Castle
  listingDate: 2024-05-02T00:00:00Z
`)

	props, err := LoadProperties(path)
	require.NoError(t, err)
	require.Len(t, props, 2)
	require.Equal(t, int64(410000), props[0].Price)
	require.Equal(t, 45.52, props[0].Coordinates.Lat)
	require.Equal(t, 2024, props[0].ListingDate.Year())

	// Unknown types only warn.
	require.Equal(t, models.PropertyType("Castle"), props[1].PropertyType)
}

func TestLoadProperties_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"duplicate id", "dup.json", `[{"id":"1"},{"id":"1"}]`},
		{"missing id", "noid.json", `[{"title":"x"}]`},
		{"malformed json", "bad.json", `[{"id":`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadProperties(writeFile(t, tc.file, tc.body))
			require.Error(t, err)
		})
	}

	_, err := LoadProperties(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadSavedProperties_RejectsDoubleSave(t *testing.T) {
	path := writeFile(t, "saved.json", `[
		{"id":"s1","propertyId":"1","savedDate":"2024-01-01T00:00:00Z"},
		{"id":"s2","propertyId":"1","savedDate":"2024-01-02T00:00:00Z"}
	]`)
	_, err := LoadSavedProperties(path)
	require.Error(t, err)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()

	props, err := LoadProperties("")
	require.NoError(t, err)
	saved, err := LoadSavedProperties("")
	require.NoError(t, err)

	propRepo := repositories.NewPropertyRepository()
	savedRepo := repositories.NewSavedPropertyRepository()
	require.NoError(t, SeedProperties(ctx, propRepo, props))
	require.NoError(t, SeedSavedProperties(ctx, savedRepo, saved, props))

	all, err := propRepo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(props))
	for i := range props {
		require.Equal(t, props[i].ID, all[i].ID)
	}

	ok, err := savedRepo.ExistsForProperty(ctx, "5")
	require.NoError(t, err)
	require.True(t, ok)
}
