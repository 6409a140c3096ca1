package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/poofware/listing-browser/internal/models"
	"github.com/poofware/listing-browser/internal/repositories"
	"github.com/poofware/listing-browser/internal/utils"
)

func newTestSavedService(t *testing.T) (SavedPropertyService, PropertyService) {
	t.Helper()
	propSvc, propRepo := newTestPropertyService(t)
	return NewSavedPropertyService(repositories.NewSavedPropertyRepository(), propRepo, 0), propSvc
}

func TestSavedPropertyService_ToggleTwice(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestSavedService(t)

	first, err := svc.ToggleSave(ctx, "1")
	require.NoError(t, err)
	require.True(t, first.Saved)
	require.NotNil(t, first.SavedProperty)
	require.Equal(t, "1", first.SavedProperty.PropertyID)
	require.NotEmpty(t, first.SavedProperty.ID)
	require.False(t, first.SavedProperty.SavedDate.IsZero())

	saved, err := svc.IsPropertySaved(ctx, "1")
	require.NoError(t, err)
	require.True(t, saved)

	second, err := svc.ToggleSave(ctx, "1")
	require.NoError(t, err)
	require.False(t, second.Saved)
	require.Nil(t, second.SavedProperty)

	saved, err = svc.IsPropertySaved(ctx, "1")
	require.NoError(t, err)
	require.False(t, saved)
}

func TestSavedPropertyService_ToggleUnknownProperty(t *testing.T) {
	svc, _ := newTestSavedService(t)

	// The property id is not required to exist.
	res, err := svc.ToggleSave(context.Background(), "ghost")
	require.NoError(t, err)
	require.True(t, res.Saved)
}

func TestSavedPropertyService_ConcurrentTogglesOnDifferentProperties(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestSavedService(t)

	const properties = 20
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < properties; i++ {
		id := fmt.Sprintf("p%d", i)
		g.Go(func() error {
			res, err := svc.ToggleSave(gctx, id)
			if err != nil {
				return err
			}
			if !res.Saved {
				return fmt.Errorf("first toggle of %s reported unsaved", id)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, properties)

	for i := 0; i < properties; i++ {
		saved, err := svc.IsPropertySaved(ctx, fmt.Sprintf("p%d", i))
		require.NoError(t, err)
		require.True(t, saved)
	}
}

func TestSavedPropertyService_AsyncToggles(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestSavedService(t)

	a := Async(ctx, func(ctx context.Context) (bool, error) {
		res, err := svc.ToggleSave(ctx, "1")
		return res.Saved, err
	})
	b := Async(ctx, func(ctx context.Context) (bool, error) {
		res, err := svc.ToggleSave(ctx, "2")
		return res.Saved, err
	})

	// Awaited out of order; each resolves on its own.
	savedB, err := b.Await(ctx)
	require.NoError(t, err)
	require.True(t, savedB)
	savedA, err := a.Await(ctx)
	require.NoError(t, err)
	require.True(t, savedA)
}

func TestSavedPropertyService_CreateGetDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestSavedService(t)

	created, err := svc.Create(ctx, &models.SavedProperty{ID: "ignored", PropertyID: "3"})
	require.NoError(t, err)
	require.NotEqual(t, "ignored", created.ID)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)

	require.NoError(t, svc.Delete(ctx, created.ID))
	require.ErrorIs(t, svc.Delete(ctx, created.ID), utils.ErrNotFound)

	_, err = svc.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, utils.ErrNotFound)
}

func TestSavedPropertyService_ListWithDetails(t *testing.T) {
	ctx := context.Background()
	svc, propSvc := newTestSavedService(t)

	for _, id := range []string{"3", "1", "2"} {
		_, err := svc.ToggleSave(ctx, id)
		require.NoError(t, err)
	}
	require.NoError(t, propSvc.Delete(ctx, "1"))
	_, err := propSvc.Update(ctx, "3", models.PropertyPatch{
		Coordinates: &models.Coordinates{Lat: 42.3577, Lng: -71.0622},
	})
	require.NoError(t, err)

	details, err := svc.ListWithDetails(ctx)
	require.NoError(t, err)
	require.Len(t, details, 2)
	require.Equal(t, "3", details[0].Property.ID)
	require.Equal(t, "Harbor Condo", details[0].Property.Title)
	require.Equal(t, "2", details[1].SavedProperty.PropertyID)

	// Boston is five hours behind UTC in January; no coordinates means UTC.
	require.Equal(t, "2023-12-31T19:00:00-05:00", details[0].LocalListingDate)
	require.Equal(t, "2024-01-01T00:00:00Z", details[1].LocalListingDate)

	local, err := time.Parse(time.RFC3339, details[0].LocalListingDate)
	require.NoError(t, err)
	require.True(t, local.Equal(details[0].Property.ListingDate))
}

func TestSavedPropertyService_CreateDoesNotDeduplicate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestSavedService(t)

	first, err := svc.Create(ctx, &models.SavedProperty{PropertyID: "2"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, &models.SavedProperty{PropertyID: "2"})
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	// One toggle clears every record of the property.
	res, err := svc.ToggleSave(ctx, "2")
	require.NoError(t, err)
	require.False(t, res.Saved)

	saved, err := svc.IsPropertySaved(ctx, "2")
	require.NoError(t, err)
	require.False(t, saved)

	all, err = svc.GetAll(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}
