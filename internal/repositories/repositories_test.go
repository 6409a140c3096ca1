package repositories

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/poofware/listing-browser/internal/models"
	"github.com/poofware/listing-browser/internal/utils"
)

func newProperty(id, title string, t models.PropertyType, price int64) *models.Property {
	return &models.Property{
		ID:           id,
		Title:        title,
		Address:      "1 Test St, Austin, TX",
		Price:        price,
		PropertyType: t,
		Images:       []string{"https://example.com/" + id + ".jpg"},
		ListingDate:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestPropertyRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewPropertyRepository()

	_, err := repo.Create(ctx, newProperty("1", "Loft", models.PropertyTypeApartment, 300_000))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newProperty("2", "Cottage", models.PropertyTypeHouse, 500_000))
	require.NoError(t, err)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "1", all[0].ID, "insertion order must be kept")

	got, err := repo.GetByID(ctx, "2")
	require.NoError(t, err)
	require.Equal(t, "Cottage", got.Title)

	_, err = repo.GetByID(ctx, "missing")
	require.ErrorIs(t, err, utils.ErrNotFound)

	updated, err := repo.Update(ctx, "1", func(p *models.Property) error {
		p.Price = 310_000
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, int64(310_000), updated.Price)

	require.NoError(t, repo.Delete(ctx, "1"))
	require.ErrorIs(t, repo.Delete(ctx, "1"), utils.ErrNotFound)

	all, err = repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestPropertyRepo_ReadsAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo := NewPropertyRepository()

	in := newProperty("1", "Loft", models.PropertyTypeApartment, 300_000)
	_, err := repo.Create(ctx, in)
	require.NoError(t, err)

	// Mutating the caller's value after insert leaves the stored copy alone.
	in.Title = "changed"
	in.Images[0] = "changed"

	got, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, "Loft", got.Title)
	require.NotEqual(t, "changed", got.Images[0])

	// Same for values handed out by reads.
	got.Price = 1
	again, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, int64(300_000), again.Price)
}

func TestPropertyRepo_UpdateErrorLeavesRecord(t *testing.T) {
	ctx := context.Background()
	repo := NewPropertyRepository()
	_, err := repo.Create(ctx, newProperty("1", "Loft", models.PropertyTypeApartment, 300_000))
	require.NoError(t, err)

	_, err = repo.Update(ctx, "1", func(p *models.Property) error {
		p.Price = 0
		return fmt.Errorf("boom")
	})
	require.Error(t, err)

	got, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, int64(300_000), got.Price)
}

func TestPropertyRepo_ListByType(t *testing.T) {
	ctx := context.Background()
	repo := NewPropertyRepository()
	for i, pt := range []models.PropertyType{
		models.PropertyTypeHouse, models.PropertyTypeCondo, models.PropertyTypeHouse,
	} {
		_, err := repo.Create(ctx, newProperty(fmt.Sprint(i), "p", pt, 1))
		require.NoError(t, err)
	}

	houses, err := repo.ListByType(ctx, "house")
	require.NoError(t, err)
	require.Len(t, houses, 2)

	none, err := repo.ListByType(ctx, "Hous")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestSavedPropertyRepo_Toggle(t *testing.T) {
	ctx := context.Background()
	repo := NewSavedPropertyRepository()

	build := func() *models.SavedProperty {
		return &models.SavedProperty{ID: uuid.NewString(), SavedDate: time.Now().UTC()}
	}

	added, err := repo.Toggle(ctx, "p1", build)
	require.NoError(t, err)
	require.NotNil(t, added)
	require.Equal(t, "p1", added.PropertyID)

	exists, err := repo.ExistsForProperty(ctx, "p1")
	require.NoError(t, err)
	require.True(t, exists)

	removed, err := repo.Toggle(ctx, "p1", build)
	require.NoError(t, err)
	require.Nil(t, removed)

	exists, err = repo.ExistsForProperty(ctx, "p1")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestSavedPropertyRepo_ToggleConcurrent(t *testing.T) {
	ctx := context.Background()
	repo := NewSavedPropertyRepository()

	const toggles = 51
	var wg sync.WaitGroup
	errCh := make(chan error, toggles)
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Toggle(ctx, "p1", func() *models.SavedProperty {
				return &models.SavedProperty{ID: uuid.NewString(), SavedDate: time.Now().UTC()}
			})
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)

	for e := range errCh {
		require.NoError(t, e)
	}

	// An odd number of toggles leaves exactly one record.
	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestSavedFilterRepo_CreateListDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewSavedFilterRepository()

	f, err := repo.Create(ctx, &models.SavedFilter{
		ID:       "f1",
		Name:     "Cheap condos",
		Criteria: models.FilterCriteria{PriceMax: utils.Ptr(int64(200_000))},
	})
	require.NoError(t, err)
	require.Equal(t, "f1", f.ID)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, int64(200_000), *all[0].Criteria.PriceMax)

	require.NoError(t, repo.Delete(ctx, "f1"))
	require.ErrorIs(t, repo.Delete(ctx, "f1"), utils.ErrNotFound)
}
