package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/poofware/listing-browser/internal/config"
	"github.com/poofware/listing-browser/internal/dtos"
	"github.com/poofware/listing-browser/internal/models"
	"github.com/poofware/listing-browser/internal/repositories"
	"github.com/poofware/listing-browser/internal/services"
	"github.com/poofware/listing-browser/internal/utils"
)

func TestBrowseQuery(t *testing.T) {
	q, err := browseQuery("rent", "loft", "House, Condo,", 0, 3000, 2, 0, "austin", "30.27,-97.74,10")
	require.NoError(t, err)

	require.Equal(t, dtos.ListingModeRent, q.Mode)
	require.Equal(t, "loft", q.SearchTerm)
	require.Nil(t, q.Criteria.PriceMin)
	require.Equal(t, int64(3000), *q.Criteria.PriceMax)
	require.Equal(t, 2, *q.Criteria.Bedrooms)
	require.Nil(t, q.Criteria.Bathrooms)
	require.Equal(t, []models.PropertyType{"House", "Condo"}, q.Criteria.PropertyType)
	require.Equal(t, &models.GeoRadius{Lat: 30.27, Lng: -97.74, RadiusMiles: 10}, q.Criteria.Near)
}

func TestBrowseQuery_Errors(t *testing.T) {
	_, err := browseQuery("lease", "", "", 0, 0, 0, 0, "", "")
	require.Error(t, err)

	_, err = browseQuery("buy", "", "", 0, 0, 0, 0, "", "30.27,-97.74")
	require.Error(t, err)

	_, err = browseQuery("buy", "", "", 0, 0, 0, 0, "", "a,b,c")
	require.Error(t, err)
}

func seededPropertyRepo(t *testing.T) repositories.PropertyRepository {
	t.Helper()
	repo := repositories.NewPropertyRepository()
	_, err := repo.Create(context.Background(), &models.Property{
		ID:           "7",
		Title:        "Maple Townhouse",
		Address:      "1402 Maple Ln, Round Rock, TX",
		Price:        340_000,
		PropertyType: models.PropertyTypeTownhouse,
		Bedrooms:     3,
		Bathrooms:    2,
		ListingDate:  time.Date(2024, 4, 2, 14, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return repo
}

func TestUpdateProperty(t *testing.T) {
	ctx := context.Background()
	svc := services.NewPropertyService(seededPropertyRepo(t), 0)

	updated, err := updateProperty(ctx, svc, "7", `{"price": 355000, "title": "Maple Townhome", "bogus": true}`)
	require.NoError(t, err)
	require.Equal(t, int64(355_000), updated.Price)
	require.Equal(t, "Maple Townhome", updated.Title)
	require.Equal(t, 3, updated.Bedrooms)

	got, err := svc.GetByID(ctx, "7")
	require.NoError(t, err)
	require.Equal(t, int64(355_000), got.Price)
}

func TestUpdateProperty_Errors(t *testing.T) {
	ctx := context.Background()
	svc := services.NewPropertyService(seededPropertyRepo(t), 0)

	_, err := updateProperty(ctx, svc, "7", "")
	require.Error(t, err)

	_, err = updateProperty(ctx, svc, "7", `{"price":`)
	require.Error(t, err)

	_, err = updateProperty(ctx, svc, "missing", `{"price": 1}`)
	require.ErrorIs(t, err, utils.ErrNotFound)
}

type failingNotifier struct{}

func (failingNotifier) Notify(context.Context, *models.Inquiry) error {
	return errors.New("mail relay unavailable")
}

func TestSubmitInquiry(t *testing.T) {
	ctx := context.Background()
	req := dtos.InquiryRequest{
		PropertyID: "7",
		Name:       "Jordan",
		Email:      "jordan@example.com",
		Phone:      "(512) 555-0142",
		Message:    "Can I tour it this weekend?",
	}

	tests := []struct {
		name     string
		notifier services.InquiryNotifier
	}{
		{"delivered", services.NewLogNotifier()},
		{"stored but not delivered", failingNotifier{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := services.NewInquiryService(&config.Config{}, repositories.NewInquiryRepository(),
				seededPropertyRepo(t), tc.notifier, nil)

			resp, err := submitInquiry(ctx, svc, req)
			require.NoError(t, err)
			require.NotEmpty(t, resp.ID)
			require.Contains(t, resp.Message, "Jordan")
			require.Contains(t, resp.Message, "Maple Townhouse")

			all, err := svc.List(ctx)
			require.NoError(t, err)
			require.Len(t, all, 1)
		})
	}
}

func TestSubmitInquiry_Invalid(t *testing.T) {
	svc := services.NewInquiryService(&config.Config{}, repositories.NewInquiryRepository(),
		seededPropertyRepo(t), services.NewLogNotifier(), nil)

	resp, err := submitInquiry(context.Background(), svc, dtos.InquiryRequest{Name: "Jordan"})
	require.ErrorIs(t, err, utils.ErrInvalidInquiry)
	require.Nil(t, resp)
}
