package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/poofware/listing-browser/internal/app"
	"github.com/poofware/listing-browser/internal/config"
	"github.com/poofware/listing-browser/internal/dtos"
	"github.com/poofware/listing-browser/internal/models"
	"github.com/poofware/listing-browser/internal/query"
	"github.com/poofware/listing-browser/internal/services"
	"github.com/poofware/listing-browser/internal/utils"
)

func main() {
	var (
		search   = flag.String("search", "", "free-text search over title, address, type and description")
		mode     = flag.String("mode", "buy", "listing mode: buy or rent")
		types    = flag.String("types", "", "comma-separated property types, e.g. House,Condo")
		priceMin = flag.Int64("min", 0, "minimum price (0 = none)")
		priceMax = flag.Int64("max", 0, "maximum price (0 = none)")
		beds     = flag.Int("beds", 0, "at least this many bedrooms")
		baths    = flag.Int("baths", 0, "at least this many bathrooms")
		location = flag.String("location", "", "address substring")
		near     = flag.String("near", "", "lat,lng,miles radius filter")
		toggle   = flag.String("toggle", "", "toggle the saved state of a property id")
		saved    = flag.Bool("saved", false, "list saved properties with their details")
		ranges   = flag.Bool("ranges", false, "list the price range buckets")
		filters  = flag.Bool("filters", false, "list property types and price ranges")

		update = flag.String("update", "", "property id to update with -patch")
		patch  = flag.String("patch", "", `partial property as JSON, e.g. '{"price": 450000}'`)

		inquire  = flag.Bool("inquire", false, "submit a contact-form inquiry")
		property = flag.String("property", "", "property id the inquiry is about (optional)")
		name     = flag.String("name", "", "inquiry: your name")
		email    = flag.String("email", "", "inquiry: your email")
		phone    = flag.String("phone", "", "inquiry: your phone number")
		message  = flag.String("message", "", "inquiry: message text")
	)
	flag.Parse()

	appName := config.AppName
	if appName == "" {
		appName = utils.DefaultAppName
	}
	utils.InitLogger(appName)

	// 1) Config
	cfg := config.LoadConfig()
	defer cfg.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2) Core application (stores, services)
	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to initialize app")
	}
	defer application.Close()

	// 3) One request, printed as JSON
	var out any
	switch {
	case *toggle != "":
		out, err = application.SavedPropertyService.ToggleSave(ctx, *toggle)
	case *saved:
		out, err = application.SavedPropertyService.ListWithDetails(ctx)
	case *ranges:
		out, err = application.FilterService.GetPriceRanges(ctx)
	case *filters:
		out, err = application.FilterService.GetFilterOptions(ctx)
	case *update != "":
		out, err = updateProperty(ctx, application.PropertyService, *update, *patch)
	case *inquire:
		out, err = submitInquiry(ctx, application.InquiryService, dtos.InquiryRequest{
			PropertyID: *property,
			Name:       *name,
			Email:      *email,
			Phone:      *phone,
			Message:    *message,
		})
	default:
		var q dtos.BrowseQuery
		q, err = browseQuery(*mode, *search, *types, *priceMin, *priceMax, *beds, *baths, *location, *near)
		if err == nil {
			out, err = application.PropertyService.Browse(ctx, q)
		}
	}
	if err != nil {
		utils.Logger.WithError(err).Fatal("Request failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		utils.Logger.WithError(err).Fatal("Failed to write output")
	}
}

func browseQuery(
	mode, search, types string,
	priceMin, priceMax int64,
	beds, baths int,
	location, near string,
) (dtos.BrowseQuery, error) {
	m, err := query.ParseListingMode(mode)
	if err != nil {
		return dtos.BrowseQuery{}, err
	}

	c := models.FilterCriteria{Location: location}
	if priceMin > 0 {
		c.PriceMin = utils.Ptr(priceMin)
	}
	if priceMax > 0 {
		c.PriceMax = utils.Ptr(priceMax)
	}
	if beds > 0 {
		c.Bedrooms = utils.Ptr(beds)
	}
	if baths > 0 {
		c.Bathrooms = utils.Ptr(baths)
	}
	for _, t := range strings.Split(types, ",") {
		if t = strings.TrimSpace(t); t != "" {
			c.PropertyType = append(c.PropertyType, models.PropertyType(t))
		}
	}
	if near != "" {
		c.Near, err = parseNear(near)
		if err != nil {
			return dtos.BrowseQuery{}, err
		}
	}

	if labels := c.Labels(); len(labels) > 0 {
		utils.Logger.Infof("Active filters (%d): %s", c.ActiveCount(), strings.Join(labels, " | "))
	}
	return dtos.BrowseQuery{Mode: m, SearchTerm: search, Criteria: c}, nil
}

func parseNear(s string) (*models.GeoRadius, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("-near wants lat,lng,miles, got %q", s)
	}
	var vals [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("-near: %w", err)
		}
		vals[i] = v
	}
	return &models.GeoRadius{Lat: vals[0], Lng: vals[1], RadiusMiles: vals[2]}, nil
}

// updateProperty applies a JSON partial object to property id.
func updateProperty(ctx context.Context, svc services.PropertyService, id, rawPatch string) (*models.Property, error) {
	if strings.TrimSpace(rawPatch) == "" {
		return nil, errors.New("-update needs -patch")
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(rawPatch), &fields); err != nil {
		return nil, fmt.Errorf("-patch: %w", err)
	}
	p, err := models.PatchFromMap(fields)
	if err != nil {
		return nil, err
	}
	if p.IsEmpty() {
		utils.Logger.Warnf("-patch for property %s changes nothing", id)
	}
	return svc.Update(ctx, id, p)
}

// submitInquiry sends the contact form. A failed notification still returns
// the stored inquiry's response.
func submitInquiry(ctx context.Context, svc services.InquiryService, req dtos.InquiryRequest) (*dtos.InquiryResponse, error) {
	inquiry, err := svc.Submit(ctx, req)
	if err != nil {
		if inquiry == nil || !errors.Is(err, utils.ErrExternalServiceFailure) {
			return nil, err
		}
		utils.Logger.WithError(err).Warnf("Inquiry %s stored but not delivered", inquiry.ID)
	}
	resp := dtos.NewInquiryResponse(inquiry)
	return &resp, nil
}
