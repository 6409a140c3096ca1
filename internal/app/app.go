package app

import (
	"context"
	"fmt"

	twilio "github.com/twilio/twilio-go"
	"golang.org/x/sync/errgroup"

	"github.com/poofware/listing-browser/internal/config"
	"github.com/poofware/listing-browser/internal/models"
	"github.com/poofware/listing-browser/internal/repositories"
	"github.com/poofware/listing-browser/internal/seeding"
	"github.com/poofware/listing-browser/internal/services"
	"github.com/poofware/listing-browser/internal/utils"
)

// App struct holds references to config, stores & services.
type App struct {
	Config *config.Config

	PropertyRepo      repositories.PropertyRepository
	SavedPropertyRepo repositories.SavedPropertyRepository

	PropertyService      services.PropertyService
	SavedPropertyService services.SavedPropertyService
	FilterService        services.FilterService
	InquiryService       services.InquiryService
}

// NewApp loads the fixtures, seeds fresh in-memory stores and constructs
// the services around them.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	utils.Logger.Info("Initializing listing-browser App")

	//----------------------------------------------------------------------
	// 1) Fixtures (loaded concurrently)
	//----------------------------------------------------------------------
	var (
		props []*models.Property
		saved []*models.SavedProperty
	)
	g := new(errgroup.Group)
	g.Go(func() (err error) {
		props, err = seeding.LoadProperties(cfg.PropertyFixturePath)
		return err
	})
	g.Go(func() (err error) {
		saved, err = seeding.LoadSavedProperties(cfg.SavedPropertyFixturePath)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load fixtures: %w", err)
	}

	//----------------------------------------------------------------------
	// 2) Stores
	//----------------------------------------------------------------------
	propertyRepo := repositories.NewPropertyRepository()
	savedRepo := repositories.NewSavedPropertyRepository()
	if err := seeding.SeedProperties(ctx, propertyRepo, props); err != nil {
		return nil, err
	}
	if err := seeding.SeedSavedProperties(ctx, savedRepo, saved, props); err != nil {
		return nil, err
	}

	//----------------------------------------------------------------------
	// 3) External clients
	//----------------------------------------------------------------------
	var twilioClient *twilio.RestClient
	if cfg.TwilioEnabled() {
		twilioClient = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		})
	}

	var notifier services.InquiryNotifier
	if cfg.SendgridAPIKey != "" {
		notifier = services.NewSendgridNotifier(cfg)
	} else {
		utils.Logger.Debug("SENDGRID_API_KEY not set; inquiries are only logged")
		notifier = services.NewLogNotifier()
	}

	//----------------------------------------------------------------------
	// 4) Services
	//----------------------------------------------------------------------
	scale := cfg.EffectiveLatencyScale()

	return &App{
		Config:               cfg,
		PropertyRepo:         propertyRepo,
		SavedPropertyRepo:    savedRepo,
		PropertyService:      services.NewPropertyService(propertyRepo, scale),
		SavedPropertyService: services.NewSavedPropertyService(savedRepo, propertyRepo, scale),
		FilterService:        services.NewFilterService(repositories.NewSavedFilterRepository(), scale),
		InquiryService: services.NewInquiryService(
			cfg,
			repositories.NewInquiryRepository(),
			propertyRepo,
			notifier,
			twilioClient,
		),
	}, nil
}

// Close is a no-op here but included for consistency.
func (a *App) Close() {
	utils.Logger.Info("listing-browser app shutting down.")
}
