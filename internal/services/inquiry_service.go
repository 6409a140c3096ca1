package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	twilio "github.com/twilio/twilio-go"

	"github.com/poofware/listing-browser/internal/config"
	"github.com/poofware/listing-browser/internal/constants"
	"github.com/poofware/listing-browser/internal/dtos"
	"github.com/poofware/listing-browser/internal/models"
	"github.com/poofware/listing-browser/internal/repositories"
	"github.com/poofware/listing-browser/internal/utils"
)

var inquiryLog = utils.ComponentLogger("inquiry_service")

var inquiryValidate = newInquiryValidator()

func newInquiryValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("phone_digits", func(fl validator.FieldLevel) bool {
		return utils.HasMinPhoneDigits(fl.Field().String())
	})
	_ = v.RegisterValidation("message_len", func(fl validator.FieldLevel) bool {
		return utf8.RuneCountInString(fl.Field().String()) >= constants.InquiryMinMessageChars
	})
	return v
}

// Messages shown next to each contact-form field.
var inquiryFieldMessages = map[string]map[string]string{
	"name": {
		"required": "Name is required",
	},
	"email": {
		"required": "Email is required",
		"email":    "Please enter a valid email address",
	},
	"phone": {
		"required":     "Phone number is required",
		"phone_digits": "Please enter a valid phone number",
	},
	"message": {
		"required":    "Message is required",
		"message_len": fmt.Sprintf("Message must be at least %d characters long", constants.InquiryMinMessageChars),
	},
}

// ------------------------------------------------------------------
// Service
// ------------------------------------------------------------------

type InquiryService interface {
	Submit(ctx context.Context, req dtos.InquiryRequest) (*models.Inquiry, error)
	List(ctx context.Context) ([]*models.Inquiry, error)
}

type inquiryService struct {
	cfg          *config.Config
	repo         repositories.InquiryRepository
	properties   repositories.PropertyRepository
	notifier     InquiryNotifier
	twilioClient *twilio.RestClient
	latency      latency
	now          func() time.Time
}

// NewInquiryService wires the inquiry desk. twilioClient may be nil, in
// which case phone numbers are only checked locally.
func NewInquiryService(
	cfg *config.Config,
	repo repositories.InquiryRepository,
	properties repositories.PropertyRepository,
	notifier InquiryNotifier,
	twilioClient *twilio.RestClient,
) InquiryService {
	return &inquiryService{
		cfg:          cfg,
		repo:         repo,
		properties:   properties,
		notifier:     notifier,
		twilioClient: twilioClient,
		latency:      latency{scale: cfg.EffectiveLatencyScale()},
		now:          time.Now,
	}
}

// ------------------------------------------------------------------
// Public API
// ------------------------------------------------------------------

func (s *inquiryService) Submit(ctx context.Context, req dtos.InquiryRequest) (*models.Inquiry, error) {
	//-----------------------------------------------------------------
	// 1) Form validation
	//-----------------------------------------------------------------
	req = trimInquiry(req)
	if err := validateInquiry(req); err != nil {
		return nil, err
	}

	//-----------------------------------------------------------------
	// 2) Deliverability checks (flag gated)
	//-----------------------------------------------------------------
	if err := s.checkReachable(ctx, req); err != nil {
		return nil, err
	}

	//-----------------------------------------------------------------
	// 3) Simulated submit, then store
	//-----------------------------------------------------------------
	if err := s.latency.wait(ctx, constants.InquiryLatency); err != nil {
		return nil, err
	}

	inquiry := &models.Inquiry{
		ID:          uuid.NewString(),
		PropertyID:  req.PropertyID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Message:     req.Message,
		SubmittedAt: s.now().UTC(),
	}
	if req.PropertyID != "" {
		p, err := s.properties.GetByID(ctx, req.PropertyID)
		if err != nil {
			return nil, err
		}
		inquiry.PropertyTitle = p.Title
	}

	stored, err := s.repo.Create(ctx, inquiry)
	if err != nil {
		return nil, err
	}
	inquiryLog.Infof("Stored inquiry id=%s from %s", stored.ID, stored.Email)

	//-----------------------------------------------------------------
	// 4) Notify
	//-----------------------------------------------------------------
	if err := s.notifier.Notify(ctx, stored); err != nil {
		inquiryLog.WithError(err).Errorf("Failed to notify about inquiry id=%s", stored.ID)
		return stored, fmt.Errorf("%w: %v", utils.ErrExternalServiceFailure, err)
	}
	return stored, nil
}

func (s *inquiryService) List(ctx context.Context) ([]*models.Inquiry, error) {
	if err := s.latency.wait(ctx, constants.InquiryListLatency); err != nil {
		return nil, err
	}
	return s.repo.ListAll(ctx)
}

// ------------------------------------------------------------------
// internals
// ------------------------------------------------------------------

func trimInquiry(req dtos.InquiryRequest) dtos.InquiryRequest {
	req.PropertyID = strings.TrimSpace(req.PropertyID)
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Message = strings.TrimSpace(req.Message)
	return req
}

func validateInquiry(req dtos.InquiryRequest) error {
	err := inquiryValidate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := inquiryFieldMessages[fe.Field()][fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
		}
		fields[fe.Field()] = msg
	}
	return &utils.ValidationError{Fields: fields}
}

func (s *inquiryService) checkReachable(ctx context.Context, req dtos.InquiryRequest) error {
	ok, err := utils.ValidateEmail(ctx, s.cfg.SendgridAPIKey, req.Email, s.cfg.LDFlag_ValidateInquiryEmailWithSG)
	if err != nil {
		return fmt.Errorf("%w: email validation: %v", utils.ErrExternalServiceFailure, err)
	}
	if !ok {
		return &utils.ValidationError{Fields: map[string]string{"email": inquiryFieldMessages["email"]["email"]}}
	}

	ok, err = utils.ValidatePhoneNumber(ctx, req.Phone, s.cfg.LDFlag_ValidateInquiryPhoneWithTwilio, s.twilioClient)
	if err != nil {
		return fmt.Errorf("%w: phone validation: %v", utils.ErrExternalServiceFailure, err)
	}
	if !ok {
		return &utils.ValidationError{Fields: map[string]string{"phone": inquiryFieldMessages["phone"]["phone_digits"]}}
	}
	return nil
}
