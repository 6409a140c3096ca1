package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"
	"github.com/launchdarkly/go-server-sdk/v7/ldcomponents"

	"github.com/poofware/listing-browser/internal/utils"
)

type Config struct {
	OrganizationName string
	AppName          string
	Env              string

	// Fixtures; empty means the embedded defaults.
	PropertyFixturePath      string
	SavedPropertyFixturePath string

	// Multiplier applied to every simulated latency. 0 disables waiting.
	LatencyScale float64

	SendgridAPIKey   string
	TwilioAccountSID string
	TwilioAuthToken  string

	// Feature-flag snapshots
	LDFlag_SimulateNetworkLatency         bool
	LDFlag_InquiryFromEmail               string
	LDFlag_InquiryNotifyEmail             string
	LDFlag_ValidateInquiryEmailWithSG     bool
	LDFlag_ValidateInquiryPhoneWithTwilio bool

	ldClient *ld.LDClient
}

const (
	OrganizationName    = utils.OrganizationName
	LDConnectionTimeout = 5 * time.Second

	defaultEnv                 = "dev"
	defaultLDServerContextKind = "service"
)

// build-time overrides, set with -ldflags
var (
	AppName             string
	LDServerContextKey  string
	LDServerContextKind string
)

// LoadConfig reads the process environment. Any invalid setting is fatal.
func LoadConfig() *Config {
	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to load config")
	}
	return cfg
}

func loadConfig(getenv func(string) string) (*Config, error) {
	//----------------------------------------------------------------------
	// 1) Build-time values
	//----------------------------------------------------------------------
	appName := AppName
	if appName == "" {
		appName = utils.DefaultAppName
	}
	ctxKey := LDServerContextKey
	if ctxKey == "" {
		ctxKey = appName
	}
	ctxKind := LDServerContextKind
	if ctxKind == "" {
		ctxKind = defaultLDServerContextKind
	}

	utils.Logger.Info("Loading config for app: ", appName)

	//----------------------------------------------------------------------
	// 2) Runtime environment vars
	//----------------------------------------------------------------------
	env := getenv("ENV")
	if env == "" {
		env = defaultEnv
	}

	latencyScale := 1.0
	if raw := getenv("SIMULATED_LATENCY_SCALE"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("SIMULATED_LATENCY_SCALE must be a non-negative number, got %q", raw)
		}
		latencyScale = v
	}

	twilioSID := getenv("TWILIO_ACCOUNT_SID")
	twilioToken := getenv("TWILIO_AUTH_TOKEN")
	if (twilioSID == "") != (twilioToken == "") {
		return nil, fmt.Errorf("TWILIO_ACCOUNT_SID and TWILIO_AUTH_TOKEN must be set together")
	}

	//----------------------------------------------------------------------
	// 3) LaunchDarkly client & flags
	//----------------------------------------------------------------------
	ldClient, err := newLDClient(getenv("LD_SDK_KEY"))
	if err != nil {
		return nil, err
	}
	ldCtx := ldcontext.NewWithKind(ldcontext.Kind(ctxKind), ctxKey)

	simulateLatency := boolFlag(ldClient, ldCtx, "simulate_network_latency", true)
	fromEmail := stringFlag(ldClient, ldCtx, "inquiry_from_email", utils.DefaultInquiryFromEmail)
	notifyEmail := stringFlag(ldClient, ldCtx, "inquiry_notify_email", utils.DefaultInquiryNotifyEmail)
	validateWithSG := boolFlag(ldClient, ldCtx, "validate_inquiry_email_with_sendgrid", false)
	validateWithTwilio := boolFlag(ldClient, ldCtx, "validate_inquiry_phone_with_twilio", false)

	utils.Logger.Infof("Loaded config for %s (%s)", appName, env)

	return &Config{
		OrganizationName:                      OrganizationName,
		AppName:                               appName,
		Env:                                   env,
		PropertyFixturePath:                   getenv("PROPERTY_FIXTURE_PATH"),
		SavedPropertyFixturePath:              getenv("SAVED_PROPERTY_FIXTURE_PATH"),
		LatencyScale:                          latencyScale,
		SendgridAPIKey:                        getenv("SENDGRID_API_KEY"),
		TwilioAccountSID:                      twilioSID,
		TwilioAuthToken:                       twilioToken,
		LDFlag_SimulateNetworkLatency:         simulateLatency,
		LDFlag_InquiryFromEmail:               fromEmail,
		LDFlag_InquiryNotifyEmail:             notifyEmail,
		LDFlag_ValidateInquiryEmailWithSG:     validateWithSG,
		LDFlag_ValidateInquiryPhoneWithTwilio: validateWithTwilio,
		ldClient:                              ldClient,
	}, nil
}

// newLDClient connects to LaunchDarkly when an SDK key is present. Without
// one the client runs offline and every flag takes its default.
func newLDClient(sdkKey string) (*ld.LDClient, error) {
	if sdkKey == "" {
		utils.Logger.Debug("LD_SDK_KEY not set; LaunchDarkly running offline")
		return ld.MakeCustomClient("", ld.Config{
			Offline: true,
			Logging: ldcomponents.NoLogging(),
		}, 0)
	}

	client, err := ld.MakeClient(sdkKey, LDConnectionTimeout)
	if err != nil {
		return nil, fmt.Errorf("create LaunchDarkly client: %w", err)
	}
	if !client.Initialized() {
		client.Close()
		return nil, fmt.Errorf("LaunchDarkly client failed to initialize")
	}
	return client, nil
}

func boolFlag(client *ld.LDClient, ctx ldcontext.Context, key string, def bool) bool {
	v, err := client.BoolVariation(key, ctx, def)
	if err != nil {
		utils.Logger.WithError(err).Debugf("%s flag unavailable; using default %t", key, def)
		return def
	}
	utils.Logger.Debugf("%s flag: %t", key, v)
	return v
}

func stringFlag(client *ld.LDClient, ctx ldcontext.Context, key string, def string) string {
	v, err := client.StringVariation(key, ctx, def)
	if err != nil || v == "" {
		utils.Logger.Debugf("%s flag unavailable; using default %s", key, def)
		return def
	}
	utils.Logger.Debugf("%s flag: %s", key, v)
	return v
}

// EffectiveLatencyScale is the latency multiplier the services should use.
func (c *Config) EffectiveLatencyScale() float64 {
	if !c.LDFlag_SimulateNetworkLatency {
		return 0
	}
	return c.LatencyScale
}

// TwilioEnabled reports whether Twilio credentials are configured.
func (c *Config) TwilioEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != ""
}

func (c *Config) Close() {
	if c.ldClient != nil {
		_ = c.ldClient.Close()
	}
}
