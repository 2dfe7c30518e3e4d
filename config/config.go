package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
	Region          string
}

// Config is the full runtime configuration, built from the environment.
type Config struct {
	Port       string
	PublicHost string

	WebhookSecret      string
	WebhookVerifyToken string

	// Chat provider (WhatsApp Cloud style graph API).
	GraphBaseURL  string
	GraphToken    string
	PhoneNumberID string

	// External collaborators.
	AIBaseURL       string
	AIKey           string
	SafetyURL       string
	ProbeURL        string
	TranscribeURL   string
	GeocodeBaseURL  string
	GeocodeCountry  string
	ExternalTimeout time.Duration

	// Media intake.
	StorageBackend  string // "local" or "r2"
	UploadDir       string
	MediaMaxSeconds int

	// Duplicate detection and rate limiting. The radius and lookback
	// match the values the operations team has been running with; both
	// stay tunable.
	DupRadiusM      float64
	DupLookbackDays int
	DailyReportCap  int

	Timezone string
}

func Load() *Config {
	return &Config{
		Port:       getenv("PORT", "8080"),
		PublicHost: getenv("PUBLIC_HOST", "salonewatch.org"),

		WebhookSecret:      os.Getenv("WEBHOOK_SECRET"),
		WebhookVerifyToken: os.Getenv("WEBHOOK_VERIFY_TOKEN"),

		GraphBaseURL:  getenv("GRAPH_BASE_URL", "https://graph.facebook.com/v18.0"),
		GraphToken:    os.Getenv("GRAPH_TOKEN"),
		PhoneNumberID: os.Getenv("PHONE_NUMBER_ID"),

		AIBaseURL:       getenv("AI_BASE_URL", "https://api.openai.com/v1"),
		AIKey:           os.Getenv("AI_API_KEY"),
		SafetyURL:       os.Getenv("SAFETY_URL"),
		ProbeURL:        os.Getenv("PROBE_URL"),
		TranscribeURL:   os.Getenv("TRANSCRIBE_URL"),
		GeocodeBaseURL:  getenv("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocodeCountry:  getenv("GEOCODE_COUNTRY", "sl"),
		ExternalTimeout: getduration("EXTERNAL_TIMEOUT", 15*time.Second),

		StorageBackend:  getenv("STORAGE_BACKEND", "local"),
		UploadDir:       getenv("UPLOAD_DIR", "uploads"),
		MediaMaxSeconds: getint("MEDIA_MAX_SECONDS", 60),

		DupRadiusM:      getfloat("DUP_RADIUS_M", 100),
		DupLookbackDays: getint("DUP_LOOKBACK_DAYS", 30),
		DailyReportCap:  getint("DAILY_REPORT_CAP", 20),

		Timezone: getenv("TIMEZONE", "Africa/Freetown"),
	}
}

func GetR2Config() *R2Config {
	return &R2Config{
		AccountID:       os.Getenv("CLOUDFLARE_ACCOUNT_ID"),
		AccessKeyID:     os.Getenv("CLOUDFLARE_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("CLOUDFLARE_SECRET_ACCESS_KEY"),
		BucketName:      os.Getenv("CLOUDFLARE_BUCKET_NAME"),
		PublicURL:       os.Getenv("CLOUDFLARE_PUBLIC_URL"),
		Region:          "auto",
	}
}

// Location resolves the configured timezone, falling back to UTC. The
// daily report cap resets at midnight in this zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	if v, err := strconv.Atoi(getenv(key, "")); err == nil {
		return v
	}
	return def
}

func getfloat(key string, def float64) float64 {
	if v, err := strconv.ParseFloat(getenv(key, ""), 64); err == nil {
		return v
	}
	return def
}

func getduration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(getenv(key, "")); err == nil {
		return v
	}
	return def
}
