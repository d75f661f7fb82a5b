package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config is loaded once at process start and never mutated afterwards.
// Role allow-lists live here so that role derivation is a pure function
// of (email, Config) everywhere instead of per-route literals.
type Config struct {
	DatabaseURL string
	HTTPPort    string

	// Role allow-lists. An email on AdminEmails signs in as admin, on
	// RecruiterEmails as recruiter, otherwise as applicant. Recomputed
	// on every sign-in; roles are deliberately not sticky.
	AdminEmails     []string
	RecruiterEmails []string

	GoogleClientID     string
	GoogleClientSecret string
	BaseURL            string

	Storage  Storage
	SMTP     SMTP
	WhatsApp WhatsApp

	OutboxInterval time.Duration

	// Optional local admin seeded at boot so the system is operable
	// before OAuth is configured.
	SeedAdminEmail    string
	SeedAdminPassword string
}

type Storage struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

func (s Storage) Configured() bool { return s.Bucket != "" }

type SMTP struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

func (s SMTP) Configured() bool { return s.Host != "" }

type WhatsApp struct {
	ProviderURL string
	Token       string
	Sender      string
}

func (w WhatsApp) Configured() bool { return w.ProviderURL != "" }

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		HTTPPort:        getenv("HTTP_PORT", "8080"),
		AdminEmails:     splitList(os.Getenv("ADMIN_EMAILS")),
		RecruiterEmails: splitList(os.Getenv("RECRUITER_EMAILS")),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		BaseURL:            getenv("BASE_URL", "http://localhost:8080"),

		Storage: Storage{
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			Region:    getenv("S3_REGION", "us-east-1"),
			Bucket:    os.Getenv("S3_BUCKET"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
		},
		SMTP: SMTP{
			Host: os.Getenv("SMTP_HOST"),
			Port: getenv("SMTP_PORT", "587"),
			User: os.Getenv("SMTP_USER"),
			Pass: os.Getenv("SMTP_PASS"),
			From: getenv("SMTP_FROM", "noreply@talentdesk.local"),
		},
		WhatsApp: WhatsApp{
			ProviderURL: os.Getenv("WHATSAPP_PROVIDER_URL"),
			Token:       os.Getenv("WHATSAPP_TOKEN"),
			Sender:      os.Getenv("WHATSAPP_SENDER"),
		},

		OutboxInterval: parseDuration(os.Getenv("OUTBOX_INTERVAL"), 15*time.Second),

		SeedAdminEmail:    os.Getenv("SEED_ADMIN_EMAIL"),
		SeedAdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	// The seeded local admin must resolve to the admin role, so its
	// email is implicitly allow-listed.
	if cfg.SeedAdminEmail != "" && !contains(cfg.AdminEmails, cfg.SeedAdminEmail) {
		cfg.AdminEmails = append(cfg.AdminEmails, cfg.SeedAdminEmail)
	}
	if os.Getenv("JWT_SECRET") == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return def
}
