package config

import (
	"testing"
	"time"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "s")
	if _, err := Load(); err == nil {
		t.Error("Load succeeded without DATABASE_URL")
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/app")
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Error("Load succeeded without JWT_SECRET")
	}
}

func TestLoadAllowLists(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/app")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("ADMIN_EMAILS", "root@corp.test, ops@corp.test")
	t.Setenv("RECRUITER_EMAILS", "hr@corp.test,,")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.AdminEmails) != 2 || cfg.AdminEmails[1] != "ops@corp.test" {
		t.Errorf("AdminEmails = %v", cfg.AdminEmails)
	}
	if len(cfg.RecruiterEmails) != 1 || cfg.RecruiterEmails[0] != "hr@corp.test" {
		t.Errorf("RecruiterEmails = %v", cfg.RecruiterEmails)
	}
}

func TestLoadSeedAdminImplicitlyAllowListed(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/app")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("ADMIN_EMAILS", "")
	t.Setenv("SEED_ADMIN_EMAIL", "seed@corp.test")
	t.Setenv("SEED_ADMIN_PASSWORD", "pw")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !contains(cfg.AdminEmails, "seed@corp.test") {
		t.Errorf("seed admin not allow-listed: %v", cfg.AdminEmails)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/app")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("OUTBOX_INTERVAL", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Errorf("HTTPPort = %s, want 8080", cfg.HTTPPort)
	}
	if cfg.OutboxInterval != 15*time.Second {
		t.Errorf("OutboxInterval = %v, want 15s", cfg.OutboxInterval)
	}
	if cfg.Storage.Configured() {
		t.Error("storage reported configured without a bucket")
	}
}

func TestOutboxIntervalParse(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/app")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("OUTBOX_INTERVAL", "2s")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutboxInterval != 2*time.Second {
		t.Errorf("OutboxInterval = %v, want 2s", cfg.OutboxInterval)
	}
}
