package storage

import (
	"context"
	"testing"

	"talentdesk/internal/auth"
	appconfig "talentdesk/internal/config"
	"talentdesk/internal/models"
)

func TestAuthorizeResumePrivilegedRoles(t *testing.T) {
	// Admins and recruiters are authorized without a store lookup.
	for _, role := range []string{models.RoleAdmin, models.RoleRecruiter} {
		ok, err := AuthorizeResume(nil, auth.Claims{Subject: "u1", Role: role}, "resumes/any")
		if err != nil {
			t.Fatalf("role %s: %v", role, err)
		}
		if !ok {
			t.Errorf("role %s denied resume access", role)
		}
	}
}

func TestNewRelayUnconfigured(t *testing.T) {
	relay, err := NewRelay(context.Background(), appconfig.Storage{})
	if err != nil {
		t.Fatalf("NewRelay: %v", err)
	}
	if relay != nil {
		t.Fatal("relay built without a bucket")
	}
	// A nil relay rejects operations instead of degrading silently.
	if _, err := relay.Store(context.Background(), "resumes", "cv.pdf", "application/pdf", nil); err == nil {
		t.Error("Store succeeded on unconfigured relay")
	}
	if _, err := relay.PresignFetch(context.Background(), "resumes/x"); err == nil {
		t.Error("PresignFetch succeeded on unconfigured relay")
	}
}
