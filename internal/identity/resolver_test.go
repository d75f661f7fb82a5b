package identity

import (
	"testing"

	"talentdesk/internal/models"
)

func TestDeriveRole(t *testing.T) {
	lists := AllowLists{
		AdminEmails:     []string{"admin@corp.test"},
		RecruiterEmails: []string{"hr@corp.test", "talent@corp.test"},
	}
	cases := []struct {
		email string
		want  string
	}{
		{"admin@corp.test", models.RoleAdmin},
		{"hr@corp.test", models.RoleRecruiter},
		{"talent@corp.test", models.RoleRecruiter},
		{"a@x.com", models.RoleApplicant},
		{"", models.RoleApplicant},
		{"  admin@corp.test  ", models.RoleAdmin}, // surrounding whitespace ignored
	}
	for _, c := range cases {
		if got := DeriveRole(c.email, lists); got != c.want {
			t.Errorf("DeriveRole(%q) = %s, want %s", c.email, got, c.want)
		}
	}
}

func TestDeriveRoleAdminListWins(t *testing.T) {
	lists := AllowLists{
		AdminEmails:     []string{"both@corp.test"},
		RecruiterEmails: []string{"both@corp.test"},
	}
	if got := DeriveRole("both@corp.test", lists); got != models.RoleAdmin {
		t.Errorf("email on both lists resolved to %s, want admin", got)
	}
}

func TestDeriveRoleIdempotent(t *testing.T) {
	lists := AllowLists{RecruiterEmails: []string{"hr@corp.test"}}
	first := DeriveRole("hr@corp.test", lists)
	second := DeriveRole("hr@corp.test", lists)
	if first != second {
		t.Errorf("role derivation not idempotent: %s then %s", first, second)
	}
}
