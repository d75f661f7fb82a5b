package notify

import (
	"strings"
	"testing"
)

func TestRenderTicketStatusChanged(t *testing.T) {
	p := TicketPayload{
		TicketID:       "t-1",
		Title:          "Printer issue",
		PreviousStatus: "raised",
		NewStatus:      "in_progress",
		Comment:        "Looking into it",
		ContactName:    "Dana",
	}
	subject, body := renderTicketStatusChanged(p)
	if !strings.Contains(subject, "in_progress") {
		t.Errorf("subject missing new status: %q", subject)
	}
	for _, want := range []string{"Dana", "raised", "in_progress", "Looking into it", "t-1"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q: %q", want, body)
		}
	}
}

func TestRenderTicketStatusChangedWithoutComment(t *testing.T) {
	_, body := renderTicketStatusChanged(TicketPayload{Title: "x", PreviousStatus: "raised", NewStatus: "completed"})
	if strings.Contains(body, "Note from support") {
		t.Error("comment section rendered for empty comment")
	}
}

func TestRenderTicketCreated(t *testing.T) {
	p := TicketPayload{
		TicketID:           "t-2",
		Title:              "Billing mismatch",
		ProblemType:        "product",
		ProductServiceName: "K-Bazaar Billing Software",
		ContactEmail:       "u@x.com",
		ContactName:        "Uma",
	}
	_, adminBody := renderTicketCreatedAdmin(p)
	for _, want := range []string{"product", "K-Bazaar Billing Software", "u@x.com", "t-2"} {
		if !strings.Contains(adminBody, want) {
			t.Errorf("admin body missing %q", want)
		}
	}
	_, userBody := renderTicketCreatedUser(p)
	if !strings.Contains(userBody, "Uma") || !strings.Contains(userBody, "t-2") {
		t.Errorf("user body missing fields: %q", userBody)
	}
}

func TestRenderApplicationStatusChanged(t *testing.T) {
	subject, body := renderApplicationStatusChanged(ApplicationPayload{
		ApplicationID: "a-1",
		JobTitle:      "Backend Engineer",
		NewStatus:     "Accepted",
		ApplicantName: "Avery",
	})
	if !strings.Contains(subject, "Accepted") {
		t.Errorf("subject missing status: %q", subject)
	}
	for _, want := range []string{"Avery", "Backend Engineer", "Accepted", "a-1"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}
