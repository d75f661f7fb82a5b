package workflow

import "testing"

func TestApplicationTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{ApplicationPending, ApplicationReviewed, true},
		{ApplicationPending, ApplicationAccepted, true},
		{ApplicationPending, ApplicationRejected, true},
		{ApplicationReviewed, ApplicationAccepted, true},
		{ApplicationReviewed, ApplicationRejected, true},
		{ApplicationReviewed, ApplicationPending, false},
		{ApplicationAccepted, ApplicationRejected, false},
		{ApplicationAccepted, ApplicationPending, false},
		{ApplicationRejected, ApplicationAccepted, false},
		{ApplicationPending, ApplicationPending, false},
		{ApplicationAccepted, ApplicationAccepted, false},
	}
	for _, c := range cases {
		if got := CanTransitionApplication(c.from, c.to); got != c.ok {
			t.Errorf("CanTransitionApplication(%s, %s) = %v, want %v", c.from, c.to, got, c.ok)
		}
	}
}

func TestTicketTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{TicketRaised, TicketInProgress, true},
		{TicketRaised, TicketCompleted, true},
		{TicketInProgress, TicketCompleted, true},
		{TicketInProgress, TicketRaised, false},
		{TicketCompleted, TicketInProgress, false},
		{TicketCompleted, TicketRaised, false},
		{TicketRaised, TicketRaised, false},
		{TicketInProgress, TicketInProgress, false},
	}
	for _, c := range cases {
		if got := CanTransitionTicket(c.from, c.to); got != c.ok {
			t.Errorf("CanTransitionTicket(%s, %s) = %v, want %v", c.from, c.to, got, c.ok)
		}
	}
}

func TestValidApplicationStatus(t *testing.T) {
	for _, s := range []string{ApplicationPending, ApplicationReviewed, ApplicationAccepted, ApplicationRejected} {
		if !ValidApplicationStatus(s) {
			t.Errorf("ValidApplicationStatus(%s) = false", s)
		}
	}
	// Only the canonical casing is accepted.
	for _, s := range []string{"pending", "accepted", "Maybe", "REJECTED", ""} {
		if ValidApplicationStatus(s) {
			t.Errorf("ValidApplicationStatus(%q) = true, want false", s)
		}
	}
}

func TestValidTicketStatus(t *testing.T) {
	for _, s := range []string{TicketRaised, TicketInProgress, TicketCompleted} {
		if !ValidTicketStatus(s) {
			t.Errorf("ValidTicketStatus(%s) = false", s)
		}
	}
	for _, s := range []string{"Raised", "IN_PROGRESS", "done", ""} {
		if ValidTicketStatus(s) {
			t.Errorf("ValidTicketStatus(%q) = true, want false", s)
		}
	}
}

func TestValidProblemType(t *testing.T) {
	if !ValidProblemType("product") || !ValidProblemType("service") {
		t.Error("product and service must be valid problem types")
	}
	if ValidProblemType("Product") || ValidProblemType("billing") || ValidProblemType("") {
		t.Error("unexpected problem type accepted")
	}
}
