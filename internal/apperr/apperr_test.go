package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Unauthenticatedf("no_session", "no session"), http.StatusUnauthorized},
		{Forbiddenf("forbidden", "wrong role"), http.StatusForbidden},
		{NotFoundf("ticket_not_found", "ticket not found"), http.StatusNotFound},
		{Validationf("missing_title", "title is required"), http.StatusBadRequest},
		{Conflictf("duplicate_application", "already applied"), http.StatusBadRequest},
		{Dependencyf("db_error", errors.New("boom"), "db down"), http.StatusInternalServerError},
		{Internalf(errors.New("boom"), "oops"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatus(c.err); got != c.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestAsPreservesClassified(t *testing.T) {
	orig := Conflictf("duplicate_application", "already applied")
	wrapped := fmt.Errorf("submit: %w", orig)
	got := As(wrapped)
	if got.Kind != Conflict || got.Code != "duplicate_application" {
		t.Errorf("As lost classification: kind=%v code=%s", got.Kind, got.Code)
	}
}

func TestAsWrapsUnknown(t *testing.T) {
	got := As(errors.New("surprise"))
	if got.Kind != Internal {
		t.Errorf("unknown error classified as %v, want Internal", got.Kind)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Dependencyf("db_error", cause, "db down")
	if !errors.Is(err, cause) {
		t.Error("Dependencyf must wrap its cause")
	}
}
