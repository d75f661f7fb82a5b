package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"talentdesk/internal/apperr"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Middleware rejections must carry the same structured JSON body as
// handler errors: a machine-stable code, never plain text.
func decodeMiddlewareError(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("content-type = %q, want application/json", ct)
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	return body
}

func TestSignVerifyRoundtrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, jti, _, err := Sign("user-1", "a@x.com", "applicant")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if jti == "" {
		t.Fatal("Sign returned empty jti")
	}
	claims, err := Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != "user-1" || claims.Email != "a@x.com" || claims.Role != "applicant" || claims.JWTID != jti {
		t.Errorf("claims mismatch: %+v", claims)
	}
}

func TestVerifyRejectsTampered(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, _, _, err := Sign("user-1", "a@x.com", "applicant")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	t.Setenv("JWT_SECRET", "other-secret")
	if _, err := Verify(token); err == nil {
		t.Error("token signed with a different secret verified")
	}
}

func TestJWTAuthMissingBearer(t *testing.T) {
	handler := JWTAuth(nil, zap.NewNop().Sugar())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler called without a token")
	}))
	req := httptest.NewRequest("GET", "/v1/tickets", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if body := decodeMiddlewareError(t, rec); body["error"] != "missing_bearer" {
		t.Errorf("error = %v, want missing_bearer", body["error"])
	}
}

func TestJWTAuthGarbageToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	handler := JWTAuth(nil, zap.NewNop().Sugar())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler called with an invalid token")
	}))
	req := httptest.NewRequest("GET", "/v1/tickets", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if body := decodeMiddlewareError(t, rec); body["error"] != "invalid_token" {
		t.Errorf("error = %v, want invalid_token", body["error"])
	}
}

func TestClassifySessionErr(t *testing.T) {
	notFound := classifySessionErr(gorm.ErrRecordNotFound)
	if kind := apperr.As(notFound).Kind; kind != apperr.Unauthenticated {
		t.Errorf("missing session classified as %v, want Unauthenticated", kind)
	}
	// A store outage must not read as a revoked session.
	outage := classifySessionErr(errors.New("connection refused"))
	got := apperr.As(outage)
	if got.Kind != apperr.Dependency {
		t.Errorf("db error classified as %v, want Dependency", got.Kind)
	}
	if apperr.HTTPStatus(outage) != http.StatusInternalServerError {
		t.Errorf("db error status = %d, want 500", apperr.HTTPStatus(outage))
	}
}

func TestRequireRole(t *testing.T) {
	called := false
	handler := RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("PATCH", "/v1/tickets/1", nil)
	req = req.WithContext(WithClaims(req.Context(), Claims{Subject: "u1", Role: "applicant"}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("applicant hitting admin route: status = %d, want 403", rec.Code)
	}
	if body := decodeMiddlewareError(t, rec); body["error"] != "forbidden" {
		t.Errorf("error = %v, want forbidden", body["error"])
	}
	if called {
		t.Error("next handler called for wrong role")
	}

	req = httptest.NewRequest("PATCH", "/v1/tickets/1", nil)
	req = req.WithContext(WithClaims(req.Context(), Claims{Subject: "u2", Role: "admin"}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if !called {
		t.Error("next handler not called for admin")
	}
}

func TestClaimsContextRoundtrip(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	ctx := WithClaims(req.Context(), Claims{Subject: "u1", Email: "a@x.com", Role: "recruiter"})
	got := FromContext(ctx)
	if got.Subject != "u1" || got.Role != "recruiter" {
		t.Errorf("claims roundtrip mismatch: %+v", got)
	}
	if FromContext(req.Context()).Authenticated() {
		t.Error("empty context reported as authenticated")
	}
}
