package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"talentdesk/internal/apperr"
	"talentdesk/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// JWTAuth authenticates a bearer token and rejects revoked or expired
// sessions. Rejections carry the same structured error body as the
// handlers. The resolved Claims are placed on the request context.
func JWTAuth(db *gorm.DB, lg *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				apperr.Respond(w, apperr.Unauthenticatedf("missing_bearer", "missing bearer token"))
				return
			}
			claims, err := Verify(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				apperr.Respond(w, apperr.Unauthenticatedf("invalid_token", "invalid token"))
				return
			}
			if claims.JWTID == "" {
				apperr.Respond(w, apperr.Unauthenticatedf("session_not_found", "session not found"))
				return
			}
			var sess models.Session
			if err := db.First(&sess, "jti = ?", claims.JWTID).Error; err != nil {
				classified := classifySessionErr(err)
				if apperr.As(classified).Kind == apperr.Dependency {
					lg.Errorw("session lookup failed", "jti", claims.JWTID, "error", err)
				}
				apperr.Respond(w, classified)
				return
			}
			if sess.RevokedAt != nil || time.Now().After(sess.ExpiresAt) {
				apperr.Respond(w, apperr.Unauthenticatedf("session_expired", "session expired or revoked"))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// classifySessionErr keeps a store outage from reading as a revoked
// session: only a missing row is a credential problem.
func classifySessionErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Unauthenticatedf("session_not_found", "session not found")
	}
	return apperr.Dependencyf("db_error", err, "could not verify session")
}

// RequireRole gates a route group on the principal's resolved role.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !FromContext(r.Context()).HasRole(role) {
				apperr.Respond(w, apperr.Forbiddenf("forbidden", "you do not have access to this resource"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
