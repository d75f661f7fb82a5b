package handlers

import (
	"net/http"

	"talentdesk/internal/apperr"
	"talentdesk/internal/auth"
	"talentdesk/internal/storage"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GetResume authorizes resume access and answers with a short-lived
// download URL. Unauthorized access reads as NotFound so resume keys
// cannot be probed.
func GetResume(db *gorm.DB, relay *storage.Relay, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := "resumes/" + chi.URLParam(r, "key")
		claims := auth.FromContext(r.Context())
		ok, err := storage.AuthorizeResume(db, claims, key)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		if !ok {
			respondError(w, lg, apperr.NotFoundf("file_not_found", "file not found"))
			return
		}
		url, err := relay.PresignFetch(r.Context(), key)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, map[string]any{"url": url})
	}
}
