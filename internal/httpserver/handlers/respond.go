package handlers

import (
	"encoding/json"
	"net/http"

	"talentdesk/internal/apperr"

	"go.uber.org/zap"
)

func respondJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func respondStatusJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// respondError maps a classified error onto its HTTP status and a
// structured body. Causes are logged server-side and never echoed.
func respondError(w http.ResponseWriter, lg *zap.SugaredLogger, err error) {
	ae := apperr.As(err)
	if ae.Kind == apperr.Dependency || ae.Kind == apperr.Internal {
		lg.Errorw("request failed", "code", ae.Code, "error", ae)
	}
	apperr.Respond(w, ae)
}
