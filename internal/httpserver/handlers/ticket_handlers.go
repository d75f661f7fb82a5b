package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"talentdesk/internal/apperr"
	"talentdesk/internal/auth"
	"talentdesk/internal/storage"
	"talentdesk/internal/workflow"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateTicket handles the multipart ticket form. Fields are validated
// before the optional image is uploaded, so a bad form never leaves an
// orphaned object behind; a failed upload aborts the ticket before any
// database write.
func CreateTicket(db *gorm.DB, relay *storage.Relay, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(16 << 20); err != nil {
			respondError(w, lg, apperr.Validationf("bad_request", "invalid multipart form"))
			return
		}
		in := workflow.CreateTicketInput{
			Title:              r.FormValue("title"),
			Description:        r.FormValue("description"),
			ProblemType:        r.FormValue("problem_type"),
			ProductServiceName: r.FormValue("product_service_name"),
		}
		// Reject bad forms before touching object storage.
		if err := workflow.ValidateCreateTicketInput(&in); err != nil {
			respondError(w, lg, err)
			return
		}
		if file, header, err := r.FormFile("image"); err == nil {
			defer file.Close()
			key, err := relay.Store(r.Context(), "tickets", header.Filename, header.Header.Get("Content-Type"), file)
			if err != nil {
				respondError(w, lg, err)
				return
			}
			in.ImageKey = &key
		}
		ticket, err := workflow.CreateTicket(db, auth.Subject(r.Context()), in)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, map[string]any{"ticketId": ticket.ID})
	}
}

type updateTicketReq struct {
	Status  string  `json:"status"`
	Comment *string `json:"comment,omitempty"`
}

func UpdateTicketStatus(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateTicketReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, lg, apperr.Validationf("bad_request", "invalid request body"))
			return
		}
		if req.Comment != nil && strings.TrimSpace(*req.Comment) == "" {
			req.Comment = nil
		}
		err := workflow.UpdateTicketStatus(db, auth.Subject(r.Context()), chi.URLParam(r, "id"), req.Status, req.Comment)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, map[string]any{"updated": true})
	}
}

func ListTickets(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := workflow.ListTicketsVisibleTo(db, auth.FromContext(r.Context()))
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, views)
	}
}

func GetTicket(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticket, err := workflow.GetTicket(db, auth.FromContext(r.Context()), chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, ticket)
	}
}

func ListTicketUpdates(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		updates, err := workflow.ListTicketUpdates(db, auth.FromContext(r.Context()), chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, updates)
	}
}
