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

type createApplicationReq struct {
	JobID       string  `json:"job_id"`
	ResumeKey   string  `json:"resume_key"`
	CoverLetter *string `json:"cover_letter,omitempty"`
}

// CreateApplication accepts either JSON referencing an already
// uploaded resume key, or a multipart form carrying the resume file
// itself. The file is relayed to object storage before the workflow
// transaction runs.
func CreateApplication(db *gorm.DB, relay *storage.Relay, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in workflow.SubmitApplicationInput
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			if err := r.ParseMultipartForm(16 << 20); err != nil {
				respondError(w, lg, apperr.Validationf("bad_request", "invalid multipart form"))
				return
			}
			in.JobID = r.FormValue("job_id")
			if cl := r.FormValue("cover_letter"); cl != "" {
				in.CoverLetter = &cl
			}
			file, header, err := r.FormFile("resume")
			if err != nil {
				respondError(w, lg, apperr.Validationf("missing_resume", "resume file is required"))
				return
			}
			defer file.Close()
			key, err := relay.Store(r.Context(), "resumes", header.Filename, header.Header.Get("Content-Type"), file)
			if err != nil {
				respondError(w, lg, err)
				return
			}
			in.ResumeKey = key
		} else {
			var req createApplicationReq
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				respondError(w, lg, apperr.Validationf("bad_request", "invalid request body"))
				return
			}
			in.JobID = req.JobID
			in.ResumeKey = req.ResumeKey
			in.CoverLetter = req.CoverLetter
		}

		app, count, err := workflow.SubmitApplication(db, auth.Subject(r.Context()), in)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondStatusJSON(w, http.StatusCreated, map[string]any{
			"application":       app,
			"application_count": count,
		})
	}
}

type updateApplicationStatusReq struct {
	Status string `json:"status"`
}

func UpdateApplicationStatus(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateApplicationStatusReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, lg, apperr.Validationf("bad_request", "invalid request body"))
			return
		}
		app, err := workflow.UpdateApplicationStatus(db, auth.Subject(r.Context()), chi.URLParam(r, "id"), req.Status)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, map[string]any{
			"application_id":     app.ID,
			"application_status": app.Status,
		})
	}
}

// ListMyApplications returns the authenticated applicant's own
// applications.
func ListMyApplications(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := workflow.ListApplicationsForApplicant(db, auth.Subject(r.Context()))
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, views)
	}
}

// ListJobApplications returns applications for a job the requesting
// recruiter owns.
func ListJobApplications(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := workflow.ListApplicationsForJob(db, auth.Subject(r.Context()), chi.URLParam(r, "jobID"))
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, views)
	}
}
