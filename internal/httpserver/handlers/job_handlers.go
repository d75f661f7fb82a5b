package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"talentdesk/internal/apperr"
	"talentdesk/internal/auth"
	"talentdesk/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type jobReq struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Skills         []string   `json:"skills_required,omitempty"`
	Location       string     `json:"location,omitempty"`
	SalaryRange    string     `json:"salary_range,omitempty"`
	EmploymentType string     `json:"employment_type,omitempty"`
	Deadline       *time.Time `json:"deadline_date,omitempty"`
}

func CreateJob(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req jobReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, lg, apperr.Validationf("bad_request", "invalid request body"))
			return
		}
		req.Title = strings.TrimSpace(req.Title)
		req.Description = strings.TrimSpace(req.Description)
		if req.Title == "" || req.Description == "" {
			respondError(w, lg, apperr.Validationf("missing_fields", "title and description are required"))
			return
		}
		var recruiter models.Recruiter
		if err := db.First(&recruiter, "user_id = ?", auth.Subject(r.Context())).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(w, lg, apperr.NotFoundf("role_record_missing", "recruiter profile not found"))
				return
			}
			respondError(w, lg, apperr.Dependencyf("db_error", err, "could not create job"))
			return
		}
		job := models.Job{
			RecruiterID:    recruiter.ID,
			Title:          req.Title,
			Description:    req.Description,
			Skills:         pq.StringArray(req.Skills),
			Location:       req.Location,
			SalaryRange:    req.SalaryRange,
			EmploymentType: req.EmploymentType,
			PostedAt:       time.Now(),
			Deadline:       req.Deadline,
		}
		if err := db.Create(&job).Error; err != nil {
			respondError(w, lg, apperr.Dependencyf("db_error", err, "could not create job"))
			return
		}
		respondStatusJSON(w, http.StatusCreated, job)
	}
}

// ListJobs is public; job listings are the one resource whose
// existence is not sensitive.
func ListJobs(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var jobs []models.Job
		if err := db.Order("posted_at desc").Find(&jobs).Error; err != nil {
			respondError(w, lg, apperr.Dependencyf("db_error", err, "could not list jobs"))
			return
		}
		respondJSON(w, jobs)
	}
}

func GetJob(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var job models.Job
		if err := db.First(&job, "id = ?", chi.URLParam(r, "jobID")).Error; err != nil {
			respondError(w, lg, apperr.NotFoundf("job_not_found", "job not found"))
			return
		}
		respondJSON(w, job)
	}
}

// ownedJob loads a job and verifies the requesting recruiter owns it.
func ownedJob(db *gorm.DB, userID, jobID string) (*models.Job, error) {
	var recruiter models.Recruiter
	if err := db.First(&recruiter, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("role_record_missing", "recruiter profile not found")
		}
		return nil, apperr.Dependencyf("db_error", err, "could not load job")
	}
	var job models.Job
	if err := db.First(&job, "id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("job_not_found", "job not found")
		}
		return nil, apperr.Dependencyf("db_error", err, "could not load job")
	}
	if job.RecruiterID != recruiter.ID {
		return nil, apperr.NotFoundf("job_not_found", "job not found")
	}
	return &job, nil
}

func UpdateJob(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req jobReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, lg, apperr.Validationf("bad_request", "invalid request body"))
			return
		}
		job, err := ownedJob(db, auth.Subject(r.Context()), chi.URLParam(r, "jobID"))
		if err != nil {
			respondError(w, lg, err)
			return
		}
		if t := strings.TrimSpace(req.Title); t != "" {
			job.Title = t
		}
		if d := strings.TrimSpace(req.Description); d != "" {
			job.Description = d
		}
		if req.Skills != nil {
			job.Skills = pq.StringArray(req.Skills)
		}
		if req.Location != "" {
			job.Location = req.Location
		}
		if req.SalaryRange != "" {
			job.SalaryRange = req.SalaryRange
		}
		if req.EmploymentType != "" {
			job.EmploymentType = req.EmploymentType
		}
		if req.Deadline != nil {
			job.Deadline = req.Deadline
		}
		if err := db.Save(job).Error; err != nil {
			respondError(w, lg, apperr.Dependencyf("db_error", err, "could not update job"))
			return
		}
		respondJSON(w, job)
	}
}

// DeleteJob removes a job and all its applications, applications
// first, in one transaction.
func DeleteJob(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID := chi.URLParam(r, "jobID")
		err := db.Transaction(func(tx *gorm.DB) error {
			job, err := ownedJob(tx, auth.Subject(r.Context()), jobID)
			if err != nil {
				return err
			}
			if err := tx.Delete(&models.Application{}, "job_id = ?", job.ID).Error; err != nil {
				return err
			}
			return tx.Delete(&models.Job{}, "id = ?", job.ID).Error
		})
		if err != nil {
			var ae *apperr.Error
			if errors.As(err, &ae) {
				respondError(w, lg, ae)
				return
			}
			respondError(w, lg, apperr.Dependencyf("db_error", err, "could not delete job"))
			return
		}
		respondJSON(w, map[string]any{"deleted": true})
	}
}
