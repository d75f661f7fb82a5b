package workflow

import (
	"errors"
	"strings"
	"time"

	"talentdesk/internal/apperr"
	"talentdesk/internal/models"
	"talentdesk/internal/notify"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubmitApplicationInput struct {
	JobID       string
	ResumeKey   string
	CoverLetter *string
}

// SubmitApplication creates at most one application per (job,
// applicant). The pre-check read takes a row lock inside the same
// transaction as the insert, and the composite unique index catches
// any race the lock cannot see (no prior row to lock). Returns the
// created row and the job's live application count.
func SubmitApplication(db *gorm.DB, userID string, in SubmitApplicationInput) (*models.Application, int64, error) {
	if strings.TrimSpace(in.JobID) == "" {
		return nil, 0, apperr.Validationf("missing_job_id", "job_id is required")
	}
	if strings.TrimSpace(in.ResumeKey) == "" {
		return nil, 0, apperr.Validationf("missing_resume", "resume is required")
	}

	var app models.Application
	var count int64
	err := db.Transaction(func(tx *gorm.DB) error {
		var applicant models.Applicant
		if err := tx.First(&applicant, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("role_record_missing", "applicant profile not found")
			}
			return err
		}
		var job models.Job
		if err := tx.First(&job, "id = ?", in.JobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("job_not_found", "job not found")
			}
			return err
		}

		var existing models.Application
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&existing, "job_id = ? AND applicant_id = ?", job.ID, applicant.ID).Error
		if err == nil {
			return apperr.Conflictf("duplicate_application", "you have already applied to this job")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		app = models.Application{
			JobID:       job.ID,
			ApplicantID: applicant.ID,
			ResumeKey:   in.ResumeKey,
			CoverLetter: in.CoverLetter,
			Status:      ApplicationPending,
			AppliedAt:   time.Now(),
		}
		if err := tx.Create(&app).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflictf("duplicate_application", "you have already applied to this job")
			}
			return err
		}
		if err := tx.Model(&models.Application{}).Where("job_id = ?", job.ID).Count(&count).Error; err != nil {
			return err
		}

		var applicantUser models.User
		var recruiter models.Recruiter
		var recruiterUser models.User
		if err := tx.First(&applicantUser, "id = ?", userID).Error; err != nil {
			return err
		}
		if err := tx.First(&recruiter, "id = ?", job.RecruiterID).Error; err != nil {
			return err
		}
		if err := tx.First(&recruiterUser, "id = ?", recruiter.UserID).Error; err != nil {
			return err
		}
		return notify.Enqueue(tx, notify.EventApplicationReceived, notify.ApplicationPayload{
			ApplicationID:  app.ID,
			JobID:          job.ID,
			JobTitle:       job.Title,
			ApplicantEmail: applicantUser.Email,
			ApplicantName:  applicantUser.Name,
			RecruiterEmail: recruiterUser.Email,
		})
	})
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return nil, 0, ae
		}
		return nil, 0, apperr.Dependencyf("db_error", err, "could not submit application")
	}
	return &app, count, nil
}

// UpdateApplicationStatus applies a status transition on behalf of the
// recruiter owning the parent job. The current status is re-read under
// a row lock in the same transaction as the write, and the unchanged /
// terminal guards are enforced uniformly with the ticket workflow.
// Non-owners get NotFound, never Forbidden, so application existence
// does not leak.
func UpdateApplicationStatus(db *gorm.DB, userID, applicationID, newStatus string) (*models.Application, error) {
	if !ValidApplicationStatus(newStatus) {
		return nil, apperr.Validationf("invalid_status", "status must be one of Pending, Reviewed, Accepted, Rejected")
	}

	var app models.Application
	err := db.Transaction(func(tx *gorm.DB) error {
		var recruiter models.Recruiter
		if err := tx.First(&recruiter, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("role_record_missing", "recruiter profile not found")
			}
			return err
		}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&app, "id = ?", applicationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("application_not_found", "application not found")
			}
			return err
		}
		var job models.Job
		if err := tx.First(&job, "id = ?", app.JobID).Error; err != nil {
			return err
		}
		if job.RecruiterID != recruiter.ID {
			return apperr.NotFoundf("application_not_found", "application not found")
		}
		if newStatus == app.Status {
			return apperr.Validationf("status_unchanged", "application is already %s", newStatus)
		}
		if !CanTransitionApplication(app.Status, newStatus) {
			return apperr.Validationf("invalid_transition", "cannot move application from %s to %s", app.Status, newStatus)
		}
		app.Status = newStatus
		if err := tx.Save(&app).Error; err != nil {
			return err
		}

		var applicant models.Applicant
		var applicantUser models.User
		if err := tx.First(&applicant, "id = ?", app.ApplicantID).Error; err != nil {
			return err
		}
		if err := tx.First(&applicantUser, "id = ?", applicant.UserID).Error; err != nil {
			return err
		}
		return notify.Enqueue(tx, notify.EventApplicationStatusChange, notify.ApplicationPayload{
			ApplicationID:  app.ID,
			JobID:          job.ID,
			JobTitle:       job.Title,
			NewStatus:      newStatus,
			ApplicantEmail: applicantUser.Email,
			ApplicantName:  applicantUser.Name,
		})
	})
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return nil, ae
		}
		return nil, apperr.Dependencyf("db_error", err, "could not update application")
	}
	return &app, nil
}

// ApplicationView joins display fields for listings.
type ApplicationView struct {
	models.Application
	JobTitle       string `json:"job_title"`
	ApplicantName  string `json:"applicant_name,omitempty"`
	ApplicantEmail string `json:"applicant_email,omitempty"`
}

// ListApplicationsForApplicant returns the principal's own applications
// joined with job titles.
func ListApplicationsForApplicant(db *gorm.DB, userID string) ([]ApplicationView, error) {
	var applicant models.Applicant
	if err := db.First(&applicant, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("role_record_missing", "applicant profile not found")
		}
		return nil, apperr.Dependencyf("db_error", err, "could not list applications")
	}
	var views []ApplicationView
	err := db.Model(&models.Application{}).
		Select("applications.*, jobs.title AS job_title").
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("applications.applicant_id = ?", applicant.ID).
		Order("applications.applied_at desc").
		Scan(&views).Error
	if err != nil {
		return nil, apperr.Dependencyf("db_error", err, "could not list applications")
	}
	return views, nil
}

// ListApplicationsForJob returns applications to one job, visible only
// to the recruiter who owns it.
func ListApplicationsForJob(db *gorm.DB, userID, jobID string) ([]ApplicationView, error) {
	var recruiter models.Recruiter
	if err := db.First(&recruiter, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("role_record_missing", "recruiter profile not found")
		}
		return nil, apperr.Dependencyf("db_error", err, "could not list applications")
	}
	var job models.Job
	if err := db.First(&job, "id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("job_not_found", "job not found")
		}
		return nil, apperr.Dependencyf("db_error", err, "could not list applications")
	}
	if job.RecruiterID != recruiter.ID {
		return nil, apperr.NotFoundf("job_not_found", "job not found")
	}
	var views []ApplicationView
	err := db.Model(&models.Application{}).
		Select("applications.*, jobs.title AS job_title, users.name AS applicant_name, users.email AS applicant_email").
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Joins("JOIN applicants ON applicants.id = applications.applicant_id").
		Joins("JOIN users ON users.id = applicants.user_id").
		Where("applications.job_id = ?", jobID).
		Order("applications.applied_at desc").
		Scan(&views).Error
	if err != nil {
		return nil, apperr.Dependencyf("db_error", err, "could not list applications")
	}
	return views, nil
}
