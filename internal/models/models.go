package models

import (
	"time"

	"github.com/lib/pq"
)

// Role names as stored on users.role. Derived from the configured
// allow-lists at every sign-in; never user-editable.
const (
	RoleAdmin     = "admin"
	RoleRecruiter = "recruiter"
	RoleApplicant = "applicant"
)

type User struct {
	ID                string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email             string    `gorm:"uniqueIndex;not null" json:"email"`
	Name              string    `gorm:"not null" json:"name"`
	Role              string    `gorm:"not null" json:"role"`
	Phone             *string   `json:"phone,omitempty"` // E.164, used for WhatsApp notifications
	Provider          string    `gorm:"not null;default:local" json:"-"`
	ProviderAccountID *string   `json:"-"`
	PasswordHash      *string   `json:"-"` // set only for the seeded local admin
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Admin, Recruiter and Applicant are 1:1 satellite records created
// lazily the first time a user is seen holding that role. Role-scoped
// operations require the matching record; its absence is reported as
// "role record missing", not as unauthenticated.

type Admin struct {
	ID        string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Recruiter struct {
	ID        string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Applicant struct {
	ID        string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Job struct {
	ID             string         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RecruiterID    string         `gorm:"type:uuid;index;not null" json:"recruiter_id"`
	Title          string         `gorm:"not null" json:"title"`
	Description    string         `gorm:"type:text;not null" json:"description"`
	Skills         pq.StringArray `gorm:"type:text[]" json:"skills_required"`
	Location       string         `json:"location"`
	SalaryRange    string         `json:"salary_range"`
	EmploymentType string         `json:"employment_type"`
	PostedAt       time.Time      `json:"posted_at"`
	Deadline       *time.Time     `json:"deadline_date,omitempty"`
}

// Application rows are unique per (job, applicant); the composite index
// is the backstop for the locked pre-check in the submit transaction.
type Application struct {
	ID          string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	JobID       string    `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_applicant" json:"job_id"`
	ApplicantID string    `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_applicant" json:"applicant_id"`
	ResumeKey   string    `gorm:"not null" json:"resume_key"`
	CoverLetter *string   `gorm:"type:text" json:"cover_letter,omitempty"`
	Status      string    `gorm:"not null" json:"status"`
	AppliedAt   time.Time `json:"applied_at"`
}

type Ticket struct {
	ID                 string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID             string    `gorm:"type:uuid;index;not null" json:"user_id"`
	Title              string    `gorm:"not null" json:"title"`
	Description        string    `gorm:"type:text;not null" json:"description"`
	ProblemType        string    `gorm:"not null" json:"problem_type"` // product | service
	ProductServiceName string    `gorm:"not null" json:"product_service_name"`
	Status             string    `gorm:"not null" json:"status"`
	ImageKey           *string   `json:"image_key,omitempty"`
	ContactEmail       string    `gorm:"not null" json:"contact_email"` // snapshot at creation
	ContactName        string    `gorm:"not null" json:"contact_name"`
	ContactPhone       *string   `json:"contact_phone,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TicketUpdate is the append-only transition log. Rows are written in
// the same transaction as the status change and never mutated after.
type TicketUpdate struct {
	ID             string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TicketID       string    `gorm:"type:uuid;index;not null" json:"ticket_id"`
	AdminID        string    `gorm:"type:uuid;not null" json:"admin_id"`
	AdminName      string    `gorm:"not null" json:"admin_name"` // snapshot, survives later renames
	PreviousStatus string    `gorm:"not null" json:"previous_status"`
	NewStatus      string    `gorm:"not null" json:"new_status"`
	Comment        *string   `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type Session struct {
	JTI       string     `gorm:"primaryKey;size:64" json:"jti"`
	UserID    string     `gorm:"type:uuid;index;not null" json:"user_id"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// OutboxMessage queues a notification produced by a workflow
// transition. It is inserted inside the workflow transaction and
// delivered by the dispatcher worker after commit; delivery failures
// never touch the committed workflow state.
type OutboxMessage struct {
	ID        string     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EventType string     `gorm:"not null;index" json:"event_type"`
	Payload   JSONB      `gorm:"type:jsonb;not null;default:'{}'::jsonb" json:"payload"`
	Status    string     `gorm:"not null;default:pending;index" json:"status"` // pending | sent | failed
	Attempts  int        `gorm:"not null;default:0" json:"attempts"`
	LastError *string    `json:"last_error,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
}
