package notify

import (
	"encoding/json"

	"talentdesk/internal/models"

	"gorm.io/gorm"
)

// Event types carried on outbox rows.
const (
	EventTicketCreatedAdmin      = "ticket.created.admin"
	EventTicketCreatedUser       = "ticket.created.user"
	EventTicketStatusChanged     = "ticket.status_changed"
	EventApplicationReceived     = "application.received"
	EventApplicationStatusChange = "application.status_changed"
)

// TicketPayload covers the three ticket events. Contact fields are the
// snapshot taken at ticket creation, not a live user lookup.
type TicketPayload struct {
	TicketID           string  `json:"ticket_id"`
	Title              string  `json:"title"`
	ProblemType        string  `json:"problem_type"`
	ProductServiceName string  `json:"product_service_name"`
	PreviousStatus     string  `json:"previous_status,omitempty"`
	NewStatus          string  `json:"new_status,omitempty"`
	Comment            string  `json:"comment,omitempty"`
	ContactEmail       string  `json:"contact_email"`
	ContactName        string  `json:"contact_name"`
	ContactPhone       *string `json:"contact_phone,omitempty"`
}

type ApplicationPayload struct {
	ApplicationID  string `json:"application_id"`
	JobID          string `json:"job_id"`
	JobTitle       string `json:"job_title"`
	NewStatus      string `json:"new_status,omitempty"`
	ApplicantEmail string `json:"applicant_email"`
	ApplicantName  string `json:"applicant_name"`
	RecruiterEmail string `json:"recruiter_email,omitempty"`
}

// Enqueue writes an outbox row inside the caller's transaction so the
// notification commits (or rolls back) with the workflow write that
// produced it. Delivery happens later in the dispatcher worker.
func Enqueue(tx *gorm.DB, eventType string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	msg := models.OutboxMessage{
		EventType: eventType,
		Payload:   models.JSONB(raw),
		Status:    "pending",
	}
	return tx.Create(&msg).Error
}
