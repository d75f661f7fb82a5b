package workflow

import (
	"errors"
	"strings"
	"time"

	"talentdesk/internal/apperr"
	"talentdesk/internal/auth"
	"talentdesk/internal/models"
	"talentdesk/internal/notify"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreateTicketInput struct {
	Title              string
	Description        string
	ProblemType        string
	ProductServiceName string
	ImageKey           *string // set only after a successful upload
}

// ValidateCreateTicketInput trims the mandatory fields in place and
// rejects blank or invalid ones. Handlers call it before relaying the
// optional image so a bad form never leaves an orphaned upload.
func ValidateCreateTicketInput(in *CreateTicketInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.ProblemType = strings.TrimSpace(in.ProblemType)
	in.ProductServiceName = strings.TrimSpace(in.ProductServiceName)
	switch {
	case in.Title == "":
		return apperr.Validationf("missing_title", "title is required")
	case in.Description == "":
		return apperr.Validationf("missing_description", "description is required")
	case in.ProductServiceName == "":
		return apperr.Validationf("missing_product_service_name", "product/service name is required")
	case !ValidProblemType(in.ProblemType):
		return apperr.Validationf("invalid_problem_type", "problem_type must be product or service")
	}
	return nil
}

// CreateTicket validates the mandatory fields, snapshots the
// submitter's contact details and enqueues the two creation
// notifications (admin alert + user confirmation) in the same
// transaction as the ticket row.
func CreateTicket(db *gorm.DB, userID string, in CreateTicketInput) (*models.Ticket, error) {
	if err := ValidateCreateTicketInput(&in); err != nil {
		return nil, err
	}

	var ticket models.Ticket
	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("user_not_found", "user not found")
			}
			return err
		}
		now := time.Now()
		ticket = models.Ticket{
			UserID:             user.ID,
			Title:              in.Title,
			Description:        in.Description,
			ProblemType:        in.ProblemType,
			ProductServiceName: in.ProductServiceName,
			Status:             TicketRaised,
			ImageKey:           in.ImageKey,
			ContactEmail:       user.Email,
			ContactName:        user.Name,
			ContactPhone:       user.Phone,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := tx.Create(&ticket).Error; err != nil {
			return err
		}
		payload := notify.TicketPayload{
			TicketID:           ticket.ID,
			Title:              ticket.Title,
			ProblemType:        ticket.ProblemType,
			ProductServiceName: ticket.ProductServiceName,
			ContactEmail:       ticket.ContactEmail,
			ContactName:        ticket.ContactName,
			ContactPhone:       ticket.ContactPhone,
		}
		if err := notify.Enqueue(tx, notify.EventTicketCreatedAdmin, payload); err != nil {
			return err
		}
		return notify.Enqueue(tx, notify.EventTicketCreatedUser, payload)
	})
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return nil, ae
		}
		return nil, apperr.Dependencyf("db_error", err, "could not create ticket")
	}
	return &ticket, nil
}

// UpdateTicketStatus performs an admin status transition. The current
// status is read under a row lock in the transaction that writes the
// new one, so the appended TicketUpdate's previous_status always
// matches the row state immediately before the write.
func UpdateTicketStatus(db *gorm.DB, adminUserID, ticketID, newStatus string, comment *string) error {
	if newStatus != TicketInProgress && newStatus != TicketCompleted {
		return apperr.Validationf("invalid_status", "status must be in_progress or completed")
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var admin models.Admin
		if err := tx.First(&admin, "user_id = ?", adminUserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("role_record_missing", "admin profile not found")
			}
			return err
		}
		var adminUser models.User
		if err := tx.First(&adminUser, "id = ?", adminUserID).Error; err != nil {
			return err
		}
		var ticket models.Ticket
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&ticket, "id = ?", ticketID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("ticket_not_found", "ticket not found")
			}
			return err
		}
		if newStatus == ticket.Status {
			return apperr.Validationf("status_unchanged", "ticket is already %s", newStatus)
		}
		if !CanTransitionTicket(ticket.Status, newStatus) {
			return apperr.Validationf("invalid_transition", "cannot move ticket from %s to %s", ticket.Status, newStatus)
		}
		previous := ticket.Status
		ticket.Status = newStatus
		ticket.UpdatedAt = time.Now()
		if err := tx.Save(&ticket).Error; err != nil {
			return err
		}
		update := models.TicketUpdate{
			TicketID:       ticket.ID,
			AdminID:        admin.ID,
			AdminName:      adminUser.Name,
			PreviousStatus: previous,
			NewStatus:      newStatus,
			Comment:        comment,
			CreatedAt:      time.Now(),
		}
		if err := tx.Create(&update).Error; err != nil {
			return err
		}
		commentText := ""
		if comment != nil {
			commentText = *comment
		}
		return notify.Enqueue(tx, notify.EventTicketStatusChanged, notify.TicketPayload{
			TicketID:           ticket.ID,
			Title:              ticket.Title,
			ProblemType:        ticket.ProblemType,
			ProductServiceName: ticket.ProductServiceName,
			PreviousStatus:     previous,
			NewStatus:          newStatus,
			Comment:            commentText,
			ContactEmail:       ticket.ContactEmail,
			ContactName:        ticket.ContactName,
			ContactPhone:       ticket.ContactPhone,
		})
	})
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return ae
		}
		return apperr.Dependencyf("db_error", err, "could not update ticket")
	}
	return nil
}

// TicketView adds submitter identity columns, populated only for
// admin listings.
type TicketView struct {
	models.Ticket
	SubmitterName  string `json:"submitter_name,omitempty"`
	SubmitterEmail string `json:"submitter_email,omitempty"`
}

// ListTicketsVisibleTo gives admins every ticket joined with submitter
// identity; everyone else sees only their own tickets, without the
// joined columns.
func ListTicketsVisibleTo(db *gorm.DB, claims auth.Claims) ([]TicketView, error) {
	var views []TicketView
	var err error
	if claims.HasRole(models.RoleAdmin) {
		err = db.Model(&models.Ticket{}).
			Select("tickets.*, users.name AS submitter_name, users.email AS submitter_email").
			Joins("JOIN users ON users.id = tickets.user_id").
			Order("tickets.created_at desc").
			Scan(&views).Error
	} else {
		err = db.Model(&models.Ticket{}).
			Where("user_id = ?", claims.Subject).
			Order("created_at desc").
			Scan(&views).Error
	}
	if err != nil {
		return nil, apperr.Dependencyf("db_error", err, "could not list tickets")
	}
	return views, nil
}

// GetTicket returns one ticket to its owner or an admin. Anyone else
// gets NotFound so ticket existence does not leak.
func GetTicket(db *gorm.DB, claims auth.Claims, ticketID string) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := db.First(&ticket, "id = ?", ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("ticket_not_found", "ticket not found")
		}
		return nil, apperr.Dependencyf("db_error", err, "could not load ticket")
	}
	if !claims.HasRole(models.RoleAdmin) && ticket.UserID != claims.Subject {
		return nil, apperr.NotFoundf("ticket_not_found", "ticket not found")
	}
	return &ticket, nil
}

// ListTicketUpdates returns one ticket's transition history newest
// first, with the same visibility rule as GetTicket.
func ListTicketUpdates(db *gorm.DB, claims auth.Claims, ticketID string) ([]models.TicketUpdate, error) {
	if _, err := GetTicket(db, claims, ticketID); err != nil {
		return nil, err
	}
	var updates []models.TicketUpdate
	if err := db.Where("ticket_id = ?", ticketID).Order("created_at desc").Find(&updates).Error; err != nil {
		return nil, apperr.Dependencyf("db_error", err, "could not list ticket updates")
	}
	return updates, nil
}
