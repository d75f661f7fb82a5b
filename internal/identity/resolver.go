package identity

import (
	"errors"
	"strings"
	"time"

	"talentdesk/internal/apperr"
	"talentdesk/internal/models"

	"gorm.io/gorm"
)

// AllowLists is the injected role configuration. Loaded once at start,
// never mutated; DeriveRole is the only place roles come from.
type AllowLists struct {
	AdminEmails     []string
	RecruiterEmails []string
}

// DeriveRole maps an email to a role: admin allow-list wins, then
// recruiter, everyone else is an applicant. Pure; recomputed on every
// sign-in so allow-list changes take effect at the next session.
func DeriveRole(email string, lists AllowLists) string {
	email = strings.TrimSpace(email)
	for _, a := range lists.AdminEmails {
		if a == email {
			return models.RoleAdmin
		}
	}
	for _, r := range lists.RecruiterEmails {
		if r == email {
			return models.RoleRecruiter
		}
	}
	return models.RoleApplicant
}

// Resolve provisions or refreshes the User for a verified sign-in and
// guarantees the role record matching the derived role exists. The
// whole upsert runs in one transaction so a failed role-record write
// cannot leave a user without its satellite row.
func Resolve(db *gorm.DB, email, provider, providerAccountID, name string, lists AllowLists) (models.User, error) {
	role := DeriveRole(email, lists)
	var user models.User
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&user, "email = ?", email).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = models.User{
				Email:     email,
				Name:      name,
				Role:      role,
				Provider:  provider,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}
			if providerAccountID != "" {
				user.ProviderAccountID = &providerAccountID
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			user.Name = name
			user.Role = role
			user.Provider = provider
			if providerAccountID != "" {
				user.ProviderAccountID = &providerAccountID
			}
			user.UpdatedAt = time.Now()
			if err := tx.Save(&user).Error; err != nil {
				return err
			}
		}
		return ensureRoleRecord(tx, user.ID, role)
	})
	if err != nil {
		return models.User{}, apperr.Dependencyf("sign_in_failed", err, "could not resolve identity")
	}
	return user, nil
}

func ensureRoleRecord(tx *gorm.DB, userID, role string) error {
	switch role {
	case models.RoleAdmin:
		var rec models.Admin
		if err := tx.First(&rec, "user_id = ?", userID).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&models.Admin{UserID: userID, CreatedAt: time.Now()}).Error
		} else if err != nil {
			return err
		}
	case models.RoleRecruiter:
		var rec models.Recruiter
		if err := tx.First(&rec, "user_id = ?", userID).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&models.Recruiter{UserID: userID, CreatedAt: time.Now()}).Error
		} else if err != nil {
			return err
		}
	default:
		var rec models.Applicant
		if err := tx.First(&rec, "user_id = ?", userID).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&models.Applicant{UserID: userID, CreatedAt: time.Now()}).Error
		} else if err != nil {
			return err
		}
	}
	return nil
}
