package auth

import (
	"strings"

	"github.com/google/uuid"

	"github.com/secretaria-app/secretaria-backend/internal/domain"
)

// LoginInput holds parameters for password login.
type LoginInput struct {
	Email    string
	Password string
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	} else if len(i.Password) > 128 {
		errs = append(errs, domain.FieldError{Field: "password", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RefreshInput holds parameters for token refresh operation.
type RefreshInput struct {
	RefreshToken string
}

// Validate validates the refresh input.
func (i RefreshInput) Validate() error {
	var errs []domain.FieldError

	if i.RefreshToken == "" {
		errs = append(errs, domain.FieldError{Field: "refresh_token", Message: "required"})
	} else if len(i.RefreshToken) > 512 {
		errs = append(errs, domain.FieldError{Field: "refresh_token", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RegisterInput holds parameters for creating a user account. Depending on
// Role, OrganizationID / ExecutiveID / SecretaryID link the account to its
// back-office identity.
type RegisterInput struct {
	Email          string
	FullName       string
	Password       string
	Role           domain.Role
	OrganizationID *uuid.UUID
	ExecutiveID    *uuid.UUID
	SecretaryID    *uuid.UUID
}

// Validate validates the register input.
func (i RegisterInput) Validate() error {
	var errs []domain.FieldError

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if !strings.Contains(i.Email, "@") {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid"})
	}
	if i.FullName == "" {
		errs = append(errs, domain.FieldError{Field: "full_name", Message: "required"})
	}
	if len(i.Password) < 8 {
		errs = append(errs, domain.FieldError{Field: "password", Message: "at least 8 characters"})
	} else if len(i.Password) > 128 {
		errs = append(errs, domain.FieldError{Field: "password", Message: "too long"})
	}
	if !i.Role.IsValid() {
		errs = append(errs, domain.FieldError{Field: "role", Message: "must be master, admin, secretary or executive"})
	} else {
		switch i.Role {
		case domain.RoleAdmin:
			if i.OrganizationID == nil {
				errs = append(errs, domain.FieldError{Field: "organization_id", Message: "required for admin"})
			}
		case domain.RoleExecutive:
			if i.ExecutiveID == nil {
				errs = append(errs, domain.FieldError{Field: "executive_id", Message: "required for executive"})
			}
		case domain.RoleSecretary:
			if i.SecretaryID == nil {
				errs = append(errs, domain.FieldError{Field: "secretary_id", Message: "required for secretary"})
			}
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ChangePasswordInput holds parameters for a password change by the
// authenticated user.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// Validate validates the change password input.
func (i ChangePasswordInput) Validate() error {
	var errs []domain.FieldError

	if i.CurrentPassword == "" {
		errs = append(errs, domain.FieldError{Field: "current_password", Message: "required"})
	}
	if len(i.NewPassword) < 8 {
		errs = append(errs, domain.FieldError{Field: "new_password", Message: "at least 8 characters"})
	} else if len(i.NewPassword) > 128 {
		errs = append(errs, domain.FieldError{Field: "new_password", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
