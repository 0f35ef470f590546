package validators

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/airguard-admin/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldAccountID = "account_id"
	FieldUsername  = "username"
	FieldEmail     = "email"
	FieldRole      = "role"
	FieldStatus    = "status"
	FieldPassword  = "password"
	FieldMessage   = "message"
)

// MinAccountIDLength is the shortest accepted account id.
const MinAccountIDLength = 10

// UserValidator validates account forms and login credentials.
type UserValidator struct{}

// NewUserValidator returns a [Validator] for [models.UserForm] and
// [models.Credentials].
func NewUserValidator() Validator {
	return &UserValidator{}
}

func (v *UserValidator) Validate(_ context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.UserForm:
		return v.validateForm(value, fields...)
	case *models.UserForm:
		return v.validateForm(*value, fields...)

	case models.Credentials:
		return v.validateCredentials(value)
	case *models.Credentials:
		return v.validateCredentials(*value)

	default:
		return ErrUnsupportedType
	}
}

// validateForm checks every requested field. Email is optional; Status is
// optional because sign-up leaves it to the server.
func (v *UserValidator) validateForm(form models.UserForm, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAccountID, FieldUsername, FieldEmail, FieldRole, FieldStatus}
	}

	errs := make(FieldErrors)
	for _, f := range fields {
		switch f {
		case FieldAccountID:
			if utf8.RuneCountInString(strings.TrimSpace(form.AccountID)) < MinAccountIDLength {
				errs[f] = MsgAccountIDTooShort
			}
		case FieldUsername:
			if strings.TrimSpace(form.Username) == "" {
				errs[f] = MsgNameRequired
			}
		case FieldEmail:
			if form.Email != "" && !validEmail(form.Email) {
				errs[f] = MsgInvalidEmail
			}
		case FieldRole:
			if form.Role != models.RoleAdmin && form.Role != models.RoleStudent {
				errs[f] = MsgInvalidRole
			}
		case FieldStatus:
			if form.Status != "" && form.Status != models.StatusReady && form.Status != models.StatusBlocked {
				errs[f] = MsgInvalidStatus
			}
		case FieldPassword:
			if form.Password == "" {
				errs[f] = MsgPasswordRequired
			}
		default:
			return ErrUnknownField
		}
	}

	return errs.orNil()
}

func (v *UserValidator) validateCredentials(creds models.Credentials) error {
	errs := make(FieldErrors)
	if strings.TrimSpace(creds.AccountID) == "" {
		errs[FieldAccountID] = "Account ID is required"
	}
	if creds.Password == "" {
		errs[FieldPassword] = MsgPasswordRequired
	}
	return errs.orNil()
}

// validEmail accepts a bare address, rejecting display-name forms such as
// "Jane <jane@x.io>" that net/mail would otherwise parse.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s && strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@"):], ".")
}
