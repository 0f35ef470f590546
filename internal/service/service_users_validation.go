package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/airguard-admin/internal/validators"
	"github.com/MKhiriev/airguard-admin/models"
)

// UserServiceWrapper defines middleware composition for UserService.
// Implementations wrap an existing UserService to add behavior such as
// validating.
type UserServiceWrapper interface {
	Wrap(UserService) UserService // returns a decorated UserService applying additional behavior
}

// UserValidationService rejects malformed account forms before they reach
// the wrapped UserService.
type UserValidationService struct {
	UserService
	validator validators.Validator
}

func NewUserValidationService() UserServiceWrapper {
	return &UserValidationService{
		validator: validators.NewUserValidator(),
	}
}

func (v *UserValidationService) SignUp(ctx context.Context, form models.UserForm) (models.User, error) {
	if err := v.validator.Validate(ctx, form); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.UserService.SignUp(ctx, form)
}

func (v *UserValidationService) EditUser(ctx context.Context, id string, form models.UserForm) error {
	if id == "" {
		return ErrInvalidDataProvided
	}
	if err := v.validator.Validate(ctx, form); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.UserService.EditUser(ctx, id, form)
}

func (v *UserValidationService) Wrap(inner UserService) UserService {
	v.UserService = inner
	return v
}
