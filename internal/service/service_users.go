package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/store"
	"github.com/MKhiriev/airguard-admin/internal/utils"
	"github.com/MKhiriev/airguard-admin/models"
)

type userService struct {
	userRepository store.UserRepository
	ids            utils.IDGenerator

	logger *logger.Logger
}

func NewUserService(userRepository store.UserRepository, ids utils.IDGenerator, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		ids:            ids,
		logger:         logger,
	}
}

// SignUp creates an account. A blank password falls back to the default
// password of the role and a blank status to Ready.
func (u *userService) SignUp(ctx context.Context, form models.UserForm) (models.User, error) {
	log := logger.FromContext(ctx)

	password := form.Password
	if password == "" {
		password = models.DefaultPassword(form.Role)
	}
	hash, err := hashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	status := form.Status
	if status == "" {
		status = models.StatusReady
	}

	now := time.Now().UTC()
	created, err := u.userRepository.CreateUser(ctx, models.User{
		ID:        u.ids.Generate(),
		AccountID: form.AccountID,
		Username:  form.Username,
		Email:     form.Email,
		Password:  hash,
		Role:      form.Role,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if errors.Is(err, store.ErrAccountIDAlreadyExists) {
		log.Warn().Str("account_id", form.AccountID).Msg("account id already taken")
		return models.User{}, ErrUserAlreadyExists
	}
	if err != nil {
		log.Err(err).Str("account_id", form.AccountID).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	created.Password = ""
	return created, nil
}

func (u *userService) GetUser(ctx context.Context, id string) (models.User, error) {
	user, err := u.userRepository.FindUserByID(ctx, id)
	if err != nil {
		return models.User{}, mapUserStoreError(err)
	}

	user.Password = ""
	return user, nil
}

func (u *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	return u.userRepository.ListUsers(ctx)
}

// EditUser replaces the editable fields of account id. The password is
// changed only when the form carries one.
func (u *userService) EditUser(ctx context.Context, id string, form models.UserForm) error {
	if form.Password != "" {
		hash, err := hashPassword(form.Password)
		if err != nil {
			return err
		}
		form.Password = hash
	}

	return mapUserStoreError(u.userRepository.UpdateUser(ctx, id, form))
}

func (u *userService) DeleteUser(ctx context.Context, id string) error {
	return mapUserStoreError(u.userRepository.DeleteUser(ctx, id))
}

func (u *userService) ListEmails(ctx context.Context) ([]string, error) {
	return u.userRepository.ListEmails(ctx)
}

func (u *userService) ListDeviceTokens(ctx context.Context) ([]string, error) {
	return u.userRepository.ListDeviceTokens(ctx)
}

func mapUserStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNoUserWasFound):
		return ErrUserNotFound
	case errors.Is(err, store.ErrAccountIDAlreadyExists):
		return ErrUserAlreadyExists
	default:
		return err
	}
}
