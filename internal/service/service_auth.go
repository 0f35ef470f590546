package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/airguard-admin/internal/config"
	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/store"
	"github.com/MKhiriev/airguard-admin/internal/utils"
	"github.com/MKhiriev/airguard-admin/models"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService.
// It verifies bcrypt password hashes stored by the UserRepository and
// manages the JWT token lifecycle.
type authService struct {
	// userRepository is the data-access layer used to look up users.
	userRepository store.UserRepository

	ids utils.IDGenerator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, ids utils.IDGenerator, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		ids:            ids,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// Login authenticates an existing user.
//
// Returns the user record without its password hash or:
//   - ErrInvalidDataProvided if the account id or password is empty.
//   - ErrWrongCredentials if the account does not exist or the password does
//     not match.
//   - ErrAccountBlocked if the account is blocked.
func (a *authService) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	if creds.AccountID == "" || creds.Password == "" {
		log.Error().Str("account_id", creds.AccountID).Msg("invalid credentials provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByAccountID(ctx, creds.AccountID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Warn().Str("account_id", creds.AccountID).Msg("login for unknown account")
		return models.User{}, ErrWrongCredentials
	}
	if err != nil {
		log.Err(err).Str("account_id", creds.AccountID).Msg("user search by account id failed")
		return models.User{}, fmt.Errorf("user search by account id failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(foundUser.Password), []byte(creds.Password)); err != nil {
		log.Warn().Str("id", foundUser.ID).Str("account_id", foundUser.AccountID).Msg("wrong password")
		return models.User{}, ErrWrongCredentials
	}

	if foundUser.Status == models.StatusBlocked {
		log.Warn().Str("id", foundUser.ID).Msg("blocked account tried to log in")
		return models.User{}, ErrAccountBlocked
	}

	foundUser.Password = ""
	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, user.Role, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect low-level
// JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// SeedAdmin creates an active admin account unless accountID already exists.
// It is a no-op when either argument is empty.
func (a *authService) SeedAdmin(ctx context.Context, accountID, password string) error {
	if accountID == "" || password == "" {
		return nil
	}

	_, err := a.userRepository.FindUserByAccountID(ctx, accountID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNoUserWasFound) {
		return fmt.Errorf("seed admin lookup failed: %w", err)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = a.userRepository.CreateUser(ctx, models.User{
		ID:        a.ids.Generate(),
		AccountID: accountID,
		Username:  "Admin",
		Password:  hash,
		Role:      models.RoleAdmin,
		Status:    models.StatusReady,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if errors.Is(err, store.ErrAccountIDAlreadyExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed admin creation failed: %w", err)
	}

	a.logger.Info().Str("account_id", accountID).Msg("admin account seeded")
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(hash), nil
}
