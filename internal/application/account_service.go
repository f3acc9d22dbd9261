package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/example/worktime-backend/internal/persistence"
)

// CredentialStore captures the persistence operations needed to register and
// authenticate accounts.
type CredentialStore interface {
	CreateCredentials(ctx context.Context, credentials UserCredentials) error
	GetCredentialsByUsername(ctx context.Context, username string) (UserCredentials, error)
}

// AccountService registers accounts and verifies login attempts. It issues
// no tokens or sessions; a successful login simply returns the profile.
type AccountService struct {
	store       CredentialStore
	params      Argon2idParams
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewAccountService wires dependencies for account operations.
func NewAccountService(store CredentialStore, idGenerator func() string, now func() time.Time) *AccountService {
	return NewAccountServiceWithLogger(store, idGenerator, now, nil)
}

// NewAccountServiceWithLogger wires dependencies together with a base logger.
func NewAccountServiceWithLogger(store CredentialStore, idGenerator func() string, now func() time.Time, logger *slog.Logger) *AccountService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &AccountService{
		store:       store,
		params:      DefaultArgon2idParams,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

// Register validates and persists a new account. An existing username or
// email surfaces as ErrConflict.
func (s *AccountService) Register(ctx context.Context, params RegisterParams) (User, error) {
	if s == nil {
		return User{}, fmt.Errorf("AccountService is nil")
	}

	normalized := normalizeRegisterParams(params)
	if vErr := validateRegisterParams(normalized); vErr.HasErrors() {
		return User{}, vErr
	}

	hash, err := CreatePasswordHash(normalized.Password, s.params)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	createdAt := s.now()
	user := User{
		ID:        s.idGenerator(),
		Username:  normalized.Username,
		Email:     normalized.Email,
		Role:      normalized.Role,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}

	if err := s.store.CreateCredentials(ctx, UserCredentials{User: user, PasswordHash: hash}); err != nil {
		if errors.Is(err, persistence.ErrDuplicate) {
			return User{}, fmt.Errorf("%w: user already exists", ErrConflict)
		}
		return User{}, err
	}

	serviceLogger(ctx, s.logger, "AccountService", "Register").
		InfoContext(ctx, "account created", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Login verifies a username/password pair. Both an unknown username and a
// wrong password map to ErrInvalidCredentials so callers cannot probe for
// accounts.
func (s *AccountService) Login(ctx context.Context, credentials Credentials) (User, error) {
	if s == nil {
		return User{}, fmt.Errorf("AccountService is nil")
	}

	vErr := &ValidationError{}
	if strings.TrimSpace(credentials.Username) == "" {
		vErr.add("username", "username is required")
	}
	if credentials.Password == "" {
		vErr.add("password", "password is required")
	}
	if vErr.HasErrors() {
		return User{}, vErr
	}

	stored, err := s.store.GetCredentialsByUsername(ctx, strings.TrimSpace(credentials.Username))
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) || errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if err := VerifyPassword(stored.PasswordHash, credentials.Password); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	serviceLogger(ctx, s.logger, "AccountService", "Login").
		InfoContext(ctx, "login verified", "user_id", stored.User.ID)
	return stored.User, nil
}

func normalizeRegisterParams(params RegisterParams) RegisterParams {
	params.Username = strings.TrimSpace(params.Username)
	params.Email = strings.ToLower(strings.TrimSpace(params.Email))
	params.Role = strings.TrimSpace(params.Role)
	if params.Role == "" {
		params.Role = RoleEmployee
	}
	return params
}

func validateRegisterParams(params RegisterParams) *ValidationError {
	vErr := &ValidationError{}

	if params.Username == "" {
		vErr.add("username", "username is required")
	}
	if params.Password == "" {
		vErr.add("password", "password is required")
	}
	if params.Email == "" {
		vErr.add("email", "email is required")
	} else if _, err := mail.ParseAddress(params.Email); err != nil {
		vErr.add("email", "email is invalid")
	}
	switch params.Role {
	case RoleEmployee, RoleManager, RoleAdmin:
	default:
		vErr.add("role", "role must be employee, manager, or admin")
	}

	return vErr
}
