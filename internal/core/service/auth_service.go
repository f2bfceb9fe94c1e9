package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/termeloipiac/auth-service/internal/core/domain"
	"github.com/termeloipiac/auth-service/internal/core/ports"
	"github.com/termeloipiac/auth-service/internal/core/token"
)

// LoginThrottle abstracts the failed-attempt counter (Redis). Implementations
// fail open: a throttle error is logged and never blocks a login.
type LoginThrottle interface {
	TooMany(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthService implements credential verification, token issuance, and
// registration over the credential store.
type AuthService struct {
	users    ports.UserRepository
	roles    ports.RoleRepository
	codec    *token.Codec
	throttle LoginThrottle
	log      zerolog.Logger
}

// NewAuthService wires an AuthService. throttle may be nil to disable
// login throttling.
func NewAuthService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	codec *token.Codec,
	throttle LoginThrottle,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{users: users, roles: roles, codec: codec, throttle: throttle, log: log}
}

// Login verifies the email/password pair and issues a signed token.
// An unknown email and a wrong password are indistinguishable to the caller;
// the distinction exists only in internal logs.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Identity, string, error) {
	if email == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		tooMany, err := s.throttle.TooMany(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Str("email", email).Msg("throttle check failed, allowing login")
		} else if tooMany {
			return nil, "", domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			s.log.Debug().Str("email", email).Msg("login for unknown email")
			s.recordFailure(ctx, email)
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.log.Debug().Str("email", email).Msg("login with wrong password")
		s.recordFailure(ctx, email)
		return nil, "", domain.ErrInvalidCredentials
	}

	signed, err := s.codec.Issue(user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("login: %w", err)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Str("email", email).Msg("failed to reset throttle counter")
		}
	}

	return domain.NewIdentity(user), signed, nil
}

// Register creates a new account with the resolved role set.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) error {
	// Existence pre-check keeps the common duplicate case from paying for a
	// bcrypt hash. The unique index on email remains the authority: Create
	// maps the constraint violation to ErrEmailTaken as well.
	exists, err := s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if exists {
		return domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("register: hash password: %w", err)
	}

	roles, err := s.resolveRoles(ctx, in.RoleLabels)
	if err != nil {
		return err
	}

	user := &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(hash),
		PhoneNumber:  in.PhoneNumber,
		Roles:        roles,
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if err == domain.ErrEmailTaken {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("register: %w", err)
	}

	return nil
}

// Identify resolves a validated token subject to a full identity.
func (s *AuthService) Identify(ctx context.Context, email string) (*domain.Identity, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("identify: %w", err)
	}
	return domain.NewIdentity(user), nil
}

// resolveRoles maps external labels to stored roles, defaulting to RoleUser.
// Every resolved role must exist in the store; a missing record is an
// integrity failure, not a client error.
func (s *AuthService) resolveRoles(ctx context.Context, labels []string) ([]domain.Role, error) {
	wanted := map[domain.Role]struct{}{}
	if len(labels) == 0 {
		wanted[domain.RoleUser] = struct{}{}
	} else {
		for _, label := range labels {
			wanted[domain.RoleFromLabel(label)] = struct{}{}
		}
	}

	roles := make([]domain.Role, 0, len(wanted))
	for _, r := range domain.AllRoles() {
		if _, ok := wanted[r]; !ok {
			continue
		}
		stored, err := s.roles.FindByName(ctx, r)
		if err != nil {
			return nil, fmt.Errorf("register: resolve role %s: %w", r, err)
		}
		roles = append(roles, stored)
	}
	return roles, nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("failed to record throttle failure")
	}
}
