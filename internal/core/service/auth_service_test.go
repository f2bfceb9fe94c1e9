package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/termeloipiac/auth-service/internal/core/domain"
	"github.com/termeloipiac/auth-service/internal/core/ports"
	"github.com/termeloipiac/auth-service/internal/core/token"
)

var testSecret = base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]domain.Role(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrEmailTaken
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = user.Email
	}
	if copy.CreatedAt.IsZero() {
		copy.CreatedAt = time.Now().UTC()
	}
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.users[email]
	return ok, nil
}

// stubRoleRepo acts as a fully seeded store unless missing is set.
type stubRoleRepo struct {
	missing map[domain.Role]bool
}

func (r *stubRoleRepo) FindByName(_ context.Context, name domain.Role) (domain.Role, error) {
	if r.missing[name] {
		return "", domain.ErrRoleNotSeeded
	}
	return name, nil
}

type stubThrottle struct {
	failures map[string]int
	limit    int
}

func newStubThrottle(limit int) *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), limit: limit}
}

func (t *stubThrottle) TooMany(_ context.Context, email string) (bool, error) {
	return t.failures[email] >= t.limit, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, email string) error {
	t.failures[email]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, email string) error {
	delete(t.failures, email)
	return nil
}

func newTestService(t *testing.T) (*AuthService, *stubUserRepo, *stubRoleRepo) {
	t.Helper()
	codec, err := token.NewCodec(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	users := newStubUserRepo()
	roles := &stubRoleRepo{}
	return NewAuthService(users, roles, codec, nil, zerolog.Nop()), users, roles
}

func registerInput(email string) ports.RegisterInput {
	return ports.RegisterInput{
		FirstName:   "Anna",
		LastName:    "Kovacs",
		Email:       email,
		Password:    "secret1",
		PhoneNumber: "+3612345678",
	}
}

func TestAuthService_Register_DefaultRole(t *testing.T) {
	svc, users, _ := newTestService(t)

	if err := svc.Register(context.Background(), registerInput("x@y.com")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	stored := users.users["x@y.com"]
	if stored == nil {
		t.Fatalf("user not persisted")
	}
	if stored.PasswordHash == "secret1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if len(stored.Roles) != 1 || stored.Roles[0] != domain.RoleUser {
		t.Fatalf("expected default role set {ROLE_USER}, got %v", stored.Roles)
	}
}

func TestAuthService_Register_RoleLabels(t *testing.T) {
	cases := []struct {
		labels []string
		want   []domain.Role
	}{
		{[]string{"admin"}, []domain.Role{domain.RoleAdmin}},
		{[]string{"mod"}, []domain.Role{domain.RoleModerator}},
		{[]string{"something-else"}, []domain.Role{domain.RoleUser}},
		{[]string{"admin", "mod"}, []domain.Role{domain.RoleModerator, domain.RoleAdmin}},
	}

	for _, tc := range cases {
		svc, users, _ := newTestService(t)
		in := registerInput("r@y.com")
		in.RoleLabels = tc.labels
		if err := svc.Register(context.Background(), in); err != nil {
			t.Fatalf("Register(%v): %v", tc.labels, err)
		}
		got := users.users["r@y.com"].Roles
		if len(got) != len(tc.want) {
			t.Fatalf("labels %v: expected roles %v, got %v", tc.labels, tc.want, got)
		}
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Fatalf("labels %v: expected roles %v, got %v", tc.labels, tc.want, got)
			}
		}
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	if err := svc.Register(context.Background(), registerInput("dup@y.com")); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if err := svc.Register(context.Background(), registerInput("dup@y.com")); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Register_RoleNotSeeded(t *testing.T) {
	svc, _, roles := newTestService(t)
	roles.missing = map[domain.Role]bool{domain.RoleUser: true}

	err := svc.Register(context.Background(), registerInput("u@y.com"))
	if !errors.Is(err, domain.ErrRoleNotSeeded) {
		t.Fatalf("expected ErrRoleNotSeeded, got %v", err)
	}
}

func TestAuthService_LoginRoundTrip(t *testing.T) {
	svc, _, _ := newTestService(t)

	if err := svc.Register(context.Background(), registerInput("x@y.com")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	identity, signed, err := svc.Login(context.Background(), "x@y.com", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if identity.Email != "x@y.com" {
		t.Fatalf("unexpected identity email: %s", identity.Email)
	}
	if len(identity.Roles) != 1 || identity.Roles[0] != domain.RoleUser {
		t.Fatalf("expected role list {ROLE_USER}, got %v", identity.Roles)
	}

	// The issued token's validated subject must match the login email.
	codec, _ := token.NewCodec(testSecret, time.Hour)
	claims, err := codec.Validate(signed)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.Subject != "x@y.com" {
		t.Fatalf("expected subject x@y.com, got %q", claims.Subject)
	}
}

func TestAuthService_Login_IndistinguishableFailures(t *testing.T) {
	svc, _, _ := newTestService(t)

	if err := svc.Register(context.Background(), registerInput("known@y.com")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, _, wrongPassword := svc.Login(context.Background(), "known@y.com", "wrong-password")
	_, _, unknownEmail := svc.Login(context.Background(), "ghost@y.com", "whatever")

	if !errors.Is(wrongPassword, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("failure shapes differ: %q vs %q", wrongPassword, unknownEmail)
	}
}

func TestAuthService_Login_EmptyArguments(t *testing.T) {
	svc, _, _ := newTestService(t)

	if _, _, err := svc.Login(context.Background(), "", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "a@b.com", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	codec, err := token.NewCodec(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	users := newStubUserRepo()
	throttle := newStubThrottle(2)
	svc := NewAuthService(users, &stubRoleRepo{}, codec, throttle, zerolog.Nop())

	if err := svc.Register(context.Background(), registerInput("t@y.com")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, _, err := svc.Login(context.Background(), "t@y.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}

	// Limit reached: even the correct password is rejected.
	if _, _, err := svc.Login(context.Background(), "t@y.com", "secret1"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_ThrottleResetOnSuccess(t *testing.T) {
	codec, _ := token.NewCodec(testSecret, time.Hour)
	users := newStubUserRepo()
	throttle := newStubThrottle(3)
	svc := NewAuthService(users, &stubRoleRepo{}, codec, throttle, zerolog.Nop())

	if err := svc.Register(context.Background(), registerInput("t@y.com")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, _, _ = svc.Login(context.Background(), "t@y.com", "wrong")
	if _, _, err := svc.Login(context.Background(), "t@y.com", "secret1"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if throttle.failures["t@y.com"] != 0 {
		t.Fatalf("expected counter reset, got %d", throttle.failures["t@y.com"])
	}
}

func TestAuthService_Identify(t *testing.T) {
	svc, _, _ := newTestService(t)

	if err := svc.Register(context.Background(), registerInput("i@y.com")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	identity, err := svc.Identify(context.Background(), "i@y.com")
	if err != nil {
		t.Fatalf("Identify: %v", err)
	}
	if identity.Email != "i@y.com" || identity.Username() != "Anna Kovacs" {
		t.Fatalf("unexpected identity: %+v", identity)
	}

	if _, err := svc.Identify(context.Background(), "ghost@y.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
