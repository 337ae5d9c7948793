package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobseeker/internal/auth"
	"jobseeker/internal/config"
	"jobseeker/internal/db"
)

func newTestService(t *testing.T) *auth.Service {
	t.Helper()
	gdb, err := db.Connect(config.Config{DBDriver: "sqlite", DBPath: ":memory:"})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := db.AutoMigrateAndIndexes(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })
	return &auth.Service{DB: gdb, JWT: auth.NewJWT("test-secret", time.Hour)}
}

func TestRegisterThenSignIn(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "correct horse")
	if err != nil {
		t.Fatalf("Register error = %v", err)
	}
	if u.PasswordHash == "correct horse" {
		t.Fatal("password stored in clear text")
	}

	got, token, err := svc.SignIn(ctx, "alice", "correct horse")
	if err != nil {
		t.Fatalf("SignIn error = %v", err)
	}
	if got.ID != u.ID || token == "" {
		t.Errorf("SignIn = %+v, %q", got, token)
	}

	s, err := svc.JWT.Verify(token)
	if err != nil || s.UserID != u.ID || s.Username != "alice" {
		t.Errorf("token session = %+v, %v", s, err)
	}
}

func TestSignIn_Failures(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Register(ctx, "alice", "correct horse"); err != nil {
		t.Fatal(err)
	}

	if _, _, err := svc.SignIn(ctx, "alice", "wrong"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v", err)
	}
	if _, _, err := svc.SignIn(ctx, "nobody", "correct horse"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Errorf("unknown user err = %v", err)
	}
	if _, _, err := svc.SignIn(ctx, "Alice", "correct horse"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Errorf("usernames are case-sensitive, err = %v", err)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Register(ctx, "alice", "pw1"); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Register(ctx, "alice", "pw2")
	var regErr *auth.RegistrationError
	if !errors.As(err, &regErr) {
		t.Fatalf("err = %v, want *RegistrationError", err)
	}
	if regErr.Detail == "" {
		t.Error("registration error should carry a detail")
	}
}

func TestRegister_RequiresCredentials(t *testing.T) {
	svc := newTestService(t)
	var regErr *auth.RegistrationError
	if _, err := svc.Register(context.Background(), "", "pw"); !errors.As(err, &regErr) {
		t.Errorf("empty username err = %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", ""); !errors.As(err, &regErr) {
		t.Errorf("empty password err = %v", err)
	}
}
