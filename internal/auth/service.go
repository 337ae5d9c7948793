package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// RegistrationError carries the store's explanation of why a user could not be created,
// e.g. "Key (username)=(alice) already exists."
type RegistrationError struct {
	Detail string
	Err    error
}

func (e *RegistrationError) Error() string { return "registration failed: " + e.Detail }
func (e *RegistrationError) Unwrap() error { return e.Err }

type Service struct {
	DB  *gorm.DB
	JWT *JWT
}

func (s *Service) Register(ctx context.Context, username, password string) (*User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, &RegistrationError{Detail: "username and password are required"}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, &RegistrationError{Detail: err.Error(), Err: err}
	}

	u := User{Username: username, PasswordHash: hash}
	if err := s.DB.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, &RegistrationError{Detail: storeDetail(err), Err: err}
	}
	return &u, nil
}

// SignIn checks the credentials and issues a session token.
func (s *Service) SignIn(ctx context.Context, username, password string) (*User, string, error) {
	var users []User
	if err := s.DB.WithContext(ctx).Where("username = ?", username).Limit(2).Find(&users).Error; err != nil {
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}
	if len(users) != 1 {
		return nil, "", ErrInvalidCredentials
	}
	u := users[0]
	if !ComparePassword(u.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.JWT.Sign(u.ID, u.Username)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return &u, token, nil
}

func storeDetail(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Detail != "" {
		return pgErr.Detail
	}
	return err.Error()
}
