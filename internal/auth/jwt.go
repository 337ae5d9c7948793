package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Session is what a verified token tells us about the caller.
type Session struct {
	UserID   uint64
	Username string
}

type JWT struct {
	secret []byte
	ttl    time.Duration
}

func NewJWT(secret string, ttl time.Duration) *JWT {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &JWT{secret: []byte(secret), ttl: ttl}
}

func (j *JWT) Sign(userID uint64, username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID,
		"name": username,
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  now.Add(j.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(j.secret)
}

func (j *JWT) Verify(tokenStr string) (Session, error) {
	t, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return j.secret, nil
	})
	if err != nil || !t.Valid {
		return Session{}, errors.New("invalid token")
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, errors.New("invalid claims")
	}

	sub, ok := claims["sub"]
	if !ok {
		return Session{}, errors.New("missing sub")
	}
	// jwt MapClaims numbers are float64
	idf, ok := sub.(float64)
	if !ok {
		return Session{}, errors.New("invalid sub type")
	}
	name, ok := claims["name"].(string)
	if !ok || name == "" {
		return Session{}, errors.New("missing name")
	}
	return Session{UserID: uint64(idf), Username: name}, nil
}
