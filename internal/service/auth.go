package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"bitbuzz/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrWrongPassword = errors.New("wrong password")

const adminRole = "admin"

// AuthService checks the shared admin password and issues short-lived
// admin tokens. The server keeps no session state.
type AuthService struct {
	password []byte
	hash     []byte
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

func NewAuthService(cfg config.AdminConfig) *AuthService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &AuthService{
		password: []byte(cfg.Password),
		hash:     []byte(cfg.PasswordHash),
		secret:   []byte(cfg.JWTSecret),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Authenticate reports whether password unlocks admin mode. An empty
// password is not an attempt and yields no error.
func (s *AuthService) Authenticate(password string) (bool, error) {
	if password == "" {
		return false, nil
	}
	if s.match(password) {
		return true, nil
	}
	return false, ErrWrongPassword
}

func (s *AuthService) match(password string) bool {
	if len(s.hash) > 0 {
		return bcrypt.CompareHashAndPassword(s.hash, []byte(password)) == nil
	}
	if len(s.password) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(s.password, []byte(password)) == 1
}

func (s *AuthService) IssueToken() (string, time.Time, error) {
	exp := s.now().Add(s.ttl)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": adminRole,
		"exp":  exp.Unix(),
	}).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, exp, nil
}

func (s *AuthService) VerifyToken(raw string) bool {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	return ok && claims["role"] == adminRole
}
