package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/gestao-empresarial/management-system/internal/core/domain"
	"github.com/gestao-empresarial/management-system/internal/core/ports"
)

// dummyHash is compared against when the username is unknown so a miss costs
// the same as a wrong password.
var dummyHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
})

// AuthService checks credentials and issues tokens.
type AuthService struct {
	repo      ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, now: time.Now}
}

// Authenticate verifies username and password against the active users.
// Unknown, inactive and wrong-password attempts are indistinguishable.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.UserSummary, error) {
	if username == "" || password == "" {
		return nil, domain.ErrMissingField
	}

	user, err := s.repo.FindActiveByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user.Summary(), nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.UserSummary, error) {
	summary, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(summary)
	if err != nil {
		return "", nil, err
	}

	return token, summary, nil
}

func (s *AuthService) generateToken(user *domain.UserSummary) (string, error) {
	claims := jwt.MapClaims{
		"sub":      strconv.FormatInt(user.ID, 10),
		"username": user.Username,
		"exp":      s.now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
