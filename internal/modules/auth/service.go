package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gutvbooker/internal/logger"
)

type Service struct {
	users    UserRepository
	tokens   TokenIssuer
	tokenTTL time.Duration
	now      func() time.Time
}

func NewService(users UserRepository, tokens TokenIssuer, tokenTTL time.Duration) *Service {
	return &Service{users: users, tokens: tokens, tokenTTL: tokenTTL, now: time.Now}
}

// Login checks the password, grants Osnova to users who have been members
// for a year and issues an access token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.GetByLogin(ctx, strings.TrimSpace(req.Login))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Banned {
		return nil, ErrAccountBanned
	}

	if user.EligibleForOsnova(s.now()) {
		if err := s.users.SetOsnova(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("promote to osnova: %w", err)
		}
		user.Osnova = true
		logger.InfoContext(ctx, "user promoted to osnova on login", "user_id", user.ID)
	}

	token, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
		User:        ToUserResponse(user),
	}, nil
}

func (s *Service) Me(ctx context.Context, userID int64) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}
