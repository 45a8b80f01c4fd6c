package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gutvbooker/internal/database"
	"gutvbooker/internal/domain"
	"gutvbooker/internal/logger"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrSelfAction   = errors.New("admins cannot apply this action to themselves")
	ErrLoginTaken   = errors.New("login is already taken")
	ErrInvalidInput = errors.New("invalid user data")
)

type Service struct {
	users    UserRepository
	now      func() time.Time
	hashCost int
}

func NewService(users UserRepository) *Service {
	return &Service{users: users, now: time.Now, hashCost: bcrypt.DefaultCost}
}

// CreateUser registers an account on behalf of an admin. Logins are unique
// ignoring case. A zero JoinDate means the user joins today.
func (s *Service) CreateUser(ctx context.Context, adminID int64, req CreateUserRequest) (*domain.User, error) {
	login := strings.TrimSpace(req.Login)
	name := strings.TrimSpace(req.Name)
	if login == "" || name == "" {
		return nil, fmt.Errorf("%w: login and name must not be blank", ErrInvalidInput)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}

	_, err := s.users.GetByLogin(ctx, login)
	switch {
	case err == nil:
		return nil, ErrLoginTaken
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("check login: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	joined := req.JoinDate
	if joined.IsZero() {
		joined = s.now()
	}

	u := &domain.User{
		Login:        login,
		PasswordHash: string(hash),
		Name:         name,
		TelegramID:   strings.TrimSpace(req.TelegramID),
		Role:         domain.RoleUser,
		Ronin:        req.Ronin,
		JoinDate:     joined.UTC().Truncate(time.Second),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrLoginTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.InfoContext(ctx, "user created", "admin_id", adminID, "user_id", u.ID, "login", u.Login)
	return u, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *Service) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// SearchByName returns users whose name contains part. A blank part
// matches nobody.
func (s *Service) SearchByName(ctx context.Context, part string) ([]domain.User, error) {
	part = strings.TrimSpace(part)
	if part == "" {
		return []domain.User{}, nil
	}
	return s.users.SearchByName(ctx, part)
}

// SetBanned bans or unbans a user. Banned users cannot log in or book.
func (s *Service) SetBanned(ctx context.Context, adminID, userID int64, banned bool) (*domain.User, error) {
	if banned && adminID == userID {
		return nil, ErrSelfAction
	}
	return s.setFlag(ctx, adminID, userID, "banned", banned)
}

// SetRonin grants or revokes the Ronin tier. It is never granted automatically.
func (s *Service) SetRonin(ctx context.Context, adminID, userID int64, granted bool) (*domain.User, error) {
	return s.setFlag(ctx, adminID, userID, "ronin", granted)
}

// SetRole makes a user an admin or a regular user. Admins cannot change
// their own role.
func (s *Service) SetRole(ctx context.Context, adminID, userID int64, role string) (*domain.User, error) {
	r, err := domain.ParseUserRole(role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if adminID == userID {
		return nil, ErrSelfAction
	}

	if err := s.users.SetRole(ctx, userID, r); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	logger.InfoContext(ctx, "user role changed", "admin_id", adminID, "user_id", userID, "role", r)
	return s.GetUser(ctx, userID)
}

// DeleteUser removes the account and every booking it owns.
func (s *Service) DeleteUser(ctx context.Context, adminID, userID int64) error {
	if adminID == userID {
		return ErrSelfAction
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	logger.InfoContext(ctx, "user deleted", "admin_id", adminID, "user_id", userID)
	return nil
}

// PromoteOsnova runs the time-based Osnova promotion for every user now.
func (s *Service) PromoteOsnova(ctx context.Context) (int64, error) {
	n, err := s.users.PromoteEligibleOsnova(ctx, s.now())
	if err != nil {
		return 0, err
	}
	logger.InfoContext(ctx, "osnova promotion run", "promoted", n)
	return n, nil
}

func (s *Service) setFlag(ctx context.Context, adminID, userID int64, flag string, value bool) (*domain.User, error) {
	if err := s.users.SetFlag(ctx, userID, flag, value); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	logger.InfoContext(ctx, "admin action", "admin_id", adminID, "user_id", userID, "flag", flag, "value", value)
	return s.GetUser(ctx, userID)
}
