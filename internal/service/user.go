package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"printhub/internal/auth"
	"printhub/internal/model"
	"printhub/internal/notify"
	"printhub/internal/repository"
)

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotFound    = errors.New("account not found")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthResult is returned by register and login operations.
type AuthResult struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// UserService covers end-user account flows.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, *AuthResult, error)
	Login(ctx context.Context, email, password string) (*model.User, *AuthResult, error)
	// Profile returns the user with the sent-documents back-references filled in.
	Profile(ctx context.Context, id string) (*model.User, error)
	ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error
}

type userService struct {
	users    repository.UserRepository
	jwt      *auth.JWTManager
	notifier notify.Notifier
	log      *zap.Logger
}

// NewUserService constructs a UserService.
func NewUserService(users repository.UserRepository, jwt *auth.JWTManager, notifier notify.Notifier, log *zap.Logger) UserService {
	return &userService{users: users, jwt: jwt, notifier: notifier, log: log}
}

func (s *userService) Register(ctx context.Context, username, email, password string) (*model.User, *AuthResult, error) {
	if !emailPattern.MatchString(email) {
		return nil, nil, ErrInvalidEmail
	}
	if err := auth.ValidatePassword(password); err != nil {
		return nil, nil, err
	}
	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, nil, err
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	stored, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.sendWelcome(ctx, stored.Email, stored.Username)

	result, err := s.issueToken(stored.ID, stored.Email, auth.RoleUser)
	if err != nil {
		return nil, nil, err
	}
	return stored, result, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*model.User, *AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	result, err := s.issueToken(user.ID, user.Email, auth.RoleUser)
	if err != nil {
		return nil, nil, err
	}
	return user, result, nil
}

func (s *userService) Profile(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	ids, err := s.users.SentDocumentIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	user.SentDocumentIDs = ids
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	if err := auth.ValidatePassword(newPassword); err != nil {
		return err
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAccountNotFound
		}
		return err
	}
	if !auth.CheckPassword(oldPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, id, hash)
}

func (s *userService) issueToken(id, email, role string) (*AuthResult, error) {
	token, err := s.jwt.Generate(id, email, role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresIn: int64(s.jwt.TTL().Seconds())}, nil
}

// sendWelcome is best effort; registration never fails on a mail error.
func (s *userService) sendWelcome(ctx context.Context, email, name string) {
	body := fmt.Sprintf("Hello %s,\n\nThanks for signing up. We are happy to have you!\n\nRegards,\nThe team", name)
	if err := s.notifier.Send(ctx, email, "Welcome to our platform!", body); err != nil {
		s.log.Error("welcome email failed", zap.String("to", email), zap.Error(err))
	}
}
