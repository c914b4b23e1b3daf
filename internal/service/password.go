package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"printhub/internal/auth"
	"printhub/internal/notify"
	"printhub/internal/repository"
)

// ErrResetTokenInvalid is returned for unknown or expired reset tokens.
var ErrResetTokenInvalid = errors.New("reset token is invalid or expired")

const resetTokenTTL = time.Hour

// PasswordService implements the forgot/reset flow shared by users and
// printers: a random token is stored on whichever account matches the email
// and mailed out as a reset link.
type PasswordService interface {
	Forgot(ctx context.Context, email string) error
	Reset(ctx context.Context, token, newPassword string) error
}

type passwordService struct {
	users    repository.UserRepository
	printers repository.PrinterRepository
	notifier notify.Notifier
	baseURL  string
	log      *zap.Logger
}

// NewPasswordService constructs a PasswordService. baseURL is the frontend
// origin the reset link points at.
func NewPasswordService(users repository.UserRepository, printers repository.PrinterRepository, notifier notify.Notifier, baseURL string, log *zap.Logger) PasswordService {
	return &passwordService{users: users, printers: printers, notifier: notifier, baseURL: baseURL, log: log}
}

func (s *passwordService) Forgot(ctx context.Context, email string) error {
	token, err := newResetToken()
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(resetTokenTTL)

	accountType := "user"
	user, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if err := s.users.SetResetToken(ctx, user.ID, token, expiresAt); err != nil {
			return err
		}
	case errors.Is(err, sql.ErrNoRows):
		printer, perr := s.printers.FindByEmail(ctx, email)
		if perr != nil {
			if errors.Is(perr, sql.ErrNoRows) {
				return ErrAccountNotFound
			}
			return perr
		}
		accountType = "printer"
		if err := s.printers.SetResetToken(ctx, printer.ID, token, expiresAt); err != nil {
			return err
		}
	default:
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.baseURL, token)
	body := fmt.Sprintf("You are receiving this email because a password reset was requested for your %s account.\n\n"+
		"Follow this link to reset your password:\n\n%s\n\n"+
		"If you did not request a reset, please ignore this email.\n", accountType, resetURL)
	if err := s.notifier.Send(ctx, email, "Password reset request", body); err != nil {
		s.log.Error("reset email failed", zap.String("to", email), zap.Error(err))
		return err
	}
	return nil
}

func (s *passwordService) Reset(ctx context.Context, token, newPassword string) error {
	if err := auth.ValidatePassword(newPassword); err != nil {
		return err
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user, err := s.users.FindByResetToken(ctx, token)
	if err == nil {
		if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
			return err
		}
		return s.users.ClearResetToken(ctx, user.ID)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	printer, err := s.printers.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrResetTokenInvalid
		}
		return err
	}
	if err := s.printers.UpdatePassword(ctx, printer.ID, hash); err != nil {
		return err
	}
	return s.printers.ClearResetToken(ctx, printer.ID)
}

func newResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
