package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"printhub/internal/auth"
	"printhub/internal/model"
	"printhub/internal/notify"
	"printhub/internal/repository"
)

// ErrIncompleteAddress is returned when an address update misses a field.
var ErrIncompleteAddress = errors.New("address, postal code and coordinates are all required")

// PrinterService covers print-shop account flows and discovery.
type PrinterService interface {
	Register(ctx context.Context, name, email, password string) (*model.Printer, *AuthResult, error)
	Login(ctx context.Context, email, password string) (*model.Printer, *AuthResult, error)
	// Profile returns the printer with the received-documents back-references filled in.
	Profile(ctx context.Context, id string) (*model.Printer, error)
	All(ctx context.Context) ([]model.Printer, error)
	SearchByPostalCode(ctx context.Context, postalCode string) ([]model.Printer, error)
	UpdateAddress(ctx context.Context, id, address, postalCode string, coords model.Coordinates) error
	ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error
}

type printerService struct {
	printers repository.PrinterRepository
	jwt      *auth.JWTManager
	notifier notify.Notifier
	log      *zap.Logger
}

// NewPrinterService constructs a PrinterService.
func NewPrinterService(printers repository.PrinterRepository, jwt *auth.JWTManager, notifier notify.Notifier, log *zap.Logger) PrinterService {
	return &printerService{printers: printers, jwt: jwt, notifier: notifier, log: log}
}

func (s *printerService) Register(ctx context.Context, name, email, password string) (*model.Printer, *AuthResult, error) {
	if !emailPattern.MatchString(email) {
		return nil, nil, ErrInvalidEmail
	}
	if err := auth.ValidatePassword(password); err != nil {
		return nil, nil, err
	}
	if existing, err := s.printers.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, nil, err
	}

	printer := &model.Printer{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	stored, err := s.printers.Create(ctx, printer)
	if err != nil {
		return nil, nil, err
	}

	// Best effort, same as user registration.
	if err := s.notifier.Send(ctx, stored.Email, "Welcome to our platform!",
		"Hello "+stored.Name+",\n\nThanks for joining our print network. We are happy to have you!\n\nRegards,\nThe team"); err != nil {
		s.log.Error("welcome email failed", zap.String("to", stored.Email), zap.Error(err))
	}

	token, err := s.jwt.Generate(stored.ID, stored.Email, auth.RolePrinter)
	if err != nil {
		return nil, nil, err
	}
	return stored, &AuthResult{Token: token, ExpiresIn: int64(s.jwt.TTL().Seconds())}, nil
}

func (s *printerService) Login(ctx context.Context, email, password string) (*model.Printer, *AuthResult, error) {
	printer, err := s.printers.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !auth.CheckPassword(password, printer.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	token, err := s.jwt.Generate(printer.ID, printer.Email, auth.RolePrinter)
	if err != nil {
		return nil, nil, err
	}
	return printer, &AuthResult{Token: token, ExpiresIn: int64(s.jwt.TTL().Seconds())}, nil
}

func (s *printerService) Profile(ctx context.Context, id string) (*model.Printer, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	printer, err := s.printers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	ids, err := s.printers.ReceivedDocumentIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	printer.ReceivedDocumentIDs = ids
	return printer, nil
}

func (s *printerService) All(ctx context.Context) ([]model.Printer, error) {
	return s.printers.FindAll(ctx)
}

func (s *printerService) SearchByPostalCode(ctx context.Context, postalCode string) ([]model.Printer, error) {
	return s.printers.FindByPostalCode(ctx, postalCode)
}

func (s *printerService) UpdateAddress(ctx context.Context, id, address, postalCode string, coords model.Coordinates) error {
	if address == "" || postalCode == "" || coords.Lat == 0 || coords.Lng == 0 {
		return ErrIncompleteAddress
	}
	if err := s.printers.UpdateAddress(ctx, id, address, postalCode, coords); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAccountNotFound
		}
		return err
	}
	return nil
}

func (s *printerService) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	if err := auth.ValidatePassword(newPassword); err != nil {
		return err
	}
	printer, err := s.printers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAccountNotFound
		}
		return err
	}
	if !auth.CheckPassword(oldPassword, printer.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.printers.UpdatePassword(ctx, id, hash)
}
