package mocks

import (
	"context"
	"time"

	"printhub/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockPrinterRepository struct {
	mock.Mock
}

func (m *MockPrinterRepository) Create(ctx context.Context, p *model.Printer) (*model.Printer, error) {
	args := m.Called(ctx, p)
	if f, ok := args.Get(0).(func(context.Context, *model.Printer) *model.Printer); ok {
		return f(ctx, p), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Printer), args.Error(1)
}

func (m *MockPrinterRepository) FindByID(ctx context.Context, id string) (*model.Printer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Printer), args.Error(1)
}

func (m *MockPrinterRepository) FindByEmail(ctx context.Context, email string) (*model.Printer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Printer), args.Error(1)
}

func (m *MockPrinterRepository) FindAll(ctx context.Context) ([]model.Printer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Printer), args.Error(1)
}

func (m *MockPrinterRepository) FindByPostalCode(ctx context.Context, postalCode string) ([]model.Printer, error) {
	args := m.Called(ctx, postalCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Printer), args.Error(1)
}

func (m *MockPrinterRepository) UpdateAddress(ctx context.Context, id, address, postalCode string, coords model.Coordinates) error {
	args := m.Called(ctx, id, address, postalCode, coords)
	return args.Error(0)
}

func (m *MockPrinterRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockPrinterRepository) SetResetToken(ctx context.Context, id, token string, expiresAt time.Time) error {
	args := m.Called(ctx, id, token, expiresAt)
	return args.Error(0)
}

func (m *MockPrinterRepository) FindByResetToken(ctx context.Context, token string) (*model.Printer, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Printer), args.Error(1)
}

func (m *MockPrinterRepository) ClearResetToken(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPrinterRepository) AddReceivedDocument(ctx context.Context, printerID, docID string) error {
	args := m.Called(ctx, printerID, docID)
	return args.Error(0)
}

func (m *MockPrinterRepository) RemoveReceivedDocument(ctx context.Context, printerID, docID string) error {
	args := m.Called(ctx, printerID, docID)
	return args.Error(0)
}

func (m *MockPrinterRepository) ReceivedDocumentIDs(ctx context.Context, printerID string) ([]string, error) {
	args := m.Called(ctx, printerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
