package services

import (
	"context"

	"github.com/dukapos/backend/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockChannelStore struct {
	mock.Mock
}

func (m *MockChannelStore) ListEnabledPhoneChannels(ctx context.Context) ([]models.PaymentChannel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PaymentChannel), args.Error(1)
}

func (m *MockChannelStore) GetDefaultAccount(ctx context.Context, channel, company string) (string, error) {
	args := m.Called(ctx, channel, company)
	return args.String(0), args.Error(1)
}

func (m *MockChannelStore) ListChannelAccounts(ctx context.Context, channel string) ([]models.ChannelAccount, error) {
	args := m.Called(ctx, channel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChannelAccount), args.Error(1)
}

type MockProviderStore struct {
	mock.Mock
}

func (m *MockProviderStore) GetConfigForCompany(ctx context.Context, company string) (*models.ProviderConfig, error) {
	args := m.Called(ctx, company)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProviderConfig), args.Error(1)
}

func (m *MockProviderStore) ListConfigs(ctx context.Context) ([]models.ProviderConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProviderConfig), args.Error(1)
}

type MockGatewayStore struct {
	mock.Mock
}

func (m *MockGatewayStore) GetByGateway(ctx context.Context, gateway string) (*models.GatewayAccount, error) {
	args := m.Called(ctx, gateway)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GatewayAccount), args.Error(1)
}

func (m *MockGatewayStore) FindByGatewayPattern(ctx context.Context, brand string) (*models.GatewayAccount, error) {
	args := m.Called(ctx, brand)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GatewayAccount), args.Error(1)
}

func (m *MockGatewayStore) ListByGatewayPattern(ctx context.Context, brand string) ([]models.GatewayAccount, error) {
	args := m.Called(ctx, brand)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GatewayAccount), args.Error(1)
}

type MockReceiptStore struct {
	mock.Mock
}

func (m *MockReceiptStore) GetReceipt(ctx context.Context, name string) (*models.Receipt, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Receipt), args.Error(1)
}

func (m *MockReceiptStore) CountDraftByShortcode(ctx context.Context, shortcode string) (int, error) {
	args := m.Called(ctx, shortcode)
	return args.Int(0), args.Error(1)
}

func (m *MockReceiptStore) ListDraftByShortcode(ctx context.Context, shortcode string, limit int) ([]models.Receipt, error) {
	args := m.Called(ctx, shortcode, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Receipt), args.Error(1)
}

func (m *MockReceiptStore) AssignParty(ctx context.Context, name, customer, modeOfPayment string) error {
	args := m.Called(ctx, name, customer, modeOfPayment)
	return args.Error(0)
}

func (m *MockReceiptStore) SubmitReceipt(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockReceiptStore) LinkInvoice(ctx context.Context, name, invoice string) error {
	args := m.Called(ctx, name, invoice)
	return args.Error(0)
}

type MockInvoiceStore struct {
	mock.Mock
}

func (m *MockInvoiceStore) GetInvoice(ctx context.Context, name string) (*models.Invoice, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invoice), args.Error(1)
}

func (m *MockInvoiceStore) SaveInvoice(ctx context.Context, inv *models.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceStore) SubmitInvoice(ctx context.Context, inv *models.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

type MockCustomerStore struct {
	mock.Mock
}

func (m *MockCustomerStore) GetCustomerPhone(ctx context.Context, customer string) (string, error) {
	args := m.Called(ctx, customer)
	return args.String(0), args.Error(1)
}

type MockPaymentRequestStore struct {
	mock.Mock
}

func (m *MockPaymentRequestStore) CreatePaymentRequest(ctx context.Context, pr *models.PaymentRequest) error {
	args := m.Called(ctx, pr)
	return args.Error(0)
}

func (m *MockPaymentRequestStore) GetPaymentRequest(ctx context.Context, name string) (*models.PaymentRequest, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentRequest), args.Error(1)
}
