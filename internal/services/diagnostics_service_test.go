package services

import (
	"context"
	"testing"

	"github.com/dukapos/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticsService_Check(t *testing.T) {
	ctx := context.Background()

	t.Run("fully configured", func(t *testing.T) {
		channels := new(MockChannelStore)
		providers := new(MockProviderStore)
		gateways := new(MockGatewayStore)

		channels.On("ListEnabledPhoneChannels", ctx).Return([]models.PaymentChannel{
			{Name: "Phone-M", Type: "Phone", Enabled: true},
		}, nil)
		channels.On("ListChannelAccounts", ctx, "Phone-M").Return([]models.ChannelAccount{
			{Channel: "Phone-M", Company: "Acme", DefaultAccount: "1200"},
		}, nil)
		providers.On("ListConfigs", ctx).Return([]models.ProviderConfig{
			{Name: "Acme Settings", Company: "Acme", BusinessShortcode: "600100"},
		}, nil)
		gateways.On("ListByGatewayPattern", ctx, "Mpesa").Return([]models.GatewayAccount{
			{Name: "Mpesa Account", PaymentGateway: "Mpesa", PaymentAccount: "1400"},
		}, nil)

		svc := NewDiagnosticsService(channels, providers, gateways, testQuickPayConfig())
		result, err := svc.Check(ctx)
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Empty(t, result.Issues)
		assert.Equal(t, []string{"Phone-M"}, result.PhoneChannels)
		assert.Len(t, result.GatewayAccounts, 1)
	})

	t.Run("flags every missing piece", func(t *testing.T) {
		channels := new(MockChannelStore)
		providers := new(MockProviderStore)
		gateways := new(MockGatewayStore)

		channels.On("ListEnabledPhoneChannels", ctx).Return([]models.PaymentChannel{}, nil)
		providers.On("ListConfigs", ctx).Return([]models.ProviderConfig{}, nil)
		gateways.On("ListByGatewayPattern", ctx, "Mpesa").Return([]models.GatewayAccount{}, nil)

		svc := NewDiagnosticsService(channels, providers, gateways, testQuickPayConfig())
		result, err := svc.Check(ctx)
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Contains(t, result.Issues, "No Phone-type payment channel found")
		assert.Contains(t, result.Issues, "No Mpesa settings found")
	})

	t.Run("flags channel without company accounts", func(t *testing.T) {
		channels := new(MockChannelStore)
		providers := new(MockProviderStore)
		gateways := new(MockGatewayStore)

		channels.On("ListEnabledPhoneChannels", ctx).Return([]models.PaymentChannel{
			{Name: "Phone-M", Type: "Phone", Enabled: true},
		}, nil)
		channels.On("ListChannelAccounts", ctx, "Phone-M").Return([]models.ChannelAccount{}, nil)
		providers.On("ListConfigs", ctx).Return([]models.ProviderConfig{
			{Name: "Acme Settings", Company: "Acme", BusinessShortcode: "600100"},
		}, nil)
		gateways.On("ListByGatewayPattern", ctx, "Mpesa").Return([]models.GatewayAccount{}, nil)

		svc := NewDiagnosticsService(channels, providers, gateways, testQuickPayConfig())
		result, err := svc.Check(ctx)
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Contains(t, result.Issues, "Payment channel 'Phone-M' has no company accounts")
	})
}

func TestCustomerService_GetPhone(t *testing.T) {
	ctx := context.Background()
	customers := new(MockCustomerStore)
	customers.On("GetCustomerPhone", ctx, "CUST-1").Return("254700000001", nil)

	svc := NewCustomerService(customers)
	phone, err := svc.GetPhone(ctx, "CUST-1")
	assert.NoError(t, err)
	assert.Equal(t, "254700000001", phone)
}
