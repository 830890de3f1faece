package services

import (
	"context"
	"fmt"

	"github.com/dukapos/backend/internal/config"
	"github.com/dukapos/backend/internal/models"
	"github.com/dukapos/backend/internal/store"
)

// DiagnosticsResult audits quick-pay configuration completeness without
// mutating anything.
type DiagnosticsResult struct {
	Success         bool                    `json:"success"`
	Issues          []string                `json:"issues"`
	PhoneChannels   []string                `json:"phone_channels,omitempty"`
	ProviderConfigs []models.ProviderConfig `json:"provider_configs,omitempty"`
	GatewayAccounts []models.GatewayAccount `json:"gateway_accounts"`
}

// DiagnosticsService reports missing channel mappings, provider configs and
// gateway accounts.
type DiagnosticsService struct {
	channels  store.ChannelStore
	providers store.ProviderStore
	gateways  store.GatewayStore
	cfg       *config.QuickPayConfig
}

func NewDiagnosticsService(channels store.ChannelStore, providers store.ProviderStore, gateways store.GatewayStore, cfg *config.QuickPayConfig) *DiagnosticsService {
	return &DiagnosticsService{
		channels:  channels,
		providers: providers,
		gateways:  gateways,
		cfg:       cfg,
	}
}

// Check runs the configuration audit.
func (s *DiagnosticsService) Check(ctx context.Context) (*DiagnosticsResult, error) {
	result := &DiagnosticsResult{Success: true, Issues: []string{}}

	channels, err := s.channels.ListEnabledPhoneChannels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list phone channels: %w", err)
	}
	if len(channels) == 0 {
		result.Success = false
		result.Issues = append(result.Issues, "No Phone-type payment channel found")
	}
	for _, ch := range channels {
		result.PhoneChannels = append(result.PhoneChannels, ch.Name)
		accounts, err := s.channels.ListChannelAccounts(ctx, ch.Name)
		if err != nil {
			return nil, fmt.Errorf("list accounts for %s: %w", ch.Name, err)
		}
		if len(accounts) == 0 {
			result.Success = false
			result.Issues = append(result.Issues,
				fmt.Sprintf("Payment channel '%s' has no company accounts", ch.Name))
		}
	}

	configs, err := s.providers.ListConfigs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list provider configs: %w", err)
	}
	if len(configs) == 0 {
		result.Success = false
		result.Issues = append(result.Issues, "No Mpesa settings found")
	}
	result.ProviderConfigs = configs

	gateways, err := s.gateways.ListByGatewayPattern(ctx, s.cfg.ProviderBrand)
	if err != nil {
		return nil, fmt.Errorf("list gateway accounts: %w", err)
	}
	if gateways == nil {
		gateways = []models.GatewayAccount{}
	}
	result.GatewayAccounts = gateways

	return result, nil
}
