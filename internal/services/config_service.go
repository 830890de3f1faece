package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dukapos/backend/internal/config"
	"github.com/dukapos/backend/internal/store"
	"github.com/go-redis/redis/v8"
)

// ConfigService resolves the per-company quick-pay configuration: which
// payment channel to book receipts under and which merchant shortcode
// inbound receipts must carry.
type ConfigService struct {
	channels  store.ChannelStore
	providers store.ProviderStore
	redis     *redis.Client
	cfg       *config.QuickPayConfig
}

func NewConfigService(channels store.ChannelStore, providers store.ProviderStore, redisClient *redis.Client, cfg *config.QuickPayConfig) *ConfigService {
	return &ConfigService{
		channels:  channels,
		providers: providers,
		redis:     redisClient,
		cfg:       cfg,
	}
}

// ResolvePaymentChannel returns the first enabled Phone-type channel that
// has a ledger account mapped for the company. First match wins; later
// channels are ignored even when also mapped. Empty string when none
// resolves.
func (s *ConfigService) ResolvePaymentChannel(ctx context.Context, company string) (string, error) {
	if company == "" {
		return "", nil
	}

	channels, err := s.channels.ListEnabledPhoneChannels(ctx)
	if err != nil {
		return "", fmt.Errorf("list phone channels: %w", err)
	}

	for _, ch := range channels {
		_, err := s.channels.GetDefaultAccount(ctx, ch.Name, company)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("channel account lookup: %w", err)
		}
		return ch.Name, nil
	}
	return "", nil
}

// ResolveShortcode returns the company's merchant shortcode, or empty
// string when no provider config with a shortcode exists.
func (s *ConfigService) ResolveShortcode(ctx context.Context, company string) (string, error) {
	if company == "" {
		return "", nil
	}

	cfg, err := s.providers.GetConfigForCompany(ctx, company)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("provider config lookup: %w", err)
	}
	return cfg.BusinessShortcode, nil
}

// Available reports whether quick pay is usable for the company: both a
// channel and a shortcode must resolve. Results are cached briefly when
// redis is configured; resolution is side-effect free either way.
func (s *ConfigService) Available(ctx context.Context, company string) (bool, error) {
	if company == "" {
		return false, nil
	}

	cacheKey := fmt.Sprintf("quickpay:avail:%s", company)
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			return cached == "1", nil
		}
		if err != redis.Nil {
			log.Printf("[QuickPay] availability cache read failed: %v", err)
		}
	}

	channel, err := s.ResolvePaymentChannel(ctx, company)
	if err != nil {
		return false, err
	}
	shortcode, err := s.ResolveShortcode(ctx, company)
	if err != nil {
		return false, err
	}

	available := channel != "" && shortcode != ""

	if s.redis != nil {
		val := "0"
		if available {
			val = "1"
		}
		if err := s.redis.Set(ctx, cacheKey, val, s.cfg.AvailabilityTTL).Err(); err != nil {
			log.Printf("[QuickPay] availability cache write failed: %v", err)
		}
	}

	return available, nil
}
