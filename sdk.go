// sdk.go
// ------
// The sdk.go file contains the core NFTBridge struct and its methods.
// This is the main entry point of the request layer.
//
// Key functionalities include:
// - Initializing the bridge with New()
// - Registering providers with RegisterProvider()
// - Making requests via bridge.Request()
//
// The NFTBridge relies on a RateLimiter and a RequestExecutor to apply the
// blanket throttle and retry policy consistently across all providers.
package nftbridge

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/opennft/nft-bridge", "nftbridge")

type NFTBridge struct {
	mu        sync.Mutex
	providers map[string]ProviderAdapter

	config      Config
	rateLimiter *RateLimiter
	executor    *RequestExecutor
}

// New builds a bridge with the given configuration. Zero-valued tuning
// fields fall back to the package defaults.
func New(cfg Config) *NFTBridge {
	cfg = cfg.withDefaults()
	sdk := &NFTBridge{
		providers:   make(map[string]ProviderAdapter),
		config:      cfg,
		rateLimiter: NewRateLimiter(cfg.RateLimitDelay),
	}
	sdk.executor = NewRequestExecutor(sdk)
	return sdk
}

// RegisterProvider associates a ProviderAdapter with a provider name.
func (sdk *NFTBridge) RegisterProvider(name string, adapter ProviderAdapter) {
	sdk.mu.Lock()
	defer sdk.mu.Unlock()
	sdk.providers[name] = adapter
	logger.KV(xlog.DEBUG, "provider", name, "status", "registered")
}

// Request sends a NormalizedRequest to the named provider and returns the
// NormalizedResponse, applying the throttle, retries, and backoff.
func (sdk *NFTBridge) Request(ctx context.Context, providerName string, req *NormalizedRequest) (*NormalizedResponse, error) {
	sdk.mu.Lock()
	adapter, ok := sdk.providers[providerName]
	sdk.mu.Unlock()
	if !ok {
		return nil, errors.Newf("provider %q not registered", providerName)
	}
	return sdk.executor.ExecuteWithRetry(ctx, providerName, adapter, req)
}

// Config returns the effective configuration, defaults applied.
func (sdk *NFTBridge) Config() Config {
	return sdk.config
}
