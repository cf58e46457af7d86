package nftbridge

import "context"

// ProviderAdapter defines the interface all adapters must implement.
type ProviderAdapter interface {
	// ExecuteRequest performs exactly one HTTP exchange for the given
	// descriptor. It must not retry or sleep; resilience belongs to the
	// executor.
	ExecuteRequest(ctx context.Context, req *NormalizedRequest) (*NormalizedResponse, error)

	// IsRateLimitError reports whether the response signals provider-side
	// throttling (typically HTTP 429).
	IsRateLimitError(resp *NormalizedResponse) bool
}
