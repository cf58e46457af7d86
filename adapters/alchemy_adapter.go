// alchemy_adapter.go
package adapters

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	nftbridge "github.com/opennft/nft-bridge"
)

// chainSubdomains maps logical chain names to Alchemy network subdomains.
// Unknown chains fall back to the ethereum entry.
var chainSubdomains = map[string]string{
	"ethereum": "eth-mainnet",
	"polygon":  "polygon-mainnet",
	"arbitrum": "arb-mainnet",
	"optimism": "opt-mainnet",
}

// ChainSubdomain resolves a logical chain name to the provider subdomain.
func ChainSubdomain(chain string) string {
	if sub, ok := chainSubdomains[strings.ToLower(chain)]; ok {
		return sub
	}
	return chainSubdomains["ethereum"]
}

// AlchemyAdapter is the primary blockchain-data provider: contract metadata,
// per-token metadata, asset transfers, owned assets, and cross-marketplace
// floor prices.
type AlchemyAdapter struct {
	APIKey string

	// BaseURL overrides the per-chain production host; tests point it at a
	// local server. Empty means https://{subdomain}.g.alchemy.com.
	BaseURL string

	HTTPClient *http.Client
}

func NewAlchemyAdapter(apiKey string, timeout time.Duration) *AlchemyAdapter {
	return &AlchemyAdapter{
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// host returns the scheme+host portion for a chain.
func (a *AlchemyAdapter) host(chain string) string {
	if a.BaseURL != "" {
		return strings.TrimSuffix(a.BaseURL, "/")
	}
	return fmt.Sprintf("https://%s.g.alchemy.com", ChainSubdomain(chain))
}

// NFTURL builds an NFT API v2 endpoint for the given chain and method, e.g.
// getContractMetadata or getNFTs. The API key is part of the path.
func (a *AlchemyAdapter) NFTURL(chain, method string, query url.Values) string {
	u := fmt.Sprintf("%s/nft/v2/%s/%s", a.host(chain), a.APIKey, method)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// CoreURL builds the JSON-RPC endpoint used for alchemy_getAssetTransfers.
func (a *AlchemyAdapter) CoreURL(chain string) string {
	return fmt.Sprintf("%s/v2/%s", a.host(chain), a.APIKey)
}

func (a *AlchemyAdapter) ExecuteRequest(ctx context.Context, req *nftbridge.NormalizedRequest) (*nftbridge.NormalizedResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.Endpoint, bytes.NewReader(req.Body))
	if err != nil {
		return nil, err
	}

	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}
	if len(req.Body) > 0 && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	client := a.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	headers := make(map[string]string)
	for k, vals := range resp.Header {
		if len(vals) > 0 {
			headers[strings.ToLower(k)] = vals[0]
		}
	}

	return &nftbridge.NormalizedResponse{
		StatusCode: resp.StatusCode,
		Headers:    headers,
		Data:       data,
	}, nil
}

func (a *AlchemyAdapter) IsRateLimitError(resp *nftbridge.NormalizedResponse) bool {
	return resp.StatusCode == 429
}
