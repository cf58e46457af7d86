// opensea_adapter.go
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

const openSeaDefaultBaseURL = "https://api.opensea.io"

// OpenSeaAdapter is the marketplace-stats provider: per-contract collection
// lookup, collection stats, sales events, and free-text collection search.
// The API key is optional; requests without one are still accepted by the
// provider at reduced rate limits.
type OpenSeaAdapter struct {
	APIKey string

	// BaseURL overrides the production host for tests.
	BaseURL string

	HTTPClient *http.Client
}

func NewOpenSeaAdapter(apiKey string, timeout time.Duration) *OpenSeaAdapter {
	return &OpenSeaAdapter{
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

func (o *OpenSeaAdapter) host() string {
	if o.BaseURL != "" {
		return strings.TrimSuffix(o.BaseURL, "/")
	}
	return openSeaDefaultBaseURL
}

// AssetContractURL looks up the collection behind a contract address.
func (o *OpenSeaAdapter) AssetContractURL(contractAddress string) string {
	return fmt.Sprintf("%s/api/v1/asset_contract/%s", o.host(), url.PathEscape(contractAddress))
}

// CollectionURL fetches a collection, stats included, by its slug. Used as
// the one fallback hop when the asset_contract lookup is unavailable.
func (o *OpenSeaAdapter) CollectionURL(slug string) string {
	return fmt.Sprintf("%s/api/v1/collection/%s", o.host(), url.PathEscape(slug))
}

// CollectionStatsURL fetches just the stats object for a collection slug.
func (o *OpenSeaAdapter) CollectionStatsURL(slug string) string {
	return fmt.Sprintf("%s/api/v1/collection/%s/stats", o.host(), url.PathEscape(slug))
}

// EventsURL searches sale events for a contract.
func (o *OpenSeaAdapter) EventsURL(contractAddress string, limit int) string {
	q := url.Values{}
	q.Set("asset_contract_address", contractAddress)
	q.Set("event_type", "successful")
	q.Set("limit", fmt.Sprintf("%d", limit))
	return fmt.Sprintf("%s/api/v1/events?%s", o.host(), q.Encode())
}

// SearchURL searches collections by free-text query.
func (o *OpenSeaAdapter) SearchURL(query string, limit int) string {
	q := url.Values{}
	q.Set("search", query)
	q.Set("limit", fmt.Sprintf("%d", limit))
	return fmt.Sprintf("%s/api/v1/collections?%s", o.host(), q.Encode())
}

func (o *OpenSeaAdapter) ExecuteRequest(ctx context.Context, req *nftbridge.NormalizedRequest) (*nftbridge.NormalizedResponse, error) {
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
	if o.APIKey != "" && httpReq.Header.Get("X-API-KEY") == "" {
		httpReq.Header.Set("X-API-KEY", o.APIKey)
	}

	client := o.HTTPClient
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

func (o *OpenSeaAdapter) IsRateLimitError(resp *nftbridge.NormalizedResponse) bool {
	return resp.StatusCode == 429
}
