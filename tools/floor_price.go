package tools

import (
	"context"
	"net/url"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"

	"github.com/opennft/nft-bridge/internal"
)

type FloorPriceArgs struct {
	ContractAddress string `json:"contractAddress"`
	Chain           string `json:"chain,omitempty"`
}

type MarketplaceFloor struct {
	FloorPrice    *float64 `json:"floorPrice,omitempty"`
	PriceCurrency string   `json:"priceCurrency,omitempty"`
	CollectionURL string   `json:"collectionUrl,omitempty"`
	RetrievedAt   string   `json:"retrievedAt,omitempty"`
	Error         string   `json:"error,omitempty"`
}

type FloorPriceOutput struct {
	Timestamp       string                      `json:"timestamp"`
	ContractAddress string                      `json:"contractAddress"`
	Chain           string                      `json:"chain"`
	Marketplaces    map[string]MarketplaceFloor `json:"marketplaces"`
	DataSource      string                      `json:"dataSource"`
	LastUpdated     string                      `json:"lastUpdated"`
}

// GetNFTFloorPrice returns the primary provider's cross-marketplace floor
// price view. Each marketplace entry either carries a price or the
// provider's per-marketplace error string.
func (s *Service) GetNFTFloorPrice(ctx context.Context, args FloorPriceArgs) (FloorPriceOutput, error) {
	var out FloorPriceOutput
	if args.ContractAddress == "" {
		return out, errors.New("contractAddress is required")
	}
	chain := resolveChain(args.Chain)

	q := url.Values{}
	q.Set("contractAddress", args.ContractAddress)
	payload, err := s.getJSON(ctx, providerAlchemy, s.Alchemy.NFTURL(chain, "getFloorPrice", q))
	if err != nil {
		return out, err
	}

	marketplaces := map[string]MarketplaceFloor{}
	payload.ForEach(func(name, entry gjson.Result) bool {
		if !entry.IsObject() {
			return true
		}
		marketplaces[name.String()] = MarketplaceFloor{
			FloorPrice:    floatPtr(entry, "floorPrice"),
			PriceCurrency: entry.Get("priceCurrency").String(),
			CollectionURL: entry.Get("collectionUrl").String(),
			RetrievedAt:   entry.Get("retrievedAt").String(),
			Error:         entry.Get("error").String(),
		}
		return true
	})

	now := internal.NowISO()
	out = FloorPriceOutput{
		Timestamp:       now,
		ContractAddress: args.ContractAddress,
		Chain:           chain,
		Marketplaces:    marketplaces,
		DataSource:      providerAlchemy,
		LastUpdated:     now,
	}
	return out, nil
}
