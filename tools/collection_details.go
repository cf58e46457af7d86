package tools

import (
	"context"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/tidwall/gjson"

	"github.com/opennft/nft-bridge/internal"
)

type CollectionDetailsArgs struct {
	ContractAddress string `json:"contractAddress"`
	Chain           string `json:"chain,omitempty"`
}

type MarketStats struct {
	FloorPrice   *float64 `json:"floorPrice,omitempty"`
	NumOwners    *int64   `json:"numOwners,omitempty"`
	TotalVolume  *float64 `json:"totalVolume,omitempty"`
	TotalSales   *int64   `json:"totalSales,omitempty"`
	OneDayVolume *float64 `json:"oneDayVolume,omitempty"`
	AveragePrice *float64 `json:"averagePrice,omitempty"`
}

type CollectionDetails struct {
	Name        string       `json:"name"`
	Symbol      string       `json:"symbol,omitempty"`
	TokenType   string       `json:"tokenType,omitempty"`
	TotalSupply string       `json:"totalSupply,omitempty"`
	Description string       `json:"description,omitempty"`
	ImageURL    string       `json:"imageUrl,omitempty"`
	ExternalURL string       `json:"externalUrl,omitempty"`
	Verified    bool         `json:"verified"`
	MarketStats *MarketStats `json:"marketStats,omitempty"`
}

type CollectionDetailsOutput struct {
	Timestamp         string            `json:"timestamp"`
	ContractAddress   string            `json:"contractAddress"`
	Chain             string            `json:"chain"`
	CollectionDetails CollectionDetails `json:"collectionDetails"`
	DataSource        string            `json:"dataSource"`
	LastUpdated       string            `json:"lastUpdated"`
}

// GetNFTCollectionDetails merges on-chain contract metadata from the primary
// provider with marketplace stats. Either provider may fail without sinking
// the call: fields from the surviving source win, the name degrades to the
// "Unknown Collection" placeholder, and marketStats is simply omitted when
// the stats source is down. Only both providers failing propagates an error.
func (s *Service) GetNFTCollectionDetails(ctx context.Context, args CollectionDetailsArgs) (CollectionDetailsOutput, error) {
	var out CollectionDetailsOutput
	if args.ContractAddress == "" {
		return out, errors.New("contractAddress is required")
	}
	chain := resolveChain(args.Chain)

	var details CollectionDetails
	var sources []string

	q := url.Values{}
	q.Set("contractAddress", args.ContractAddress)
	meta, alchemyErr := s.getJSON(ctx, providerAlchemy, s.Alchemy.NFTURL(chain, "getContractMetadata", q))
	if alchemyErr == nil {
		sources = append(sources, providerAlchemy)
		details.Name = firstString(meta, "contractMetadata.name", "name")
		details.Symbol = firstString(meta, "contractMetadata.symbol", "symbol")
		details.TotalSupply = firstString(meta, "contractMetadata.totalSupply", "totalSupply")
		details.TokenType = firstString(meta, "contractMetadata.tokenType", "tokenType")
	} else {
		logger.KV(xlog.WARNING, "tool", ToolCollectionDetails, "provider", providerAlchemy, "err", alchemyErr)
	}

	osPayload, osErr := s.openSeaCollection(ctx, args.ContractAddress)
	if osErr == nil {
		sources = append(sources, providerOpenSea)
		if details.Name == "" {
			details.Name = firstString(osPayload, "collection.name", "name")
		}
		details.Description = firstString(osPayload, "collection.description", "description")
		details.ImageURL = firstString(osPayload, "collection.image_url", "image_url")
		details.ExternalURL = firstString(osPayload, "collection.external_url", "external_url")
		details.Verified = firstString(osPayload, "collection.safelist_request_status", "safelist_request_status") == "verified"
		details.MarketStats = s.collectionStats(ctx, osPayload)
	} else {
		logger.KV(xlog.WARNING, "tool", ToolCollectionDetails, "provider", providerOpenSea, "err", osErr)
	}

	if alchemyErr != nil && osErr != nil {
		return out, errors.WithMessage(alchemyErr, "all providers failed")
	}
	if details.Name == "" {
		details.Name = unknownCollection
	}

	now := internal.NowISO()
	out = CollectionDetailsOutput{
		Timestamp:         now,
		ContractAddress:   args.ContractAddress,
		Chain:             chain,
		CollectionDetails: details,
		DataSource:        strings.Join(sources, "+"),
		LastUpdated:       now,
	}
	return out, nil
}

// openSeaCollection resolves the collection behind a contract. The primary
// path is the asset_contract lookup; on failure there is exactly one
// fallback hop, treating the lowercased address as a collection slug.
func (s *Service) openSeaCollection(ctx context.Context, contractAddress string) (gjson.Result, error) {
	payload, err := s.getJSON(ctx, providerOpenSea, s.OpenSea.AssetContractURL(contractAddress))
	if err == nil {
		return payload, nil
	}
	logger.KV(xlog.DEBUG, "provider", providerOpenSea, "fallback", "collection lookup", "err", err)
	return s.getJSON(ctx, providerOpenSea, s.OpenSea.CollectionURL(strings.ToLower(contractAddress)))
}

// collectionStats extracts marketplace stats from the collection payload,
// fetching the dedicated stats endpoint only when the payload has no stats
// embedded. A stats failure degrades to nil rather than erroring.
func (s *Service) collectionStats(ctx context.Context, payload gjson.Result) *MarketStats {
	stats := payload.Get("stats")
	if !stats.Exists() {
		stats = payload.Get("collection.stats")
	}
	if !stats.Exists() {
		slug := firstString(payload, "collection.slug", "slug")
		if slug == "" {
			return nil
		}
		extra, err := s.getJSON(ctx, providerOpenSea, s.OpenSea.CollectionStatsURL(slug))
		if err != nil {
			logger.KV(xlog.WARNING, "tool", ToolCollectionDetails, "provider", providerOpenSea, "stats", slug, "err", err)
			return nil
		}
		stats = extra.Get("stats")
	}
	if !stats.Exists() {
		return nil
	}
	return &MarketStats{
		FloorPrice:   floatPtr(stats, "floor_price"),
		NumOwners:    intPtr(stats, "num_owners"),
		TotalVolume:  floatPtr(stats, "total_volume"),
		TotalSales:   intPtr(stats, "total_sales"),
		OneDayVolume: floatPtr(stats, "one_day_volume"),
		AveragePrice: floatPtr(stats, "average_price"),
	}
}
