package tools

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"

	"github.com/opennft/nft-bridge/internal"
)

type SearchCollectionsArgs struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

type CollectionSearchResult struct {
	Name        string   `json:"name"`
	Slug        string   `json:"slug,omitempty"`
	Description string   `json:"description,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	FloorPrice  *float64 `json:"floorPrice,omitempty"`
	Verified    bool     `json:"verified"`
}

type SearchCollectionsOutput struct {
	Timestamp   string                   `json:"timestamp"`
	Query       string                   `json:"query"`
	Results     []CollectionSearchResult `json:"results"`
	Count       int                      `json:"count"`
	DataSource  string                   `json:"dataSource"`
	LastUpdated string                   `json:"lastUpdated"`
}

// SearchNFTCollections runs a free-text collection search against the
// marketplace-stats provider. A provider failure propagates.
func (s *Service) SearchNFTCollections(ctx context.Context, args SearchCollectionsArgs) (SearchCollectionsOutput, error) {
	var out SearchCollectionsOutput
	if args.Query == "" {
		return out, errors.New("query is required")
	}
	limit := clampLimit(ToolSearchCollections, args.Limit)

	payload, err := s.getJSON(ctx, providerOpenSea, s.OpenSea.SearchURL(args.Query, limit))
	if err != nil {
		return out, err
	}

	list := payload.Get("collections")
	if !list.Exists() && payload.IsArray() {
		list = payload
	}

	results := []CollectionSearchResult{}
	list.ForEach(func(_, c gjson.Result) bool {
		results = append(results, CollectionSearchResult{
			Name:        c.Get("name").String(),
			Slug:        c.Get("slug").String(),
			Description: c.Get("description").String(),
			ImageURL:    c.Get("image_url").String(),
			FloorPrice:  floatPtr(c, "stats.floor_price"),
			Verified:    c.Get("safelist_request_status").String() == "verified",
		})
		return len(results) < limit
	})

	now := internal.NowISO()
	out = SearchCollectionsOutput{
		Timestamp:   now,
		Query:       args.Query,
		Results:     results,
		Count:       len(results),
		DataSource:  providerOpenSea,
		LastUpdated: now,
	}
	return out, nil
}
