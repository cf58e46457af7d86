package tools

import (
	"context"
	"net/url"

	"github.com/cockroachdb/errors"

	"github.com/opennft/nft-bridge/internal"
)

type NFTMetadataArgs struct {
	ContractAddress string `json:"contractAddress"`
	TokenID         string `json:"tokenId"`
	Chain           string `json:"chain,omitempty"`
}

type NFTMetadata struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	TokenType   string `json:"tokenType,omitempty"`
	TokenURI    string `json:"tokenUri,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Attributes  []any  `json:"attributes,omitempty"`
}

type NFTMetadataOutput struct {
	Timestamp       string      `json:"timestamp"`
	ContractAddress string      `json:"contractAddress"`
	TokenID         string      `json:"tokenId"`
	Chain           string      `json:"chain"`
	Metadata        NFTMetadata `json:"metadata"`
	DataSource      string      `json:"dataSource"`
	LastUpdated     string      `json:"lastUpdated"`
}

// GetNFTMetadata fetches a single token's metadata from the primary
// provider. A provider failure propagates; there is no secondary source for
// per-token metadata.
func (s *Service) GetNFTMetadata(ctx context.Context, args NFTMetadataArgs) (NFTMetadataOutput, error) {
	var out NFTMetadataOutput
	if args.ContractAddress == "" {
		return out, errors.New("contractAddress is required")
	}
	if args.TokenID == "" {
		return out, errors.New("tokenId is required")
	}
	chain := resolveChain(args.Chain)

	q := url.Values{}
	q.Set("contractAddress", args.ContractAddress)
	q.Set("tokenId", args.TokenID)
	payload, err := s.getJSON(ctx, providerAlchemy, s.Alchemy.NFTURL(chain, "getNFTMetadata", q))
	if err != nil {
		return out, err
	}

	md := NFTMetadata{
		Name:        firstString(payload, "title", "metadata.name", "name"),
		Description: firstString(payload, "description", "metadata.description"),
		TokenType:   firstString(payload, "id.tokenMetadata.tokenType", "tokenType"),
		TokenURI:    firstString(payload, "tokenUri.gateway", "tokenUri.raw", "tokenUri"),
		ImageURL:    firstString(payload, "media.0.gateway", "media.0.raw", "metadata.image"),
	}
	if attrs := payload.Get("metadata.attributes"); attrs.IsArray() {
		if v, ok := attrs.Value().([]any); ok {
			md.Attributes = v
		}
	}

	now := internal.NowISO()
	out = NFTMetadataOutput{
		Timestamp:       now,
		ContractAddress: args.ContractAddress,
		TokenID:         args.TokenID,
		Chain:           chain,
		Metadata:        md,
		DataSource:      providerAlchemy,
		LastUpdated:     now,
	}
	return out, nil
}
