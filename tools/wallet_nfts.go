package tools

import (
	"context"
	"net/url"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"

	"github.com/opennft/nft-bridge/internal"
)

type WalletNFTsArgs struct {
	WalletAddress string `json:"walletAddress"`
	Limit         int    `json:"limit,omitempty"`
	Chain         string `json:"chain,omitempty"`
}

type WalletNFT struct {
	ContractAddress string `json:"contractAddress"`
	TokenID         string `json:"tokenId,omitempty"`
	Name            string `json:"name,omitempty"`
	TokenType       string `json:"tokenType,omitempty"`
	ImageURL        string `json:"imageUrl,omitempty"`
}

type WalletNFTsOutput struct {
	Timestamp     string      `json:"timestamp"`
	WalletAddress string      `json:"walletAddress"`
	Chain         string      `json:"chain"`
	NFTs          []WalletNFT `json:"nfts"`
	TotalCount    int64       `json:"totalCount"`
	DataSource    string      `json:"dataSource"`
	LastUpdated   string      `json:"lastUpdated"`
}

// GetWalletNFTs lists assets owned by a wallet, up to the tool's limit.
// TotalCount echoes the provider's full ownership count, which can exceed
// the page returned here.
func (s *Service) GetWalletNFTs(ctx context.Context, args WalletNFTsArgs) (WalletNFTsOutput, error) {
	var out WalletNFTsOutput
	if args.WalletAddress == "" {
		return out, errors.New("walletAddress is required")
	}
	chain := resolveChain(args.Chain)
	limit := clampLimit(ToolWalletNFTs, args.Limit)

	q := url.Values{}
	q.Set("owner", args.WalletAddress)
	q.Set("pageSize", strconv.Itoa(limit))
	q.Set("withMetadata", "true")
	payload, err := s.getJSON(ctx, providerAlchemy, s.Alchemy.NFTURL(chain, "getNFTs", q))
	if err != nil {
		return out, err
	}

	nfts := []WalletNFT{}
	payload.Get("ownedNfts").ForEach(func(_, n gjson.Result) bool {
		nfts = append(nfts, WalletNFT{
			ContractAddress: firstString(n, "contract.address", "contractAddress"),
			TokenID:         firstString(n, "id.tokenId", "tokenId"),
			Name:            firstString(n, "title", "metadata.name", "name"),
			TokenType:       firstString(n, "id.tokenMetadata.tokenType", "tokenType"),
			ImageURL:        firstString(n, "media.0.gateway", "metadata.image"),
		})
		return len(nfts) < limit
	})

	totalCount := payload.Get("totalCount").Int()
	if totalCount == 0 {
		totalCount = int64(len(nfts))
	}

	now := internal.NowISO()
	out = WalletNFTsOutput{
		Timestamp:     now,
		WalletAddress: args.WalletAddress,
		Chain:         chain,
		NFTs:          nfts,
		TotalCount:    totalCount,
		DataSource:    providerAlchemy,
		LastUpdated:   now,
	}
	return out, nil
}
