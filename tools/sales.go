package tools

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"

	"github.com/opennft/nft-bridge/internal"
)

type NFTSalesArgs struct {
	ContractAddress string `json:"contractAddress"`
	Marketplace     string `json:"marketplace,omitempty"`
	Limit           int    `json:"limit,omitempty"`
	Chain           string `json:"chain,omitempty"`
}

type NFTSale struct {
	TokenID      string  `json:"tokenId,omitempty"`
	Seller       string  `json:"seller,omitempty"`
	Buyer        string  `json:"buyer,omitempty"`
	Price        float64 `json:"price,omitempty"`
	PaymentToken string  `json:"paymentToken,omitempty"`
	Marketplace  string  `json:"marketplace,omitempty"`
	Timestamp    string  `json:"timestamp,omitempty"`
	TxHash       string  `json:"txHash,omitempty"`
}

type NFTSalesOutput struct {
	Timestamp       string    `json:"timestamp"`
	ContractAddress string    `json:"contractAddress"`
	Marketplace     string    `json:"marketplace,omitempty"`
	Chain           string    `json:"chain"`
	Sales           []NFTSale `json:"sales"`
	Count           int       `json:"count"`
	DataSource      string    `json:"dataSource"`
	LastUpdated     string    `json:"lastUpdated"`
}

// GetNFTSales lists recent completed sales for a contract from the
// marketplace-stats provider. The provider is the sole sales source, so a
// failed fetch propagates rather than degrading to an empty list. An
// optional marketplace argument filters events client-side; events without
// a marketplace tag count as the provider's own venue.
func (s *Service) GetNFTSales(ctx context.Context, args NFTSalesArgs) (NFTSalesOutput, error) {
	var out NFTSalesOutput
	if args.ContractAddress == "" {
		return out, errors.New("contractAddress is required")
	}
	chain := resolveChain(args.Chain)
	limit := clampLimit(ToolNFTSales, args.Limit)

	payload, err := s.getJSON(ctx, providerOpenSea, s.OpenSea.EventsURL(args.ContractAddress, limit))
	if err != nil {
		return out, err
	}

	sales := []NFTSale{}
	payload.Get("asset_events").ForEach(func(_, ev gjson.Result) bool {
		venue := ev.Get("marketplace").String()
		if venue == "" {
			venue = providerOpenSea
		}
		if args.Marketplace != "" && !strings.EqualFold(venue, args.Marketplace) {
			return true
		}
		sale := NFTSale{
			TokenID:      firstString(ev, "asset.token_id", "token_id"),
			Seller:       firstString(ev, "seller.address", "seller"),
			Buyer:        firstString(ev, "winner_account.address", "buyer"),
			PaymentToken: firstString(ev, "payment_token.symbol", "payment_token"),
			Marketplace:  venue,
			TxHash:       firstString(ev, "transaction.transaction_hash", "transaction_hash"),
		}
		sale.Price = salePrice(ev)
		if ts := internal.ParseProviderTime(firstString(ev, "event_timestamp", "created_date")); !ts.IsZero() {
			sale.Timestamp = ts.Format(time.RFC3339)
		}
		sales = append(sales, sale)
		return len(sales) < limit
	})

	now := internal.NowISO()
	out = NFTSalesOutput{
		Timestamp:       now,
		ContractAddress: args.ContractAddress,
		Marketplace:     args.Marketplace,
		Chain:           chain,
		Sales:           sales,
		Count:           len(sales),
		DataSource:      providerOpenSea,
		LastUpdated:     now,
	}
	return out, nil
}

// salePrice converts the raw integer total_price into token units using the
// payment token's decimals, defaulting to 18.
func salePrice(ev gjson.Result) float64 {
	raw := ev.Get("total_price").String()
	if raw == "" {
		return 0
	}
	wei, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	decimals := int64(18)
	if d := ev.Get("payment_token.decimals"); d.Exists() {
		decimals = d.Int()
	}
	return wei / math.Pow10(int(decimals))
}
