package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"

	"github.com/opennft/nft-bridge/internal"
)

type NFTTransfersArgs struct {
	ContractAddress string `json:"contractAddress"`
	FromDate        string `json:"fromDate,omitempty"`
	ToDate          string `json:"toDate,omitempty"`
	Limit           int    `json:"limit,omitempty"`
	Chain           string `json:"chain,omitempty"`
}

type NFTTransfer struct {
	From        string `json:"from"`
	To          string `json:"to"`
	TokenID     string `json:"tokenId,omitempty"`
	Category    string `json:"category,omitempty"`
	BlockNumber string `json:"blockNumber,omitempty"`
	TxHash      string `json:"txHash,omitempty"`
	Timestamp   string `json:"timestamp,omitempty"`
}

type NFTTransfersOutput struct {
	Timestamp       string        `json:"timestamp"`
	ContractAddress string        `json:"contractAddress"`
	Chain           string        `json:"chain"`
	Transfers       []NFTTransfer `json:"transfers"`
	Count           int           `json:"count"`
	DataSource      string        `json:"dataSource"`
	LastUpdated     string        `json:"lastUpdated"`
}

// GetNFTTransfers lists ERC-721/ERC-1155 transfers for a contract via the
// primary provider's JSON-RPC transfer index, newest first. Optional
// fromDate/toDate bounds are applied to the block timestamps the provider
// attaches to each transfer.
func (s *Service) GetNFTTransfers(ctx context.Context, args NFTTransfersArgs) (NFTTransfersOutput, error) {
	var out NFTTransfersOutput
	if args.ContractAddress == "" {
		return out, errors.New("contractAddress is required")
	}
	chain := resolveChain(args.Chain)
	limit := clampLimit(ToolNFTTransfers, args.Limit)

	var fromTime, toTime time.Time
	var err error
	if args.FromDate != "" {
		if fromTime, err = internal.ParseDate(args.FromDate); err != nil {
			return out, errors.WithMessage(err, "fromDate")
		}
	}
	if args.ToDate != "" {
		if toTime, err = internal.ParseDate(args.ToDate); err != nil {
			return out, errors.WithMessage(err, "toDate")
		}
	}

	params := map[string]any{
		"fromBlock":         "0x0",
		"toBlock":           "latest",
		"contractAddresses": []string{args.ContractAddress},
		"category":          []string{"erc721", "erc1155"},
		"withMetadata":      true,
		"order":             "desc",
		"maxCount":          fmt.Sprintf("0x%x", limit),
	}
	body, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "alchemy_getAssetTransfers",
		"params":  []any{params},
	})
	if err != nil {
		return out, err
	}

	payload, err := s.postJSON(ctx, providerAlchemy, s.Alchemy.CoreURL(chain), body)
	if err != nil {
		return out, err
	}

	dateFiltered := !fromTime.IsZero() || !toTime.IsZero()
	transfers := []NFTTransfer{}
	payload.Get("result.transfers").ForEach(func(_, t gjson.Result) bool {
		ts := internal.ParseProviderTime(t.Get("metadata.blockTimestamp").String())
		if dateFiltered && !internal.WithinRange(ts, fromTime, toTime) {
			return true
		}
		tr := NFTTransfer{
			From:        t.Get("from").String(),
			To:          t.Get("to").String(),
			TokenID:     firstString(t, "tokenId", "erc721TokenId"),
			Category:    t.Get("category").String(),
			BlockNumber: t.Get("blockNum").String(),
			TxHash:      t.Get("hash").String(),
		}
		if !ts.IsZero() {
			tr.Timestamp = ts.Format(time.RFC3339)
		}
		transfers = append(transfers, tr)
		return len(transfers) < limit
	})

	now := internal.NowISO()
	out = NFTTransfersOutput{
		Timestamp:       now,
		ContractAddress: args.ContractAddress,
		Chain:           chain,
		Transfers:       transfers,
		Count:           len(transfers),
		DataSource:      providerAlchemy,
		LastUpdated:     now,
	}
	return out, nil
}
