// register.go
// -----------
// Binds the tool catalog to an MCP server: one mcp.Tool per catalog entry
// with an explicit JSON-schema input descriptor, and a thin wrapper that
// stamps every failure with the tool's name at the dispatch boundary.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register adds all seven tools to the server.
func Register(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolCollectionDetails,
		Description: "Get collection-level details for an NFT contract, merging on-chain metadata with marketplace stats",
		InputSchema: objectSchema([]string{"contractAddress"}, map[string]*jsonschema.Schema{
			"contractAddress": stringProp("NFT contract address"),
			"chain":           chainProp(),
		}),
	}, wrap(ToolCollectionDetails, svc.GetNFTCollectionDetails))

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolNFTMetadata,
		Description: "Get metadata for a single NFT by contract address and token id",
		InputSchema: objectSchema([]string{"contractAddress", "tokenId"}, map[string]*jsonschema.Schema{
			"contractAddress": stringProp("NFT contract address"),
			"tokenId":         stringProp("Token id within the contract"),
			"chain":           chainProp(),
		}),
	}, wrap(ToolNFTMetadata, svc.GetNFTMetadata))

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolNFTTransfers,
		Description: "List recent ERC-721/ERC-1155 transfers for an NFT contract, optionally bounded by a date range",
		InputSchema: objectSchema([]string{"contractAddress"}, map[string]*jsonschema.Schema{
			"contractAddress": stringProp("NFT contract address"),
			"fromDate":        stringProp("Earliest transfer date, YYYY-MM-DD or RFC 3339"),
			"toDate":          stringProp("Latest transfer date, YYYY-MM-DD or RFC 3339"),
			"limit":           limitProp(ToolNFTTransfers),
			"chain":           chainProp(),
		}),
	}, wrap(ToolNFTTransfers, svc.GetNFTTransfers))

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolNFTSales,
		Description: "List recent completed sales for an NFT contract",
		InputSchema: objectSchema([]string{"contractAddress"}, map[string]*jsonschema.Schema{
			"contractAddress": stringProp("NFT contract address"),
			"marketplace":     stringProp("Filter sales to a single marketplace"),
			"limit":           limitProp(ToolNFTSales),
			"chain":           chainProp(),
		}),
	}, wrap(ToolNFTSales, svc.GetNFTSales))

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolWalletNFTs,
		Description: "List NFTs owned by a wallet address",
		InputSchema: objectSchema([]string{"walletAddress"}, map[string]*jsonschema.Schema{
			"walletAddress": stringProp("Wallet address to inspect"),
			"limit":         limitProp(ToolWalletNFTs),
			"chain":         chainProp(),
		}),
	}, wrap(ToolWalletNFTs, svc.GetWalletNFTs))

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolFloorPrice,
		Description: "Get cross-marketplace floor prices for an NFT collection",
		InputSchema: objectSchema([]string{"contractAddress"}, map[string]*jsonschema.Schema{
			"contractAddress": stringProp("NFT contract address"),
			"chain":           chainProp(),
		}),
	}, wrap(ToolFloorPrice, svc.GetNFTFloorPrice))

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolSearchCollections,
		Description: "Search NFT collections by free-text query",
		InputSchema: objectSchema([]string{"query"}, map[string]*jsonschema.Schema{
			"query": stringProp("Free-text search query"),
			"limit": limitProp(ToolSearchCollections),
		}),
	}, wrap(ToolSearchCollections, svc.SearchNFTCollections))
}

// wrap adapts a Service method to the MCP handler shape. Internal failures
// are re-wrapped once here with the tool name; the underlying cause stays on
// the chain.
func wrap[In, Out any](name string, fn func(context.Context, In) (Out, error)) mcp.ToolHandlerFor[In, Out] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in In) (*mcp.CallToolResult, Out, error) {
		out, err := fn(ctx, in)
		if err != nil {
			var zero Out
			return nil, zero, errors.WithMessage(err, name)
		}
		return nil, out, nil
	}
}

func objectSchema(required []string, props map[string]*jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

func stringProp(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: desc}
}

func chainProp() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Description: "Logical chain name: ethereum, polygon, arbitrum, or optimism; unknown values resolve as ethereum",
		Default:     json.RawMessage(`"` + DefaultChain + `"`),
	}
}

func limitProp(tool string) *jsonschema.Schema {
	rule := limitRules[tool]
	return &jsonschema.Schema{
		Type:        "integer",
		Description: fmt.Sprintf("Maximum number of results (capped at %d)", rule.Cap),
		Default:     json.RawMessage(strconv.Itoa(rule.Default)),
	}
}
