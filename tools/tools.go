// tools.go
// --------
// Static catalog data for the tool layer: tool names, the default chain, and
// the per-tool result-limit table. These are lookup structures rather than
// inline conditionals so the dispatcher stays declarative and testable
// without an executor.
package tools

const (
	ToolCollectionDetails = "getNFTCollectionDetails"
	ToolNFTMetadata       = "getNFTMetadata"
	ToolNFTTransfers      = "getNFTTransfers"
	ToolNFTSales          = "getNFTSales"
	ToolWalletNFTs        = "getWalletNFTs"
	ToolFloorPrice        = "getNFTFloorPrice"
	ToolSearchCollections = "searchNFTCollections"
)

// DefaultChain is assumed whenever a tool call omits the chain argument.
const DefaultChain = "ethereum"

type limitRule struct {
	Default int
	Cap     int
}

// limitRules holds each list-returning tool's default and hard cap.
var limitRules = map[string]limitRule{
	ToolNFTTransfers:      {Default: 10, Cap: 100},
	ToolNFTSales:          {Default: 10, Cap: 50},
	ToolWalletNFTs:        {Default: 20, Cap: 100},
	ToolSearchCollections: {Default: 10, Cap: 50},
}

// clampLimit resolves a requested limit against the tool's rule: zero or
// negative means the default, anything above the cap is clamped.
func clampLimit(tool string, requested int) int {
	rule, ok := limitRules[tool]
	if !ok {
		return requested
	}
	if requested <= 0 {
		return rule.Default
	}
	if requested > rule.Cap {
		return rule.Cap
	}
	return requested
}

// resolveChain applies the catalog default for an absent chain argument.
// Unknown chain names are passed through; the adapter's subdomain map
// resolves them to the ethereum entry.
func resolveChain(chain string) string {
	if chain == "" {
		return DefaultChain
	}
	return chain
}
