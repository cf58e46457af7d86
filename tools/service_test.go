package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nftbridge "github.com/opennft/nft-bridge"
)

// newTestService builds a Service whose adapters point at local fake
// providers. Executor delays are tightened so failing paths stay fast.
func newTestService(t *testing.T, alchemy, opensea http.Handler) *Service {
	t.Helper()
	svc, err := NewService(nftbridge.Config{
		AlchemyAPIKey:  "test-key",
		OpenSeaAPIKey:  "sea-key",
		RateLimitDelay: time.Millisecond,
		BaseBackoff:    time.Millisecond,
		MaxRetries:     1,
	})
	require.NoError(t, err)

	if alchemy != nil {
		s := httptest.NewServer(alchemy)
		t.Cleanup(s.Close)
		svc.Alchemy.BaseURL = s.URL
	}
	if opensea != nil {
		s := httptest.NewServer(opensea)
		t.Cleanup(s.Close)
		svc.OpenSea.BaseURL = s.URL
	}
	return svc
}

func jsonHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})
}

func failingHandler(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"provider down"}`, status)
	})
}

func TestNewServiceRequiresAlchemyKey(t *testing.T) {
	_, err := NewService(nftbridge.Config{})
	require.Error(t, err)
	assert.Equal(t, nftbridge.KindConfiguration, nftbridge.KindOf(err))
}

func TestValidationRunsBeforeAnyOutboundCall(t *testing.T) {
	var calls atomic.Int64
	counting := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{}`))
	})
	svc := newTestService(t, counting, counting)

	_, err := svc.GetNFTMetadata(context.Background(), NFTMetadataArgs{ContractAddress: "0xabc"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tokenId")
	assert.Zero(t, calls.Load(), "validation failures must not reach a provider")

	_, err = svc.GetNFTMetadata(context.Background(), NFTMetadataArgs{TokenID: "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contractAddress")
	assert.Zero(t, calls.Load())
}

func TestCollectionDetailsMergesBothProviders(t *testing.T) {
	alchemy := jsonHandler(`{"name":"Bored Ape Yacht Club","totalSupply":"10000"}`)
	opensea := jsonHandler(`{"stats":{"floor_price":15.75,"num_owners":5420}}`)
	svc := newTestService(t, alchemy, opensea)

	out, err := svc.GetNFTCollectionDetails(context.Background(), CollectionDetailsArgs{
		ContractAddress: "0xBC4CA0EdA7647A8aB7C2061c2E118A18a936f13D",
		Chain:           "ethereum",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bored Ape Yacht Club", out.CollectionDetails.Name)
	assert.Equal(t, "10000", out.CollectionDetails.TotalSupply)
	require.NotNil(t, out.CollectionDetails.MarketStats)
	require.NotNil(t, out.CollectionDetails.MarketStats.FloorPrice)
	assert.Equal(t, 15.75, *out.CollectionDetails.MarketStats.FloorPrice)
	require.NotNil(t, out.CollectionDetails.MarketStats.NumOwners)
	assert.Equal(t, int64(5420), *out.CollectionDetails.MarketStats.NumOwners)
	assert.Equal(t, "alchemy+opensea", out.DataSource)
	assert.Equal(t, "ethereum", out.Chain)

	_, err = time.Parse(time.RFC3339, out.Timestamp)
	require.NoError(t, err)
}

func TestCollectionDetailsDegradesWhenStatsProviderFails(t *testing.T) {
	alchemy := jsonHandler(`{"contractMetadata":{"name":"Bored Ape Yacht Club","symbol":"BAYC","totalSupply":"10000","tokenType":"ERC721"}}`)
	svc := newTestService(t, alchemy, failingHandler(http.StatusInternalServerError))

	out, err := svc.GetNFTCollectionDetails(context.Background(), CollectionDetailsArgs{ContractAddress: "0xBC4C"})
	require.NoError(t, err, "a stats outage must degrade, not fail the tool")

	assert.Equal(t, "Bored Ape Yacht Club", out.CollectionDetails.Name)
	assert.False(t, out.CollectionDetails.Verified)
	assert.Nil(t, out.CollectionDetails.MarketStats)
	assert.Equal(t, "alchemy", out.DataSource)
}

func TestCollectionDetailsUnknownPlaceholder(t *testing.T) {
	opensea := jsonHandler(`{"stats":{"floor_price":0.5}}`)
	svc := newTestService(t, failingHandler(http.StatusInternalServerError), opensea)

	out, err := svc.GetNFTCollectionDetails(context.Background(), CollectionDetailsArgs{ContractAddress: "0xdead"})
	require.NoError(t, err)
	assert.Equal(t, "Unknown Collection", out.CollectionDetails.Name)
	assert.Equal(t, "opensea", out.DataSource)
}

func TestCollectionDetailsAllProvidersDown(t *testing.T) {
	svc := newTestService(t, failingHandler(http.StatusInternalServerError), failingHandler(http.StatusBadGateway))

	_, err := svc.GetNFTCollectionDetails(context.Background(), CollectionDetailsArgs{ContractAddress: "0xdead"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all providers failed")
}

func TestGetNFTMetadataRemap(t *testing.T) {
	alchemy := jsonHandler(`{
		"title":"Ape #1042",
		"description":"A bored ape",
		"id":{"tokenId":"1042","tokenMetadata":{"tokenType":"ERC721"}},
		"tokenUri":{"gateway":"https://ipfs.io/ipfs/Qm/1042"},
		"media":[{"gateway":"https://img.example/1042.png"}],
		"metadata":{"attributes":[{"trait_type":"Fur","value":"Golden"}]}
	}`)
	svc := newTestService(t, alchemy, nil)

	out, err := svc.GetNFTMetadata(context.Background(), NFTMetadataArgs{ContractAddress: "0xabc", TokenID: "1042"})
	require.NoError(t, err)

	assert.Equal(t, "Ape #1042", out.Metadata.Name)
	assert.Equal(t, "ERC721", out.Metadata.TokenType)
	assert.Equal(t, "https://ipfs.io/ipfs/Qm/1042", out.Metadata.TokenURI)
	assert.Equal(t, "https://img.example/1042.png", out.Metadata.ImageURL)
	assert.Len(t, out.Metadata.Attributes, 1)
	assert.Equal(t, "1042", out.TokenID)
	assert.Equal(t, "alchemy", out.DataSource)
}

func TestGetNFTTransfersRemapAndDateFilter(t *testing.T) {
	alchemy := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/test-key", r.URL.Path)
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"transfers":[
			{"from":"0xaaa","to":"0xbbb","tokenId":"1","category":"erc721","blockNum":"0x10","hash":"0xh1","metadata":{"blockTimestamp":"2024-06-01T10:00:00.000Z"}},
			{"from":"0xccc","to":"0xddd","tokenId":"2","category":"erc721","blockNum":"0x0f","hash":"0xh2","metadata":{"blockTimestamp":"2023-01-01T10:00:00.000Z"}}
		]}}`))
	})
	svc := newTestService(t, alchemy, nil)

	out, err := svc.GetNFTTransfers(context.Background(), NFTTransfersArgs{ContractAddress: "0xabc"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, "0xaaa", out.Transfers[0].From)
	assert.Equal(t, "0xh1", out.Transfers[0].TxHash)

	filtered, err := svc.GetNFTTransfers(context.Background(), NFTTransfersArgs{
		ContractAddress: "0xabc",
		FromDate:        "2024-01-01",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, filtered.Count)
	assert.Equal(t, "1", filtered.Transfers[0].TokenID)

	_, err = svc.GetNFTTransfers(context.Background(), NFTTransfersArgs{ContractAddress: "0xabc", FromDate: "junk"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fromDate")
}

func TestGetNFTSalesRemap(t *testing.T) {
	opensea := jsonHandler(`{"asset_events":[{
		"asset":{"token_id":"1042"},
		"seller":{"address":"0xseller"},
		"winner_account":{"address":"0xbuyer"},
		"total_price":"1500000000000000000",
		"payment_token":{"symbol":"ETH","decimals":18},
		"transaction":{"transaction_hash":"0xsale"},
		"event_timestamp":"2024-05-01T10:00:00"
	}]}`)
	svc := newTestService(t, nil, opensea)

	out, err := svc.GetNFTSales(context.Background(), NFTSalesArgs{ContractAddress: "0xabc"})
	require.NoError(t, err)
	require.Equal(t, 1, out.Count)

	sale := out.Sales[0]
	assert.Equal(t, "1042", sale.TokenID)
	assert.Equal(t, "0xseller", sale.Seller)
	assert.Equal(t, "0xbuyer", sale.Buyer)
	assert.InDelta(t, 1.5, sale.Price, 1e-9)
	assert.Equal(t, "ETH", sale.PaymentToken)
	assert.Equal(t, "opensea", sale.Marketplace)
	assert.Equal(t, "0xsale", sale.TxHash)
}

func TestGetNFTSalesPropagatesProviderFailure(t *testing.T) {
	svc := newTestService(t, nil, failingHandler(http.StatusInternalServerError))

	_, err := svc.GetNFTSales(context.Background(), NFTSalesArgs{ContractAddress: "0xabc"})
	require.Error(t, err, "the sole sales source failing must not degrade to an empty list")
	assert.Equal(t, nftbridge.KindHTTPStatus, nftbridge.KindOf(err))
}

func TestGetWalletNFTsRemap(t *testing.T) {
	alchemy := jsonHandler(`{"ownedNfts":[{
		"contract":{"address":"0xcontract"},
		"id":{"tokenId":"0x1","tokenMetadata":{"tokenType":"ERC721"}},
		"title":"Ape #1",
		"media":[{"gateway":"https://img.example/1.png"}]
	}],"totalCount":5}`)
	svc := newTestService(t, alchemy, nil)

	out, err := svc.GetWalletNFTs(context.Background(), WalletNFTsArgs{WalletAddress: "0xwallet"})
	require.NoError(t, err)
	require.Len(t, out.NFTs, 1)
	assert.Equal(t, "0xcontract", out.NFTs[0].ContractAddress)
	assert.Equal(t, "Ape #1", out.NFTs[0].Name)
	assert.Equal(t, int64(5), out.TotalCount)

	_, err = svc.GetWalletNFTs(context.Background(), WalletNFTsArgs{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "walletAddress")
}

func TestGetNFTFloorPriceRemap(t *testing.T) {
	alchemy := jsonHandler(`{
		"openSea":{"floorPrice":15.75,"priceCurrency":"ETH","collectionUrl":"https://opensea.io/collection/bayc","retrievedAt":"2024-06-01T00:00:00Z"},
		"looksRare":{"error":"collection not tracked"}
	}`)
	svc := newTestService(t, alchemy, nil)

	out, err := svc.GetNFTFloorPrice(context.Background(), FloorPriceArgs{ContractAddress: "0xabc"})
	require.NoError(t, err)

	os := out.Marketplaces["openSea"]
	require.NotNil(t, os.FloorPrice)
	assert.Equal(t, 15.75, *os.FloorPrice)
	assert.Equal(t, "ETH", os.PriceCurrency)

	lr := out.Marketplaces["looksRare"]
	assert.Nil(t, lr.FloorPrice)
	assert.Equal(t, "collection not tracked", lr.Error)
}

func TestSearchNFTCollectionsRemap(t *testing.T) {
	opensea := jsonHandler(`{"collections":[{
		"name":"Bored Ape Yacht Club",
		"slug":"boredapeyachtclub",
		"description":"The BAYC collection",
		"image_url":"https://img.example/bayc.png",
		"stats":{"floor_price":15.75},
		"safelist_request_status":"verified"
	}]}`)
	svc := newTestService(t, nil, opensea)

	out, err := svc.SearchNFTCollections(context.Background(), SearchCollectionsArgs{Query: "bored ape"})
	require.NoError(t, err)
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "boredapeyachtclub", out.Results[0].Slug)
	assert.True(t, out.Results[0].Verified)
	require.NotNil(t, out.Results[0].FloorPrice)
	assert.Equal(t, 15.75, *out.Results[0].FloorPrice)

	_, err = svc.SearchNFTCollections(context.Background(), SearchCollectionsArgs{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query")
}
