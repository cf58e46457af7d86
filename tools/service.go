// service.go
// ----------
// Service is the tool dispatcher: it owns the bridge and the two provider
// adapters, and offers the fetch helpers every tool routine composes. Each
// tool invocation is a stateless pipeline: validate, fetch sequentially
// through the executor, remap, return. No state survives an invocation.
package tools

import (
	"context"

	"github.com/effective-security/xlog"
	"github.com/tidwall/gjson"

	nftbridge "github.com/opennft/nft-bridge"
	"github.com/opennft/nft-bridge/adapters"
)

var logger = xlog.NewPackageLogger("github.com/opennft/nft-bridge", "tools")

const (
	providerAlchemy = "alchemy"
	providerOpenSea = "opensea"

	// unknownCollection is the placeholder name when no provider could
	// resolve a collection.
	unknownCollection = "Unknown Collection"
)

type Service struct {
	// Alchemy and OpenSea are exported so tests can point BaseURL at local
	// servers before issuing calls.
	Alchemy *adapters.AlchemyAdapter
	OpenSea *adapters.OpenSeaAdapter

	bridge *nftbridge.NFTBridge
}

// NewService validates the configuration, builds the bridge, and registers
// both provider adapters.
func NewService(cfg nftbridge.Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bridge := nftbridge.New(cfg)
	eff := bridge.Config()

	s := &Service{
		Alchemy: adapters.NewAlchemyAdapter(eff.AlchemyAPIKey, eff.HTTPTimeout),
		OpenSea: adapters.NewOpenSeaAdapter(eff.OpenSeaAPIKey, eff.HTTPTimeout),
		bridge:  bridge,
	}
	bridge.RegisterProvider(providerAlchemy, s.Alchemy)
	bridge.RegisterProvider(providerOpenSea, s.OpenSea)
	return s, nil
}

// getJSON issues a GET through the executor and parses the payload.
func (s *Service) getJSON(ctx context.Context, provider, endpoint string) (gjson.Result, error) {
	resp, err := s.bridge.Request(ctx, provider, &nftbridge.NormalizedRequest{
		Method:   "GET",
		Endpoint: endpoint,
	})
	if err != nil {
		return gjson.Result{}, err
	}
	return gjson.ParseBytes(resp.Data), nil
}

// postJSON issues a POST with a JSON body through the executor.
func (s *Service) postJSON(ctx context.Context, provider, endpoint string, body []byte) (gjson.Result, error) {
	resp, err := s.bridge.Request(ctx, provider, &nftbridge.NormalizedRequest{
		Method:   "POST",
		Endpoint: endpoint,
		Headers:  map[string]string{"Content-Type": "application/json"},
		Body:     body,
	})
	if err != nil {
		return gjson.Result{}, err
	}
	return gjson.ParseBytes(resp.Data), nil
}

// firstString returns the first non-empty string among the given paths.
// Provider payloads differ in nesting, so remapping probes alternatives in
// preference order.
func firstString(g gjson.Result, paths ...string) string {
	for _, p := range paths {
		if v := g.Get(p); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

func floatPtr(g gjson.Result, path string) *float64 {
	if v := g.Get(path); v.Exists() {
		f := v.Float()
		return &f
	}
	return nil
}

func intPtr(g gjson.Result, path string) *int64 {
	if v := g.Get(path); v.Exists() {
		n := v.Int()
		return &n
	}
	return nil
}
