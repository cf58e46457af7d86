// alchemy_throttle.go
//
// Manual harness: hammers the floor-price endpoint in a loop to observe the
// blanket throttle and backoff against the live Alchemy API. Not part of the
// automated test suite; run it directly with an ALCHEMY_API_KEY set.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	nftbridge "github.com/opennft/nft-bridge"
	"github.com/opennft/nft-bridge/tools"
)

func main() {
	if os.Getenv("ALCHEMY_API_KEY") == "" {
		log.Fatal("ALCHEMY_API_KEY environment variable not set")
	}

	svc, err := tools.NewService(nftbridge.LoadConfig())
	if err != nil {
		log.Fatalf("Error initializing service: %v", err)
	}

	const rounds = 20
	contract := "0xBC4CA0EdA7647A8aB7C2061c2E118A18a936f13D"

	for i := 1; i <= rounds; i++ {
		start := time.Now()
		out, err := svc.GetNFTFloorPrice(context.Background(), tools.FloorPriceArgs{ContractAddress: contract})
		elapsed := time.Since(start)
		if err != nil {
			fmt.Printf("round %2d: error after %v: %v\n", i, elapsed, err)
			continue
		}
		entry := out.Marketplaces["openSea"]
		if entry.FloorPrice != nil {
			fmt.Printf("round %2d: floor=%.4f %s in %v\n", i, *entry.FloorPrice, entry.PriceCurrency, elapsed)
		} else {
			fmt.Printf("round %2d: no openSea floor in %v\n", i, elapsed)
		}
	}
}
