// nft-bridge serves the NFT data tool catalog over MCP on stdio.
//
// Stdout carries the protocol stream, so all logging goes to stderr. The
// process reads its provider API keys from the environment once at startup;
// everything below this entry point receives configuration by injection.
package main

import (
	"context"
	"os"

	"github.com/effective-security/xlog"
	"github.com/jessevdk/go-flags"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	nftbridge "github.com/opennft/nft-bridge"
	"github.com/opennft/nft-bridge/tools"
)

const version = "1.0.0"

var logger = xlog.NewPackageLogger("github.com/opennft/nft-bridge", "cmd")

type options struct {
	Debug bool `long:"debug" short:"D" description:"Enable debug logging"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(2)
	}

	xlog.SetFormatter(xlog.NewStringFormatter(os.Stderr))
	if opts.Debug {
		xlog.SetGlobalLogLevel(xlog.DEBUG)
	} else {
		xlog.SetGlobalLogLevel(xlog.INFO)
	}

	cfg := nftbridge.LoadConfig()
	svc, err := tools.NewService(cfg)
	if err != nil {
		logger.KV(xlog.ERROR, "reason", "service init failed", "err", err)
		os.Exit(1)
	}

	server := mcp.NewServer(&mcp.Implementation{Name: "nft-bridge", Version: version}, nil)
	tools.Register(server, svc)

	logger.KV(xlog.INFO, "status", "serving", "transport", "stdio", "version", version)
	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		logger.KV(xlog.ERROR, "reason", "server stopped", "err", err)
		os.Exit(1)
	}
}
