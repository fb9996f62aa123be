package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ton-wallet-mcp/config"
	"ton-wallet-mcp/pkg/service"
	"ton-wallet-mcp/pkg/swap"
	"ton-wallet-mcp/pkg/tonapi"
	"ton-wallet-mcp/pkg/tonclient"
	"ton-wallet-mcp/pkg/tools"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Run the wallet tool server over stdio, the standard transport for MCP
clients that spawn the server as a subprocess.

At least one wallet must be configured, either in .ton-wallet-mcp.yaml or
through TON_MCP_WALLET_MNEMONIC. With require_confirmation enabled (the
default), send_ton and send_jetton park the transfer and return a pending
transaction id instead of executing; the agent must call
confirm_transaction to submit it.`,
	Run: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg := config.Get()

	if len(cfg.Wallets) == 0 {
		printError(fmt.Errorf("no wallets configured; set TON_MCP_WALLET_MNEMONIC or add wallets to .ton-wallet-mcp.yaml"))
		os.Exit(1)
	}

	// Logs go to stderr; stdout belongs to the MCP transport.
	logger, err := zap.NewProduction()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer logger.Sync()

	chain := tonclient.New(cfg, logger)
	indexer := tonapi.NewClient(cfg.TonAPIURL, cfg.TonAPIKey)
	swaps := swap.NewClient(cfg.SwapAPIURL)

	svc := service.New(cfg, chain, indexer, swaps, logger)

	logger.Info("starting MCP server",
		zap.String("network", cfg.Network),
		zap.Int("wallets", len(cfg.Wallets)),
		zap.Bool("requireConfirmation", cfg.RequireConfirmation),
	)

	server := tools.NewServer(svc, rootCmd.Version, logger)
	if err := server.ServeStdio(); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
