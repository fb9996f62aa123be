package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ton-wallet-mcp/config"
	"ton-wallet-mcp/pkg/service"
	"ton-wallet-mcp/pkg/swap"
	"ton-wallet-mcp/pkg/tonapi"
	"ton-wallet-mcp/pkg/tonclient"
)

var walletsCmd = &cobra.Command{
	Use:   "wallets",
	Short: "List configured wallets and their TON balances",
	Long: `List all configured wallets with their on-chain addresses and TON
balances.

Examples:
  ton-wallet-mcp wallets
  ton-wallet-mcp wallets --json`,
	Run: runWallets,
}

func init() {
	rootCmd.AddCommand(walletsCmd)
}

// newService builds the facade the same way serve does, with logging
// silenced for interactive use.
func newService(cfg *config.Config) *service.Service {
	logger := zap.NewNop()
	chain := tonclient.New(cfg, logger)
	indexer := tonapi.NewClient(cfg.TonAPIURL, cfg.TonAPIKey)
	swaps := swap.NewClient(cfg.SwapAPIURL)
	return service.New(cfg, chain, indexer, swaps, logger)
}

func runWallets(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg := config.Get()

	if len(cfg.Wallets) == 0 {
		printError(fmt.Errorf("no wallets configured"))
		os.Exit(1)
	}

	svc := newService(cfg)

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Fetching balances..."
		s.Start()
	}

	results := make([]*service.BalanceResult, 0, len(cfg.Wallets))
	for _, w := range cfg.Wallets {
		results = append(results, svc.GetBalance(context.Background(), w.Name))
	}

	if !jsonOutput {
		s.Stop()
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(data))
		return
	}

	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	fmt.Println()
	for _, r := range results {
		if !r.Success {
			red.Printf("  %s: %s\n", r.Wallet, r.Error)
			continue
		}
		marker := " "
		if r.Wallet == cfg.DefaultWallet {
			marker = "*"
		}
		bold.Printf("%s %s\n", marker, r.Wallet)
		fmt.Printf("    Address: %s\n", r.Address)
		green.Printf("    Balance: %s TON\n", r.Balance)
	}
	fmt.Println()
}
