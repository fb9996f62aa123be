package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ton-wallet-mcp",
	Short: "A TON wallet MCP tool server for LLM agents",
	Long: `ton-wallet-mcp exposes TON wallet operations (balances, jettons, NFTs,
transfers, swaps) as Model Context Protocol tools. Transfers can be gated
behind an explicit confirm/cancel protocol so an agent never moves funds
in a single step.

Examples:
  ton-wallet-mcp serve
  ton-wallet-mcp wallets
  ton-wallet-mcp jettons --wallet main`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}
