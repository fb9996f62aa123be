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

	"ton-wallet-mcp/config"
)

var jettonsWallet string

var jettonsCmd = &cobra.Command{
	Use:   "jettons",
	Short: "List jetton balances of a wallet",
	Long: `List all jetton (token) balances of a configured wallet.

Examples:
  ton-wallet-mcp jettons
  ton-wallet-mcp jettons --wallet main --json`,
	Run: runJettons,
}

func init() {
	rootCmd.AddCommand(jettonsCmd)

	jettonsCmd.Flags().StringVar(&jettonsWallet, "wallet", "", "Wallet name (defaults to the default wallet)")
}

func runJettons(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg := config.Get()

	svc := newService(cfg)

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Fetching jettons..."
		s.Start()
	}

	result := svc.GetJettons(context.Background(), jettonsWallet)

	if !jsonOutput {
		s.Stop()
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	if !result.Success {
		printError(fmt.Errorf("%s", result.Error))
		os.Exit(1)
	}

	if result.Count == 0 {
		fmt.Printf("\nWallet '%s' holds no jettons\n\n", result.Wallet)
		return
	}

	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)

	fmt.Println()
	bold.Printf("Jettons of wallet '%s':\n\n", result.Wallet)
	for _, j := range result.Jettons {
		cyan.Printf("  %s", j.Symbol)
		if j.Name != "" {
			fmt.Printf(" (%s)", j.Name)
		}
		fmt.Printf("\n    Address:  %s\n", j.Address)
		fmt.Printf("    Balance:  %s (raw, %d decimals)\n", j.Balance, j.Decimals)
	}
	fmt.Println()
}
