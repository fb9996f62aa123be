package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Network config URLs published by the TON Foundation.
const (
	MainnetConfigURL = "https://ton-blockchain.github.io/global.config.json"
	TestnetConfigURL = "https://ton-blockchain.github.io/testnet-global.config.json"
)

// WalletConfig describes one named wallet the server can operate.
type WalletConfig struct {
	Name     string `mapstructure:"name"`
	Mnemonic string `mapstructure:"mnemonic"`
	// Version is the wallet contract version: V3R2, V4R2 or V5R1.
	// Defaults to V4R2 when empty.
	Version string `mapstructure:"version"`
}

// Config holds the application configuration
type Config struct {
	Network             string
	GlobalConfigURL     string
	TonAPIURL           string
	TonAPIKey           string
	SwapAPIURL          string
	DefaultWallet       string
	RequireConfirmation bool
	Wallets             []WalletConfig
}

var globalConfig *Config

// Load reads configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetConfigName(".ton-wallet-mcp")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")

	// Set default values
	viper.SetDefault("network", "mainnet")
	viper.SetDefault("tonapi_url", "https://tonapi.io")
	viper.SetDefault("swap_api_url", "https://api.ston.fi")
	viper.SetDefault("require_confirmation", true)

	// Read from environment variables
	viper.SetEnvPrefix("TON_MCP")
	viper.AutomaticEnv()

	// Read config file (optional)
	_ = viper.ReadInConfig()

	cfg := &Config{
		Network:             strings.ToLower(viper.GetString("network")),
		GlobalConfigURL:     viper.GetString("global_config_url"),
		TonAPIURL:           viper.GetString("tonapi_url"),
		TonAPIKey:           viper.GetString("tonapi_key"),
		SwapAPIURL:          viper.GetString("swap_api_url"),
		DefaultWallet:       viper.GetString("default_wallet"),
		RequireConfirmation: viper.GetBool("require_confirmation"),
	}

	if err := viper.UnmarshalKey("wallets", &cfg.Wallets); err != nil {
		return nil, fmt.Errorf("invalid wallets configuration: %w", err)
	}

	// A single wallet can be configured through the environment alone.
	if len(cfg.Wallets) == 0 {
		if mnemonic := viper.GetString("wallet_mnemonic"); mnemonic != "" {
			cfg.Wallets = append(cfg.Wallets, WalletConfig{
				Name:     "default",
				Mnemonic: mnemonic,
				Version:  viper.GetString("wallet_version"),
			})
		}
	}

	switch cfg.Network {
	case "mainnet", "testnet":
	default:
		return nil, fmt.Errorf("unknown network '%s' (expected mainnet or testnet)", cfg.Network)
	}

	if cfg.GlobalConfigURL == "" {
		if cfg.Network == "testnet" {
			cfg.GlobalConfigURL = TestnetConfigURL
		} else {
			cfg.GlobalConfigURL = MainnetConfigURL
		}
	}

	if cfg.DefaultWallet == "" && len(cfg.Wallets) > 0 {
		cfg.DefaultWallet = cfg.Wallets[0].Name
	}

	globalConfig = cfg
	return cfg, nil
}

// Wallet returns the named wallet, or the default wallet when name is empty.
func (c *Config) Wallet(name string) *WalletConfig {
	if name == "" {
		name = c.DefaultWallet
	}
	for i := range c.Wallets {
		if c.Wallets[i].Name == name {
			return &c.Wallets[i]
		}
	}
	return nil
}

// Get returns the global configuration, loading it on first use. A load
// failure is fatal: no command can run without configuration.
func Get() *Config {
	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		return cfg
	}
	return globalConfig
}
