package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadClean(t *testing.T) (*Config, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	return Load()
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadClean(t)
	require.NoError(t, err)

	assert.Equal(t, "mainnet", cfg.Network)
	assert.Equal(t, MainnetConfigURL, cfg.GlobalConfigURL)
	assert.Equal(t, "https://tonapi.io", cfg.TonAPIURL)
	assert.Equal(t, "https://api.ston.fi", cfg.SwapAPIURL)
	assert.True(t, cfg.RequireConfirmation)
}

func TestLoadSingleWalletFromEnv(t *testing.T) {
	t.Setenv("TON_MCP_WALLET_MNEMONIC", "abandon abandon abandon")
	t.Setenv("TON_MCP_WALLET_VERSION", "V5R1")

	cfg, err := loadClean(t)
	require.NoError(t, err)

	require.Len(t, cfg.Wallets, 1)
	assert.Equal(t, "default", cfg.Wallets[0].Name)
	assert.Equal(t, "abandon abandon abandon", cfg.Wallets[0].Mnemonic)
	assert.Equal(t, "V5R1", cfg.Wallets[0].Version)
	assert.Equal(t, "default", cfg.DefaultWallet)
}

func TestLoadTestnet(t *testing.T) {
	t.Setenv("TON_MCP_NETWORK", "Testnet")

	cfg, err := loadClean(t)
	require.NoError(t, err)

	assert.Equal(t, "testnet", cfg.Network)
	assert.Equal(t, TestnetConfigURL, cfg.GlobalConfigURL)
}

func TestLoadUnknownNetwork(t *testing.T) {
	t.Setenv("TON_MCP_NETWORK", "devnet")

	_, err := loadClean(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown network")
}

func TestLoadExplicitConfigURLWins(t *testing.T) {
	t.Setenv("TON_MCP_GLOBAL_CONFIG_URL", "https://example.com/custom.json")

	cfg, err := loadClean(t)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/custom.json", cfg.GlobalConfigURL)
}

func TestGetMemoizesLoad(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	globalConfig = nil

	first := Get()
	require.NotNil(t, first)
	assert.Same(t, first, Get(), "repeat calls return the loaded config")

	reloaded, err := Load()
	require.NoError(t, err)
	assert.Same(t, reloaded, Get(), "a fresh Load replaces the global config")
}

func TestWalletLookup(t *testing.T) {
	cfg := &Config{
		DefaultWallet: "first",
		Wallets: []WalletConfig{
			{Name: "first", Mnemonic: "a"},
			{Name: "second", Mnemonic: "b"},
		},
	}

	require.NotNil(t, cfg.Wallet(""))
	assert.Equal(t, "first", cfg.Wallet("").Name)
	assert.Equal(t, "second", cfg.Wallet("second").Name)
	assert.Nil(t, cfg.Wallet("third"))
}
