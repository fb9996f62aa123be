package tonclient

import (
	"context"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xssnick/tonutils-go/ton/wallet"
	"go.uber.org/zap"

	"ton-wallet-mcp/config"
	"ton-wallet-mcp/pkg/swap"
)

func TestNativeOfferLeg(t *testing.T) {
	q := &swap.Quote{OfferJettonMaster: swap.ProxyTonMaster}
	assert.True(t, nativeOfferLeg(q))

	q.OfferJettonMaster = "EQCxE6mUtQJKFnGfaROTKOtn4etqTFZBVToewmQhHSIuJwqY"
	assert.False(t, nativeOfferLeg(q))
}

func TestSwapMessageValue(t *testing.T) {
	offer := big.NewInt(1_000_000_000) // 1 TON

	// A jetton leg only carries the gas budget; the jetton wallet holds
	// the offered balance.
	jettonLeg := swapMessageValue(false, offer)
	assert.Equal(t, swapAttachedTon.Nano().String(), jettonLeg.Nano().String())

	// A native leg is funded by the message itself: the proxy-TON wallet
	// has no balance, so the offered TON rides on top of the gas budget.
	nativeLeg := swapMessageValue(true, offer)
	want := new(big.Int).Add(offer, swapAttachedTon.Nano())
	assert.Equal(t, want.String(), nativeLeg.Nano().String())
	assert.Equal(t, "1.3", nativeLeg.String())
}

func TestVersionConfig(t *testing.T) {
	c := New(&config.Config{Network: "mainnet"}, zap.NewNop())

	v, err := c.versionConfig("")
	require.NoError(t, err)
	assert.Equal(t, wallet.V4R2, v)

	v, err = c.versionConfig("v3r2")
	require.NoError(t, err)
	assert.Equal(t, wallet.V3R2, v)

	v, err = c.versionConfig("V5R1")
	require.NoError(t, err)
	cfg, ok := v.(wallet.ConfigV5R1Final)
	require.True(t, ok)
	assert.Equal(t, int32(wallet.MainnetGlobalID), cfg.NetworkGlobalID)

	_, err = c.versionConfig("V1R1")
	assert.Error(t, err)
}

func TestGetWalletUnknownName(t *testing.T) {
	c := New(&config.Config{Wallets: []config.WalletConfig{{Name: "main"}}}, zap.NewNop())

	_, err := c.getWallet(context.Background(), "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wallet 'ghost' not found")
}

func TestGetWalletConcurrentInit(t *testing.T) {
	// A config endpoint serving garbage makes the lazy liteclient init
	// fail deterministically without touching the network.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not a global config"))
	}))
	defer srv.Close()

	c := New(&config.Config{
		Network:         "mainnet",
		GlobalConfigURL: srv.URL,
		Wallets:         []config.WalletConfig{{Name: "main", Mnemonic: "word"}},
		DefaultWallet:   "main",
	}, zap.NewNop())

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.getWallet(context.Background(), "main")
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to connect to liteservers")
	}

	// Failures are not memoized: the wallet map stays empty and a later
	// call retries from scratch.
	assert.Empty(t, c.wallets)
	_, err := c.getWallet(context.Background(), "main")
	assert.Error(t, err)
}
