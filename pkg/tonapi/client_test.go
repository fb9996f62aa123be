package tonapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddr = "EQCD39VS5jcptHL8vMjEXrzGaRcCVYto7HUn4bpAOg8xqB2N"

func TestAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/accounts/"+testAddr, r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Write([]byte(`{"address": "0:83df", "balance": 1500000000, "status": "active"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")

	account, err := c.Account(context.Background(), testAddr)
	require.NoError(t, err)
	assert.Equal(t, int64(1500000000), account.Balance)
	assert.Equal(t, "active", account.Status)
}

func TestAccountNoAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"balance": 1}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").Account(context.Background(), testAddr)
	require.NoError(t, err)
}

func TestJettonBalances(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/accounts/"+testAddr+"/jettons", r.URL.Path)
		w.Write([]byte(`{"balances": [
			{"balance": "2500000", "wallet_address": {"address": "0:aa"}, "jetton": {"address": "0:bb", "name": "Tether USD", "symbol": "USDT", "decimals": 6}}
		]}`))
	}))
	defer srv.Close()

	balances, err := NewClient(srv.URL, "").JettonBalances(context.Background(), testAddr)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, "2500000", balances[0].Balance)
	assert.Equal(t, "USDT", balances[0].Jetton.Symbol)
	assert.Equal(t, 6, balances[0].Jetton.Decimals)
}

func TestEventsTaggedActions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/accounts/"+testAddr+"/events", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"events": [
			{"event_id": "ev1", "timestamp": 1700000000, "actions": [
				{"type": "TonTransfer", "status": "ok", "TonTransfer": {"sender": {"address": "0:aa"}, "recipient": {"address": "0:bb"}, "amount": 1000000000, "comment": "hi"}},
				{"type": "JettonSwap", "status": "ok"},
				{"type": "JettonTransfer", "status": "ok", "JettonTransfer": {"sender": {"address": "0:aa"}, "recipient": {"address": "0:cc"}, "amount": "42", "jetton": {"symbol": "USDT"}}}
			]}
		]}`))
	}))
	defer srv.Close()

	events, err := NewClient(srv.URL, "").Events(context.Background(), testAddr, 5)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Len(t, events[0].Actions, 3)

	assert.NotNil(t, events[0].Actions[0].TonTransfer)
	assert.Equal(t, "hi", events[0].Actions[0].TonTransfer.Comment)

	// Unknown action types keep both pointers nil.
	assert.Nil(t, events[0].Actions[1].TonTransfer)
	assert.Nil(t, events[0].Actions[1].JettonTransfer)

	assert.Equal(t, "USDT", events[0].Actions[2].JettonTransfer.Jetton.Symbol)
}

func TestNFTItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/accounts/"+testAddr+"/nfts", r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("limit"), "zero limit falls back to the default")
		w.Write([]byte(`{"nft_items": [
			{"address": "0:dd", "index": 7, "collection": {"address": "0:ee", "name": "TON Punks"}, "metadata": {"name": "Punk #7"}}
		]}`))
	}))
	defer srv.Close()

	items, err := NewClient(srv.URL, "").NFTItems(context.Background(), testAddr, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Punk #7", items[0].Metadata.Name)
	assert.Equal(t, "TON Punks", items[0].Collection.Name)
}

func TestRetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"balance": 7}`))
	}))
	defer srv.Close()

	account, err := NewClient(srv.URL, "").Account(context.Background(), testAddr)
	require.NoError(t, err)
	assert.Equal(t, int64(7), account.Balance)
	assert.Equal(t, int32(2), calls.Load())
}

func TestNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").Account(context.Background(), testAddr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Equal(t, int32(1), calls.Load(), "4xx responses must not be retried")
}
