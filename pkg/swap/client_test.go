package swap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const askJetton = "EQCxE6mUtQJKFnGfaROTKOtn4etqTFZBVToewmQhHSIuJwqY"

func TestGetQuoteSimulate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/swap/simulate", r.URL.Path)

		query := r.URL.Query()
		// The native coin side is resolved to the proxy-TON master.
		assert.Equal(t, ProxyTonMaster, query.Get("offer_address"))
		assert.Equal(t, askJetton, query.Get("ask_address"))
		assert.Equal(t, "1000000000", query.Get("units"))
		assert.Equal(t, "0.0100", query.Get("slippage_tolerance"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"offer_address": "` + ProxyTonMaster + `",
			"ask_address": "` + askJetton + `",
			"router_address": "` + routerAddress + `",
			"offer_units": "1000000000",
			"ask_units": "2000000",
			"min_ask_units": "1980000",
			"swap_rate": "0.002",
			"price_impact": "0.001"
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	q, err := c.GetQuote(context.Background(), TonSymbol, askJetton, "1000000000", 100)
	require.NoError(t, err)

	assert.Equal(t, providerName, q.Provider)
	assert.Equal(t, TonSymbol, q.FromToken)
	assert.Equal(t, askJetton, q.ToToken)
	assert.Equal(t, "2000000", q.ToAmount)
	assert.Equal(t, "1980000", q.MinReceived)
	assert.Equal(t, routerAddress, q.RouterAddress)
	assert.Equal(t, ProxyTonMaster, q.OfferJettonMaster)
	assert.Equal(t, askJetton, q.AskJettonMaster)
	assert.Zero(t, q.ValidUntil)
}

func TestGetQuoteDefaultSlippage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "0.0100", r.URL.Query().Get("slippage_tolerance"))
		w.Write([]byte(`{"ask_units": "1", "min_ask_units": "1"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetQuote(context.Background(), TonSymbol, askJetton, "1", 0)
	require.NoError(t, err)
}

func TestGetQuoteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "insufficient liquidity"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetQuote(context.Background(), TonSymbol, askJetton, "1", 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient liquidity")
	assert.Contains(t, err.Error(), "400")
}

func TestGetQuoteSameToken(t *testing.T) {
	_, err := NewClient("http://unused").GetQuote(context.Background(), TonSymbol, "ton", "1", 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "itself")
}

func TestGetQuoteEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetQuote(context.Background(), TonSymbol, askJetton, "1", 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty quote response")
}
