package swap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// STON.fi v1 contracts on mainnet. ProxyTonMaster is the jetton master
// wrapping native TON; an offer leg on it has no jetton balance behind it and
// must be funded by the message value instead.
const (
	ProxyTonMaster = "EQCM3B12QK1e4yZSf8GtBRT0aLMNyEsBc_DhVfRRtOEffLez"

	routerAddress     = "EQB3ncyBUTjZUA5EnFKR5_EnOMI9V1tTEAAPaiU71gc4TiUt"
	providerName      = "ston.fi"
	defaultSlippageBp = 100
)

// Client talks to a STON.fi style swap REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a swap API client. baseURL is e.g. "https://api.ston.fi".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// simulateResponse mirrors the provider's swap simulation payload.
type simulateResponse struct {
	OfferAddress string `json:"offer_address"`
	AskAddress   string `json:"ask_address"`
	RouterAddr   string `json:"router_address"`
	OfferUnits   string `json:"offer_units"`
	AskUnits     string `json:"ask_units"`
	MinAskUnits  string `json:"min_ask_units"`
	SwapRate     string `json:"swap_rate"`
	PriceImpact  string `json:"price_impact"`
	ValidUntil   int64  `json:"valid_until,omitempty"`
}

// GetQuote asks the provider to price a swap. fromToken and toToken are
// jetton master addresses, or "TON" for the native coin. amount is in base
// units of the offered token. slippageBps caps how much worse than the quoted
// rate the execution may be (100 = 1%).
func (c *Client) GetQuote(ctx context.Context, fromToken, toToken, amount string, slippageBps int) (*Quote, error) {
	if slippageBps <= 0 {
		slippageBps = defaultSlippageBp
	}

	offer := resolveToken(fromToken)
	ask := resolveToken(toToken)
	if offer == ask {
		return nil, fmt.Errorf("cannot swap a token for itself")
	}

	slippage := new(big.Rat).SetFrac64(int64(slippageBps), 10_000)

	params := url.Values{}
	params.Set("offer_address", offer)
	params.Set("ask_address", ask)
	params.Set("units", amount)
	params.Set("slippage_tolerance", slippage.FloatString(4))

	endpoint := fmt.Sprintf("%s/v1/swap/simulate?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError(resp)
	}

	var sim simulateResponse
	if err := json.NewDecoder(resp.Body).Decode(&sim); err != nil {
		return nil, fmt.Errorf("failed to decode quote response: %w", err)
	}
	if sim.AskUnits == "" || sim.MinAskUnits == "" {
		return nil, fmt.Errorf("empty quote response")
	}

	router := sim.RouterAddr
	if router == "" {
		router = routerAddress
	}

	return &Quote{
		Provider:          providerName,
		FromToken:         fromToken,
		ToToken:           toToken,
		FromAmount:        amount,
		ToAmount:          sim.AskUnits,
		MinReceived:       sim.MinAskUnits,
		SlippageBps:       slippageBps,
		RouterAddress:     router,
		OfferJettonMaster: offer,
		AskJettonMaster:   ask,
		ValidUntil:        sim.ValidUntil,
	}, nil
}

// resolveToken maps the native coin symbol to the proxy-TON jetton master;
// anything else is already a jetton master address.
func resolveToken(token string) string {
	if strings.EqualFold(token, TonSymbol) {
		return ProxyTonMaster
	}
	return token
}

// apiError extracts the provider error message from a non-2xx response.
func apiError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil || len(body) == 0 {
		return fmt.Errorf("API returned status code %d", resp.StatusCode)
	}

	var payload map[string]interface{}
	if json.Unmarshal(body, &payload) == nil {
		if message, ok := payload["message"].(string); ok {
			return fmt.Errorf("API error (status %d): %s", resp.StatusCode, message)
		}
	}
	return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
}
