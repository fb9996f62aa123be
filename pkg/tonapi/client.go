package tonapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

// Client is a thin client for the tonapi.io v2 REST API. All methods are
// read-only account queries, so transient failures are retried.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a tonapi client. baseURL is e.g. "https://tonapi.io";
// apiKey may be empty for anonymous rate limits.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Account fetches the account state, including the TON balance in nanotons.
func (c *Client) Account(ctx context.Context, addr string) (*Account, error) {
	var account Account
	path := fmt.Sprintf("/v2/accounts/%s", url.PathEscape(addr))
	if err := c.get(ctx, path, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// JettonBalances fetches all jetton holdings of an account.
func (c *Client) JettonBalances(ctx context.Context, addr string) ([]JettonBalance, error) {
	var payload jettonBalancesResponse
	path := fmt.Sprintf("/v2/accounts/%s/jettons", url.PathEscape(addr))
	if err := c.get(ctx, path, &payload); err != nil {
		return nil, err
	}
	return payload.Balances, nil
}

// NFTItems fetches NFTs owned by an account.
func (c *Client) NFTItems(ctx context.Context, addr string, limit int) ([]NFTItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var payload nftItemsResponse
	path := fmt.Sprintf("/v2/accounts/%s/nfts?limit=%d", url.PathEscape(addr), limit)
	if err := c.get(ctx, path, &payload); err != nil {
		return nil, err
	}
	return payload.NFTItems, nil
}

// Events fetches recent account events with their parsed actions.
func (c *Client) Events(ctx context.Context, addr string, limit int) ([]Event, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var payload eventsResponse
	path := fmt.Sprintf("/v2/accounts/%s/events?limit=%d", url.PathEscape(addr), limit)
	if err := c.get(ctx, path, &payload); err != nil {
		return nil, err
	}
	return payload.Events, nil
}

// get performs a GET with retries on transient failures and decodes the JSON
// response into out.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			if c.apiKey != "" {
				req.Header.Set("Authorization", "Bearer "+c.apiKey)
			}

			resp, err := c.http.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode >= 500 {
				return fmt.Errorf("tonapi status %d", resp.StatusCode)
			}
			if resp.StatusCode >= 300 {
				// Client errors will not improve on retry.
				return retry.Unrecoverable(fmt.Errorf("tonapi status %d", resp.StatusCode))
			}

			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return retry.Unrecoverable(fmt.Errorf("failed to decode tonapi response: %w", err))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(300*time.Millisecond),
		retry.LastErrorOnly(true),
	)
}
