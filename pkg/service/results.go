package service

// Result types returned by the facade. Every tool response is one of these,
// serialized as JSON: Success is always present, Error is set only on
// failure. Domain failures are values, never Go errors, so nothing below the
// facade can leak an unhandled error to the agent runtime.

// TransferDetails describes a transfer, submitted or pending.
type TransferDetails struct {
	From          string `json:"from,omitempty"`
	To            string `json:"to"`
	Amount        string `json:"amount"`
	Comment       string `json:"comment,omitempty"`
	JettonAddress string `json:"jettonAddress,omitempty"`
	JettonSymbol  string `json:"jettonSymbol,omitempty"`

	// TxHash is set when the transfer was submitted immediately.
	TxHash string `json:"txHash,omitempty"`
	// PendingTransactionID is set when the transfer awaits confirmation.
	PendingTransactionID string `json:"pendingTransactionId,omitempty"`
}

// TransferResult is the outcome of send_ton / send_jetton.
type TransferResult struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	Error   string           `json:"error,omitempty"`
	Details *TransferDetails `json:"details,omitempty"`
}

// QuoteResult is the outcome of get_swap_quote.
type QuoteResult struct {
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
	QuoteID     string `json:"quoteId,omitempty"`
	FromToken   string `json:"fromToken,omitempty"`
	ToToken     string `json:"toToken,omitempty"`
	FromAmount  string `json:"fromAmount,omitempty"`
	ToAmount    string `json:"toAmount,omitempty"`
	MinReceived string `json:"minReceived,omitempty"`
	Provider    string `json:"provider,omitempty"`
	ExpiresAt   string `json:"expiresAt,omitempty"` // RFC 3339
}

// SwapDetails describes an executed swap.
type SwapDetails struct {
	FromToken  string `json:"fromToken"`
	ToToken    string `json:"toToken"`
	FromAmount string `json:"fromAmount"`
	ToAmount   string `json:"toAmount"`
	Provider   string `json:"provider"`
	TxHash     string `json:"txHash,omitempty"`
}

// SwapResult is the outcome of execute_swap.
type SwapResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Error   string       `json:"error,omitempty"`
	Details *SwapDetails `json:"details,omitempty"`
}

// ConfirmResult is the outcome of confirm_transaction.
type ConfirmResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	TxHash  string `json:"txHash,omitempty"`
}

// CancelResult is the outcome of cancel_transaction.
type CancelResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// PendingSummary is one entry of list_pending_transactions.
type PendingSummary struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Wallet      string `json:"wallet"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"` // RFC 3339
	ExpiresAt   string `json:"expiresAt"` // RFC 3339
}

// PendingListResult is the outcome of list_pending_transactions.
type PendingListResult struct {
	Success      bool             `json:"success"`
	Transactions []PendingSummary `json:"transactions"`
	Count        int              `json:"count"`
}

// BalanceResult is the outcome of get_balance.
type BalanceResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Wallet  string `json:"wallet,omitempty"`
	Address string `json:"address,omitempty"`
	Balance string `json:"balance,omitempty"` // TON
	Status  string `json:"status,omitempty"`
}

// JettonHolding is one entry of get_jettons.
type JettonHolding struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int    `json:"decimals"`
	Balance  string `json:"balance"` // base units
}

// JettonsResult is the outcome of get_jettons.
type JettonsResult struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Wallet  string          `json:"wallet,omitempty"`
	Jettons []JettonHolding `json:"jettons,omitempty"`
	Count   int             `json:"count"`
}

// NFTSummary is one entry of get_nfts.
type NFTSummary struct {
	Address    string `json:"address"`
	Name       string `json:"name,omitempty"`
	Collection string `json:"collection,omitempty"`
	Image      string `json:"image,omitempty"`
}

// NFTsResult is the outcome of get_nfts.
type NFTsResult struct {
	Success bool         `json:"success"`
	Error   string       `json:"error,omitempty"`
	Wallet  string       `json:"wallet,omitempty"`
	NFTs    []NFTSummary `json:"nfts,omitempty"`
	Count   int          `json:"count"`
}

// TransferEvent is one parsed transfer action of get_events.
type TransferEvent struct {
	EventID   string `json:"eventId"`
	Timestamp string `json:"timestamp"` // RFC 3339
	Kind      string `json:"kind"`      // "ton" or "jetton"
	From      string `json:"from"`
	To        string `json:"to"`
	Amount    string `json:"amount"`
	Symbol    string `json:"symbol,omitempty"`
	Comment   string `json:"comment,omitempty"`
}

// EventsResult is the outcome of get_events.
type EventsResult struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Wallet  string          `json:"wallet,omitempty"`
	Events  []TransferEvent `json:"events,omitempty"`
	Count   int             `json:"count"`
}

// WalletsResult is the outcome of list_wallets.
type WalletsResult struct {
	Success bool     `json:"success"`
	Wallets []string `json:"wallets"`
	Default string   `json:"default,omitempty"`
}
