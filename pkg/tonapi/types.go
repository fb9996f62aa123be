package tonapi

// Account is the indexer's view of an account.
type Account struct {
	Address string `json:"address"`
	Balance int64  `json:"balance"` // nanotons
	Status  string `json:"status"`
	Name    string `json:"name,omitempty"`
}

// JettonInfo describes a jetton master.
type JettonInfo struct {
	Address  string `json:"address"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
	Image    string `json:"image,omitempty"`
}

// JettonBalance is one entry of an account's jetton holdings.
type JettonBalance struct {
	Balance       string     `json:"balance"` // base units
	WalletAddress AccountRef `json:"wallet_address"`
	Jetton        JettonInfo `json:"jetton"`
}

type jettonBalancesResponse struct {
	Balances []JettonBalance `json:"balances"`
}

// NFTCollection identifies the collection an item belongs to.
type NFTCollection struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

// NFTMetadata is the displayable part of an item's metadata.
type NFTMetadata struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// NFTItem is one NFT owned by an account.
type NFTItem struct {
	Address    string         `json:"address"`
	Index      int64          `json:"index"`
	Collection *NFTCollection `json:"collection,omitempty"`
	Metadata   NFTMetadata    `json:"metadata"`
	Verified   bool           `json:"verified"`
}

type nftItemsResponse struct {
	NFTItems []NFTItem `json:"nft_items"`
}

// AccountRef is a minimal account reference inside actions.
type AccountRef struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
}

// TonTransferAction is a plain TON transfer inside an event.
type TonTransferAction struct {
	Sender    AccountRef `json:"sender"`
	Recipient AccountRef `json:"recipient"`
	Amount    int64      `json:"amount"` // nanotons
	Comment   string     `json:"comment,omitempty"`
}

// JettonTransferAction is a jetton transfer inside an event.
type JettonTransferAction struct {
	Sender    AccountRef `json:"sender"`
	Recipient AccountRef `json:"recipient"`
	Amount    string     `json:"amount"` // base units
	Comment   string     `json:"comment,omitempty"`
	Jetton    JettonInfo `json:"jetton"`
}

// Action is a tagged union: Type selects which pointer is set. Unknown action
// types keep both pointers nil and are skipped by callers.
type Action struct {
	Type           string                `json:"type"`
	Status         string                `json:"status"`
	TonTransfer    *TonTransferAction    `json:"TonTransfer,omitempty"`
	JettonTransfer *JettonTransferAction `json:"JettonTransfer,omitempty"`
}

// Event is one account event with its parsed actions.
type Event struct {
	EventID    string   `json:"event_id"`
	Timestamp  int64    `json:"timestamp"`
	Lt         int64    `json:"lt"`
	InProgress bool     `json:"in_progress"`
	Actions    []Action `json:"actions"`
}

type eventsResponse struct {
	Events []Event `json:"events"`
}
