package pending

import (
	"time"

	"github.com/xssnick/tonutils-go/ton/wallet"
)

// Type discriminates the kind of transfer a pending transaction carries.
type Type string

const (
	TypeSendTon    Type = "send-ton"    // plain TON transfer
	TypeSendJetton Type = "send-jetton" // jetton (token) transfer
)

// Payload is the fully-built, not-yet-submitted transfer. Message is the
// exact message signed-and-sent at confirm time; the remaining fields are the
// display parameters it was built from. Nothing is recomputed at confirm
// time, so what was shown to the caller is what goes on chain.
type Payload struct {
	To        string `json:"to"`
	Amount    string `json:"amount"`    // human units, as supplied by the caller
	RawAmount string `json:"rawAmount"` // base units
	Comment   string `json:"comment,omitempty"`

	// Jetton transfers only.
	JettonAddress  string `json:"jettonAddress,omitempty"`
	JettonSymbol   string `json:"jettonSymbol,omitempty"`
	JettonDecimals int    `json:"jettonDecimals,omitempty"`

	Message *wallet.Message `json:"-"`
}

// Transaction is a transfer intent parked until confirmed, cancelled or
// expired. Timestamps are epoch milliseconds.
type Transaction struct {
	ID          string  `json:"id"`
	Type        Type    `json:"type"`
	WalletName  string  `json:"wallet"`
	Description string  `json:"description"`
	Payload     Payload `json:"payload"`
	CreatedAt   int64   `json:"createdAt"`
	ExpiresAt   int64   `json:"expiresAt"`
}

// Expired reports whether the transaction is past its deadline.
func (t *Transaction) Expired(now time.Time) bool {
	return now.UnixMilli() >= t.ExpiresAt
}
