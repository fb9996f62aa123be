package swap

// TonSymbol is the pseudo-token symbol accepted for the native coin side of a
// swap. It is resolved to the proxy-TON jetton master before quoting.
const TonSymbol = "TON"

// Quote is a time-bounded price commitment from the swap provider. Amounts
// are base-unit decimal strings.
type Quote struct {
	Provider    string `json:"provider"`
	FromToken   string `json:"fromToken"`
	ToToken     string `json:"toToken"`
	FromAmount  string `json:"fromAmount"`
	ToAmount    string `json:"toAmount"`
	MinReceived string `json:"minReceived"`
	SlippageBps int    `json:"slippageBps"`

	// RouterAddress is the provider contract the offer jetton is sent to.
	RouterAddress string `json:"routerAddress"`
	// OfferJettonMaster is the resolved jetton master of the offered token
	// (the proxy-TON master for native TON legs).
	OfferJettonMaster string `json:"offerJettonMaster"`
	// AskJettonMaster is the resolved jetton master of the asked token.
	AskJettonMaster string `json:"askJettonMaster"`

	// ValidUntil is the provider expiry in epoch seconds, 0 when the
	// provider did not bound the quote.
	ValidUntil int64 `json:"validUntil,omitempty"`
}
