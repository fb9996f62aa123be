package swap

import (
	"fmt"
	"math/big"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

// routerSwapBody is the forward payload the router expects inside the offer
// jetton transfer notification.
//
// swap#25938561 ask_wallet:MsgAddress min_out:Coins recipient:MsgAddress
// has_ref:Bool = ForwardPayload;
type routerSwapBody struct {
	_         tlb.Magic        `tlb:"#25938561"`
	AskWallet *address.Address `tlb:"addr"`
	MinOut    tlb.Coins        `tlb:"."`
	Recipient *address.Address `tlb:"addr"`
	HasRef    bool             `tlb:"bool"`
}

// BuildRouterPayload encodes the swap instruction carried to the router.
// askWallet is the router's jetton wallet for the asked token; recipient
// receives the swap output (and any refund on a failed swap).
func BuildRouterPayload(q *Quote, askWallet, recipient *address.Address) (*cell.Cell, error) {
	minOut, ok := new(big.Int).SetString(q.MinReceived, 10)
	if !ok || minOut.Sign() <= 0 {
		return nil, fmt.Errorf("invalid min received amount '%s'", q.MinReceived)
	}

	body, err := tlb.ToCell(routerSwapBody{
		AskWallet: askWallet,
		MinOut:    tlb.FromNanoTON(minOut),
		Recipient: recipient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build swap payload: %w", err)
	}
	return body, nil
}
