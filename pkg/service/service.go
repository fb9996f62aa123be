package service

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/ton/wallet"
	"go.uber.org/zap"

	"ton-wallet-mcp/config"
	"ton-wallet-mcp/pkg/pending"
	"ton-wallet-mcp/pkg/swap"
	"ton-wallet-mcp/pkg/tonapi"
	"ton-wallet-mcp/pkg/tonclient"
)

// User-facing failure messages. Not-found and expiry are deliberately
// distinct so a caller can tell "wrong id" from "too slow".
const (
	msgTxNotFound   = "Transaction not found or already processed"
	msgTxExpired    = "Transaction expired. Please create a new transfer request."
	msgTxCancelled  = "Transaction cancelled"
	msgQuoteExpired = "Quote not found or expired. Please request a new quote."
)

// Transferer builds and submits transfers through the chain client.
type Transferer interface {
	WalletAddress(ctx context.Context, name string) (*address.Address, error)
	BuildTonTransfer(ctx context.Context, name, to string, amount tlb.Coins, comment string) (*wallet.Message, error)
	BuildJettonTransfer(ctx context.Context, name, to, master string, amount tlb.Coins, comment string) (*wallet.Message, error)
	BuildSwapTransfer(ctx context.Context, name string, q *swap.Quote) (*wallet.Message, error)
	Submit(ctx context.Context, name string, msg *wallet.Message) (string, error)
}

// Indexer serves read-only account queries.
type Indexer interface {
	Account(ctx context.Context, addr string) (*tonapi.Account, error)
	JettonBalances(ctx context.Context, addr string) ([]tonapi.JettonBalance, error)
	NFTItems(ctx context.Context, addr string, limit int) ([]tonapi.NFTItem, error)
	Events(ctx context.Context, addr string, limit int) ([]tonapi.Event, error)
}

// SwapProvider prices swaps.
type SwapProvider interface {
	GetQuote(ctx context.Context, fromToken, toToken, amount string, slippageBps int) (*swap.Quote, error)
}

// Service is the single orchestration point between tool calls and the chain
// clients. It owns the pending-transaction store and the quote cache; the
// confirmation policy is fixed at construction and never hot-reloaded.
type Service struct {
	cfg        *config.Config
	transferer Transferer
	indexer    Indexer
	swaps      SwapProvider
	log        *zap.Logger

	pending *pending.Store
	quotes  *swap.QuoteCache
}

// New creates the facade with empty stores.
func New(cfg *config.Config, t Transferer, idx Indexer, sp SwapProvider, log *zap.Logger) *Service {
	return &Service{
		cfg:        cfg,
		transferer: t,
		indexer:    idx,
		swaps:      sp,
		log:        log,
		pending:    pending.NewStore(0),
		quotes:     swap.NewQuoteCache(),
	}
}

// resolveWallet maps an optional wallet name to its configuration.
func (s *Service) resolveWallet(name string) (*config.WalletConfig, string) {
	wc := s.cfg.Wallet(name)
	if wc == nil {
		if name == "" {
			return nil, "No wallet configured"
		}
		return nil, fmt.Sprintf("Wallet '%s' not found", name)
	}
	return wc, ""
}

// SendTon transfers TON, or parks the transfer pending confirmation when the
// service is configured to require it. amount is a decimal TON string.
func (s *Service) SendTon(ctx context.Context, walletName, to, amount, comment string) *TransferResult {
	wc, errMsg := s.resolveWallet(walletName)
	if errMsg != "" {
		return &TransferResult{Error: errMsg}
	}

	coins, err := tlb.FromTON(amount)
	if err != nil || coins.Nano().Sign() <= 0 {
		return &TransferResult{Error: fmt.Sprintf("Invalid amount '%s'", amount)}
	}

	msg, err := s.transferer.BuildTonTransfer(ctx, wc.Name, to, coins, comment)
	if err != nil {
		return &TransferResult{Error: err.Error()}
	}

	from := ""
	if addr, err := s.transferer.WalletAddress(ctx, wc.Name); err == nil {
		from = addr.String()
	}

	details := &TransferDetails{
		From:    from,
		To:      to,
		Amount:  amount,
		Comment: comment,
	}

	if s.cfg.RequireConfirmation {
		payload := pending.Payload{
			To:        to,
			Amount:    amount,
			RawAmount: coins.Nano().String(),
			Comment:   comment,
			Message:   msg,
		}
		desc := fmt.Sprintf("Send %s TON to %s", amount, to)
		record := s.pending.Create(pending.TypeSendTon, wc.Name, desc, payload)
		details.PendingTransactionID = record.ID

		s.log.Info("transfer pending confirmation",
			zap.String("id", record.ID),
			zap.String("wallet", wc.Name),
		)
		return &TransferResult{
			Success: true,
			Message: "Transaction created and pending confirmation. Use confirm_transaction to execute it or cancel_transaction to abort.",
			Details: details,
		}
	}

	hash, err := s.transferer.Submit(ctx, wc.Name, msg)
	if err != nil {
		return &TransferResult{Error: err.Error()}
	}
	details.TxHash = hash

	return &TransferResult{
		Success: true,
		Message: fmt.Sprintf("Sent %s TON to %s", amount, to),
		Details: details,
	}
}

// SendJetton transfers a jetton. amount is a decimal string in the jetton's
// display units; decimals and symbol are resolved from the wallet's known
// jettons, which is also the validation that the wallet holds the token.
func (s *Service) SendJetton(ctx context.Context, walletName, to, jettonAddress, amount, comment string) *TransferResult {
	wc, errMsg := s.resolveWallet(walletName)
	if errMsg != "" {
		return &TransferResult{Error: errMsg}
	}

	ownAddr, err := s.transferer.WalletAddress(ctx, wc.Name)
	if err != nil {
		return &TransferResult{Error: err.Error()}
	}

	balances, err := s.indexer.JettonBalances(ctx, ownAddr.String())
	if err != nil {
		return &TransferResult{Error: err.Error()}
	}

	var info *tonapi.JettonInfo
	for i := range balances {
		if tonclient.SameAddress(balances[i].Jetton.Address, jettonAddress) {
			info = &balances[i].Jetton
			break
		}
	}
	if info == nil {
		return &TransferResult{Error: fmt.Sprintf("Cannot determine decimals: jetton %s is not among the wallet's known jettons", jettonAddress)}
	}

	coins, err := tlb.FromDecimal(amount, info.Decimals)
	if err != nil || coins.Nano().Sign() <= 0 {
		return &TransferResult{Error: fmt.Sprintf("Invalid amount '%s'", amount)}
	}

	msg, err := s.transferer.BuildJettonTransfer(ctx, wc.Name, to, jettonAddress, coins, comment)
	if err != nil {
		return &TransferResult{Error: err.Error()}
	}

	details := &TransferDetails{
		From:          ownAddr.String(),
		To:            to,
		Amount:        amount,
		Comment:       comment,
		JettonAddress: jettonAddress,
		JettonSymbol:  info.Symbol,
	}

	if s.cfg.RequireConfirmation {
		payload := pending.Payload{
			To:             to,
			Amount:         amount,
			RawAmount:      coins.Nano().String(),
			Comment:        comment,
			JettonAddress:  jettonAddress,
			JettonSymbol:   info.Symbol,
			JettonDecimals: info.Decimals,
			Message:        msg,
		}
		desc := fmt.Sprintf("Send %s %s to %s", amount, info.Symbol, to)
		record := s.pending.Create(pending.TypeSendJetton, wc.Name, desc, payload)
		details.PendingTransactionID = record.ID

		s.log.Info("transfer pending confirmation",
			zap.String("id", record.ID),
			zap.String("wallet", wc.Name),
		)
		return &TransferResult{
			Success: true,
			Message: "Transaction created and pending confirmation. Use confirm_transaction to execute it or cancel_transaction to abort.",
			Details: details,
		}
	}

	hash, err := s.transferer.Submit(ctx, wc.Name, msg)
	if err != nil {
		return &TransferResult{Error: err.Error()}
	}
	details.TxHash = hash

	return &TransferResult{
		Success: true,
		Message: fmt.Sprintf("Sent %s %s to %s", amount, info.Symbol, to),
		Details: details,
	}
}

// ConfirmTransaction executes a pending transfer. The entry is removed from
// the store before submission, so a concurrent confirm of the same id
// deterministically reports not-found and the transfer executes at most
// once. A failed submission is not re-queued; the caller must start over.
func (s *Service) ConfirmTransaction(ctx context.Context, id string) *ConfirmResult {
	tx, ok := s.pending.Get(id)
	if !ok {
		return &ConfirmResult{Error: msgTxNotFound}
	}

	if tx.Expired(time.Now()) {
		s.pending.Remove(id)
		return &ConfirmResult{Error: msgTxExpired}
	}

	// Remove is the gate: only the caller that wins it may submit.
	if !s.pending.Remove(id) {
		return &ConfirmResult{Error: msgTxNotFound}
	}

	hash, err := s.transferer.Submit(ctx, tx.WalletName, tx.Payload.Message)
	if err != nil {
		s.log.Warn("pending transfer failed on submit",
			zap.String("id", id),
			zap.Error(err),
		)
		return &ConfirmResult{Error: err.Error()}
	}

	return &ConfirmResult{
		Success: true,
		Message: fmt.Sprintf("Transaction confirmed and sent: %s", tx.Description),
		TxHash:  hash,
	}
}

// CancelTransaction discards a pending transfer without submitting anything.
func (s *Service) CancelTransaction(id string) *CancelResult {
	if !s.pending.Remove(id) {
		return &CancelResult{Error: msgTxNotFound}
	}
	return &CancelResult{Success: true, Message: msgTxCancelled}
}

// ListPending returns all pending transfers in creation order, including ones
// past their deadline (they fail at confirm time).
func (s *Service) ListPending() *PendingListResult {
	txs := s.pending.List()

	out := make([]PendingSummary, 0, len(txs))
	for _, tx := range txs {
		out = append(out, PendingSummary{
			ID:          tx.ID,
			Type:        string(tx.Type),
			Wallet:      tx.WalletName,
			Description: tx.Description,
			CreatedAt:   isoMillis(tx.CreatedAt),
			ExpiresAt:   isoMillis(tx.ExpiresAt),
		})
	}

	return &PendingListResult{Success: true, Transactions: out, Count: len(out)}
}

// GetSwapQuote prices a swap and caches the quote under a single-use id.
// amount is in base units of the offered token.
func (s *Service) GetSwapQuote(ctx context.Context, fromToken, toToken, amount string, slippageBps int) *QuoteResult {
	n, ok := new(big.Int).SetString(amount, 10)
	if !ok || n.Sign() <= 0 {
		return &QuoteResult{Error: fmt.Sprintf("Invalid amount '%s'", amount)}
	}

	quote, err := s.swaps.GetQuote(ctx, fromToken, toToken, amount, slippageBps)
	if err != nil {
		return &QuoteResult{Error: err.Error()}
	}

	id, deadline := s.quotes.Put(quote)
	s.log.Info("swap quote cached",
		zap.String("quoteId", id),
		zap.String("from", fromToken),
		zap.String("to", toToken),
	)

	return &QuoteResult{
		Success:     true,
		QuoteID:     id,
		FromToken:   quote.FromToken,
		ToToken:     quote.ToToken,
		FromAmount:  quote.FromAmount,
		ToAmount:    quote.ToAmount,
		MinReceived: quote.MinReceived,
		Provider:    quote.Provider,
		ExpiresAt:   deadline.UTC().Format(time.RFC3339),
	}
}

// ExecuteSwap consumes a cached quote and submits the swap through the
// default wallet. The quote is taken out of the cache before any I/O, so a
// second execute of the same id reports not-found even if the first is still
// in flight.
func (s *Service) ExecuteSwap(ctx context.Context, quoteID string) *SwapResult {
	quote, status := s.quotes.Take(quoteID)
	switch status {
	case swap.TakeExpired:
		s.log.Info("swap quote expired", zap.String("quoteId", quoteID))
		return &SwapResult{Error: msgQuoteExpired}
	case swap.TakeNotFound:
		return &SwapResult{Error: msgQuoteExpired}
	}

	wc, errMsg := s.resolveWallet("")
	if errMsg != "" {
		return &SwapResult{Error: errMsg}
	}

	msg, err := s.transferer.BuildSwapTransfer(ctx, wc.Name, quote)
	if err != nil {
		return &SwapResult{Error: err.Error()}
	}

	hash, err := s.transferer.Submit(ctx, wc.Name, msg)
	if err != nil {
		return &SwapResult{Error: err.Error()}
	}

	return &SwapResult{
		Success: true,
		Message: fmt.Sprintf("Swap executed via %s", quote.Provider),
		Details: &SwapDetails{
			FromToken:  quote.FromToken,
			ToToken:    quote.ToToken,
			FromAmount: quote.FromAmount,
			ToAmount:   quote.ToAmount,
			Provider:   quote.Provider,
			TxHash:     hash,
		},
	}
}

// GetBalance returns the TON balance of a configured wallet.
func (s *Service) GetBalance(ctx context.Context, walletName string) *BalanceResult {
	wc, errMsg := s.resolveWallet(walletName)
	if errMsg != "" {
		return &BalanceResult{Error: errMsg}
	}

	addr, err := s.transferer.WalletAddress(ctx, wc.Name)
	if err != nil {
		return &BalanceResult{Error: err.Error()}
	}

	account, err := s.indexer.Account(ctx, addr.String())
	if err != nil {
		return &BalanceResult{Error: err.Error()}
	}

	return &BalanceResult{
		Success: true,
		Wallet:  wc.Name,
		Address: addr.String(),
		Balance: tlb.FromNanoTON(big.NewInt(account.Balance)).String(),
		Status:  account.Status,
	}
}

// GetJettons returns the jetton holdings of a configured wallet.
func (s *Service) GetJettons(ctx context.Context, walletName string) *JettonsResult {
	wc, errMsg := s.resolveWallet(walletName)
	if errMsg != "" {
		return &JettonsResult{Error: errMsg}
	}

	addr, err := s.transferer.WalletAddress(ctx, wc.Name)
	if err != nil {
		return &JettonsResult{Error: err.Error()}
	}

	balances, err := s.indexer.JettonBalances(ctx, addr.String())
	if err != nil {
		return &JettonsResult{Error: err.Error()}
	}

	out := make([]JettonHolding, 0, len(balances))
	for _, b := range balances {
		out = append(out, JettonHolding{
			Address:  b.Jetton.Address,
			Symbol:   b.Jetton.Symbol,
			Name:     b.Jetton.Name,
			Decimals: b.Jetton.Decimals,
			Balance:  b.Balance,
		})
	}

	return &JettonsResult{Success: true, Wallet: wc.Name, Jettons: out, Count: len(out)}
}

// GetNFTs returns NFTs owned by a configured wallet.
func (s *Service) GetNFTs(ctx context.Context, walletName string, limit int) *NFTsResult {
	wc, errMsg := s.resolveWallet(walletName)
	if errMsg != "" {
		return &NFTsResult{Error: errMsg}
	}

	addr, err := s.transferer.WalletAddress(ctx, wc.Name)
	if err != nil {
		return &NFTsResult{Error: err.Error()}
	}

	items, err := s.indexer.NFTItems(ctx, addr.String(), limit)
	if err != nil {
		return &NFTsResult{Error: err.Error()}
	}

	out := make([]NFTSummary, 0, len(items))
	for _, item := range items {
		nft := NFTSummary{
			Address: item.Address,
			Name:    item.Metadata.Name,
			Image:   item.Metadata.Image,
		}
		if item.Collection != nil {
			nft.Collection = item.Collection.Name
		}
		out = append(out, nft)
	}

	return &NFTsResult{Success: true, Wallet: wc.Name, NFTs: out, Count: len(out)}
}

// GetEvents returns recent transfer activity of a configured wallet. Only
// TON and jetton transfer actions are reported; other action kinds are
// skipped.
func (s *Service) GetEvents(ctx context.Context, walletName string, limit int) *EventsResult {
	wc, errMsg := s.resolveWallet(walletName)
	if errMsg != "" {
		return &EventsResult{Error: errMsg}
	}

	addr, err := s.transferer.WalletAddress(ctx, wc.Name)
	if err != nil {
		return &EventsResult{Error: err.Error()}
	}

	events, err := s.indexer.Events(ctx, addr.String(), limit)
	if err != nil {
		return &EventsResult{Error: err.Error()}
	}

	out := make([]TransferEvent, 0, len(events))
	for _, ev := range events {
		ts := time.Unix(ev.Timestamp, 0).UTC().Format(time.RFC3339)
		for _, action := range ev.Actions {
			switch {
			case action.TonTransfer != nil:
				out = append(out, TransferEvent{
					EventID:   ev.EventID,
					Timestamp: ts,
					Kind:      "ton",
					From:      action.TonTransfer.Sender.Address,
					To:        action.TonTransfer.Recipient.Address,
					Amount:    tlb.FromNanoTON(big.NewInt(action.TonTransfer.Amount)).String(),
					Comment:   action.TonTransfer.Comment,
				})
			case action.JettonTransfer != nil:
				out = append(out, TransferEvent{
					EventID:   ev.EventID,
					Timestamp: ts,
					Kind:      "jetton",
					From:      action.JettonTransfer.Sender.Address,
					To:        action.JettonTransfer.Recipient.Address,
					Amount:    action.JettonTransfer.Amount,
					Symbol:    action.JettonTransfer.Jetton.Symbol,
					Comment:   action.JettonTransfer.Comment,
				})
			}
		}
	}

	return &EventsResult{Success: true, Wallet: wc.Name, Events: out, Count: len(out)}
}

// ListWallets returns the configured wallet names.
func (s *Service) ListWallets() *WalletsResult {
	names := make([]string, 0, len(s.cfg.Wallets))
	for _, w := range s.cfg.Wallets {
		names = append(names, w.Name)
	}
	return &WalletsResult{Success: true, Wallets: names, Default: s.cfg.DefaultWallet}
}

func isoMillis(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
