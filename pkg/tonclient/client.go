package tonclient

import (
	"context"
	"encoding/base64"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/liteclient"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/ton"
	"github.com/xssnick/tonutils-go/ton/jetton"
	"github.com/xssnick/tonutils-go/ton/wallet"
	"github.com/xssnick/tonutils-go/tvm/cell"
	"go.uber.org/zap"

	"ton-wallet-mcp/config"
	"ton-wallet-mcp/pkg/swap"
)

// Gas budgets for jetton operations. The unused remainder is returned to the
// sender wallet by the jetton contracts.
var (
	jettonTransferGas = tlb.MustFromTON("0.05")
	commentForwardTon = tlb.MustFromTON("0.01")
	swapForwardTon    = tlb.MustFromTON("0.25")
	swapAttachedTon   = tlb.MustFromTON("0.3")
)

// Client wraps tonutils-go: liteserver connectivity, named wallets, transfer
// building and submission. The liteserver connection is established lazily on
// first use.
type Client struct {
	cfg *config.Config
	log *zap.Logger

	// initMu makes the lazy connection single-flight: concurrent first
	// callers serialize here and all but one see the memoized client. A
	// failed attempt is not memoized, so the next call retries.
	initMu sync.Mutex
	api    ton.APIClientWrapped

	walletMu sync.Mutex
	wallets  map[string]*wallet.Wallet
}

// New creates a client. No network activity happens until the first call
// that needs the chain.
func New(cfg *config.Config, log *zap.Logger) *Client {
	return &Client{
		cfg:     cfg,
		log:     log,
		wallets: make(map[string]*wallet.Wallet),
	}
}

func (c *Client) apiClient(ctx context.Context) (ton.APIClientWrapped, error) {
	c.initMu.Lock()
	defer c.initMu.Unlock()

	if c.api != nil {
		return c.api, nil
	}

	pool := liteclient.NewConnectionPool()
	if err := pool.AddConnectionsFromConfigUrl(ctx, c.cfg.GlobalConfigURL); err != nil {
		return nil, fmt.Errorf("failed to connect to liteservers: %w", err)
	}

	c.api = ton.NewAPIClient(pool).WithRetry()
	c.log.Info("connected to liteservers", zap.String("network", c.cfg.Network))
	return c.api, nil
}

func (c *Client) getWallet(ctx context.Context, name string) (*wallet.Wallet, error) {
	wc := c.cfg.Wallet(name)
	if wc == nil {
		return nil, fmt.Errorf("wallet '%s' not found", name)
	}

	// Held across construction so concurrent first callers build the
	// wallet once, matching the single-flight init of apiClient.
	c.walletMu.Lock()
	defer c.walletMu.Unlock()

	if w, ok := c.wallets[wc.Name]; ok {
		return w, nil
	}

	api, err := c.apiClient(ctx)
	if err != nil {
		return nil, err
	}

	version, err := c.versionConfig(wc.Version)
	if err != nil {
		return nil, err
	}

	w, err := wallet.FromSeed(api, strings.Fields(wc.Mnemonic), version)
	if err != nil {
		return nil, fmt.Errorf("failed to init wallet '%s': %w", wc.Name, err)
	}

	c.wallets[wc.Name] = w
	return w, nil
}

func (c *Client) versionConfig(version string) (wallet.VersionConfig, error) {
	globalID := int32(wallet.MainnetGlobalID)
	if c.cfg.Network == "testnet" {
		globalID = wallet.TestnetGlobalID
	}

	switch strings.ToUpper(version) {
	case "V3R2":
		return wallet.V3R2, nil
	case "", "V4R2":
		return wallet.V4R2, nil
	case "V5R1":
		return wallet.ConfigV5R1Final{NetworkGlobalID: globalID, Workchain: 0}, nil
	default:
		return nil, fmt.Errorf("unsupported wallet version: %s", version)
	}
}

// WalletAddress returns the on-chain address of a configured wallet.
func (c *Client) WalletAddress(ctx context.Context, name string) (*address.Address, error) {
	w, err := c.getWallet(ctx, name)
	if err != nil {
		return nil, err
	}
	return w.WalletAddress(), nil
}

// BuildTonTransfer builds a plain TON transfer message without submitting it.
func (c *Client) BuildTonTransfer(ctx context.Context, name, to string, amount tlb.Coins, comment string) (*wallet.Message, error) {
	w, err := c.getWallet(ctx, name)
	if err != nil {
		return nil, err
	}

	toAddr, err := ParseAnyAddress(to)
	if err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}

	msg, err := w.BuildTransfer(toAddr, amount, toAddr.IsBounceable(), comment)
	if err != nil {
		return nil, fmt.Errorf("failed to build transfer: %w", err)
	}
	return msg, nil
}

// BuildJettonTransfer builds a jetton transfer message without submitting it.
// amount is in the jetton's base units; master is the jetton master address.
func (c *Client) BuildJettonTransfer(ctx context.Context, name, to, master string, amount tlb.Coins, comment string) (*wallet.Message, error) {
	w, err := c.getWallet(ctx, name)
	if err != nil {
		return nil, err
	}

	api, err := c.apiClient(ctx)
	if err != nil {
		return nil, err
	}

	toAddr, err := ParseAnyAddress(to)
	if err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	masterAddr, err := ParseAnyAddress(master)
	if err != nil {
		return nil, fmt.Errorf("invalid jetton address: %w", err)
	}

	ownWallet, err := jetton.NewJettonMasterClient(api, masterAddr).GetJettonWallet(ctx, w.WalletAddress())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve jetton wallet: %w", err)
	}

	var forward *cell.Cell
	forwardTon := tlb.ZeroCoins
	if comment != "" {
		forward, err = wallet.CreateCommentCell(comment)
		if err != nil {
			return nil, fmt.Errorf("failed to encode comment: %w", err)
		}
		forwardTon = commentForwardTon
	}

	body, err := ownWallet.BuildTransferPayloadV2(toAddr, w.WalletAddress(), amount, forwardTon, forward, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build jetton transfer: %w", err)
	}

	return wallet.SimpleMessage(ownWallet.Address(), jettonTransferGas, body), nil
}

// nativeOfferLeg reports whether the quote offers native TON through the
// proxy-TON jetton master.
func nativeOfferLeg(q *swap.Quote) bool {
	return SameAddress(q.OfferJettonMaster, swap.ProxyTonMaster)
}

// swapMessageValue returns the TON attached to the swap message. A proxy-TON
// wallet has no jetton balance of its own, so on a native leg the transferred
// amount itself must ride along on top of the gas budget.
func swapMessageValue(native bool, offerAmount *big.Int) tlb.Coins {
	if !native {
		return swapAttachedTon
	}
	return tlb.FromNanoTON(new(big.Int).Add(offerAmount, swapAttachedTon.Nano()))
}

// BuildSwapTransfer builds the message executing a cached quote: a transfer
// of the offer jetton to the provider router carrying the swap instruction.
// Jetton legs go through the sender's own jetton wallet; native TON legs go
// through the router's proxy-TON wallet, funded by the message value.
func (c *Client) BuildSwapTransfer(ctx context.Context, name string, q *swap.Quote) (*wallet.Message, error) {
	w, err := c.getWallet(ctx, name)
	if err != nil {
		return nil, err
	}

	api, err := c.apiClient(ctx)
	if err != nil {
		return nil, err
	}

	routerAddr, err := ParseAnyAddress(q.RouterAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid router address: %w", err)
	}
	offerMaster, err := ParseAnyAddress(q.OfferJettonMaster)
	if err != nil {
		return nil, fmt.Errorf("invalid offer jetton address: %w", err)
	}
	askMaster, err := ParseAnyAddress(q.AskJettonMaster)
	if err != nil {
		return nil, fmt.Errorf("invalid ask jetton address: %w", err)
	}

	routerAskWallet, err := jetton.NewJettonMasterClient(api, askMaster).GetJettonWallet(ctx, routerAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve router jetton wallet: %w", err)
	}

	payload, err := swap.BuildRouterPayload(q, routerAskWallet.Address(), w.WalletAddress())
	if err != nil {
		return nil, err
	}

	offerAmount, ok := new(big.Int).SetString(q.FromAmount, 10)
	if !ok || offerAmount.Sign() <= 0 {
		return nil, fmt.Errorf("invalid swap amount '%s'", q.FromAmount)
	}

	native := nativeOfferLeg(q)
	offerWalletOwner := w.WalletAddress()
	if native {
		offerWalletOwner = routerAddr
	}

	offerWallet, err := jetton.NewJettonMasterClient(api, offerMaster).GetJettonWallet(ctx, offerWalletOwner)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve jetton wallet: %w", err)
	}

	body, err := offerWallet.BuildTransferPayloadV2(routerAddr, w.WalletAddress(), tlb.FromNanoTON(offerAmount), swapForwardTon, payload, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build swap transfer: %w", err)
	}

	return wallet.SimpleMessage(offerWallet.Address(), swapMessageValue(native, offerAmount), body), nil
}

// Submit signs and sends a previously built message, waits for it to be
// accepted into a block and returns the transaction hash.
func (c *Client) Submit(ctx context.Context, name string, msg *wallet.Message) (string, error) {
	w, err := c.getWallet(ctx, name)
	if err != nil {
		return "", err
	}

	tx, _, err := w.SendWaitTransaction(ctx, msg)
	if err != nil {
		return "", fmt.Errorf("failed to send transaction: %w", err)
	}

	hash := base64.StdEncoding.EncodeToString(tx.Hash)
	c.log.Info("transaction sent",
		zap.String("wallet", name),
		zap.String("hash", hash),
	)
	return hash, nil
}
