package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"ton-wallet-mcp/pkg/service"
)

// Server exposes the wallet service facade as MCP tools.
type Server struct {
	mcpServer *mcpserver.MCPServer
	svc       *service.Service
	log       *zap.Logger
}

// NewServer creates the MCP server and registers all tools.
func NewServer(svc *service.Service, version string, log *zap.Logger) *Server {
	s := &Server{
		mcpServer: mcpserver.NewMCPServer("ton-wallet-mcp", version),
		svc:       svc,
		log:       log,
	}
	s.registerTools()
	return s
}

// ServeStdio runs the server over stdio until the client disconnects.
func (s *Server) ServeStdio() error {
	return mcpserver.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	// Transfer tools
	s.mcpServer.AddTool(mcp.NewTool("send_ton",
		mcp.WithDescription("Send TON from a configured wallet. Depending on server policy the transfer may require a confirm_transaction call before it executes."),
		mcp.WithString("wallet", mcp.Description("Wallet name (defaults to the default wallet)")),
		mcp.WithString("toAddress", mcp.Description("Recipient TON address"), mcp.Required()),
		mcp.WithString("amount", mcp.Description("Amount in TON, e.g. '1.5'"), mcp.Required()),
		mcp.WithString("comment", mcp.Description("Optional transfer comment")),
	), s.sendTonHandler)

	s.mcpServer.AddTool(mcp.NewTool("send_jetton",
		mcp.WithDescription("Send a jetton (token) from a configured wallet. The jetton must be among the wallet's holdings."),
		mcp.WithString("wallet", mcp.Description("Wallet name (defaults to the default wallet)")),
		mcp.WithString("toAddress", mcp.Description("Recipient TON address"), mcp.Required()),
		mcp.WithString("jettonAddress", mcp.Description("Jetton master contract address"), mcp.Required()),
		mcp.WithString("amount", mcp.Description("Amount in the jetton's display units"), mcp.Required()),
		mcp.WithString("comment", mcp.Description("Optional transfer comment")),
	), s.sendJettonHandler)

	// Confirmation protocol
	s.mcpServer.AddTool(mcp.NewTool("confirm_transaction",
		mcp.WithDescription("Execute a pending transaction created by a transfer tool"),
		mcp.WithString("transactionId", mcp.Description("Pending transaction id"), mcp.Required()),
	), s.confirmTransactionHandler)

	s.mcpServer.AddTool(mcp.NewTool("cancel_transaction",
		mcp.WithDescription("Cancel a pending transaction without executing it"),
		mcp.WithString("transactionId", mcp.Description("Pending transaction id"), mcp.Required()),
	), s.cancelTransactionHandler)

	s.mcpServer.AddTool(mcp.NewTool("list_pending_transactions",
		mcp.WithDescription("List all transactions awaiting confirmation"),
	), s.listPendingHandler)

	// Swap tools
	s.mcpServer.AddTool(mcp.NewTool("get_swap_quote",
		mcp.WithDescription("Get a swap quote. The returned quoteId is single-use and expires quickly; execute it with execute_swap."),
		mcp.WithString("fromToken", mcp.Description("Jetton master address to sell, or 'TON'"), mcp.Required()),
		mcp.WithString("toToken", mcp.Description("Jetton master address to buy, or 'TON'"), mcp.Required()),
		mcp.WithString("amount", mcp.Description("Amount to sell, in base units"), mcp.Required()),
		mcp.WithNumber("slippageBps", mcp.Description("Max slippage in basis points (default 100 = 1%)")),
	), s.getSwapQuoteHandler)

	s.mcpServer.AddTool(mcp.NewTool("execute_swap",
		mcp.WithDescription("Execute a previously quoted swap through the default wallet"),
		mcp.WithString("quoteId", mcp.Description("Quote id from get_swap_quote"), mcp.Required()),
	), s.executeSwapHandler)

	// Read-only account tools
	s.mcpServer.AddTool(mcp.NewTool("get_balance",
		mcp.WithDescription("Get the TON balance of a configured wallet"),
		mcp.WithString("wallet", mcp.Description("Wallet name (defaults to the default wallet)")),
	), s.getBalanceHandler)

	s.mcpServer.AddTool(mcp.NewTool("get_jettons",
		mcp.WithDescription("List jetton balances of a configured wallet"),
		mcp.WithString("wallet", mcp.Description("Wallet name (defaults to the default wallet)")),
	), s.getJettonsHandler)

	s.mcpServer.AddTool(mcp.NewTool("get_nfts",
		mcp.WithDescription("List NFTs owned by a configured wallet"),
		mcp.WithString("wallet", mcp.Description("Wallet name (defaults to the default wallet)")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of items (default 20)")),
	), s.getNFTsHandler)

	s.mcpServer.AddTool(mcp.NewTool("get_events",
		mcp.WithDescription("List recent transfer activity of a configured wallet"),
		mcp.WithString("wallet", mcp.Description("Wallet name (defaults to the default wallet)")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of events (default 20)")),
	), s.getEventsHandler)

	s.mcpServer.AddTool(mcp.NewTool("list_wallets",
		mcp.WithDescription("List the configured wallet names"),
	), s.listWalletsHandler)
}
