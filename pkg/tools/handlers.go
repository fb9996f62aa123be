package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// toolResult serializes a facade result. The transport-level isError flag is
// set exactly when the result carries success=false, so the agent runtime can
// tell tool failure from transport failure.
func toolResult(success bool, v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("error serializing result: %v", err)), nil
	}
	if !success {
		return mcp.NewToolResultError(string(data)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) sendTonHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	toAddress := request.GetString("toAddress", "")
	amount := request.GetString("amount", "")
	if toAddress == "" || amount == "" {
		return mcp.NewToolResultError("toAddress and amount parameters are required"), nil
	}

	result := s.svc.SendTon(ctx,
		request.GetString("wallet", ""),
		toAddress,
		amount,
		request.GetString("comment", ""),
	)
	return toolResult(result.Success, result)
}

func (s *Server) sendJettonHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	toAddress := request.GetString("toAddress", "")
	jettonAddress := request.GetString("jettonAddress", "")
	amount := request.GetString("amount", "")
	if toAddress == "" || jettonAddress == "" || amount == "" {
		return mcp.NewToolResultError("toAddress, jettonAddress and amount parameters are required"), nil
	}

	result := s.svc.SendJetton(ctx,
		request.GetString("wallet", ""),
		toAddress,
		jettonAddress,
		amount,
		request.GetString("comment", ""),
	)
	return toolResult(result.Success, result)
}

func (s *Server) confirmTransactionHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("transactionId", "")
	if id == "" {
		return mcp.NewToolResultError("transactionId parameter is required"), nil
	}

	result := s.svc.ConfirmTransaction(ctx, id)
	return toolResult(result.Success, result)
}

func (s *Server) cancelTransactionHandler(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("transactionId", "")
	if id == "" {
		return mcp.NewToolResultError("transactionId parameter is required"), nil
	}

	result := s.svc.CancelTransaction(id)
	return toolResult(result.Success, result)
}

func (s *Server) listPendingHandler(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result := s.svc.ListPending()
	return toolResult(result.Success, result)
}

func (s *Server) getSwapQuoteHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fromToken := request.GetString("fromToken", "")
	toToken := request.GetString("toToken", "")
	amount := request.GetString("amount", "")
	if fromToken == "" || toToken == "" || amount == "" {
		return mcp.NewToolResultError("fromToken, toToken and amount parameters are required"), nil
	}

	result := s.svc.GetSwapQuote(ctx, fromToken, toToken, amount, request.GetInt("slippageBps", 0))
	return toolResult(result.Success, result)
}

func (s *Server) executeSwapHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	quoteID := request.GetString("quoteId", "")
	if quoteID == "" {
		return mcp.NewToolResultError("quoteId parameter is required"), nil
	}

	result := s.svc.ExecuteSwap(ctx, quoteID)
	return toolResult(result.Success, result)
}

func (s *Server) getBalanceHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result := s.svc.GetBalance(ctx, request.GetString("wallet", ""))
	return toolResult(result.Success, result)
}

func (s *Server) getJettonsHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result := s.svc.GetJettons(ctx, request.GetString("wallet", ""))
	return toolResult(result.Success, result)
}

func (s *Server) getNFTsHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result := s.svc.GetNFTs(ctx, request.GetString("wallet", ""), request.GetInt("limit", 0))
	return toolResult(result.Success, result)
}

func (s *Server) getEventsHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result := s.svc.GetEvents(ctx, request.GetString("wallet", ""), request.GetInt("limit", 0))
	return toolResult(result.Success, result)
}

func (s *Server) listWalletsHandler(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result := s.svc.ListWallets()
	return toolResult(result.Success, result)
}
