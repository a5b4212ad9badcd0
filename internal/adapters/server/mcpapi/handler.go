// Package mcpapi provides a stateless MCP streamable-HTTP adapter.
package mcpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/evanschultz/sortboard/internal/adapters/server/common"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Config captures MCP transport configuration.
type Config struct {
	ServerName    string
	ServerVersion string
	EndpointPath  string
}

// Handler wraps one stateless MCP streamable HTTP handler.
type Handler struct {
	httpHandler http.Handler
}

// gestureCall is one of the BoardService drag methods.
type gestureCall func(context.Context, common.DragRequest) (common.GestureResult, error)

// NewHandler builds one stateless MCP adapter with board tools and, when a journal is given, event tools.
func NewHandler(cfg Config, board common.BoardService, journal common.JournalReader) (*Handler, error) {
	if board == nil {
		return nil, fmt.Errorf("board service is required")
	}
	cfg = normalizeConfig(cfg)

	mcpSrv := mcpserver.NewMCPServer(
		cfg.ServerName,
		cfg.ServerVersion,
		mcpserver.WithToolCapabilities(false),
	)
	registerBoardTools(mcpSrv, board)
	registerGestureTools(mcpSrv, board)
	if journal != nil {
		registerJournalTools(mcpSrv, journal)
	}

	streamable := mcpserver.NewStreamableHTTPServer(
		mcpSrv,
		mcpserver.WithEndpointPath(cfg.EndpointPath),
		mcpserver.WithStateLess(true),
	)
	return &Handler{httpHandler: streamable}, nil
}

// ServeHTTP handles one MCP streamable HTTP request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.httpHandler == nil {
		http.Error(w, "mcp handler unavailable", http.StatusServiceUnavailable)
		return
	}
	h.httpHandler.ServeHTTP(w, r)
}

// normalizeConfig applies deterministic defaults to MCP adapter config.
func normalizeConfig(cfg Config) Config {
	cfg.ServerName = strings.TrimSpace(cfg.ServerName)
	if cfg.ServerName == "" {
		cfg.ServerName = "sortboard"
	}
	cfg.ServerVersion = strings.TrimSpace(cfg.ServerVersion)
	if cfg.ServerVersion == "" {
		cfg.ServerVersion = "dev"
	}
	cfg.EndpointPath = strings.TrimSpace(cfg.EndpointPath)
	if cfg.EndpointPath == "" {
		cfg.EndpointPath = "/mcp"
	}
	if !strings.HasPrefix(cfg.EndpointPath, "/") {
		cfg.EndpointPath = "/" + cfg.EndpointPath
	}
	cfg.EndpointPath = "/" + strings.Trim(cfg.EndpointPath, "/")
	return cfg
}

// registerBoardTools registers read-only board tools.
func registerBoardTools(srv *mcpserver.MCPServer, board common.BoardService) {
	srv.AddTool(
		mcp.NewTool(
			"sortboard.get_board",
			mcp.WithDescription("Return every container with its ordered items and the active drag id."),
		),
		func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			out, err := board.GetBoard(ctx)
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(out)
			if err != nil {
				return nil, fmt.Errorf("encode get_board result: %w", err)
			}
			return result, nil
		},
	)

	srv.AddTool(
		mcp.NewTool(
			"sortboard.get_active_item",
			mcp.WithDescription("Return the item currently being dragged."),
		),
		func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			item, err := board.GetActiveItem(ctx)
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(item)
			if err != nil {
				return nil, fmt.Errorf("encode get_active_item result: %w", err)
			}
			return result, nil
		},
	)

	srv.AddTool(
		mcp.NewTool(
			"sortboard.reset_board",
			mcp.WithDescription("Restore the seed arrangement and clear any drag session."),
		),
		func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			out, err := board.ResetBoard(ctx)
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(out)
			if err != nil {
				return nil, fmt.Errorf("encode reset_board result: %w", err)
			}
			return result, nil
		},
	)
}

// registerGestureTools registers drag_start, drag_over, and drag_end.
func registerGestureTools(srv *mcpserver.MCPServer, board common.BoardService) {
	srv.AddTool(
		mcp.NewTool(
			"sortboard.drag_start",
			mcp.WithDescription("Pick up one item and open a drag session."),
			mcp.WithString("active_id", mcp.Required(), mcp.Description("Item id being dragged")),
		),
		gestureHandler("drag_start", board.StartDrag, false),
	)
	srv.AddTool(
		mcp.NewTool(
			"sortboard.drag_over",
			mcp.WithDescription("Hover the active item over a container or item; crossing containers previews the move."),
			mcp.WithString("active_id", mcp.Required(), mcp.Description("Item id being dragged")),
			mcp.WithString("over_id", mcp.Description("Container or item id under the pointer; omit for none")),
		),
		gestureHandler("drag_over", board.DragOver, true),
	)
	srv.AddTool(
		mcp.NewTool(
			"sortboard.drag_end",
			mcp.WithDescription("Drop the active item and commit a reorder or move."),
			mcp.WithString("active_id", mcp.Required(), mcp.Description("Item id being dragged")),
			mcp.WithString("over_id", mcp.Description("Container or item id under the pointer; omit for none")),
		),
		gestureHandler("drag_end", board.EndDrag, true),
	)
}

// gestureHandler adapts one drag method into a tool handler.
func gestureHandler(name string, call gestureCall, withOver bool) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		activeID, err := req.RequireString("active_id")
		if err != nil {
			return mcp.NewToolResultError("invalid_request: " + err.Error()), nil
		}
		in := common.DragRequest{ActiveID: activeID}
		if withOver {
			in.OverID = req.GetString("over_id", "")
		}
		out, err := call(ctx, in)
		if err != nil {
			return toolResultFromError(err), nil
		}
		result, err := mcp.NewToolResultJSON(out)
		if err != nil {
			return nil, fmt.Errorf("encode %s result: %w", name, err)
		}
		return result, nil
	}
}

// registerJournalTools registers drag journal tools.
func registerJournalTools(srv *mcpserver.MCPServer, journal common.JournalReader) {
	srv.AddTool(
		mcp.NewTool(
			"sortboard.list_events",
			mcp.WithDescription("List journaled drag events, newest first."),
			mcp.WithString("session_id", mcp.Description("Only events from this drag session")),
			mcp.WithNumber("limit", mcp.Description("Maximum rows to return")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			rows, err := journal.ListDragEvents(ctx, common.ListDragEventsRequest{
				SessionID: req.GetString("session_id", ""),
				Limit:     req.GetInt("limit", 0),
			})
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(map[string]any{"events": rows})
			if err != nil {
				return nil, fmt.Errorf("encode list_events result: %w", err)
			}
			return result, nil
		},
	)
}

// toolResultFromError maps service errors into MCP-visible tool errors.
func toolResultFromError(err error) *mcp.CallToolResult {
	switch {
	case err == nil:
		return mcp.NewToolResultError("unknown error")
	case errors.Is(err, common.ErrInvalidRequest):
		return mcp.NewToolResultError("invalid_request: " + err.Error())
	case errors.Is(err, common.ErrNotFound):
		return mcp.NewToolResultError("not_found: " + err.Error())
	case errors.Is(err, common.ErrJournalUnavailable):
		return mcp.NewToolResultError("not_implemented: " + err.Error())
	default:
		return mcp.NewToolResultError("internal_error: " + err.Error())
	}
}
