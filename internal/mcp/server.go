package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tasksv1 "github.com/dmehra2102/TaskList/api/v1"
	"github.com/dmehra2102/TaskList/internal/app"
	"github.com/dmehra2102/TaskList/internal/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// Lister runs a validated listing query.
type Lister interface {
	List(ctx context.Context, q *domain.ListQuery) (*domain.ListResult, error)
}

// NewServer creates an MCP server exposing the task listing contract.
func NewServer(lister Lister, logger *zap.Logger, version string) *server.MCPServer {
	s := server.NewMCPServer("TaskList", version)

	s.AddTool(mcp.NewTool("list_tasks",
		mcp.WithDescription("List tasks newest first with page/limit pagination and totals."),
		mcp.WithString("limit", mcp.Description("Page size, integer 1-50 (default 10)")),
		mcp.WithString("page", mcp.Description("1-based page number (default 1)")),
		mcp.WithString("skip", mcp.Description("Number of tasks to skip; cannot be combined with page")),
		mcp.WithString("status", mcp.Description("Filter by status (todo|doing|done)")),
		mcp.WithString("search", mcp.Description("Case-insensitive title substring")),
	), listTasksHandler(lister, logger))

	return s
}

func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func listTasksHandler(lister Lister, logger *zap.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)

		query, err := app.ValidateListParams(paramsFromArguments(args))
		if err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				return mcp.NewToolResultError(formatValidationError(verr)), nil
			}
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, err := lister.List(ctx, query)
		if err != nil {
			logger.Error("list_tasks failed", zap.Error(err))
			return mcp.NewToolResultError("task store unavailable, retry later"), nil
		}

		data, err := json.Marshal(tasksv1.NewListTasksResponse(result))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(string(data)), nil
	}
}

// paramsFromArguments converts tool arguments into raw listing parameters.
// JSON numbers are accepted and rendered without a fractional part when integral.
func paramsFromArguments(args map[string]any) app.RawParams {
	raw := make(app.RawParams)
	for _, key := range []string{app.ParamLimit, app.ParamPage, app.ParamSkip, app.ParamStatus, app.ParamSearch} {
		v, ok := args[key]
		if !ok || v == nil {
			continue
		}
		switch val := v.(type) {
		case string:
			raw[key] = val
		case float64:
			raw[key] = strconv.FormatFloat(val, 'f', -1, 64)
		case int:
			raw[key] = strconv.Itoa(val)
		default:
			raw[key] = fmt.Sprint(val)
		}
	}
	return raw
}

func formatValidationError(verr *domain.ValidationError) string {
	lines := make([]string, 0, len(verr.Fields)+1)
	lines = append(lines, "invalid query parameters:")
	for _, f := range verr.Fields {
		lines = append(lines, fmt.Sprintf("- %s: %s", f.Field, f.Message))
	}
	return strings.Join(lines, "\n")
}
