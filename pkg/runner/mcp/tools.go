package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/logbook/pkg/render"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListMonthsTool(srv, svc)
	registerGetDaylineTool(srv, svc)
	registerRenderFragmentTool(srv, svc)
	registerListMessagesTool(srv, svc)
}

func registerListMonthsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_months",
		mcp.WithDescription("List every archived month with its message and page counts."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		months, err := svc.ListMonths(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"months": months,
			"count":  len(months),
		})
	})
}

func registerGetDaylineTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_dayline",
		mcp.WithDescription("List the days of a month, their message counts and the page each links to."),
		mcp.WithString("month",
			mcp.Required(),
			mcp.Description("Month slug such as 2021-01."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		month, err := request.RequireString("month")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		days, err := svc.Dayline(ctx, month)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"month": month,
			"days":  days,
		})
	})
}

func registerRenderFragmentTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"render_fragment",
		mcp.WithDescription("Render an index fragment as HTML."),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Fragment to render."),
			mcp.Enum("timeline", "dayline", "pagination"),
		),
		mcp.WithString("month",
			mcp.Description("Month slug such as 2021-01, required for dayline and pagination."),
		),
		mcp.WithString("order",
			mcp.Description("Item order, forward keeps archive order."),
			mcp.Enum("forward", "reverse"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Kind  string `json:"kind"`
			Month string `json:"month"`
			Order string `json:"order"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		order := render.Forward
		if args.Order != "" {
			var err error
			if order, err = render.ParseOrder(args.Order); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}

		html, err := svc.Render(ctx, args.Kind, args.Month, order)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(html), nil
	})
}

func registerListMessagesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_messages",
		mcp.WithDescription("List the messages of a single day, oldest first."),
		mcp.WithString("day",
			mcp.Required(),
			mcp.Description("Day slug such as 2021-01-05."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		day, err := request.RequireString("day")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		msgs, err := svc.ListMessages(ctx, day)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"day":      day,
			"count":    len(msgs),
			"messages": msgs,
		})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
