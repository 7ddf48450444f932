package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerMonthsResource(srv, svc)
	registerDaylineTemplate(srv, svc)
}

func registerMonthsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"logbook://months",
		"Months",
		mcp.WithResourceDescription("All archived months with message counts."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		months, err := svc.ListMonths(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"months": months,
			"count":  len(months),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerDaylineTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"logbook://months/{month}",
		"Month Dayline",
		mcp.WithTemplateDescription("Days of a month with the page each links to."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		month := monthArgument(request.Params.Arguments["month"])
		if month == "" {
			return nil, fmt.Errorf("month is required")
		}

		days, err := svc.Dayline(ctx, month)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"month": month,
			"days":  days,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

// monthArgument unwraps a template variable, which arrives either as a
// string or as a list of path segments.
func monthArgument(v any) string {
	switch a := v.(type) {
	case string:
		return a
	case []string:
		if len(a) > 0 {
			return a[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
