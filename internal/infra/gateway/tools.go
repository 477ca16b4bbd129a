package gateway

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"odx/internal/domain"
)

const partnerCreatedMessage = "Partner created successfully"

func (s *Server) registerTools() {
	s.mcpServer.AddTool(&mcp.Tool{
		Name:        "odx_config",
		Description: "Returns the Odoo connection settings this server was started with.",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}, s.instrument("odx_config", s.handleConfig))

	s.mcpServer.AddTool(&mcp.Tool{
		Name:        "get_companies",
		Description: "Looks up companies (res.company). Optional filters: partial case-insensitive name match and exact id match. No filters returns all companies.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name": map[string]any{
					"type":        "string",
					"description": "Partial company name, matched case-insensitively.",
				},
				"id": map[string]any{
					"type":        "integer",
					"description": "Exact company id.",
				},
			},
			"required": []string{},
		},
	}, s.instrument("get_companies", s.handleGetCompanies))

	s.mcpServer.AddTool(&mcp.Tool{
		Name:        "get_partners",
		Description: "Looks up partners (res.partner). id takes precedence over every other filter; email and name together match either; with no filters the result is empty.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id": map[string]any{
					"type":        "integer",
					"description": "Exact partner id. When given, all other filters are ignored.",
				},
				"email": map[string]any{
					"type":        "string",
					"description": "Exact email match, case-normalized to lowercase.",
				},
				"name": map[string]any{
					"type":        "string",
					"description": "Partial partner name, matched case-insensitively.",
				},
			},
			"required": []string{},
		},
	}, s.instrument("get_partners", s.handleGetPartners))

	s.mcpServer.AddTool(&mcp.Tool{
		Name:        "create_partner",
		Description: "Creates a partner (res.partner). Only name is required; omitted email, phone and is_company are stored as Odoo's false sentinel.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name": map[string]any{
					"type":        "string",
					"description": "Partner display name.",
				},
				"email": map[string]any{
					"type":        "string",
					"description": "Partner email address.",
				},
				"phone": map[string]any{
					"type":        "string",
					"description": "Partner phone number.",
				},
				"is_company": map[string]any{
					"type":        "boolean",
					"description": "Whether the partner is an organization rather than an individual.",
				},
			},
			"required": []string{"name"},
		},
	}, s.instrument("create_partner", s.handleCreatePartner))
}

// instrument counts invocations and logs failures before they propagate to
// the SDK's error envelope.
func (s *Server) instrument(name string, handler mcp.ToolHandler) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := handler(ctx, req)
		if s.metrics != nil {
			s.metrics.RecordToolInvocation(name, err)
		}
		if err != nil {
			s.logger.Warn("tool call failed", zap.String("tool", name), zap.Error(err))
		}
		return result, err
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "gateway.serialize", err)
	}
	return textResult(string(payload)), nil
}

func decodeArgs(req *mcp.CallToolRequest, dst any) error {
	if req == nil || req.Params == nil || len(req.Params.Arguments) == 0 {
		return nil
	}
	if err := json.Unmarshal(req.Params.Arguments, dst); err != nil {
		return domain.E(domain.CodeInvalidArgument, "gateway.args", "malformed tool arguments", err)
	}
	return nil
}

func (s *Server) handleConfig(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.conn)
}

type companyQuery struct {
	Name string `json:"name"`
	ID   *int64 `json:"id"`
}

// companyFilter conjoins whichever filters are present; an empty query
// yields the empty domain, which matches every company.
func companyFilter(q companyQuery) domain.Filter {
	terms := []domain.Filter{}
	if q.Name != "" {
		terms = append(terms, domain.ILike("name", q.Name))
	}
	if q.ID != nil {
		terms = append(terms, domain.Eq("id", *q.ID))
	}
	if len(terms) == 0 {
		return nil
	}
	return domain.And(terms...)
}

func (s *Server) handleGetCompanies(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var q companyQuery
	if err := decodeArgs(req, &q); err != nil {
		return nil, err
	}

	records, err := s.client.SearchRead(ctx, domain.ModelCompany, domain.Serialize(companyFilter(q)), domain.SearchOptions{})
	if err != nil {
		return nil, err
	}
	return jsonResult(records)
}

type partnerQuery struct {
	ID    *int64 `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// partnerFilter returns the lookup filter and whether a query should run at
// all. id wins outright; email and name together form a disjunction.
func partnerFilter(q partnerQuery) (domain.Filter, bool) {
	if q.ID != nil {
		return domain.Eq("id", *q.ID), true
	}

	email := strings.ToLower(strings.TrimSpace(q.Email))
	name := strings.TrimSpace(q.Name)

	switch {
	case email != "" && name != "":
		return domain.Or(domain.Eq("email", email), domain.ILike("name", name)), true
	case email != "":
		return domain.Eq("email", email), true
	case name != "":
		return domain.ILike("name", name), true
	}
	return nil, false
}

func (s *Server) handleGetPartners(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var q partnerQuery
	if err := decodeArgs(req, &q); err != nil {
		return nil, err
	}

	filter, ok := partnerFilter(q)
	if !ok {
		return jsonResult([]domain.Record{})
	}

	records, err := s.client.SearchRead(ctx, domain.ModelPartner, domain.Serialize(filter), domain.SearchOptions{})
	if err != nil {
		return nil, err
	}
	return jsonResult(records)
}

type partnerCreate struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	IsCompany bool   `json:"is_company"`
}

// partnerPayload maps the tool input onto the remote create payload. Omitted
// optionals become Odoo's false sentinel, never empty strings.
func partnerPayload(p partnerCreate) map[string]any {
	payload := map[string]any{
		"name":       p.Name,
		"email":      false,
		"phone":      false,
		"is_company": p.IsCompany,
	}
	if p.Email != "" {
		payload["email"] = p.Email
	}
	if p.Phone != "" {
		payload["phone"] = p.Phone
	}
	return payload
}

func (s *Server) handleCreatePartner(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p partnerCreate
	if err := decodeArgs(req, &p); err != nil {
		return nil, err
	}
	if p.Name == "" {
		return nil, domain.E(domain.CodeInvalidArgument, "gateway.create_partner", "name is required", nil)
	}

	if _, err := s.client.Create(ctx, domain.ModelPartner, []map[string]any{partnerPayload(p)}); err != nil {
		return nil, err
	}
	return textResult(partnerCreatedMessage), nil
}
