package gateway

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"odx/internal/domain"
)

// Publish registers one resource per catalog entry. Registration is total:
// entries whose enrichment degraded to an empty field map are still
// published. The catalog is treated as read-only from here on.
func (s *Server) Publish(catalog []domain.GlossaryEntry) error {
	if err := domain.ValidateCatalog(catalog); err != nil {
		return err
	}

	for _, entry := range catalog {
		examples := entry.Examples
		if examples == nil {
			examples = []any{}
		}
		resource := &mcp.Resource{
			URI:         entry.ResourceURI(),
			Name:        entry.ResourceName(),
			Title:       entry.Title(),
			Description: entry.Description,
			MIMEType:    "application/json",
			Meta: mcp.Meta{
				"tags":     entry.Tags(),
				"examples": examples,
			},
		}
		s.mcpServer.AddResource(resource, glossaryResourceHandler(entry))
		s.logger.Debug("published glossary resource", zap.String("uri", resource.URI))
	}

	if s.metrics != nil {
		s.metrics.SetResourcesPublished(len(catalog))
	}
	s.logger.Info("glossary resources published", zap.Int("count", len(catalog)))
	return nil
}

// glossaryResourceHandler serves the complete entry, post-enrichment fields
// included, as one JSON text block.
func glossaryResourceHandler(entry domain.GlossaryEntry) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := entry.ResourceURI()
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}

		serialized := entry
		if serialized.Fields == nil {
			serialized.Fields = domain.FieldMap{}
		}
		payload, err := json.MarshalIndent(serialized, "", "  ")
		if err != nil {
			return nil, domain.Wrap(domain.CodeInternal, "glossary.read", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(payload),
			}},
		}, nil
	}
}
