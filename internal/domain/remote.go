package domain

import "context"

// SearchOptions narrows a search_read call. Zero values mean "unbounded" and
// "all fields".
type SearchOptions struct {
	Fields []string
	Limit  int
	Offset int
}

// RemoteClient is the surface this layer needs from the Odoo connection.
// Implementations fail by returning an error; callers decide whether a
// failure is recoverable (enrichment) or propagates (tool calls).
type RemoteClient interface {
	FieldsGet(ctx context.Context, model string) (FieldMap, error)
	SearchRead(ctx context.Context, model string, domain []any, opts SearchOptions) ([]Record, error)
	Create(ctx context.Context, model string, records []map[string]any) (any, error)
}
