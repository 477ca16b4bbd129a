// Package odoo implements a JSON-RPC execute_kw client for an Odoo instance.
package odoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"odx/internal/domain"
	"odx/internal/infra/telemetry"
)

const defaultTimeout = 30 * time.Second

// Config holds the connection settings consumed once at construction.
type Config struct {
	// InstanceURL is the base URL of the Odoo instance.
	InstanceURL string
	// GatewayURL, when set, is used instead of InstanceURL as the JSON-RPC
	// endpoint base (reverse proxy / tunnel deployments).
	GatewayURL string
	Database   string
	APIKey     string
	UserID     int
}

func (c Config) endpointBase() string {
	if c.GatewayURL != "" {
		return c.GatewayURL
	}
	return c.InstanceURL
}

// Validate reports the first fatal configuration error.
func (c Config) Validate() error {
	if c.InstanceURL == "" {
		return domain.E(domain.CodeInvalidArgument, "odoo.config", "instance url is required", nil)
	}
	if c.Database == "" {
		return domain.E(domain.CodeInvalidArgument, "odoo.config", "database is required", nil)
	}
	if c.APIKey == "" {
		return domain.E(domain.CodeUnauthenticated, "odoo.config", "api key is required", nil)
	}
	if c.UserID <= 0 {
		return domain.E(domain.CodeInvalidArgument, "odoo.config", "user id must be > 0", nil)
	}
	return nil
}

// Client speaks JSON-RPC 2.0 to the instance's /jsonrpc endpoint via the
// object service's execute_kw method.
type Client struct {
	cfg      Config
	endpoint string
	http     *http.Client
	logger   *zap.Logger
	metrics  *telemetry.Metrics
}

// NewClient validates cfg and returns a ready client. httpClient may be nil.
func NewClient(cfg Config, httpClient *http.Client, metrics *telemetry.Metrics, logger *zap.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:      cfg,
		endpoint: strings.TrimRight(cfg.endpointBase(), "/") + "/jsonrpc",
		http:     httpClient,
		logger:   logger.Named("odoo"),
		metrics:  metrics,
	}, nil
}

// Config returns the settings the client was built with.
func (c *Client) Config() Config {
	return c.cfg
}

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
	ID      string    `json:"id"`
}

type rpcParams struct {
	Service string `json:"service"`
	Method  string `json:"method"`
	Args    []any  `json:"args"`
}

type rpcError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  *rpcError       `json:"error,omitempty"`
}

// executeKw issues one execute_kw call and returns the raw result payload.
// A missing result member comes back as nil, not an error.
func (c *Client) executeKw(ctx context.Context, model, method string, args []any, kwargs map[string]any) (json.RawMessage, error) {
	op := fmt.Sprintf("odoo.%s", method)
	payload := rpcRequest{
		JSONRPC: "2.0",
		Method:  "call",
		Params: rpcParams{
			Service: "object",
			Method:  "execute_kw",
			Args:    []any{c.cfg.Database, c.cfg.UserID, c.cfg.APIKey, model, method, args, kwargs},
		},
		ID: uuid.NewString(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, domain.Wrap(domain.CodeInternal, op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, domain.Wrap(domain.CodeInternal, op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(method, start, err)
		return nil, domain.Wrap(domain.CodeUnavailable, op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := domain.E(domain.CodeUnavailable, op, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
		c.observe(method, start, err)
		return nil, err
	}

	var decoded rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.observe(method, start, err)
		return nil, domain.Wrap(domain.CodeInternal, op, err)
	}
	if decoded.Error != nil {
		err := domain.E(domain.CodeRemote, op,
			fmt.Sprintf("remote error %d: %s", decoded.Error.Code, decoded.Error.Message), nil)
		c.observe(method, start, err)
		return nil, err
	}

	c.observe(method, start, nil)
	return decoded.Result, nil
}

func (c *Client) observe(method string, start time.Time, err error) {
	if c.metrics != nil {
		c.metrics.ObserveRemoteCall(method, time.Since(start), err)
	}
	if err != nil {
		c.logger.Debug("remote call failed", zap.String("method", method), zap.Error(err))
	}
}

// FieldsGet fetches live field metadata for model. The execution context
// pins the timezone so label rendering stays deterministic across calls.
func (c *Client) FieldsGet(ctx context.Context, model string) (domain.FieldMap, error) {
	raw, err := c.executeKw(ctx, model, "fields_get", []any{}, map[string]any{
		"context": map[string]any{"tz": domain.DefaultTimezone},
	})
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return domain.FieldMap{}, nil
	}
	var fields domain.FieldMap
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "odoo.fields_get", err)
	}
	if fields == nil {
		fields = domain.FieldMap{}
	}
	return fields, nil
}

// SearchRead runs a filtered read query and returns matching records.
func (c *Client) SearchRead(ctx context.Context, model string, filter []any, opts domain.SearchOptions) ([]domain.Record, error) {
	if filter == nil {
		filter = []any{}
	}
	kwargs := map[string]any{}
	if len(opts.Fields) > 0 {
		kwargs["fields"] = opts.Fields
	}
	if opts.Limit > 0 {
		kwargs["limit"] = opts.Limit
	}
	if opts.Offset > 0 {
		kwargs["offset"] = opts.Offset
	}
	raw, err := c.executeKw(ctx, model, "search_read", []any{filter}, kwargs)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []domain.Record{}, nil
	}
	var records []domain.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "odoo.search_read", err)
	}
	if records == nil {
		records = []domain.Record{}
	}
	return records, nil
}

// Create inserts records and returns the raw remote result (new record ids).
func (c *Client) Create(ctx context.Context, model string, records []map[string]any) (any, error) {
	raw, err := c.executeKw(ctx, model, "create", []any{records}, map[string]any{})
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var result any
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, domain.Wrap(domain.CodeInternal, "odoo.create", err)
	}
	return result, nil
}

var _ domain.RemoteClient = (*Client)(nil)
