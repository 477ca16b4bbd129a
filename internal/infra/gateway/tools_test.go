package gateway

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"odx/internal/domain"
)

type searchCall struct {
	model  string
	filter []any
}

type createCall struct {
	model   string
	records []map[string]any
}

type fakeRemote struct {
	searchCalls   []searchCall
	createCalls   []createCall
	searchRecords []domain.Record
	searchErr     error
	createErr     error
}

func (f *fakeRemote) FieldsGet(ctx context.Context, model string) (domain.FieldMap, error) {
	return domain.FieldMap{}, nil
}

func (f *fakeRemote) SearchRead(ctx context.Context, model string, filter []any, opts domain.SearchOptions) ([]domain.Record, error) {
	f.searchCalls = append(f.searchCalls, searchCall{model: model, filter: filter})
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if f.searchRecords == nil {
		return []domain.Record{}, nil
	}
	return f.searchRecords, nil
}

func (f *fakeRemote) Create(ctx context.Context, model string, records []map[string]any) (any, error) {
	f.createCalls = append(f.createCalls, createCall{model: model, records: records})
	if f.createErr != nil {
		return nil, f.createErr
	}
	return []any{float64(1)}, nil
}

func int64ptr(v int64) *int64 { return &v }

func TestPartnerFilterIDWinsOutright(t *testing.T) {
	filter, ok := partnerFilter(partnerQuery{ID: int64ptr(7), Email: "x@y.com", Name: "x"})
	require.True(t, ok)

	want := []any{[]any{"id", "=", int64(7)}}
	require.Empty(t, cmp.Diff(want, domain.Serialize(filter)))
}

func TestPartnerFilterEmailAndNameDisjunction(t *testing.T) {
	filter, ok := partnerFilter(partnerQuery{Email: "a@b.com", Name: "Acme"})
	require.True(t, ok)

	want := []any{
		"|",
		[]any{"email", "=", "a@b.com"},
		[]any{"name", "ilike", "Acme"},
	}
	require.Empty(t, cmp.Diff(want, domain.Serialize(filter)))
}

func TestPartnerFilterNormalizesEmailCase(t *testing.T) {
	filter, ok := partnerFilter(partnerQuery{Email: "A@B.Com"})
	require.True(t, ok)
	require.Equal(t, []any{[]any{"email", "=", "a@b.com"}}, domain.Serialize(filter))
}

func TestPartnerFilterSingleName(t *testing.T) {
	filter, ok := partnerFilter(partnerQuery{Name: "Acme"})
	require.True(t, ok)
	require.Equal(t, []any{[]any{"name", "ilike", "Acme"}}, domain.Serialize(filter))
}

func TestPartnerFilterEmptyQuerySkipsRemoteCall(t *testing.T) {
	_, ok := partnerFilter(partnerQuery{})
	require.False(t, ok)
}

func TestCompanyFilterConjunction(t *testing.T) {
	filter := companyFilter(companyQuery{Name: "Acme", ID: int64ptr(3)})
	want := []any{
		[]any{"name", "ilike", "Acme"},
		[]any{"id", "=", int64(3)},
	}
	require.Empty(t, cmp.Diff(want, domain.Serialize(filter)))
}

func TestCompanyFilterEmptyMatchesAll(t *testing.T) {
	require.Nil(t, companyFilter(companyQuery{}))
}

func TestPartnerPayloadDefaultsToFalseSentinels(t *testing.T) {
	payload := partnerPayload(partnerCreate{Name: "Bob"})
	want := map[string]any{
		"name":       "Bob",
		"email":      false,
		"phone":      false,
		"is_company": false,
	}
	require.Empty(t, cmp.Diff(want, payload))
}

func TestPartnerPayloadKeepsProvidedValues(t *testing.T) {
	payload := partnerPayload(partnerCreate{Name: "Acme", Email: "hq@acme.com", Phone: "+1 555", IsCompany: true})
	want := map[string]any{
		"name":       "Acme",
		"email":      "hq@acme.com",
		"phone":      "+1 555",
		"is_company": true,
	}
	require.Empty(t, cmp.Diff(want, payload))
}

func callToolText(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) string {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestGetPartnersEmptyInputReturnsEmptyListWithoutQuery(t *testing.T) {
	remote := &fakeRemote{}
	gw := newTestGateway(t, remote)

	_, session := connectClient(t, context.Background(), gw.MCPServer())
	defer session.Close()

	text := callToolText(t, session, "get_partners", map[string]any{})

	var records []domain.Record
	require.NoError(t, json.Unmarshal([]byte(text), &records))
	require.Empty(t, records)
	require.Empty(t, remote.searchCalls, "no remote query may be issued")
}

func TestGetPartnersByIDQueriesPartnerModel(t *testing.T) {
	remote := &fakeRemote{
		searchRecords: []domain.Record{{"id": float64(7), "name": "Bob"}},
	}
	gw := newTestGateway(t, remote)

	_, session := connectClient(t, context.Background(), gw.MCPServer())
	defer session.Close()

	text := callToolText(t, session, "get_partners", map[string]any{
		"id":    7,
		"email": "x@y.com",
		"name":  "x",
	})

	var records []domain.Record
	require.NoError(t, json.Unmarshal([]byte(text), &records))
	require.Len(t, records, 1)

	require.Len(t, remote.searchCalls, 1)
	require.Equal(t, domain.ModelPartner, remote.searchCalls[0].model)
	require.Equal(t, []any{[]any{"id", "=", int64(7)}}, remote.searchCalls[0].filter)
}

func TestGetCompaniesWithoutFiltersQueriesAll(t *testing.T) {
	remote := &fakeRemote{
		searchRecords: []domain.Record{{"id": float64(1), "name": "My Company"}},
	}
	gw := newTestGateway(t, remote)

	_, session := connectClient(t, context.Background(), gw.MCPServer())
	defer session.Close()

	callToolText(t, session, "get_companies", map[string]any{})

	require.Len(t, remote.searchCalls, 1)
	require.Equal(t, domain.ModelCompany, remote.searchCalls[0].model)
	require.Equal(t, []any{}, remote.searchCalls[0].filter)
}

func TestCreatePartnerSendsDefaultsAndReportsFixedLiteral(t *testing.T) {
	remote := &fakeRemote{}
	gw := newTestGateway(t, remote)

	_, session := connectClient(t, context.Background(), gw.MCPServer())
	defer session.Close()

	text := callToolText(t, session, "create_partner", map[string]any{"name": "Bob"})
	require.Equal(t, partnerCreatedMessage, text)

	require.Len(t, remote.createCalls, 1)
	require.Equal(t, domain.ModelPartner, remote.createCalls[0].model)
	require.Len(t, remote.createCalls[0].records, 1)
	want := map[string]any{
		"name":       "Bob",
		"email":      false,
		"phone":      false,
		"is_company": false,
	}
	require.Empty(t, cmp.Diff(want, remote.createCalls[0].records[0]))
}

func TestCreatePartnerFailurePropagatesAsToolError(t *testing.T) {
	remote := &fakeRemote{
		createErr: domain.E(domain.CodeRemote, "odoo.create", "duplicate email", nil),
	}
	gw := newTestGateway(t, remote)

	_, session := connectClient(t, context.Background(), gw.MCPServer())
	defer session.Close()

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "create_partner",
		Arguments: map[string]any{"name": "Bob"},
	})
	if err == nil {
		require.True(t, result.IsError)
	}
}

func TestConfigToolRedactsAPIKey(t *testing.T) {
	gw := newTestGateway(t, &fakeRemote{})

	_, session := connectClient(t, context.Background(), gw.MCPServer())
	defer session.Close()

	text := callToolText(t, session, "odx_config", map[string]any{})

	var info ConnectionInfo
	require.NoError(t, json.Unmarshal([]byte(text), &info))
	require.Equal(t, "https://odoo.example.com", info.InstanceURL)
	require.Equal(t, "testdb", info.Database)
	require.Equal(t, 2, info.UserID)
	require.True(t, info.APIKeySet)
	require.NotContains(t, text, "secret")
}
