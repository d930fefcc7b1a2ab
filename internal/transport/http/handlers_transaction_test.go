package httptransport

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneyguard/internal/audit"
	"moneyguard/internal/gate"
	"moneyguard/internal/transaction"
)

func (f *fixture) bearer(t *testing.T) map[string]string {
	t.Helper()
	login := f.beginLogin(t)
	require.NotEmpty(t, login.SessionToken)
	return map[string]string{"Authorization": "Bearer " + login.SessionToken}
}

func TestAuthorizeTransaction_RequiresToken(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/v1/transactions/authorize",
		authorizeTransactionRequest{Reference: "tx-1"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthorizeTransaction_Allow(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/v1/transactions/authorize",
		authorizeTransactionRequest{Reference: "tx-1", AmountMinor: 1500, Currency: "EUR"}, f.bearer(t))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp authorizeTransactionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "allow", resp.Decision)
	assert.Empty(t, resp.Rule)
}

func TestAuthorizeTransaction_BlockIs403(t *testing.T) {
	f := newFixture(t)
	f.authorizer.decision = transaction.Decision{
		Outcome: gate.Block{Title: "Malware Detected", Message: "Transactions are disabled."},
		Rule:    "malware_detected",
	}

	rec := f.do(t, http.MethodPost, "/v1/transactions/authorize",
		authorizeTransactionRequest{Reference: "tx-2"}, f.bearer(t))

	require.Equal(t, http.StatusForbidden, rec.Code)
	var resp authorizeTransactionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "block", resp.Decision)
	assert.Equal(t, "malware_detected", resp.Rule)
	assert.Equal(t, "Malware Detected", resp.Title)
}

func TestAdminAuditEvents(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.auditStore.Append(context.Background(), audit.Event{
		ID: "evt-1", Username: "jane", Action: audit.ActionSessionAuthorized,
	}))

	rec := f.do(t, http.MethodGet, "/admin/audit/events", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "admin token is required")

	rec = f.do(t, http.MethodGet, "/admin/audit/events?limit=10", nil,
		map[string]string{"X-Admin-Token": testAdminToken})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Events []audit.Event `json:"events"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Events, 1)
	assert.Equal(t, audit.ActionSessionAuthorized, resp.Events[0].Action)

	rec = f.do(t, http.MethodGet, "/admin/audit/events?limit=0", nil,
		map[string]string{"X-Admin-Token": testAdminToken})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
