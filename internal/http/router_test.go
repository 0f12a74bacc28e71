package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"intentpay/internal/config"
	"intentpay/internal/provider"
	"intentpay/internal/provider/base"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedGateway returns the configured result or error for every operation
// and remembers the last call.
type scriptedGateway struct {
	res *provider.Result
	err error

	lastOp    provider.OperationType
	lastMoney provider.Money
	lastAuth  string
	lastOpts  provider.Options
}

func (g *scriptedGateway) Name() string                { return "Scripted" }
func (g *scriptedGateway) Type() provider.ProviderType { return provider.ProviderAirwallex }
func (g *scriptedGateway) Test() bool                  { return true }
func (g *scriptedGateway) SupportedCountries() []string {
	return []string{"AU"}
}
func (g *scriptedGateway) DefaultCurrency() string { return "AUD" }
func (g *scriptedGateway) Scrub(s string) string   { return s }
func (g *scriptedGateway) SupportedOperations() []provider.OperationType {
	return []provider.OperationType{
		provider.OpPurchase, provider.OpAuthorize, provider.OpCapture,
		provider.OpRefund, provider.OpVoid, provider.OpVerify,
	}
}

func (g *scriptedGateway) record(op provider.OperationType, money provider.Money, auth string, opts provider.Options) (*provider.Result, error) {
	g.lastOp, g.lastMoney, g.lastAuth, g.lastOpts = op, money, auth, opts
	return g.res, g.err
}

func (g *scriptedGateway) Purchase(_ context.Context, m provider.Money, _ provider.CreditCard, o provider.Options) (*provider.Result, error) {
	return g.record(provider.OpPurchase, m, "", o)
}
func (g *scriptedGateway) Authorize(_ context.Context, m provider.Money, _ provider.CreditCard, o provider.Options) (*provider.Result, error) {
	return g.record(provider.OpAuthorize, m, "", o)
}
func (g *scriptedGateway) Capture(_ context.Context, m provider.Money, a string, o provider.Options) (*provider.Result, error) {
	return g.record(provider.OpCapture, m, a, o)
}
func (g *scriptedGateway) Refund(_ context.Context, m provider.Money, a string, o provider.Options) (*provider.Result, error) {
	return g.record(provider.OpRefund, m, a, o)
}
func (g *scriptedGateway) Void(_ context.Context, a string, o provider.Options) (*provider.Result, error) {
	return g.record(provider.OpVoid, provider.Money{}, a, o)
}
func (g *scriptedGateway) Verify(_ context.Context, _ provider.CreditCard, o provider.Options) (*provider.Result, error) {
	return g.record(provider.OpVerify, provider.Money{}, "", o)
}

func newTestRouter(gw provider.Gateway, adminToken string) http.Handler {
	reg := provider.NewRegistry()
	reg.Register("acme", gw)
	return NewRouter(RouterDependencies{
		Config:           config.Cfg{Sec: config.SecurityCfg{AdminToken: adminToken}},
		ProviderRegistry: reg,
	})
}

func do(t *testing.T, h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const purchaseBody = `{
	"amount": 1000,
	"currency": "AUD",
	"card": {"number": "4111111111111111", "month": 9, "year": 2030},
	"options": {"return_url": "https://example.com/return", "order_id": "order-1"}
}`

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(&scriptedGateway{}, "s3cret"), http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","accounts":1}`, rec.Body.String())
}

func TestAdminAuth(t *testing.T) {
	h := newTestRouter(&scriptedGateway{}, "s3cret")

	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodGet, "/api/v1/accounts", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodGet, "/api/v1/accounts", "", "wrong").Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/v1/accounts", "", "s3cret").Code)

	open := newTestRouter(&scriptedGateway{}, "")
	assert.Equal(t, http.StatusOK, do(t, open, http.MethodGet, "/api/v1/accounts", "", "").Code)
}

func TestListAccounts(t *testing.T) {
	rec := do(t, newTestRouter(&scriptedGateway{}, ""), http.MethodGet, "/api/v1/accounts", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Data []provider.GatewayInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Data, 1)
	assert.Equal(t, "acme", out.Data[0].Account)
	assert.Equal(t, "Scripted", out.Data[0].Name)
	assert.Len(t, out.Data[0].SupportedOperations, 6)
}

func TestPurchaseOperation(t *testing.T) {
	gw := &scriptedGateway{res: &provider.Result{Success: true, Message: "SUCCEEDED", Authorization: "int_1", Test: true}}
	rec := do(t, newTestRouter(gw, ""), http.MethodPost, "/api/v1/acme/purchase", purchaseBody, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var res provider.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Equal(t, "int_1", res.Authorization)

	assert.Equal(t, provider.OpPurchase, gw.lastOp)
	assert.Equal(t, provider.Money{Cents: 1000, Currency: "AUD"}, gw.lastMoney)
	assert.Equal(t, "https://example.com/return", gw.lastOpts.ReturnURL)
	assert.Equal(t, "order-1", gw.lastOpts.OrderID)
}

func TestFollowOnOperations(t *testing.T) {
	for _, op := range []provider.OperationType{provider.OpCapture, provider.OpRefund, provider.OpVoid} {
		t.Run(string(op), func(t *testing.T) {
			gw := &scriptedGateway{res: &provider.Result{Success: true}}
			rec := do(t, newTestRouter(gw, ""), http.MethodPost, "/api/v1/acme/"+string(op),
				`{"amount":500,"authorization":"int_1","options":{"request_id":"r-1"}}`, "")

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, op, gw.lastOp)
			assert.Equal(t, "int_1", gw.lastAuth)
			assert.Equal(t, "r-1", gw.lastOpts.RequestID)
		})
	}
}

func TestDeclineIsOK(t *testing.T) {
	gw := &scriptedGateway{res: &provider.Result{Success: false, Message: "FAILED", ErrorCode: "51"}}
	rec := do(t, newTestRouter(gw, ""), http.MethodPost, "/api/v1/acme/authorize", purchaseBody, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
	assert.Contains(t, rec.Body.String(), `"error_code":"51"`)
}

func TestOperationErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"usage", provider.UsageError("missing required parameter: return_url"), http.StatusBadRequest, provider.ErrInvalidArgument},
		{"setup", &provider.ProviderError{Code: provider.ErrSetupFailed, Message: "payment intent creation failed"}, http.StatusUnprocessableEntity, provider.ErrSetupFailed},
		{"network", &provider.ProviderError{Code: provider.ErrRequestFailed, Message: "HTTP request failed"}, http.StatusBadGateway, provider.ErrRequestFailed},
		{"unexpected status", &base.ResponseError{StatusCode: 500, Status: "500 Internal Server Error"}, http.StatusBadGateway, provider.ErrRequestFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &scriptedGateway{err: tt.err}
			rec := do(t, newTestRouter(gw, ""), http.MethodPost, "/api/v1/acme/purchase", purchaseBody, "")

			require.Equal(t, tt.status, rec.Code)
			var out struct {
				Error provider.ProviderError `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
			assert.Equal(t, tt.code, out.Error.Code)
		})
	}
}

func TestOperationRequestErrors(t *testing.T) {
	h := newTestRouter(&scriptedGateway{res: &provider.Result{}}, "")

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/api/v1/nobody/purchase", purchaseBody, "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/v1/acme/purchase", `{not json`, "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/v1/acme/verify", `{"options":{}}`, "").Code)
}

func TestVerifyTakesTopLevelCurrency(t *testing.T) {
	gw := &scriptedGateway{res: &provider.Result{Success: true}}
	h := newTestRouter(gw, "")

	body := `{"currency":"HKD","card":{"number":"4111111111111111","month":9,"year":2030},"options":{"return_url":"https://example.com/return"}}`
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/v1/acme/verify", body, "").Code)
	assert.Equal(t, provider.OpVerify, gw.lastOp)
	assert.Equal(t, "HKD", gw.lastOpts.Currency)

	body = `{"currency":"HKD","card":{"number":"4111111111111111","month":9,"year":2030},"options":{"return_url":"https://example.com/return","currency":"SGD"}}`
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/v1/acme/verify", body, "").Code)
	assert.Equal(t, "SGD", gw.lastOpts.Currency)
}

func TestOperationRejectsOversizedBody(t *testing.T) {
	gw := &scriptedGateway{res: &provider.Result{Success: true}}
	h := newTestRouter(gw, "")

	body := `{"options":{"description":"` + strings.Repeat("x", 2<<20) + `"}}`
	rec := do(t, h, http.MethodPost, "/api/v1/acme/void", body, "")
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Empty(t, gw.lastOp)
}

func TestMetricsEndpoint(t *testing.T) {
	rec := do(t, newTestRouter(&scriptedGateway{}, "s3cret"), http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
