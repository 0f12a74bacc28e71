package airwallex

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"intentpay/internal/provider"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	endpoint string
	body     map[string]any
	rawBody  []byte
	headers  map[string]string
}

// fakeTransport answers each endpoint from a queue of canned bodies or errors
// and records every call it receives.
type fakeTransport struct {
	mu      sync.Mutex
	replies map[string][]fakeReply
	calls   []recordedCall
}

type fakeReply struct {
	body string
	err  error
}

func newFakeTransport() *fakeTransport {
	ft := &fakeTransport{replies: map[string][]fakeReply{}}
	ft.reply("authentication/login", `{"token":"tok_123","expires_at":"2030-01-01T00:00:00+0000"}`)
	return ft
}

func (f *fakeTransport) reply(endpoint, body string) *fakeTransport {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[endpoint] = append(f.replies[endpoint], fakeReply{body: body})
	return f
}

func (f *fakeTransport) fail(endpoint string, err error) *fakeTransport {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[endpoint] = append(f.replies[endpoint], fakeReply{err: err})
	return f
}

func (f *fakeTransport) Post(_ context.Context, endpoint string, body []byte, headers map[string]string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := recordedCall{endpoint: endpoint, rawBody: body, headers: headers}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &call.body); err != nil {
			return nil, fmt.Errorf("fake transport: bad body: %w", err)
		}
	}
	f.calls = append(f.calls, call)

	queue := f.replies[endpoint]
	if len(queue) == 0 {
		return nil, fmt.Errorf("fake transport: no reply queued for %s", endpoint)
	}
	next := queue[0]
	f.replies[endpoint] = queue[1:]
	if next.err != nil {
		return nil, next.err
	}
	return []byte(next.body), nil
}

// operationCalls returns the calls made after login.
func (f *fakeTransport) operationCalls() []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recordedCall
	for _, c := range f.calls {
		if c.endpoint != endpoints[actionLogin] {
			out = append(out, c)
		}
	}
	return out
}

// newTestGateway builds a gateway on ft with deterministic generated ids.
func newTestGateway(t *testing.T, ft *fakeTransport) *Gateway {
	t.Helper()
	gw, err := NewWithTransport(context.Background(), Config{
		ClientID: "client_abc",
		APIKey:   "key_xyz",
		Test:     true,
	}, ft)
	require.NoError(t, err)

	n := 0
	gw.newID = func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}
	return gw
}

func testCard() provider.CreditCard {
	return provider.CreditCard{
		Number:            gofakeit.CreditCardNumber(&gofakeit.CreditCardOptions{Types: []string{"visa"}}),
		Month:             gofakeit.Number(1, 12),
		Year:              time.Now().Year() + gofakeit.Number(1, 5),
		FirstName:         gofakeit.FirstName(),
		LastName:          gofakeit.LastName(),
		VerificationValue: gofakeit.CreditCardCvv(),
	}
}

func purchaseOptions() provider.Options {
	return provider.Options{
		ReturnURL:       "https://example.com/return",
		RequestID:       "req-1",
		MerchantOrderID: "order-1",
	}
}

const (
	setupOK = `{"id":"int_hkdm123","status":"REQUIRES_PAYMENT_METHOD","amount":1000,"currency":"AUD"}`

	confirmSucceeded = `{"id":"int_hkdm123","status":"SUCCEEDED","latest_payment_attempt":{
		"id":"att_1","status":"SUCCEEDED","payment_intent_id":"int_hkdm123",
		"authentication_data":{"avs_result":"M","cvc_result":"M"}}}`

	confirmRequiresCapture = `{"id":"int_hkdm123","status":"REQUIRES_CAPTURE","latest_payment_attempt":{
		"id":"att_1","status":"REQUIRES_CAPTURE","payment_intent_id":"int_hkdm123"}}`

	cancelled = `{"id":"int_hkdm123","status":"CANCELLED","latest_payment_attempt":{
		"id":"att_1","status":"CANCELLED","payment_intent_id":"int_hkdm123"}}`
)

func nested(t *testing.T, m map[string]any, path ...string) any {
	t.Helper()
	var cur any = m
	for _, p := range path {
		obj, ok := cur.(map[string]any)
		require.Truef(t, ok, "%v is not an object at %q", cur, p)
		cur, ok = obj[p]
		if !ok {
			return nil
		}
	}
	return cur
}
