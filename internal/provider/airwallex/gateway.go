package airwallex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"intentpay/internal/infra/metrics"
	"intentpay/internal/provider"
	"intentpay/internal/provider/base"

	"github.com/rs/zerolog/log"
)

const (
	TestURL = "https://api-demo.airwallex.com/api/v1/"
	LiveURL = "https://pci-api.airwallex.com/api/v1/"

	DefaultCurrency = "AUD"

	// verifyCents is the nominal amount authorized (and then voided) by Verify.
	verifyCents = 100
)

type action string

const (
	actionLogin   action = "login"
	actionSetup   action = "setup"
	actionSale    action = "sale"
	actionCapture action = "capture"
	actionRefund  action = "refund"
	actionVoid    action = "void"
)

var endpoints = map[action]string{
	actionLogin:   "authentication/login",
	actionSetup:   "pa/payment_intents/create",
	actionSale:    "pa/payment_intents/%s/confirm",
	actionCapture: "pa/payment_intents/%s/capture",
	actionRefund:  "pa/refunds/create",
	actionVoid:    "pa/payment_intents/%s/cancel",
}

// targetsIntent reports whether the endpoint acts on an existing intent.
func targetsIntent(act action) bool {
	return strings.Contains(endpoints[act], "%s")
}

// endpointPath fills in the intent id as one escaped path segment.
func endpointPath(act action, intentID string) string {
	if targetsIntent(act) {
		return fmt.Sprintf(endpoints[act], url.PathEscape(intentID))
	}
	return endpoints[act]
}

// Transport posts a serialized body to an endpoint relative to the provider base URL.
type Transport interface {
	Post(ctx context.Context, endpoint string, body []byte, headers map[string]string) ([]byte, error)
}

// Config holds the credentials and environment of one merchant account
type Config struct {
	ClientID        string
	APIKey          string
	Test            bool
	BaseURL         string // overrides the test/live URL when set
	DefaultCurrency string
	TimeoutSec      int
}

func (c Config) baseURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/") + "/"
	}
	if c.Test {
		return TestURL
	}
	return LiveURL
}

var _ provider.Gateway = (*Gateway)(nil)

// Gateway implements provider.Gateway on top of the Airwallex payment intent API
type Gateway struct {
	cfg       Config
	transport Transport
	session   *Session
	validator *base.RequestValidator
	newID     func() string
}

// New creates a gateway backed by an HTTP transport and logs in once.
func New(ctx context.Context, cfg Config) (*Gateway, error) {
	client := base.NewHTTPClient("airwallex", cfg.TimeoutSec)
	client.SetBaseURL(cfg.baseURL())
	return NewWithTransport(ctx, cfg, client)
}

// NewWithTransport creates a gateway on an arbitrary transport and logs in once.
func NewWithTransport(ctx context.Context, cfg Config, t Transport) (*Gateway, error) {
	if cfg.ClientID == "" || cfg.APIKey == "" {
		return nil, provider.UsageError("client_id and api_key are required")
	}
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = DefaultCurrency
	}

	session, err := NewSession(ctx, t, cfg.ClientID, cfg.APIKey)
	if err != nil {
		return nil, err
	}

	ids := newIDSource()
	return &Gateway{
		cfg:       cfg,
		transport: t,
		session:   session,
		validator: base.NewRequestValidator(),
		newID:     ids.next,
	}, nil
}

// Name returns the provider name
func (g *Gateway) Name() string {
	return "Airwallex"
}

func (g *Gateway) Type() provider.ProviderType {
	return provider.ProviderAirwallex
}

func (g *Gateway) Test() bool {
	return g.cfg.Test
}

func (g *Gateway) DefaultCurrency() string {
	return g.cfg.DefaultCurrency
}

// SupportedOperations returns operations supported by Airwallex
func (g *Gateway) SupportedOperations() []provider.OperationType {
	return []provider.OperationType{
		provider.OpPurchase,
		provider.OpAuthorize,
		provider.OpCapture,
		provider.OpRefund,
		provider.OpVoid,
		provider.OpVerify,
	}
}

func (g *Gateway) SupportedCountries() []string {
	return []string{"AU", "HK", "SG", "NZ", "GB", "US"}
}

// Session exposes the credential session owned by this gateway.
func (g *Gateway) Session() *Session {
	return g.session
}

func (g *Gateway) Scrub(transcript string) string {
	return Scrub(transcript)
}

// Purchase creates a payment intent and confirms it with the card.
func (g *Gateway) Purchase(ctx context.Context, money provider.Money, cc provider.CreditCard, opts provider.Options) (*provider.Result, error) {
	if err := g.validator.ValidatePurchase(opts); err != nil {
		return nil, err
	}
	if err := g.validator.ValidateCard(cc); err != nil {
		return nil, err
	}

	ids := correlationFor(opts, g.newID)
	intentID, err := g.createPaymentIntent(ctx, money, opts, ids.setup())
	if err != nil {
		return nil, err
	}

	req := confirmIntentRequest{
		RequestID:             ids.RequestID,
		MerchantOrderID:       ids.MerchantOrderID,
		ReturnURL:             opts.ReturnURL,
		PaymentMethod:         mapCard(cc, opts),
		Descriptor:            opts.Description,
		ExternalRecurringData: mapStoredCredential(opts.StoredCredential),
		PaymentMethodOptions:  mapCaptureOptions(opts),
	}
	return g.commitResult(ctx, actionSale, req, intentID)
}

// Authorize is a purchase without auto capture.
func (g *Gateway) Authorize(ctx context.Context, money provider.Money, cc provider.CreditCard, opts provider.Options) (*provider.Result, error) {
	return g.Purchase(ctx, money, cc, opts.WithAutoCapture(false))
}

// Capture captures funds held by a previous authorization.
func (g *Gateway) Capture(ctx context.Context, money provider.Money, authorization string, opts provider.Options) (*provider.Result, error) {
	if err := g.validator.ValidateAuthorization(authorization); err != nil {
		return nil, err
	}
	ids := correlationFor(opts, g.newID)
	req := captureRequest{
		RequestID:       ids.RequestID,
		MerchantOrderID: ids.MerchantOrderID,
		Amount:          localizedAmount(money.Cents, currencyFor(money, opts, g.cfg.DefaultCurrency)),
	}
	return g.commitResult(ctx, actionCapture, req, authorization)
}

// Refund refunds money against a payment intent.
func (g *Gateway) Refund(ctx context.Context, money provider.Money, authorization string, opts provider.Options) (*provider.Result, error) {
	if err := g.validator.ValidateAuthorization(authorization); err != nil {
		return nil, err
	}
	ids := correlationFor(opts, g.newID)
	req := refundRequest{
		PaymentIntentID: authorization,
		Amount:          localizedAmount(money.Cents, currencyFor(money, opts, g.cfg.DefaultCurrency)),
		RequestID:       ids.RequestID,
		MerchantOrderID: ids.MerchantOrderID,
	}
	return g.commitResult(ctx, actionRefund, req, "")
}

// Void cancels a payment intent.
func (g *Gateway) Void(ctx context.Context, authorization string, opts provider.Options) (*provider.Result, error) {
	if err := g.validator.ValidateAuthorization(authorization); err != nil {
		return nil, err
	}
	ids := correlationFor(opts, g.newID)
	req := cancelRequest{
		RequestID:       ids.RequestID,
		MerchantOrderID: ids.MerchantOrderID,
	}
	return g.commitResult(ctx, actionVoid, req, authorization)
}

// Verify authorizes a nominal amount and then releases it. The reported
// result is always the authorization's.
func (g *Gateway) Verify(ctx context.Context, cc provider.CreditCard, opts provider.Options) (*provider.Result, error) {
	money := provider.Money{Cents: verifyCents, Currency: currencyFor(provider.Money{}, opts, g.cfg.DefaultCurrency)}
	res, err := g.Authorize(ctx, money, cc, opts)
	if err != nil || !res.Success {
		return res, err
	}
	g.releaseVerification(ctx, res.Authorization, opts)
	return res, nil
}

// releaseVerification is best-effort cleanup: the void's result and error are
// logged and then discarded, never returned to the caller.
func (g *Gateway) releaseVerification(ctx context.Context, authorization string, opts provider.Options) {
	// the void gets its own request id; the authorize already used the caller's
	opts.RequestID = ""
	res, err := g.Void(ctx, authorization, opts)
	switch {
	case err != nil:
		log.Warn().Err(err).
			Str("provider", "airwallex").
			Str("authorization", authorization).
			Msg("verify: releasing authorization failed")
	case !res.Success:
		log.Warn().
			Str("provider", "airwallex").
			Str("authorization", authorization).
			Str("message", res.Message).
			Str("error_code", res.ErrorCode).
			Msg("verify: releasing authorization was declined")
	}
}

// createPaymentIntent runs the setup call and returns the new intent id. A
// non-success reply aborts the parent operation.
func (g *Gateway) createPaymentIntent(ctx context.Context, money provider.Money, opts provider.Options, ids correlation) (string, error) {
	cur := currencyFor(money, opts, g.cfg.DefaultCurrency)
	req := createIntentRequest{
		RequestID:       ids.RequestID,
		MerchantOrderID: ids.MerchantOrderID,
		Amount:          localizedAmount(money.Cents, cur),
		Currency:        cur,
		Descriptor:      opts.Description,
		Order:           mapShipping(opts.ShippingAddress),
	}
	rep, err := g.commit(ctx, actionSetup, req, "")
	if err != nil {
		return "", err
	}
	if !rep.resp.successful() {
		return "", &provider.ProviderError{
			Code:        provider.ErrSetupFailed,
			Message:     "payment intent creation failed",
			ProviderErr: rep.resp.message(),
		}
	}
	if rep.resp.ID == "" {
		return "", &provider.ProviderError{
			Code:    provider.ErrSetupFailed,
			Message: "payment intent creation returned no id",
		}
	}
	return rep.resp.ID, nil
}

func (g *Gateway) commitResult(ctx context.Context, act action, payload interface{}, intentID string) (*provider.Result, error) {
	rep, err := g.commit(ctx, act, payload, intentID)
	if err != nil {
		return nil, err
	}
	return rep.result(g.cfg.Test), nil
}

// commit is the single path to the provider: it attaches the session token,
// serializes the body, posts it and decodes the reply.
func (g *Gateway) commit(ctx context.Context, act action, payload interface{}, intentID string) (*reply, error) {
	if targetsIntent(act) && intentID == "" {
		return nil, provider.UsageError(fmt.Sprintf("%s requires a payment intent id", act))
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", act, err)
	}

	log.Debug().
		Str("provider", "airwallex").
		Str("action", string(act)).
		Str("body", Scrub(string(body))).
		Msg("airwallex request")

	start := time.Now()
	raw, err := g.transport.Post(ctx, endpointPath(act, intentID), body, g.session.headers())
	if err != nil {
		metrics.ObserveProviderCall("airwallex", string(act), metrics.OutcomeError, time.Since(start))
		return nil, err
	}

	rep, err := parseReply(raw)
	if err != nil {
		metrics.ObserveProviderCall("airwallex", string(act), metrics.OutcomeError, time.Since(start))
		return nil, err
	}

	outcome := metrics.OutcomeSuccess
	if !rep.resp.successful() {
		outcome = metrics.OutcomeDeclined
	}
	metrics.ObserveProviderCall("airwallex", string(act), outcome, time.Since(start))

	log.Debug().
		Str("provider", "airwallex").
		Str("action", string(act)).
		Str("status", string(rep.resp.status())).
		Str("body", Scrub(string(raw))).
		Msg("airwallex response")

	return rep, nil
}
