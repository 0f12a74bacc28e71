package airwallex

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"intentpay/internal/provider"
)

// Status is the payment intent / payment attempt status vocabulary.
type Status string

const (
	StatusRequiresPaymentMethod  Status = "REQUIRES_PAYMENT_METHOD"
	StatusRequiresCustomerAction Status = "REQUIRES_CUSTOMER_ACTION"
	StatusRequiresCapture        Status = "REQUIRES_CAPTURE"
	StatusPending                Status = "PENDING"
	StatusReceived               Status = "RECEIVED"
	StatusAuthorized             Status = "AUTHORIZED"
	StatusSucceeded              Status = "SUCCEEDED"
	StatusCancelled              Status = "CANCELLED"
	StatusFailed                 Status = "FAILED"
)

// successStatuses is the only place that decides whether a status is a success.
var successStatuses = map[Status]struct{}{
	StatusRequiresPaymentMethod: {},
	StatusSucceeded:             {},
	StatusReceived:              {},
	StatusRequiresCapture:       {},
	StatusCancelled:             {},
}

// Successful reports whether s is on the success allow-list. Unknown values are failures.
func (s Status) Successful() bool {
	_, ok := successStatuses[Status(strings.ToUpper(string(s)))]
	return ok
}

// response covers every reply shape the gateway reads. Create-intent replies
// only fill ID and Status; confirm, capture and cancel replies embed the
// latest payment attempt; error replies carry Code and Message.
type response struct {
	ID                           string          `json:"id"`
	Status                       Status          `json:"status"`
	Message                      string          `json:"message"`
	Code                         flexString      `json:"code"`
	ProviderOriginalResponseCode flexString      `json:"provider_original_response_code"`
	LatestPaymentAttempt         *paymentAttempt `json:"latest_payment_attempt"`
}

type paymentAttempt struct {
	ID                 string              `json:"id"`
	Status             Status              `json:"status"`
	PaymentIntentID    string              `json:"payment_intent_id"`
	AuthenticationData *authenticationData `json:"authentication_data"`
}

type authenticationData struct {
	AVSResult string `json:"avs_result"`
	CVCResult string `json:"cvc_result"`
}

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("code must be a string or number: %w", err)
	}
	*f = flexString(n.String())
	return nil
}

func (r *response) status() Status {
	if r.LatestPaymentAttempt != nil && r.LatestPaymentAttempt.Status != "" {
		return r.LatestPaymentAttempt.Status
	}
	return r.Status
}

func (r *response) successful() bool {
	return r.status().Successful()
}

func (r *response) message() string {
	if s := r.status(); s != "" {
		return string(s)
	}
	return r.Message
}

func (r *response) authorization() string {
	if r.LatestPaymentAttempt == nil {
		return ""
	}
	return r.LatestPaymentAttempt.PaymentIntentID
}

func (r *response) authenticationData() authenticationData {
	if r.LatestPaymentAttempt == nil || r.LatestPaymentAttempt.AuthenticationData == nil {
		return authenticationData{}
	}
	return *r.LatestPaymentAttempt.AuthenticationData
}

func (r *response) errorCode() string {
	if r.successful() {
		return ""
	}
	if r.ProviderOriginalResponseCode != "" {
		return string(r.ProviderOriginalResponseCode)
	}
	return string(r.Code)
}

// reply is a decoded provider body: the typed view plus the raw payload.
type reply struct {
	resp response
	raw  map[string]any
}

func parseReply(body []byte) (*reply, error) {
	r := &reply{}
	if err := json.Unmarshal(body, &r.resp); err != nil {
		return nil, &provider.ProviderError{
			Code:        provider.ErrResponseParse,
			Message:     "failed to parse provider response",
			ProviderErr: err.Error(),
		}
	}
	if err := json.Unmarshal(body, &r.raw); err != nil {
		return nil, &provider.ProviderError{
			Code:        provider.ErrResponseParse,
			Message:     "failed to parse provider response",
			ProviderErr: err.Error(),
		}
	}
	return r, nil
}

func (r *reply) result(test bool) *provider.Result {
	auth := r.resp.authenticationData()
	return &provider.Result{
		Success:       r.resp.successful(),
		Message:       r.resp.message(),
		Authorization: r.resp.authorization(),
		AVS:           provider.NewAVSResult(auth.AVSResult),
		CVV:           provider.NewCVVResult(auth.CVCResult),
		ErrorCode:     r.resp.errorCode(),
		Test:          test,
		Params:        r.raw,
	}
}
