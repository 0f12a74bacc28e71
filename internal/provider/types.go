package provider

import (
	"errors"
	"strings"
)

// Provider identification
type ProviderType string

const (
	ProviderAirwallex ProviderType = "airwallex"
)

// Operation types that gateways can support
type OperationType string

const (
	OpPurchase  OperationType = "purchase"
	OpAuthorize OperationType = "authorize"
	OpCapture   OperationType = "capture"
	OpRefund    OperationType = "refund"
	OpVoid      OperationType = "void"
	OpVerify    OperationType = "verify"
)

// Money is an amount in minor units of the two-decimal calling convention
// (cents), optionally tagged with the currency it is expressed in.
type Money struct {
	Cents    int64  `json:"cents"`
	Currency string `json:"currency,omitempty"`
}

// CreditCard is the caller-supplied payment instrument.
type CreditCard struct {
	Number            string `json:"number"`
	Month             int    `json:"month"`
	Year              int    `json:"year"`
	Name              string `json:"name,omitempty"`
	FirstName         string `json:"first_name,omitempty"`
	LastName          string `json:"last_name,omitempty"`
	VerificationValue string `json:"verification_value,omitempty"`
}

// HolderName returns the printed card name, falling back to first and last name.
func (c CreditCard) HolderName() string {
	if c.Name != "" {
		return c.Name
	}
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// HasNameInfo reports whether both cardholder first and last name are present.
func (c CreditCard) HasNameInfo() bool {
	return c.FirstName != "" && c.LastName != ""
}

type Address struct {
	Name     string `json:"name,omitempty"`
	Address1 string `json:"address1,omitempty"`
	City     string `json:"city,omitempty"`
	Zip      string `json:"zip,omitempty"`
	State    string `json:"state,omitempty"`
	Country  string `json:"country,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Stored credential reason types and initiators
const (
	ReasonRecurring   = "recurring"
	ReasonInstallment = "installment"
	ReasonUnscheduled = "unscheduled"

	InitiatorCardholder = "cardholder"
	InitiatorMerchant   = "merchant"
)

// StoredCredential describes a card-on-file used for a follow-up charge.
type StoredCredential struct {
	ReasonType           string `json:"reason_type,omitempty"`
	Initiator            string `json:"initiator,omitempty"`
	NetworkTransactionID string `json:"network_transaction_id,omitempty"`
}

// Options carries the per-call settings recognized by every operation.
type Options struct {
	ReturnURL        string            `json:"return_url,omitempty"`
	OrderID          string            `json:"order_id,omitempty"`
	MerchantOrderID  string            `json:"merchant_order_id,omitempty"`
	RequestID        string            `json:"request_id,omitempty"`
	Email            string            `json:"email,omitempty"`
	Phone            string            `json:"phone,omitempty"`
	BillingAddress   *Address          `json:"billing_address,omitempty"`
	ShippingAddress  *Address          `json:"shipping_address,omitempty"`
	Description      string            `json:"description,omitempty"`
	StoredCredential *StoredCredential `json:"stored_credential,omitempty"`
	AutoCapture      *bool             `json:"auto_capture,omitempty"`
	Currency         string            `json:"currency,omitempty"`
}

// AuthorizationOnly is true only when auto capture was explicitly disabled.
func (o Options) AuthorizationOnly() bool {
	return o.AutoCapture != nil && !*o.AutoCapture
}

// WithAutoCapture returns a copy of o with AutoCapture set to v.
func (o Options) WithAutoCapture(v bool) Options {
	o.AutoCapture = &v
	return o
}

// Result is the normalized outcome of one logical operation.
type Result struct {
	Success       bool           `json:"success"`
	Message       string         `json:"message"`
	Authorization string         `json:"authorization,omitempty"`
	AVS           AVSResult      `json:"avs_result"`
	CVV           CVVResult      `json:"cvv_result"`
	ErrorCode     string         `json:"error_code,omitempty"`
	Test          bool           `json:"test"`
	Params        map[string]any `json:"params,omitempty"`
}

// Common error types
type ProviderError struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	ProviderErr string `json:"provider_error,omitempty"`
}

func (e *ProviderError) Error() string {
	if e.ProviderErr != "" {
		return e.Message + ": " + e.ProviderErr
	}
	return e.Message
}

// Error codes
const (
	ErrInvalidArgument = "invalid_argument"
	ErrSetupFailed     = "setup_failed"
	ErrAuthFailed      = "auth_failed"
	ErrResponseParse   = "response_parse_failed"
	ErrRequestFailed   = "request_failed"
	ErrAccountNotFound = "account_not_found"
	ErrOpNotSupported  = "operation_not_supported"
	ErrUnknownError    = "unknown_error"
)

// UsageError builds the error returned for caller mistakes detected before any provider call.
func UsageError(message string) error {
	return &ProviderError{Code: ErrInvalidArgument, Message: message}
}

// IsUsageError reports whether err was raised for invalid caller input.
func IsUsageError(err error) bool {
	return HasCode(err, ErrInvalidArgument)
}

// HasCode reports whether err wraps a ProviderError carrying code.
func HasCode(err error, code string) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Code == code
}
