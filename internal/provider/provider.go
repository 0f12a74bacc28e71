package provider

import "context"

// Gateway is the provider-agnostic charge lifecycle surface.
type Gateway interface {
	Name() string
	Type() ProviderType
	Test() bool
	SupportedOperations() []OperationType
	SupportedCountries() []string
	DefaultCurrency() string

	Purchase(ctx context.Context, money Money, card CreditCard, opts Options) (*Result, error)
	Authorize(ctx context.Context, money Money, card CreditCard, opts Options) (*Result, error)
	Capture(ctx context.Context, money Money, authorization string, opts Options) (*Result, error)
	Refund(ctx context.Context, money Money, authorization string, opts Options) (*Result, error)
	Void(ctx context.Context, authorization string, opts Options) (*Result, error)
	Verify(ctx context.Context, card CreditCard, opts Options) (*Result, error)

	// Scrub redacts sensitive card data from a request/response transcript.
	Scrub(transcript string) string
}
