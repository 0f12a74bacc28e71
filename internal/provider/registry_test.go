package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGateway satisfies Gateway with a fixed operation set.
type stubGateway struct {
	ops []OperationType
}

func (s *stubGateway) Name() string                        { return "Stub" }
func (s *stubGateway) Type() ProviderType                  { return ProviderAirwallex }
func (s *stubGateway) Test() bool                          { return true }
func (s *stubGateway) SupportedOperations() []OperationType { return s.ops }
func (s *stubGateway) SupportedCountries() []string        { return []string{"AU"} }
func (s *stubGateway) DefaultCurrency() string             { return "AUD" }
func (s *stubGateway) Scrub(t string) string               { return t }

func (s *stubGateway) Purchase(context.Context, Money, CreditCard, Options) (*Result, error) {
	return &Result{Success: true}, nil
}
func (s *stubGateway) Authorize(context.Context, Money, CreditCard, Options) (*Result, error) {
	return &Result{Success: true}, nil
}
func (s *stubGateway) Capture(context.Context, Money, string, Options) (*Result, error) {
	return &Result{Success: true}, nil
}
func (s *stubGateway) Refund(context.Context, Money, string, Options) (*Result, error) {
	return &Result{Success: true}, nil
}
func (s *stubGateway) Void(context.Context, string, Options) (*Result, error) {
	return &Result{Success: true}, nil
}
func (s *stubGateway) Verify(context.Context, CreditCard, Options) (*Result, error) {
	return &Result{Success: true}, nil
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.Register("merchant-b", &stubGateway{ops: []OperationType{OpPurchase}})
	reg.Register("merchant-a", &stubGateway{ops: []OperationType{OpPurchase, OpRefund}})

	assert.Equal(t, []string{"merchant-a", "merchant-b"}, reg.List())

	gw, err := reg.Get("merchant-a")
	require.NoError(t, err)
	assert.Equal(t, "Stub", gw.Name())

	_, err = reg.Get("nobody")
	require.Error(t, err)
	assert.True(t, HasCode(err, ErrAccountNotFound))

	_, err = reg.GetFor("merchant-a", OpRefund)
	require.NoError(t, err)

	_, err = reg.GetFor("merchant-b", OpRefund)
	require.Error(t, err)
	assert.True(t, HasCode(err, ErrOpNotSupported))
}

func TestRegistryInfo(t *testing.T) {
	reg := NewRegistry()
	reg.Register("merchant-a", &stubGateway{ops: []OperationType{OpPurchase, OpVoid}})

	info, err := reg.Info("merchant-a")
	require.NoError(t, err)
	assert.Equal(t, &GatewayInfo{
		Account:             "merchant-a",
		Provider:            ProviderAirwallex,
		Name:                "Stub",
		Test:                true,
		DefaultCurrency:     "AUD",
		SupportedOperations: []OperationType{OpPurchase, OpVoid},
		SupportedCountries:  []string{"AU"},
	}, info)

	all := reg.AllInfo()
	require.Len(t, all, 1)
	assert.Equal(t, info, all[0])

	_, err = reg.Info("nobody")
	assert.Error(t, err)
}

func TestProviderTypes(t *testing.T) {
	assert.Contains(t, GetAvailableProviders(), ProviderAirwallex)
	assert.True(t, IsProviderSupported(ProviderAirwallex))
	assert.False(t, IsProviderSupported(ProviderType("mpesa")))
}
