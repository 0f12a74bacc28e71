package provider

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
)

// Registry holds one gateway per merchant account. Each gateway owns its own
// credential session, so accounts never share a token.
type Registry struct {
	gateways map[string]Gateway
	mu       sync.RWMutex
}

// NewRegistry creates an empty gateway registry
func NewRegistry() *Registry {
	return &Registry{
		gateways: make(map[string]Gateway),
	}
}

// Register adds or replaces the gateway serving account
func (r *Registry) Register(account string, gateway Gateway) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.gateways[account] = gateway
	log.Info().
		Str("account", account).
		Str("provider", string(gateway.Type())).
		Bool("test", gateway.Test()).
		Strs("operations", operationTypesToStrings(gateway.SupportedOperations())).
		Msg("registered payment gateway")
}

// Get returns the gateway registered for account
func (r *Registry) Get(account string) (Gateway, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	gateway, ok := r.gateways[account]
	if !ok {
		return nil, &ProviderError{
			Code:    ErrAccountNotFound,
			Message: fmt.Sprintf("no gateway registered for account %s", account),
		}
	}
	return gateway, nil
}

// GetFor returns the gateway for account after checking it supports op
func (r *Registry) GetFor(account string, op OperationType) (Gateway, error) {
	gateway, err := r.Get(account)
	if err != nil {
		return nil, err
	}
	if !Supports(gateway, op) {
		return nil, &ProviderError{
			Code:    ErrOpNotSupported,
			Message: fmt.Sprintf("gateway %s does not support %s", gateway.Name(), op),
		}
	}
	return gateway, nil
}

// List returns all registered account names in sorted order
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accounts := make([]string, 0, len(r.gateways))
	for account := range r.gateways {
		accounts = append(accounts, account)
	}
	sort.Strings(accounts)
	return accounts
}

// Info returns metadata about the gateway registered for account
func (r *Registry) Info(account string) (*GatewayInfo, error) {
	gateway, err := r.Get(account)
	if err != nil {
		return nil, err
	}
	return newGatewayInfo(account, gateway), nil
}

// AllInfo returns metadata about every registered gateway
func (r *Registry) AllInfo() []*GatewayInfo {
	infos := make([]*GatewayInfo, 0)
	for _, account := range r.List() {
		if info, err := r.Info(account); err == nil {
			infos = append(infos, info)
		}
	}
	return infos
}

// GatewayInfo contains metadata about a registered gateway
type GatewayInfo struct {
	Account             string          `json:"account"`
	Provider            ProviderType    `json:"provider"`
	Name                string          `json:"name"`
	Test                bool            `json:"test"`
	DefaultCurrency     string          `json:"default_currency"`
	SupportedOperations []OperationType `json:"supported_operations"`
	SupportedCountries  []string        `json:"supported_countries"`
}

func newGatewayInfo(account string, gateway Gateway) *GatewayInfo {
	return &GatewayInfo{
		Account:             account,
		Provider:            gateway.Type(),
		Name:                gateway.Name(),
		Test:                gateway.Test(),
		DefaultCurrency:     gateway.DefaultCurrency(),
		SupportedOperations: gateway.SupportedOperations(),
		SupportedCountries:  gateway.SupportedCountries(),
	}
}

// Supports checks if a gateway supports a specific operation
func Supports(gateway Gateway, operation OperationType) bool {
	for _, op := range gateway.SupportedOperations() {
		if op == operation {
			return true
		}
	}
	return false
}

// operationTypesToStrings converts operation types to strings for logging
func operationTypesToStrings(ops []OperationType) []string {
	var strs []string
	for _, op := range ops {
		strs = append(strs, string(op))
	}
	return strs
}
