package provider

// GetAvailableProviders returns a list of all available provider types
func GetAvailableProviders() []ProviderType {
	return []ProviderType{
		ProviderAirwallex,
	}
}

// IsProviderSupported checks if a provider type is supported
func IsProviderSupported(providerType ProviderType) bool {
	for _, available := range GetAvailableProviders() {
		if available == providerType {
			return true
		}
	}
	return false
}
