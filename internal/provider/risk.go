package provider

// AVSResult wraps the address verification code returned by the card network.
// An empty Code means the provider returned no result.
type AVSResult struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// CVVResult wraps the card verification code check outcome.
type CVVResult struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

var avsMessages = map[string]string{
	"A": "Street address matches, but postal code does not match.",
	"B": "Street address matches, but postal code not verified.",
	"C": "Street address and postal code do not match.",
	"D": "Street address and postal code match.",
	"E": "AVS data is invalid or AVS is not allowed for this card type.",
	"F": "Card member's name does not match, but billing postal code matches.",
	"G": "Non-U.S. issuing bank does not support AVS.",
	"H": "Card member's name does not match. Street address and postal code match.",
	"I": "Address not verified.",
	"K": "Card member's name matches but billing address and billing postal code do not match.",
	"L": "Card member's name and billing postal code match, but billing address does not match.",
	"M": "Street address and postal code match.",
	"N": "Street address and postal code do not match.",
	"O": "Card member's name and billing address match, but billing postal code does not match.",
	"P": "Postal code matches, but street address not verified.",
	"R": "System unavailable.",
	"S": "U.S.-issuing bank does not support AVS.",
	"T": "Card member's name does not match, but street address matches.",
	"U": "Address information unavailable.",
	"V": "Card member's name, billing address, and billing postal code match.",
	"W": "Street address does not match, but 9-digit postal code matches.",
	"X": "Street address and 9-digit postal code match.",
	"Y": "Street address and 5-digit postal code match.",
	"Z": "Street address does not match, but 5-digit postal code matches.",
}

var cvvMessages = map[string]string{
	"D": "CVV check flagged transaction as suspicious",
	"I": "CVV failed data validation check",
	"M": "CVV matches",
	"N": "CVV does not match",
	"P": "CVV not processed",
	"S": "CVV should have been present",
	"U": "CVV request unable to be processed by issuer",
	"X": "CVV check not supported for card",
}

// NewAVSResult wraps code; unknown codes are kept with an empty message.
func NewAVSResult(code string) AVSResult {
	return AVSResult{Code: code, Message: avsMessages[code]}
}

func NewCVVResult(code string) CVVResult {
	return CVVResult{Code: code, Message: cvvMessages[code]}
}
