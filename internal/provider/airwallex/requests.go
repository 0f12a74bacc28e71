package airwallex

// Request bodies, one type per endpoint.

type createIntentRequest struct {
	RequestID       string `json:"request_id"`
	MerchantOrderID string `json:"merchant_order_id"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	Descriptor      string `json:"descriptor,omitempty"`
	Order           *order `json:"order,omitempty"`
}

type confirmIntentRequest struct {
	RequestID             string                 `json:"request_id"`
	MerchantOrderID       string                 `json:"merchant_order_id"`
	ReturnURL             string                 `json:"return_url"`
	PaymentMethod         paymentMethod          `json:"payment_method"`
	Descriptor            string                 `json:"descriptor,omitempty"`
	ExternalRecurringData *externalRecurringData `json:"external_recurring_data,omitempty"`
	PaymentMethodOptions  *paymentMethodOptions  `json:"payment_method_options,omitempty"`
}

type captureRequest struct {
	RequestID       string `json:"request_id"`
	MerchantOrderID string `json:"merchant_order_id"`
	Amount          int64  `json:"amount"`
}

type refundRequest struct {
	PaymentIntentID string `json:"payment_intent_id"`
	Amount          int64  `json:"amount"`
	RequestID       string `json:"request_id"`
	MerchantOrderID string `json:"merchant_order_id"`
}

type cancelRequest struct {
	RequestID       string `json:"request_id"`
	MerchantOrderID string `json:"merchant_order_id"`
}

type paymentMethod struct {
	Type string `json:"type"`
	Card card   `json:"card"`
}

type card struct {
	ExpiryMonth string   `json:"expiry_month"`
	ExpiryYear  string   `json:"expiry_year"`
	Number      string   `json:"number"`
	Name        string   `json:"name"`
	CVC         string   `json:"cvc,omitempty"`
	Billing     *billing `json:"billing,omitempty"`
}

type billing struct {
	Email     string   `json:"email,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Address   *address `json:"address,omitempty"`
}

// address is shared by billing and shipping. Shipping always sends the object,
// even when every field is empty.
type address struct {
	CountryCode string `json:"country_code,omitempty"`
	Postcode    string `json:"postcode,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Street      string `json:"street,omitempty"`
}

type order struct {
	Shipping shipping `json:"shipping"`
}

type shipping struct {
	FirstName   string  `json:"first_name,omitempty"`
	LastName    string  `json:"last_name,omitempty"`
	PhoneNumber string  `json:"phone_number,omitempty"`
	Address     address `json:"address"`
}

type externalRecurringData struct {
	MerchantTriggerReason string `json:"merchant_trigger_reason,omitempty"`
	OriginalTransactionID string `json:"original_transaction_id"`
	TriggeredBy           string `json:"triggered_by"`
}

type paymentMethodOptions struct {
	Card cardOptions `json:"card"`
}

type cardOptions struct {
	AutoCapture bool `json:"auto_capture"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}
