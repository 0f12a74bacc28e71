package airwallex

import (
	"fmt"
	"strconv"
	"strings"

	"intentpay/internal/provider"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const setupSuffix = "_setup"

// correlation holds the identifiers sent with one logical operation.
type correlation struct {
	RequestID       string
	MerchantOrderID string
}

// setup derives the ids of the intent-creation sub-call from its parent.
func (c correlation) setup() correlation {
	return correlation{
		RequestID:       c.RequestID + setupSuffix,
		MerchantOrderID: c.MerchantOrderID + setupSuffix,
	}
}

func correlationFor(opts provider.Options, newID func() string) correlation {
	c := correlation{RequestID: opts.RequestID, MerchantOrderID: opts.MerchantOrderID}
	if c.RequestID == "" {
		c.RequestID = newID()
	}
	if c.MerchantOrderID == "" {
		c.MerchantOrderID = opts.OrderID
	}
	if c.MerchantOrderID == "" {
		c.MerchantOrderID = newID()
	}
	return c
}

// currencyFor picks the caller override, then the money's own currency, then fallback.
func currencyFor(money provider.Money, opts provider.Options, fallback string) string {
	for _, c := range []string{opts.Currency, money.Currency, fallback} {
		if c = strings.TrimSpace(c); c != "" {
			return strings.ToUpper(c)
		}
	}
	return ""
}

// localizedAmount converts cents into the integer amount expected for code.
// Two- and three-decimal currencies keep the value; zero-decimal currencies
// drop the cents with banker's rounding.
func localizedAmount(cents int64, code string) int64 {
	if minorUnits(code) != 0 {
		return cents
	}
	return decimal.New(cents, -2).RoundBank(0).IntPart()
}

// minorUnits returns the standard number of decimals for an ISO 4217 code.
// Unknown codes are treated as two-decimal currencies.
func minorUnits(code string) int {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return 2
	}
	scale, _ := currency.Standard.Rounding(unit)
	return scale
}

func mapCard(cc provider.CreditCard, opts provider.Options) paymentMethod {
	c := card{
		ExpiryMonth: fmt.Sprintf("%02d", cc.Month),
		ExpiryYear:  expiryYear(cc.Year),
		Number:      strings.ReplaceAll(cc.Number, " ", ""),
		Name:        cc.HolderName(),
		CVC:         cc.VerificationValue,
		Billing:     mapBilling(cc, opts),
	}
	return paymentMethod{Type: "card", Card: c}
}

func expiryYear(year int) string {
	if year < 100 {
		year += 2000
	}
	return strconv.Itoa(year)
}

// mapBilling is only populated when the cardholder first and last name are known.
func mapBilling(cc provider.CreditCard, opts provider.Options) *billing {
	if !cc.HasNameInfo() {
		return nil
	}
	b := &billing{
		Email:     opts.Email,
		Phone:     opts.Phone,
		FirstName: cc.FirstName,
		LastName:  cc.LastName,
	}
	if hasRequiredAddressInfo(opts.BillingAddress) {
		a := mapAddress(*opts.BillingAddress)
		b.Address = &a
	}
	return b
}

func hasRequiredAddressInfo(a *provider.Address) bool {
	return a != nil && a.Address1 != "" && a.Country != ""
}

func mapAddress(a provider.Address) address {
	return address{
		CountryCode: a.Country,
		Postcode:    a.Zip,
		City:        a.City,
		State:       a.State,
		Street:      a.Address1,
	}
}

func mapShipping(a *provider.Address) *order {
	if a == nil {
		return nil
	}
	first, last := splitNames(a.Name)
	return &order{Shipping: shipping{
		FirstName:   first,
		LastName:    last,
		PhoneNumber: a.Phone,
		Address:     mapAddress(*a),
	}}
}

// splitNames treats the last token as the last name and the rest as the first name.
func splitNames(full string) (first, last string) {
	names := strings.Fields(full)
	if len(names) == 0 {
		return "", ""
	}
	return strings.Join(names[:len(names)-1], " "), names[len(names)-1]
}

func mapStoredCredential(sc *provider.StoredCredential) *externalRecurringData {
	if sc == nil {
		return nil
	}
	data := &externalRecurringData{
		OriginalTransactionID: sc.NetworkTransactionID,
		TriggeredBy:           "merchant",
	}
	switch sc.ReasonType {
	case provider.ReasonRecurring, provider.ReasonInstallment:
		data.MerchantTriggerReason = "scheduled"
	case provider.ReasonUnscheduled:
		data.MerchantTriggerReason = "unscheduled"
	}
	if sc.Initiator == provider.InitiatorCardholder {
		data.TriggeredBy = "customer"
	}
	return data
}

func mapCaptureOptions(opts provider.Options) *paymentMethodOptions {
	if !opts.AuthorizationOnly() {
		return nil
	}
	return &paymentMethodOptions{Card: cardOptions{AutoCapture: false}}
}
