package base

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"intentpay/internal/provider"

	"github.com/go-playground/validator/v10"
)

// RequestValidator rejects caller mistakes before any provider call is made
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a new request validator
func NewRequestValidator() *RequestValidator {
	v := validator.New()
	// report fields by the keys callers send
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

type purchaseCheck struct {
	ReturnURL string `json:"return_url" validate:"required"`
}

type cardCheck struct {
	Number string `json:"number" validate:"required,numeric"`
	Month  int    `json:"month" validate:"min=1,max=12"`
	Year   int    `json:"year" validate:"min=1"`
}

// ValidatePurchase checks the options a purchase or authorize requires
func (v *RequestValidator) ValidatePurchase(opts provider.Options) error {
	return v.check(purchaseCheck{ReturnURL: strings.TrimSpace(opts.ReturnURL)})
}

// ValidateCard checks the instrument fields every card payment needs
func (v *RequestValidator) ValidateCard(card provider.CreditCard) error {
	return v.check(cardCheck{
		Number: strings.ReplaceAll(card.Number, " ", ""),
		Month:  card.Month,
		Year:   card.Year,
	})
}

// ValidateAuthorization requires a non-blank authorization handle
func (v *RequestValidator) ValidateAuthorization(authorization string) error {
	if err := v.validate.Var(strings.TrimSpace(authorization), "required"); err != nil {
		return provider.UsageError("an authorization value must be provided")
	}
	return nil
}

func (v *RequestValidator) check(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return provider.UsageError(err.Error())
	}
	fe := fieldErrs[0]
	if fe.Tag() == "required" {
		return provider.UsageError("missing required parameter: " + fe.Field())
	}
	return provider.UsageError(fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
}
