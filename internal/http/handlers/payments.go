package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	middlewarex "intentpay/internal/http/middleware"
	"intentpay/internal/infra/metrics"
	"intentpay/internal/provider"
	"intentpay/internal/provider/base"

	"github.com/rs/zerolog/log"
)

const (
	// providerTimeout bounds one logical operation, setup and confirm included.
	providerTimeout = 60 * time.Second

	maxBodyBytes = 1 << 20
)

type operationReq struct {
	Amount        int64                `json:"amount"`
	Currency      string               `json:"currency,omitempty"`
	Card          *provider.CreditCard `json:"card,omitempty"`
	Authorization string               `json:"authorization,omitempty"`
	Options       provider.Options     `json:"options"`
}

type errorResp struct {
	Error provider.ProviderError `json:"error"`
}

// Operation serves one gateway operation for the account resolved by
// middlewarex.ResolveAccount.
func Operation(reg *provider.Registry, op provider.OperationType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account, ok := middlewarex.Account(r.Context())
		if !ok {
			http.Error(w, "account not found", http.StatusNotFound)
			return
		}

		gw, err := reg.GetFor(account, op)
		if err != nil {
			writeError(w, err)
			return
		}

		var in operationReq
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), providerTimeout)
		defer cancel()

		res, err := dispatch(ctx, gw, op, in)
		if err != nil {
			metrics.IncOperation(account, string(op), metrics.OutcomeError)
			log.Error().Err(err).
				Str("account", account).
				Str("operation", string(op)).
				Msg("gateway operation failed")
			writeError(w, err)
			return
		}

		outcome := metrics.OutcomeSuccess
		if !res.Success {
			outcome = metrics.OutcomeDeclined
		}
		metrics.IncOperation(account, string(op), outcome)
		log.Info().
			Str("account", account).
			Str("operation", string(op)).
			Bool("success", res.Success).
			Str("message", res.Message).
			Str("authorization", res.Authorization).
			Str("error_code", res.ErrorCode).
			Msg("gateway operation completed")

		writeJSON(w, http.StatusOK, res)
	}
}

func dispatch(ctx context.Context, gw provider.Gateway, op provider.OperationType, in operationReq) (*provider.Result, error) {
	money := provider.Money{Cents: in.Amount, Currency: in.Currency}
	switch op {
	case provider.OpPurchase, provider.OpAuthorize, provider.OpVerify:
		if in.Card == nil {
			return nil, provider.UsageError("missing required parameter: card")
		}
	}

	switch op {
	case provider.OpPurchase:
		return gw.Purchase(ctx, money, *in.Card, in.Options)
	case provider.OpAuthorize:
		return gw.Authorize(ctx, money, *in.Card, in.Options)
	case provider.OpCapture:
		return gw.Capture(ctx, money, in.Authorization, in.Options)
	case provider.OpRefund:
		return gw.Refund(ctx, money, in.Authorization, in.Options)
	case provider.OpVoid:
		return gw.Void(ctx, in.Authorization, in.Options)
	case provider.OpVerify:
		opts := in.Options
		if opts.Currency == "" {
			opts.Currency = in.Currency
		}
		return gw.Verify(ctx, *in.Card, opts)
	default:
		return nil, &provider.ProviderError{Code: provider.ErrOpNotSupported, Message: "unknown operation " + string(op)}
	}
}

// ListAccounts returns metadata for every registered gateway account.
func ListAccounts(reg *provider.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": reg.AllInfo()})
	}
}

// statusFor maps a gateway error onto an HTTP status.
func statusFor(err error) int {
	var respErr *base.ResponseError
	if errors.As(err, &respErr) {
		return http.StatusBadGateway
	}
	var pe *provider.ProviderError
	if !errors.As(err, &pe) {
		return http.StatusBadGateway
	}
	switch pe.Code {
	case provider.ErrInvalidArgument, provider.ErrOpNotSupported:
		return http.StatusBadRequest
	case provider.ErrAccountNotFound:
		return http.StatusNotFound
	case provider.ErrSetupFailed:
		return http.StatusUnprocessableEntity
	case provider.ErrRequestFailed, provider.ErrResponseParse, provider.ErrAuthFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	var pe *provider.ProviderError
	body := errorResp{Error: provider.ProviderError{Code: provider.ErrUnknownError, Message: err.Error()}}
	if errors.As(err, &pe) {
		body.Error = *pe
	}
	var respErr *base.ResponseError
	if errors.As(err, &respErr) {
		body.Error = provider.ProviderError{Code: provider.ErrRequestFailed, Message: respErr.Error()}
	}
	writeJSON(w, statusFor(err), body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
