package middlewarex

import (
	"context"
	"net/http"

	"intentpay/internal/provider"

	"github.com/go-chi/chi/v5"
)

type ctxKey string

const (
	ctxAccount ctxKey = "account"
)

func WithAccount(ctx context.Context, account string) context.Context {
	return context.WithValue(ctx, ctxAccount, account)
}

func Account(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxAccount).(string)
	return v, ok
}

// ResolveAccount rejects requests for accounts with no registered gateway and
// stores the account name in the request context.
func ResolveAccount(reg *provider.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account := chi.URLParam(r, "account")
			if _, err := reg.Get(account); err != nil {
				http.Error(w, "unknown account", http.StatusNotFound)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithAccount(r.Context(), account)))
		})
	}
}
