package airwallex

import (
	"context"
	"encoding/json"
	"fmt"

	"intentpay/internal/provider"

	"github.com/rs/zerolog/log"
)

// Session holds the bearer token obtained by a single login. The token is
// written once in NewSession and only read afterwards; there is no refresh, so
// an expired token surfaces as a failure of the next provider call.
type Session struct {
	token string
}

// NewSession logs in with the client id and API key.
func NewSession(ctx context.Context, t Transport, clientID, apiKey string) (*Session, error) {
	headers := map[string]string{
		"Content-Type": "application/json",
		"x-client-id":  clientID,
		"x-api-key":    apiKey,
	}
	body, err := t.Post(ctx, endpointPath(actionLogin, ""), nil, headers)
	if err != nil {
		return nil, fmt.Errorf("airwallex login: %w", err)
	}

	var out loginResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &provider.ProviderError{
			Code:        provider.ErrResponseParse,
			Message:     "failed to parse login response",
			ProviderErr: err.Error(),
		}
	}
	if out.Token == "" {
		return nil, &provider.ProviderError{
			Code:        provider.ErrAuthFailed,
			Message:     "login returned no token",
			ProviderErr: Scrub(string(body)),
		}
	}

	log.Info().
		Str("provider", "airwallex").
		Str("expires_at", out.ExpiresAt).
		Msg("airwallex session established")

	return &Session{token: out.Token}, nil
}

// Token returns the bearer token for this session.
func (s *Session) Token() string {
	return s.token
}

func (s *Session) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + s.token,
		"Content-Type":  "application/json",
	}
}
