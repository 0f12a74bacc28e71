package airwallex

import (
	"context"
	"errors"
	"sort"
	"testing"

	"intentpay/internal/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionLogsIn(t *testing.T) {
	ft := newFakeTransport()

	s, err := NewSession(context.Background(), ft, "client_abc", "key_xyz")
	require.NoError(t, err)
	assert.Equal(t, "tok_123", s.Token())

	require.Len(t, ft.calls, 1)
	login := ft.calls[0]
	assert.Equal(t, "authentication/login", login.endpoint)
	assert.Empty(t, login.rawBody)
	assert.Equal(t, "client_abc", login.headers["x-client-id"])
	assert.Equal(t, "key_xyz", login.headers["x-api-key"])

	assert.Equal(t, map[string]string{
		"Authorization": "Bearer tok_123",
		"Content-Type":  "application/json",
	}, s.headers())
}

func TestNewSessionFailures(t *testing.T) {
	t.Run("no token", func(t *testing.T) {
		ft := &fakeTransport{replies: map[string][]fakeReply{}}
		ft.reply("authentication/login", `{"code":"credentials_invalid","message":"Access denied"}`)

		_, err := NewSession(context.Background(), ft, "client_abc", "bad")
		require.Error(t, err)
		assert.True(t, provider.HasCode(err, provider.ErrAuthFailed))
		assert.Contains(t, err.Error(), "Access denied")
	})

	t.Run("transport error", func(t *testing.T) {
		boom := errors.New("connection refused")
		ft := &fakeTransport{replies: map[string][]fakeReply{}}
		ft.fail("authentication/login", boom)

		_, err := NewSession(context.Background(), ft, "client_abc", "key_xyz")
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("malformed body", func(t *testing.T) {
		ft := &fakeTransport{replies: map[string][]fakeReply{}}
		ft.reply("authentication/login", `not json`)

		_, err := NewSession(context.Background(), ft, "client_abc", "key_xyz")
		require.Error(t, err)
		assert.True(t, provider.HasCode(err, provider.ErrResponseParse))
	})
}

func TestIDSourceIsUniqueAndOrdered(t *testing.T) {
	src := newIDSource()
	ids := make([]string, 500)
	seen := make(map[string]struct{}, len(ids))
	for i := range ids {
		ids[i] = src.next()
		seen[ids[i]] = struct{}{}
	}
	assert.Len(t, seen, len(ids))
	assert.True(t, sort.StringsAreSorted(ids))
}
