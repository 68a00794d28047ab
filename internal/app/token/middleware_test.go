package token_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"accountd/internal/app/token"
)

func protectedHandler(t *testing.T, svc *token.Service, sessions *[]*token.Session) http.Handler {
	t.Helper()

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := token.SessionFromContext(r)
		require.NotNil(t, sess)
		*sessions = append(*sessions, sess)
		w.WriteHeader(http.StatusOK)
	})

	return svc.Middleware()(inner)
}

func TestMiddlewareRejectsMissingOrMalformedHeader(t *testing.T) {
	_, svc, _ := newFixture(t)

	var sessions []*token.Session
	h := protectedHandler(t, svc, &sessions)

	for _, header := range []string{"", "Bearer", "Token abc", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}

	require.Empty(t, sessions)
}

func TestMiddlewareRejectsRevokedToken(t *testing.T) {
	_, svc, u := newFixture(t)
	ctx := context.Background()

	tokenString, err := svc.Generate(ctx, u)
	require.NoError(t, err)
	require.NoError(t, svc.Revoke(ctx, u, tokenString))

	var sessions []*token.Session
	h := protectedHandler(t, svc, &sessions)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Empty(t, sessions)
}

func TestMiddlewareInjectsSession(t *testing.T) {
	_, svc, u := newFixture(t)

	tokenString, err := svc.Generate(context.Background(), u)
	require.NoError(t, err)

	var sessions []*token.Session
	h := protectedHandler(t, svc, &sessions)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, sessions, 1)
	require.Equal(t, u.ID, sessions[0].User.ID)
	require.Equal(t, tokenString, sessions[0].Token)
}
