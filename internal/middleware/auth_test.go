package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/riple-app/backend/internal/model"
	"github.com/riple-app/backend/pkg/testutil"
	"github.com/riple-app/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_AuthVerifier_AcceptsValidToken(t *testing.T) {
	ctx := xcontext.WithRequestHolders(testutil.MockContext(t))

	token, err := xcontext.TokenEngine(ctx).Generate("user1",
		model.AccessToken{ID: "user1", Email: "user1@example.com"})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/getMe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	ctx = xcontext.WithHTTPRequest(ctx, req)

	require.NoError(t, NewAuthVerifier()(ctx))
	require.Equal(t, "user1", xcontext.RequestUserID(ctx))
}

func Test_AuthVerifier_RejectsMissingToken(t *testing.T) {
	ctx := xcontext.WithRequestHolders(testutil.MockContext(t))
	ctx = xcontext.WithHTTPRequest(ctx, httptest.NewRequest("GET", "/getMe", nil))

	require.Error(t, NewAuthVerifier()(ctx))
	require.Empty(t, xcontext.RequestUserID(ctx))
}

func Test_AuthVerifier_RejectsGarbageToken(t *testing.T) {
	ctx := xcontext.WithRequestHolders(testutil.MockContext(t))

	req := httptest.NewRequest("GET", "/getMe", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	ctx = xcontext.WithHTTPRequest(ctx, req)

	require.Error(t, NewAuthVerifier()(ctx))
	require.Empty(t, xcontext.RequestUserID(ctx))
}
