package middleware

import (
	"context"
	"strings"

	"github.com/riple-app/backend/pkg/errorx"
	"github.com/riple-app/backend/pkg/router"
	"github.com/riple-app/backend/pkg/xcontext"
)

// NewAuthVerifier verifies the bearer token of the request and records the
// authenticated user id for the handlers behind it.
func NewAuthVerifier() router.MiddlewareFunc {
	return func(ctx context.Context) error {
		req := xcontext.HTTPRequest(ctx)
		if req == nil {
			return errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		authorization := req.Header.Get("Authorization")
		token, found := strings.CutPrefix(authorization, "Bearer ")
		if !found || token == "" {
			return errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		engine := xcontext.TokenEngine(ctx)
		if engine == nil {
			xcontext.Logger(ctx).Errorf("No token engine in context")
			return errorx.Unknown
		}

		accessToken, err := engine.Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		xcontext.SetRequestUserID(ctx, accessToken.ID)
		return nil
	}
}
