package middleware

import (
	"context"

	"github.com/riple-app/backend/pkg/router"
	"github.com/riple-app/backend/pkg/xcontext"
)

// Logger records every finished request with its outcome. Registered as a
// closer so it also sees requests that failed in a middleware.
func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		if req == nil {
			return
		}

		if err := xcontext.GetError(ctx); err != nil {
			xcontext.Logger(ctx).Warnf("%s %s failed: %v", req.Method, req.URL.Path, err)
			return
		}

		xcontext.Logger(ctx).Infof("%s %s done", req.Method, req.URL.Path)
	}
}
