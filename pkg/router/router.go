package router

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/riple-app/backend/config"
	"github.com/riple-app/backend/internal/model"
	"github.com/riple-app/backend/pkg/authenticator"
	"github.com/riple-app/backend/pkg/errorx"
	"github.com/riple-app/backend/pkg/logger"
	"github.com/riple-app/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)
type MiddlewareFunc func(ctx context.Context) error
type CloserFunc func(ctx context.Context)

type Router struct {
	mux *http.ServeMux

	cfg    config.Configs
	logger logger.Logger
	db     *gorm.DB

	tokenEngine authenticator.TokenEngine[model.AccessToken]
	snowflake   *snowflake.Node

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, l logger.Logger) *Router {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	r := &Router{
		mux:         http.NewServeMux(),
		cfg:         cfg,
		logger:      l,
		db:          db,
		tokenEngine: authenticator.NewTokenEngine[model.AccessToken](cfg.Auth.TokenSecret, cfg.Auth.AccessToken),
		snowflake:   node,
	}

	r.AddCloser(handleResponse())
	return r
}

// Branch returns a router sharing the same mux but with an independent
// middleware chain, so route groups can attach their own verifiers.
func (r *Router) Branch() *Router {
	clone := *r
	clone.befores = append([]MiddlewareFunc{}, r.befores...)
	clone.afters = append([]MiddlewareFunc{}, r.afters...)
	clone.closers = append([]CloserFunc{}, r.closers...)
	return &clone
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodPost, handler))
}

func wrapHandler[Request, Response any](
	r *Router, method string, handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	befores := append([]MiddlewareFunc{}, r.befores...)
	afters := append([]MiddlewareFunc{}, r.afters...)
	closers := append([]CloserFunc{}, r.closers...)

	return func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		ctx = xcontext.WithHTTPRequest(ctx, req)
		ctx = xcontext.WithHTTPWriter(ctx, w)
		ctx = xcontext.WithConfigs(ctx, r.cfg)
		ctx = xcontext.WithLogger(ctx, r.logger)
		ctx = xcontext.WithDB(ctx, r.db)
		ctx = xcontext.WithTokenEngine(ctx, r.tokenEngine)
		ctx = xcontext.WithSnowFlake(ctx, r.snowflake)
		ctx = xcontext.WithRequestHolders(ctx)

		defer func() {
			for _, closer := range closers {
				closer(ctx)
			}
		}()

		if req.Method != method {
			xcontext.SetError(ctx, errorx.New(errorx.BadRequest, "Not supported method %s", req.Method))
			return
		}

		for _, middleware := range befores {
			if err := middleware(ctx); err != nil {
				xcontext.SetError(ctx, err)
				return
			}
		}

		var request Request
		var err error
		switch method {
		case http.MethodGet:
			err = bindQuery(req.URL.Query(), &request)
		case http.MethodPost:
			if req.Body != nil && req.ContentLength != 0 {
				err = json.NewDecoder(req.Body).Decode(&request)
			}
		}
		if err != nil {
			xcontext.SetError(ctx, errorx.New(errorx.BadRequest, "Cannot bind the request"))
			return
		}

		resp, err := handler(ctx, &request)
		if err != nil {
			xcontext.SetError(ctx, err)
			return
		}

		xcontext.SetResponse(ctx, resp)

		for _, middleware := range afters {
			if err := middleware(ctx); err != nil {
				xcontext.SetError(ctx, err)
				return
			}
		}
	}
}
