package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/riple-app/backend/config"
	"github.com/riple-app/backend/pkg/errorx"
	"github.com/riple-app/backend/pkg/logger"
	"github.com/riple-app/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Ratio float64 `json:"ratio"`
}

type echoResponse struct {
	Name string `json:"name"`
}

func newTestRouter() *Router {
	return New(nil, config.Configs{
		Auth: config.AuthConfigs{TokenSecret: "secret"},
	}, logger.NewLogger(logger.SILENCE))
}

func Test_Router_PostBindsJSONBody(t *testing.T) {
	r := newTestRouter()
	POST(r, "/echo", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Name: req.Name}, nil
	})

	body, _ := json.Marshal(echoRequest{Name: "hello"})
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest("POST", "/echo", bytes.NewReader(body)))

	var resp struct {
		Code int64        `json:"code"`
		Data echoResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, int64(0), resp.Code)
	require.Equal(t, "hello", resp.Data.Name)
}

func Test_Router_GetBindsQuery(t *testing.T) {
	r := newTestRouter()
	GET(r, "/echo", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		require.Equal(t, 3, req.Count)
		require.Equal(t, 1.5, req.Ratio)
		return &echoResponse{Name: req.Name}, nil
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/echo?name=hi&count=3&ratio=1.5", nil))

	var resp struct {
		Code int64        `json:"code"`
		Data echoResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "hi", resp.Data.Name)
}

func Test_Router_ErrorEnvelope(t *testing.T) {
	r := newTestRouter()
	GET(r, "/fail", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return nil, errorx.New(errorx.NotFound, "Not found thing")
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/fail", nil))

	var resp struct {
		Code  int64  `json:"code"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, int64(errorx.NotFound), resp.Code)
	require.Equal(t, "Not found thing", resp.Error)
}

func Test_Router_UnexpectedErrorIsOpaque(t *testing.T) {
	r := newTestRouter()
	GET(r, "/fail", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return nil, context.DeadlineExceeded
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/fail", nil))

	var resp struct {
		Code  int64  `json:"code"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, int64(errorx.Unknown.Code), resp.Code)
	require.Equal(t, errorx.Unknown.Message, resp.Error)
}

func Test_Router_RejectsWrongMethod(t *testing.T) {
	r := newTestRouter()
	POST(r, "/echo", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{}, nil
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/echo", nil))

	var resp struct {
		Code int64 `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, int64(errorx.BadRequest), resp.Code)
}

func Test_Router_BranchIsolatesMiddlewares(t *testing.T) {
	r := newTestRouter()
	blocked := r.Branch()
	blocked.Before(func(ctx context.Context) error {
		return errorx.New(errorx.Unauthenticated, "Blocked")
	})

	GET(r, "/open", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Name: "open"}, nil
	})
	GET(blocked, "/closed", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Name: "closed"}, nil
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/open", nil))
	var openResp struct {
		Code int64 `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &openResp))
	require.Equal(t, int64(0), openResp.Code)

	w = httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/closed", nil))
	var closedResp struct {
		Code int64 `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &closedResp))
	require.Equal(t, int64(errorx.Unauthenticated), closedResp.Code)
}

func Test_Router_HandlerSeesRequestUserID(t *testing.T) {
	r := newTestRouter()
	r.Before(func(ctx context.Context) error {
		xcontext.SetRequestUserID(ctx, "user1")
		return nil
	})

	GET(r, "/me", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Name: xcontext.RequestUserID(ctx)}, nil
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/me", nil))

	var resp struct {
		Data echoResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "user1", resp.Data.Name)
}

func Test_BindQuery_InvalidNumber(t *testing.T) {
	values := url.Values{"count": []string{"abc"}}
	var req echoRequest
	require.Error(t, bindQuery(values, &req))
}
