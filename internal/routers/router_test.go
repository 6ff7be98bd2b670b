package routers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/haierkeys/bookmark-service/internal/app"
	"github.com/haierkeys/bookmark-service/internal/dao"
	"github.com/haierkeys/bookmark-service/internal/routers/api_router"
	"github.com/haierkeys/bookmark-service/pkg/validator"

	"github.com/creasty/defaults"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T, mutate func(cfg *app.AppConfig)) (*app.App, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &app.AppConfig{}
	require.NoError(t, defaults.Set(cfg))
	cfg.Database.Type = "sqlite"
	cfg.Database.Path = ":memory:"
	cfg.Security.AuthTokenKey = "router-test-secret"
	if mutate != nil {
		mutate(cfg)
	}

	db, err := dao.NewDBEngineWithConfig(cfg.GetDatabaseConfig(), zap.NewNop())
	require.NoError(t, err)

	a, err := app.NewApp(cfg, zap.NewNop(), db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown(context.Background()) })

	uni, err := validator.Setup()
	require.NoError(t, err)

	return a, NewRouter(a, uni)
}

type request struct {
	method  string
	path    string
	token   string
	body    interface{}
	rawBody string
	headers map[string]string
}

func do(t *testing.T, r http.Handler, req request) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	switch {
	case req.rawBody != "":
		body = bytes.NewBufferString(req.rawBody)
	case req.body != nil:
		b, err := json.Marshal(req.body)
		require.NoError(t, err)
		body = bytes.NewBuffer(b)
	default:
		body = &bytes.Buffer{}
	}

	httpReq := httptest.NewRequest(req.method, req.path, body)
	httpReq.Header.Set("Content-Type", "application/json")
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httpReq)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

type errorBody struct {
	Code      int      `json:"code"`
	Message   string   `json:"message"`
	Details   []string `json:"details"`
	TraceID   string   `json:"traceId"`
	Timestamp string   `json:"timestamp"`
}

type bookmarkBody struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"userId"`
	Title       string  `json:"title"`
	Link        string  `json:"link"`
	Description *string `json:"description"`
}

func signup(t *testing.T, r http.Handler, email string) string {
	t.Helper()
	w := do(t, r, request{method: http.MethodPost, path: "/auth/signup", body: map[string]string{
		"email":    email,
		"password": "123",
	}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var token struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, w, &token)
	require.NotEmpty(t, token.AccessToken)
	return token.AccessToken
}

func createBookmark(t *testing.T, r http.Handler, token string, body map[string]interface{}) bookmarkBody {
	t.Helper()
	w := do(t, r, request{method: http.MethodPost, path: "/bookmarks", token: token, body: body})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var b bookmarkBody
	decode(t, w, &b)
	return b
}

func TestAuth(t *testing.T) {
	_, r := newTestApp(t, nil)

	t.Run("signup", func(t *testing.T) {
		signup(t, r, "vlad@gmail.com")
	})

	tests := []struct {
		name     string
		path     string
		body     interface{}
		rawBody  string
		wantCode int
		wantErr  int
	}{
		{"signup empty email", "/auth/signup", map[string]string{"password": "123"}, "", http.StatusBadRequest, 405},
		{"signup empty password", "/auth/signup", map[string]string{"email": "a@b.com"}, "", http.StatusBadRequest, 405},
		{"signup blank password", "/auth/signup", map[string]string{"email": "a@b.com", "password": "   "}, "", http.StatusBadRequest, 405},
		{"signup bad email", "/auth/signup", map[string]string{"email": "not-an-email", "password": "123"}, "", http.StatusBadRequest, 405},
		{"signup no body", "/auth/signup", nil, "", http.StatusBadRequest, 405},
		{"signup malformed body", "/auth/signup", nil, "{", http.StatusBadRequest, 405},
		{"signup duplicate", "/auth/signup", map[string]string{"email": "vlad@gmail.com", "password": "123"}, "", http.StatusForbidden, 511},
		{"login empty email", "/auth/login", map[string]string{"password": "123"}, "", http.StatusBadRequest, 405},
		{"login no body", "/auth/login", nil, "", http.StatusBadRequest, 405},
		{"login wrong password", "/auth/login", map[string]string{"email": "vlad@gmail.com", "password": "1234"}, "", http.StatusForbidden, 512},
		{"login unknown email", "/auth/login", map[string]string{"email": "nobody@gmail.com", "password": "123"}, "", http.StatusForbidden, 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, request{method: http.MethodPost, path: tt.path, body: tt.body, rawBody: tt.rawBody})
			assert.Equal(t, tt.wantCode, w.Code, w.Body.String())

			var e errorBody
			decode(t, w, &e)
			assert.Equal(t, tt.wantErr, e.Code)
			assert.NotEmpty(t, e.Message)
			assert.NotEmpty(t, e.TraceID)
		})
	}

	t.Run("login", func(t *testing.T) {
		w := do(t, r, request{method: http.MethodPost, path: "/auth/login", body: map[string]string{
			"email":    "vlad@gmail.com",
			"password": "123",
		}})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var token struct {
			AccessToken string `json:"access_token"`
		}
		decode(t, w, &token)
		assert.NotEmpty(t, token.AccessToken)
	})
}

func TestSignupDisabled(t *testing.T) {
	_, r := newTestApp(t, func(cfg *app.AppConfig) {
		cfg.User.RegisterIsEnable = false
	})

	w := do(t, r, request{method: http.MethodPost, path: "/auth/signup", body: map[string]string{
		"email":    "vlad@gmail.com",
		"password": "123",
	}})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUsers(t *testing.T) {
	_, r := newTestApp(t, nil)
	token := signup(t, r, "vlad@gmail.com")
	signup(t, r, "other@gmail.com")

	t.Run("me without token", func(t *testing.T) {
		w := do(t, r, request{method: http.MethodGet, path: "/users/me"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var e errorBody
		decode(t, w, &e)
		assert.Equal(t, 505, e.Code)
	})

	t.Run("me with invalid token", func(t *testing.T) {
		w := do(t, r, request{method: http.MethodGet, path: "/users/me", token: "not-a-jwt"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var e errorBody
		decode(t, w, &e)
		assert.Equal(t, 506, e.Code)
	})

	t.Run("me", func(t *testing.T) {
		w := do(t, r, request{method: http.MethodGet, path: "/users/me", token: token})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var body map[string]interface{}
		decode(t, w, &body)
		assert.Equal(t, "vlad@gmail.com", body["email"])
		assert.NotContains(t, body, "hash")
		assert.NotContains(t, body, "password")
	})

	t.Run("edit", func(t *testing.T) {
		w := do(t, r, request{method: http.MethodPatch, path: "/users", token: token, body: map[string]string{
			"firstName": "Vladimir",
			"email":     "vlad2@gmail.com",
		}})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var body map[string]interface{}
		decode(t, w, &body)
		assert.Equal(t, "Vladimir", body["firstName"])
		assert.Equal(t, "vlad2@gmail.com", body["email"])
		assert.Nil(t, body["lastName"])
	})

	t.Run("edit email taken", func(t *testing.T) {
		w := do(t, r, request{method: http.MethodPatch, path: "/users", token: token, body: map[string]string{
			"email": "other@gmail.com",
		}})
		assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	t.Run("edit invalid email", func(t *testing.T) {
		w := do(t, r, request{method: http.MethodPatch, path: "/users", token: token, body: map[string]string{
			"email": "nope",
		}})
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	t.Run("edit without token", func(t *testing.T) {
		w := do(t, r, request{method: http.MethodPatch, path: "/users", body: map[string]string{"firstName": "x"}})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestBookmarks(t *testing.T) {
	_, r := newTestApp(t, nil)
	token := signup(t, r, "vlad@gmail.com")
	otherToken := signup(t, r, "other@gmail.com")

	t.Run("unauthorized", func(t *testing.T) {
		w := do(t, r, request{method: http.MethodGet, path: "/bookmarks"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("empty list", func(t *testing.T) {
		w := do(t, r, request{method: http.MethodGet, path: "/bookmarks", token: token})
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("create validation", func(t *testing.T) {
		bodies := []map[string]interface{}{
			{"link": "https://example.com"},
			{"title": "Docs"},
			{"title": "", "link": "https://example.com"},
			{"title": "  ", "link": "https://example.com"},
		}
		for i, body := range bodies {
			w := do(t, r, request{method: http.MethodPost, path: "/bookmarks", token: token, body: body})
			assert.Equal(t, http.StatusBadRequest, w.Code, "case %d: %s", i, w.Body.String())
		}
	})

	b := createBookmark(t, r, token, map[string]interface{}{
		"title":  "Docs",
		"link":   "https://example.com",
		"userId": 9999,
	})
	require.NotZero(t, b.ID)
	path := fmt.Sprintf("/bookmarks/%d", b.ID)

	t.Run("create ignores owner in body", func(t *testing.T) {
		w := do(t, r, request{method: http.MethodGet, path: "/users/me", token: token})
		var me struct {
			ID int64 `json:"id"`
		}
		decode(t, w, &me)
		assert.Equal(t, me.ID, b.UserID)
		assert.Equal(t, "Docs", b.Title)
		assert.Equal(t, "https://example.com", b.Link)
		assert.Nil(t, b.Description)
	})

	t.Run("list", func(t *testing.T) {
		w := do(t, r, request{method: http.MethodGet, path: "/bookmarks", token: token})
		require.Equal(t, http.StatusOK, w.Code)

		var list []bookmarkBody
		decode(t, w, &list)
		require.Len(t, list, 1)
		assert.Equal(t, b.ID, list[0].ID)
	})

	t.Run("get", func(t *testing.T) {
		w := do(t, r, request{method: http.MethodGet, path: path, token: token})
		require.Equal(t, http.StatusOK, w.Code)

		var got bookmarkBody
		decode(t, w, &got)
		assert.Equal(t, b, got)
	})

	t.Run("other user cannot see it", func(t *testing.T) {
		w := do(t, r, request{method: http.MethodGet, path: path, token: otherToken})
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = do(t, r, request{method: http.MethodGet, path: "/bookmarks", token: otherToken})
		assert.JSONEq(t, `[]`, w.Body.String())

		w = do(t, r, request{method: http.MethodPatch, path: path, token: otherToken, body: map[string]string{"title": "hacked"}})
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = do(t, r, request{method: http.MethodDelete, path: path, token: otherToken})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	notFound := []struct {
		name   string
		method string
		path   string
		body   interface{}
		want   int
	}{
		{"get zero", http.MethodGet, "/bookmarks/0", nil, http.StatusNotFound},
		{"get missing", http.MethodGet, "/bookmarks/424242", nil, http.StatusNotFound},
		{"edit zero", http.MethodPatch, "/bookmarks/0", map[string]string{"title": "x"}, http.StatusNotFound},
		{"delete zero", http.MethodDelete, "/bookmarks/0", nil, http.StatusNotFound},
		{"get bad id", http.MethodGet, "/bookmarks/abc", nil, http.StatusBadRequest},
		{"edit bad id", http.MethodPatch, "/bookmarks/abc", map[string]string{"title": "x"}, http.StatusBadRequest},
		{"delete bad id", http.MethodDelete, "/bookmarks/abc", nil, http.StatusBadRequest},
		{"delete negative id", http.MethodDelete, "/bookmarks/-1", nil, http.StatusBadRequest},
		{"edit blank title", http.MethodPatch, path, map[string]string{"title": " "}, http.StatusBadRequest},
	}
	for _, tt := range notFound {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, request{method: tt.method, path: tt.path, token: token, body: tt.body})
			assert.Equal(t, tt.want, w.Code, w.Body.String())

			var e errorBody
			decode(t, w, &e)
			if tt.want == http.StatusNotFound {
				assert.Equal(t, 520, e.Code)
			} else {
				assert.Equal(t, 405, e.Code)
			}
		})
	}

	t.Run("edit", func(t *testing.T) {
		w := do(t, r, request{method: http.MethodPatch, path: path, token: token, body: map[string]string{"title": "Docs v2"}})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var got bookmarkBody
		decode(t, w, &got)
		assert.Equal(t, b.ID, got.ID)
		assert.Equal(t, b.UserID, got.UserID)
		assert.Equal(t, "Docs v2", got.Title)
		assert.Equal(t, "https://example.com", got.Link)

		w = do(t, r, request{method: http.MethodGet, path: path, token: token})
		decode(t, w, &got)
		assert.Equal(t, "Docs v2", got.Title)
	})

	t.Run("delete", func(t *testing.T) {
		w := do(t, r, request{method: http.MethodDelete, path: path, token: token})
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())

		w = do(t, r, request{method: http.MethodGet, path: path, token: token})
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = do(t, r, request{method: http.MethodGet, path: "/bookmarks", token: token})
		assert.JSONEq(t, `[]`, w.Body.String())
	})
}

func TestTraceAndLang(t *testing.T) {
	_, r := newTestApp(t, nil)
	token := signup(t, r, "vlad@gmail.com")

	w := do(t, r, request{
		method:  http.MethodGet,
		path:    "/bookmarks/77?lang=zh_cn",
		token:   token,
		headers: map[string]string{"X-Trace-ID": "trace-123"},
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "trace-123", w.Header().Get("X-Trace-ID"))

	var e errorBody
	decode(t, w, &e)
	assert.Equal(t, "trace-123", e.TraceID)
	assert.Equal(t, "书签不存在", e.Message)
	assert.NotEmpty(t, e.Timestamp)

	w = do(t, r, request{method: http.MethodPost, path: "/bookmarks", token: token, headers: map[string]string{"lang": "zh_cn"},
		body: map[string]string{"link": "https://example.com"}})
	require.Equal(t, http.StatusBadRequest, w.Code)
	decode(t, w, &e)
	assert.Contains(t, e.Details, "title为必填字段")
}

func TestHealthVersionAndNoRoute(t *testing.T) {
	a, r := newTestApp(t, nil)

	w := do(t, r, request{method: http.MethodGet, path: "/version"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, app.Version, w.Header().Get("X-App-Version"))

	var v map[string]interface{}
	decode(t, w, &v)
	assert.Equal(t, app.Version, v["version"])

	w = do(t, r, request{method: http.MethodGet, path: "/health"})
	require.Equal(t, http.StatusOK, w.Code)
	var h map[string]interface{}
	decode(t, w, &h)
	assert.Equal(t, "healthy", h["status"])
	assert.Equal(t, "connected", h["database"])

	w = do(t, r, request{method: http.MethodGet, path: "/nope"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	var e errorBody
	decode(t, w, &e)
	assert.Equal(t, 404, e.Code)

	require.NoError(t, a.Shutdown(context.Background()))
	w = do(t, r, request{method: http.MethodGet, path: "/health"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	decode(t, w, &h)
	assert.Equal(t, "unhealthy", h["status"])
}

func TestCorsPreflight(t *testing.T) {
	_, r := newTestApp(t, func(cfg *app.AppConfig) {
		cfg.Cors.AllowOrigins = []string{"https://bookmarks.example.com"}
	})

	req := httptest.NewRequest(http.MethodOptions, "/bookmarks", nil)
	req.Header.Set("Origin", "https://bookmarks.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://bookmarks.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/bookmarks", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPrivateRouter(t *testing.T) {
	a, _ := newTestApp(t, nil)

	r := NewPrivateRouterWithLogger("release", zap.NewNop(), "private-secret")

	w := do(t, r, request{method: http.MethodGet, path: "/metrics"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, request{method: http.MethodGet, path: "/metrics", token: "private-secret"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, request{method: http.MethodGet, path: "/pprof/", token: "private-secret"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	api_router.PublishAppVars(a)
	w = do(t, r, request{method: http.MethodGet, path: "/debug/vars", token: "private-secret"})
	require.Equal(t, http.StatusOK, w.Code)
	var vars map[string]interface{}
	decode(t, w, &vars)
	assert.Contains(t, vars, "bookmark")
	assert.Contains(t, vars, "memstats")

	debug := NewPrivateRouterWithLogger("debug", zap.NewNop(), "")
	w = do(t, debug, request{method: http.MethodGet, path: "/pprof/cmdline"})
	assert.Equal(t, http.StatusOK, w.Code)
}
