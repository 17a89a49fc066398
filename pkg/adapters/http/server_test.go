package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/dsl"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/aretw0/wayfinder/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, start string) *wayfinder.Session {
	t.Helper()
	never := func(ctx context.Context) (bool, error) { return false, nil }

	b := dsl.New()
	b.Add("login").Go("home", nil)
	b.Add("home").Go("settings", nil).Go("broken", nil)
	b.Add("settings")
	b.Add("broken").Ready(never)
	screens, err := b.Build()
	require.NoError(t, err)

	opts := []wayfinder.Option{
		wayfinder.WithDefaultTimeout(30 * time.Millisecond),
		wayfinder.WithPollInterval(5 * time.Millisecond),
	}
	if start != "" {
		opts = append(opts, wayfinder.WithStartID(start))
	}
	s, err := wayfinder.New(screens, opts...)
	require.NoError(t, err)
	return s
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestServer_Graph(t *testing.T) {
	h := NewHandler(newSession(t, "login"))

	w := do(t, h, "GET", "/graph", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "graph LR")
	assert.Contains(t, w.Body.String(), "class login current;")
}

func TestServer_Path(t *testing.T) {
	h := NewHandler(newSession(t, "login"))

	w := do(t, h, "GET", "/path?to=settings", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[PathResponse](t, w)
	assert.Equal(t, PathResponse{From: "login", To: "settings", Path: []string{"home", "settings"}, Hops: 2}, resp)

	w = do(t, h, "GET", "/path?from=settings&to=login", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[PathResponse](t, w).Path, "no route yields an empty path")

	assert.Equal(t, http.StatusBadRequest, do(t, h, "GET", "/path", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, "GET", "/path?to=ghost", "").Code)

	unpositioned := NewHandler(newSession(t, ""))
	assert.Equal(t, http.StatusConflict, do(t, unpositioned, "GET", "/path?to=home", "").Code)
}

func TestServer_Goto(t *testing.T) {
	h := NewHandler(newSession(t, "login"))

	w := do(t, h, "POST", "/goto", `{"to":"settings"}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[GotoResponse](t, w)
	assert.True(t, resp.Reached)
	assert.Equal(t, "settings", resp.Position)
	assert.Equal(t, []string{"home", "settings"}, resp.Hops)

	w = do(t, h, "GET", "/position", "")
	assert.Equal(t, PositionResponse{Position: "settings"}, decode[PositionResponse](t, w))

	w = do(t, h, "GET", "/records", "")
	require.Equal(t, http.StatusOK, w.Code)
	records := decode[[]domain.StateRecord](t, w)
	assert.Len(t, records, 2)

	assert.Equal(t, http.StatusBadRequest, do(t, h, "POST", "/goto", `{`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, "POST", "/goto", `{"to":"ghost"}`).Code)
}

func TestServer_GotoFailure(t *testing.T) {
	h := NewHandler(newSession(t, "home"))

	w := do(t, h, "POST", "/goto", `{"to":"broken"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decode[GotoResponse](t, w)
	assert.False(t, resp.Reached)
	assert.Equal(t, "home", resp.Position)
	assert.Empty(t, resp.Hops)
	assert.Contains(t, resp.Error, "not ready")

	unpositioned := NewHandler(newSession(t, ""))
	assert.Equal(t, http.StatusConflict, do(t, unpositioned, "POST", "/goto", `{"to":"home"}`).Code)
}

func TestServer_Sessions(t *testing.T) {
	mgr := session.NewManager(func(ctx context.Context, id string) (ports.Navigator, error) {
		return newSession(t, "login"), nil
	})
	h := NewHandler(nil, WithSessions(mgr))

	w := do(t, h, "POST", "/sessions?id=device-1", "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "device-1", decode[map[string]string](t, w)["id"])
	assert.Equal(t, http.StatusConflict, do(t, h, "POST", "/sessions?id=device-1", "").Code)

	w = do(t, h, "POST", "/sessions/device-1/goto", `{"to":"home"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "home", decode[GotoResponse](t, w).Position)

	assert.Equal(t, []string{"device-1"}, decode[[]string](t, do(t, h, "GET", "/sessions", "")))

	assert.Equal(t, http.StatusNoContent, do(t, h, "DELETE", "/sessions/device-1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, "GET", "/sessions/device-1/position", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, "GET", "/graph", "").Code, "no root navigator")
}

func TestServer_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "wayfinder_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	h := NewHandler(newSession(t, "login"), WithMetrics(reg))
	w := do(t, h, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "wayfinder_test_total 1")
}

func TestServer_CORS(t *testing.T) {
	h := NewHandler(newSession(t, "login"))
	w := do(t, h, "OPTIONS", "/goto", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
