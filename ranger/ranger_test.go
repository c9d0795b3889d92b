package ranger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/vouch"
	"github.com/xy-planning-network/vouch/http/extract"
	"github.com/xy-planning-network/vouch/http/middleware"
	"github.com/xy-planning-network/vouch/http/resp"
	"github.com/xy-planning-network/vouch/http/router"
	"github.com/xy-planning-network/vouch/internal/config"
	"github.com/xy-planning-network/vouch/logger"
	"github.com/xy-planning-network/vouch/ranger"
)

type testUser struct {
	Name string `json:"name" validate:"max=3"`
}

func newTestRanger(t *testing.T, cfg *config.Config, opts ...ranger.RangerOption) (*ranger.Ranger, *bytes.Buffer) {
	t.Helper()

	b := new(bytes.Buffer)
	l := logger.New(logger.WithLogger(log.New(b, "", 0)), logger.WithLevel(logger.LogLevelDebug))

	rng, err := ranger.New(cfg, append([]ranger.RangerOption{ranger.WithLogger(l)}, opts...)...)
	require.Nil(t, err)

	return rng, b
}

func TestNew(t *testing.T) {
	t.Run("Nil-Config", func(t *testing.T) {
		// Act
		rng, err := ranger.New(nil)

		// Assert
		require.ErrorIs(t, err, vouch.ErrBadConfig)
		require.Nil(t, rng)
	})

	t.Run("Invalid-Config", func(t *testing.T) {
		// Arrange
		cfg := config.Default()
		cfg.Port = 0

		// Act
		rng, err := ranger.New(cfg)

		// Assert
		require.ErrorIs(t, err, vouch.ErrBadConfig)
		require.Nil(t, rng)
	})

	t.Run("Invalid-Option", func(t *testing.T) {
		// Act
		rng, err := ranger.New(config.Default(), ranger.WithServer(nil))

		// Assert
		require.ErrorIs(t, err, vouch.ErrBadConfig)
		require.Nil(t, rng)
	})

	t.Run("Defaults", func(t *testing.T) {
		// Act
		rng, err := ranger.New(config.Default())

		// Assert
		require.Nil(t, err)
		require.NotNil(t, rng.Responder)
		require.NotNil(t, rng.Router)
		require.NotNil(t, rng.EmitExtractor())
		require.NotNil(t, rng.EmitLogger())
		require.Equal(t, config.Default(), rng.EmitConfig())
	})
}

func TestRangerHandler(t *testing.T) {
	// Arrange
	rng, b := newTestRanger(t, config.Default())
	ex := rng.EmitExtractor()
	rng.Router.Handle(router.Route{
		Path:   "/users",
		Method: http.MethodPost,
		Handler: extract.HandleBody(ex, func(w http.ResponseWriter, r *http.Request, body extract.Body[testUser]) {
			require.Nil(t, rng.Json(w, r, resp.Code(http.StatusCreated), resp.Data(body.Get())))
		}),
	})

	h := rng.Handler()

	t.Run("Accepted", func(t *testing.T) {
		// Arrange
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"abc"}`))
		r.Header.Set("Content-Type", "application/json")

		// Act
		h.ServeHTTP(w, r)

		// Assert
		require.Equal(t, http.StatusCreated, w.Code)
		require.JSONEq(t, `{"data":{"name":"abc"}}`, w.Body.String())
		require.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		require.Contains(t, b.String(), "POST /users 201")
	})

	t.Run("Rejected", func(t *testing.T) {
		// Arrange
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"taro"}`))
		r.Header.Set("Content-Type", "application/json")

		// Act
		h.ServeHTTP(w, r)

		// Assert
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		require.JSONEq(
			t,
			`{"errors":[],"properties":{"name":{"errors":["The length of the value must be <= 3."]}}}`,
			w.Body.String(),
		)
	})

	t.Run("Not-Found", func(t *testing.T) {
		// Arrange
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/missing", nil)

		// Act
		h.ServeHTTP(w, r)

		// Assert
		require.Equal(t, http.StatusNotFound, w.Code)

		var body map[string]any
		require.Nil(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Contains(t, body, "data")
	})

	t.Run("Method-Not-Allowed", func(t *testing.T) {
		// Arrange
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodDelete, "/users", nil)

		// Act
		h.ServeHTTP(w, r)

		// Assert
		require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestRangerHandlerCORS(t *testing.T) {
	// Arrange
	cfg := config.Default()
	cfg.CORSOrigin = "https://example.com"
	rng, _ := newTestRanger(t, cfg)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodOptions, "/users", nil)
	r.Header.Set("Origin", "https://example.com")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)

	// Act
	rng.Handler().ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "https://example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRangerGuide(t *testing.T) {
	t.Run("Cancel", func(t *testing.T) {
		// Arrange
		rng, b := newTestRanger(t, config.Default(), ranger.WithServer(&http.Server{Addr: "127.0.0.1:0"}))
		errCh := make(chan error, 1)

		// Act
		rng.Cancel()()
		go func() { errCh <- rng.Guide() }()

		// Assert
		require.Nil(t, <-errCh)
		require.Contains(t, b.String(), "web server shutdown successfully")
	})

	t.Run("Parent-Context", func(t *testing.T) {
		// Arrange
		ctx, cancel := context.WithCancel(context.Background())
		rng, _ := newTestRanger(
			t,
			config.Default(),
			ranger.WithContext(ctx),
			ranger.WithServer(&http.Server{Addr: "127.0.0.1:0"}),
		)
		errCh := make(chan error, 1)

		// Act
		go func() { errCh <- rng.Guide() }()
		cancel()

		// Assert
		require.Nil(t, <-errCh)
	})

	t.Run("Address-In-Use", func(t *testing.T) {
		// Arrange
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.Nil(t, err)
		defer ln.Close()

		rng, _ := newTestRanger(t, config.Default(), ranger.WithServer(&http.Server{Addr: ln.Addr().String()}))

		// Act
		err = rng.Guide()

		// Assert
		require.ErrorContains(t, err, "could not listen")
	})
}
