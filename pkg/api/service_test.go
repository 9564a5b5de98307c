package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/auth"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/settings"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/storage"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errAuthDown = errors.New("connection refused")

type failingAuthenticator struct{}

func (failingAuthenticator) PrivilegeLevel(_ context.Context, _ http.Header) (auth.Level, error) {
	return auth.LevelNone, errAuthDown
}

func newTestService(t *testing.T, authenticator auth.Authenticator, frontend http.Handler) *service {
	t.Helper()

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	store := settings.NewStore(log, storage.NewMemory(nil))

	cfg := &Config{
		Enabled: true,
		Addr:    ":0",
		Prefix:  "/plugins/fairwindsk-settings/",
	}

	svc, ok := NewService(cfg, store, nil, authenticator, frontend, log).(*service)
	require.True(t, ok)

	return svc
}

func send(t *testing.T, svc *service, method, path, body string) (int, string) {
	t.Helper()

	var reader io.Reader = http.NoBody
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := svc.buildApp().Test(req)
	require.NoError(t, err)

	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(raw)
}

func TestAdminGate(t *testing.T) {
	tests := []struct {
		name          string
		authenticator auth.Authenticator
		method        string
		path          string
		body          string
		wantStatus    int
	}{
		{
			name:          "anonymous read passes",
			authenticator: auth.Static(auth.LevelNone),
			method:        http.MethodGet,
			path:          "/plugins/fairwindsk-settings/config",
			wantStatus:    http.StatusOK,
		},
		{
			name:          "read-only write is forbidden",
			authenticator: auth.Static(auth.LevelReadOnly),
			method:        http.MethodPatch,
			path:          "/plugins/fairwindsk-settings/config",
			body:          `{"main":{"virtualKeyboard":true}}`,
			wantStatus:    http.StatusForbidden,
		},
		{
			name:          "readwrite is not enough",
			authenticator: auth.Static(auth.LevelReadWrite),
			method:        http.MethodPost,
			path:          "/plugins/fairwindsk-settings/config/reset",
			wantStatus:    http.StatusForbidden,
		},
		{
			name:          "admin write passes",
			authenticator: auth.Static(auth.LevelAdmin),
			method:        http.MethodPatch,
			path:          "/plugins/fairwindsk-settings/config",
			body:          `{"main":{"virtualKeyboard":true}}`,
			wantStatus:    http.StatusOK,
		},
		{
			name:          "authenticator failure",
			authenticator: failingAuthenticator{},
			method:        http.MethodPut,
			path:          "/plugins/fairwindsk-settings/config",
			body:          `{}`,
			wantStatus:    http.StatusServiceUnavailable,
		},
		{
			name:          "authenticator not consulted for reads",
			authenticator: failingAuthenticator{},
			method:        http.MethodGet,
			path:          "/plugins/fairwindsk-settings/folders",
			wantStatus:    http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, tt.authenticator, nil)

			status, _ := send(t, svc, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestErrorHandlerRendersJSON(t *testing.T) {
	svc := newTestService(t, auth.Static(auth.LevelReadOnly), nil)

	status, body := send(t, svc, http.MethodDelete, "/plugins/fairwindsk-settings/folders/navigation", "")
	require.Equal(t, http.StatusForbidden, status)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &decoded))
	assert.Equal(t, "admin privileges required", decoded["error"])
	assert.InDelta(t, float64(http.StatusForbidden), decoded["code"], 0)
}

func TestFrontendFallback(t *testing.T) {
	var seen string

	frontend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.URL.Path
		_, _ = w.Write([]byte("editor"))
	})

	svc := newTestService(t, auth.Static(auth.LevelAdmin), frontend)

	status, body := send(t, svc, http.MethodGet, "/plugins/fairwindsk-settings/index.html", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "editor", body)
	assert.Equal(t, "/index.html", seen)

	// API routes take precedence over the editor
	status, body = send(t, svc, http.MethodGet, "/plugins/fairwindsk-settings/config/default", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"folders"`)
}

func TestFrontendBarePrefixRedirect(t *testing.T) {
	frontend := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("editor"))
	})

	app := newTestService(t, auth.Static(auth.LevelAdmin), frontend).buildApp()

	tests := []struct {
		name         string
		path         string
		wantStatus   int
		wantLocation string
	}{
		{
			name:         "bare prefix",
			path:         "/plugins/fairwindsk-settings",
			wantStatus:   http.StatusMovedPermanently,
			wantLocation: "/plugins/fairwindsk-settings/",
		},
		{
			name:       "prefix with slash",
			path:       "/plugins/fairwindsk-settings/",
			wantStatus: http.StatusOK,
		},
		{
			name:       "nested editor path",
			path:       "/plugins/fairwindsk-settings/editor/units",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, http.NoBody))
			require.NoError(t, err)

			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantLocation, resp.Header.Get("Location"))
		})
	}
}

func TestStartDisabled(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	svc := NewService(&Config{Enabled: false}, nil, nil, auth.Static(auth.LevelAdmin), nil, log)

	require.NoError(t, svc.Start(context.Background()))
	require.NoError(t, svc.Stop())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:   "disabled skips checks",
			config: Config{Enabled: false},
		},
		{
			name:   "valid",
			config: Config{Enabled: true, Addr: ":3001", Prefix: "/plugins/fairwindsk-settings"},
		},
		{
			name:   "empty prefix serves from root",
			config: Config{Enabled: true, Addr: ":3001"},
		},
		{
			name:    "missing address",
			config:  Config{Enabled: true},
			wantErr: ErrAPIAddrRequired,
		},
		{
			name:    "relative prefix",
			config:  Config{Enabled: true, Addr: ":3001", Prefix: "plugins"},
			wantErr: ErrInvalidPrefix,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestRoutePrefix(t *testing.T) {
	cfg := &Config{Prefix: "/plugins/fairwindsk-settings/"}
	assert.Equal(t, "/plugins/fairwindsk-settings", cfg.RoutePrefix())

	cfg = &Config{Prefix: "/"}
	assert.Empty(t, cfg.RoutePrefix())
}
