package signalk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/catalog"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const webappsResponse = `[
  {
    "name": "@signalk/freeboard-sk",
    "version": "2.9.0",
    "description": "Openlayers chart plotter implementation for Signal K",
    "signalk": {"displayName": "Freeboard-SK", "appIcon": "./assets/icons/icon-72x72.png"}
  },
  {
    "name": "@mxtommy/kip",
    "version": "3.0.0",
    "description": "Instrument panel",
    "signalk": {"appIcon": "https://example.com/kip.png"}
  },
  {
    "name": "plain-app",
    "version": "0.1.0"
  }
]`

func newTestClient(t *testing.T, handler http.HandlerFunc) ClientInterface {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	c, err := NewClient(log, &Config{URL: server.URL + "/"})
	require.NoError(t, err)

	return c
}

func TestNewClient_RequiresURL(t *testing.T) {
	_, err := NewClient(logrus.New(), &Config{})
	require.ErrorIs(t, err, ErrURLRequired)
}

func TestClient_Webapps(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, webappsPath, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(webappsResponse))
	})

	apps, err := c.Webapps(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []catalog.ExternalApp{
		{
			Name:        "@signalk/freeboard-sk",
			DisplayName: "Freeboard-SK",
			Description: "Openlayers chart plotter implementation for Signal K",
			Icon:        "/@signalk/freeboard-sk/assets/icons/icon-72x72.png",
			Version:     "2.9.0",
		},
		{
			Name:        "@mxtommy/kip",
			Description: "Instrument panel",
			Icon:        "https://example.com/kip.png",
			Version:     "3.0.0",
		},
		{
			Name:    "plain-app",
			Version: "0.1.0",
		},
	}, apps)
}

func TestClient_WebappsErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantErr: ErrSignalKResponse},
		{name: "malformed body", status: http.StatusOK, body: "{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.Webapps(context.Background())
			require.Error(t, err)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestClient_LoginStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, loginStatusPath, r.URL.Path)
		assert.Equal(t, "JAUTHENTICATION=token", r.Header.Get("Cookie"))
		assert.Empty(t, r.Header.Get("X-Other"), "only credentials are forwarded")

		_, _ = w.Write([]byte(`{"status":"loggedIn","readOnlyAccess":false,"authenticationRequired":true,"username":"skipper","userLevel":"admin"}`))
	})

	header := http.Header{}
	header.Set("Cookie", "JAUTHENTICATION=token")
	header.Set("X-Other", "x")

	status, err := c.LoginStatus(context.Background(), header)
	require.NoError(t, err)
	assert.True(t, status.LoggedIn())
	assert.Equal(t, "admin", status.UserLevel)
	assert.Equal(t, "skipper", status.UserName)
	assert.True(t, status.AuthenticationRequired)
}
