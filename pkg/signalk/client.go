package signalk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/catalog"
	"github.com/sirupsen/logrus"
)

// ErrSignalKResponse is returned for non-200 responses
var ErrSignalKResponse = errors.New("signalk server error")

const (
	webappsPath     = "/skServer/webapps"
	loginStatusPath = "/skServer/loginStatus"
)

// forwardedHeaders carry the caller's credentials to the server
//
//nolint:gochecknoglobals // read-only lookup table
var forwardedHeaders = []string{"Authorization", "Cookie"}

// LoginStatus is the server's view of the requesting user
type LoginStatus struct {
	Status                 string `json:"status"`
	UserName               string `json:"username"`
	UserLevel              string `json:"userLevel"`
	ReadOnlyAccess         bool   `json:"readOnlyAccess"`
	AuthenticationRequired bool   `json:"authenticationRequired"`
}

// LoggedIn reports whether the request carried a valid session
func (s *LoginStatus) LoggedIn() bool {
	return s.Status == "loggedIn"
}

// webapp is the subset of a web app package manifest the server publishes
type webapp struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	SignalK     struct {
		DisplayName string `json:"displayName"`
		AppIcon     string `json:"appIcon"`
	} `json:"signalk"`
}

// ClientInterface defines the methods for interacting with the Signal K server
type ClientInterface interface {
	// Webapps returns the web apps installed on the server
	Webapps(ctx context.Context) ([]catalog.ExternalApp, error)
	// LoginStatus returns the login status for the credentials in header
	LoginStatus(ctx context.Context, header http.Header) (*LoginStatus, error)
}

// client implements the ClientInterface using HTTP
type client struct {
	log        logrus.FieldLogger
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
}

// NewClient creates a new Signal K HTTP client
func NewClient(log logrus.FieldLogger, cfg *Config) (ClientInterface, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &client{
		log:        log.WithField("component", "signalk-http"),
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		timeout:    timeout,
	}, nil
}

func (c *client) Webapps(ctx context.Context) ([]catalog.ExternalApp, error) {
	body, err := c.get(ctx, webappsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list webapps: %w", err)
	}

	var webapps []webapp
	if err := json.Unmarshal(body, &webapps); err != nil {
		return nil, fmt.Errorf("failed to parse webapps: %w", err)
	}

	apps := make([]catalog.ExternalApp, 0, len(webapps))
	for i := range webapps {
		apps = append(apps, toExternalApp(&webapps[i]))
	}

	c.log.WithField("count", len(apps)).Debug("Fetched webapps")

	return apps, nil
}

func (c *client) LoginStatus(ctx context.Context, header http.Header) (*LoginStatus, error) {
	body, err := c.get(ctx, loginStatusPath, header)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch login status: %w", err)
	}

	var status LoginStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("failed to parse login status: %w", err)
	}

	return &status, nil
}

func (c *client) get(ctx context.Context, endpoint string, header http.Header) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.baseURL+endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	for _, name := range forwardedHeaders {
		if value := header.Get(name); value != "" {
			req.Header.Set(name, value)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.log.WithError(closeErr).Debug("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w (status %d): %s", ErrSignalKResponse, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}

// toExternalApp maps a manifest to a catalog record. Relative icons are
// resolved under the path the server mounts the app at.
func toExternalApp(w *webapp) catalog.ExternalApp {
	icon := w.SignalK.AppIcon
	if icon != "" && !strings.HasPrefix(icon, "/") && !strings.Contains(icon, "://") {
		icon = path.Join("/", w.Name, icon)
	}

	return catalog.ExternalApp{
		Name:        w.Name,
		DisplayName: w.SignalK.DisplayName,
		Description: w.Description,
		Icon:        icon,
		Version:     w.Version,
	}
}
