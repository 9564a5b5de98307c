// Package auth resolves the privilege level of an API caller
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/signalk"
)

// Modes
const (
	ModeNone    = "none"
	ModeSignalK = "signalk"
)

// ErrUnknownMode is returned for an unsupported auth mode
var ErrUnknownMode = errors.New("unknown auth mode")

// Level is a caller privilege level, ordered from least to most privileged
type Level int

// Privilege levels
const (
	LevelNone Level = iota
	LevelReadOnly
	LevelReadWrite
	LevelAdmin
)

// String returns the Signal K name of the level
func (l Level) String() string {
	switch l {
	case LevelReadOnly:
		return "readonly"
	case LevelReadWrite:
		return "readwrite"
	case LevelAdmin:
		return "admin"
	default:
		return "none"
	}
}

// ParseLevel maps a Signal K user level to a Level. Unknown values map to LevelNone.
func ParseLevel(s string) Level {
	switch s {
	case "readonly":
		return LevelReadOnly
	case "readwrite":
		return LevelReadWrite
	case "admin":
		return LevelAdmin
	default:
		return LevelNone
	}
}

// Authenticator reports the privilege level of the caller behind a request
type Authenticator interface {
	PrivilegeLevel(ctx context.Context, header http.Header) (Level, error)
}

// Config selects the authenticator
type Config struct {
	Mode string `yaml:"mode" default:"none"`
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeNone, ModeSignalK:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, c.Mode)
	}
}

// New creates the authenticator selected by cfg
func New(cfg *Config, client signalk.ClientInterface) (Authenticator, error) {
	switch cfg.Mode {
	case ModeNone, "":
		return Static(LevelAdmin), nil
	case ModeSignalK:
		return NewSignalK(client), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, cfg.Mode)
	}
}

// Static grants every caller the same level
type Static Level

// PrivilegeLevel implements Authenticator
func (s Static) PrivilegeLevel(_ context.Context, _ http.Header) (Level, error) {
	return Level(s), nil
}

// SignalK asks the Signal K server who the caller is
type SignalK struct {
	client signalk.ClientInterface
}

// NewSignalK creates an authenticator backed by the server's login status
func NewSignalK(client signalk.ClientInterface) *SignalK {
	return &SignalK{client: client}
}

// PrivilegeLevel implements Authenticator. A server with security disabled
// treats every caller as admin.
func (s *SignalK) PrivilegeLevel(ctx context.Context, header http.Header) (Level, error) {
	status, err := s.client.LoginStatus(ctx, header)
	if err != nil {
		return LevelNone, err
	}

	if !status.AuthenticationRequired {
		return LevelAdmin, nil
	}

	if !status.LoggedIn() {
		return LevelNone, nil
	}

	level := ParseLevel(status.UserLevel)
	if status.ReadOnlyAccess && level > LevelReadOnly {
		level = LevelReadOnly
	}

	return level, nil
}
