package engine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/storage"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	return log
}

func headlessConfig(t *testing.T) *Config {
	t.Helper()

	cfg := newDefaultConfig(t)
	cfg.MetricsAddr = ""
	cfg.API.Enabled = false
	cfg.Frontend.Enabled = false
	cfg.Storage.Type = storage.TypeMemory

	return cfg
}

func TestNewServiceInvalidConfig(t *testing.T) {
	cfg := headlessConfig(t)
	cfg.Logging = "loud"

	_, err := NewService(newTestLogger(), cfg)
	require.Error(t, err)
}

func TestServiceLifecycle(t *testing.T) {
	svc, err := NewService(newTestLogger(), headlessConfig(t))
	require.NoError(t, err)
	require.NotNil(t, svc.syncer)
	assert.Nil(t, svc.scheduler)

	require.NoError(t, svc.Start(context.Background()))

	// The default document is persisted on first start
	memory, ok := svc.medium.(*storage.Memory)
	require.True(t, ok)
	assert.Equal(t, 1, memory.Writes())

	require.NoError(t, svc.Stop())
}

func TestServiceWithoutSignalK(t *testing.T) {
	cfg := headlessConfig(t)
	cfg.SignalK.URL = ""

	svc, err := NewService(newTestLogger(), cfg)
	require.NoError(t, err)
	assert.Nil(t, svc.syncer)
}

func TestServiceWithSchedule(t *testing.T) {
	cfg := headlessConfig(t)
	cfg.Sync.Enabled = true
	cfg.Sync.RunOnStart = false

	svc, err := NewService(newTestLogger(), cfg)
	require.NoError(t, err)
	require.NotNil(t, svc.scheduler)

	require.NoError(t, svc.Start(context.Background()))
	assert.True(t, svc.syncer.Status().Scheduled)
	require.NoError(t, svc.Stop())
}

func TestHandleReady(t *testing.T) {
	svc, err := NewService(newTestLogger(), headlessConfig(t))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	svc.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	require.NoError(t, svc.Start(context.Background()))

	rec = httptest.NewRecorder()
	svc.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, svc.Stop())
}
