package testutil

import (
	"testing"

	fwredis "github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/redis"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// NewMiniredis starts an in-memory Redis and returns a storage configuration
// pointing at it with the default prefix and key. The server is closed when
// the test completes.
func NewMiniredis(t *testing.T) (*miniredis.Miniredis, *fwredis.Config) {
	t.Helper()

	mr := miniredis.RunT(t)

	return mr, &fwredis.Config{
		Address: mr.Addr(),
		Prefix:  "fairwindsk",
		Key:     "settings",
	}
}

// NewMiniredisClient returns a miniredis server and a client connected to it.
// Both are closed when the test completes.
func NewMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, cfg := NewMiniredis(t)

	client, err := fwredis.NewClient(cfg)
	if err != nil {
		t.Fatalf("failed to connect to miniredis: %v", err)
	}

	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Logf("failed to close miniredis client: %v", err)
		}
	})

	return mr, client
}
