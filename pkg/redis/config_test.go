package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
		wantKey string
	}{
		{
			name:    "missing address",
			config:  Config{},
			wantErr: ErrAddressRequired,
		},
		{
			name:    "fills prefix and key",
			config:  Config{Address: "localhost:6379"},
			wantKey: "fairwindsk:settings",
		},
		{
			name:    "whitespace in key",
			config:  Config{Address: "localhost:6379", Key: "my settings"},
			wantErr: ErrInvalidKey,
		},
		{
			name:    "custom prefix and key",
			config:  Config{Address: "localhost:6379", Prefix: "boat", Key: "doc"},
			wantKey: "boat:doc",
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
			assert.Equal(t, tt.wantKey, tt.config.DocumentKey())
		})
	}
}

func TestNewOptions(t *testing.T) {
	opt, err := NewOptions(&Config{Address: "redis://localhost:6380/2"})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6380", opt.Addr)
	assert.Equal(t, 2, opt.DB)

	opt, err = NewOptions(&Config{Address: "10.0.0.5:6379"})
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5:6379", opt.Addr)

	_, err = NewOptions(&Config{Address: "redis://:bad:port/x"})
	assert.Error(t, err)
}

func TestNewOptions_Timeout(t *testing.T) {
	opt, err := NewOptions(&Config{Address: "localhost:6379", Timeout: 2 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, opt.DialTimeout)
	assert.Equal(t, 2*time.Second, opt.ReadTimeout)
	assert.Equal(t, 2*time.Second, opt.WriteTimeout)

	opt, err = NewOptions(&Config{Address: "localhost:6379"})
	require.NoError(t, err)
	assert.Zero(t, opt.DialTimeout)
}
