package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(nil)

	_, err := m.Read(ctx)
	require.ErrorIs(t, err, ErrNotExist)

	require.NoError(t, m.Write(ctx, []byte("abc")))
	assert.Equal(t, 1, m.Writes())

	data, err := m.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))

	boom := errors.New("disk full")
	m.FailWrites(boom)
	require.ErrorIs(t, m.Write(ctx, []byte("def")), boom)
	assert.Equal(t, "abc", string(m.Bytes()))

	m.FailReads(boom)
	_, err = m.Read(ctx)
	require.ErrorIs(t, err, boom)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		describe string
		wantErr  error
	}{
		{
			name:     "file",
			config:   Config{Type: TypeFile, File: FileConfig{Path: "/tmp/fw.json"}},
			describe: "file:/tmp/fw.json",
		},
		{
			name:     "memory",
			config:   Config{Type: TypeMemory},
			describe: "memory",
		},
		{
			name:    "unknown",
			config:  Config{Type: "s3"},
			wantErr: ErrUnknownType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			medium, err := New(&tt.config)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.ErrorIs(t, tt.config.Validate(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.describe, medium.Describe())
		})
	}
}
