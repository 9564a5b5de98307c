package catalog

import (
	"sort"
	"testing"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func folder(id, parent string) settings.Folder {
	f := settings.Folder{ID: id, Name: id}
	if parent != "" {
		f.Parent = settings.StringPtr(parent)
	}

	return f
}

func TestBuildTree(t *testing.T) {
	tests := []struct {
		name    string
		folders []settings.Folder
		wantErr error
	}{
		{
			name:    "root only",
			folders: []settings.Folder{folder("root", "")},
		},
		{
			name: "nested chain",
			folders: []settings.Folder{
				folder("root", ""), folder("a", "root"), folder("b", "a"), folder("c", "b"),
			},
		},
		{
			name: "child listed before parent",
			folders: []settings.Folder{
				folder("b", "a"), folder("root", ""), folder("a", "root"),
			},
		},
		{
			name:    "no root",
			folders: []settings.Folder{folder("a", "b"), folder("b", "a")},
			wantErr: ErrInconsistentTree,
		},
		{
			name: "cycle below root",
			folders: []settings.Folder{
				folder("root", ""), folder("a", "c"), folder("b", "a"), folder("c", "b"),
			},
			wantErr: ErrCycleDetected,
		},
		{
			name:    "self parent",
			folders: []settings.Folder{folder("root", ""), folder("a", "a")},
			wantErr: ErrCycleDetected,
		},
		{
			name:    "empty id",
			folders: []settings.Folder{folder("root", ""), folder("", "root")},
			wantErr: ErrInconsistentTree,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildTree(tt.folders)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestTree_Descendants(t *testing.T) {
	tr, err := buildTree([]settings.Folder{
		folder("root", ""), folder("a", "root"), folder("b", "a"), folder("c", "b"), folder("d", "root"),
	})
	require.NoError(t, err)

	descendants := tr.descendants("a")
	sort.Strings(descendants)
	assert.Equal(t, []string{"b", "c"}, descendants)

	assert.True(t, tr.isDescendant("a", "c"))
	assert.False(t, tr.isDescendant("c", "a"))
	assert.False(t, tr.isDescendant("a", "d"))
	assert.Empty(t, tr.descendants("missing"))
	assert.True(t, tr.reachable())
}
