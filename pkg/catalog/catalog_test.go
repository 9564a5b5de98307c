package catalog

import (
	"fmt"
	"testing"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequentialIDs returns a generator yielding id-1, id-2, ...
func sequentialIDs() func() string {
	n := 0

	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()

	return New(settings.Default(), WithIDGenerator(sequentialIDs()))
}

func strPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}

func TestNew_DoesNotMutateInput(t *testing.T) {
	doc := settings.Default()
	c := New(doc, WithIDGenerator(sequentialIDs()))

	_, err := c.AddFolder("Routes", "")
	require.NoError(t, err)

	assert.Len(t, doc.Folders, 4)
	assert.Len(t, c.Document().Folders, 5)
}

func TestNew_NilDocument(t *testing.T) {
	c := New(nil)
	assert.Equal(t, settings.Default(), c.Document())
}

func TestDocument_ReturnsCopy(t *testing.T) {
	c := newTestCatalog(t)

	doc := c.Document()
	doc.Folders[0].Name = "changed"

	root, err := c.Folder(settings.RootFolderID)
	require.NoError(t, err)
	assert.Equal(t, "Root", root.Name)
}

func TestNew_RepairsLegacyDocument(t *testing.T) {
	// Apps written without ids and a slot bound to an app that is gone.
	doc, err := settings.Decode([]byte(`{
		"apps": [
			{"name": "kip", "displayName": "KIP", "url": "/@mxtommy/kip/", "active": true},
			{"name": "freeboard-sk", "url": "/freeboard/", "active": true}
		],
		"bottomBar": ["removed-app", "", "", ""]
	}`))
	require.NoError(t, err)

	c := New(doc, WithIDGenerator(sequentialIDs()))
	require.NoError(t, c.Validate())
	assert.Equal(t, [settings.BottomBarSlots]string{}, c.BottomBar())

	_, err = c.AddFolder("Routes", "")
	require.NoError(t, err, "edits must not be blocked by the loaded apps")

	result, err := c.Sync([]ExternalApp{{Name: "kip", DisplayName: "KIP"}})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Added)

	apps := c.Document().Apps
	require.Len(t, apps, 2)
	require.NoError(t, c.SetBottomBarSlot(0, apps[1].ID))
	require.NoError(t, c.DeleteApp(apps[1].ID))
	assert.Equal(t, [settings.BottomBarSlots]string{}, c.BottomBar())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(doc *settings.Document)
		wantErr error
	}{
		{
			name:   "default document",
			mutate: func(_ *settings.Document) {},
		},
		{
			name: "duplicate folder id",
			mutate: func(doc *settings.Document) {
				doc.Folders[2].ID = "navigation"
			},
			wantErr: ErrInconsistentTree,
		},
		{
			name: "duplicate folder path",
			mutate: func(doc *settings.Document) {
				doc.Folders = append(doc.Folders, settings.Folder{
					ID: "nav2", Name: "Navigation", Path: "/navigation", Parent: settings.StringPtr("root"),
				})
			},
			wantErr: ErrDuplicatePath,
		},
		{
			name: "two roots",
			mutate: func(doc *settings.Document) {
				doc.Folders[1].Parent = nil
			},
			wantErr: ErrInconsistentTree,
		},
		{
			name: "unknown parent",
			mutate: func(doc *settings.Document) {
				doc.Folders[1].Parent = settings.StringPtr("missing")
			},
			wantErr: ErrInconsistentTree,
		},
		{
			name: "parentage cycle",
			mutate: func(doc *settings.Document) {
				doc.Folders[1].Parent = settings.StringPtr("instruments")
				doc.Folders[1].Path = "/instruments/navigation"
				doc.Folders[2].Parent = settings.StringPtr("navigation")
				doc.Folders[2].Path = "/navigation/instruments"
			},
			wantErr: ErrCycleDetected,
		},
		{
			name: "path does not match names",
			mutate: func(doc *settings.Document) {
				doc.Folders[1].Path = "/nav"
			},
			wantErr: ErrInconsistentTree,
		},
		{
			name: "duplicate app id is reassigned on load",
			mutate: func(doc *settings.Document) {
				doc.Apps = []settings.App{{ID: "a", Name: "one"}, {ID: "a", Name: "two"}}
			},
		},
		{
			name: "dangling bottom bar slot is cleared on load",
			mutate: func(doc *settings.Document) {
				doc.BottomBar[2] = "ghost"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := settings.Default()
			tt.mutate(doc)

			err := New(doc).Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestChildPath(t *testing.T) {
	tests := []struct {
		parent   string
		name     string
		expected string
	}{
		{parent: "/", name: "Routes", expected: "/routes"},
		{parent: "/routes", name: "Saved", expected: "/routes/saved"},
		{parent: "/a/b", name: "My Charts", expected: "/a/b/my charts"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, childPath(tt.parent, tt.name))
		})
	}
}
