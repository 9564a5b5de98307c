package catalog

import (
	"testing"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddApp(t *testing.T) {
	c := newTestCatalog(t)

	first, err := c.AddApp(AppFields{Name: strPtr("freeboard-sk"), URL: strPtr("/freeboard/")})
	require.NoError(t, err)
	assert.Equal(t, settings.App{
		ID:          "id-1",
		Name:        "freeboard-sk",
		DisplayName: "freeboard-sk",
		URL:         "/freeboard/",
		Folder:      settings.RootPath,
		Active:      true,
		Order:       0,
		Source:      settings.SourceManual,
	}, first)

	second, err := c.AddApp(AppFields{
		Name:        strPtr("kip"),
		DisplayName: strPtr("KIP"),
		Folder:      strPtr("/instruments"),
		Active:      boolPtr(false),
		Source:      strPtr(settings.SourceSignalK),
	})
	require.NoError(t, err)
	assert.Equal(t, "id-2", second.ID)
	assert.Equal(t, 1, second.Order, "order equals the current app count")
	assert.Equal(t, "/instruments", second.Folder)
	assert.False(t, second.Active)
	assert.Equal(t, settings.SourceSignalK, second.Source)
}

func TestAddApp_Errors(t *testing.T) {
	tests := []struct {
		name    string
		fields  AppFields
		wantErr error
	}{
		{name: "missing name", fields: AppFields{}, wantErr: ErrInvalidName},
		{name: "blank name", fields: AppFields{Name: strPtr(" ")}, wantErr: ErrInvalidName},
		{name: "duplicate name", fields: AppFields{Name: strPtr("existing")}, wantErr: ErrDuplicateName},
		{name: "unknown folder", fields: AppFields{Name: strPtr("x"), Folder: strPtr("/nowhere")}, wantErr: ErrNotFound},
		{name: "unknown source", fields: AppFields{Name: strPtr("x"), Source: strPtr("store")}, wantErr: ErrInvalidSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCatalog(t)
			_, err := c.AddApp(AppFields{Name: strPtr("existing")})
			require.NoError(t, err)

			before := c.Document()

			_, err = c.AddApp(tt.fields)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, c.Document())
		})
	}
}

func TestUpdateApp(t *testing.T) {
	c := newTestCatalog(t)

	app, err := c.AddApp(AppFields{Name: strPtr("kip"), Description: strPtr("old")})
	require.NoError(t, err)

	updated, err := c.UpdateApp(app.ID, AppFields{
		Description: strPtr("Instrument panel"),
		Folder:      strPtr("/instruments"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Instrument panel", updated.Description)
	assert.Equal(t, "/instruments", updated.Folder)
	assert.Equal(t, "kip", updated.Name, "fields not supplied keep their value")
	assert.True(t, updated.Active)
	assert.Equal(t, app.ID, updated.ID)

	renamed, err := c.UpdateApp(app.ID, AppFields{Name: strPtr("kip2")})
	require.NoError(t, err)
	assert.Equal(t, "kip2", renamed.Name)
	assert.Equal(t, app.ID, renamed.ID, "id is stable across renames")
}

func TestUpdateApp_Errors(t *testing.T) {
	c := newTestCatalog(t)

	one, err := c.AddApp(AppFields{Name: strPtr("one")})
	require.NoError(t, err)

	_, err = c.AddApp(AppFields{Name: strPtr("two")})
	require.NoError(t, err)

	_, err = c.UpdateApp("missing", AppFields{})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = c.UpdateApp(one.ID, AppFields{Name: strPtr("two")})
	require.ErrorIs(t, err, ErrDuplicateName)

	_, err = c.UpdateApp(one.ID, AppFields{Folder: strPtr("/nowhere")})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = c.UpdateApp(one.ID, AppFields{Name: strPtr("")})
	require.ErrorIs(t, err, ErrInvalidName)

	// Renaming to its own name is allowed.
	_, err = c.UpdateApp(one.ID, AppFields{Name: strPtr("one")})
	require.NoError(t, err)
}

func TestDeleteApp_ClearsBottomBar(t *testing.T) {
	c := newTestCatalog(t)

	app, err := c.AddApp(AppFields{Name: strPtr("anchor")})
	require.NoError(t, err)

	other, err := c.AddApp(AppFields{Name: strPtr("kip")})
	require.NoError(t, err)

	require.NoError(t, c.SetBottomBarSlot(0, app.ID))
	require.NoError(t, c.SetBottomBarSlot(2, app.ID))
	require.NoError(t, c.SetBottomBarSlot(3, other.ID))

	require.NoError(t, c.DeleteApp(app.ID))

	assert.Equal(t, [settings.BottomBarSlots]string{"", "", "", other.ID}, c.BottomBar())
	require.NoError(t, c.Validate())

	require.ErrorIs(t, c.DeleteApp(app.ID), ErrNotFound)
}

func TestUpdateApp_DeactivateClearsBottomBar(t *testing.T) {
	c := newTestCatalog(t)

	app, err := c.AddApp(AppFields{Name: strPtr("anchor")})
	require.NoError(t, err)
	require.NoError(t, c.SetBottomBarSlot(1, app.ID))

	_, err = c.UpdateApp(app.ID, AppFields{Active: boolPtr(false)})
	require.NoError(t, err)

	assert.Equal(t, [settings.BottomBarSlots]string{}, c.BottomBar())
}

func TestSetBottomBarSlot(t *testing.T) {
	c := newTestCatalog(t)

	active, err := c.AddApp(AppFields{Name: strPtr("active")})
	require.NoError(t, err)

	inactive, err := c.AddApp(AppFields{Name: strPtr("inactive"), Active: boolPtr(false)})
	require.NoError(t, err)

	tests := []struct {
		name    string
		slot    int
		appID   string
		wantErr error
	}{
		{name: "bind active app", slot: 0, appID: active.ID},
		{name: "clear slot", slot: 0, appID: ""},
		{name: "negative slot", slot: -1, appID: active.ID, wantErr: ErrInvalidSlot},
		{name: "slot out of range", slot: settings.BottomBarSlots, appID: active.ID, wantErr: ErrInvalidSlot},
		{name: "unknown app", slot: 1, appID: "missing", wantErr: ErrNotFound},
		{name: "inactive app", slot: 1, appID: inactive.ID, wantErr: ErrAppInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.SetBottomBarSlot(tt.slot, tt.appID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.appID, c.BottomBar()[tt.slot])
		})
	}
}

func TestReorderApps(t *testing.T) {
	c := newTestCatalog(t)

	var ids []string
	for _, name := range []string{"a", "b", "c"} {
		app, err := c.AddApp(AppFields{Name: strPtr(name), Folder: strPtr("/navigation")})
		require.NoError(t, err)

		ids = append(ids, app.ID)
	}

	outside, err := c.AddApp(AppFields{Name: strPtr("d"), Folder: strPtr("/utilities")})
	require.NoError(t, err)

	require.NoError(t, c.ReorderApps("/navigation", []string{ids[2], ids[0]}))

	order := func(id string) int {
		app, err := c.App(id)
		require.NoError(t, err)

		return app.Order
	}

	assert.Equal(t, 0, order(ids[2]))
	assert.Equal(t, 1, order(ids[0]))
	assert.Equal(t, 1, order(ids[1]), "unlisted apps keep their order")

	before := c.Document()
	require.ErrorIs(t, c.ReorderApps("/navigation", []string{ids[0], outside.ID}), ErrNotFound)
	require.ErrorIs(t, c.ReorderApps("/nowhere", nil), ErrNotFound)
	assert.Equal(t, before, c.Document())
}

func TestAppsIn(t *testing.T) {
	doc := settings.Default()
	doc.Apps = []settings.App{
		{ID: "1", Name: "late", Folder: "/navigation", Order: 5},
		{ID: "2", Name: "early", Folder: "/navigation", Order: 1},
		{ID: "3", Name: "orphan", Folder: "/deleted", Order: 0},
		{ID: "4", Name: "top", Folder: "/", Order: 2},
	}

	c := New(doc)

	nav := c.AppsIn("/navigation")
	require.Len(t, nav, 2)
	assert.Equal(t, "early", nav[0].Name)
	assert.Equal(t, "late", nav[1].Name)

	root := c.AppsIn(settings.RootPath)
	require.Len(t, root, 2)
	assert.Equal(t, "orphan", root[0].Name, "apps in missing folders belong to the root")
	assert.Equal(t, "top", root[1].Name)

	assert.Empty(t, c.AppsIn("/utilities"))
}
