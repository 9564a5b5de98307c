package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/settings"
)

// AppFields carries app attributes for AddApp and UpdateApp. Nil fields are
// left unchanged on update and take their default on add.
type AppFields struct {
	Name        *string `json:"name"`
	DisplayName *string `json:"displayName"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
	Icon        *string `json:"icon"`
	Folder      *string `json:"folder"`
	Active      *bool   `json:"active"`
	Source      *string `json:"source"`
	Version     *string `json:"version"`
}

// App returns the app with the given id
func (c *Catalog) App(id string) (settings.App, error) {
	i := appIndex(c.doc, id)
	if i < 0 {
		return settings.App{}, fmt.Errorf("%w: app %s", ErrNotFound, id)
	}

	return c.doc.Apps[i], nil
}

// AddApp creates a new app. The name is required and must not be used by
// another app; the folder defaults to the root and must exist.
func (c *Catalog) AddApp(fields AppFields) (settings.App, error) {
	var created settings.App

	err := c.apply(OperationAddApp, func(doc *settings.Document) error {
		if fields.Name == nil || strings.TrimSpace(*fields.Name) == "" {
			return fmt.Errorf("%w: app name is empty", ErrInvalidName)
		}

		name := strings.TrimSpace(*fields.Name)
		if appNameIndex(doc, name) >= 0 {
			return fmt.Errorf("%w: %s", ErrDuplicateName, name)
		}

		app := settings.App{
			ID:          c.newID(),
			Name:        name,
			DisplayName: name,
			Folder:      settings.RootPath,
			Active:      true,
			Order:       len(doc.Apps),
			Source:      settings.SourceManual,
		}

		if err := applyFields(doc, &app, fields); err != nil {
			return err
		}

		doc.Apps = append(doc.Apps, app)
		created = app

		return nil
	})
	if err != nil {
		return settings.App{}, err
	}

	return created, nil
}

// UpdateApp changes the supplied fields of an app. Deactivating an app
// unbinds it from the bottom bar.
func (c *Catalog) UpdateApp(id string, fields AppFields) (settings.App, error) {
	var updated settings.App

	err := c.apply(OperationUpdateApp, func(doc *settings.Document) error {
		i := appIndex(doc, id)
		if i < 0 {
			return fmt.Errorf("%w: app %s", ErrNotFound, id)
		}

		app := &doc.Apps[i]

		if fields.Name != nil {
			name := strings.TrimSpace(*fields.Name)
			if name == "" {
				return fmt.Errorf("%w: app name is empty", ErrInvalidName)
			}

			if j := appNameIndex(doc, name); j >= 0 && j != i {
				return fmt.Errorf("%w: %s", ErrDuplicateName, name)
			}

			app.Name = name
		}

		if err := applyFields(doc, app, fields); err != nil {
			return err
		}

		if !app.Active {
			clearSlots(doc, app.ID)
		}

		updated = *app

		return nil
	})
	if err != nil {
		return settings.App{}, err
	}

	return updated, nil
}

// DeleteApp removes an app and clears every bottom-bar slot bound to it
func (c *Catalog) DeleteApp(id string) error {
	return c.apply(OperationDeleteApp, func(doc *settings.Document) error {
		i := appIndex(doc, id)
		if i < 0 {
			return fmt.Errorf("%w: app %s", ErrNotFound, id)
		}

		doc.Apps = append(doc.Apps[:i], doc.Apps[i+1:]...)
		clearSlots(doc, id)

		return nil
	})
}

// ReorderApps assigns sequential order values to the listed apps of a
// folder. Apps not listed keep their order.
func (c *Catalog) ReorderApps(folderPath string, ids []string) error {
	return c.apply(OperationReorderApps, func(doc *settings.Document) error {
		if folderPathIndex(doc, folderPath) < 0 {
			return fmt.Errorf("%w: folder path %s", ErrNotFound, folderPath)
		}

		for order, id := range ids {
			i := appIndex(doc, id)
			if i < 0 || effectiveFolder(doc, doc.Apps[i]) != folderPath {
				return fmt.Errorf("%w: app %s in %s", ErrNotFound, id, folderPath)
			}

			doc.Apps[i].Order = order
		}

		return nil
	})
}

// AppsIn lists the apps of a folder in display order. Apps whose folder
// does not exist are listed under the root.
func (c *Catalog) AppsIn(folderPath string) []settings.App {
	apps := make([]settings.App, 0)

	for i := range c.doc.Apps {
		if effectiveFolder(c.doc, c.doc.Apps[i]) == folderPath {
			apps = append(apps, c.doc.Apps[i])
		}
	}

	sort.SliceStable(apps, func(i, j int) bool {
		return apps[i].Order < apps[j].Order
	})

	return apps
}

// applyFields copies the non-name fields onto app
func applyFields(doc *settings.Document, app *settings.App, fields AppFields) error {
	if fields.Folder != nil {
		folder := *fields.Folder
		if folder == "" {
			folder = settings.RootPath
		}

		if folderPathIndex(doc, folder) < 0 {
			return fmt.Errorf("%w: folder path %s", ErrNotFound, folder)
		}

		app.Folder = folder
	}

	if fields.Source != nil {
		switch *fields.Source {
		case settings.SourceManual, settings.SourceSignalK:
			app.Source = *fields.Source
		default:
			return fmt.Errorf("%w: %q", ErrInvalidSource, *fields.Source)
		}
	}

	setString(&app.DisplayName, fields.DisplayName)
	setString(&app.Description, fields.Description)
	setString(&app.URL, fields.URL)
	setString(&app.Icon, fields.Icon)
	setString(&app.Version, fields.Version)

	if fields.Active != nil {
		app.Active = *fields.Active
	}

	return nil
}

// effectiveFolder is the app folder, or the root when that folder is gone
func effectiveFolder(doc *settings.Document, app settings.App) string {
	if folderPathIndex(doc, app.Folder) < 0 {
		return settings.RootPath
	}

	return app.Folder
}

func setString(dst, src *string) {
	if src != nil {
		*dst = *src
	}
}

func appIndex(doc *settings.Document, id string) int {
	for i := range doc.Apps {
		if doc.Apps[i].ID == id {
			return i
		}
	}

	return -1
}

func appNameIndex(doc *settings.Document, name string) int {
	for i := range doc.Apps {
		if doc.Apps[i].Name == name {
			return i
		}
	}

	return -1
}
