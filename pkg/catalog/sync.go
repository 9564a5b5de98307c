package catalog

import (
	"fmt"
	"strings"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/settings"
)

// ExternalApp is an app record published by the external app catalog
type ExternalApp struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Version     string `json:"version"`
}

// SyncResult reports what a sync changed
type SyncResult struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
}

// Sync upserts external apps by name. New apps are placed in the folder
// suggested by Classify (or the root when that folder no longer exists).
// Existing apps only get their provenance fields refreshed; active, folder
// and order stay under operator control. Updated counts apps whose
// provenance fields actually changed.
func (c *Catalog) Sync(external []ExternalApp) (SyncResult, error) {
	var result SyncResult

	err := c.apply(OperationSync, func(doc *settings.Document) error {
		result = SyncResult{}

		for _, ext := range external {
			name := strings.TrimSpace(ext.Name)
			if name == "" {
				continue
			}

			displayName := ext.DisplayName
			if displayName == "" {
				displayName = name
			}

			if i := appNameIndex(doc, name); i >= 0 {
				if refresh(&doc.Apps[i], displayName, ext) {
					result.Updated++
				}

				continue
			}

			url, err := c.renderURL(name)
			if err != nil {
				return fmt.Errorf("failed to render url for %s: %w", name, err)
			}

			folder := Classify(name, ext.Description)
			if folderPathIndex(doc, folder) < 0 {
				folder = settings.RootPath
			}

			doc.Apps = append(doc.Apps, settings.App{
				ID:          c.newID(),
				Name:        name,
				DisplayName: displayName,
				Description: ext.Description,
				URL:         url,
				Icon:        ext.Icon,
				Folder:      folder,
				Active:      true,
				Order:       len(doc.Apps),
				Source:      settings.SourceSignalK,
				Version:     ext.Version,
			})
			result.Added++
		}

		return nil
	})
	if err != nil {
		return SyncResult{}, err
	}

	return result, nil
}

// refresh overwrites the provenance fields and reports whether any changed
func refresh(app *settings.App, displayName string, ext ExternalApp) bool {
	changed := app.DisplayName != displayName ||
		app.Description != ext.Description ||
		app.Icon != ext.Icon ||
		app.Version != ext.Version

	app.DisplayName = displayName
	app.Description = ext.Description
	app.Icon = ext.Icon
	app.Version = ext.Version

	return changed
}
