// Package catalog implements the folder tree and app catalog rules layered on
// top of the settings document. A Catalog works on a private copy of the
// document; callers persist the result of Document with settings.Store.Replace.
package catalog

import (
	"fmt"
	"strings"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/observability"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/settings"
	"github.com/google/uuid"
)

// Catalog edits the folders, apps and bottom bar of a checked-out document.
// It is not safe for concurrent use.
type Catalog struct {
	doc       *settings.Document
	newID     func() string
	renderURL func(name string) (string, error)
}

// Option configures a Catalog
type Option func(*Catalog)

// WithIDGenerator overrides how folder and app ids are generated
func WithIDGenerator(fn func() string) Option {
	return func(c *Catalog) {
		c.newID = fn
	}
}

// WithURLRenderer sets how the URL of an app created by Sync is derived from its name
func WithURLRenderer(fn func(name string) (string, error)) Option {
	return func(c *Catalog) {
		c.renderURL = fn
	}
}

// New checks out a deep copy of doc. The caller's document is never modified.
func New(doc *settings.Document, opts ...Option) *Catalog {
	if doc == nil {
		doc = settings.Default()
	}

	c := &Catalog{
		doc:       doc.Clone(),
		newID:     uuid.NewString,
		renderURL: defaultURL,
	}

	settings.Normalize(c.doc)

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Document returns a copy of the edited document
func (c *Catalog) Document() *settings.Document {
	return c.doc.Clone()
}

// apply runs edit against a scratch copy and commits it only when the edit
// succeeds and the result is consistent.
func (c *Catalog) apply(operation string, edit func(doc *settings.Document) error) error {
	scratch := c.doc.Clone()

	if err := edit(scratch); err != nil {
		observability.RecordCatalogOperation(operation, "rejected")
		return err
	}

	if err := validate(scratch); err != nil {
		observability.RecordCatalogOperation(operation, "inconsistent")
		return err
	}

	c.doc = scratch
	observability.RecordCatalogOperation(operation, "success")

	return nil
}

// Validate checks the structural invariants of the folder tree, the app
// list and the bottom bar.
func (c *Catalog) Validate() error {
	return validate(c.doc)
}

func validate(doc *settings.Document) error {
	t, err := buildTree(doc.Folders)
	if err != nil {
		return err
	}

	if !t.reachable() {
		return fmt.Errorf("%w: folders unreachable from root", ErrInconsistentTree)
	}

	byID := make(map[string]*settings.Folder, len(doc.Folders))
	for i := range doc.Folders {
		byID[doc.Folders[i].ID] = &doc.Folders[i]
	}

	paths := make(map[string]string, len(doc.Folders))
	for i := range doc.Folders {
		folder := &doc.Folders[i]

		derived := derivedPath(byID, folder)
		if folder.Path != derived {
			return fmt.Errorf("%w: folder %s has path %q, expected %q", ErrInconsistentTree, folder.ID, folder.Path, derived)
		}

		if other, exists := paths[folder.Path]; exists {
			return fmt.Errorf("%w: %s shared by %s and %s", ErrDuplicatePath, folder.Path, other, folder.ID)
		}

		paths[folder.Path] = folder.ID
	}

	appIDs := make(map[string]struct{}, len(doc.Apps))
	for i := range doc.Apps {
		id := doc.Apps[i].ID
		if id == "" {
			return fmt.Errorf("%w: app %q has no id", ErrInconsistentTree, doc.Apps[i].Name)
		}

		if _, exists := appIDs[id]; exists {
			return fmt.Errorf("%w: duplicate app id %s", ErrInconsistentTree, id)
		}

		appIDs[id] = struct{}{}
	}

	for slot, id := range doc.BottomBar {
		if id == "" {
			continue
		}

		if _, exists := appIDs[id]; !exists {
			return fmt.Errorf("%w: bottom bar slot %d references unknown app %s", ErrInconsistentTree, slot, id)
		}
	}

	return nil
}

// derivedPath rebuilds a folder path from its ancestors' names. The tree
// must already be known to be acyclic.
func derivedPath(byID map[string]*settings.Folder, folder *settings.Folder) string {
	if folder.IsRoot() {
		return settings.RootPath
	}

	parent, exists := byID[folder.ParentID()]
	if !exists {
		return ""
	}

	return childPath(derivedPath(byID, parent), folder.Name)
}

// childPath appends the lower-cased name to a parent path
func childPath(parentPath, name string) string {
	segment := strings.ToLower(name)
	if parentPath == settings.RootPath {
		return settings.RootPath + segment
	}

	return parentPath + "/" + segment
}

// checkName trims name and rejects empty names and path separators
func checkName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is empty", ErrInvalidName)
	}

	if strings.Contains(name, "/") {
		return "", fmt.Errorf("%w: %q contains '/'", ErrInvalidName, name)
	}

	return name, nil
}

func defaultURL(name string) (string, error) {
	return "/" + name + "/", nil
}
