// Package settings owns the FairWindSK settings document: its shape, its
// defaults, the recursive merge-patch rule and the store that persists it.
package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// BottomBarSlots is the fixed number of bottom-bar slots.
const BottomBarSlots = 4

// RootFolderID and RootPath identify the root of the folder tree.
const (
	RootFolderID = "root"
	RootPath     = "/"
)

// App provenance markers.
const (
	SourceManual  = "manual"
	SourceSignalK = "signalk"
)

// Document is the single persisted settings aggregate.
type Document struct {
	Main         Main                   `json:"main"`
	Folders      []Folder               `json:"folders"`
	Apps         []App                  `json:"apps"`
	SignalK      map[string]string      `json:"signalk"`
	Units        map[string]string      `json:"units"`
	Applications map[string]string      `json:"applications"`
	BottomBar    [BottomBarSlots]string `json:"bottomBar"`

	// Extra holds top-level sections this package does not model (for
	// example the editor's `connection` block) so they survive a round trip.
	Extra map[string]json.RawMessage `json:"-"`
}

// Main holds window and display preferences.
type Main struct {
	VirtualKeyboard bool   `json:"virtualKeyboard"`
	Autopilot       string `json:"autopilot"`
	WindowMode      string `json:"windowMode"`
	WindowWidth     int    `json:"windowWidth"`
	WindowHeight    int    `json:"windowHeight"`
	WindowTop       int    `json:"windowTop"`
	WindowLeft      int    `json:"windowLeft"`
}

// Folder is a node in the app-organization tree. Path is derived from the
// chain of ancestor names and always starts with "/".
type Folder struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Path   string  `json:"path"`
	Parent *string `json:"parent"`
	Order  int     `json:"order"`
}

// IsRoot reports whether f is the root of the tree.
func (f Folder) IsRoot() bool {
	return f.Parent == nil
}

// ParentID returns the parent folder id, or "" for the root.
func (f Folder) ParentID() string {
	if f.Parent == nil {
		return ""
	}

	return *f.Parent
}

// App is an installable sub-application with its placement metadata.
type App struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Icon        string `json:"icon"`
	Folder      string `json:"folder"`
	Active      bool   `json:"active"`
	Order       int    `json:"order"`
	Source      string `json:"source"`
	Version     string `json:"version"`
}

// documentAlias strips the custom (un)marshalers from Document.
type documentAlias Document

// knownKeys are the top-level keys modeled by Document.
//
//nolint:gochecknoglobals // read-only lookup table
var knownKeys = map[string]struct{}{
	"main":         {},
	"folders":      {},
	"apps":         {},
	"signalk":      {},
	"units":        {},
	"applications": {},
	"bottomBar":    {},
}

// UnmarshalJSON decodes the modeled sections and keeps everything else in Extra.
// Decoding onto a pre-populated Document keeps values for absent keys.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if err := json.Unmarshal(data, (*documentAlias)(d)); err != nil {
		return err
	}

	for key, value := range raw {
		if _, ok := knownKeys[key]; ok {
			continue
		}

		if d.Extra == nil {
			d.Extra = make(map[string]json.RawMessage)
		}

		var compact bytes.Buffer
		if err := json.Compact(&compact, value); err != nil {
			return err
		}

		d.Extra[key] = compact.Bytes()
	}

	return nil
}

// MarshalJSON encodes the modeled sections merged with Extra.
func (d Document) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(documentAlias(d))
	if err != nil {
		return nil, err
	}

	if len(d.Extra) == 0 {
		return known, nil
	}

	var out map[string]json.RawMessage
	if err := json.Unmarshal(known, &out); err != nil {
		return nil, err
	}

	for key, value := range d.Extra {
		if _, ok := knownKeys[key]; ok {
			continue
		}

		out[key] = value
	}

	return json.Marshal(out)
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}

	out := *d

	// Nil sections stay nil so Normalize can still tell them apart from
	// sections emptied on purpose.
	if d.Folders != nil {
		out.Folders = make([]Folder, len(d.Folders))
		for i, f := range d.Folders {
			out.Folders[i] = f
			if f.Parent != nil {
				parent := *f.Parent
				out.Folders[i].Parent = &parent
			}
		}
	}

	if d.Apps != nil {
		out.Apps = append(make([]App, 0, len(d.Apps)), d.Apps...)
	}
	out.SignalK = cloneStrings(d.SignalK)
	out.Units = cloneStrings(d.Units)
	out.Applications = cloneStrings(d.Applications)

	if d.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(d.Extra))
		for k, v := range d.Extra {
			out.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}

	return &out
}

// ToMap converts the document into its generic structured-value form.
func (d *Document) ToMap() (map[string]any, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	return decodeObject(data)
}

// FromMap builds a document from its generic structured-value form.
func FromMap(m map[string]any) (*Document, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return doc, nil
}

// Encode renders the document the way it is persisted: pretty-printed JSON.
func Encode(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// StringPtr returns a pointer to s, used for folder parent references.
func StringPtr(s string) *string {
	return &s
}

func cloneStrings(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}

	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}

	return out
}
