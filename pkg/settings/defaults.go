package settings

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Default returns the canonical default document. Every call builds a fresh
// value, so callers may mutate the result.
func Default() *Document {
	return &Document{
		Main: Main{
			VirtualKeyboard: false,
			Autopilot:       "",
			WindowMode:      "centered",
			WindowWidth:     1024,
			WindowHeight:    600,
			WindowTop:       20,
			WindowLeft:      0,
		},
		Folders:      DefaultFolders(),
		Apps:         []App{},
		SignalK:      DefaultSignalKPaths(),
		Units:        DefaultUnits(),
		Applications: DefaultApplications(),
		BottomBar:    [BottomBarSlots]string{"", "", "", ""},
	}
}

// DefaultFolders returns the root folder and its three default children.
func DefaultFolders() []Folder {
	return []Folder{
		{ID: RootFolderID, Name: "Root", Path: RootPath, Parent: nil, Order: 0},
		{ID: "navigation", Name: "Navigation", Path: "/navigation", Parent: StringPtr(RootFolderID), Order: 1},
		{ID: "instruments", Name: "Instruments", Path: "/instruments", Parent: StringPtr(RootFolderID), Order: 2},
		{ID: "utilities", Name: "Utilities", Path: "/utilities", Parent: StringPtr(RootFolderID), Order: 3},
	}
}

// DefaultUnits maps each measurement category to its default unit symbol.
func DefaultUnits() map[string]string {
	return map[string]string{
		"airPressure":      "hPa",
		"airTemperature":   "C",
		"waterTemperature": "C",
		"depth":            "mt",
		"distance":         "nm",
		"range":            "rm",
		"vesselSpeed":      "kn",
		"windSpeed":        "kn",
	}
}

// DefaultApplications maps role names to their default companion plugins.
func DefaultApplications() map[string]string {
	return map[string]string{
		"autopilot": "@signalk/signalk-autopilot",
		"anchor":    "signalk-anchoralarm-plugin",
		"mydata":    "signalk-mydata-plugin",
	}
}

// DefaultSignalKPaths returns the closed set of logical sensor keys with
// their default Signal K paths.
func DefaultSignalKPaths() map[string]string {
	return map[string]string{
		"btw":                        "navigation.course.calcValues.bearingTrue",
		"cog":                        "navigation.courseOverGroundTrue",
		"dpt":                        "environment.depth.belowTransducer",
		"dtg":                        "navigation.course.calcValues.distance",
		"eta":                        "navigation.course.calcValues.estimatedTimeOfArrival",
		"hdg":                        "navigation.headingTrue",
		"pos":                        "navigation.position",
		"sog":                        "navigation.speedOverGround",
		"stw":                        "navigation.speedThroughWater",
		"ttg":                        "navigation.course.calcValues.timeToGo",
		"vmg":                        "performance.velocityMadeGood",
		"wpt":                        "navigation.course.nextPoint",
		"xte":                        "navigation.course.calcValues.crossTrackError",
		"rsa":                        "steering.rudderAngle",
		"notifications.abandon":      "notifications.abandon",
		"notifications.adrift":       "notifications.adrift",
		"notifications.fire":         "notifications.fire",
		"notifications.pob":          "notifications.mob",
		"notifications.piracy":       "notifications.piracy",
		"notifications.sinking":      "notifications.sinking",
		"notifications.anchor":       "notifications.anchor",
		"notifications":              "notifications",
		"anchor.bearing":             "navigation.anchor.bearingTrue",
		"anchor.radius":              "navigation.anchor.currentRadius",
		"anchor.distance":            "navigation.anchor.distanceFromBow",
		"anchor.fudge":               "navigation.anchor.fudgeFactor",
		"anchor.max":                 "navigation.anchor.maxRadius",
		"anchor.meta":                "navigation.anchor.meta",
		"anchor.position":            "navigation.anchor.position",
		"anchor.depth":               "environment.depth.belowTransducer",
		"anchor.rode":                "winches.windlass.rode",
		"anchor.actions.up":          "plugins.windlassctl.up",
		"anchor.actions.down":        "plugins.windlassctl.down",
		"anchor.actions.reset":       "plugins.windlassctl.reset",
		"anchor.actions.release":     "plugins.windlassctl.release",
		"anchor.actions.drop":        "plugins.anchoralarm.dropAnchor",
		"anchor.actions.raise":       "plugins.anchoralarm.raiseAnchor",
		"anchor.actions.radius":      "plugins.anchoralarm.setRadius",
		"anchor.actions.rode":        "plugins.anchoralarm.setRodeLength",
		"anchor.actions.set":         "plugins.anchoralarm.setManualAnchor",
		"pob.startTime":              "navigation.courseGreatCircle.activeRoute.startTime",
		"pob.bearing":                "navigation.course.calcValues.bearingTrue",
		"pob.distance":               "navigation.course.calcValues.distance",
		"autopilot.state":            "steering.autopilot.state",
		"autopilot.mode":             "steering.autopilot.mode",
		"autopilot.target.heading":   "steering.autopilot.target.headingMagnetic",
		"autopilot.target.windAngle": "steering.autopilot.target.windAngleApparent",
	}
}

// Decode parses persisted content on top of the default document and runs
// the defaulting pass, so the result never has missing sections.
func Decode(data []byte) (*Document, error) {
	doc := Default()

	// Absent keys keep their defaults. Slices start empty so decoded
	// elements never inherit fields from default entries; Normalize
	// restores them when the key was absent.
	doc.Folders = nil
	doc.Apps = nil

	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	Normalize(doc)

	return doc, nil
}

// Normalize fills every field downstream code relies on. It is idempotent.
func Normalize(doc *Document) {
	if doc.Folders == nil {
		doc.Folders = DefaultFolders()
	}

	if doc.Apps == nil {
		doc.Apps = []App{}
	}

	doc.SignalK = seed(doc.SignalK, DefaultSignalKPaths())
	doc.Units = seed(doc.Units, DefaultUnits())

	if doc.Applications == nil {
		doc.Applications = DefaultApplications()
	}

	ensureRoot(doc)

	seen := make(map[string]bool, len(doc.Apps))

	for i := range doc.Apps {
		// Documents written by older editors carry apps without ids, and a
		// hand-edited file may repeat one.
		if doc.Apps[i].ID == "" || seen[doc.Apps[i].ID] {
			doc.Apps[i].ID = derivedAppID(i, doc.Apps[i].Name)
		}

		seen[doc.Apps[i].ID] = true

		if doc.Apps[i].Source == "" {
			doc.Apps[i].Source = SourceManual
		}

		if doc.Apps[i].Folder == "" {
			doc.Apps[i].Folder = RootPath
		}
	}

	// A slot pointing at an app that no longer exists is emptied.
	for i, id := range doc.BottomBar {
		if id != "" && !seen[id] {
			doc.BottomBar[i] = ""
		}
	}
}

// appIDNamespace scopes the name-based ids given to apps stored without one.
//
//nolint:gochecknoglobals // constant namespace
var appIDNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/OpenFairWind/fairwindsk/apps"))

// derivedAppID is stable for a given position and name, so a document that
// is normalized on every load hands out the same ids each time.
func derivedAppID(position int, name string) string {
	return uuid.NewSHA1(appIDNamespace, fmt.Appendf(nil, "%d/%s", position, name)).String()
}

// seed adds every default key missing from m without touching existing values.
func seed(m, defaults map[string]string) map[string]string {
	if m == nil {
		return defaults
	}

	for k, v := range defaults {
		if _, ok := m[k]; !ok {
			m[k] = v
		}
	}

	return m
}

// ensureRoot re-creates the root folder when a document lost it.
func ensureRoot(doc *Document) {
	for _, f := range doc.Folders {
		if f.IsRoot() && f.Path == RootPath {
			return
		}
	}

	root := DefaultFolders()[0]
	doc.Folders = append([]Folder{root}, doc.Folders...)
}
