package catalog

import (
	"strings"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/settings"
)

// Folder paths suggested by Classify
const (
	NavigationPath  = "/navigation"
	InstrumentsPath = "/instruments"
	UtilitiesPath   = "/utilities"
)

type keywordSet struct {
	path     string
	keywords []string
}

// classifiers are checked in order; the first match wins.
//
//nolint:gochecknoglobals // read-only lookup table
var classifiers = []keywordSet{
	{
		path: NavigationPath,
		keywords: []string{
			"nav", "chart", "map", "plotter", "route", "waypoint", "anchor",
			"ais", "gps", "autopilot", "course", "tide", "radar",
		},
	},
	{
		path: InstrumentsPath,
		keywords: []string{
			"instrument", "gauge", "dashboard", "display", "wind", "depth",
			"speed", "engine", "battery", "tank", "meter", "sensor", "weather", "kip",
		},
	},
	{
		path: UtilitiesPath,
		keywords: []string{
			"util", "tool", "log", "config", "setting", "admin", "monitor",
			"debug", "backup", "editor", "data", "server",
		},
	},
}

// Classify suggests a folder path for an app from its name and
// description. Apps matching no keyword set belong to the root.
func Classify(name, description string) string {
	text := strings.ToLower(name + " " + description)

	for _, set := range classifiers {
		for _, keyword := range set.keywords {
			if strings.Contains(text, keyword) {
				return set.path
			}
		}
	}

	return settings.RootPath
}
