package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/settings"
)

// Outline renders the folder tree as an indented listing, children in
// display order, each folder followed by its apps.
func (c *Catalog) Outline() string {
	var sb strings.Builder

	root, err := c.FolderByPath(settings.RootPath)
	if err != nil {
		return ""
	}

	c.outline(&sb, root, 0)

	return sb.String()
}

func (c *Catalog) outline(sb *strings.Builder, folder settings.Folder, depth int) {
	// Duplicate ids in an unvalidated document could otherwise recurse forever.
	if depth > len(c.doc.Folders) {
		return
	}

	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(sb, "%s%s (%s)\n", indent, folder.Path, folder.ID)

	for _, app := range c.AppsIn(folder.Path) {
		state := ""
		if !app.Active {
			state = " [inactive]"
		}

		fmt.Fprintf(sb, "%s  - %s%s\n", indent, app.DisplayName, state)
	}

	children, err := c.Children(folder.ID)
	if err != nil {
		return
	}

	for _, child := range children {
		c.outline(sb, child, depth+1)
	}
}

// DOT renders the folder tree and app placement in graphviz DOT format
func (c *Catalog) DOT() string {
	folders := append([]settings.Folder(nil), c.doc.Folders...)
	sort.Slice(folders, func(i, j int) bool { return folders[i].Path < folders[j].Path })

	var sb strings.Builder
	sb.WriteString("digraph catalog {\n")
	sb.WriteString("  rankdir=LR;\n")

	for _, folder := range folders {
		fmt.Fprintf(&sb, "  %q [shape=folder];\n", folder.Path)

		if parent, err := c.Folder(folder.ParentID()); err == nil {
			fmt.Fprintf(&sb, "  %q -> %q;\n", parent.Path, folder.Path)
		}
	}

	apps := append([]settings.App(nil), c.doc.Apps...)
	sort.Slice(apps, func(i, j int) bool { return apps[i].Name < apps[j].Name })

	for _, app := range apps {
		node := "app:" + app.Name
		if app.Active {
			fmt.Fprintf(&sb, "  %q [shape=box, label=%q];\n", node, app.DisplayName)
		} else {
			fmt.Fprintf(&sb, "  %q [shape=box, style=dashed, label=%q];\n", node, app.DisplayName)
		}

		fmt.Fprintf(&sb, "  %q -> %q;\n", effectiveFolder(c.doc, app), node)
	}

	sb.WriteString("}")

	return sb.String()
}
