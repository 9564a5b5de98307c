package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/settings"
)

// Catalog operations, used as metric labels
const (
	OperationAddFolder    = "add_folder"
	OperationMoveFolder   = "move_folder"
	OperationDeleteFolder = "delete_folder"
	OperationAddApp       = "add_app"
	OperationUpdateApp    = "update_app"
	OperationDeleteApp    = "delete_app"
	OperationReorderApps  = "reorder_apps"
	OperationSetSlot      = "set_bottom_bar_slot"
	OperationSync         = "sync"
)

// Folder returns the folder with the given id
func (c *Catalog) Folder(id string) (settings.Folder, error) {
	i := folderIndex(c.doc, id)
	if i < 0 {
		return settings.Folder{}, fmt.Errorf("%w: folder %s", ErrNotFound, id)
	}

	return cloneFolder(c.doc.Folders[i]), nil
}

// FolderByPath returns the folder with the given path
func (c *Catalog) FolderByPath(path string) (settings.Folder, error) {
	i := folderPathIndex(c.doc, path)
	if i < 0 {
		return settings.Folder{}, fmt.Errorf("%w: folder path %s", ErrNotFound, path)
	}

	return cloneFolder(c.doc.Folders[i]), nil
}

// Children returns the direct subfolders of id in display order
func (c *Catalog) Children(id string) ([]settings.Folder, error) {
	if folderIndex(c.doc, id) < 0 {
		return nil, fmt.Errorf("%w: folder %s", ErrNotFound, id)
	}

	children := make([]settings.Folder, 0)
	for i := range c.doc.Folders {
		if !c.doc.Folders[i].IsRoot() && c.doc.Folders[i].ParentID() == id {
			children = append(children, cloneFolder(c.doc.Folders[i]))
		}
	}

	sort.SliceStable(children, func(i, j int) bool {
		return children[i].Order < children[j].Order
	})

	return children, nil
}

// AddFolder creates a folder named name under parentID (the root when
// empty). Its path is the parent path plus the lower-cased name.
func (c *Catalog) AddFolder(name, parentID string) (settings.Folder, error) {
	var created settings.Folder

	err := c.apply(OperationAddFolder, func(doc *settings.Document) error {
		folderName, err := checkName(name)
		if err != nil {
			return err
		}

		parent, err := resolveParent(doc, parentID)
		if err != nil {
			return err
		}

		path := childPath(parent.Path, folderName)
		if folderPathIndex(doc, path) >= 0 {
			return fmt.Errorf("%w: %s", ErrDuplicatePath, path)
		}

		created = settings.Folder{
			ID:     c.newID(),
			Name:   folderName,
			Path:   path,
			Parent: settings.StringPtr(parent.ID),
			Order:  siblingCount(doc, parent.ID),
		}
		doc.Folders = append(doc.Folders, created)

		return nil
	})
	if err != nil {
		return settings.Folder{}, err
	}

	return cloneFolder(created), nil
}

// RenameOrMoveFolder renames id and/or moves it under newParentID. An empty
// name or parent keeps the current value. Paths of the folder and its
// subtree are recomputed, and apps pointing at a rewritten path follow it.
func (c *Catalog) RenameOrMoveFolder(id, name, newParentID string) (settings.Folder, error) {
	var updated settings.Folder

	err := c.apply(OperationMoveFolder, func(doc *settings.Document) error {
		i := folderIndex(doc, id)
		if i < 0 {
			return fmt.Errorf("%w: folder %s", ErrNotFound, id)
		}

		folder := &doc.Folders[i]
		if folder.IsRoot() {
			return ErrRootFolder
		}

		folderName := folder.Name
		if strings.TrimSpace(name) != "" {
			checked, err := checkName(name)
			if err != nil {
				return err
			}

			folderName = checked
		}

		parentID := newParentID
		if parentID == "" {
			parentID = folder.ParentID()
		}

		p := folderIndex(doc, parentID)
		if p < 0 {
			return fmt.Errorf("%w: parent folder %s", ErrNotFound, parentID)
		}

		t, err := buildTree(doc.Folders)
		if err != nil {
			return err
		}

		if parentID == id || t.isDescendant(id, parentID) {
			return fmt.Errorf("%w: %s cannot move under its own subtree", ErrCycleDetected, id)
		}

		oldPath := folder.Path
		newPath := childPath(doc.Folders[p].Path, folderName)

		if newPath != oldPath && folderPathIndex(doc, newPath) >= 0 {
			return fmt.Errorf("%w: %s", ErrDuplicatePath, newPath)
		}

		if parentID != folder.ParentID() {
			folder.Order = siblingCount(doc, parentID)
			folder.Parent = settings.StringPtr(parentID)
		}

		folder.Name = folderName
		folder.Path = newPath

		if newPath != oldPath {
			rewritePaths(doc, t.descendants(id), oldPath, newPath)
		}

		updated = cloneFolder(*folder)

		return nil
	})
	if err != nil {
		return settings.Folder{}, err
	}

	return updated, nil
}

// DeleteFolder removes an empty folder. It never cascades: subfolders and
// apps must be moved or deleted first.
func (c *Catalog) DeleteFolder(id string) error {
	return c.apply(OperationDeleteFolder, func(doc *settings.Document) error {
		i := folderIndex(doc, id)
		if i < 0 {
			return fmt.Errorf("%w: folder %s", ErrNotFound, id)
		}

		folder := doc.Folders[i]
		if folder.IsRoot() {
			return ErrRootFolder
		}

		if n := siblingCount(doc, id); n > 0 {
			return fmt.Errorf("%w: %s has %d subfolders", ErrFolderNotEmpty, folder.Path, n)
		}

		for j := range doc.Apps {
			if doc.Apps[j].Folder == folder.Path {
				return fmt.Errorf("%w: %s contains app %s", ErrFolderNotEmpty, folder.Path, doc.Apps[j].Name)
			}
		}

		doc.Folders = append(doc.Folders[:i], doc.Folders[i+1:]...)

		return nil
	})
}

// rewritePaths moves every descendant path and app reference from the
// oldPath prefix to newPath.
func rewritePaths(doc *settings.Document, descendants []string, oldPath, newPath string) {
	moved := map[string]string{oldPath: newPath}

	for _, descendantID := range descendants {
		j := folderIndex(doc, descendantID)
		if j < 0 {
			continue
		}

		previous := doc.Folders[j].Path
		doc.Folders[j].Path = newPath + strings.TrimPrefix(previous, oldPath)
		moved[previous] = doc.Folders[j].Path
	}

	for j := range doc.Apps {
		if target, ok := moved[doc.Apps[j].Folder]; ok {
			doc.Apps[j].Folder = target
		}
	}
}

func resolveParent(doc *settings.Document, parentID string) (settings.Folder, error) {
	if parentID == "" {
		i := folderPathIndex(doc, settings.RootPath)
		if i < 0 {
			return settings.Folder{}, fmt.Errorf("%w: no root folder", ErrInconsistentTree)
		}

		return doc.Folders[i], nil
	}

	i := folderIndex(doc, parentID)
	if i < 0 {
		return settings.Folder{}, fmt.Errorf("%w: parent folder %s", ErrNotFound, parentID)
	}

	return doc.Folders[i], nil
}

func siblingCount(doc *settings.Document, parentID string) int {
	count := 0

	for i := range doc.Folders {
		if !doc.Folders[i].IsRoot() && doc.Folders[i].ParentID() == parentID {
			count++
		}
	}

	return count
}

func folderIndex(doc *settings.Document, id string) int {
	for i := range doc.Folders {
		if doc.Folders[i].ID == id {
			return i
		}
	}

	return -1
}

func folderPathIndex(doc *settings.Document, path string) int {
	for i := range doc.Folders {
		if doc.Folders[i].Path == path {
			return i
		}
	}

	return -1
}

func cloneFolder(f settings.Folder) settings.Folder {
	if f.Parent != nil {
		f.Parent = settings.StringPtr(*f.Parent)
	}

	return f
}
