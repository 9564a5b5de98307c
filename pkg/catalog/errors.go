package catalog

import "errors"

// Catalog errors
var (
	// ErrNotFound is returned when a referenced folder or app does not exist
	ErrNotFound = errors.New("not found")
	// ErrDuplicatePath is returned when a folder path is already taken
	ErrDuplicatePath = errors.New("folder path already exists")
	// ErrDuplicateName is returned when an app name is already taken
	ErrDuplicateName = errors.New("app name already exists")
	// ErrCycleDetected is returned when a folder move would create a parentage cycle
	ErrCycleDetected = errors.New("folder parentage cycle detected")
	// ErrFolderNotEmpty is returned when deleting a folder that still has apps or subfolders
	ErrFolderNotEmpty = errors.New("folder is not empty")
	// ErrInvalidName is returned for empty names or names containing a path separator
	ErrInvalidName = errors.New("invalid name")
	// ErrInvalidSource is returned for an app source other than manual or signalk
	ErrInvalidSource = errors.New("invalid app source")
	// ErrRootFolder is returned when an operation would rename, move or delete the root
	ErrRootFolder = errors.New("root folder cannot be changed")
	// ErrInvalidSlot is returned for a bottom-bar slot outside 0..3
	ErrInvalidSlot = errors.New("invalid bottom bar slot")
	// ErrAppInactive is returned when binding an inactive app to the bottom bar
	ErrAppInactive = errors.New("app is not active")
	// ErrInconsistentTree is returned when the folder tree or its references are broken
	ErrInconsistentTree = errors.New("catalog is inconsistent")
)
