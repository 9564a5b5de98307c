package handlers

import (
	"strconv"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/catalog"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/settings"
	"github.com/gofiber/fiber/v3"
)

type folderRequest struct {
	Name   string `json:"name"`
	Parent string `json:"parent"`
}

type reorderRequest struct {
	Folder string   `json:"folder"`
	IDs    []string `json:"ids"`
}

type slotRequest struct {
	App string `json:"app"`
}

// ListFolders handles GET /folders
func (s *Server) ListFolders(c fiber.Ctx) error {
	doc := catalog.New(s.store.Load(c.Context())).Document()

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"folders": doc.Folders,
		"total":   len(doc.Folders),
	})
}

// CreateFolder handles POST /folders
func (s *Server) CreateFolder(c fiber.Ctx) error {
	var req folderRequest
	if err := decodeBody(c.Body(), &req); err != nil {
		return err
	}

	var folder settings.Folder

	err := s.editCatalog(c, func(cat *catalog.Catalog) error {
		var err error
		folder, err = cat.AddFolder(req.Name, req.Parent)

		return err
	})
	if err != nil {
		return err
	}

	return success(c, "Folder created", fiber.Map{"folder": folder})
}

// UpdateFolder handles PUT /folders/:id, renaming and/or moving a folder
func (s *Server) UpdateFolder(c fiber.Ctx) error {
	var req folderRequest
	if err := decodeBody(c.Body(), &req); err != nil {
		return err
	}

	var folder settings.Folder

	err := s.editCatalog(c, func(cat *catalog.Catalog) error {
		var err error
		folder, err = cat.RenameOrMoveFolder(c.Params("id"), req.Name, req.Parent)

		return err
	})
	if err != nil {
		return err
	}

	return success(c, "Folder updated", fiber.Map{"folder": folder})
}

// DeleteFolder handles DELETE /folders/:id
func (s *Server) DeleteFolder(c fiber.Ctx) error {
	err := s.editCatalog(c, func(cat *catalog.Catalog) error {
		return cat.DeleteFolder(c.Params("id"))
	})
	if err != nil {
		return err
	}

	return success(c, "Folder deleted", nil)
}

// ListApps handles GET /apps, optionally restricted to ?folder=<path>
func (s *Server) ListApps(c fiber.Ctx) error {
	cat := catalog.New(s.store.Load(c.Context()))

	apps := cat.Document().Apps
	if folder := c.Query("folder"); folder != "" {
		apps = cat.AppsIn(folder)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"apps":  apps,
		"total": len(apps),
	})
}

// CreateApp handles POST /apps
func (s *Server) CreateApp(c fiber.Ctx) error {
	var fields catalog.AppFields
	if err := decodeBody(c.Body(), &fields); err != nil {
		return err
	}

	var app settings.App

	err := s.editCatalog(c, func(cat *catalog.Catalog) error {
		var err error
		app, err = cat.AddApp(fields)

		return err
	})
	if err != nil {
		return err
	}

	return success(c, "App created", fiber.Map{"app": app})
}

// UpdateApp handles PUT /apps/:id. Only the supplied fields change.
func (s *Server) UpdateApp(c fiber.Ctx) error {
	var fields catalog.AppFields
	if err := decodeBody(c.Body(), &fields); err != nil {
		return err
	}

	var app settings.App

	err := s.editCatalog(c, func(cat *catalog.Catalog) error {
		var err error
		app, err = cat.UpdateApp(c.Params("id"), fields)

		return err
	})
	if err != nil {
		return err
	}

	return success(c, "App updated", fiber.Map{"app": app})
}

// DeleteApp handles DELETE /apps/:id
func (s *Server) DeleteApp(c fiber.Ctx) error {
	err := s.editCatalog(c, func(cat *catalog.Catalog) error {
		return cat.DeleteApp(c.Params("id"))
	})
	if err != nil {
		return err
	}

	return success(c, "App deleted", nil)
}

// ReorderApps handles POST /apps/reorder
func (s *Server) ReorderApps(c fiber.Ctx) error {
	var req reorderRequest
	if err := decodeBody(c.Body(), &req); err != nil {
		return err
	}

	if req.Folder == "" {
		req.Folder = settings.RootPath
	}

	err := s.editCatalog(c, func(cat *catalog.Catalog) error {
		return cat.ReorderApps(req.Folder, req.IDs)
	})
	if err != nil {
		return err
	}

	return success(c, "Apps reordered", nil)
}

// SetBottomBarSlot handles PUT /bottombar/:slot
func (s *Server) SetBottomBarSlot(c fiber.Ctx) error {
	slot, err := strconv.Atoi(c.Params("slot"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "slot must be a number")
	}

	var req slotRequest
	if err := decodeBody(c.Body(), &req); err != nil {
		return err
	}

	var bar [settings.BottomBarSlots]string

	err = s.editCatalog(c, func(cat *catalog.Catalog) error {
		if err := cat.SetBottomBarSlot(slot, req.App); err != nil {
			return err
		}

		bar = cat.BottomBar()

		return nil
	})
	if err != nil {
		return err
	}

	return success(c, "Bottom bar updated", fiber.Map{"bottomBar": bar})
}

// editCatalog checks out the document, applies edit and persists the result
// with a full replace.
func (s *Server) editCatalog(c fiber.Ctx, edit func(cat *catalog.Catalog) error) error {
	cat := catalog.New(s.store.Load(c.Context()))

	if err := edit(cat); err != nil {
		return toFiberError(err)
	}

	if err := s.store.Replace(c.Context(), cat.Document()); err != nil {
		s.log.WithError(err).Error("Error saving catalog edit")
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save configuration")
	}

	return nil
}
