package handlers

import (
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/scheduler"
	"github.com/gofiber/fiber/v3"
)

// SyncApps handles POST /apps/sync, pulling the Signal K web apps into the catalog
func (s *Server) SyncApps(c fiber.Ctx) error {
	if s.syncer == nil {
		return ErrSyncUnavailable
	}

	result, err := s.syncer.Run(c.Context(), scheduler.TriggerManual)
	if err != nil {
		return toFiberError(err)
	}

	return success(c, "Catalog synchronized", fiber.Map{
		"added":   result.Added,
		"updated": result.Updated,
	})
}

// GetSyncStatus handles GET /apps/sync
func (s *Server) GetSyncStatus(c fiber.Ctx) error {
	if s.syncer == nil {
		return ErrSyncUnavailable
	}

	return c.Status(fiber.StatusOK).JSON(s.syncer.Status())
}
