package handlers

import (
	"errors"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/catalog"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/scheduler"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/settings"
	"github.com/gofiber/fiber/v3"
)

// ErrInvalidBody is returned when a request body is not valid JSON of the expected shape
var ErrInvalidBody = fiber.NewError(fiber.StatusBadRequest, "invalid request body")

// ErrSyncUnavailable is returned when no external catalog source is configured
var ErrSyncUnavailable = fiber.NewError(fiber.StatusServiceUnavailable, "catalog sync is not configured")

// toFiberError maps domain errors to HTTP errors
func toFiberError(err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return err
	}

	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, catalog.ErrDuplicatePath),
		errors.Is(err, catalog.ErrDuplicateName),
		errors.Is(err, catalog.ErrFolderNotEmpty),
		errors.Is(err, catalog.ErrCycleDetected),
		errors.Is(err, catalog.ErrInconsistentTree),
		errors.Is(err, scheduler.ErrSyncInProgress):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, catalog.ErrInvalidName),
		errors.Is(err, catalog.ErrInvalidSource),
		errors.Is(err, catalog.ErrInvalidSlot),
		errors.Is(err, catalog.ErrAppInactive),
		errors.Is(err, catalog.ErrRootFolder),
		errors.Is(err, settings.ErrInvalidDocument):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
