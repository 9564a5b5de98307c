package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/settings"
	"github.com/gofiber/fiber/v3"
)

// GetConfig handles GET /config
func (s *Server) GetConfig(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(s.store.Load(c.Context()))
}

// GetDefaultConfig handles GET /config/default
func (s *Server) GetDefaultConfig(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(settings.Default())
}

// PutConfig handles PUT /config, replacing the whole document
func (s *Server) PutConfig(c fiber.Ctx) error {
	doc, err := decodeDocument(c.Body())
	if err != nil {
		return err
	}

	if err := s.store.Replace(c.Context(), doc); err != nil {
		s.log.WithError(err).Error("Error updating configuration")
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save configuration")
	}

	return success(c, "Configuration saved", nil)
}

// PatchConfig handles PATCH /config, merging a partial document
func (s *Server) PatchConfig(c fiber.Ctx) error {
	if err := s.store.PatchJSON(c.Context(), c.Body()); err != nil {
		if errors.Is(err, settings.ErrInvalidDocument) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		s.log.WithError(err).Error("Error patching configuration")

		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update configuration")
	}

	return success(c, "Configuration updated", nil)
}

// ResetConfig handles POST /config/reset
func (s *Server) ResetConfig(c fiber.Ctx) error {
	if err := s.store.ResetToDefault(c.Context()); err != nil {
		s.log.WithError(err).Error("Error resetting configuration")
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to reset configuration")
	}

	return success(c, "Configuration reset to defaults", nil)
}

// decodeDocument parses a full document body verbatim
func decodeDocument(body []byte) (*settings.Document, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid settings document: expected a JSON object")
	}

	doc := &settings.Document{}
	if err := json.Unmarshal(trimmed, doc); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid settings document: %v", err))
	}

	return doc, nil
}

// decodeBody parses a JSON request body into dst
func decodeBody(body []byte, dst any) error {
	if err := json.Unmarshal(body, dst); err != nil {
		return fiber.NewError(ErrInvalidBody.Code, fmt.Sprintf("%s: %v", ErrInvalidBody.Message, err))
	}

	return nil
}
