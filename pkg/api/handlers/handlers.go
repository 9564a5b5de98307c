// Package handlers implements the settings and catalog HTTP endpoints.
package handlers

import (
	"context"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/catalog"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/scheduler"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/settings"
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// Store is the document store the handlers read and write
type Store interface {
	Load(ctx context.Context) *settings.Document
	Replace(ctx context.Context, doc *settings.Document) error
	PatchJSON(ctx context.Context, data []byte) error
	ResetToDefault(ctx context.Context) error
}

// Syncer pulls the external app catalog into the document
type Syncer interface {
	Run(ctx context.Context, trigger string) (catalog.SyncResult, error)
	Status() scheduler.Status
}

// Server holds the dependencies of the request handlers
type Server struct {
	store  Store
	syncer Syncer
	log    logrus.FieldLogger
}

// NewServer creates a new API server instance. syncer may be nil, in which
// case the sync endpoints report 503.
func NewServer(store Store, syncer Syncer, log logrus.FieldLogger) *Server {
	return &Server{
		store:  store,
		syncer: syncer,
		log:    log.WithField("component", "api.handlers"),
	}
}

// RegisterHandlers registers every route on router
func (s *Server) RegisterHandlers(router fiber.Router) {
	router.Get("/config", s.GetConfig)
	router.Put("/config", s.PutConfig)
	router.Patch("/config", s.PatchConfig)
	router.Post("/config/reset", s.ResetConfig)
	router.Get("/config/default", s.GetDefaultConfig)

	router.Get("/folders", s.ListFolders)
	router.Post("/folders", s.CreateFolder)
	router.Put("/folders/:id", s.UpdateFolder)
	router.Delete("/folders/:id", s.DeleteFolder)

	router.Get("/apps", s.ListApps)
	router.Post("/apps", s.CreateApp)
	router.Post("/apps/reorder", s.ReorderApps)
	router.Get("/apps/sync", s.GetSyncStatus)
	router.Post("/apps/sync", s.SyncApps)
	router.Put("/apps/:id", s.UpdateApp)
	router.Delete("/apps/:id", s.DeleteApp)

	router.Put("/bottombar/:slot", s.SetBottomBarSlot)
}

// success renders the write acknowledgement, with optional extra fields
func success(c fiber.Ctx, message string, extra fiber.Map) error {
	body := fiber.Map{"success": true, "message": message}
	for k, v := range extra {
		body[k] = v
	}

	return c.Status(fiber.StatusOK).JSON(body)
}
