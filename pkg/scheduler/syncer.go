package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/catalog"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/observability"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/rendering"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/settings"
	"github.com/sirupsen/logrus"
)

// Sync triggers, used as metric labels
const (
	TriggerSchedule = "schedule"
	TriggerManual   = "manual"
	TriggerStartup  = "startup"
)

// ErrSyncInProgress is returned when a sync is requested while one is running
var ErrSyncInProgress = errors.New("catalog sync already in progress")

// DocumentStore is the part of settings.Store a sync needs
type DocumentStore interface {
	Load(ctx context.Context) *settings.Document
	Replace(ctx context.Context, doc *settings.Document) error
}

// WebappSource lists the apps published by the external catalog
type WebappSource interface {
	Webapps(ctx context.Context) ([]catalog.ExternalApp, error)
}

// Status describes the outcome of the most recent sync
type Status struct {
	LastRun   time.Time          `json:"lastRun"`
	Trigger   string             `json:"trigger"`
	Result    catalog.SyncResult `json:"result"`
	Error     string             `json:"error,omitempty"`
	Running   bool               `json:"running"`
	Scheduled bool               `json:"scheduled"`
}

// Syncer runs Load → catalog.Sync → Replace. Runs never overlap.
type Syncer struct {
	log      logrus.FieldLogger
	store    DocumentStore
	source   WebappSource
	renderer *rendering.TemplateEngine

	running sync.Mutex

	mu     sync.RWMutex
	status Status
}

// NewSyncer creates a catalog syncer
func NewSyncer(log logrus.FieldLogger, store DocumentStore, source WebappSource, urlTemplate string) (*Syncer, error) {
	renderer, err := rendering.NewTemplateEngine(urlTemplate)
	if err != nil {
		return nil, err
	}

	return &Syncer{
		log:      log.WithField("component", "catalog-sync"),
		store:    store,
		source:   source,
		renderer: renderer,
	}, nil
}

// Run pulls the external catalog and merges it into the document. The
// document is only written when the sync changed something.
func (s *Syncer) Run(ctx context.Context, trigger string) (catalog.SyncResult, error) {
	if !s.running.TryLock() {
		return catalog.SyncResult{}, ErrSyncInProgress
	}
	defer s.running.Unlock()

	s.setRunning(true)

	result, err := s.run(ctx)

	s.mu.Lock()
	s.status.LastRun = time.Now().UTC()
	s.status.Trigger = trigger
	s.status.Result = result
	s.status.Running = false
	s.status.Error = ""
	if err != nil {
		s.status.Error = err.Error()
	}
	s.mu.Unlock()

	status := "success"
	if err != nil {
		status = "failed"
	}

	observability.RecordCatalogSync(trigger, status, result.Added, result.Updated)

	log := s.log.WithFields(logrus.Fields{
		"trigger": trigger,
		"added":   result.Added,
		"updated": result.Updated,
	})

	if err != nil {
		log.WithError(err).Error("Catalog sync failed")
		return result, err
	}

	log.Info("Catalog sync completed")

	return result, nil
}

func (s *Syncer) run(ctx context.Context) (catalog.SyncResult, error) {
	apps, err := s.source.Webapps(ctx)
	if err != nil {
		return catalog.SyncResult{}, fmt.Errorf("failed to fetch external catalog: %w", err)
	}

	c := catalog.New(s.store.Load(ctx), catalog.WithURLRenderer(s.renderer.Render))

	result, err := c.Sync(apps)
	if err != nil {
		return catalog.SyncResult{}, err
	}

	if result.Added == 0 && result.Updated == 0 {
		return result, nil
	}

	if err := s.store.Replace(ctx, c.Document()); err != nil {
		return catalog.SyncResult{}, err
	}

	return result, nil
}

// Status returns the outcome of the most recent sync
func (s *Syncer) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.status
}

func (s *Syncer) setRunning(running bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status.Running = running
}

func (s *Syncer) setScheduled(scheduled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status.Scheduled = scheduled
}
