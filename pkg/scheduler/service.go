package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Service defines the public interface for the scheduler
type Service interface {
	// Start registers the sync job and starts the cron loop
	Start(ctx context.Context) error

	// Stop waits for a running sync and shuts the cron loop down
	Stop() error
}

// service runs the catalog sync on a cron schedule
type service struct {
	log    logrus.FieldLogger
	cfg    *Config
	syncer *Syncer

	cron *cron.Cron

	// Synchronization
	done chan struct{}
	wg   sync.WaitGroup
}

// NewService creates a new scheduler service
func NewService(log logrus.FieldLogger, cfg *Config, syncer *Syncer) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &service{
		log:    log.WithField("service", "scheduler"),
		cfg:    cfg,
		syncer: syncer,
		cron:   cron.New(cron.WithParser(parser())),
		done:   make(chan struct{}),
	}, nil
}

// Start registers the sync job and starts the cron loop
func (s *service) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.cfg.Schedule, func() { s.runOnce(ctx, TriggerSchedule) }); err != nil {
		return fmt.Errorf("failed to register sync job: %w", err)
	}

	s.cron.Start()
	s.syncer.setScheduled(true)

	if s.cfg.RunOnStart {
		s.wg.Add(1)

		go func() {
			defer s.wg.Done()
			s.runOnce(ctx, TriggerStartup)
		}()
	}

	s.log.WithField("schedule", s.cfg.Schedule).Info("Scheduler service started")

	return nil
}

// Stop waits for a running sync and shuts the cron loop down
func (s *service) Stop() error {
	close(s.done)

	<-s.cron.Stop().Done()
	s.wg.Wait()
	s.syncer.setScheduled(false)

	s.log.Info("Scheduler service stopped")

	return nil
}

func (s *service) runOnce(ctx context.Context, trigger string) {
	select {
	case <-s.done:
		return
	default:
	}

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	if _, err := s.syncer.Run(runCtx, trigger); err != nil {
		s.log.WithError(err).WithField("trigger", trigger).Debug("Scheduled sync did not complete")
	}
}

// Verify interface compliance at compile time
var _ Service = (*service)(nil)
