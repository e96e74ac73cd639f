package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Refresher reloads the currency snapshot.
type Refresher interface {
	LoadCatalog(ctx context.Context) error
}

// Scheduler refreshes the catalog on a cron schedule.
type Scheduler struct {
	Cron      *cron.Cron
	Refresher Refresher
	Ctx       context.Context

	// running serializes refreshes so a slow fetch is not overlapped by the next tick.
	running sync.Mutex
}

// NewScheduler creates a new Scheduler. Cron specs include a seconds field.
func NewScheduler(ctx context.Context, r Refresher) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Refresher: r,
		Ctx:       ctx,
	}
}

// Register schedules the catalog refresh.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	logrus.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	logrus.Info("scheduler stopped")
}

// RefreshNow runs the refresh task immediately.
func (s *Scheduler) RefreshNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	if !s.running.TryLock() {
		logrus.Debug("refresh already running, skipping tick")
		return
	}
	defer s.running.Unlock()

	if s.Ctx.Err() != nil {
		return
	}
	logrus.Debug("running catalog refresh")
	if err := s.Refresher.LoadCatalog(s.Ctx); err != nil {
		logrus.WithError(err).Error("scheduled catalog refresh")
	}
}
