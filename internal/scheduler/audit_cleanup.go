// Package scheduler runs the periodic audit retention sweep.
package scheduler

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"librarian/internal/database/audit"
)

// AuditCleanupScheduler periodically purges audit events past retention.
type AuditCleanupScheduler struct {
	repo          *audit.Repository
	schedule      string
	retentionDays int

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.Mutex
	isRunning bool
}

// NewAuditCleanupScheduler creates a new scheduler instance.
func NewAuditCleanupScheduler(repo *audit.Repository, schedule string, retentionDays int) *AuditCleanupScheduler {
	return &AuditCleanupScheduler{
		repo:          repo,
		schedule:      schedule,
		retentionDays: retentionDays,
		cron:          cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler. Safe to call once; subsequent calls are no-ops.
func (s *AuditCleanupScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.retentionDays <= 0 {
		log.Printf("Audit cleanup scheduler: disabled (retention <= 0)")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.runSweep)
	if err != nil {
		return fmt.Errorf("failed to schedule audit cleanup: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true
	log.Printf("Audit cleanup scheduler: running on schedule %q, retention %d days", s.schedule, s.retentionDays)

	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *AuditCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false
	log.Printf("Audit cleanup scheduler: stopped")
}

// RunOnce performs a single sweep outside the cron schedule.
func (s *AuditCleanupScheduler) RunOnce() (int64, error) {
	retention := time.Duration(s.retentionDays) * 24 * time.Hour
	return s.repo.PurgeOlderThan(retention)
}

func (s *AuditCleanupScheduler) runSweep() {
	purged, err := s.RunOnce()
	if err != nil {
		log.Printf("Audit cleanup sweep failed: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("Audit cleanup sweep removed %d events", purged)
	}
}
