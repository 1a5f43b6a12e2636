package usecases

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type CleanupReport struct {
	Removed int       `json:"removed"`
	RanAt   time.Time `json:"ranAt"`
}

// CleanupService removes orphaned annotation keys, on demand or on a cron
// schedule.
type CleanupService interface {
	RunOnce(ctx context.Context) (CleanupReport, error)
	LastReport() (CleanupReport, bool)
	Start(schedule string) error
	Stop()
}

type cleanupService struct {
	annotations AnnotationService
	log         *zap.SugaredLogger
	timeout     time.Duration

	mu   sync.Mutex
	cron *cron.Cron
	last *CleanupReport
}

func NewCleanupService(annotations AnnotationService, log *zap.SugaredLogger) CleanupService {
	return &cleanupService{
		annotations: annotations,
		log:         log,
		timeout:     time.Minute,
	}
}

func (s *cleanupService) RunOnce(ctx context.Context) (CleanupReport, error) {
	removed, err := s.annotations.CleanupOrphans(ctx)
	if err != nil {
		return CleanupReport{}, err
	}
	report := CleanupReport{Removed: removed, RanAt: time.Now().UTC()}

	s.mu.Lock()
	s.last = &report
	s.mu.Unlock()
	return report, nil
}

func (s *cleanupService) LastReport() (CleanupReport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return CleanupReport{}, false
	}
	return *s.last, true
}

// Start schedules RunOnce. schedule uses the six-field cron format with
// seconds.
func (s *cleanupService) Start(schedule string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		return nil
	}

	c := cron.New(cron.WithSeconds())
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		report, err := s.RunOnce(ctx)
		if err != nil {
			s.log.Warnw("orphan cleanup failed", "error", err)
			return
		}
		if report.Removed > 0 {
			s.log.Infow("orphan cleanup finished", "removed", report.Removed)
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	s.cron = c
	s.log.Infow("orphan cleanup scheduled", "schedule", schedule)
	return nil
}

// Stop waits for a running cleanup to finish.
func (s *cleanupService) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
}
