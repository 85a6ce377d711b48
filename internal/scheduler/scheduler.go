// Package scheduler runs the periodic jobs of the leave management:
// reminders, end of sick pay notifications and next year's accounts.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"urlaubsverwaltung/internal/config"
	"urlaubsverwaltung/internal/logger"
	"urlaubsverwaltung/internal/service"
)

const (
	JobRemindWaiting    = "remind_waiting_applications"
	JobRemindUpcoming   = "remind_upcoming_applications"
	JobEndOfSickPay     = "end_of_sick_pay_notification"
	JobNextYearAccounts = "create_next_year_accounts"
)

// Observer is told about every job run.
type Observer interface {
	ObserveJob(job string, items int, err error, d time.Duration)
}

// Job is a named task with a cron spec. Run returns the number of handled items.
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context) (int, error)
}

// Scheduler triggers jobs by their cron spec.
type Scheduler struct {
	cron     *cron.Cron
	log      *zap.Logger
	observer Observer

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	running bool
}

// New creates a scheduler evaluating specs in loc. observer may be nil.
func New(loc *time.Location, log *zap.Logger, observer Observer) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		log:      log,
		observer: observer,
		ctx:      context.Background(),
	}
}

// Add schedules job.
func (s *Scheduler) Add(job Job) error {
	if _, err := s.cron.AddFunc(job.Spec, func() { s.Run(s.baseContext(), job) }); err != nil {
		return fmt.Errorf("schedule job %s with spec %q: %w", job.Name, job.Spec, err)
	}
	s.log.Info("job scheduled", zap.String("job", job.Name), zap.String("spec", job.Spec))
	return nil
}

// Start runs the scheduled jobs in the background until Stop is called or ctx ends.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.cron.Start()
	s.log.Info("scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop prevents new runs and waits for running jobs or until ctx ends.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	cancel := s.cancel
	s.mu.Unlock()

	done := s.cron.Stop()
	defer cancel()

	select {
	case <-done.Done():
		s.log.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) baseContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

// Run executes job once and reports the outcome.
func (s *Scheduler) Run(ctx context.Context, job Job) {
	log := s.log.With(zap.String("job", job.Name))
	ctx = logger.WithContext(ctx, log)

	start := time.Now()
	n, err := job.Run(ctx)
	elapsed := time.Since(start)

	if s.observer != nil {
		s.observer.ObserveJob(job.Name, n, err, elapsed)
	}
	if err != nil {
		log.Error("job failed", zap.Int("items", n), zap.Duration("duration", elapsed), zap.Error(err))
		return
	}
	log.Info("job finished", zap.Int("items", n), zap.Duration("duration", elapsed))
}

// Jobs builds the periodic jobs from their configured specs.
func Jobs(cfg config.SchedulerConfig, applications service.ApplicationService,
	sickNotes service.SickNoteService, accounts service.AccountService, loc *time.Location) []Job {
	return []Job{
		{Name: JobRemindWaiting, Spec: cfg.RemindWaitingSpec, Run: applications.RemindWaitingApplications},
		{Name: JobRemindUpcoming, Spec: cfg.RemindUpcomingSpec, Run: applications.RemindUpcomingApplications},
		{Name: JobEndOfSickPay, Spec: cfg.EndOfSickPaySpec, Run: sickNotes.SendEndOfSickPayNotification},
		{
			Name: JobNextYearAccounts,
			Spec: cfg.NextYearAccountsSpec,
			Run: func(ctx context.Context) (int, error) {
				// Runs early on 1 January: yesterday's year is the reference.
				return accounts.CreateAccountsForNextYear(ctx, now().In(loc).AddDate(0, 0, -1).Year())
			},
		},
	}
}

var now = time.Now
