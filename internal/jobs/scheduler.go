package jobs

import (
	"context"
	"fmt"
	"time"

	"hotel-booking/internal/data/repository"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	completeBookingsSpec = "@every 15m"
	cleanSessionsSpec    = "0 3 * * *"
	limiterCleanupSpec   = "@every 10m"

	jobTimeout = time.Minute
)

// Cleaner drops idle state, e.g. the per-IP rate limiter.
type Cleaner interface {
	Cleanup() int
}

type job struct {
	spec string
	name string
	run  func(context.Context)
}

// Scheduler runs the periodic maintenance jobs.
type Scheduler struct {
	cron    *cron.Cron
	repo    *repository.Repository
	limiter Cleaner
	log     *zap.Logger
	now     func() time.Time
}

func NewScheduler(repo *repository.Repository, limiter Cleaner, log *zap.Logger) *Scheduler {
	log = log.With(zap.String("component", "jobs"))

	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cronLogger{log.Sugar()}),
			cron.WithChain(
				cron.Recover(cronLogger{log.Sugar()}),
				cron.SkipIfStillRunning(cronLogger{log.Sugar()}),
			),
		),
		repo:    repo,
		limiter: limiter,
		log:     log,
		now:     time.Now,
	}
}

// Start registers the jobs and runs them until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	jobs := []job{
		{completeBookingsSpec, "complete finished bookings", s.CompleteFinishedBookings},
		{cleanSessionsSpec, "clean expired sessions", s.CleanExpiredSessions},
	}
	if s.limiter != nil {
		jobs = append(jobs, job{limiterCleanupSpec, "rate limiter cleanup", s.CleanupRateLimiter})
	}

	for _, job := range jobs {
		run := job.run
		if _, err := s.cron.AddFunc(job.spec, func() {
			jobCtx, cancel := context.WithTimeout(ctx, jobTimeout)
			defer cancel()
			run(jobCtx)
		}); err != nil {
			return fmt.Errorf("schedule %s: %w", job.name, err)
		}
	}

	s.cron.Start()
	s.log.Info("Job scheduler started", zap.Int("jobs", len(s.cron.Entries())))

	go func() {
		<-ctx.Done()
		<-s.cron.Stop().Done()
		s.log.Info("Job scheduler stopped")
	}()

	return nil
}

// CompleteFinishedBookings marks confirmed bookings whose check-out passed as completed.
func (s *Scheduler) CompleteFinishedBookings(ctx context.Context) {
	n, err := s.repo.Booking.CompleteFinished(ctx, s.now())
	if err != nil {
		s.log.Error("Failed to complete finished bookings", zap.Error(err))
		return
	}
	s.log.Info("Completed finished bookings", zap.Int64("rows", n))
}

// CleanExpiredSessions deletes sessions that expired over a week ago.
func (s *Scheduler) CleanExpiredSessions(ctx context.Context) {
	n, err := s.repo.Session.CleanExpiredSessions(ctx)
	if err != nil {
		s.log.Error("Failed to clean expired sessions", zap.Error(err))
		return
	}
	s.log.Info("Cleaned expired sessions", zap.Int64("rows", n))
}

func (s *Scheduler) CleanupRateLimiter(context.Context) {
	if n := s.limiter.Cleanup(); n > 0 {
		s.log.Debug("Dropped idle rate limiter entries", zap.Int("entries", n))
	}
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
