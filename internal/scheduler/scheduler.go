package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/alumnitrack/alumni-api/internal/model"
	"github.com/alumnitrack/alumni-api/internal/repository"
	"github.com/alumnitrack/alumni-api/internal/service/notification"
	"github.com/alumnitrack/alumni-api/pkg/logger"
	"github.com/alumnitrack/alumni-api/pkg/metrics"
)

const (
	jobReminder    = "reminder"
	jobUnconfirmed = "unconfirmed_alert"

	reminderWindow = 24 * time.Hour
)

// Scheduler runs the two periodic meeting jobs: reminders for meetings
// entering the 24h window, and alerts for meetings still unconfirmed. Jobs
// only read meeting state; they never mutate it.
type Scheduler struct {
	repo     repository.MeetingRepository
	notifier notification.Service
	logger   *logger.Logger
	metrics  *metrics.Metrics
	loc      *time.Location
	now      func() time.Time

	reminderInterval    time.Duration
	unconfirmedInterval time.Duration

	// Per-job guards: a tick that fires while the previous run is still in
	// progress is skipped, never stacked.
	reminderMu    sync.Mutex
	unconfirmedMu sync.Mutex
}

type Option func(*Scheduler)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithMetrics attaches prometheus counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Scheduler) { s.metrics = m }
}

// WithIntervals overrides the tick periods.
func WithIntervals(reminder, unconfirmed time.Duration) Option {
	return func(s *Scheduler) {
		s.reminderInterval = reminder
		s.unconfirmedInterval = unconfirmed
	}
}

func New(repo repository.MeetingRepository, notifier notification.Service, log *logger.Logger, loc *time.Location, opts ...Option) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	s := &Scheduler{
		repo:                repo,
		notifier:            notifier,
		logger:              log,
		loc:                 loc,
		now:                 time.Now,
		reminderInterval:    30 * time.Minute,
		unconfirmedInterval: time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start runs both jobs until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		s.runLoop(ctx, jobReminder, s.reminderInterval, s.RunReminderTick)
	}()
	go func() {
		defer wg.Done()
		s.runLoop(ctx, jobUnconfirmed, s.unconfirmedInterval, s.RunUnconfirmedTick)
	}()

	wg.Wait()
}

func (s *Scheduler) runLoop(ctx context.Context, name string, interval time.Duration, tick func(context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.ZL.Info().Str("job", name).Dur("interval", interval).Msg("scheduler job started")

	for {
		select {
		case <-ctx.Done():
			s.logger.ZL.Info().Str("job", name).Msg("scheduler job stopped")
			return
		case <-ticker.C:
			tick(ctx)
		}
	}
}

// RunReminderTick scans pendiente and confirmada meetings and sends the
// reminder template to every meeting whose start lies within the next 24
// hours. There is no per-meeting watermark: a meeting inside the window is
// reminded again on every tick until it starts.
func (s *Scheduler) RunReminderTick(ctx context.Context) {
	s.runGuarded(ctx, jobReminder, &s.reminderMu, s.remind)
}

// RunUnconfirmedTick scans the same candidate set and alerts every meeting
// still in pendiente, regardless of how far away it is.
func (s *Scheduler) RunUnconfirmedTick(ctx context.Context) {
	s.runGuarded(ctx, jobUnconfirmed, &s.unconfirmedMu, s.alertUnconfirmed)
}

func (s *Scheduler) runGuarded(ctx context.Context, name string, mu *sync.Mutex, run func(context.Context)) {
	if !mu.TryLock() {
		if s.metrics != nil {
			s.metrics.JobSkipped.WithLabelValues(name).Inc()
		}
		s.logger.ZL.Warn().Str("job", name).Msg("previous run still in progress, skipping tick")
		return
	}
	defer mu.Unlock()

	var timer *prometheus.Timer
	if s.metrics != nil {
		timer = prometheus.NewTimer(s.metrics.JobDuration.WithLabelValues(name))
	}
	run(ctx)
	if timer != nil {
		timer.ObserveDuration()
	}
}

func (s *Scheduler) remind(ctx context.Context) {
	meetings, err := s.repo.ListActiveWithEmail(ctx)
	if err != nil {
		s.logger.ZL.Error().Err(err).Str("job", jobReminder).Msg("failed to load candidate meetings")
		return
	}

	now := s.now().In(s.loc)
	for _, m := range meetings {
		if s.metrics != nil {
			s.metrics.MeetingsScanned.Inc()
		}
		if m.AlumnusEmail == "" {
			s.logger.ZL.Debug().Str("meeting_id", m.ID.String()).Msg("alumnus has no email, skipping")
			continue
		}

		startsAt, err := m.StartsAt(s.loc)
		if err != nil {
			s.jobFailure(jobReminder, m, err, "unparseable meeting datetime")
			continue
		}

		delta := startsAt.Sub(now)
		if delta <= 0 || delta > reminderWindow {
			continue
		}

		id := m.ID
		if _, err := s.notifier.NotifyMeetingEvent(ctx, m.AlumnusID, m.AlumnusEmail,
			model.MeetingEventReminder, m.MeetingDate, m.MeetingTime, &id, ""); err != nil {
			s.jobFailure(jobReminder, m, err, "failed to send reminder")
			continue
		}
		if s.metrics != nil {
			s.metrics.RemindersSent.Inc()
		}
	}
}

func (s *Scheduler) alertUnconfirmed(ctx context.Context) {
	meetings, err := s.repo.ListActiveWithEmail(ctx)
	if err != nil {
		s.logger.ZL.Error().Err(err).Str("job", jobUnconfirmed).Msg("failed to load candidate meetings")
		return
	}

	for _, m := range meetings {
		if s.metrics != nil {
			s.metrics.MeetingsScanned.Inc()
		}
		if m.Status != model.MeetingStatusPending {
			continue
		}
		if m.AlumnusEmail == "" {
			s.logger.ZL.Debug().Str("meeting_id", m.ID.String()).Msg("alumnus has no email, skipping")
			continue
		}

		id := m.ID
		if _, err := s.notifier.NotifyMeetingEvent(ctx, m.AlumnusID, m.AlumnusEmail,
			model.MeetingEventUnconfirmedAlert, m.MeetingDate, m.MeetingTime, &id, ""); err != nil {
			s.jobFailure(jobUnconfirmed, m, err, "failed to send unconfirmed alert")
			continue
		}
		if s.metrics != nil {
			s.metrics.AlertsSent.Inc()
		}
	}
}

// jobFailure logs one meeting's failure and lets the tick continue with the
// remaining candidates.
func (s *Scheduler) jobFailure(job string, m *model.MeetingReminder, err error, msg string) {
	if s.metrics != nil {
		s.metrics.JobFailures.WithLabelValues(job).Inc()
	}
	s.logger.ZL.Error().Err(err).
		Str("job", job).
		Str("meeting_id", m.ID.String()).
		Msg(msg)
}
