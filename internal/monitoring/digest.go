package monitoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/mgavilanes/campline-be/internal/models"
	"github.com/mgavilanes/campline-be/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// DigestScheduler posts a daily announcement summarizing the events
// scheduled for the current day.
type DigestScheduler struct {
	eventSvc services.EventServiceProvider
	annSvc   services.AnnouncementServiceProvider
	schedule cron.Schedule
	next     time.Time
	ticker   *time.Ticker
	done     chan bool
}

// NewDigestScheduler creates a scheduler from a standard cron
// expression, e.g. "0 8 * * *" for 8 AM daily.
func NewDigestScheduler(eventSvc services.EventServiceProvider, annSvc services.AnnouncementServiceProvider, cronExpr string) (*DigestScheduler, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid digest cron expression %q: %w", cronExpr, err)
	}
	return &DigestScheduler{
		eventSvc: eventSvc,
		annSvc:   annSvc,
		schedule: schedule,
		next:     schedule.Next(time.Now()),
		done:     make(chan bool),
	}, nil
}

// Run starts the scheduler's ticking loop.
func (s *DigestScheduler) Run() {
	log.Info().Time("next_run", s.next).Msg("Starting digest scheduler...")
	s.ticker = time.NewTicker(1 * time.Minute)
	defer s.ticker.Stop()

	for {
		select {
		case <-s.done:
			log.Info().Msg("Stopping digest scheduler.")
			return
		case now := <-s.ticker.C:
			if now.After(s.next) {
				s.postDigest(now)
				s.next = s.schedule.Next(now)
			}
		}
	}
}

// Stop halts the scheduler.
func (s *DigestScheduler) Stop() {
	s.done <- true
}

// postDigest posts an announcement listing today's events. Days
// without events post nothing.
func (s *DigestScheduler) postDigest(now time.Time) {
	events, err := s.eventSvc.GetAllEvents()
	if err != nil {
		log.Error().Err(err).Msg("Digest: failed to load events")
		return
	}

	today := now.Format(models.DateLayout)
	var lines []string
	for _, ev := range events {
		if ev.Date == today {
			lines = append(lines, fmt.Sprintf("- %s (%s)", ev.Title, ev.Urgency.Label()))
		}
	}
	if len(lines) == 0 {
		log.Info().Str("date", today).Msg("Digest: no events today, skipping")
		return
	}

	title := fmt.Sprintf("Events for %s", today)
	if _, err := s.annSvc.CreateAnnouncement(title, strings.Join(lines, "\n")); err != nil {
		log.Error().Err(err).Msg("Digest: failed to post announcement")
		return
	}
	log.Info().Int("events", len(lines)).Str("date", today).Msg("Digest posted")
}
