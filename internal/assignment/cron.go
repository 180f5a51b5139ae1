package assignment

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strconv"
	"strings"
	"time"
)

// ClockTime is a wall-clock instant ("HH:MM") in the dispatch zone.
type ClockTime struct {
	Hour   int
	Minute int
}

func ParseClockTime(s string) (ClockTime, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return ClockTime{}, fmt.Errorf("invalid clock time %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return ClockTime{}, fmt.Errorf("invalid clock time %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("invalid clock time %q", s)
	}
	return ClockTime{Hour: hour, Minute: minute}, nil
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// next returns the first occurrence of the clock time strictly after now.
func (t ClockTime) next(now time.Time, zone *time.Location) time.Time {
	local := now.In(zone)
	at := time.Date(local.Year(), local.Month(), local.Day(), t.Hour, t.Minute, 0, 0, zone)
	if !at.After(local) {
		at = at.AddDate(0, 0, 1)
	}
	return at
}

// Run starts the daily refresh and the nightly clear as independent loops.
// A panic or failure in one never cancels the other; both stop when ctx is
// done.
func (s *Service) Run(ctx context.Context, refreshAt, clearAt ClockTime) {
	go s.runDaily(ctx, refreshAt, "assignment refresh", func(jobCtx context.Context) {
		if err := s.Refresh(jobCtx); err != nil {
			// Fail-soft: the previous snapshot stays in place.
			slog.ErrorContext(jobCtx, "daily assignment refresh failed", slog.String("error", err.Error()))
		}
	})
	go s.runDaily(ctx, clearAt, "assignment clear", func(context.Context) {
		s.Clear()
	})
}

func (s *Service) runDaily(ctx context.Context, at ClockTime, name string, job func(context.Context)) {
	for {
		wait := time.Until(at.next(s.now(), s.cfg.Zone))
		timer := time.NewTimer(wait)

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.runJob(ctx, name, job)
		}
	}
}

func (s *Service) runJob(ctx context.Context, name string, job func(context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "scheduled job panicked",
				slog.String("job", name),
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()
	job(ctx)
}
