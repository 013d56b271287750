// Package dashboard aggregates the landing view: summary statistics, today's
// schedule, and the upcoming week, fetched concurrently so one slow or
// failing card never blanks the others.
package dashboard

import (
	"context"
	"errors"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dentadmin/console/internal/domain/appointment"
	"github.com/dentadmin/console/internal/platform/apiclient"
	"github.com/dentadmin/console/internal/view"
)

const upcomingLimit = 5

// Stats is the backend's dashboard summary.
type Stats struct {
	TodayAppointments    int `json:"today_appointments"`
	WeekAppointments     int `json:"week_appointments"`
	TotalPatients        int `json:"total_patients"`
	NewPatientsThisMonth int `json:"new_patients_this_month"`
	UpcomingAppointments int `json:"upcoming_appointments"`
}

// Data holds the three dashboard cards with their individual outcomes.
type Data struct {
	Stats    *Stats
	StatsErr error

	Today    []appointment.Appointment
	TodayErr error

	Upcoming    []appointment.Appointment
	UpcomingErr error
}

// Unauthenticated reports whether any card failed because the session died.
// One dead card means they all are; the whole page goes back to login.
func (d *Data) Unauthenticated() bool {
	for _, err := range []error{d.StatsErr, d.TodayErr, d.UpcomingErr} {
		if errors.Is(err, apiclient.ErrUnauthenticated) {
			return true
		}
	}
	return false
}

// Service fetches and assembles the dashboard.
type Service struct {
	api   *apiclient.Client
	appts *appointment.Service
	now   func() time.Time
}

func NewService(api *apiclient.Client, appts *appointment.Service) *Service {
	return &Service{api: api, appts: appts, now: time.Now}
}

// Overview runs the three card fetches concurrently and joins them. Card
// failures land in the per-card error fields; Overview itself never fails.
func (s *Service) Overview(ctx context.Context, token string) *Data {
	now := s.now()
	d := &Data{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats := &Stats{}
		if err := s.api.Get(gctx, token, "/reports/dashboard", nil, stats); err != nil {
			d.StatsErr = err
			return nil
		}
		d.Stats = stats
		return nil
	})
	g.Go(func() error {
		today, err := s.appts.ForDate(gctx, token, now.Format("2006-01-02"))
		if err != nil {
			d.TodayErr = err
			return nil
		}
		d.Today = today
		return nil
	})
	g.Go(func() error {
		scheduled, err := s.appts.Scheduled(gctx, token)
		if err != nil {
			d.UpcomingErr = err
			return nil
		}
		d.Upcoming = UpcomingWindow(scheduled, now)
		return nil
	})
	g.Wait()

	return d
}

// UpcomingWindow filters scheduled appointments to the upcoming week: strictly
// after now, dated tomorrow through the end of the Monday-to-Sunday week that
// contains tomorrow, sorted ascending, capped at five. When today is Sunday
// the window wraps into the following week. Today's remaining appointments
// belong to the today card, not here.
func UpcomingWindow(appointments []appointment.Appointment, now time.Time) []appointment.Appointment {
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)

	// Days from tomorrow to the Sunday closing its week.
	toSunday := (7 - int(tomorrow.Weekday())) % 7
	end := tomorrow.AddDate(0, 0, toSunday+1)

	type timed struct {
		at   time.Time
		appt appointment.Appointment
	}
	window := []timed{}
	for _, a := range appointments {
		at, ok := view.ParseTime(a.AppointmentDate)
		if !ok {
			continue
		}
		if !at.After(now) {
			continue
		}
		if at.Before(tomorrow) || !at.Before(end) {
			continue
		}
		window = append(window, timed{at: at, appt: a})
	}

	sort.Slice(window, func(i, j int) bool { return window[i].at.Before(window[j].at) })

	out := []appointment.Appointment{}
	for i, w := range window {
		if i == upcomingLimit {
			break
		}
		out = append(out, w.appt)
	}
	return out
}
