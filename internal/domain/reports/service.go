package reports

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dentadmin/console/internal/platform/apiclient"
)

// Range is a validated report date range.
type Range struct {
	Start string // YYYY-MM-DD
	End   string
}

// ParseRange validates the submitted report dates. Both are required; the
// backend rejects anything else anyway, this just saves the round trip.
func ParseRange(start, end string) (Range, error) {
	if start == "" || end == "" {
		return Range{}, errors.New("Please select both start and end dates")
	}
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		return Range{}, errors.New("Invalid start date")
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		return Range{}, errors.New("Invalid end date")
	}
	if e.Before(s) {
		return Range{}, errors.New("End date must not be before start date")
	}
	return Range{Start: start, End: end}, nil
}

func (r Range) query() url.Values {
	q := url.Values{}
	q.Set("start_date", r.Start)
	q.Set("end_date", r.End)
	return q
}

// Data holds the three report fetches with their individual outcomes.
type Data struct {
	Range Range

	Appointments    *AppointmentReport
	AppointmentsErr error

	Patients    *PatientReport
	PatientsErr error

	Revenue    *RevenueReport
	RevenueErr error
}

// Unauthenticated reports whether any fetch failed because the session died.
func (d *Data) Unauthenticated() bool {
	for _, err := range []error{d.AppointmentsErr, d.PatientsErr, d.RevenueErr} {
		if errors.Is(err, apiclient.ErrUnauthenticated) {
			return true
		}
	}
	return false
}

// Service fetches the reporting endpoints.
type Service struct {
	api *apiclient.Client
}

func NewService(api *apiclient.Client) *Service {
	return &Service{api: api}
}

// Generate runs the three report fetches concurrently and joins them.
// The patient report takes no date range. Fetch failures land in the
// per-report error fields; Generate itself never fails.
func (s *Service) Generate(ctx context.Context, token string, r Range) *Data {
	d := &Data{Range: r}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rep := &AppointmentReport{}
		if err := s.api.Get(gctx, token, "/reports/appointments", r.query(), rep); err != nil {
			d.AppointmentsErr = fmt.Errorf("appointment report: %w", err)
			return nil
		}
		d.Appointments = rep
		return nil
	})
	g.Go(func() error {
		rep := &PatientReport{}
		if err := s.api.Get(gctx, token, "/reports/patients", nil, rep); err != nil {
			d.PatientsErr = fmt.Errorf("patient report: %w", err)
			return nil
		}
		d.Patients = rep
		return nil
	})
	g.Go(func() error {
		rep := &RevenueReport{}
		if err := s.api.Get(gctx, token, "/reports/revenue", r.query(), rep); err != nil {
			d.RevenueErr = fmt.Errorf("revenue report: %w", err)
			return nil
		}
		d.Revenue = rep
		return nil
	})
	g.Wait()

	return d
}
