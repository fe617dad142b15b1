package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"medprep/internal/model"
	"medprep/internal/repository"
)

const dashboardTopUniversities = 5

// DashboardSummary is the admin landing page data
type DashboardSummary struct {
	TotalBookings    int                      `json:"totalBookings"`
	Revenue          int                      `json:"revenue"`
	PendingQuestions int                      `json:"pendingQuestions"`
	TopUniversities  []model.UniversityDemand `json:"topUniversities"`
	FailedCount      int                      `json:"failedSubmissions"`
}

// DashboardService aggregates figures for staff
type DashboardService struct {
	questions   QuestionBackend
	bookings    BookingBackend
	bookingSvc  *BookingService
	submissions repository.SubmissionRepo
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(q QuestionBackend, b BookingBackend, bookingSvc *BookingService, submissions repository.SubmissionRepo) *DashboardService {
	return &DashboardService{
		questions:   q,
		bookings:    b,
		bookingSvc:  bookingSvc,
		submissions: submissions,
	}
}

// Summary fetches every figure concurrently; the first failure cancels the
// rest and is returned.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	var summary DashboardSummary
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		bookings, err := s.bookings.ListBookings(ctx)
		if err != nil {
			return err
		}
		summary.TotalBookings = len(bookings)
		for _, b := range bookings {
			summary.Revenue += b.Amount
		}
		return nil
	})
	g.Go(func() error {
		pending, err := s.questions.ListQuestions(ctx, model.QuestionStatusPending)
		if err != nil {
			return err
		}
		summary.PendingQuestions = len(pending)
		return nil
	})
	g.Go(func() error {
		top, err := s.bookingSvc.Demand(ctx, dashboardTopUniversities)
		if err != nil {
			return err
		}
		summary.TopUniversities = top
		return nil
	})
	g.Go(func() error {
		failed, err := s.submissions.List(ctx, 0)
		if err != nil {
			return err
		}
		summary.FailedCount = len(failed)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &summary, nil
}

// FailedSubmissions lists recorded outbound failures, newest first
func (s *DashboardService) FailedSubmissions(ctx context.Context, limit int64) ([]model.FailedSubmission, error) {
	return s.submissions.List(ctx, limit)
}
