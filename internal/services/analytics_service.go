package services

import (
	"context"
	"time"

	"github.com/aqeelraza/maktab-api/internal/models"
	"github.com/aqeelraza/maktab-api/internal/repository"
)

// AnalyticsService assembles the cross-entity financial summaries: the
// period overview and the dashboard headline figures.
type AnalyticsService struct {
	feeRepo     repository.FeeRepository
	expenseRepo repository.ExpenseRepository
	studentRepo repository.StudentRepository
	teacherRepo repository.TeacherRepository
	reports     *ReportService

	now func() time.Time
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(
	feeRepo repository.FeeRepository,
	expenseRepo repository.ExpenseRepository,
	studentRepo repository.StudentRepository,
	teacherRepo repository.TeacherRepository,
	reports *ReportService,
) *AnalyticsService {
	return &AnalyticsService{
		feeRepo:     feeRepo,
		expenseRepo: expenseRepo,
		studentRepo: studentRepo,
		teacherRepo: teacherRepo,
		reports:     reports,
		now:         time.Now,
	}
}

// PeriodOverview builds the four fixed reporting snapshots. The current
// month's outstanding figure comes from the outstanding report, so
// students not yet billed this month are counted too; the ledger alone
// cannot see them.
func (s *AnalyticsService) PeriodOverview(ctx context.Context) (*models.PeriodOverview, error) {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevStart := monthStart.AddDate(0, -1, 0)
	prevEnd := monthStart.Add(-time.Second)
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())

	curMonth, curYear := int(now.Month()), now.Year()
	prevMonth, prevYear := int(prevStart.Month()), prevStart.Year()

	overview := &models.PeriodOverview{}

	current, err := s.snapshot(ctx, "current_month", &curMonth, &curYear, &monthStart, &now)
	if err != nil {
		return nil, err
	}
	outstanding, err := s.reports.OutstandingForPeriod(ctx, &curMonth, &curYear, "", "")
	if err != nil {
		return nil, err
	}
	current.FeeOutstanding = outstanding.Totals.OutstandingAmount
	current.Net = current.FeeCollected - current.Expenses
	overview.CurrentMonth = *current

	previous, err := s.snapshot(ctx, "previous_month", &prevMonth, &prevYear, &prevStart, &prevEnd)
	if err != nil {
		return nil, err
	}
	overview.PreviousMonth = *previous

	ytd, err := s.snapshot(ctx, "year_to_date", nil, &curYear, &yearStart, &now)
	if err != nil {
		return nil, err
	}
	overview.YearToDate = *ytd

	overall, err := s.snapshot(ctx, "overall", nil, nil, nil, nil)
	if err != nil {
		return nil, err
	}
	overview.Overall = *overall

	return overview, nil
}

// snapshot combines fee totals for a ledger period filter with expense
// totals for the matching date range.
func (s *AnalyticsService) snapshot(ctx context.Context, label string, month, year *int, start, end *time.Time) (*models.PeriodSnapshot, error) {
	collected, outstanding, err := s.feeRepo.Totals(ctx, month, year)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenseRepo.TotalForRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.expenseRepo.BreakdownByCategory(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return &models.PeriodSnapshot{
		Label:            label,
		Month:            month,
		Year:             year,
		FeeCollected:     collected,
		FeeOutstanding:   outstanding,
		Expenses:         expenses,
		ExpenseBreakdown: breakdown,
		Net:              collected - expenses,
	}, nil
}

// DashboardOverview returns the landing-page headline counts and totals
func (s *AnalyticsService) DashboardOverview(ctx context.Context) (*models.DashboardOverview, error) {
	students, err := s.studentRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	teachers, err := s.teacherRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	collected, outstanding, err := s.feeRepo.Totals(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.TotalForRange(ctx, nil, nil)
	if err != nil {
		return nil, err
	}

	return &models.DashboardOverview{
		Students:       students,
		Teachers:       teachers,
		FeeCollected:   collected,
		FeeOutstanding: outstanding,
		TotalExpenses:  expenses,
		Net:            collected - expenses,
	}, nil
}
