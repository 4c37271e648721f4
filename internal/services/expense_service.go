package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aqeelraza/maktab-api/internal/models"
	"github.com/aqeelraza/maktab-api/internal/repository"
	"gorm.io/gorm"
)

// ExpenseService handles operating expense records. Payroll-derived
// expenses are owned by the payroll service: they cannot be created or
// removed here, only through their salary payment.
type ExpenseService struct {
	repo repository.ExpenseRepository

	now func() time.Time
}

// NewExpenseService creates a new expense service
func NewExpenseService(repo repository.ExpenseRepository) *ExpenseService {
	return &ExpenseService{
		repo: repo,
		now:  time.Now,
	}
}

// CreateExpenseInput carries a new spend record
type CreateExpenseInput struct {
	Title      string
	Category   string
	Amount     float64
	IncurredOn *time.Time
	Notes      *string
}

var validExpenseCategories = map[string]bool{
	models.ExpenseCategoryOperations: true,
	models.ExpenseCategoryUtilities:  true,
	models.ExpenseCategoryOther:      true,
}

// Create records an operating expense. The teacher-salary category is
// reserved for the payroll service.
func (s *ExpenseService) Create(ctx context.Context, input CreateExpenseInput) (*models.Expense, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidArgument)
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidArgument)
	}

	category := input.Category
	if category == "" {
		category = models.ExpenseCategoryOther
	}
	if category == models.ExpenseCategoryTeacherSalary {
		return nil, fmt.Errorf("%w: teacher salary expenses are created through payroll", ErrInvalidArgument)
	}
	if !validExpenseCategories[category] {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidArgument, category)
	}

	incurredOn := s.now()
	if input.IncurredOn != nil {
		incurredOn = *input.IncurredOn
	}

	expense := &models.Expense{
		Title:      input.Title,
		Category:   category,
		Amount:     input.Amount,
		IncurredOn: incurredOn,
		Notes:      input.Notes,
	}

	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// UpdateExpenseInput carries a partial expense update
type UpdateExpenseInput struct {
	Title      *string
	Category   *string
	Amount     *float64
	IncurredOn *time.Time
	Notes      *string
}

func (s *ExpenseService) Update(ctx context.Context, id uint, input UpdateExpenseInput) (*models.Expense, error) {
	expense, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense.IsPayrollDerived() {
		return nil, fmt.Errorf("%w: payroll expense %d is managed through its salary payment", ErrConflict, id)
	}

	if input.Title != nil {
		expense.Title = *input.Title
	}
	if input.Category != nil {
		if !validExpenseCategories[*input.Category] {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidArgument, *input.Category)
		}
		expense.Category = *input.Category
	}
	if input.Amount != nil {
		if *input.Amount <= 0 {
			return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidArgument)
		}
		expense.Amount = *input.Amount
	}
	if input.IncurredOn != nil {
		expense.IncurredOn = *input.IncurredOn
	}
	if input.Notes != nil {
		expense.Notes = input.Notes
	}

	if err := s.repo.Update(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// Delete removes an operating expense. Payroll-derived expenses are
// rejected; deleting the salary payment removes them.
func (s *ExpenseService) Delete(ctx context.Context, id uint) error {
	expense, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if expense.IsPayrollDerived() {
		return fmt.Errorf("%w: payroll expense %d is managed through its salary payment", ErrConflict, id)
	}
	return s.repo.Delete(ctx, id)
}

func (s *ExpenseService) FindByID(ctx context.Context, id uint) (*models.Expense, error) {
	expense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: expense %d", ErrNotFound, id)
		}
		return nil, err
	}
	return expense, nil
}

func (s *ExpenseService) List(ctx context.Context, start, end *time.Time, category string) ([]models.Expense, error) {
	return s.repo.List(ctx, start, end, category)
}

// Summary returns the per-month expense breakdown plus totals for the
// fixed reporting ranges.
func (s *ExpenseService) Summary(ctx context.Context) (*models.ExpenseSummary, error) {
	breakdown, err := s.repo.MonthlyTotals(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	// anchor to the first of the month so month-end dates roll back cleanly
	prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)

	summary := &models.ExpenseSummary{Breakdown: breakdown}
	for _, row := range breakdown {
		summary.Overall += row.Total
		if row.Year == now.Year() {
			summary.YearToDate += row.Total
			if row.Month == int(now.Month()) {
				summary.CurrentMonth = row.Total
			}
		}
		if row.Year == prev.Year() && row.Month == int(prev.Month()) {
			summary.PreviousMonth = row.Total
		}
	}
	return summary, nil
}
