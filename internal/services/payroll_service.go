package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aqeelraza/maktab-api/internal/models"
	"github.com/aqeelraza/maktab-api/internal/repository"
	"github.com/aqeelraza/maktab-api/pkg/logger"
	"gorm.io/gorm"
)

// PayrollService pays teacher salaries. Every disbursement writes two
// records, the salary payment and its teacher-salary expense, so payroll
// shows up in the school's spend without double entry by staff.
type PayrollService struct {
	repo        repository.SalaryRepository
	teacherRepo repository.TeacherRepository
	expenseRepo repository.ExpenseRepository

	now func() time.Time
}

// NewPayrollService creates a new payroll service
func NewPayrollService(repo repository.SalaryRepository, teacherRepo repository.TeacherRepository, expenseRepo repository.ExpenseRepository) *PayrollService {
	return &PayrollService{
		repo:        repo,
		teacherRepo: teacherRepo,
		expenseRepo: expenseRepo,
		now:         time.Now,
	}
}

// PaySalaryInput carries one salary disbursement request
type PaySalaryInput struct {
	TeacherID uint
	Month     int
	Year      int
	Amount    *float64
	Remarks   *string
}

// PaySalary disburses one teacher's salary for a period. The amount
// defaults to the teacher's contracted salary; a second payment for the
// same (teacher, month, year) is rejected as a conflict. The payment and
// its expense commit or roll back together.
func (s *PayrollService) PaySalary(ctx context.Context, input PaySalaryInput) (*models.SalaryPayment, error) {
	if input.TeacherID == 0 {
		return nil, fmt.Errorf("%w: teacher id is required", ErrInvalidArgument)
	}
	if input.Month < 1 || input.Month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidArgument)
	}
	if input.Year < 2000 {
		return nil, fmt.Errorf("%w: year %d", ErrInvalidArgument, input.Year)
	}

	teacher, err := s.teacherRepo.FindByID(ctx, input.TeacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: teacher %d", ErrNotFound, input.TeacherID)
		}
		return nil, err
	}

	amount := teacher.Salary
	if input.Amount != nil {
		amount = *input.Amount
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidArgument)
	}

	now := s.now()
	slip := GenerateSlipNumber(SlipPrefixSalary, now)

	payment := &models.SalaryPayment{
		TeacherID:  teacher.ID,
		Month:      input.Month,
		Year:       input.Year,
		Amount:     amount,
		PaidOn:     now,
		SlipNumber: slip,
		Remarks:    input.Remarks,
	}

	expense := &models.Expense{
		Title:      fmt.Sprintf("Salary: %s (%02d/%d)", teacher.Name, input.Month, input.Year),
		Category:   models.ExpenseCategoryTeacherSalary,
		Amount:     amount,
		IncurredOn: now,
		SlipNumber: &slip,
		Notes:      input.Remarks,
	}

	if err := s.repo.CreatePaired(ctx, payment, expense); err != nil {
		if errors.Is(err, repository.ErrDuplicateSalaryPeriod) {
			return nil, fmt.Errorf("%w: salary already paid to teacher %d for %02d/%d",
				ErrConflict, teacher.ID, input.Month, input.Year)
		}
		return nil, fmt.Errorf("pay salary: %w", err)
	}

	payment.Teacher = *teacher
	return payment, nil
}

// DeletePayment reverses a disbursement, removing the payment and its
// expense together. Payments without an expense link fall back to slip
// number correlation, which is logged since a reused slip could match
// the wrong expense.
func (s *PayrollService) DeletePayment(ctx context.Context, id uint) error {
	payment, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}

	slipFallback, err := s.repo.DeletePaired(ctx, payment)
	if err != nil {
		return fmt.Errorf("delete salary payment: %w", err)
	}

	if slipFallback {
		logger.Warn("salary expense removed via slip number fallback",
			"payment_id", payment.ID,
			"slip_number", payment.SlipNumber)
	}
	return nil
}

func (s *PayrollService) FindByID(ctx context.Context, id uint) (*models.SalaryPayment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: salary payment %d", ErrNotFound, id)
		}
		return nil, err
	}
	return payment, nil
}

func (s *PayrollService) ListPayments(ctx context.Context, teacherID *uint) ([]models.SalaryPayment, error) {
	return s.repo.List(ctx, teacherID)
}

// ReconcileOrphans repairs payments that have no expense link. The
// matching expense is found by slip number and linked; when none exists
// one is created from the payment. Returns the number of payments fixed.
func (s *PayrollService) ReconcileOrphans(ctx context.Context) (int, error) {
	orphans, err := s.repo.FindUnlinked(ctx)
	if err != nil {
		return 0, err
	}

	fixed := 0
	for _, payment := range orphans {
		expense, err := s.expenseRepo.FindBySlipNumber(ctx, payment.SlipNumber)
		if err != nil {
			return fixed, err
		}

		if expense == nil {
			slip := payment.SlipNumber
			expense = &models.Expense{
				Title:      fmt.Sprintf("Salary: %s (%02d/%d)", payment.Teacher.Name, payment.Month, payment.Year),
				Category:   models.ExpenseCategoryTeacherSalary,
				Amount:     payment.Amount,
				IncurredOn: payment.PaidOn,
				SlipNumber: &slip,
			}
			if err := s.expenseRepo.Create(ctx, expense); err != nil {
				return fixed, fmt.Errorf("recreate payroll expense: %w", err)
			}
			logger.Info("recreated missing payroll expense",
				"payment_id", payment.ID,
				"expense_id", expense.ID)
		}

		if err := s.repo.LinkExpense(ctx, payment.ID, expense.ID); err != nil {
			return fixed, err
		}
		fixed++
	}
	return fixed, nil
}
