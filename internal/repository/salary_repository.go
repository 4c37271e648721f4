package repository

import (
	"context"
	"fmt"

	"github.com/aqeelraza/maktab-api/internal/models"
	"gorm.io/gorm"
)

// SalaryRepository defines the interface for salary payment data access.
// A salary payment and its expense form one logical event; the paired
// methods keep both writes inside a single transaction.
type SalaryRepository interface {
	FindByID(ctx context.Context, id uint) (*models.SalaryPayment, error)
	FindForPeriod(ctx context.Context, teacherID uint, month, year int) (*models.SalaryPayment, error)
	List(ctx context.Context, teacherID *uint) ([]models.SalaryPayment, error)
	CreatePaired(ctx context.Context, payment *models.SalaryPayment, expense *models.Expense) error
	DeletePaired(ctx context.Context, payment *models.SalaryPayment) (slipFallback bool, err error)
	LinkExpense(ctx context.Context, paymentID, expenseID uint) error
	FindUnlinked(ctx context.Context) ([]models.SalaryPayment, error)
}

type salaryRepository struct {
	db *gorm.DB
}

// NewSalaryRepository creates a new salary repository
func NewSalaryRepository(db *gorm.DB) SalaryRepository {
	return &salaryRepository{db: db}
}

func (r *salaryRepository) FindByID(ctx context.Context, id uint) (*models.SalaryPayment, error) {
	var payment models.SalaryPayment
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *salaryRepository) FindForPeriod(ctx context.Context, teacherID uint, month, year int) (*models.SalaryPayment, error) {
	var payment models.SalaryPayment
	err := r.db.WithContext(ctx).
		Where("teacher_id = ? AND month = ? AND year = ?", teacherID, month, year).
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *salaryRepository) List(ctx context.Context, teacherID *uint) ([]models.SalaryPayment, error) {
	var payments []models.SalaryPayment
	db := r.db.WithContext(ctx).Preload("Teacher")
	if teacherID != nil {
		db = db.Where("teacher_id = ?", *teacherID)
	}
	err := db.Order("paid_on DESC").Find(&payments).Error
	return payments, err
}

// CreatePaired inserts the payment, its expense and the link between them in
// one transaction. The unique period index aborts the whole unit if another
// payment for the same (teacher, month, year) got there first.
func (r *salaryRepository) CreatePaired(ctx context.Context, payment *models.SalaryPayment, expense *models.Expense) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		if err := tx.Create(expense).Error; err != nil {
			return fmt.Errorf("create linked expense: %w", err)
		}
		payment.ExpenseID = &expense.ID
		return tx.Model(payment).Update("expense_id", expense.ID).Error
	})
	if err != nil {
		if isDuplicateKeyError(err, "idx_salary_payments_period") {
			return ErrDuplicateSalaryPeriod
		}
		return err
	}
	return nil
}

// DeletePaired removes the payment and its expense in one transaction.
// When the payment has no expense link the expense is matched by slip
// number; slipFallback reports that the legacy path was taken.
func (r *salaryRepository) DeletePaired(ctx context.Context, payment *models.SalaryPayment) (bool, error) {
	slipFallback := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.SalaryPayment{}, payment.ID).Error; err != nil {
			return err
		}
		if payment.ExpenseID != nil {
			return tx.Delete(&models.Expense{}, *payment.ExpenseID).Error
		}
		if payment.SlipNumber != "" {
			slipFallback = true
			return tx.Where("slip_number = ?", payment.SlipNumber).
				Delete(&models.Expense{}).Error
		}
		return nil
	})

	return slipFallback, err
}

func (r *salaryRepository) LinkExpense(ctx context.Context, paymentID, expenseID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.SalaryPayment{}).
		Where("id = ?", paymentID).
		Update("expense_id", expenseID).Error
}

// FindUnlinked returns payments with no expense link, oldest first.
// These are the orphans the reconciliation pass repairs.
func (r *salaryRepository) FindUnlinked(ctx context.Context) ([]models.SalaryPayment, error) {
	var payments []models.SalaryPayment
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Where("expense_id IS NULL").
		Order("paid_on ASC").
		Find(&payments).Error
	return payments, err
}
