package repository

import (
	"context"
	"time"

	"github.com/aqeelraza/maktab-api/internal/models"
	"gorm.io/gorm"
)

// ExpenseRepository defines the interface for expense data access
type ExpenseRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Expense, error)
	FindBySlipNumber(ctx context.Context, slipNumber string) (*models.Expense, error)
	Create(ctx context.Context, expense *models.Expense) error
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, start, end *time.Time, category string) ([]models.Expense, error)
	TotalForRange(ctx context.Context, start, end *time.Time) (float64, error)
	BreakdownByCategory(ctx context.Context, start, end *time.Time) (map[string]float64, error)
	MonthlyTotals(ctx context.Context) ([]models.ExpensePeriodTotal, error)
}

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) FindByID(ctx context.Context, id uint) (*models.Expense, error) {
	var expense models.Expense
	err := r.db.WithContext(ctx).First(&expense, id).Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// FindBySlipNumber returns the expense carrying a slip number, or nil when
// none matches. Used to correlate payroll expenses that predate the link
// column.
func (r *expenseRepository) FindBySlipNumber(ctx context.Context, slipNumber string) (*models.Expense, error) {
	var expense models.Expense
	err := r.db.WithContext(ctx).
		Where("slip_number = ?", slipNumber).
		First(&expense).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) Update(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

func (r *expenseRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Expense{}, id).Error
}

func (r *expenseRepository) List(ctx context.Context, start, end *time.Time, category string) ([]models.Expense, error) {
	var expenses []models.Expense
	db := r.db.WithContext(ctx)
	if start != nil {
		db = db.Where("incurred_on >= ?", *start)
	}
	if end != nil {
		db = db.Where("incurred_on <= ?", *end)
	}
	if category != "" {
		db = db.Where("category = ?", category)
	}
	err := db.Order("incurred_on DESC").Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepository) TotalForRange(ctx context.Context, start, end *time.Time) (float64, error) {
	var result struct {
		Total float64
	}

	db := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0) AS total")
	if start != nil {
		db = db.Where("incurred_on >= ?", *start)
	}
	if end != nil {
		db = db.Where("incurred_on <= ?", *end)
	}

	err := db.Scan(&result).Error
	return result.Total, err
}

func (r *expenseRepository) BreakdownByCategory(ctx context.Context, start, end *time.Time) (map[string]float64, error) {
	var rows []struct {
		Category string
		Total    float64
	}

	db := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Group("category")
	if start != nil {
		db = db.Where("incurred_on >= ?", *start)
	}
	if end != nil {
		db = db.Where("incurred_on <= ?", *end)
	}

	if err := db.Scan(&rows).Error; err != nil {
		return nil, err
	}

	breakdown := make(map[string]float64, len(rows))
	for _, row := range rows {
		breakdown[row.Category] = row.Total
	}
	return breakdown, nil
}

func (r *expenseRepository) MonthlyTotals(ctx context.Context) ([]models.ExpensePeriodTotal, error) {
	var totals []models.ExpensePeriodTotal
	err := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Select("EXTRACT(YEAR FROM incurred_on)::int AS year, EXTRACT(MONTH FROM incurred_on)::int AS month, COALESCE(SUM(amount), 0) AS total").
		Group("year, month").
		Order("year DESC, month DESC").
		Scan(&totals).Error
	return totals, err
}
