package services

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/aqeelraza/maktab-api/internal/models"
	"github.com/aqeelraza/maktab-api/internal/repository"
	"github.com/aqeelraza/maktab-api/pkg/logger"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	logger.Setup("test")
	os.Exit(m.Run())
}

// Hand-written repository mocks shared by the service tests. Each method
// dispatches to a func field when set and returns zero values otherwise.

type mockStudentRepo struct {
	repository.StudentRepository
	mockFindByID            func(ctx context.Context, id uint) (*models.Student, error)
	mockCreate              func(ctx context.Context, student *models.Student) error
	mockUpdate              func(ctx context.Context, student *models.Student) error
	mockFindActive          func(ctx context.Context, classGroup, className string) ([]models.Student, error)
	mockAdmissionNumbers    func(ctx context.Context, prefix string) ([]string, error)
	mockUpdateLastFeePaidOn func(ctx context.Context, id uint, paidOn *time.Time) error
	mockCountActive         func(ctx context.Context) (int64, error)
}

func (m *mockStudentRepo) FindByID(ctx context.Context, id uint) (*models.Student, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) Create(ctx context.Context, student *models.Student) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, student)
	}
	return nil
}

func (m *mockStudentRepo) Update(ctx context.Context, student *models.Student) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, student)
	}
	return nil
}

func (m *mockStudentRepo) Delete(ctx context.Context, id uint) error { return nil }

func (m *mockStudentRepo) FindActive(ctx context.Context, classGroup, className string) ([]models.Student, error) {
	if m.mockFindActive != nil {
		return m.mockFindActive(ctx, classGroup, className)
	}
	return nil, nil
}

func (m *mockStudentRepo) AdmissionNumbers(ctx context.Context, prefix string) ([]string, error) {
	if m.mockAdmissionNumbers != nil {
		return m.mockAdmissionNumbers(ctx, prefix)
	}
	return nil, nil
}

func (m *mockStudentRepo) UpdateLastFeePaidOn(ctx context.Context, id uint, paidOn *time.Time) error {
	if m.mockUpdateLastFeePaidOn != nil {
		return m.mockUpdateLastFeePaidOn(ctx, id, paidOn)
	}
	return nil
}

func (m *mockStudentRepo) CountActive(ctx context.Context) (int64, error) {
	if m.mockCountActive != nil {
		return m.mockCountActive(ctx)
	}
	return 0, nil
}

type mockFeeRepo struct {
	repository.FeeRepository
	mockFindByID         func(ctx context.Context, id uint) (*models.FeeRecord, error)
	mockFindForPeriod    func(ctx context.Context, studentID uint, month, year int) (*models.FeeRecord, error)
	mockUpsertPayment    func(ctx context.Context, record *models.FeeRecord, incoming float64) error
	mockDelete           func(ctx context.Context, id uint) error
	mockFindAllForPeriod func(ctx context.Context, month, year int) ([]models.FeeRecord, error)
	mockFindOutstanding  func(ctx context.Context) ([]models.FeeRecord, error)
	mockLatestPaidOn     func(ctx context.Context, studentID uint) (*time.Time, error)
	mockTotals           func(ctx context.Context, month, year *int) (float64, float64, error)
	mockMonthlyTotals    func(ctx context.Context) ([]models.FeePeriodTotal, error)
}

func (m *mockFeeRepo) FindByID(ctx context.Context, id uint) (*models.FeeRecord, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFeeRepo) FindForPeriod(ctx context.Context, studentID uint, month, year int) (*models.FeeRecord, error) {
	if m.mockFindForPeriod != nil {
		return m.mockFindForPeriod(ctx, studentID, month, year)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFeeRepo) UpsertPayment(ctx context.Context, record *models.FeeRecord, incoming float64) error {
	if m.mockUpsertPayment != nil {
		return m.mockUpsertPayment(ctx, record, incoming)
	}
	return nil
}

func (m *mockFeeRepo) Delete(ctx context.Context, id uint) error {
	if m.mockDelete != nil {
		return m.mockDelete(ctx, id)
	}
	return nil
}

func (m *mockFeeRepo) FindByStudent(ctx context.Context, studentID uint) ([]models.FeeRecord, error) {
	return nil, nil
}

func (m *mockFeeRepo) FindAllForPeriod(ctx context.Context, month, year int) ([]models.FeeRecord, error) {
	if m.mockFindAllForPeriod != nil {
		return m.mockFindAllForPeriod(ctx, month, year)
	}
	return nil, nil
}

func (m *mockFeeRepo) FindOutstanding(ctx context.Context) ([]models.FeeRecord, error) {
	if m.mockFindOutstanding != nil {
		return m.mockFindOutstanding(ctx)
	}
	return nil, nil
}

func (m *mockFeeRepo) LatestPaidOn(ctx context.Context, studentID uint) (*time.Time, error) {
	if m.mockLatestPaidOn != nil {
		return m.mockLatestPaidOn(ctx, studentID)
	}
	return nil, nil
}

func (m *mockFeeRepo) Totals(ctx context.Context, month, year *int) (float64, float64, error) {
	if m.mockTotals != nil {
		return m.mockTotals(ctx, month, year)
	}
	return 0, 0, nil
}

func (m *mockFeeRepo) MonthlyTotals(ctx context.Context) ([]models.FeePeriodTotal, error) {
	if m.mockMonthlyTotals != nil {
		return m.mockMonthlyTotals(ctx)
	}
	return nil, nil
}

type mockTeacherRepo struct {
	repository.TeacherRepository
	mockFindByID    func(ctx context.Context, id uint) (*models.Teacher, error)
	mockCreate      func(ctx context.Context, teacher *models.Teacher) error
	mockCountActive func(ctx context.Context) (int64, error)
}

func (m *mockTeacherRepo) FindByID(ctx context.Context, id uint) (*models.Teacher, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, teacher)
	}
	return nil
}

func (m *mockTeacherRepo) Update(ctx context.Context, teacher *models.Teacher) error { return nil }
func (m *mockTeacherRepo) Delete(ctx context.Context, id uint) error                 { return nil }

func (m *mockTeacherRepo) CountActive(ctx context.Context) (int64, error) {
	if m.mockCountActive != nil {
		return m.mockCountActive(ctx)
	}
	return 0, nil
}

type mockSalaryRepo struct {
	repository.SalaryRepository
	mockFindByID     func(ctx context.Context, id uint) (*models.SalaryPayment, error)
	mockCreatePaired func(ctx context.Context, payment *models.SalaryPayment, expense *models.Expense) error
	mockDeletePaired func(ctx context.Context, payment *models.SalaryPayment) (bool, error)
	mockLinkExpense  func(ctx context.Context, paymentID, expenseID uint) error
	mockFindUnlinked func(ctx context.Context) ([]models.SalaryPayment, error)
}

func (m *mockSalaryRepo) FindByID(ctx context.Context, id uint) (*models.SalaryPayment, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSalaryRepo) List(ctx context.Context, teacherID *uint) ([]models.SalaryPayment, error) {
	return nil, nil
}

func (m *mockSalaryRepo) CreatePaired(ctx context.Context, payment *models.SalaryPayment, expense *models.Expense) error {
	if m.mockCreatePaired != nil {
		return m.mockCreatePaired(ctx, payment, expense)
	}
	return nil
}

func (m *mockSalaryRepo) DeletePaired(ctx context.Context, payment *models.SalaryPayment) (bool, error) {
	if m.mockDeletePaired != nil {
		return m.mockDeletePaired(ctx, payment)
	}
	return false, nil
}

func (m *mockSalaryRepo) LinkExpense(ctx context.Context, paymentID, expenseID uint) error {
	if m.mockLinkExpense != nil {
		return m.mockLinkExpense(ctx, paymentID, expenseID)
	}
	return nil
}

func (m *mockSalaryRepo) FindUnlinked(ctx context.Context) ([]models.SalaryPayment, error) {
	if m.mockFindUnlinked != nil {
		return m.mockFindUnlinked(ctx)
	}
	return nil, nil
}

type mockExpenseRepo struct {
	repository.ExpenseRepository
	mockFindByID            func(ctx context.Context, id uint) (*models.Expense, error)
	mockFindBySlipNumber    func(ctx context.Context, slipNumber string) (*models.Expense, error)
	mockCreate              func(ctx context.Context, expense *models.Expense) error
	mockUpdate              func(ctx context.Context, expense *models.Expense) error
	mockDelete              func(ctx context.Context, id uint) error
	mockTotalForRange       func(ctx context.Context, start, end *time.Time) (float64, error)
	mockBreakdownByCategory func(ctx context.Context, start, end *time.Time) (map[string]float64, error)
	mockMonthlyTotals       func(ctx context.Context) ([]models.ExpensePeriodTotal, error)
}

func (m *mockExpenseRepo) FindByID(ctx context.Context, id uint) (*models.Expense, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockExpenseRepo) FindBySlipNumber(ctx context.Context, slipNumber string) (*models.Expense, error) {
	if m.mockFindBySlipNumber != nil {
		return m.mockFindBySlipNumber(ctx, slipNumber)
	}
	return nil, nil
}

func (m *mockExpenseRepo) Create(ctx context.Context, expense *models.Expense) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, expense)
	}
	return nil
}

func (m *mockExpenseRepo) Update(ctx context.Context, expense *models.Expense) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, expense)
	}
	return nil
}

func (m *mockExpenseRepo) Delete(ctx context.Context, id uint) error {
	if m.mockDelete != nil {
		return m.mockDelete(ctx, id)
	}
	return nil
}

func (m *mockExpenseRepo) List(ctx context.Context, start, end *time.Time, category string) ([]models.Expense, error) {
	return nil, nil
}

func (m *mockExpenseRepo) TotalForRange(ctx context.Context, start, end *time.Time) (float64, error) {
	if m.mockTotalForRange != nil {
		return m.mockTotalForRange(ctx, start, end)
	}
	return 0, nil
}

func (m *mockExpenseRepo) BreakdownByCategory(ctx context.Context, start, end *time.Time) (map[string]float64, error) {
	if m.mockBreakdownByCategory != nil {
		return m.mockBreakdownByCategory(ctx, start, end)
	}
	return map[string]float64{}, nil
}

func (m *mockExpenseRepo) MonthlyTotals(ctx context.Context) ([]models.ExpensePeriodTotal, error) {
	if m.mockMonthlyTotals != nil {
		return m.mockMonthlyTotals(ctx)
	}
	return nil, nil
}

type mockUserRepo struct {
	repository.UserRepository
	mockFindByID    func(ctx context.Context, id uint) (*models.User, error)
	mockFindByEmail func(ctx context.Context, email string) (*models.User, error)
	mockCreate      func(ctx context.Context, user *models.User) error
	mockUpdate      func(ctx context.Context, user *models.User) error
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.mockFindByEmail != nil {
		return m.mockFindByEmail(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, user)
	}
	return nil
}
