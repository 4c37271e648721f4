package services

import (
	"github.com/aqeelraza/maktab-api/internal/config"
	"github.com/aqeelraza/maktab-api/internal/repository"
)

// Services holds all service instances
type Services struct {
	Auth      *AuthService
	Student   *StudentService
	Teacher   *TeacherService
	Fee       *FeeService
	Payroll   *PayrollService
	Expense   *ExpenseService
	Report    *ReportService
	Analytics *AnalyticsService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	reportSvc := NewReportService(repos.Student, repos.Fee)

	return &Services{
		Auth:      NewAuthService(repos.User, cfg),
		Student:   NewStudentService(repos.Student, repos.Fee),
		Teacher:   NewTeacherService(repos.Teacher),
		Fee:       NewFeeService(repos.Fee, repos.Student),
		Payroll:   NewPayrollService(repos.Salary, repos.Teacher, repos.Expense),
		Expense:   NewExpenseService(repos.Expense),
		Report:    reportSvc,
		Analytics: NewAnalyticsService(repos.Fee, repos.Expense, repos.Student, repos.Teacher, reportSvc),
	}
}
