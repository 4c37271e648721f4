package models

import (
	"time"
)

// Expense is a standalone spend record. The teacher-salary category is
// reserved for payroll-derived expenses created by the payroll service.
type Expense struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	Category   string    `gorm:"default:other;not null;index" json:"category"`
	Amount     float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	IncurredOn time.Time `gorm:"index;not null" json:"incurred_on"`
	Notes      *string   `gorm:"type:text" json:"notes,omitempty"`
	SlipNumber *string   `gorm:"index" json:"slip_number,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name for Expense
func (Expense) TableName() string {
	return "expenses"
}

// Expense category constants
const (
	ExpenseCategoryTeacherSalary = "teacher-salary"
	ExpenseCategoryOperations    = "operations"
	ExpenseCategoryUtilities     = "utilities"
	ExpenseCategoryOther         = "other"
)

// IsPayrollDerived returns true for expenses created by the payroll service
func (e *Expense) IsPayrollDerived() bool {
	return e.Category == ExpenseCategoryTeacherSalary
}
