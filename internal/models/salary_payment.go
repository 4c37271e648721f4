package models

import (
	"time"
)

// SalaryPayment records one teacher's salary disbursement for one month.
// Unlike fee records there are no partial/cumulative semantics: the
// (teacher_id, month, year) composite is unique and a second payment for the
// same period is rejected. Every payment is paired 1:1 with an Expense; a
// payment whose ExpenseID is nil predates the link column and is correlated
// by slip number instead.
type SalaryPayment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TeacherID  uint      `gorm:"not null;uniqueIndex:idx_salary_payments_period" json:"teacher_id"`
	Month      int       `gorm:"not null;uniqueIndex:idx_salary_payments_period" json:"month"`
	Year       int       `gorm:"not null;uniqueIndex:idx_salary_payments_period" json:"year"`
	Amount     float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaidOn     time.Time `gorm:"index" json:"paid_on"`
	SlipNumber string    `gorm:"index" json:"slip_number"`
	Remarks    *string   `gorm:"type:text" json:"remarks,omitempty"`
	ExpenseID  *uint     `gorm:"index" json:"expense_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Associations
	Teacher Teacher  `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Expense *Expense `gorm:"foreignKey:ExpenseID" json:"expense,omitempty"`
}

// TableName specifies the table name for SalaryPayment
func (SalaryPayment) TableName() string {
	return "salary_payments"
}

// SalaryPaymentResponse is the JSON response format for salary payments
type SalaryPaymentResponse struct {
	ID         uint      `json:"id"`
	TeacherID  uint      `json:"teacher_id"`
	Month      int       `json:"month"`
	Year       int       `json:"year"`
	Amount     float64   `json:"amount"`
	PaidOn     time.Time `json:"paid_on"`
	SlipNumber string    `json:"slip_number"`
	Remarks    *string   `json:"remarks,omitempty"`
	ExpenseID  *uint     `json:"expense_id"`

	// Teacher details
	TeacherName string `json:"teacher_name,omitempty"`
	TeacherCNIC string `json:"teacher_cnic,omitempty"`
}

// ToResponse converts SalaryPayment to SalaryPaymentResponse
func (p *SalaryPayment) ToResponse() SalaryPaymentResponse {
	resp := SalaryPaymentResponse{
		ID:         p.ID,
		TeacherID:  p.TeacherID,
		Month:      p.Month,
		Year:       p.Year,
		Amount:     p.Amount,
		PaidOn:     p.PaidOn,
		SlipNumber: p.SlipNumber,
		Remarks:    p.Remarks,
		ExpenseID:  p.ExpenseID,
	}

	if p.Teacher.ID != 0 {
		resp.TeacherName = p.Teacher.Name
		resp.TeacherCNIC = p.Teacher.CNIC
	}

	return resp
}
