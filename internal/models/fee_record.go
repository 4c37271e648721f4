package models

import (
	"time"
)

// FeeRecord is one student's billing obligation and payment state for one
// calendar month. The (student_id, month, year) composite is unique; the
// upsert in the fee repository relies on that constraint.
type FeeRecord struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	StudentID           uint       `gorm:"not null;uniqueIndex:idx_fee_records_period" json:"student_id"`
	Month               int        `gorm:"not null;uniqueIndex:idx_fee_records_period" json:"month"`
	Year                int        `gorm:"not null;uniqueIndex:idx_fee_records_period" json:"year"`
	AmountDue           float64    `gorm:"type:decimal(10,2);not null" json:"amount_due"`
	AmountPaid          float64    `gorm:"type:decimal(10,2);not null;default:0" json:"amount_paid"`
	AdmissionFeePortion *float64   `gorm:"type:decimal(10,2)" json:"admission_fee_portion,omitempty"`
	ScholarshipPercent  float64    `gorm:"type:decimal(5,2);default:0" json:"scholarship_percent"`
	ScholarshipAmount   float64    `gorm:"type:decimal(10,2);default:0" json:"scholarship_amount"`
	Status              string     `gorm:"default:pending;not null;index" json:"status"`
	PaidOn              *time.Time `gorm:"index" json:"paid_on"`
	Method              string     `gorm:"default:cash" json:"method"`
	SlipNumber          string     `gorm:"index" json:"slip_number"`
	Remarks             *string    `gorm:"type:text" json:"remarks,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`

	// Associations
	Student Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

// TableName specifies the table name for FeeRecord
func (FeeRecord) TableName() string {
	return "fee_records"
}

// Fee status constants
const (
	FeeStatusPending = "pending"
	FeeStatusPartial = "partial"
	FeeStatusPaid    = "paid"
)

// Payment method constants
const (
	PaymentMethodCash         = "cash"
	PaymentMethodBankTransfer = "bank-transfer"
	PaymentMethodOnline       = "online"
	PaymentMethodOther        = "other"
)

// DeriveFeeStatus computes the record status from amounts. Status is never
// authoritative input; every write path recomputes it through this function
// (or its SQL equivalent in the upsert).
func DeriveFeeStatus(amountPaid, amountDue float64) string {
	switch {
	case amountPaid >= amountDue:
		return FeeStatusPaid
	case amountPaid > 0:
		return FeeStatusPartial
	default:
		return FeeStatusPending
	}
}

// Outstanding returns the amount still owed on this record, floored at zero
func (f *FeeRecord) Outstanding() float64 {
	if out := f.AmountDue - f.AmountPaid; out > 0 {
		return out
	}
	return 0
}

// FeeRecordResponse is the JSON response format for fee records
type FeeRecordResponse struct {
	ID                  uint       `json:"id"`
	StudentID           uint       `json:"student_id"`
	Month               int        `json:"month"`
	Year                int        `json:"year"`
	AmountDue           float64    `json:"amount_due"`
	AmountPaid          float64    `json:"amount_paid"`
	Outstanding         float64    `json:"outstanding"`
	AdmissionFeePortion *float64   `json:"admission_fee_portion,omitempty"`
	ScholarshipPercent  float64    `json:"scholarship_percent"`
	ScholarshipAmount   float64    `json:"scholarship_amount"`
	Status              string     `json:"status"`
	PaidOn              *time.Time `json:"paid_on"`
	Method              string     `json:"method"`
	SlipNumber          string     `json:"slip_number"`
	Remarks             *string    `json:"remarks,omitempty"`

	// Student details
	AdmissionNo string `json:"admission_no,omitempty"`
	StudentName string `json:"student_name,omitempty"`
	ClassGroup  string `json:"class_group,omitempty"`
	ClassName   string `json:"class_name,omitempty"`
}

// ToResponse converts FeeRecord to FeeRecordResponse
func (f *FeeRecord) ToResponse() FeeRecordResponse {
	resp := FeeRecordResponse{
		ID:                  f.ID,
		StudentID:           f.StudentID,
		Month:               f.Month,
		Year:                f.Year,
		AmountDue:           f.AmountDue,
		AmountPaid:          f.AmountPaid,
		Outstanding:         f.Outstanding(),
		AdmissionFeePortion: f.AdmissionFeePortion,
		ScholarshipPercent:  f.ScholarshipPercent,
		ScholarshipAmount:   f.ScholarshipAmount,
		Status:              f.Status,
		PaidOn:              f.PaidOn,
		Method:              f.Method,
		SlipNumber:          f.SlipNumber,
		Remarks:             f.Remarks,
	}

	if f.Student.ID != 0 {
		resp.AdmissionNo = f.Student.AdmissionNo
		resp.StudentName = f.Student.Name
		resp.ClassGroup = f.Student.ClassGroup
		resp.ClassName = f.Student.ClassName
	}

	return resp
}
