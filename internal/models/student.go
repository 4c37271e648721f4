package models

import (
	"time"
)

// Student represents an admitted student and their billing parameters
type Student struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	AdmissionNo        string     `gorm:"uniqueIndex;not null" json:"admission_no"`
	Name               string     `gorm:"not null" json:"name"`
	ClassGroup         string     `gorm:"index" json:"class_group"`
	ClassName          string     `gorm:"index" json:"class_name"`
	DOB                *time.Time `gorm:"type:date" json:"dob"`
	CellNo             string     `json:"cell_no"`
	BFormNo            string     `gorm:"column:b_form_no" json:"b_form_no"`
	FatherName         string     `json:"father_name"`
	FatherCNIC         string     `gorm:"column:father_cnic" json:"father_cnic"`
	FatherCellNo       string     `json:"father_cell_no"`
	AdmissionFee       float64    `gorm:"type:decimal(10,2);default:0" json:"admission_fee"`
	MonthlyFee         float64    `gorm:"type:decimal(10,2);not null" json:"monthly_fee"`
	ScholarshipPercent float64    `gorm:"type:decimal(5,2);default:0" json:"scholarship_percent"`
	AdmissionDate      time.Time  `gorm:"type:date" json:"admission_date"`
	Status             string     `gorm:"default:active;not null;index" json:"status"`
	Notes              *string    `gorm:"type:text" json:"notes,omitempty"`
	LastFeePaidOn      *time.Time `json:"last_fee_paid_on"`
	CreatedAt          time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	// Associations
	FeeRecords []FeeRecord `gorm:"foreignKey:StudentID" json:"fee_records,omitempty"`
}

// TableName specifies the table name for Student
func (Student) TableName() string {
	return "students"
}

// Student lifecycle status constants
const (
	StudentStatusActive = "active"
	StudentStatusLeft   = "left"
)

// Class group constants
const (
	ClassGroupArts           = "Arts"
	ClassGroupScience        = "Science"
	ClassGroupICS            = "ICS"
	ClassGroupPreEngineering = "Pre-Engineering"
	ClassGroupPreMedical     = "Pre-Medical"
)

// IsActive returns true if the student is still enrolled
func (s *Student) IsActive() bool {
	return s.Status == StudentStatusActive
}

// MayMarkLeft returns true if the student can transition to left
func (s *Student) MayMarkLeft() bool {
	return s.Status == StudentStatusActive
}

// StudentResponse is the JSON response format for students
type StudentResponse struct {
	ID                 uint       `json:"id"`
	AdmissionNo        string     `json:"admission_no"`
	Name               string     `json:"name"`
	ClassGroup         string     `json:"class_group"`
	ClassName          string     `json:"class_name"`
	FatherName         string     `json:"father_name"`
	AdmissionFee       float64    `json:"admission_fee"`
	MonthlyFee         float64    `json:"monthly_fee"`
	ScholarshipPercent float64    `json:"scholarship_percent"`
	AdmissionDate      time.Time  `json:"admission_date"`
	Status             string     `json:"status"`
	LastFeePaidOn      *time.Time `json:"last_fee_paid_on"`
}

// ToResponse converts Student to StudentResponse
func (s *Student) ToResponse() StudentResponse {
	return StudentResponse{
		ID:                 s.ID,
		AdmissionNo:        s.AdmissionNo,
		Name:               s.Name,
		ClassGroup:         s.ClassGroup,
		ClassName:          s.ClassName,
		FatherName:         s.FatherName,
		AdmissionFee:       s.AdmissionFee,
		MonthlyFee:         s.MonthlyFee,
		ScholarshipPercent: s.ScholarshipPercent,
		AdmissionDate:      s.AdmissionDate,
		Status:             s.Status,
		LastFeePaidOn:      s.LastFeePaidOn,
	}
}
