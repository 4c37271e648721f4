package models

import (
	"time"
)

// Teacher represents a staff member on payroll
type Teacher struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"not null" json:"name"`
	CNIC          string     `gorm:"column:cnic;uniqueIndex;not null" json:"cnic"`
	Qualification string     `json:"qualification"`
	Experience    string     `json:"experience"`
	Salary        float64    `gorm:"type:decimal(10,2);not null" json:"salary"`
	Subjects      []string   `gorm:"serializer:json" json:"subjects"`
	Status        string     `gorm:"default:active;not null;index" json:"status"`
	JoinedOn      time.Time  `gorm:"type:date" json:"joined_on"`
	LeftOn        *time.Time `gorm:"type:date" json:"left_on"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Associations
	SalaryPayments []SalaryPayment `gorm:"foreignKey:TeacherID" json:"salary_payments,omitempty"`
}

// TableName specifies the table name for Teacher
func (Teacher) TableName() string {
	return "teachers"
}

// Teacher lifecycle status constants
const (
	TeacherStatusActive = "active"
	TeacherStatusLeft   = "left"
)

// IsActive returns true if the teacher is still employed
func (t *Teacher) IsActive() bool {
	return t.Status == TeacherStatusActive
}

// TeacherResponse is the JSON response format for teachers
type TeacherResponse struct {
	ID            uint       `json:"id"`
	Name          string     `json:"name"`
	CNIC          string     `json:"cnic"`
	Qualification string     `json:"qualification"`
	Experience    string     `json:"experience"`
	Salary        float64    `json:"salary"`
	Subjects      []string   `json:"subjects"`
	Status        string     `json:"status"`
	JoinedOn      time.Time  `json:"joined_on"`
	LeftOn        *time.Time `json:"left_on"`
}

// ToResponse converts Teacher to TeacherResponse
func (t *Teacher) ToResponse() TeacherResponse {
	return TeacherResponse{
		ID:            t.ID,
		Name:          t.Name,
		CNIC:          t.CNIC,
		Qualification: t.Qualification,
		Experience:    t.Experience,
		Salary:        t.Salary,
		Subjects:      t.Subjects,
		Status:        t.Status,
		JoinedOn:      t.JoinedOn,
		LeftOn:        t.LeftOn,
	}
}
