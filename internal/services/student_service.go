package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aqeelraza/maktab-api/internal/models"
	"github.com/aqeelraza/maktab-api/internal/repository"
	"github.com/aqeelraza/maktab-api/internal/statemachine"
	"gorm.io/gorm"
)

// Admission number scheme: prefix plus a zero-padded sequence, MR-00001.
const (
	admissionNoPrefix = "MR-"
	admissionNoWidth  = 5
)

// StudentService handles student enrollment and profile management
type StudentService struct {
	repo    repository.StudentRepository
	feeRepo repository.FeeRepository

	now func() time.Time
}

// NewStudentService creates a new student service
func NewStudentService(repo repository.StudentRepository, feeRepo repository.FeeRepository) *StudentService {
	return &StudentService{
		repo:    repo,
		feeRepo: feeRepo,
		now:     time.Now,
	}
}

// CreateStudentInput carries a new admission request
type CreateStudentInput struct {
	AdmissionNo        string
	Name               string
	ClassGroup         string
	ClassName          string
	DOB                *time.Time
	CellNo             string
	BFormNo            string
	FatherName         string
	FatherCNIC         string
	FatherCellNo       string
	AdmissionFee       float64
	MonthlyFee         float64
	ScholarshipPercent float64
	AdmissionDate      *time.Time
	Notes              *string
}

// NextAdmissionNumber returns the next free admission number in the
// MR-00001 scheme. Gaps left by deletions are not reused; allocation
// always continues past the highest suffix seen. Numbers from an older
// scheme that do not parse are skipped.
func (s *StudentService) NextAdmissionNumber(ctx context.Context) (string, error) {
	numbers, err := s.repo.AdmissionNumbers(ctx, admissionNoPrefix)
	if err != nil {
		return "", err
	}

	max := 0
	for _, no := range numbers {
		suffix := strings.TrimPrefix(no, admissionNoPrefix)
		n, err := strconv.Atoi(suffix)
		if err != nil || n <= 0 {
			continue
		}
		if n > max {
			max = n
		}
	}

	return fmt.Sprintf("%s%0*d", admissionNoPrefix, admissionNoWidth, max+1), nil
}

// Create admits a new student. When no admission number is supplied one
// is allocated; either way the unique index has the final say, so a
// concurrent duplicate surfaces as a conflict rather than a second row.
func (s *StudentService) Create(ctx context.Context, input CreateStudentInput) (*models.Student, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}
	if input.MonthlyFee < 0 {
		return nil, fmt.Errorf("%w: monthly fee cannot be negative", ErrInvalidArgument)
	}

	admissionNo := input.AdmissionNo
	if admissionNo == "" {
		var err error
		admissionNo, err = s.NextAdmissionNumber(ctx)
		if err != nil {
			return nil, fmt.Errorf("allocate admission number: %w", err)
		}
	}

	admissionDate := s.now()
	if input.AdmissionDate != nil {
		admissionDate = *input.AdmissionDate
	}

	student := &models.Student{
		AdmissionNo:        admissionNo,
		Name:               input.Name,
		ClassGroup:         input.ClassGroup,
		ClassName:          input.ClassName,
		DOB:                input.DOB,
		CellNo:             input.CellNo,
		BFormNo:            input.BFormNo,
		FatherName:         input.FatherName,
		FatherCNIC:         input.FatherCNIC,
		FatherCellNo:       input.FatherCellNo,
		AdmissionFee:       input.AdmissionFee,
		MonthlyFee:         input.MonthlyFee,
		ScholarshipPercent: clamp(input.ScholarshipPercent, 0, 100),
		AdmissionDate:      admissionDate,
		Status:             models.StudentStatusActive,
		Notes:              input.Notes,
	}

	if err := s.repo.Create(ctx, student); err != nil {
		if errors.Is(err, repository.ErrAdmissionNoExists) {
			return nil, fmt.Errorf("%w: admission number %s already exists", ErrConflict, admissionNo)
		}
		return nil, err
	}
	return student, nil
}

// UpdateStudentInput carries a partial student update
type UpdateStudentInput struct {
	Name               *string
	ClassGroup         *string
	ClassName          *string
	DOB                *time.Time
	CellNo             *string
	FatherName         *string
	FatherCellNo       *string
	MonthlyFee         *float64
	ScholarshipPercent *float64
	Notes              *string
}

// Update applies the provided fields to an existing student. The
// admission number and lifecycle status are not editable here.
func (s *StudentService) Update(ctx context.Context, id uint, input UpdateStudentInput) (*models.Student, error) {
	student, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		student.Name = *input.Name
	}
	if input.ClassGroup != nil {
		student.ClassGroup = *input.ClassGroup
	}
	if input.ClassName != nil {
		student.ClassName = *input.ClassName
	}
	if input.DOB != nil {
		student.DOB = input.DOB
	}
	if input.CellNo != nil {
		student.CellNo = *input.CellNo
	}
	if input.FatherName != nil {
		student.FatherName = *input.FatherName
	}
	if input.FatherCellNo != nil {
		student.FatherCellNo = *input.FatherCellNo
	}
	if input.MonthlyFee != nil {
		if *input.MonthlyFee < 0 {
			return nil, fmt.Errorf("%w: monthly fee cannot be negative", ErrInvalidArgument)
		}
		student.MonthlyFee = *input.MonthlyFee
	}
	if input.ScholarshipPercent != nil {
		student.ScholarshipPercent = clamp(*input.ScholarshipPercent, 0, 100)
	}
	if input.Notes != nil {
		student.Notes = input.Notes
	}

	if err := s.repo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// MarkLeft moves a student out of active enrollment. Already-left
// students are rejected; the fee history stays untouched.
func (s *StudentService) MarkLeft(ctx context.Context, id uint) (*models.Student, error) {
	student, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	efsm := statemachine.NewEnrollmentFSM(student)
	if err := efsm.MarkLeft(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConflict, err)
	}

	if err := s.repo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *StudentService) Delete(ctx context.Context, id uint) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *StudentService) FindByID(ctx context.Context, id uint) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: student %d", ErrNotFound, id)
		}
		return nil, err
	}
	return student, nil
}

func (s *StudentService) List(ctx context.Context, query *repository.ListQuery) ([]models.Student, int64, error) {
	return s.repo.List(ctx, query)
}

// FeeHistory returns a student's full ledger, newest period first
func (s *StudentService) FeeHistory(ctx context.Context, id uint) ([]models.FeeRecord, error) {
	if _, err := s.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.feeRepo.FindByStudent(ctx, id)
}
