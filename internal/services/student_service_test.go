package services

import (
	"context"
	"testing"

	"github.com/aqeelraza/maktab-api/internal/models"
	"github.com/aqeelraza/maktab-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextAdmissionNumber_EmptyRoster(t *testing.T) {
	service := NewStudentService(&mockStudentRepo{}, &mockFeeRepo{})

	next, err := service.NextAdmissionNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "MR-00001", next)
}

func TestNextAdmissionNumber_SkipsGapsAndBadSuffixes(t *testing.T) {
	studentRepo := &mockStudentRepo{}
	studentRepo.mockAdmissionNumbers = func(ctx context.Context, prefix string) ([]string, error) {
		return []string{"MR-00001", "MR-00003", "MR-00007", "MR-OLD", "MR-"}, nil
	}

	service := NewStudentService(studentRepo, &mockFeeRepo{})

	next, err := service.NextAdmissionNumber(context.Background())
	require.NoError(t, err)
	// gaps are never reused, unparseable suffixes are ignored
	assert.Equal(t, "MR-00008", next)
}

func TestCreateStudent_AllocatesAdmissionNumber(t *testing.T) {
	studentRepo := &mockStudentRepo{}
	studentRepo.mockAdmissionNumbers = func(ctx context.Context, prefix string) ([]string, error) {
		return []string{"MR-00004"}, nil
	}
	var created *models.Student
	studentRepo.mockCreate = func(ctx context.Context, student *models.Student) error {
		created = student
		return nil
	}

	service := NewStudentService(studentRepo, &mockFeeRepo{})

	student, err := service.Create(context.Background(), CreateStudentInput{
		Name:       "Ali Raza",
		MonthlyFee: 3000,
	})
	require.NoError(t, err)
	assert.Equal(t, "MR-00005", student.AdmissionNo)
	assert.Equal(t, models.StudentStatusActive, created.Status)
}

func TestCreateStudent_DuplicateAdmissionNo(t *testing.T) {
	studentRepo := &mockStudentRepo{}
	studentRepo.mockCreate = func(ctx context.Context, student *models.Student) error {
		return repository.ErrAdmissionNoExists
	}

	service := NewStudentService(studentRepo, &mockFeeRepo{})

	_, err := service.Create(context.Background(), CreateStudentInput{
		AdmissionNo: "MR-00005",
		Name:        "Ali Raza",
		MonthlyFee:  3000,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateStudent_ClampsScholarship(t *testing.T) {
	studentRepo := &mockStudentRepo{}
	var created *models.Student
	studentRepo.mockCreate = func(ctx context.Context, student *models.Student) error {
		created = student
		return nil
	}

	service := NewStudentService(studentRepo, &mockFeeRepo{})

	_, err := service.Create(context.Background(), CreateStudentInput{
		AdmissionNo:        "MR-00009",
		Name:               "Ali Raza",
		MonthlyFee:         3000,
		ScholarshipPercent: 140,
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, created.ScholarshipPercent)
}

func TestMarkLeft(t *testing.T) {
	studentRepo := &mockStudentRepo{}
	studentRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Student, error) {
		return &models.Student{ID: id, Status: models.StudentStatusActive}, nil
	}
	var updated *models.Student
	studentRepo.mockUpdate = func(ctx context.Context, student *models.Student) error {
		updated = student
		return nil
	}

	service := NewStudentService(studentRepo, &mockFeeRepo{})

	student, err := service.MarkLeft(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.StudentStatusLeft, student.Status)
	assert.Equal(t, models.StudentStatusLeft, updated.Status)
}

func TestMarkLeft_AlreadyLeft(t *testing.T) {
	studentRepo := &mockStudentRepo{}
	studentRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Student, error) {
		return &models.Student{ID: id, Status: models.StudentStatusLeft}, nil
	}

	service := NewStudentService(studentRepo, &mockFeeRepo{})

	_, err := service.MarkLeft(context.Background(), 1)
	assert.ErrorIs(t, err, ErrConflict)
}
