package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aqeelraza/maktab-api/internal/models"
	"github.com/aqeelraza/maktab-api/internal/repository"
	"gorm.io/gorm"
)

// TeacherService handles teacher roster management
type TeacherService struct {
	repo repository.TeacherRepository

	now func() time.Time
}

// NewTeacherService creates a new teacher service
func NewTeacherService(repo repository.TeacherRepository) *TeacherService {
	return &TeacherService{
		repo: repo,
		now:  time.Now,
	}
}

// CreateTeacherInput carries a new teacher registration
type CreateTeacherInput struct {
	Name          string
	CNIC          string
	Qualification string
	Experience    string
	Salary        float64
	Subjects      []string
	JoinedOn      *time.Time
}

// Create registers a teacher. CNIC is the natural key; a duplicate is
// rejected as a conflict.
func (s *TeacherService) Create(ctx context.Context, input CreateTeacherInput) (*models.Teacher, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}
	if input.CNIC == "" {
		return nil, fmt.Errorf("%w: cnic is required", ErrInvalidArgument)
	}
	if input.Salary < 0 {
		return nil, fmt.Errorf("%w: salary cannot be negative", ErrInvalidArgument)
	}

	joinedOn := s.now()
	if input.JoinedOn != nil {
		joinedOn = *input.JoinedOn
	}

	teacher := &models.Teacher{
		Name:          input.Name,
		CNIC:          input.CNIC,
		Qualification: input.Qualification,
		Experience:    input.Experience,
		Salary:        input.Salary,
		Subjects:      input.Subjects,
		Status:        models.TeacherStatusActive,
		JoinedOn:      joinedOn,
	}

	if err := s.repo.Create(ctx, teacher); err != nil {
		if errors.Is(err, repository.ErrCNICExists) {
			return nil, fmt.Errorf("%w: cnic %s already registered", ErrConflict, input.CNIC)
		}
		return nil, err
	}
	return teacher, nil
}

// UpdateTeacherInput carries a partial teacher update
type UpdateTeacherInput struct {
	Name          *string
	Qualification *string
	Experience    *string
	Salary        *float64
	Subjects      []string
	Status        *string
	LeftOn        *time.Time
}

// Update applies the provided fields. Changing the salary affects future
// disbursements only; paid periods keep their recorded amounts.
func (s *TeacherService) Update(ctx context.Context, id uint, input UpdateTeacherInput) (*models.Teacher, error) {
	teacher, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		teacher.Name = *input.Name
	}
	if input.Qualification != nil {
		teacher.Qualification = *input.Qualification
	}
	if input.Experience != nil {
		teacher.Experience = *input.Experience
	}
	if input.Salary != nil {
		if *input.Salary < 0 {
			return nil, fmt.Errorf("%w: salary cannot be negative", ErrInvalidArgument)
		}
		teacher.Salary = *input.Salary
	}
	if input.Subjects != nil {
		teacher.Subjects = input.Subjects
	}
	if input.Status != nil {
		if *input.Status != models.TeacherStatusActive && *input.Status != models.TeacherStatusLeft {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, *input.Status)
		}
		teacher.Status = *input.Status
	}
	if input.LeftOn != nil {
		teacher.LeftOn = input.LeftOn
	}

	if err := s.repo.Update(ctx, teacher); err != nil {
		return nil, err
	}
	return teacher, nil
}

func (s *TeacherService) Delete(ctx context.Context, id uint) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *TeacherService) FindByID(ctx context.Context, id uint) (*models.Teacher, error) {
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: teacher %d", ErrNotFound, id)
		}
		return nil, err
	}
	return teacher, nil
}

func (s *TeacherService) List(ctx context.Context, query *repository.ListQuery) ([]models.Teacher, int64, error) {
	return s.repo.List(ctx, query)
}
