package repository

import (
	"context"
	"time"

	"github.com/aqeelraza/maktab-api/internal/models"
	"gorm.io/gorm"
)

// StudentRepository defines the interface for student data access
type StudentRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Student, error)
	FindByAdmissionNo(ctx context.Context, admissionNo string) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Student, int64, error)
	FindActive(ctx context.Context, classGroup, className string) ([]models.Student, error)
	AdmissionNumbers(ctx context.Context, prefix string) ([]string, error)
	UpdateLastFeePaidOn(ctx context.Context, id uint, paidOn *time.Time) error
	CountActive(ctx context.Context) (int64, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) FindByID(ctx context.Context, id uint) (*models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).First(&student, id).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) FindByAdmissionNo(ctx context.Context, admissionNo string) (*models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).
		Where("admission_no = ?", admissionNo).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	if err := r.db.WithContext(ctx).Create(student).Error; err != nil {
		if isDuplicateKeyError(err, "idx_students_admission_no") {
			return ErrAdmissionNoExists
		}
		return err
	}
	return nil
}

func (r *studentRepository) Update(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

func (r *studentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Student{}, id).Error
}

func (r *studentRepository) List(ctx context.Context, query *ListQuery) ([]models.Student, int64, error) {
	var students []models.Student
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Student{})

	if query.Search != "" {
		term := "%" + query.Search + "%"
		db = db.Where("name ILIKE ? OR admission_no ILIKE ?", term, term)
	}
	if status := query.Filters["status"]; status != "" {
		db = db.Where("status = ?", status)
	}
	if group := query.Filters["class_group"]; group != "" {
		db = db.Where("class_group = ?", group)
	}
	if class := query.Filters["class_name"]; class != "" {
		db = db.Where("class_name = ?", class)
	}

	countDb := db.Session(&gorm.Session{})
	if err := countDb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db = db.Order("created_at DESC")
	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&students).Error
	return students, total, err
}

func (r *studentRepository) FindActive(ctx context.Context, classGroup, className string) ([]models.Student, error) {
	var students []models.Student
	db := r.db.WithContext(ctx).
		Where("status = ?", models.StudentStatusActive)
	if classGroup != "" {
		db = db.Where("class_group = ?", classGroup)
	}
	if className != "" {
		db = db.Where("class_name = ?", className)
	}
	err := db.Order("admission_no ASC").Find(&students).Error
	return students, err
}

// AdmissionNumbers returns every admission number starting with prefix.
// Suffix parsing happens in the allocator; records with admission numbers
// from an older scheme are returned too and filtered there.
func (r *studentRepository) AdmissionNumbers(ctx context.Context, prefix string) ([]string, error) {
	var numbers []string
	err := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("admission_no LIKE ?", prefix+"%").
		Pluck("admission_no", &numbers).Error
	return numbers, err
}

func (r *studentRepository) UpdateLastFeePaidOn(ctx context.Context, id uint, paidOn *time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("id = ?", id).
		Update("last_fee_paid_on", paidOn).Error
}

func (r *studentRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("status = ?", models.StudentStatusActive).
		Count(&count).Error
	return count, err
}
