package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Sentinel errors for known unique-constraint violations. The composite
// period constraints are load-bearing: they are the backstop for concurrent
// writes, so callers must be able to tell them apart from generic failures.
var (
	ErrAdmissionNoExists     = errors.New("admission number already exists")
	ErrCNICExists            = errors.New("cnic already registered")
	ErrEmailExists           = errors.New("email already registered")
	ErrDuplicateSalaryPeriod = errors.New("salary payment already exists for this period")
)

// Repositories holds all repository instances
type Repositories struct {
	User    UserRepository
	Student StudentRepository
	Teacher TeacherRepository
	Fee     FeeRepository
	Salary  SalaryRepository
	Expense ExpenseRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db),
		Student: NewStudentRepository(db),
		Teacher: NewTeacherRepository(db),
		Fee:     NewFeeRepository(db),
		Salary:  NewSalaryRepository(db),
		Expense: NewExpenseRepository(db),
	}
}

// ListQuery carries pagination, sorting and filter parameters
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	SortBy  string
	SortDir string
	Filters map[string]string
}

// NewListQuery creates a ListQuery with defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: 20,
		Filters: make(map[string]string),
	}
}

func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == constraintName
	}
	return false
}
