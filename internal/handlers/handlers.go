package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aqeelraza/maktab-api/internal/services"
	"github.com/gin-gonic/gin"
)

// Handlers holds all handler instances
type Handlers struct {
	Health  *HealthHandler
	Auth    *AuthHandler
	Student *StudentHandler
	Teacher *TeacherHandler
	Fee     *FeeHandler
	Salary  *SalaryHandler
	Expense *ExpenseHandler
	Report  *ReportHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(),
		Auth:    NewAuthHandler(svcs.Auth),
		Student: NewStudentHandler(svcs.Student),
		Teacher: NewTeacherHandler(svcs.Teacher),
		Fee:     NewFeeHandler(svcs.Fee),
		Salary:  NewSalaryHandler(svcs.Payroll),
		Expense: NewExpenseHandler(svcs.Expense),
		Report:  NewReportHandler(svcs.Report, svcs.Analytics),
	}
}

// pathID parses a numeric path parameter. A malformed id is a 400,
// already written to the response when ok is false.
func pathID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return 0, false
	}
	return uint(id), true
}

// respondError maps service sentinel errors onto HTTP statuses. Anything
// unrecognized is a 500 with the message withheld from the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidPassword), errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	default:
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
