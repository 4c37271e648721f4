package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aqeelraza/maktab-api/internal/repository"
	"github.com/aqeelraza/maktab-api/internal/services"
	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	studentService *services.StudentService
}

func NewStudentHandler(studentService *services.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

func (h *StudentHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.Filters["status"] = c.Query("status")
	query.Filters["class_group"] = c.Query("class_group")
	query.Filters["class_name"] = c.Query("class_name")

	students, total, err := h.studentService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]interface{}, 0, len(students))
	for _, s := range students {
		responses = append(responses, s.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"students": responses, "pagination": gin.H{"total": total}})
}

func (h *StudentHandler) Show(c *gin.Context) {
	id, ok := pathID(c, "student_id")
	if !ok {
		return
	}
	student, err := h.studentService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"student": student.ToResponse()})
}

type StudentRequest struct {
	AdmissionNo        string     `json:"admission_no"`
	Name               string     `json:"name"`
	ClassGroup         string     `json:"class_group"`
	ClassName          string     `json:"class_name"`
	DOB                *time.Time `json:"dob"`
	CellNo             string     `json:"cell_no"`
	BFormNo            string     `json:"b_form_no"`
	FatherName         string     `json:"father_name"`
	FatherCNIC         string     `json:"father_cnic"`
	FatherCellNo       string     `json:"father_cell_no"`
	AdmissionFee       float64    `json:"admission_fee"`
	MonthlyFee         float64    `json:"monthly_fee"`
	ScholarshipPercent float64    `json:"scholarship_percent"`
	AdmissionDate      *time.Time `json:"admission_date"`
	Notes              *string    `json:"notes"`
}

func (h *StudentHandler) Create(c *gin.Context) {
	var req StudentRequest
	if err := BindNestedOrFlat(c, "student", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student, err := h.studentService.Create(c.Request.Context(), services.CreateStudentInput{
		AdmissionNo:        req.AdmissionNo,
		Name:               req.Name,
		ClassGroup:         req.ClassGroup,
		ClassName:          req.ClassName,
		DOB:                req.DOB,
		CellNo:             req.CellNo,
		BFormNo:            req.BFormNo,
		FatherName:         req.FatherName,
		FatherCNIC:         req.FatherCNIC,
		FatherCellNo:       req.FatherCellNo,
		AdmissionFee:       req.AdmissionFee,
		MonthlyFee:         req.MonthlyFee,
		ScholarshipPercent: req.ScholarshipPercent,
		AdmissionDate:      req.AdmissionDate,
		Notes:              req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"student": student.ToResponse()})
}

type StudentUpdateRequest struct {
	Name               *string    `json:"name"`
	ClassGroup         *string    `json:"class_group"`
	ClassName          *string    `json:"class_name"`
	DOB                *time.Time `json:"dob"`
	CellNo             *string    `json:"cell_no"`
	FatherName         *string    `json:"father_name"`
	FatherCellNo       *string    `json:"father_cell_no"`
	MonthlyFee         *float64   `json:"monthly_fee"`
	ScholarshipPercent *float64   `json:"scholarship_percent"`
	Notes              *string    `json:"notes"`
}

func (h *StudentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	var req StudentUpdateRequest
	if err := BindNestedOrFlat(c, "student", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student, err := h.studentService.Update(c.Request.Context(), id, services.UpdateStudentInput{
		Name:               req.Name,
		ClassGroup:         req.ClassGroup,
		ClassName:          req.ClassName,
		DOB:                req.DOB,
		CellNo:             req.CellNo,
		FatherName:         req.FatherName,
		FatherCellNo:       req.FatherCellNo,
		MonthlyFee:         req.MonthlyFee,
		ScholarshipPercent: req.ScholarshipPercent,
		Notes:              req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"student": student.ToResponse()})
}

// MarkLeft retires a student from active enrollment
func (h *StudentHandler) MarkLeft(c *gin.Context) {
	id, ok := pathID(c, "student_id")
	if !ok {
		return
	}
	student, err := h.studentService.MarkLeft(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"student": student.ToResponse()})
}

func (h *StudentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "student_id")
	if !ok {
		return
	}
	if err := h.studentService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "student deleted"})
}

// FeeHistory returns the student's full fee ledger
func (h *StudentHandler) FeeHistory(c *gin.Context) {
	id, ok := pathID(c, "student_id")
	if !ok {
		return
	}
	records, err := h.studentService.FeeHistory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]interface{}, 0, len(records))
	for _, r := range records {
		responses = append(responses, r.ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"fee_records": responses})
}

// NextAdmissionNo returns the next free admission number
func (h *StudentHandler) NextAdmissionNo(c *gin.Context) {
	next, err := h.studentService.NextAdmissionNumber(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"admission_no": next})
}
