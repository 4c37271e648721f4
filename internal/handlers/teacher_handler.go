package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aqeelraza/maktab-api/internal/repository"
	"github.com/aqeelraza/maktab-api/internal/services"
	"github.com/gin-gonic/gin"
)

type TeacherHandler struct {
	teacherService *services.TeacherService
}

func NewTeacherHandler(teacherService *services.TeacherService) *TeacherHandler {
	return &TeacherHandler{teacherService: teacherService}
}

func (h *TeacherHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.Filters["status"] = c.Query("status")

	teachers, total, err := h.teacherService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]interface{}, 0, len(teachers))
	for _, t := range teachers {
		responses = append(responses, t.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"teachers": responses, "pagination": gin.H{"total": total}})
}

func (h *TeacherHandler) Show(c *gin.Context) {
	id, ok := pathID(c, "teacher_id")
	if !ok {
		return
	}
	teacher, err := h.teacherService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"teacher": teacher.ToResponse()})
}

type TeacherRequest struct {
	Name          string     `json:"name"`
	CNIC          string     `json:"cnic"`
	Qualification string     `json:"qualification"`
	Experience    string     `json:"experience"`
	Salary        float64    `json:"salary"`
	Subjects      []string   `json:"subjects"`
	JoinedOn      *time.Time `json:"joined_on"`
}

func (h *TeacherHandler) Create(c *gin.Context) {
	var req TeacherRequest
	if err := BindNestedOrFlat(c, "teacher", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	teacher, err := h.teacherService.Create(c.Request.Context(), services.CreateTeacherInput{
		Name:          req.Name,
		CNIC:          req.CNIC,
		Qualification: req.Qualification,
		Experience:    req.Experience,
		Salary:        req.Salary,
		Subjects:      req.Subjects,
		JoinedOn:      req.JoinedOn,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"teacher": teacher.ToResponse()})
}

type TeacherUpdateRequest struct {
	Name          *string    `json:"name"`
	Qualification *string    `json:"qualification"`
	Experience    *string    `json:"experience"`
	Salary        *float64   `json:"salary"`
	Subjects      []string   `json:"subjects"`
	Status        *string    `json:"status"`
	LeftOn        *time.Time `json:"left_on"`
}

func (h *TeacherHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "teacher_id")
	if !ok {
		return
	}

	var req TeacherUpdateRequest
	if err := BindNestedOrFlat(c, "teacher", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	teacher, err := h.teacherService.Update(c.Request.Context(), id, services.UpdateTeacherInput{
		Name:          req.Name,
		Qualification: req.Qualification,
		Experience:    req.Experience,
		Salary:        req.Salary,
		Subjects:      req.Subjects,
		Status:        req.Status,
		LeftOn:        req.LeftOn,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"teacher": teacher.ToResponse()})
}

func (h *TeacherHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "teacher_id")
	if !ok {
		return
	}
	if err := h.teacherService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "teacher deleted"})
}
