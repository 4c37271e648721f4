package handlers

import (
	"net/http"
	"strconv"

	"github.com/aqeelraza/maktab-api/internal/services"
	"github.com/gin-gonic/gin"
)

type SalaryHandler struct {
	payrollService *services.PayrollService
}

func NewSalaryHandler(payrollService *services.PayrollService) *SalaryHandler {
	return &SalaryHandler{payrollService: payrollService}
}

func (h *SalaryHandler) Index(c *gin.Context) {
	var teacherID *uint
	if raw := c.Query("teacher_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid teacher_id"})
			return
		}
		tid := uint(id)
		teacherID = &tid
	}

	payments, err := h.payrollService.ListPayments(c.Request.Context(), teacherID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]interface{}, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, p.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"salary_payments": responses})
}

func (h *SalaryHandler) Show(c *gin.Context) {
	id, ok := pathID(c, "salary_id")
	if !ok {
		return
	}
	payment, err := h.payrollService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"salary_payment": payment.ToResponse()})
}

type SalaryPaymentRequest struct {
	TeacherID uint     `json:"teacher_id" binding:"required"`
	Month     int      `json:"month" binding:"required"`
	Year      int      `json:"year" binding:"required"`
	Amount    *float64 `json:"amount"`
	Remarks   *string  `json:"remarks"`
}

// Create disburses one teacher's salary for a period. Paying the same
// period twice is a conflict.
func (h *SalaryHandler) Create(c *gin.Context) {
	var req SalaryPaymentRequest
	if err := BindNestedOrFlat(c, "salary_payment", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.payrollService.PaySalary(c.Request.Context(), services.PaySalaryInput{
		TeacherID: req.TeacherID,
		Month:     req.Month,
		Year:      req.Year,
		Amount:    req.Amount,
		Remarks:   req.Remarks,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"salary_payment": payment.ToResponse()})
}

// Delete reverses a disbursement along with its linked expense
func (h *SalaryHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "salary_id")
	if !ok {
		return
	}
	if err := h.payrollService.DeletePayment(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "salary payment deleted"})
}

// Reconcile links salary payments that lost their expense pairing,
// admin only.
func (h *SalaryHandler) Reconcile(c *gin.Context) {
	fixed, err := h.payrollService.ReconcileOrphans(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reconciled": fixed})
}
