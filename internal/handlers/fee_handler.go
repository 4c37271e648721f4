package handlers

import (
	"net/http"
	"strconv"

	"github.com/aqeelraza/maktab-api/internal/repository"
	"github.com/aqeelraza/maktab-api/internal/services"
	"github.com/gin-gonic/gin"
)

type FeeHandler struct {
	feeService *services.FeeService
}

func NewFeeHandler(feeService *services.FeeService) *FeeHandler {
	return &FeeHandler{feeService: feeService}
}

func (h *FeeHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.Filters["month"] = c.Query("month")
	query.Filters["year"] = c.Query("year")
	query.Filters["student_id"] = c.Query("student_id")

	records, total, err := h.feeService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]interface{}, 0, len(records))
	for _, r := range records {
		responses = append(responses, r.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"fee_records": responses, "pagination": gin.H{"total": total}})
}

func (h *FeeHandler) Show(c *gin.Context) {
	id, ok := pathID(c, "fee_id")
	if !ok {
		return
	}
	record, err := h.feeService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fee_record": record.ToResponse()})
}

type FeePaymentRequest struct {
	StudentID           uint     `json:"student_id" binding:"required"`
	Month               int      `json:"month" binding:"required"`
	Year                int      `json:"year" binding:"required"`
	Amount              float64  `json:"amount"`
	Method              string   `json:"method"`
	ScholarshipPercent  *float64 `json:"scholarship_percent"`
	ScholarshipAmount   *float64 `json:"scholarship_amount"`
	AdmissionFeePortion *float64 `json:"admission_fee_portion"`
	Remarks             *string  `json:"remarks"`
}

// Create records a payment against a student's period. Posting the same
// period twice adds to it rather than duplicating it.
func (h *FeeHandler) Create(c *gin.Context) {
	var req FeePaymentRequest
	if err := BindNestedOrFlat(c, "fee_record", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.feeService.RecordPayment(c.Request.Context(), services.RecordPaymentInput{
		StudentID:           req.StudentID,
		Month:               req.Month,
		Year:                req.Year,
		Amount:              req.Amount,
		Method:              req.Method,
		ScholarshipPercent:  req.ScholarshipPercent,
		ScholarshipAmount:   req.ScholarshipAmount,
		AdmissionFeePortion: req.AdmissionFeePortion,
		Remarks:             req.Remarks,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"fee_record": record.ToResponse()})
}

func (h *FeeHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "fee_id")
	if !ok {
		return
	}
	if err := h.feeService.DeleteRecord(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "fee record deleted"})
}

// Summary returns overall and per-month collection totals
func (h *FeeHandler) Summary(c *gin.Context) {
	summary, err := h.feeService.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
