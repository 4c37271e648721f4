package handlers

import (
	"net/http"
	"time"

	"github.com/aqeelraza/maktab-api/internal/services"
	"github.com/gin-gonic/gin"
)

type ExpenseHandler struct {
	expenseService *services.ExpenseService
}

func NewExpenseHandler(expenseService *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

func (h *ExpenseHandler) Index(c *gin.Context) {
	var start, end *time.Time
	if raw := c.Query("start"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date, want YYYY-MM-DD"})
			return
		}
		start = &t
	}
	if raw := c.Query("end"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date, want YYYY-MM-DD"})
			return
		}
		end = &t
	}

	expenses, err := h.expenseService.List(c.Request.Context(), start, end, c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

func (h *ExpenseHandler) Show(c *gin.Context) {
	id, ok := pathID(c, "expense_id")
	if !ok {
		return
	}
	expense, err := h.expenseService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

type ExpenseRequest struct {
	Title      string     `json:"title"`
	Category   string     `json:"category"`
	Amount     float64    `json:"amount"`
	IncurredOn *time.Time `json:"incurred_on"`
	Notes      *string    `json:"notes"`
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	var req ExpenseRequest
	if err := BindNestedOrFlat(c, "expense", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense, err := h.expenseService.Create(c.Request.Context(), services.CreateExpenseInput{
		Title:      req.Title,
		Category:   req.Category,
		Amount:     req.Amount,
		IncurredOn: req.IncurredOn,
		Notes:      req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

type ExpenseUpdateRequest struct {
	Title      *string    `json:"title"`
	Category   *string    `json:"category"`
	Amount     *float64   `json:"amount"`
	IncurredOn *time.Time `json:"incurred_on"`
	Notes      *string    `json:"notes"`
}

func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "expense_id")
	if !ok {
		return
	}

	var req ExpenseUpdateRequest
	if err := BindNestedOrFlat(c, "expense", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense, err := h.expenseService.Update(c.Request.Context(), id, services.UpdateExpenseInput{
		Title:      req.Title,
		Category:   req.Category,
		Amount:     req.Amount,
		IncurredOn: req.IncurredOn,
		Notes:      req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "expense_id")
	if !ok {
		return
	}
	if err := h.expenseService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "expense deleted"})
}

// Summary returns per-month expense totals for the fixed ranges
func (h *ExpenseHandler) Summary(c *gin.Context) {
	summary, err := h.expenseService.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
