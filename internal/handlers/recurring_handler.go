package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
	"kakeibo/internal/services"
)

// RecurringHandler handles recurring template requests.
type RecurringHandler struct {
	recurringService services.RecurringServicer
}

// NewRecurringHandler creates a new RecurringHandler.
func NewRecurringHandler(recurringService services.RecurringServicer) *RecurringHandler {
	return &RecurringHandler{recurringService: recurringService}
}

// CreateTemplateRequest represents the request payload for creating a recurring template
type CreateTemplateRequest struct {
	Type            string  `json:"type" binding:"required,transaction_type"`
	CategoryID      uint    `json:"category_id" binding:"required"`
	Amount          int64   `json:"amount" binding:"gte=0"`
	PaymentMethodID *uint   `json:"payment_method_id"`
	Description     string  `json:"description" binding:"max=200"`
	Frequency       string  `json:"frequency" binding:"required,frequency"`
	StartDate       string  `json:"start_date" binding:"required"`
	EndDate         *string `json:"end_date"`
	DayOfMonth      *int    `json:"day_of_month" binding:"omitempty,min=1,max=31"`
}

// CreateTemplate handles template creation
// @Summary     Create a recurring template
// @Description Register a transaction that is generated automatically on a schedule
// @Tags        recurring
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTemplateRequest true "Template details"
// @Success     201 {object} map[string]interface{} "Template created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category or payment method not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring [post]
func (h *RecurringHandler) CreateTemplate(c *gin.Context) {
	familyID, err := getFamilyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	memberID, err := getMemberID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid start_date, expected YYYY-MM-DD"))
		return
	}
	var endDate *time.Time
	if req.EndDate != nil && *req.EndDate != "" {
		parsed, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid end_date, expected YYYY-MM-DD"))
			return
		}
		endDate = &parsed
	}

	tmpl, err := h.recurringService.CreateTemplate(
		familyID,
		&memberID,
		models.TransactionType(req.Type),
		req.CategoryID,
		req.Amount,
		req.PaymentMethodID,
		req.Description,
		models.Frequency(req.Frequency),
		startDate,
		endDate,
		req.DayOfMonth,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"template": tmpl})
}

// ListTemplates returns the family's recurring templates
// @Summary     List recurring templates
// @Description List the family's recurring templates, optionally active only
// @Tags        recurring
// @Produce     json
// @Security    BearerAuth
// @Param       active query bool false "Only active templates"
// @Success     200 {object} map[string]interface{} "Templates"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring [get]
func (h *RecurringHandler) ListTemplates(c *gin.Context) {
	familyID, err := getFamilyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	activeOnly := c.Query("active") == "true"
	templates, err := h.recurringService.GetFamilyTemplates(familyID, activeOnly)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

// ToggleTemplate flips a template between active and paused
// @Summary     Toggle a recurring template
// @Description Pause an active template or resume a paused one
// @Tags        recurring
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Template ID"
// @Success     200 {object} map[string]interface{} "Template toggled"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Template not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring/{id}/toggle [post]
func (h *RecurringHandler) ToggleTemplate(c *gin.Context) {
	familyID, err := getFamilyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	templateID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	tmpl, err := h.recurringService.ToggleTemplate(familyID, templateID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"template": tmpl})
}

// GenerateDue fires all templates of the family that are due today
// @Summary     Generate due transactions
// @Description Fire every active template that is due, reporting per-template failures
// @Tags        recurring
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.GenerateResult "Generation result"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring/generate [post]
func (h *RecurringHandler) GenerateDue(c *gin.Context) {
	familyID, err := getFamilyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.recurringService.GenerateDue(familyID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	message := "No transactions were due"
	if result.Generated > 0 {
		message = "Transactions generated"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "result": result})
}
