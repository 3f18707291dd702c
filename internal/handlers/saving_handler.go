package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/pagination"
	"kakeibo/internal/services"
)

// SavingHandler handles cash saving requests.
type SavingHandler struct {
	savingService services.SavingServicer
}

// NewSavingHandler creates a new SavingHandler.
func NewSavingHandler(savingService services.SavingServicer) *SavingHandler {
	return &SavingHandler{savingService: savingService}
}

// CreateSavingRequest represents the request payload for recording a cash saving
type CreateSavingRequest struct {
	Amount      int64  `json:"amount" binding:"gte=0"`
	Date        string `json:"date" binding:"required"`
	Description string `json:"description" binding:"max=200"`
}

// CreateSaving handles cash saving creation
// @Summary     Record a cash saving
// @Description Record money set aside, separate from the income/expense ledger
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateSavingRequest true "Saving details"
// @Success     201 {object} map[string]interface{} "Saving recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings [post]
func (h *SavingHandler) CreateSaving(c *gin.Context) {
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

	var req CreateSavingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date, expected YYYY-MM-DD"))
		return
	}

	saving, err := h.savingService.CreateSaving(familyID, &memberID, req.Amount, date, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"saving": saving})
}

// ListSavings returns the family's cash savings
// @Summary     List cash savings
// @Description List the family's cash savings, newest first
// @Tags        savings
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} map[string]interface{} "Paginated savings"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings [get]
func (h *SavingHandler) ListSavings(c *gin.Context) {
	familyID, err := getFamilyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	resp, err := h.savingService.GetFamilySavings(familyID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteSaving handles cash saving deletion
// @Summary     Delete a cash saving
// @Description Delete a cash saving entry
// @Tags        savings
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Saving ID"
// @Success     200 {object} map[string]interface{} "Saving deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Saving not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings/{id} [delete]
func (h *SavingHandler) DeleteSaving(c *gin.Context) {
	familyID, err := getFamilyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	savingID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.savingService.DeleteSaving(familyID, savingID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Saving deleted"})
}
