package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
	"kakeibo/internal/services"
)

// PaymentMethodHandler handles payment method requests.
type PaymentMethodHandler struct {
	paymentMethodService services.PaymentMethodServicer
}

// NewPaymentMethodHandler creates a new PaymentMethodHandler.
func NewPaymentMethodHandler(paymentMethodService services.PaymentMethodServicer) *PaymentMethodHandler {
	return &PaymentMethodHandler{paymentMethodService: paymentMethodService}
}

// CreatePaymentMethodRequest represents the request payload for creating a payment method
type CreatePaymentMethodRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
	Type string `json:"type" binding:"required,method_type"`
}

// CreatePaymentMethod handles payment method creation
// @Summary     Create a payment method
// @Description Create a payment method for the family
// @Tags        payment-methods
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePaymentMethodRequest true "Payment method details"
// @Success     201 {object} map[string]interface{} "Payment method created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payment-methods [post]
func (h *PaymentMethodHandler) CreatePaymentMethod(c *gin.Context) {
	familyID, err := getFamilyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	method, err := h.paymentMethodService.CreatePaymentMethod(familyID, req.Name, models.PaymentMethodType(req.Type))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"payment_method": method})
}

// ListPaymentMethods returns the family's payment methods
// @Summary     List payment methods
// @Description List the family's payment methods
// @Tags        payment-methods
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Payment methods"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payment-methods [get]
func (h *PaymentMethodHandler) ListPaymentMethods(c *gin.Context) {
	familyID, err := getFamilyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	methods, err := h.paymentMethodService.GetFamilyPaymentMethods(familyID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment_methods": methods})
}

// DeletePaymentMethod handles payment method deletion
// @Summary     Delete a payment method
// @Description Delete a payment method; existing transactions keep their reference
// @Tags        payment-methods
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Payment method ID"
// @Success     200 {object} map[string]interface{} "Payment method deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Payment method not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payment-methods/{id} [delete]
func (h *PaymentMethodHandler) DeletePaymentMethod(c *gin.Context) {
	familyID, err := getFamilyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	methodID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.paymentMethodService.DeletePaymentMethod(familyID, methodID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment method deleted"})
}
