package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/services"
)

// FamilyHandler handles family and membership requests.
type FamilyHandler struct {
	familyService services.FamilyServicer
}

// NewFamilyHandler creates a new FamilyHandler.
func NewFamilyHandler(familyService services.FamilyServicer) *FamilyHandler {
	return &FamilyHandler{familyService: familyService}
}

// CreateFamilyRequest represents the request payload for creating a family
type CreateFamilyRequest struct {
	FamilyName string `json:"family_name" binding:"required,min=1,max=100"`
	Nickname   string `json:"nickname" binding:"required,min=1,max=50"`
	CurrencyID *uint  `json:"currency_id"`
}

// JoinFamilyRequest represents the request payload for joining via invite
type JoinFamilyRequest struct {
	Code     string `json:"code" binding:"required"`
	Nickname string `json:"nickname" binding:"required,min=1,max=50"`
}

// NotificationSettingsRequest represents the reminder configuration payload
type NotificationSettingsRequest struct {
	EnableNotifications bool   `json:"enable_notifications"`
	DaysWithoutLog      int    `json:"days_without_log" binding:"required,min=1,max=30"`
	NotificationEmails  string `json:"notification_emails" binding:"max=500"`
}

// CreateFamily handles family creation
// @Summary     Create a family
// @Description Create a family with the authenticated user as its first member
// @Tags        family
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateFamilyRequest true "Family details"
// @Success     201 {object} map[string]interface{} "Family created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Already in a family"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /family [post]
func (h *FamilyHandler) CreateFamily(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	family, member, err := h.familyService.CreateFamily(userID, req.FamilyName, req.Nickname, req.CurrencyID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"family": family, "member": member})
}

// GetFamily returns the authenticated user's family
// @Summary     Get family
// @Description Get the authenticated user's family and its members
// @Tags        family
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Family with members"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not in a family"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /family [get]
func (h *FamilyHandler) GetFamily(c *gin.Context) {
	familyID, err := getFamilyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	family, err := h.familyService.GetFamilyByID(familyID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	members, err := h.familyService.ListMembers(familyID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"family": family, "members": members})
}

// CreateInvite issues an invite code
// @Summary     Create an invite
// @Description Issue a single-use invite code for another user to join the family
// @Tags        family
// @Produce     json
// @Security    BearerAuth
// @Success     201 {object} map[string]interface{} "Invite created"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not in a family"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /family/invites [post]
func (h *FamilyHandler) CreateInvite(c *gin.Context) {
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

	invite, err := h.familyService.CreateInvite(familyID, memberID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"invite": invite})
}

// JoinFamily redeems an invite code
// @Summary     Join a family
// @Description Join an existing family using an invite code
// @Tags        family
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body JoinFamilyRequest true "Invite code and nickname"
// @Success     200 {object} map[string]interface{} "Joined family"
// @Failure     400 {object} ErrorResponse "Invalid or expired invite"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Already in a family"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /family/join [post]
func (h *FamilyHandler) JoinFamily(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req JoinFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	member, err := h.familyService.JoinFamily(userID, req.Code, req.Nickname)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"member": member})
}

// ListCurrencies returns the selectable display currencies
// @Summary     List currencies
// @Description List the currencies a family can be created with
// @Tags        family
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Currencies"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /currencies [get]
func (h *FamilyHandler) ListCurrencies(c *gin.Context) {
	currencies, err := h.familyService.ListCurrencies()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"currencies": currencies})
}

// GetNotificationSettings returns the family's reminder configuration
// @Summary     Get notification settings
// @Description Get the family's log reminder configuration
// @Tags        family
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Notification settings"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not in a family"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /family/notifications [get]
func (h *FamilyHandler) GetNotificationSettings(c *gin.Context) {
	familyID, err := getFamilyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	settings, err := h.familyService.GetNotificationSettings(familyID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateNotificationSettings updates the family's reminder configuration
// @Summary     Update notification settings
// @Description Update the family's log reminder configuration
// @Tags        family
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body NotificationSettingsRequest true "Notification settings"
// @Success     200 {object} map[string]interface{} "Updated settings"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not in a family"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /family/notifications [put]
func (h *FamilyHandler) UpdateNotificationSettings(c *gin.Context) {
	familyID, err := getFamilyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req NotificationSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	settings, err := h.familyService.UpdateNotificationSettings(familyID, req.EnableNotifications, req.DaysWithoutLog, req.NotificationEmails)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}
