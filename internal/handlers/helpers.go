package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/logger"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (uint, error) {
	userID, exists := c.Get("userID")
	if !exists {
		return 0, apperrors.ErrUnauthorized
	}
	return userID.(uint), nil
}

// getFamilyID extracts the resolved family ID set by the RequireFamily
// middleware. Returns ErrNoFamily if not present.
func getFamilyID(c *gin.Context) (uint, error) {
	familyID, exists := c.Get("familyID")
	if !exists {
		return 0, apperrors.ErrNoFamily
	}
	return familyID.(uint), nil
}

// getMemberID extracts the resolved family member ID set by the RequireFamily
// middleware. Returns ErrNoFamily if not present.
func getMemberID(c *gin.Context) (uint, error) {
	memberID, exists := c.Get("memberID")
	if !exists {
		return 0, apperrors.ErrNoFamily
	}
	return memberID.(uint), nil
}

// parsePathID parses a uint path parameter.
// Returns ErrInvalidInput if the parameter is not a valid positive integer.
//
//nolint:unparam // param is intentionally generic for reuse across handlers with different path params
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// parseYearMonth reads year and month query parameters, defaulting to the
// current calendar month when absent.
func parseYearMonth(c *gin.Context) (int, int, error) {
	now := time.Now()
	year := now.Year()
	month := int(now.Month())

	if v := c.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid year")
		}
		year = parsed
	}
	if v := c.Query("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 12 {
			return 0, 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid month")
		}
		month = parsed
	}
	return year, month, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}
