package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/services"
)

// RequireFamily resolves the authenticated user's family membership and
// stores the family and member IDs in the context. Handlers pass these IDs
// explicitly into every service call, so tenant scope is never resolved from
// ambient state below the middleware layer.
//
// Must run after AuthMiddleware.
func RequireFamily(familyService services.FamilyServicer) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			appErr := apperrors.ErrUnauthorized
			c.JSON(appErr.StatusCode, gin.H{"error": gin.H{"code": appErr.Code, "message": appErr.Message}})
			c.Abort()
			return
		}

		member, err := familyService.GetMemberByUserID(userID.(uint))
		if err != nil {
			appErr := apperrors.ErrNoFamily
			c.JSON(appErr.StatusCode, gin.H{"error": gin.H{"code": appErr.Code, "message": appErr.Message}})
			c.Abort()
			return
		}

		c.Set("familyID", member.FamilyID)
		c.Set("memberID", member.ID)
		c.Next()
	}
}
