package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"access_management/internal/access"
	"access_management/internal/models"
)

// UserAccessHistory returns every recorded attempt by the user identified
// by the userName query parameter (the account email).
func UserAccessHistory(db *gorm.DB, accessSvc *access.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userName := strings.TrimSpace(c.Query("userName"))
		if userName == "" {
			c.JSON(http.StatusBadRequest, Failed(CodeValidationError, "userName is required"))
			return
		}

		var user models.User
		err := db.Where("email = ?", strings.ToLower(userName)).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, Failed(CodeNotRegisteredUser))
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, Failed(CodeError))
			return
		}

		history, err := accessSvc.UserHistory(c.Request.Context(), user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, Failed(CodeError))
			return
		}
		c.JSON(http.StatusOK, SucceededWithData(history))
	}
}
