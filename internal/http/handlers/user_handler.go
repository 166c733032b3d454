package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"access_management/internal/models"
)

// AddToRole attaches an existing user to an existing role by email and role
// name. The user's TokenVersion is rotated so tokens minted before the role
// change stop working.
func AddToRole(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email string `json:"email" binding:"required,email"`
			Role  string `json:"role" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, Failed(CodeValidationError, err.Error()))
			return
		}

		var user models.User
		err := db.Where("email = ?", strings.ToLower(input.Email)).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, Failed(CodeNotRegisteredUser))
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, Failed(CodeError))
			return
		}

		var role models.Role
		err = db.Where("name = ?", input.Role).First(&role).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, Failed(CodeNotRegisteredRole))
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, Failed(CodeError))
			return
		}

		membership := models.UserRole{UserID: user.ID, RoleID: role.ID}
		err = db.Create(&membership).Error
		if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusInternalServerError, Failed(CodeError))
			return
		}

		if err := db.Model(&user).Update("token_version", uuid.NewString()).Error; err != nil {
			c.JSON(http.StatusInternalServerError, Failed(CodeError))
			return
		}

		c.JSON(http.StatusOK, Succeeded())
	}
}
