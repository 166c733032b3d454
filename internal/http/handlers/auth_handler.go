package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"access_management/internal/models"
)

// Register creates a user account from email and password.
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required,min=8"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, Failed(CodeValidationError, err.Error()))
			return
		}

		input.Email = strings.TrimSpace(strings.ToLower(input.Email))

		var existing int64
		if err := db.Model(&models.User{}).Where("email = ?", input.Email).Count(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, Failed(CodeError))
			return
		}
		if existing > 0 {
			c.JSON(http.StatusBadRequest, Failed(CodeExistingAccount))
			return
		}

		passHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, Failed(CodeError))
			return
		}

		user := models.User{
			ID:           uuid.NewString(),
			Email:        input.Email,
			PasswordHash: string(passHash),
			TokenVersion: uuid.NewString(),
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, Failed(CodeError))
			return
		}

		c.JSON(http.StatusOK, Succeeded())
	}
}

// Login authenticates the user and returns a signed JWT.
func Login(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, Failed(CodeValidationError, err.Error()))
			return
		}

		var user models.User
		if err := db.Where("email = ?", strings.ToLower(input.Email)).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, Failed(CodeInvalidLogin))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, Failed(CodeInvalidLogin))
			return
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"uid":           user.ID,
			"email":         user.Email,
			"token_version": user.TokenVersion,
			"exp":           time.Now().Add(24 * time.Hour).Unix(),
		})

		tokenString, err := token.SignedString([]byte(jwtSecret))
		if err != nil {
			c.JSON(http.StatusInternalServerError, Failed(CodeError))
			return
		}

		c.JSON(http.StatusOK, SucceededWithData(gin.H{
			"Token": tokenString,
			"Email": user.Email,
		}))
	}
}
