package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"access_management/internal/models"
)

// Claims represents the JWT claims structure.
type Claims struct {
	UserID       string `json:"uid"`
	Email        string `json:"email"`
	TokenVersion string `json:"token_version"`
	jwt.RegisteredClaims
}

// JWT returns a Gin middleware that validates bearer tokens from the
// Authorization header and verifies that the user still exists and that the
// token's version matches the user's current one. Rotating a user's
// TokenVersion (e.g. after a role change) invalidates every token issued
// before the rotation.
func JWT(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.GetHeader("Authorization")
		if tokenStr == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			c.Abort()
			return
		}

		tokenStr = strings.TrimPrefix(tokenStr, "Bearer ")
		tokenStr = strings.TrimSpace(tokenStr)

		token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			c.Abort()
			return
		}
		if user.TokenVersion != claims.TokenVersion {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token revoked"})
			c.Abort()
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}

// CurrentClaims pulls the verified claims set by JWT out of the context.
func CurrentClaims(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get("claims")
	if !ok {
		return nil, false
	}
	cl, ok := v.(*Claims)
	return cl, ok
}

// HasRole reports whether the user is a member of the named role.
func HasRole(db *gorm.DB, userID, roleName string) (bool, error) {
	var count int64
	err := db.
		Table("user_roles ur").
		Joins("JOIN roles r ON r.id = ur.role_id").
		Where("ur.user_id = ? AND r.name = ?", userID, roleName).
		Count(&count).Error
	return count > 0, err
}
