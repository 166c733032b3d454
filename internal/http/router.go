package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"access_management/internal/access"
	"access_management/internal/auth"
	"access_management/internal/doors"
	"access_management/internal/http/handlers"
	"access_management/internal/models"
)

func NewRouter(db *gorm.DB, jwtSecret string) *gin.Engine {
	r := gin.Default()

	accessSvc := &access.Service{DB: db}
	doorSvc := &doors.Service{DB: db}
	authMW := auth.JWT(db, jwtSecret)
	adminMW := requireRole(db, models.AdminRole)

	// Public routes
	r.POST("/api/users/Register", handlers.Register(db))
	r.POST("/api/users/Login", handlers.Login(db, jwtSecret))

	api := r.Group("/api", authMW)
	{
		// Users
		api.POST("/users/AddToRole", adminMW, handlers.AddToRole(db))

		// Doors
		api.GET("/doors", handlers.ListDoors(doorSvc))
		api.POST("/doors", adminMW, handlers.CreateDoor(doorSvc))
		api.PUT("/doors/:doorId/role", adminMW, handlers.AssignDoorRole(doorSvc))

		// Door access
		api.POST("/door-access/:doorId/grant-access", handlers.OpenDoor(accessSvc, doorSvc))
		api.GET("/door-access/:doorId", adminMW, handlers.DoorAccessHistory(accessSvc, doorSvc))

		// User access
		api.GET("/user-access", adminMW, handlers.UserAccessHistory(db, accessSvc))
	}

	return r
}

func requireRole(db *gorm.DB, roleName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := auth.CurrentClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		ok, err := auth.HasRole(db, claims.UserID, roleName)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "role lookup failed"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden", "missing": roleName})
			return
		}
		c.Next()
	}
}
