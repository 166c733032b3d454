package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"access_management/internal/doors"
)

// ListDoors returns all registered doors.
func ListDoors(svc *doors.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, Failed(CodeError))
			return
		}
		c.JSON(http.StatusOK, SucceededWithData(all))
	}
}

// CreateDoor registers a new door. Until a role is assigned, nobody can
// open it.
func CreateDoor(svc *doors.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name string `json:"name" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, Failed(CodeValidationError, err.Error()))
			return
		}

		if err := svc.Create(c.Request.Context(), input.Name); err != nil {
			c.JSON(http.StatusInternalServerError, Failed(CodeError))
			return
		}
		c.JSON(http.StatusOK, Succeeded())
	}
}

// AssignDoorRole permits a role to open a door.
func AssignDoorRole(svc *doors.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		doorID, ok := doorIDParam(c)
		if !ok {
			return
		}

		var input struct {
			RoleName string `json:"roleName" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, Failed(CodeValidationError, err.Error()))
			return
		}

		exists, err := svc.Exists(c.Request.Context(), doorID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, Failed(CodeError))
			return
		}
		if !exists {
			c.JSON(http.StatusBadRequest, Failed(CodeNotRegisteredDoor))
			return
		}

		err = svc.AssignRole(c.Request.Context(), doorID, input.RoleName)
		switch {
		case errors.Is(err, doors.ErrRoleNotFound):
			c.JSON(http.StatusBadRequest, Failed(CodeNotRegisteredRole))
		case errors.Is(err, doors.ErrDuplicateAssignment):
			c.JSON(http.StatusBadRequest, Failed(CodeValidationError, "role already assigned to door"))
		case err != nil:
			c.JSON(http.StatusInternalServerError, Failed(CodeError))
		default:
			c.JSON(http.StatusOK, Succeeded())
		}
	}
}

// doorIDParam parses the :doorId path segment, answering the validation
// failure itself when the value is not an integer.
func doorIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("doorId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Failed(CodeValidationError, "doorId must be an integer"))
		return 0, false
	}
	return id, true
}
