package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"access_management/internal/access"
	"access_management/internal/auth"
	"access_management/internal/doors"
	"access_management/internal/models"
)

// OpenDoor handles one door-open attempt: resolve user and door, decide,
// and record the attempt. The event is written on the deny path exactly as
// on the grant path — the audit log must contain every attempt.
//
// The response is a plain success either way; the decision outcome is only
// observable through the access history. Door hardware is signalled
// out-of-band, so leaking grant/deny here would serve nobody but an
// attacker probing for openable doors.
func OpenDoor(accessSvc *access.Service, doorSvc *doors.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := auth.CurrentClaims(c)
		if !ok {
			c.JSON(http.StatusBadRequest, Failed(CodeNotRegisteredUser))
			return
		}

		doorID, ok := doorIDParam(c)
		if !ok {
			return
		}

		exists, err := doorSvc.Exists(c.Request.Context(), doorID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, Failed(CodeError))
			return
		}
		if !exists {
			c.JSON(http.StatusBadRequest, Failed(CodeNotRegisteredDoor))
			return
		}

		granted, err := accessSvc.CanGrantAccess(c.Request.Context(), claims.UserID, doorID)
		if err != nil {
			log.Printf("access decision for door %d: %v", doorID, err)
			c.JSON(http.StatusInternalServerError, Failed(CodeError))
			return
		}

		method := models.AccessMethodRemote
		if c.Query("hasTag") == "true" {
			method = models.AccessMethodTag
		}

		// A lost audit record is a correctness violation, so a failed
		// write is a server error, not a silent success.
		if err := accessSvc.RecordEvent(c.Request.Context(), claims.UserID, doorID, method, granted, c.ClientIP()); err != nil {
			log.Printf("record access event for door %d: %v", doorID, err)
			c.JSON(http.StatusInternalServerError, Failed(CodeError))
			return
		}

		c.JSON(http.StatusOK, Succeeded())
	}
}

// DoorAccessHistory returns every recorded attempt against a door.
func DoorAccessHistory(accessSvc *access.Service, doorSvc *doors.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		doorID, ok := doorIDParam(c)
		if !ok {
			return
		}

		exists, err := doorSvc.Exists(c.Request.Context(), doorID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, Failed(CodeError))
			return
		}
		if !exists {
			c.JSON(http.StatusBadRequest, Failed(CodeNotRegisteredDoor))
			return
		}

		history, err := accessSvc.DoorHistory(c.Request.Context(), doorID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, Failed(CodeError))
			return
		}
		c.JSON(http.StatusOK, SucceededWithData(history))
	}
}
