package handler

import (
	"net/http"

	"sportsync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RosterHandler struct {
	service service.RosterService
}

func NewRosterHandler(service service.RosterService) *RosterHandler {
	return &RosterHandler{service: service}
}

func (h *RosterHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("events/event/:uuid/swap-colors", h.SwapColors)
	}
}

// SwapColorsRequest 交換兩名參與者的球衣顏色，只有主辦人能操作
type SwapColorsRequest struct {
	RequesterID  int `json:"requesterId" binding:"required"`
	ParticipantA int `json:"participantA" binding:"required"`
	ParticipantB int `json:"participantB" binding:"required"`
}

func (h *RosterHandler) SwapColors(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event uuid"})
		return
	}

	var req SwapColorsRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	roster, err := h.service.SwapColors(c, eventID, req.RequesterID, req.ParticipantA, req.ParticipantB)
	if err != nil {
		handleError(c, err, "SwapColors")
		return
	}
	c.JSON(http.StatusOK, gin.H{"participants": roster})
}
