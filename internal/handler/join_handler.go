package handler

import (
	"net/http"

	"sportsync/internal/model"
	"sportsync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type JoinHandler struct {
	service service.JoinService
}

func NewJoinHandler(service service.JoinService) *JoinHandler {
	return &JoinHandler{service: service}
}

func (h *JoinHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("events/resolve-code", h.ResolveCode)
		router.POST("events/join-event", h.Join)
		router.POST("events/leave-event", h.Leave)
	}
}

// ResolveCodeRequest 邀請碼固定六位數字
type ResolveCodeRequest struct {
	Code string `json:"code" binding:"required,len=6,numeric"`
}

func (h *JoinHandler) ResolveCode(c *gin.Context) {
	var req ResolveCodeRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	event, err := h.service.ResolveInviteCode(c, req.Code)
	if err != nil {
		handleError(c, err, "ResolveCode")
		return
	}
	c.JSON(http.StatusOK, event)
}

type JoinEventRequest struct {
	EventID       string `json:"eventId" binding:"required"`
	UserID        int    `json:"userId" binding:"required"`
	FirstName     string `json:"firstName" binding:"required"`
	LastName      string `json:"lastName" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required,oneof=direct cash"`
}

func (h *JoinHandler) Join(c *gin.Context) {
	var req JoinEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event uuid"})
		return
	}

	participant, err := h.service.Join(c, service.JoinRequest{
		EventID:       eventID,
		UserID:        req.UserID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		PaymentMethod: model.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		handleError(c, err, "Join")
		return
	}
	c.JSON(http.StatusOK, participant)
}

type LeaveEventRequest struct {
	EventID string `json:"eventId" binding:"required"`
	UserID  int    `json:"userId" binding:"required"`
}

func (h *JoinHandler) Leave(c *gin.Context) {
	var req LeaveEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event uuid"})
		return
	}

	if err := h.service.Leave(c, eventID, req.UserID); err != nil {
		handleError(c, err, "Leave")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Left event"})
}
