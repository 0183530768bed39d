package handler

import (
	"net/http"
	"strconv"
	"time"

	"sportsync/internal/model"
	"sportsync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("events", h.Create)
		router.GET("events/event/:uuid", h.GetByEventID)
		router.GET("events/user-events/:userID", h.ListClassified)
		router.POST("events/event/:uuid/cancel", h.Cancel)
	}
}

// CreateEventRequest 建立活動請求；日期用 YYYY-MM-DD，時間用 "HH:MM - HH:MM"
type CreateEventRequest struct {
	Title                     string                  `json:"title" binding:"required"`
	Date                      string                  `json:"date" binding:"required"`
	Time                      string                  `json:"time" binding:"required"`
	Location                  string                  `json:"location" binding:"required"`
	Latitude                  float64                 `json:"latitude"`
	Longitude                 float64                 `json:"longitude"`
	NumberOfPlayers           int                     `json:"numberOfPlayers" binding:"required,min=1"`
	IsTeamDistributionEnabled bool                    `json:"isTeamDistributionEnabled"`
	TeamDistribution          *model.TeamDistribution `json:"teamDistribution"`
	TeamColors                *model.TeamColors       `json:"teamColors"`
	Price                     float64                 `json:"price"`
	HostID                    int                     `json:"hostId" binding:"required"`
	HostFirstName             string                  `json:"hostFirstName" binding:"required"`
	HostLastName              string                  `json:"hostLastName" binding:"required"`
}

func (h *EventHandler) Create(c *gin.Context) {
	var req CreateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	params := model.CreateEventParams{
		Title:                     req.Title,
		Date:                      date,
		Time:                      req.Time,
		Location:                  req.Location,
		Latitude:                  req.Latitude,
		Longitude:                 req.Longitude,
		NumberOfPlayers:           req.NumberOfPlayers,
		IsTeamDistributionEnabled: req.IsTeamDistributionEnabled,
		TeamDistribution:          req.TeamDistribution,
		TeamColors:                req.TeamColors,
		Price:                     req.Price,
		HostID:                    req.HostID,
	}

	created, err := h.service.Create(c, params, req.HostFirstName, req.HostLastName)
	if err != nil {
		handleError(c, err, "Create")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *EventHandler) GetByEventID(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event uuid"})
		return
	}

	event, err := h.service.GetByEventID(c, eventID)
	if err != nil {
		handleError(c, err, "GetByEventID")
		return
	}
	c.JSON(http.StatusOK, event)
}

// ListClassified 明確的 refresh 操作：呼叫端決定何時刷新，可用 ?now= 指定
// 參考時刻（RFC3339），預設取伺服器目前時間。
func (h *EventHandler) ListClassified(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	now := time.Now()
	if raw := c.Query("now"); raw != "" {
		now, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid now, expected RFC3339"})
			return
		}
	}

	classification, err := h.service.ListClassified(c, userID, now)
	if err != nil {
		handleError(c, err, "ListClassified")
		return
	}
	c.JSON(http.StatusOK, classification)
}

// CancelEventRequest 取消活動請求；requesterId 必須是主辦人
type CancelEventRequest struct {
	RequesterID int `json:"requesterId" binding:"required"`
}

func (h *EventHandler) Cancel(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event uuid"})
		return
	}

	var req CancelEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	cancelled, err := h.service.Cancel(c, eventID, req.RequesterID)
	if err != nil {
		handleError(c, err, "Cancel")
		return
	}
	c.JSON(http.StatusOK, cancelled)
}
