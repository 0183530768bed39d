package handler

import (
	"net/http"
	"strconv"
	"time"

	"sportsync/internal/service"

	"github.com/gin-gonic/gin"
)

type PreferenceHandler struct {
	service service.ReminderService
}

func NewPreferenceHandler(service service.ReminderService) *PreferenceHandler {
	return &PreferenceHandler{service: service}
}

func (h *PreferenceHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("users/:userID/notification-preference", h.GetPreference)
		router.PUT("users/:userID/notification-preference", h.SetPreference)
	}
}

func (h *PreferenceHandler) GetPreference(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	enabled, err := h.service.GetPreference(c, userID)
	if err != nil {
		handleError(c, err, "GetPreference")
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifyUpcoming": enabled})
}

// SetPreferenceRequest 指標用 required 會把 false 當缺欄位，這裡用 *bool 區分
type SetPreferenceRequest struct {
	NotifyUpcoming *bool `json:"notifyUpcoming" binding:"required"`
}

// SetPreference 切換提醒偏好後立即重排提醒：關掉就清空，開啟就重新排程。
func (h *PreferenceHandler) SetPreference(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var req SetPreferenceRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	if err := h.service.SetPreference(c, userID, *req.NotifyUpcoming, time.Now()); err != nil {
		handleError(c, err, "SetPreference")
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifyUpcoming": *req.NotifyUpcoming})
}
