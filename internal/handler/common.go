package handler

import (
	"errors"
	"net/http"

	apperrors "sportsync/pkg/app_errors"
	"sportsync/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

func BindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

func BindUri(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindUri(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

// handleError 把領域錯誤對應到 HTTP 狀態碼。
// 入隊相關的終止失敗（full / cancelled / invalid code）對使用者是不可重試
// 的訊息；只有 ErrNetwork 提示重試。
func handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrInvalidCode):
		log.Warn("Invalid invite code")
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid invite code"})
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errors.Is(err, apperrors.ErrParticipantNotFound):
		log.Warn("Participant not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Participant not found"})
	case errors.Is(err, apperrors.ErrEventFull):
		log.Warn("Event full")
		c.JSON(http.StatusConflict, gin.H{"error": "Event full"})
	case errors.Is(err, apperrors.ErrAlreadyJoined):
		log.Warn("Already joined")
		c.JSON(http.StatusConflict, gin.H{"error": "Already joined"})
	case errors.Is(err, apperrors.ErrEventCancelled):
		log.Warn("Event cancelled")
		c.JSON(http.StatusGone, gin.H{"error": "Event cancelled"})
	case errors.Is(err, apperrors.ErrPaymentFailed):
		log.Warn("Payment failed")
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Payment failed"})
	case errors.Is(err, apperrors.ErrPermissionDenied):
		log.Warn("Permission denied")
		c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
	case errors.Is(err, apperrors.ErrHostCannotLeave):
		log.Warn("Host cannot leave")
		c.JSON(http.StatusForbidden, gin.H{"error": "Host cannot leave, cancel the event instead"})
	case errors.Is(err, apperrors.ErrNoOpSwap):
		log.Warn("No-op swap")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Participants already wear the same color"})
	case errors.Is(err, apperrors.ErrMalformedTimeRange):
		log.Warn("Malformed time range")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Malformed time range"})
	case errors.Is(err, apperrors.ErrNetwork):
		log.Warn("Collaborator unreachable")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Service unavailable, please retry"})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
