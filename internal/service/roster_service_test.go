package service

import (
	"context"
	"testing"

	apperrors "sportsync/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// 換色的前置條件（主辦人限定、名單成員、同色 no-op）由 model.ValidateSwap
// 覆蓋，交易內的完整流程走 repository 的整合測試。這裡只驗查不到活動的路徑。
func TestRosterService_SwapColors(t *testing.T) {
	ctx := context.Background()

	t.Run("Failed - event not found", func(t *testing.T) {
		eventRepo := new(MockEventRepository)
		participantRepo := new(MockParticipantRepository)
		svc := NewRosterService(nil, eventRepo, participantRepo)
		eventID := uuid.New()

		eventRepo.On("FindByEventID", ctx, eventID).Return(nil, apperrors.ErrEventNotFound).Once()

		_, err := svc.SwapColors(ctx, eventID, 100, 1, 2)

		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
		participantRepo.AssertNotCalled(t, "SwapColors")
	})
}
