package service

import (
	"context"
	"testing"
	"time"

	"sportsync/internal/model"
	"sportsync/internal/queue"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupReminderServiceMocks() (
	*MockEventRepository,
	*MockPreferenceStore,
	*MockReminderQueue,
	ReminderService,
) {
	eventRepo := new(MockEventRepository)
	preferences := new(MockPreferenceStore)
	q := new(MockReminderQueue)
	svc := NewReminderService(eventRepo, preferences, q)
	return eventRepo, preferences, q, svc
}

func TestReminderService_Resync(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, 12, 16, 0, 0, 0, 0, time.UTC)
	start := time.Date(2024, 12, 16, 18, 0, 0, 0, time.UTC)

	t.Run("Success - schedules for the next upcoming event", func(t *testing.T) {
		eventRepo, preferences, q, svc := setupReminderServiceMocks()
		now := start.Add(-48 * time.Hour)
		next := &model.Event{
			ID: 7, EventID: uuid.New(), Title: "Friday Football",
			Date: day, Time: "18:00 - 19:30", Status: model.EventStatusActive,
		}
		later := &model.Event{
			ID: 8, EventID: uuid.New(), Title: "Sunday Run",
			Date: day.AddDate(0, 0, 3), Time: "09:00 - 10:00", Status: model.EventStatusActive,
		}

		preferences.On("GetNotifyUpcoming", ctx, 1).Return(true, nil).Once()
		eventRepo.On("ListByUser", ctx, 1).Return([]*model.Event{later, next}, nil).Once()

		var published *queue.ReminderJob
		q.On("PublishJob", ctx, mock.AnythingOfType("*queue.ReminderJob")).
			Run(func(args mock.Arguments) { published = args.Get(1).(*queue.ReminderJob) }).
			Return(nil).Once()

		require.NoError(t, svc.Resync(ctx, 1, now))

		require.NotNil(t, published)
		// 追蹤的是最接近的一場，不是較晚的那場
		assert.Equal(t, 7, published.EventID)
		assert.Equal(t, "Friday Football", published.EventTitle)
		require.Len(t, published.Instants, 4)
		assert.Equal(t, start.Add(-24*time.Hour), published.Instants[0])
		assert.Equal(t, start.Add(-20*time.Minute), published.Instants[3])
	})

	t.Run("Success - disabled preference publishes a cancel-all job", func(t *testing.T) {
		eventRepo, preferences, q, svc := setupReminderServiceMocks()

		preferences.On("GetNotifyUpcoming", ctx, 1).Return(false, nil).Once()

		var published *queue.ReminderJob
		q.On("PublishJob", ctx, mock.AnythingOfType("*queue.ReminderJob")).
			Run(func(args mock.Arguments) { published = args.Get(1).(*queue.ReminderJob) }).
			Return(nil).Once()

		require.NoError(t, svc.Resync(ctx, 1, time.Now()))

		require.NotNil(t, published)
		assert.Empty(t, published.Instants)
		// 偏好關閉時連活動清單都不用撈
		eventRepo.AssertNotCalled(t, "ListByUser")
	})

	t.Run("Success - no upcoming event publishes a cancel-all job", func(t *testing.T) {
		eventRepo, preferences, q, svc := setupReminderServiceMocks()
		now := start.Add(48 * time.Hour)
		past := &model.Event{
			ID: 7, EventID: uuid.New(), Title: "Friday Football",
			Date: day, Time: "18:00 - 19:30", Status: model.EventStatusActive,
		}

		preferences.On("GetNotifyUpcoming", ctx, 1).Return(true, nil).Once()
		eventRepo.On("ListByUser", ctx, 1).Return([]*model.Event{past}, nil).Once()

		var published *queue.ReminderJob
		q.On("PublishJob", ctx, mock.AnythingOfType("*queue.ReminderJob")).
			Run(func(args mock.Arguments) { published = args.Get(1).(*queue.ReminderJob) }).
			Return(nil).Once()

		require.NoError(t, svc.Resync(ctx, 1, now))

		require.NotNil(t, published)
		assert.Empty(t, published.Instants)
	})

	t.Run("Failed - preference read error", func(t *testing.T) {
		_, preferences, q, svc := setupReminderServiceMocks()
		preferences.On("GetNotifyUpcoming", ctx, 1).Return(false, assert.AnError).Once()

		err := svc.Resync(ctx, 1, time.Now())

		require.Error(t, err)
		q.AssertNotCalled(t, "PublishJob")
	})
}

func TestReminderService_SetPreference(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 12, 16, 12, 0, 0, 0, time.UTC)

	t.Run("Success - disabling stores then resyncs", func(t *testing.T) {
		_, preferences, q, svc := setupReminderServiceMocks()

		preferences.On("SetNotifyUpcoming", ctx, 1, false).Return(nil).Once()
		// Resync 內會再讀一次偏好
		preferences.On("GetNotifyUpcoming", ctx, 1).Return(false, nil).Once()
		q.On("PublishJob", ctx, mock.AnythingOfType("*queue.ReminderJob")).Return(nil).Once()

		require.NoError(t, svc.SetPreference(ctx, 1, false, now))

		preferences.AssertExpectations(t)
		q.AssertExpectations(t)
	})

	t.Run("Failed - store error skips resync", func(t *testing.T) {
		_, preferences, q, svc := setupReminderServiceMocks()
		preferences.On("SetNotifyUpcoming", ctx, 1, true).Return(assert.AnError).Once()

		err := svc.SetPreference(ctx, 1, true, now)

		require.Error(t, err)
		q.AssertNotCalled(t, "PublishJob")
	})
}

func TestReminderService_GetPreference(t *testing.T) {
	ctx := context.Background()
	_, preferences, _, svc := setupReminderServiceMocks()

	preferences.On("GetNotifyUpcoming", ctx, 1).Return(true, nil).Once()

	enabled, err := svc.GetPreference(ctx, 1)

	require.NoError(t, err)
	assert.True(t, enabled)
}
