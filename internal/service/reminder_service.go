package service

import (
	"context"
	"fmt"
	"time"

	"sportsync/internal/cache"
	"sportsync/internal/model"
	"sportsync/internal/queue"
	"sportsync/internal/repository"
)

// ReminderService 追蹤每位使用者「下一場活動」並觸發提醒重排。
// 每次下一場改變（join、leave、建立、取消、偏好翻轉）都整組重推導，
// 發布完整集合給 worker 做 cancel-then-reschedule，不留前一場的殘留提醒。
type ReminderService interface {
	// Resync 重算使用者的下一場活動並發布重排工作
	Resync(ctx context.Context, userID int, now time.Time) error
	// SetPreference 寫偏好並立即重排（關閉時效果是全取消、不再排）
	SetPreference(ctx context.Context, userID int, enabled bool, now time.Time) error
	GetPreference(ctx context.Context, userID int) (bool, error)
}

type ReminderServiceImpl struct {
	eventRepo   repository.EventRepository
	preferences cache.PreferenceStore
	queue       queue.ReminderQueue
}

func NewReminderService(
	eventRepo repository.EventRepository,
	preferences cache.PreferenceStore,
	queue queue.ReminderQueue,
) ReminderService {
	return &ReminderServiceImpl{
		eventRepo:   eventRepo,
		preferences: preferences,
		queue:       queue,
	}
}

func (s *ReminderServiceImpl) Resync(ctx context.Context, userID int, now time.Time) error {
	job := &queue.ReminderJob{UserID: userID}

	enabled, err := s.preferences.GetNotifyUpcoming(ctx, userID)
	if err != nil {
		return fmt.Errorf("read notify preference: %w", err)
	}

	if enabled {
		events, err := s.eventRepo.ListByUser(ctx, userID)
		if err != nil {
			return err
		}

		// 已取消的活動不會進 Upcoming，也就永遠排不進提醒
		if next := model.NextUpcoming(events, now); next != nil {
			job.EventID = next.ID
			job.EventTitle = next.Title
			job.Instants = model.DeriveReminderInstants(next, now)
		}
	}

	// Instants 為空也照發：worker 的 CancelAll 就是「全取消、不再排」
	return s.queue.PublishJob(ctx, job)
}

func (s *ReminderServiceImpl) SetPreference(ctx context.Context, userID int, enabled bool, now time.Time) error {
	if err := s.preferences.SetNotifyUpcoming(ctx, userID, enabled); err != nil {
		return err
	}
	return s.Resync(ctx, userID, now)
}

func (s *ReminderServiceImpl) GetPreference(ctx context.Context, userID int) (bool, error) {
	return s.preferences.GetNotifyUpcoming(ctx, userID)
}
