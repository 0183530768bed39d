package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// PreferenceStore 每位使用者的「提醒我接近中的活動」偏好。
// key 不存在視為開啟，跟行動端預設開提醒的行為一致。
type PreferenceStore interface {
	GetNotifyUpcoming(ctx context.Context, userID int) (bool, error)
	SetNotifyUpcoming(ctx context.Context, userID int, enabled bool) error
}

type PreferenceStoreImpl struct {
	client *redis.Client
}

func NewPreferenceStore(client *redis.Client) PreferenceStore {
	return &PreferenceStoreImpl{client: client}
}

func (s *PreferenceStoreImpl) getKey(userID int) string {
	return fmt.Sprintf("user:%d:notify_upcoming", userID)
}

func (s *PreferenceStoreImpl) GetNotifyUpcoming(ctx context.Context, userID int) (bool, error) {
	val, err := s.client.Get(ctx, s.getKey(userID)).Result()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return val == "1", nil
}

func (s *PreferenceStoreImpl) SetNotifyUpcoming(ctx context.Context, userID int, enabled bool) error {
	val := "0"
	if enabled {
		val = "1"
	}
	return s.client.Set(ctx, s.getKey(userID), val, 0).Err()
}
