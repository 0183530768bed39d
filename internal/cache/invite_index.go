package cache

import (
	"context"
	"fmt"

	apperrors "sportsync/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// InviteCodeIndex 邀請碼到活動的 O(1) 索引。只索引 active 活動，
// 活動取消時移除，對輸入碼的人來說取消活動的碼就是無效碼。
// 索引掉了（例如 Redis 清空）時呼叫端要退回資料庫查詢。
type InviteCodeIndex interface {
	Put(ctx context.Context, code string, eventID uuid.UUID) error
	Resolve(ctx context.Context, code string) (uuid.UUID, error)
	Remove(ctx context.Context, code string) error
}

type InviteCodeIndexImpl struct {
	client *redis.Client
}

func NewInviteCodeIndex(client *redis.Client) InviteCodeIndex {
	return &InviteCodeIndexImpl{client: client}
}

func (i *InviteCodeIndexImpl) getKey(code string) string {
	return fmt.Sprintf("invite:%s", code)
}

func (i *InviteCodeIndexImpl) Put(ctx context.Context, code string, eventID uuid.UUID) error {
	return i.client.Set(ctx, i.getKey(code), eventID.String(), 0).Err()
}

func (i *InviteCodeIndexImpl) Resolve(ctx context.Context, code string) (uuid.UUID, error) {
	val, err := i.client.Get(ctx, i.getKey(code)).Result()
	if err == redis.Nil {
		return uuid.Nil, apperrors.ErrInvalidCode
	}
	if err != nil {
		return uuid.Nil, err
	}

	eventID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid event uuid in index: %w", err)
	}
	return eventID, nil
}

func (i *InviteCodeIndexImpl) Remove(ctx context.Context, code string) error {
	return i.client.Del(ctx, i.getKey(code)).Err()
}
