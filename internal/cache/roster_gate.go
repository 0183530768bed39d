package cache

import (
	"context"
	"errors"
	"fmt"

	apperrors "sportsync/pkg/app_errors"

	"github.com/redis/go-redis/v9"
)

// RosterGateManager 入隊前的快速容量閘門。它只是最佳化：真正的容量判定
// 在資料庫交易內（鎖活動列重算人數），這裡先用 Lua 原子性地擋掉大多數
// 超賣與重複入隊的嘗試，跨裝置同時搶位時不用每個請求都打進交易。
type RosterGateManager interface {
	// 預熱：活動建立或閘門冷掉時，把容量與名單上的使用者整組寫進 Redis
	WarmUpRoster(ctx context.Context, eventID int, capacity int, memberIDs []int) error
	// 取得：目前已入隊人數
	GetJoinedCount(ctx context.Context, eventID int) (int, error)
	// 保留：為一位使用者原子性地保留一個位置（Lua 腳本）
	ReserveSeat(ctx context.Context, eventID int, userID int) error
	// 釋放：回滾保留（付款失敗、DB 寫入失敗或 leave 時）
	ReleaseSeat(ctx context.Context, eventID int, userID int) error
	// 清除：活動取消後整組 key 作廢
	ClearRoster(ctx context.Context, eventID int) error
}

type RosterGateManagerImpl struct {
	client *redis.Client
}

func NewRosterGateManager(client *redis.Client) RosterGateManager {
	return &RosterGateManagerImpl{
		client: client,
	}
}

// 容量資訊 key
func (m *RosterGateManagerImpl) getInfoKey(eventID int) string {
	return fmt.Sprintf("event:%d:roster", eventID)
}

// 已保留位置的使用者集合 key
func (m *RosterGateManagerImpl) getMembersKey(eventID int) string {
	return fmt.Sprintf("event:%d:members", eventID)
}

// WarmUpRoster 計數與成員集合一起重建。只補計數的話，預熱前就在名單上的
// 使用者 ReleaseSeat 時 SREM 不到人、joined 永遠扣不下來，閘門會一直滿。
func (m *RosterGateManagerImpl) WarmUpRoster(ctx context.Context, eventID int, capacity int, memberIDs []int) error {
	key := m.getInfoKey(eventID)
	membersKey := m.getMembersKey(eventID)

	members := make([]interface{}, len(memberIDs))
	for i, id := range memberIDs {
		members[i] = id
	}

	_, err := m.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, membersKey)
		if len(members) > 0 {
			pipe.SAdd(ctx, membersKey, members...)
		}
		pipe.HSet(ctx, key, map[string]interface{}{
			"capacity": capacity,
			"joined":   len(memberIDs),
		})
		return nil
	})
	return err
}

func (m *RosterGateManagerImpl) GetJoinedCount(ctx context.Context, eventID int) (int, error) {
	key := m.getInfoKey(eventID)
	val, err := m.client.HGet(ctx, key, "joined").Int()
	if err == redis.Nil {
		return -1, apperrors.ErrEventNotFound
	}
	return val, err
}

// ReserveSeat 以 Lua 腳本保留位置：
// 1. 檢查容量資訊是否已預熱
// 2. 檢查使用者是否已入隊
// 3. 檢查剩餘位置
// 4. 執行保留與紀錄
func (m *RosterGateManagerImpl) ReserveSeat(ctx context.Context, eventID int, userID int) error {
	key := m.getInfoKey(eventID)
	membersKey := m.getMembersKey(eventID)

	script := `
		local roster_key = KEYS[1]
		local members_key = KEYS[2]
		local user_id = ARGV[1]

		-- 取得容量資訊
		local info = redis.call('HMGET', roster_key, 'capacity', 'joined')
		local capacity = info[1]
		local joined = info[2]

		if not capacity or not joined then
			return -3 -- 錯誤：名單未預熱
		end

		-- 重複入隊檢查
		if redis.call('SISMEMBER', members_key, user_id) == 1 then
			return -2 -- 錯誤：已入隊
		end

		-- 容量檢查
		if tonumber(joined) >= tonumber(capacity) then
			return -1 -- 錯誤：活動已滿
		end

		-- 執行保留與紀錄
		redis.call('HINCRBY', roster_key, 'joined', 1)
		redis.call('SADD', members_key, user_id)

		return 1 -- 保留成功
	`

	result, err := m.client.Eval(ctx, script, []string{key, membersKey}, userID).Result()
	if err != nil {
		return err
	}

	code, ok := result.(int64)
	if !ok {
		return errors.New("unexpected result")
	}

	switch code {
	case 1:
		return nil
	case -1:
		return apperrors.ErrEventFull
	case -2:
		return apperrors.ErrAlreadyJoined
	case -3:
		return apperrors.ErrEventNotFound
	default:
		return errors.New("unexpected result")
	}
}

func (m *RosterGateManagerImpl) ReleaseSeat(ctx context.Context, eventID int, userID int) error {
	key := m.getInfoKey(eventID)
	membersKey := m.getMembersKey(eventID)

	script := `
		local roster_key = KEYS[1]
		local members_key = KEYS[2]
		local user_id = ARGV[1]

		-- 只回滾真的保留過位置的使用者，重複釋放不能把 joined 扣到失真
		if redis.call('SREM', members_key, user_id) == 1 then
			redis.call('HINCRBY', roster_key, 'joined', -1)
		end

		return "OK"
	`

	_, err := m.client.Eval(ctx, script, []string{key, membersKey}, userID).Result()
	if err != nil {
		return err
	}

	return nil
}

func (m *RosterGateManagerImpl) ClearRoster(ctx context.Context, eventID int) error {
	return m.client.Del(ctx, m.getInfoKey(eventID), m.getMembersKey(eventID)).Err()
}
