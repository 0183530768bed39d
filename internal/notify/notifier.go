package notify

import (
	"context"
	"time"
)

// Payload 單則提醒的內容
type Payload struct {
	UserID     int    `json:"userId"`
	EventID    int    `json:"eventId"`
	EventTitle string `json:"eventTitle"`
	Body       string `json:"body"`
}

// Notifier 本地通知協作者。本服務只負責推導正確的提醒瞬間，
// 實際送達由外部推播服務處理。
type Notifier interface {
	ScheduleAt(ctx context.Context, instant time.Time, payload Payload) error
	// CancelAll 清掉此使用者所有已排程的提醒。重排前一定先呼叫它，
	// 提醒才不會重複累積。
	CancelAll(ctx context.Context, userID int) error
}
