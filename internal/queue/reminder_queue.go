package queue

import (
	"context"
	"time"
)

// ReminderJob 一次完整的提醒重排。Instants 是推導好的完整集合；
// worker 先 CancelAll 再逐一排程，整包視為單一邏輯動作。
// Instants 為空代表「全取消、不再排」（偏好關閉或沒有下一場活動）。
type ReminderJob struct {
	UserID     int         `json:"user_id"`
	EventID    int         `json:"event_id"`
	EventTitle string      `json:"event_title"`
	Instants   []time.Time `json:"instants"`
}

type Delivery struct {
	Data *ReminderJob
	Ack  func()
	Nack func(requeue bool)
}

type ReminderQueue interface {
	// 發送重排工作到隊列
	PublishJob(ctx context.Context, job *ReminderJob) error
	// 訂閱重排工作
	SubscribeJobs(ctx context.Context) (<-chan Delivery, error)
}

type ReminderQueueImpl struct {
	// 使用 Go channel 的記憶體版隊列，單機跑與測試用
	ch chan *ReminderJob
}

func NewReminderQueue(bufferSize int) ReminderQueue {
	return &ReminderQueueImpl{
		ch: make(chan *ReminderJob, bufferSize),
	}
}

func (q *ReminderQueueImpl) PublishJob(ctx context.Context, job *ReminderJob) error {
	q.ch <- job
	return nil
}

func (q *ReminderQueueImpl) SubscribeJobs(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case job, ok := <-q.ch:
				if !ok {
					return
				}

				out <- Delivery{
					Data: job,
					Ack:  func() { /* 記憶體版不用做特別動作 */ },
					Nack: func(requeue bool) {
						if requeue {
							q.ch <- job // 簡單模擬重回隊列
						}
					},
				}
			}
		}
	}()

	return out, nil
}
