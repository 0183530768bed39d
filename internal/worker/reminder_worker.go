package worker

import (
	"context"

	"sportsync/internal/notify"
	"sportsync/internal/queue"
	"sportsync/pkg/logger"

	"go.uber.org/zap"
)

type ReminderWorker interface {
	// Start 訂閱提醒重排隊列
	Start(ctx context.Context) error
}

type ReminderWorkerImpl struct {
	notifier notify.Notifier
	queue    queue.ReminderQueue
}

func NewReminderWorker(notifier notify.Notifier, queue queue.ReminderQueue) ReminderWorker {
	return &ReminderWorkerImpl{
		notifier: notifier,
		queue:    queue,
	}
}

func (w *ReminderWorkerImpl) Start(ctx context.Context) error {
	msgs, _ := w.queue.SubscribeJobs(ctx)

	go func() {
		for msg := range msgs {
			err := w.apply(ctx, msg.Data)

			if err != nil {
				// 推播協作者暫時連不上，留給隊列延遲重試
				msg.Nack(true)
			} else {
				msg.Ack()
			}
		}
	}()
	return nil
}

// apply 把一包重排當成單一邏輯動作：先全取消再逐一排程。
// 順序不能反過來，否則同一場活動重複重排會累積出重複提醒。
func (w *ReminderWorkerImpl) apply(ctx context.Context, job *queue.ReminderJob) error {
	if err := w.notifier.CancelAll(ctx, job.UserID); err != nil {
		return err
	}

	for _, at := range job.Instants {
		payload := notify.Payload{
			UserID:     job.UserID,
			EventID:    job.EventID,
			EventTitle: job.EventTitle,
			Body:       "Your event " + job.EventTitle + " is coming up!",
		}
		if err := w.notifier.ScheduleAt(ctx, at, payload); err != nil {
			logger.WithComponent("worker").Warn("schedule reminder failed",
				zap.Int("user_id", job.UserID), zap.Time("at", at), zap.Error(err))
			return err
		}
	}

	return nil
}
