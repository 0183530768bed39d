package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sportsync/internal/cache"
	"sportsync/internal/model"
	"sportsync/internal/payment"
	"sportsync/internal/repository"
	apperrors "sportsync/pkg/app_errors"
	"sportsync/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// JoinRequest 一次入隊嘗試
type JoinRequest struct {
	EventID       uuid.UUID
	UserID        int
	FirstName     string
	LastName      string
	PaymentMethod model.PaymentMethod
}

type JoinService interface {
	// ResolveInviteCode 邀請碼換活動。未知的碼與取消活動的碼都回 ErrInvalidCode。
	ResolveInviteCode(ctx context.Context, code string) (*model.Event, error)
	// Join 把參與者放進名單：容量重檢 -> 付款（direct 時）-> 寫入名單。
	// 付款必須在任何名單異動之前完成；付款失敗絕不動名單。
	Join(ctx context.Context, req JoinRequest) (*model.Participant, error)
	// Leave 離開活動。主辦人不能離開，只能取消整場。
	Leave(ctx context.Context, eventID uuid.UUID, userID int) error
}

type JoinServiceImpl struct {
	pool            *pgxpool.Pool
	eventRepo       repository.EventRepository
	participantRepo repository.ParticipantRepository
	rosterGate      cache.RosterGateManager
	inviteIndex     cache.InviteCodeIndex
	payments        payment.Confirmer
	reminders       ReminderService
}

func NewJoinService(
	pool *pgxpool.Pool,
	eventRepo repository.EventRepository,
	participantRepo repository.ParticipantRepository,
	rosterGate cache.RosterGateManager,
	inviteIndex cache.InviteCodeIndex,
	payments payment.Confirmer,
	reminders ReminderService,
) JoinService {
	return &JoinServiceImpl{
		pool:            pool,
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		rosterGate:      rosterGate,
		inviteIndex:     inviteIndex,
		payments:        payments,
		reminders:       reminders,
	}
}

func (s *JoinServiceImpl) ResolveInviteCode(ctx context.Context, code string) (*model.Event, error) {
	// 先查 Redis 索引，索引冷掉（清空、重啟）就退回 DB
	eventID, err := s.inviteIndex.Resolve(ctx, code)
	if err == nil {
		event, err := s.eventRepo.FindByEventID(ctx, eventID)
		if err == nil && !event.IsCancelled() {
			return event, nil
		}
	}

	event, err := s.eventRepo.FindActiveByInviteCode(ctx, code)
	if err != nil {
		return nil, err
	}

	// 回填索引，下次 O(1)
	if err := s.inviteIndex.Put(ctx, code, event.EventID); err != nil {
		logger.WithComponent("service").Warn("backfill invite index failed", zap.String("code", code), zap.Error(err))
	}
	return event, nil
}

func (s *JoinServiceImpl) Join(ctx context.Context, req JoinRequest) (*model.Participant, error) {
	if !req.PaymentMethod.IsValid() {
		return nil, apperrors.ErrInvalidInput
	}

	// 入隊流程沿著 JoinState 推進，每一步都先驗證轉換合法；
	// 流程順序被改壞時會在這裡先報錯，不會默默跳過容量或付款檢查。
	// 邀請碼已在 resolve 階段驗過，從 code_validated 接手。
	state := model.JoinStateCodeValidated
	advance := func(target model.JoinState) error {
		if !state.CanTransitionTo(target) {
			return fmt.Errorf("join flow: illegal transition %s -> %s", state, target)
		}
		state = target
		return nil
	}
	fail := func(terminal model.JoinState, cause error) error {
		if err := advance(terminal); err != nil {
			return err
		}
		return cause
	}

	event, err := s.eventRepo.FindByEventID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if event.IsCancelled() {
		return nil, fail(model.JoinStateEventCancelled, apperrors.ErrEventCancelled)
	}

	// 同一人重試（client timeout 後重打）直接回已存在的名單列，
	// 不再碰付款協作者：已觀察到一次付款確認就不重複請款。
	if existing, err := s.participantRepo.FindByEventAndUser(ctx, event.ID, req.UserID); err == nil {
		return existing, nil
	} else if !errors.Is(err, apperrors.ErrParticipantNotFound) {
		return nil, err
	}

	// 1. Redis 閘門先原子性保留位置。這是最佳化的預檢，擋掉大多數
	//    對已滿活動的嘗試；權威判定還是在下面的交易裡。
	if err := s.reserveSeat(ctx, event, req.UserID); err != nil {
		if errors.Is(err, apperrors.ErrEventFull) {
			return nil, fail(model.JoinStateEventFull, err)
		}
		return nil, err
	}
	if err := advance(model.JoinStateCapacityChecked); err != nil {
		return nil, err
	}

	// 2. direct 付款：確認往返必須在名單異動之前完成且成功。
	//    失敗就回滾保留位，名單一根毛都不能動。
	if req.PaymentMethod == model.PaymentMethodDirect {
		if err := advance(model.JoinStatePaymentPending); err != nil {
			return nil, err
		}
		if err := s.payments.Confirm(ctx, event.ID, req.UserID); err != nil {
			// 回滾一定要執行，用 context.Background() 不跟請求一起被取消
			s.releaseSeat(event.ID, req.UserID)
			return nil, fail(model.JoinStatePaymentFailed, err)
		}
		if err := advance(model.JoinStatePaymentConfirmed); err != nil {
			return nil, err
		}
	} else {
		if err := advance(model.JoinStateCashSelected); err != nil {
			return nil, err
		}
	}

	// 3. 權威入隊：鎖活動列、重算名單人數、配色、寫入
	participant, err := s.admit(ctx, event.ID, req)
	if err != nil {
		s.releaseSeat(event.ID, req.UserID)
		switch {
		case errors.Is(err, apperrors.ErrEventFull):
			return nil, fail(model.JoinStateEventFull, err)
		case errors.Is(err, apperrors.ErrEventCancelled):
			return nil, fail(model.JoinStateEventCancelled, err)
		}
		return nil, err
	}
	if err := advance(model.JoinStateJoined); err != nil {
		return nil, err
	}

	// 剛加入的活動可能是這位使用者最接近的一場，重排提醒
	if err := s.reminders.Resync(ctx, req.UserID, time.Now()); err != nil {
		logger.WithComponent("service").Warn("resync reminders failed", zap.Int("user_id", req.UserID), zap.Error(err))
	}

	return participant, nil
}

// reserveSeat 閘門冷掉（Redis 清空或活動比快取舊）時從 DB 補預熱再試一次
func (s *JoinServiceImpl) reserveSeat(ctx context.Context, event *model.Event, userID int) error {
	err := s.rosterGate.ReserveSeat(ctx, event.ID, userID)
	if !errors.Is(err, apperrors.ErrEventNotFound) {
		return err
	}

	participants, err := s.participantRepo.ListByEventID(ctx, event.ID)
	if err != nil {
		return err
	}
	memberIDs := make([]int, len(participants))
	for i, p := range participants {
		memberIDs[i] = p.UserID
	}
	if err := s.rosterGate.WarmUpRoster(ctx, event.ID, event.NumberOfPlayers, memberIDs); err != nil {
		return err
	}
	return s.rosterGate.ReserveSeat(ctx, event.ID, userID)
}

func (s *JoinServiceImpl) releaseSeat(eventID int, userID int) {
	if err := s.rosterGate.ReleaseSeat(context.Background(), eventID, userID); err != nil {
		logger.WithComponent("service").Error("release seat failed",
			zap.Int("event_id", eventID), zap.Int("user_id", userID), zap.Error(err))
	}
}

// admit 在單一交易內完成權威容量重檢與名單寫入。
// 活動列的鎖讓跨裝置的同時入隊在這裡被序列化。
func (s *JoinServiceImpl) admit(ctx context.Context, eventID int, req JoinRequest) (*model.Participant, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	event, err := s.eventRepo.FindByIDWithLock(ctx, tx, eventID)
	if err != nil {
		return nil, err
	}
	// 驗證跟入隊之間狀態可能翻成 cancelled
	if event.IsCancelled() {
		return nil, apperrors.ErrEventCancelled
	}

	count, err := s.participantRepo.CountByEventID(ctx, tx, event.ID)
	if err != nil {
		return nil, err
	}
	if count >= event.NumberOfPlayers {
		return nil, apperrors.ErrEventFull
	}

	participant := &model.Participant{
		EventID:   event.ID,
		UserID:    req.UserID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Paid:      req.PaymentMethod == model.PaymentMethodDirect,
	}

	if event.IsTeamDistributionEnabled {
		roster, err := s.participantRepo.ListByEventIDTx(ctx, tx, event.ID)
		if err != nil {
			return nil, err
		}
		color, err := model.AssignColorOnJoin(event, roster)
		if err != nil {
			return nil, err
		}
		participant.ShirtColor = &color
	}

	created, err := s.participantRepo.Create(ctx, tx, participant)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}

func (s *JoinServiceImpl) Leave(ctx context.Context, eventID uuid.UUID, userID int) error {
	event, err := s.eventRepo.FindByEventID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.IsCancelled() {
		return apperrors.ErrEventCancelled
	}
	if userID == event.HostID {
		return apperrors.ErrHostCannotLeave
	}

	if err := s.participantRepo.Delete(ctx, event.ID, userID); err != nil {
		return err
	}

	s.releaseSeat(event.ID, userID)

	if err := s.reminders.Resync(ctx, userID, time.Now()); err != nil {
		logger.WithComponent("service").Warn("resync reminders failed", zap.Int("user_id", userID), zap.Error(err))
	}

	return nil
}
