package service

import (
	"context"

	"sportsync/internal/model"
	"sportsync/internal/repository"
	apperrors "sportsync/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RosterService interface {
	// SwapColors 主辦人限定的兩人換色。兩件一起生效或都不動；
	// 換色只交換顏色不動隊伍人數，配色不變量自動保持。
	SwapColors(ctx context.Context, eventID uuid.UUID, requesterID int, participantAID int, participantBID int) ([]*model.Participant, error)
}

type RosterServiceImpl struct {
	pool            *pgxpool.Pool
	eventRepo       repository.EventRepository
	participantRepo repository.ParticipantRepository
}

func NewRosterService(
	pool *pgxpool.Pool,
	eventRepo repository.EventRepository,
	participantRepo repository.ParticipantRepository,
) RosterService {
	return &RosterServiceImpl{
		pool:            pool,
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
	}
}

func (s *RosterServiceImpl) SwapColors(ctx context.Context, eventID uuid.UUID, requesterID int, participantAID int, participantBID int) ([]*model.Participant, error) {
	event, err := s.eventRepo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// 鎖活動列：換色是對名單的 read-modify-write，要跟同時進行的
	// join/cancel 序列化，打在過期名單上的換色會在這裡被擋下
	locked, err := s.eventRepo.FindByIDWithLock(ctx, tx, event.ID)
	if err != nil {
		return nil, err
	}
	if locked.IsCancelled() {
		return nil, apperrors.ErrEventCancelled
	}

	roster, err := s.participantRepo.ListByEventIDTx(ctx, tx, locked.ID)
	if err != nil {
		return nil, err
	}

	var a, b *model.Participant
	for _, p := range roster {
		switch p.ID {
		case participantAID:
			a = p
		case participantBID:
			b = p
		}
	}

	if err := model.ValidateSwap(locked, requesterID, a, b); err != nil {
		return nil, err
	}

	if err := s.participantRepo.SwapColors(ctx, tx, locked.ID, participantAID, participantBID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	// 回傳確認後的名單；呼叫端收到回應才更新本地狀態，不做樂觀套用
	return s.participantRepo.ListByEventID(ctx, event.ID)
}
