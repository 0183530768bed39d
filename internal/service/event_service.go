package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"time"

	"sportsync/internal/cache"
	"sportsync/internal/model"
	"sportsync/internal/repository"
	apperrors "sportsync/pkg/app_errors"
	"sportsync/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type EventService interface {
	// Create 建立活動並把主辦人放進名單；容量、分隊與價格在此刻固定
	Create(ctx context.Context, params model.CreateEventParams, hostFirstName, hostLastName string) (*model.Event, error)
	// GetByEventID 回傳活動與目前名單
	GetByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error)
	// ListClassified 使用者的活動依參考時刻分成 Upcoming / Past / Cancelled。
	// 呼叫端在生命週期事件（focus、pull-to-refresh）時呼叫，核心不預設觸發時機。
	ListClassified(ctx context.Context, userID int, now time.Time) (model.Classification, error)
	// Cancel 主辦人取消活動；取消是終態，之後的 join/leave/swap 一律拒絕
	Cancel(ctx context.Context, eventID uuid.UUID, requesterID int) (*model.Event, error)
}

type EventServiceImpl struct {
	pool            *pgxpool.Pool
	repo            repository.EventRepository
	participantRepo repository.ParticipantRepository
	rosterGate      cache.RosterGateManager
	inviteIndex     cache.InviteCodeIndex
	reminders       ReminderService
}

func NewEventService(
	pool *pgxpool.Pool,
	repo repository.EventRepository,
	participantRepo repository.ParticipantRepository,
	rosterGate cache.RosterGateManager,
	inviteIndex cache.InviteCodeIndex,
	reminders ReminderService,
) EventService {
	return &EventServiceImpl{
		pool:            pool,
		repo:            repo,
		participantRepo: participantRepo,
		rosterGate:      rosterGate,
		inviteIndex:     inviteIndex,
		reminders:       reminders,
	}
}

const inviteCodeRetries = 5

func (s *EventServiceImpl) Create(ctx context.Context, params model.CreateEventParams, hostFirstName, hostLastName string) (*model.Event, error) {
	if err := validateCreateParams(&params); err != nil {
		return nil, err
	}

	event := &model.Event{
		EventID:                   uuid.New(),
		Title:                     params.Title,
		Date:                      params.Date,
		Time:                      params.Time,
		Location:                  params.Location,
		Latitude:                  params.Latitude,
		Longitude:                 params.Longitude,
		NumberOfPlayers:           params.NumberOfPlayers,
		IsTeamDistributionEnabled: params.IsTeamDistributionEnabled,
		TeamDistribution:          params.TeamDistribution,
		TeamColors:                params.TeamColors,
		Price:                     params.Price,
		HostID:                    params.HostID,
		Status:                    model.EventStatusActive,
	}

	// 邀請碼在 active 活動間唯一（partial unique index）。撞碼的錯誤會讓
	// 整筆交易進 aborted 狀態，所以換一組碼重試時連交易一起重開。
	var created *model.Event
	var hostParticipant *model.Participant
	var err error
	for i := 0; i < inviteCodeRetries; i++ {
		event.InviteCode, err = generateInviteCode()
		if err != nil {
			return nil, err
		}
		created, hostParticipant, err = s.createWithHost(ctx, event, hostFirstName, hostLastName)
		if err == nil {
			break
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
	}
	if created == nil {
		return nil, fmt.Errorf("allocate invite code: %w", err)
	}
	created.Participants = []*model.Participant{hostParticipant}

	// 快取失敗不擋建立：閘門冷掉時 join 會從 DB 補預熱
	if err := s.rosterGate.WarmUpRoster(ctx, created.ID, created.NumberOfPlayers, []int{created.HostID}); err != nil {
		logger.WithComponent("service").Warn("warm up roster failed", zap.Int("event_id", created.ID), zap.Error(err))
	}
	if err := s.inviteIndex.Put(ctx, created.InviteCode, created.EventID); err != nil {
		logger.WithComponent("service").Warn("index invite code failed", zap.String("code", created.InviteCode), zap.Error(err))
	}

	// 新活動可能就是主辦人最接近的一場，重排提醒
	if err := s.reminders.Resync(ctx, created.HostID, time.Now()); err != nil {
		logger.WithComponent("service").Warn("resync reminders failed", zap.Int("user_id", created.HostID), zap.Error(err))
	}

	return created, nil
}

// createWithHost 活動列與主辦人的名單列在同一筆交易內寫入；
// 任何一步失敗就整筆回滾，不會留下有邀請碼卻沒有名單的活動。
// 主辦人是名單的第一位，身分由 hostId 推導，不另外存角色。
func (s *EventServiceImpl) createWithHost(ctx context.Context, event *model.Event, hostFirstName, hostLastName string) (*model.Event, *model.Participant, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	created, err := s.repo.Create(ctx, tx, event)
	if err != nil {
		return nil, nil, err
	}

	host := &model.Participant{
		EventID:   created.ID,
		UserID:    created.HostID,
		FirstName: hostFirstName,
		LastName:  hostLastName,
		Paid:      true,
	}
	if created.IsTeamDistributionEnabled {
		color, err := model.AssignColorOnJoin(created, nil)
		if err != nil {
			return nil, nil, err
		}
		host.ShirtColor = &color
	}

	participant, err := s.participantRepo.Create(ctx, tx, host)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return created, participant, nil
}

func (s *EventServiceImpl) GetByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	event, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	participants, err := s.participantRepo.ListByEventID(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	event.Participants = participants

	return event, nil
}

func (s *EventServiceImpl) ListClassified(ctx context.Context, userID int, now time.Time) (model.Classification, error) {
	events, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return model.Classification{}, err
	}

	// 時間區間壞掉的活動挑出來記 log，不讓整份清單炸掉
	classification, malformed := model.ClassifySkippingMalformed(events, now)
	for _, e := range malformed {
		logger.WithComponent("service").Warn("event excluded from classification",
			zap.String("event_id", e.EventID.String()),
			zap.String("time_range", e.Time))
	}

	return classification, nil
}

func (s *EventServiceImpl) Cancel(ctx context.Context, eventID uuid.UUID, requesterID int) (*model.Event, error) {
	event, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if requesterID != event.HostID {
		return nil, apperrors.ErrPermissionDenied
	}

	// 取消前抓名單，事後才能幫每位參與者重排提醒
	participants, err := s.participantRepo.ListByEventID(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	cancelled, err := s.repo.UpdateStatusWithLock(ctx, tx, event.ID, model.EventStatusCancelled)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	// 取消後邀請碼作廢、容量閘門清掉；失敗只記 log，權威狀態已在 DB
	if err := s.inviteIndex.Remove(ctx, cancelled.InviteCode); err != nil {
		logger.WithComponent("service").Warn("remove invite code failed", zap.String("code", cancelled.InviteCode), zap.Error(err))
	}
	if err := s.rosterGate.ClearRoster(ctx, cancelled.ID); err != nil {
		logger.WithComponent("service").Warn("clear roster gate failed", zap.Int("event_id", cancelled.ID), zap.Error(err))
	}

	now := time.Now()
	for _, p := range participants {
		if err := s.reminders.Resync(ctx, p.UserID, now); err != nil {
			logger.WithComponent("service").Warn("resync reminders failed", zap.Int("user_id", p.UserID), zap.Error(err))
		}
	}

	return cancelled, nil
}

func validateCreateParams(params *model.CreateEventParams) error {
	if params.Title == "" {
		return apperrors.ErrInvalidInput
	}
	if params.NumberOfPlayers <= 0 {
		return apperrors.ErrInvalidInput
	}
	if params.Price < 0 || !hasAtMostTwoDecimals(params.Price) {
		return apperrors.ErrInvalidInput
	}
	if _, err := model.ParseTimeWindow(params.Date, params.Time); err != nil {
		return err
	}
	if params.IsTeamDistributionEnabled {
		if !model.CanEnableTeams(params.NumberOfPlayers, params.TeamDistribution, params.TeamColors) {
			return apperrors.ErrInvalidInput
		}
	} else if params.TeamDistribution != nil || params.TeamColors != nil {
		return apperrors.ErrInvalidInput
	}
	return nil
}

func hasAtMostTwoDecimals(price float64) bool {
	scaled := price * 100
	return math.Abs(scaled-math.Round(scaled)) < 1e-6
}

// generateInviteCode 產生 6 位數字邀請碼（輸入畫面就是六格數字）
func generateInviteCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate invite code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
