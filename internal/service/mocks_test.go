package service

import (
	"context"
	"time"

	"sportsync/internal/model"
	"sportsync/internal/queue"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, tx pgx.Tx, event *model.Event) (*model.Event, error) {
	args := m.Called(ctx, tx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventRepository) FindByID(ctx context.Context, id int) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventRepository) FindByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventRepository) FindActiveByInviteCode(ctx context.Context, code string) (*model.Event, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventRepository) ListByUser(ctx context.Context, userID int) ([]*model.Event, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *MockEventRepository) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Event, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventRepository) UpdateStatusWithLock(ctx context.Context, tx pgx.Tx, id int, status model.EventStatus) (*model.Event, error) {
	args := m.Called(ctx, tx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

type MockParticipantRepository struct {
	mock.Mock
}

func (m *MockParticipantRepository) ListByEventID(ctx context.Context, eventID int) ([]*model.Participant, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Participant), args.Error(1)
}

func (m *MockParticipantRepository) FindByEventAndUser(ctx context.Context, eventID int, userID int) (*model.Participant, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participant), args.Error(1)
}

func (m *MockParticipantRepository) Delete(ctx context.Context, eventID int, userID int) error {
	args := m.Called(ctx, eventID, userID)
	return args.Error(0)
}

func (m *MockParticipantRepository) ListByEventIDTx(ctx context.Context, tx pgx.Tx, eventID int) ([]*model.Participant, error) {
	args := m.Called(ctx, tx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Participant), args.Error(1)
}

func (m *MockParticipantRepository) CountByEventID(ctx context.Context, tx pgx.Tx, eventID int) (int, error) {
	args := m.Called(ctx, tx, eventID)
	return args.Int(0), args.Error(1)
}

func (m *MockParticipantRepository) Create(ctx context.Context, tx pgx.Tx, participant *model.Participant) (*model.Participant, error) {
	args := m.Called(ctx, tx, participant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participant), args.Error(1)
}

func (m *MockParticipantRepository) SwapColors(ctx context.Context, tx pgx.Tx, eventID int, participantAID int, participantBID int) error {
	args := m.Called(ctx, tx, eventID, participantAID, participantBID)
	return args.Error(0)
}

type MockRosterGateManager struct {
	mock.Mock
}

func (m *MockRosterGateManager) WarmUpRoster(ctx context.Context, eventID int, capacity int, memberIDs []int) error {
	args := m.Called(ctx, eventID, capacity, memberIDs)
	return args.Error(0)
}

func (m *MockRosterGateManager) GetJoinedCount(ctx context.Context, eventID int) (int, error) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Error(1)
}

func (m *MockRosterGateManager) ReserveSeat(ctx context.Context, eventID int, userID int) error {
	args := m.Called(ctx, eventID, userID)
	return args.Error(0)
}

func (m *MockRosterGateManager) ReleaseSeat(ctx context.Context, eventID int, userID int) error {
	args := m.Called(ctx, eventID, userID)
	return args.Error(0)
}

func (m *MockRosterGateManager) ClearRoster(ctx context.Context, eventID int) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

type MockInviteCodeIndex struct {
	mock.Mock
}

func (m *MockInviteCodeIndex) Put(ctx context.Context, code string, eventID uuid.UUID) error {
	args := m.Called(ctx, code, eventID)
	return args.Error(0)
}

func (m *MockInviteCodeIndex) Resolve(ctx context.Context, code string) (uuid.UUID, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockInviteCodeIndex) Remove(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

type MockPreferenceStore struct {
	mock.Mock
}

func (m *MockPreferenceStore) GetNotifyUpcoming(ctx context.Context, userID int) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPreferenceStore) SetNotifyUpcoming(ctx context.Context, userID int, enabled bool) error {
	args := m.Called(ctx, userID, enabled)
	return args.Error(0)
}

type MockPaymentConfirmer struct {
	mock.Mock
}

func (m *MockPaymentConfirmer) Confirm(ctx context.Context, eventID int, userID int) error {
	args := m.Called(ctx, eventID, userID)
	return args.Error(0)
}

type MockReminderQueue struct {
	mock.Mock
}

func (m *MockReminderQueue) PublishJob(ctx context.Context, job *queue.ReminderJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockReminderQueue) SubscribeJobs(ctx context.Context) (<-chan queue.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan queue.Delivery), args.Error(1)
}

type MockReminderService struct {
	mock.Mock
}

func (m *MockReminderService) Resync(ctx context.Context, userID int, now time.Time) error {
	args := m.Called(ctx, userID, now)
	return args.Error(0)
}

func (m *MockReminderService) SetPreference(ctx context.Context, userID int, enabled bool, now time.Time) error {
	args := m.Called(ctx, userID, enabled, now)
	return args.Error(0)
}

func (m *MockReminderService) GetPreference(ctx context.Context, userID int) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}
