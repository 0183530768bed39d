package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"sportsync/internal/model"
	"sportsync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func createJSONHTTPRequest(method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) Create(ctx context.Context, params model.CreateEventParams, hostFirstName, hostLastName string) (*model.Event, error) {
	args := m.Called(ctx, params, hostFirstName, hostLastName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventService) GetByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventService) ListClassified(ctx context.Context, userID int, now time.Time) (model.Classification, error) {
	args := m.Called(ctx, userID, now)
	return args.Get(0).(model.Classification), args.Error(1)
}

func (m *MockEventService) Cancel(ctx context.Context, eventID uuid.UUID, requesterID int) (*model.Event, error) {
	args := m.Called(ctx, eventID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

type MockJoinService struct {
	mock.Mock
}

func (m *MockJoinService) ResolveInviteCode(ctx context.Context, code string) (*model.Event, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockJoinService) Join(ctx context.Context, req service.JoinRequest) (*model.Participant, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participant), args.Error(1)
}

func (m *MockJoinService) Leave(ctx context.Context, eventID uuid.UUID, userID int) error {
	args := m.Called(ctx, eventID, userID)
	return args.Error(0)
}

type MockRosterService struct {
	mock.Mock
}

func (m *MockRosterService) SwapColors(ctx context.Context, eventID uuid.UUID, requesterID int, participantAID int, participantBID int) ([]*model.Participant, error) {
	args := m.Called(ctx, eventID, requesterID, participantAID, participantBID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Participant), args.Error(1)
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
