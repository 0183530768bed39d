package repository

import (
	"context"
	"time"

	"sportsync/internal/model"
	apperrors "sportsync/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository interface {
	FindByID(ctx context.Context, id int) (*model.Event, error)
	FindByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error)
	// FindActiveByInviteCode 只看 active 活動；取消活動的碼等同無效碼
	FindActiveByInviteCode(ctx context.Context, code string) (*model.Event, error)
	// ListByUser 使用者主辦或參加的所有活動
	ListByUser(ctx context.Context, userID int) ([]*model.Event, error)

	// Transaction methods
	// Create 走交易：活動列要跟主辦人的名單列一起落地，不留半套狀態
	Create(ctx context.Context, tx pgx.Tx, event *model.Event) (*model.Event, error)
	FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Event, error)
	UpdateStatusWithLock(ctx context.Context, tx pgx.Tx, id int, status model.EventStatus) (*model.Event, error)
}

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
	}
}

const eventColumns = `
	id, event_id, title, event_date, time_range, location, latitude, longitude,
	number_of_players, is_team_distribution_enabled,
	team_one_count, team_two_count, team_one_color, team_two_color,
	price, host_id, invite_code, status, created_at, updated_at
`

// scanEvent 把一列掃進 Event；分隊欄位允許 NULL，開分隊時才組裝
func scanEvent(row pgx.Row) (*model.Event, error) {
	var event model.Event
	var teamOneCount, teamTwoCount *int
	var teamOneColor, teamTwoColor *string

	err := row.Scan(
		&event.ID,
		&event.EventID,
		&event.Title,
		&event.Date,
		&event.Time,
		&event.Location,
		&event.Latitude,
		&event.Longitude,
		&event.NumberOfPlayers,
		&event.IsTeamDistributionEnabled,
		&teamOneCount,
		&teamTwoCount,
		&teamOneColor,
		&teamTwoColor,
		&event.Price,
		&event.HostID,
		&event.InviteCode,
		&event.Status,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if event.IsTeamDistributionEnabled && teamOneCount != nil && teamTwoCount != nil {
		event.TeamDistribution = &model.TeamDistribution{
			TeamOne: *teamOneCount,
			TeamTwo: *teamTwoCount,
		}
	}
	if event.IsTeamDistributionEnabled && teamOneColor != nil && teamTwoColor != nil {
		event.TeamColors = &model.TeamColors{
			TeamOneColor: *teamOneColor,
			TeamTwoColor: *teamTwoColor,
		}
	}

	return &event, nil
}

func (r *EventRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, event *model.Event) (*model.Event, error) {
	query := `
		INSERT INTO events (
			event_id, title, event_date, time_range, location, latitude, longitude,
			number_of_players, is_team_distribution_enabled,
			team_one_count, team_two_count, team_one_color, team_two_color,
			price, host_id, invite_code, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING ` + eventColumns

	var teamOneCount, teamTwoCount *int
	var teamOneColor, teamTwoColor *string
	if event.TeamDistribution != nil {
		teamOneCount = &event.TeamDistribution.TeamOne
		teamTwoCount = &event.TeamDistribution.TeamTwo
	}
	if event.TeamColors != nil {
		teamOneColor = &event.TeamColors.TeamOneColor
		teamTwoColor = &event.TeamColors.TeamTwoColor
	}

	row := tx.QueryRow(ctx, query,
		event.EventID, event.Title, event.Date, event.Time, event.Location,
		event.Latitude, event.Longitude,
		event.NumberOfPlayers, event.IsTeamDistributionEnabled,
		teamOneCount, teamTwoCount, teamOneColor, teamTwoColor,
		event.Price, event.HostID, event.InviteCode, event.Status,
	)

	return scanEvent(row)
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return event, nil
}

func (r *EventRepositoryImpl) FindByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE event_id = $1`

	event, err := scanEvent(r.pool.QueryRow(ctx, query, eventID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return event, nil
}

func (r *EventRepositoryImpl) FindActiveByInviteCode(ctx context.Context, code string) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE invite_code = $1 AND status = 'active'`

	event, err := scanEvent(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrInvalidCode
		}
		return nil, err
	}

	return event, nil
}

func (r *EventRepositoryImpl) ListByUser(ctx context.Context, userID int) ([]*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE host_id = $1
		   OR id IN (SELECT event_id FROM participants WHERE user_id = $1)
		ORDER BY event_date DESC, id
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// FindByIDWithLock 鎖住活動列。入隊的權威容量重算與取消都要先拿這把鎖，
// 跨裝置同時入隊才會被資料庫序列化。
func (r *EventRepositoryImpl) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 FOR UPDATE`

	event, err := scanEvent(tx.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return event, nil
}

func (r *EventRepositoryImpl) UpdateStatusWithLock(ctx context.Context, tx pgx.Tx, id int, status model.EventStatus) (*model.Event, error) {
	event, err := r.FindByIDWithLock(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if !event.Status.CanTransitionTo(status) {
		return nil, apperrors.ErrEventCancelled
	}

	query := `
		UPDATE events
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + eventColumns

	updated, err := scanEvent(tx.QueryRow(ctx, query, status, time.Now().UTC(), id))
	if err != nil {
		return nil, err
	}

	return updated, nil
}
