package repository

import (
	"context"
	"errors"
	"fmt"

	"sportsync/internal/model"
	apperrors "sportsync/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ParticipantRepository interface {
	ListByEventID(ctx context.Context, eventID int) ([]*model.Participant, error)
	FindByEventAndUser(ctx context.Context, eventID int, userID int) (*model.Participant, error)
	Delete(ctx context.Context, eventID int, userID int) error

	// Transaction methods
	ListByEventIDTx(ctx context.Context, tx pgx.Tx, eventID int) ([]*model.Participant, error)
	CountByEventID(ctx context.Context, tx pgx.Tx, eventID int) (int, error)
	Create(ctx context.Context, tx pgx.Tx, participant *model.Participant) (*model.Participant, error)
	SwapColors(ctx context.Context, tx pgx.Tx, eventID int, participantAID int, participantBID int) error
}

type ParticipantRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewParticipantRepository(pool *pgxpool.Pool) ParticipantRepository {
	return &ParticipantRepositoryImpl{
		pool: pool,
	}
}

const participantColumns = `
	id, event_id, user_id, first_name, last_name, paid, shirt_color, joined_at
`

func scanParticipant(row pgx.Row) (*model.Participant, error) {
	var p model.Participant
	err := row.Scan(
		&p.ID,
		&p.EventID,
		&p.UserID,
		&p.FirstName,
		&p.LastName,
		&p.Paid,
		&p.ShirtColor,
		&p.JoinedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ParticipantRepositoryImpl) listByEventID(ctx context.Context, q interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}, eventID int) ([]*model.Participant, error) {
	query := `
		SELECT ` + participantColumns + `
		FROM participants
		WHERE event_id = $1
		ORDER BY joined_at, id
	`
	rows, err := q.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := make([]*model.Participant, 0)
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return participants, nil
}

func (r *ParticipantRepositoryImpl) ListByEventID(ctx context.Context, eventID int) ([]*model.Participant, error) {
	return r.listByEventID(ctx, r.pool, eventID)
}

func (r *ParticipantRepositoryImpl) ListByEventIDTx(ctx context.Context, tx pgx.Tx, eventID int) ([]*model.Participant, error) {
	return r.listByEventID(ctx, tx, eventID)
}

func (r *ParticipantRepositoryImpl) FindByEventAndUser(ctx context.Context, eventID int, userID int) (*model.Participant, error) {
	query := `
		SELECT ` + participantColumns + `
		FROM participants
		WHERE event_id = $1 AND user_id = $2
	`
	p, err := scanParticipant(r.pool.QueryRow(ctx, query, eventID, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrParticipantNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ParticipantRepositoryImpl) CountByEventID(ctx context.Context, tx pgx.Tx, eventID int) (int, error) {
	var count int
	err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM participants WHERE event_id = $1`, eventID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ParticipantRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, participant *model.Participant) (*model.Participant, error) {
	query := `
		INSERT INTO participants (event_id, user_id, first_name, last_name, paid, shirt_color)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + participantColumns

	p, err := scanParticipant(tx.QueryRow(ctx, query,
		participant.EventID, participant.UserID,
		participant.FirstName, participant.LastName,
		participant.Paid, participant.ShirtColor,
	))
	if err != nil {
		// unique(event_id, user_id)：客戶端 timeout 重試打進來時不能重複入隊
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrAlreadyJoined
		}
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}

	return p, nil
}

func (r *ParticipantRepositoryImpl) Delete(ctx context.Context, eventID int, userID int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM participants WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrParticipantNotFound
	}
	return nil
}

// SwapColors 兩人換色是同一條 UPDATE 的兩列交換：要嘛兩件一起生效、
// 要嘛都不動，不會觀察到只換了一半的狀態。
func (r *ParticipantRepositoryImpl) SwapColors(ctx context.Context, tx pgx.Tx, eventID int, participantAID int, participantBID int) error {
	query := `
		UPDATE participants AS p
		SET shirt_color = other.shirt_color
		FROM participants AS other
		WHERE p.event_id = $1
		  AND other.event_id = $1
		  AND ((p.id = $2 AND other.id = $3) OR (p.id = $3 AND other.id = $2))
	`
	tag, err := tx.Exec(ctx, query, eventID, participantAID, participantBID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 2 {
		return apperrors.ErrParticipantNotFound
	}
	return nil
}
