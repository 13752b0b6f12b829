package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"voltledger/internal/models"
)

// SessionRepository persists charge sessions. Sessions are append/mutate
// only; rows are never deleted.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository returns repository instance.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a session in the Created state. A primary key conflict
// surfaces as an id collision, never a silent overwrite.
func (r *SessionRepository) Create(ctx context.Context, session *models.ChargeSession) error {
	const query = `
		INSERT INTO charge_sessions (id, owner_id, station_id, start_time, energy_wh, completed, paid)
		VALUES ($1, $2, $3, $4, 0, false, false)
	`
	_, err := r.db.ExecContext(ctx, query, session.ID, session.OwnerID, session.StationID, session.StartTime)
	if isUniqueViolation(err) {
		return models.ErrIDCollision
	}
	return err
}

// GetByID fetches a session.
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*models.ChargeSession, error) {
	const query = `
		SELECT id, owner_id, station_id, start_time, end_time, energy_wh, completed, paid
		FROM charge_sessions
		WHERE id = $1
	`
	var (
		session models.ChargeSession
		endTime sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID,
		&session.OwnerID,
		&session.StationID,
		&session.StartTime,
		&endTime,
		&session.EnergyWh,
		&session.Completed,
		&session.Paid,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if endTime.Valid {
		t := endTime.Time
		session.EndTime = &t
	}
	return &session, nil
}

// Exists reports whether a session id is already taken.
func (r *SessionRepository) Exists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM charge_sessions WHERE id = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Complete transitions a session to Completed. The guarded UPDATE makes the
// transition one-way even under concurrent callers: a second completion
// matches no row and reports the reason instead.
func (r *SessionRepository) Complete(ctx context.Context, id string, endTime time.Time, energyWh int64) error {
	const query = `
		UPDATE charge_sessions
		SET end_time = $2, energy_wh = $3, completed = true
		WHERE id = $1 AND completed = false
	`
	res, err := r.db.ExecContext(ctx, query, id, endTime, energyWh)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		session, err := r.GetByID(ctx, id)
		if errors.Is(err, ErrNotFound) {
			return models.ErrSessionNotFound
		}
		if err != nil {
			return err
		}
		if session.Completed {
			return models.ErrAlreadyCompleted
		}
		return models.ErrSessionNotFound
	}
	return nil
}

// ListByOwner returns the owner's sessions, newest first.
func (r *SessionRepository) ListByOwner(ctx context.Context, ownerID string, limit int) ([]models.ChargeSession, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
		SELECT id, owner_id, station_id, start_time, end_time, energy_wh, completed, paid
		FROM charge_sessions
		WHERE owner_id = $1
		ORDER BY start_time DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.ChargeSession
	for rows.Next() {
		var (
			session models.ChargeSession
			endTime sql.NullTime
		)
		if err := rows.Scan(
			&session.ID,
			&session.OwnerID,
			&session.StationID,
			&session.StartTime,
			&endTime,
			&session.EnergyWh,
			&session.Completed,
			&session.Paid,
		); err != nil {
			return nil, err
		}
		if endTime.Valid {
			t := endTime.Time
			session.EndTime = &t
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}
