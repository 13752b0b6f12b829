package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"voltledger/internal/models"
)

// StationRepository persists charging station profiles.
type StationRepository struct {
	db *sql.DB
}

// NewStationRepository returns repository instance.
func NewStationRepository(db *sql.DB) *StationRepository {
	return &StationRepository{db: db}
}

// Create inserts a new station profile with zero prepaid balance.
func (r *StationRepository) Create(ctx context.Context, station *models.Station) error {
	const query = `
		INSERT INTO stations (id, name, registered, rate, balance)
		VALUES ($1, $2, true, $3, 0)
		RETURNING registered_at
	`
	err := r.db.QueryRowContext(ctx, query, station.ID, station.Name, station.Rate).
		Scan(&station.RegisteredAt)
	if isUniqueViolation(err) {
		return models.ErrAlreadyRegistered
	}
	if err != nil {
		return err
	}
	station.Registered = true
	station.Balance = 0
	return nil
}

// GetByID fetches a station profile.
func (r *StationRepository) GetByID(ctx context.Context, id string) (*models.Station, error) {
	const query = `
		SELECT id, name, registered, rate, balance, registered_at
		FROM stations
		WHERE id = $1
	`
	var station models.Station
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&station.ID,
		&station.Name,
		&station.Registered,
		&station.Rate,
		&station.Balance,
		&station.RegisteredAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &station, nil
}

// List returns all station profiles ordered by registration time.
func (r *StationRepository) List(ctx context.Context, limit int) ([]models.Station, error) {
	if limit <= 0 {
		limit = 100
	}
	const query = `
		SELECT id, name, registered, rate, balance, registered_at
		FROM stations
		ORDER BY registered_at
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stations []models.Station
	for rows.Next() {
		var station models.Station
		if err := rows.Scan(
			&station.ID,
			&station.Name,
			&station.Registered,
			&station.Rate,
			&station.Balance,
			&station.RegisteredAt,
		); err != nil {
			return nil, err
		}
		stations = append(stations, station)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stations, nil
}

// StationExists reports whether the identity has a station profile.
func (r *StationRepository) StationExists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM stations WHERE id = $1 AND registered)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
