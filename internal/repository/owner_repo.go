package repository

import (
	"context"
	"database/sql"
	"errors"

	"voltledger/internal/models"
)

// ErrNotFound represents a missing row for a keyed lookup.
var ErrNotFound = errors.New("repository: not found")

// OwnerRepository persists EV owner profiles. Profiles are write-once;
// no update or delete paths exist.
type OwnerRepository struct {
	db *sql.DB
}

// NewOwnerRepository returns repository instance.
func NewOwnerRepository(db *sql.DB) *OwnerRepository {
	return &OwnerRepository{db: db}
}

// Create inserts a new owner profile.
func (r *OwnerRepository) Create(ctx context.Context, owner *models.Owner) error {
	const query = `
		INSERT INTO owners (id, name, registered)
		VALUES ($1, $2, true)
		RETURNING registered_at
	`
	err := r.db.QueryRowContext(ctx, query, owner.ID, owner.Name).Scan(&owner.RegisteredAt)
	if isUniqueViolation(err) {
		return models.ErrAlreadyRegistered
	}
	if err != nil {
		return err
	}
	owner.Registered = true
	return nil
}

// GetByID fetches an owner profile.
func (r *OwnerRepository) GetByID(ctx context.Context, id string) (*models.Owner, error) {
	const query = `
		SELECT id, name, registered, registered_at
		FROM owners
		WHERE id = $1
	`
	var owner models.Owner
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&owner.ID, &owner.Name, &owner.Registered, &owner.RegisteredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &owner, nil
}

// OwnerExists reports whether the identity has an owner profile.
func (r *OwnerRepository) OwnerExists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM owners WHERE id = $1 AND registered)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
