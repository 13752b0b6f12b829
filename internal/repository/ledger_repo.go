package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"voltledger/internal/models"
)

// LedgerRepository implements the value-transfer primitive on Postgres
// accounts. The multi-step flows (settlement, credit purchase, withdrawal)
// each run in a single transaction so the funds movement and the related
// state flags commit together or not at all.
type LedgerRepository struct {
	db *sql.DB
}

// NewLedgerRepository returns repository instance.
func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Deposit credits an account, creating it on first use.
func (r *LedgerRepository) Deposit(ctx context.Context, accountID string, amount int64) error {
	return creditTx(ctx, r.db, accountID, amount)
}

// Balance returns the current account balance. Unknown accounts read as zero.
func (r *LedgerRepository) Balance(ctx context.Context, accountID string) (int64, error) {
	const query = `SELECT balance FROM ledger_accounts WHERE id = $1`
	var balance int64
	err := r.db.QueryRowContext(ctx, query, accountID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// SettleSession marks the session paid, moves the offered payment from the
// owner to the treasury and forwards the amount due to the station, all in
// one transaction. Residue above the amount due stays in the treasury.
func (r *LedgerRepository) SettleSession(ctx context.Context, sessionID, ownerID, stationID string, payment, amountDue int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Flipping the flag first locks the session row for the whole settlement.
	const markPaid = `
		UPDATE charge_sessions
		SET paid = true
		WHERE id = $1 AND completed = true AND paid = false
	`
	res, err := tx.ExecContext(ctx, markPaid, sessionID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return r.settleStateError(ctx, sessionID)
	}

	if err := debitTx(ctx, tx, ownerID, payment); err != nil {
		return err
	}
	if err := creditTx(ctx, tx, models.TreasuryAccountID, payment); err != nil {
		return err
	}
	if err := debitTx(ctx, tx, models.TreasuryAccountID, amountDue); err != nil {
		return err
	}
	if err := creditTx(ctx, tx, stationID, amountDue); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *LedgerRepository) settleStateError(ctx context.Context, sessionID string) error {
	const query = `SELECT completed, paid FROM charge_sessions WHERE id = $1`
	var completed, paid bool
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(&completed, &paid)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrSessionNotFound
	}
	if err != nil {
		return err
	}
	if paid {
		return models.ErrAlreadyPaid
	}
	if !completed {
		return models.ErrNotCompleted
	}
	return models.ErrSessionNotFound
}

// PurchaseCredit moves the purchase amount from the station's account to
// the provider and bumps the station's prepaid balance in one transaction.
func (r *LedgerRepository) PurchaseCredit(ctx context.Context, stationID, providerID string, amount int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const bumpBalance = `
		UPDATE stations
		SET balance = balance + $2
		WHERE id = $1 AND registered
	`
	res, err := tx.ExecContext(ctx, bumpBalance, stationID, amount)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrUnknownStation
	}

	if err := debitTx(ctx, tx, stationID, amount); err != nil {
		return err
	}
	if err := creditTx(ctx, tx, providerID, amount); err != nil {
		return err
	}

	return tx.Commit()
}

// WithdrawTreasury drains the treasury account into the provider's account
// and returns the amount moved.
func (r *LedgerRepository) WithdrawTreasury(ctx context.Context, providerID string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	const lock = `SELECT balance FROM ledger_accounts WHERE id = $1 FOR UPDATE`
	var balance int64
	err = tx.QueryRowContext(ctx, lock, models.TreasuryAccountID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && balance == 0) {
		return 0, tx.Commit()
	}
	if err != nil {
		return 0, err
	}

	if err := debitTx(ctx, tx, models.TreasuryAccountID, balance); err != nil {
		return 0, err
	}
	if err := creditTx(ctx, tx, providerID, balance); err != nil {
		return 0, err
	}

	return balance, tx.Commit()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func debitTx(ctx context.Context, q execer, accountID string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("ledger: negative debit %d", amount)
	}
	const query = `
		UPDATE ledger_accounts
		SET balance = balance - $2, updated_at = NOW()
		WHERE id = $1 AND balance >= $2
	`
	res, err := q.ExecContext(ctx, query, accountID, amount)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrInsufficientFunds
	}
	return nil
}

func creditTx(ctx context.Context, q execer, accountID string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("ledger: negative credit %d", amount)
	}
	const query = `
		INSERT INTO ledger_accounts (id, balance, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE
		SET balance = ledger_accounts.balance + EXCLUDED.balance, updated_at = NOW()
	`
	_, err := q.ExecContext(ctx, query, accountID, amount)
	return err
}
