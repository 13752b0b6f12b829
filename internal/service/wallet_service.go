package service

import (
	"context"

	"go.uber.org/zap"

	"voltledger/internal/models"
)

// WalletStore funds and reads value-ledger accounts.
type WalletStore interface {
	Deposit(ctx context.Context, accountID string, amount int64) error
	Balance(ctx context.Context, accountID string) (int64, error)
}

// WalletService is the funding edge of the value ledger. The external rail
// that money actually arrives on is out of scope; a deposit simply credits
// the caller's account.
type WalletService struct {
	store  WalletStore
	logger *zap.Logger
}

// NewWalletService builds service.
func NewWalletService(store WalletStore, logger *zap.Logger) *WalletService {
	return &WalletService{store: store, logger: logger}
}

// Deposit credits the caller's account.
func (s *WalletService) Deposit(ctx context.Context, caller string, amount int64) error {
	if amount <= 0 {
		return models.ErrInvalidAmount
	}
	if err := s.store.Deposit(ctx, caller, amount); err != nil {
		return err
	}
	s.logger.Info("wallet deposit", zap.String("account_id", caller), zap.Int64("amount", amount))
	return nil
}

// Balance returns the caller's account balance.
func (s *WalletService) Balance(ctx context.Context, caller string) (int64, error) {
	return s.store.Balance(ctx, caller)
}
