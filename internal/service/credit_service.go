package service

import (
	"context"

	"go.uber.org/zap"

	"voltledger/internal/access"
	"voltledger/internal/metrics"
	"voltledger/internal/models"
	"voltledger/internal/notify"
)

// CreditStore commits electricity purchases and treasury withdrawals
// atomically.
type CreditStore interface {
	PurchaseCredit(ctx context.Context, stationID, providerID string, amount int64) error
	WithdrawTreasury(ctx context.Context, providerID string) (int64, error)
}

// CreditService tracks station prepaid electricity credit. The balance is
// bookkeeping only; nothing in the ledger debits it.
type CreditService struct {
	guard    *access.Guard
	store    CreditStore
	notifier notify.Notifier
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewCreditService builds service.
func NewCreditService(guard *access.Guard, store CreditStore, notifier notify.Notifier, m *metrics.Metrics, logger *zap.Logger) *CreditService {
	return &CreditService{
		guard:    guard,
		store:    store,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}
}

// BuyElectricity credits the calling station's prepaid balance and forwards
// the full amount to the provider. The offered payment must match the
// requested amount exactly.
func (s *CreditService) BuyElectricity(ctx context.Context, caller string, amount, payment int64) error {
	if err := s.guard.RequireStation(ctx, caller); err != nil {
		return err
	}
	if amount <= 0 {
		return models.ErrInvalidAmount
	}
	if payment != amount {
		return models.ErrAmountMismatch
	}

	if err := s.store.PurchaseCredit(ctx, caller, s.guard.ProviderID(), amount); err != nil {
		return err
	}

	s.metrics.CreditPurchased.Add(float64(amount))
	s.emit(ctx, notify.EventElectricityPurchased, map[string]any{
		"station_id": caller,
		"amount":     amount,
	})
	s.logger.Info("electricity purchased",
		zap.String("station_id", caller),
		zap.Int64("amount", amount),
	)
	return nil
}

// Withdraw drains the treasury into the provider's account and returns the
// amount moved. Provider only.
func (s *CreditService) Withdraw(ctx context.Context, caller string) (int64, error) {
	if err := s.guard.RequireProvider(caller); err != nil {
		return 0, err
	}

	amount, err := s.store.WithdrawTreasury(ctx, s.guard.ProviderID())
	if err != nil {
		return 0, err
	}

	s.logger.Info("treasury withdrawn", zap.Int64("amount", amount))
	return amount, nil
}

func (s *CreditService) emit(ctx context.Context, eventType string, fields map[string]any) {
	if err := s.notifier.Publish(ctx, notify.NewEvent(eventType, fields)); err != nil {
		s.logger.Warn("failed to publish event", zap.String("type", eventType), zap.Error(err))
	}
}
