package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"voltledger/internal/access"
	"voltledger/internal/metrics"
	"voltledger/internal/models"
	"voltledger/internal/notify"
	"voltledger/internal/repository"
)

// SettlementStore commits a session payment atomically: the transfers and
// the paid flag land together or not at all.
type SettlementStore interface {
	SettleSession(ctx context.Context, sessionID, ownerID, stationID string, payment, amountDue int64) error
}

// SettlementService computes and transfers the amount due for a completed
// session.
type SettlementService struct {
	guard    *access.Guard
	sessions SessionStore
	stations StationStore
	store    SettlementStore
	notifier notify.Notifier
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewSettlementService builds service.
func NewSettlementService(guard *access.Guard, sessions SessionStore, stations StationStore, store SettlementStore, notifier notify.Notifier, m *metrics.Metrics, logger *zap.Logger) *SettlementService {
	return &SettlementService{
		guard:    guard,
		sessions: sessions,
		stations: stations,
		store:    store,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}
}

// PaySession settles a completed session. The amount due is the metered
// energy times the station's rate as posted at payment time; rate changes
// between session start and payment take effect. Overpayment is accepted
// and not refunded. Returns the amount actually transferred to the station.
func (s *SettlementService) PaySession(ctx context.Context, caller, sessionID string, payment int64) (int64, error) {
	if err := s.guard.RequireOwner(ctx, caller); err != nil {
		return 0, err
	}
	if payment < 0 {
		return 0, models.ErrInvalidAmount
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, models.ErrSessionNotFound
	}
	if err != nil {
		return 0, err
	}
	if session.OwnerID != caller {
		return 0, models.ErrForbidden
	}
	if session.Paid {
		return 0, models.ErrAlreadyPaid
	}
	if !session.Completed {
		return 0, models.ErrNotCompleted
	}

	station, err := s.stations.GetByID(ctx, session.StationID)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, models.ErrUnknownStation
	}
	if err != nil {
		return 0, err
	}

	amountDue := session.EnergyWh * station.Rate
	if payment < amountDue {
		return 0, models.ErrInsufficientPayment
	}

	if err := s.store.SettleSession(ctx, sessionID, caller, station.ID, payment, amountDue); err != nil {
		return 0, err
	}

	s.metrics.SessionsPaid.Inc()
	s.metrics.SettledAmount.Add(float64(amountDue))
	s.emit(ctx, notify.EventPaymentCompleted, map[string]any{
		"session_id": sessionID,
		"owner_id":   caller,
		"station_id": station.ID,
		"amount":     amountDue,
	})
	s.logger.Info("session paid",
		zap.String("session_id", sessionID),
		zap.Int64("amount", amountDue),
	)
	return amountDue, nil
}

func (s *SettlementService) emit(ctx context.Context, eventType string, fields map[string]any) {
	if err := s.notifier.Publish(ctx, notify.NewEvent(eventType, fields)); err != nil {
		s.logger.Warn("failed to publish event", zap.String("type", eventType), zap.Error(err))
	}
}
