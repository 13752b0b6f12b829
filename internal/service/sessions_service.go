package service

import (
	"context"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/sha3"

	"voltledger/internal/access"
	"voltledger/internal/metrics"
	"voltledger/internal/models"
	"voltledger/internal/notify"
	"voltledger/internal/repository"
)

// SessionStore defines the session ledger contract used by services.
type SessionStore interface {
	Create(ctx context.Context, session *models.ChargeSession) error
	GetByID(ctx context.Context, id string) (*models.ChargeSession, error)
	Exists(ctx context.Context, id string) (bool, error)
	Complete(ctx context.Context, id string, endTime time.Time, energyWh int64) error
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]models.ChargeSession, error)
}

// SessionsService owns the session state machine: Created -> Completed -> Paid.
type SessionsService struct {
	guard    *access.Guard
	sessions SessionStore
	stations StationStore
	notifier notify.Notifier
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewSessionsService builds service.
func NewSessionsService(guard *access.Guard, sessions SessionStore, stations StationStore, notifier notify.Notifier, m *metrics.Metrics, logger *zap.Logger) *SessionsService {
	return &SessionsService{
		guard:    guard,
		sessions: sessions,
		stations: stations,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}
}

// StartSession creates a session between the calling owner and the target
// station. The session id is derived from (caller, station, start time); a
// collision fails the call rather than overwriting an existing record.
func (s *SessionsService) StartSession(ctx context.Context, caller, stationID string) (*models.ChargeSession, error) {
	if err := s.guard.RequireOwner(ctx, caller); err != nil {
		return nil, err
	}

	registered, err := s.stations.StationExists(ctx, stationID)
	if err != nil {
		return nil, err
	}
	if !registered {
		return nil, models.ErrUnknownStation
	}

	start := time.Now().UTC()
	id := deriveSessionID(caller, stationID, start)

	taken, err := s.sessions.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.ErrIDCollision
	}

	session := &models.ChargeSession{
		ID:        id,
		OwnerID:   caller,
		StationID: stationID,
		StartTime: start,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	s.metrics.SessionsStarted.Inc()
	s.emit(ctx, notify.EventSessionStarted, map[string]any{
		"session_id": session.ID,
		"owner_id":   session.OwnerID,
		"station_id": session.StationID,
		"start_time": session.StartTime,
	})
	s.logger.Info("session started",
		zap.String("session_id", session.ID),
		zap.String("owner_id", session.OwnerID),
		zap.String("station_id", session.StationID),
	)
	return session, nil
}

// EndSession records the metered energy and completes the session. Only the
// session's own station may report completion; the station is the metering
// authority and its reading is trusted as-is.
func (s *SessionsService) EndSession(ctx context.Context, caller, sessionID string, energyWh int64) error {
	if err := s.guard.RequireStation(ctx, caller); err != nil {
		return err
	}
	if energyWh < 0 {
		return models.ErrInvalidAmount
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.ErrSessionNotFound
	}
	if err != nil {
		return err
	}
	if session.StationID != caller {
		return models.ErrForbidden
	}
	if session.Completed {
		return models.ErrAlreadyCompleted
	}

	endTime := time.Now().UTC()
	if err := s.sessions.Complete(ctx, sessionID, endTime, energyWh); err != nil {
		return err
	}

	s.metrics.SessionsCompleted.Inc()
	s.emit(ctx, notify.EventSessionEnded, map[string]any{
		"session_id": sessionID,
		"station_id": caller,
		"energy_wh":  energyWh,
		"end_time":   endTime,
	})
	s.logger.Info("session ended",
		zap.String("session_id", sessionID),
		zap.Int64("energy_wh", energyWh),
	)
	return nil
}

// Session returns a single session record.
func (s *SessionsService) Session(ctx context.Context, id string) (*models.ChargeSession, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, models.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// SessionsForOwner returns the caller's session history.
func (s *SessionsService) SessionsForOwner(ctx context.Context, caller string, limit int) ([]models.ChargeSession, error) {
	if err := s.guard.RequireOwner(ctx, caller); err != nil {
		return nil, err
	}
	return s.sessions.ListByOwner(ctx, caller, limit)
}

func (s *SessionsService) emit(ctx context.Context, eventType string, fields map[string]any) {
	if err := s.notifier.Publish(ctx, notify.NewEvent(eventType, fields)); err != nil {
		s.logger.Warn("failed to publish event", zap.String("type", eventType), zap.Error(err))
	}
}

// deriveSessionID hashes (owner, station, start time) so the id is
// deterministic and collision-resistant.
func deriveSessionID(ownerID, stationID string, start time.Time) string {
	h := sha3.New256()
	h.Write([]byte(ownerID))
	h.Write([]byte{'|'})
	h.Write([]byte(stationID))
	h.Write([]byte{'|'})
	h.Write([]byte(strconv.FormatInt(start.UnixNano(), 10)))
	return hex.EncodeToString(h.Sum(nil))
}
