package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"voltledger/internal/metrics"
	"voltledger/internal/models"
	"voltledger/internal/notify"
	"voltledger/internal/repository"
)

// OwnerStore defines the owner directory contract used by services.
type OwnerStore interface {
	Create(ctx context.Context, owner *models.Owner) error
	GetByID(ctx context.Context, id string) (*models.Owner, error)
	OwnerExists(ctx context.Context, id string) (bool, error)
}

// StationStore defines the station directory contract used by services.
type StationStore interface {
	Create(ctx context.Context, station *models.Station) error
	GetByID(ctx context.Context, id string) (*models.Station, error)
	List(ctx context.Context, limit int) ([]models.Station, error)
	StationExists(ctx context.Context, id string) (bool, error)
}

// RegistryService handles write-once owner and station registration.
type RegistryService struct {
	owners   OwnerStore
	stations StationStore
	notifier notify.Notifier
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewRegistryService builds service.
func NewRegistryService(owners OwnerStore, stations StationStore, notifier notify.Notifier, m *metrics.Metrics, logger *zap.Logger) *RegistryService {
	return &RegistryService{
		owners:   owners,
		stations: stations,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}
}

// RegisterOwner creates an owner profile for the calling identity. A second
// registration from the same identity fails, never no-ops.
func (s *RegistryService) RegisterOwner(ctx context.Context, caller, name string) (*models.Owner, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.ErrInvalidName
	}

	exists, err := s.owners.OwnerExists(ctx, caller)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.ErrAlreadyRegistered
	}

	owner := &models.Owner{ID: caller, Name: name}
	if err := s.owners.Create(ctx, owner); err != nil {
		return nil, err
	}

	s.metrics.Registrations.WithLabelValues("owner").Inc()
	s.emit(ctx, notify.EventOwnerRegistered, map[string]any{
		"owner_id": owner.ID,
		"name":     owner.Name,
	})
	s.logger.Info("owner registered", zap.String("owner_id", owner.ID))
	return owner, nil
}

// RegisterStation creates a station profile with the posted rate and a zero
// prepaid balance.
func (s *RegistryService) RegisterStation(ctx context.Context, caller, name string, rate int64) (*models.Station, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.ErrInvalidName
	}
	if rate < 0 {
		return nil, models.ErrInvalidAmount
	}

	exists, err := s.stations.StationExists(ctx, caller)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.ErrAlreadyRegistered
	}

	station := &models.Station{ID: caller, Name: name, Rate: rate}
	if err := s.stations.Create(ctx, station); err != nil {
		return nil, err
	}

	s.metrics.Registrations.WithLabelValues("station").Inc()
	s.emit(ctx, notify.EventStationRegistered, map[string]any{
		"station_id": station.ID,
		"name":       station.Name,
		"rate":       station.Rate,
	})
	s.logger.Info("station registered", zap.String("station_id", station.ID), zap.Int64("rate", station.Rate))
	return station, nil
}

// Station returns a station profile.
func (s *RegistryService) Station(ctx context.Context, id string) (*models.Station, error) {
	station, err := s.stations.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, models.ErrUnknownStation
	}
	if err != nil {
		return nil, err
	}
	return station, nil
}

// Stations lists registered stations.
func (s *RegistryService) Stations(ctx context.Context, limit int) ([]models.Station, error) {
	return s.stations.List(ctx, limit)
}

func (s *RegistryService) emit(ctx context.Context, eventType string, fields map[string]any) {
	if err := s.notifier.Publish(ctx, notify.NewEvent(eventType, fields)); err != nil {
		s.logger.Warn("failed to publish event", zap.String("type", eventType), zap.Error(err))
	}
}
