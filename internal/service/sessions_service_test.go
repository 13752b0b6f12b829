package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltledger/internal/models"
	"voltledger/internal/notify"
)

func newSessionsEnv(t *testing.T) (*env, *SessionsService) {
	e := newEnv(t)
	registry := newRegistry(e)

	_, err := registry.RegisterOwner(context.Background(), "owner-a", "Alice")
	require.NoError(t, err)
	_, err = registry.RegisterStation(context.Background(), "station-b", "Fast Charger", 10)
	require.NoError(t, err)
	e.notifier.events = nil

	return e, NewSessionsService(e.guard, e.sessions, e.stations, e.notifier, e.metrics, e.logger)
}

func TestStartSession(t *testing.T) {
	e, svc := newSessionsEnv(t)

	session, err := svc.StartSession(context.Background(), "owner-a", "station-b")
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "owner-a", session.OwnerID)
	assert.Equal(t, "station-b", session.StationID)
	assert.False(t, session.Completed)
	assert.False(t, session.Paid)
	assert.Nil(t, session.EndTime)
	assert.Zero(t, session.EnergyWh)
	assert.Equal(t, []string{notify.EventSessionStarted}, e.notifier.eventTypes())
}

func TestStartSessionRequiresRegisteredOwner(t *testing.T) {
	e, svc := newSessionsEnv(t)

	_, err := svc.StartSession(context.Background(), "stranger", "station-b")
	require.ErrorIs(t, err, models.ErrForbidden)
	assert.Empty(t, e.notifier.events)
}

func TestStartSessionUnknownStation(t *testing.T) {
	_, svc := newSessionsEnv(t)

	_, err := svc.StartSession(context.Background(), "owner-a", "nowhere")
	require.ErrorIs(t, err, models.ErrUnknownStation)
}

func TestDeriveSessionID(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	id := deriveSessionID("owner-a", "station-b", start)
	assert.Len(t, id, 64)
	assert.Equal(t, id, deriveSessionID("owner-a", "station-b", start))
	assert.NotEqual(t, id, deriveSessionID("owner-a", "station-c", start))
	assert.NotEqual(t, id, deriveSessionID("owner-x", "station-b", start))
	assert.NotEqual(t, id, deriveSessionID("owner-a", "station-b", start.Add(time.Nanosecond)))
}

// collidingSessions reports every derived id as already taken.
type collidingSessions struct{ *fakeSessions }

func (c *collidingSessions) Exists(context.Context, string) (bool, error) {
	return true, nil
}

// racingSessions passes the existence pre-check but fails the insert, the
// way a concurrent writer hitting the unique index would.
type racingSessions struct{ *fakeSessions }

func (r *racingSessions) Create(context.Context, *models.ChargeSession) error {
	return models.ErrIDCollision
}

func TestStartSessionIDCollision(t *testing.T) {
	e, _ := newSessionsEnv(t)

	svc := NewSessionsService(e.guard, &collidingSessions{e.sessions}, e.stations, e.notifier, e.metrics, e.logger)
	_, err := svc.StartSession(context.Background(), "owner-a", "station-b")
	require.ErrorIs(t, err, models.ErrIDCollision)

	svc = NewSessionsService(e.guard, &racingSessions{e.sessions}, e.stations, e.notifier, e.metrics, e.logger)
	_, err = svc.StartSession(context.Background(), "owner-a", "station-b")
	require.ErrorIs(t, err, models.ErrIDCollision)

	assert.Empty(t, e.sessions.sessions)
	assert.Empty(t, e.notifier.events)
}

func TestEndSession(t *testing.T) {
	e, svc := newSessionsEnv(t)

	session, err := svc.StartSession(context.Background(), "owner-a", "station-b")
	require.NoError(t, err)

	require.NoError(t, svc.EndSession(context.Background(), "station-b", session.ID, 5))

	stored, err := svc.Session(context.Background(), session.ID)
	require.NoError(t, err)
	assert.True(t, stored.Completed)
	assert.False(t, stored.Paid)
	assert.Equal(t, int64(5), stored.EnergyWh)
	require.NotNil(t, stored.EndTime)
	assert.Contains(t, e.notifier.eventTypes(), notify.EventSessionEnded)
}

func TestEndSessionOnlyOwningStation(t *testing.T) {
	e, svc := newSessionsEnv(t)
	registry := newRegistry(e)
	_, err := registry.RegisterStation(context.Background(), "station-c", "Rival", 20)
	require.NoError(t, err)

	session, err := svc.StartSession(context.Background(), "owner-a", "station-b")
	require.NoError(t, err)

	// Another registered station is still forbidden.
	err = svc.EndSession(context.Background(), "station-c", session.ID, 5)
	require.ErrorIs(t, err, models.ErrForbidden)

	// Owners are not stations.
	err = svc.EndSession(context.Background(), "owner-a", session.ID, 5)
	require.ErrorIs(t, err, models.ErrForbidden)
}

func TestEndSessionTwiceFails(t *testing.T) {
	_, svc := newSessionsEnv(t)

	session, err := svc.StartSession(context.Background(), "owner-a", "station-b")
	require.NoError(t, err)

	require.NoError(t, svc.EndSession(context.Background(), "station-b", session.ID, 5))

	err = svc.EndSession(context.Background(), "station-b", session.ID, 999)
	require.ErrorIs(t, err, models.ErrAlreadyCompleted)

	stored, err := svc.Session(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stored.EnergyWh, "energy must not be overwritten")
}

func TestEndSessionValidation(t *testing.T) {
	_, svc := newSessionsEnv(t)

	err := svc.EndSession(context.Background(), "station-b", "no-such-session", 5)
	require.ErrorIs(t, err, models.ErrSessionNotFound)

	session, err := svc.StartSession(context.Background(), "owner-a", "station-b")
	require.NoError(t, err)

	err = svc.EndSession(context.Background(), "station-b", session.ID, -1)
	require.ErrorIs(t, err, models.ErrInvalidAmount)
}

func TestSessionsForOwner(t *testing.T) {
	_, svc := newSessionsEnv(t)

	session, err := svc.StartSession(context.Background(), "owner-a", "station-b")
	require.NoError(t, err)

	sessions, err := svc.SessionsForOwner(context.Background(), "owner-a", 10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, session.ID, sessions[0].ID)

	_, err = svc.SessionsForOwner(context.Background(), "stranger", 10)
	require.ErrorIs(t, err, models.ErrForbidden)
}
