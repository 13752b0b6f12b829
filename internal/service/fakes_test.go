package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"voltledger/internal/access"
	"voltledger/internal/metrics"
	"voltledger/internal/models"
	"voltledger/internal/notify"
	"voltledger/internal/repository"
)

const testProviderID = "provider-1"

// env bundles the fakes every service test needs.
type env struct {
	owners   *fakeOwners
	stations *fakeStations
	sessions *fakeSessions
	ledger   *fakeLedger
	notifier *fakeNotifier
	guard    *access.Guard
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func newEnv(t *testing.T) *env {
	t.Helper()
	owners := newFakeOwners()
	stations := newFakeStations()
	sessions := newFakeSessions()

	guard, err := access.NewGuard(testProviderID, owners, stations)
	require.NoError(t, err)

	return &env{
		owners:   owners,
		stations: stations,
		sessions: sessions,
		ledger:   newFakeLedger(sessions, stations),
		notifier: &fakeNotifier{},
		guard:    guard,
		metrics:  metrics.New(),
		logger:   zap.NewNop(),
	}
}

type fakeOwners struct {
	mu     sync.Mutex
	owners map[string]models.Owner
}

func newFakeOwners() *fakeOwners {
	return &fakeOwners{owners: make(map[string]models.Owner)}
}

func (f *fakeOwners) Create(_ context.Context, owner *models.Owner) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.owners[owner.ID]; ok {
		return models.ErrAlreadyRegistered
	}
	owner.Registered = true
	owner.RegisteredAt = time.Now().UTC()
	f.owners[owner.ID] = *owner
	return nil
}

func (f *fakeOwners) GetByID(_ context.Context, id string) (*models.Owner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	owner, ok := f.owners[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &owner, nil
}

func (f *fakeOwners) OwnerExists(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.owners[id]
	return ok, nil
}

type fakeStations struct {
	mu       sync.Mutex
	stations map[string]models.Station
}

func newFakeStations() *fakeStations {
	return &fakeStations{stations: make(map[string]models.Station)}
}

func (f *fakeStations) Create(_ context.Context, station *models.Station) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.stations[station.ID]; ok {
		return models.ErrAlreadyRegistered
	}
	station.Registered = true
	station.Balance = 0
	station.RegisteredAt = time.Now().UTC()
	f.stations[station.ID] = *station
	return nil
}

func (f *fakeStations) GetByID(_ context.Context, id string) (*models.Station, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	station, ok := f.stations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &station, nil
}

func (f *fakeStations) List(_ context.Context, _ int) ([]models.Station, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Station, 0, len(f.stations))
	for _, station := range f.stations {
		out = append(out, station)
	}
	return out, nil
}

func (f *fakeStations) StationExists(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.stations[id]
	return ok, nil
}

func (f *fakeStations) setRate(id string, rate int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	station := f.stations[id]
	station.Rate = rate
	f.stations[id] = station
}

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]models.ChargeSession
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: make(map[string]models.ChargeSession)}
}

func (f *fakeSessions) Create(_ context.Context, session *models.ChargeSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sessions[session.ID]; ok {
		return models.ErrIDCollision
	}
	f.sessions[session.ID] = *session
	return nil
}

func (f *fakeSessions) GetByID(_ context.Context, id string) (*models.ChargeSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &session, nil
}

func (f *fakeSessions) Exists(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.sessions[id]
	return ok, nil
}

func (f *fakeSessions) Complete(_ context.Context, id string, endTime time.Time, energyWh int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[id]
	if !ok {
		return models.ErrSessionNotFound
	}
	if session.Completed {
		return models.ErrAlreadyCompleted
	}
	session.EndTime = &endTime
	session.EnergyWh = energyWh
	session.Completed = true
	f.sessions[id] = session
	return nil
}

func (f *fakeSessions) ListByOwner(_ context.Context, ownerID string, _ int) ([]models.ChargeSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ChargeSession
	for _, session := range f.sessions {
		if session.OwnerID == ownerID {
			out = append(out, session)
		}
	}
	return out, nil
}

// fakeLedger backs the settlement, credit and wallet stores with in-memory
// accounts, mirroring the all-or-nothing semantics of the Postgres
// implementation.
type fakeLedger struct {
	mu          sync.Mutex
	accounts    map[string]int64
	sessions    *fakeSessions
	stations    *fakeStations
	settleCalls int
}

func newFakeLedger(sessions *fakeSessions, stations *fakeStations) *fakeLedger {
	return &fakeLedger{
		accounts: make(map[string]int64),
		sessions: sessions,
		stations: stations,
	}
}

func (f *fakeLedger) balance(id string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accounts[id]
}

func (f *fakeLedger) Deposit(_ context.Context, accountID string, amount int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[accountID] += amount
	return nil
}

func (f *fakeLedger) Balance(_ context.Context, accountID string) (int64, error) {
	return f.balance(accountID), nil
}

func (f *fakeLedger) SettleSession(_ context.Context, sessionID, ownerID, stationID string, payment, amountDue int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settleCalls++

	f.sessions.mu.Lock()
	defer f.sessions.mu.Unlock()
	session, ok := f.sessions.sessions[sessionID]
	if !ok {
		return models.ErrSessionNotFound
	}
	if session.Paid {
		return models.ErrAlreadyPaid
	}
	if !session.Completed {
		return models.ErrNotCompleted
	}
	if f.accounts[ownerID] < payment {
		return models.ErrInsufficientFunds
	}

	f.accounts[ownerID] -= payment
	f.accounts[models.TreasuryAccountID] += payment - amountDue
	f.accounts[stationID] += amountDue
	session.Paid = true
	f.sessions.sessions[sessionID] = session
	return nil
}

func (f *fakeLedger) PurchaseCredit(_ context.Context, stationID, providerID string, amount int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.accounts[stationID] < amount {
		return models.ErrInsufficientFunds
	}
	f.accounts[stationID] -= amount
	f.accounts[providerID] += amount

	f.stations.mu.Lock()
	defer f.stations.mu.Unlock()
	station, ok := f.stations.stations[stationID]
	if !ok {
		return models.ErrUnknownStation
	}
	station.Balance += amount
	f.stations.stations[stationID] = station
	return nil
}

func (f *fakeLedger) WithdrawTreasury(_ context.Context, providerID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	amount := f.accounts[models.TreasuryAccountID]
	f.accounts[models.TreasuryAccountID] = 0
	f.accounts[providerID] += amount
	return amount, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (f *fakeNotifier) Publish(_ context.Context, ev notify.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return nil
}

func (f *fakeNotifier) eventTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	types := make([]string, 0, len(f.events))
	for _, ev := range f.events {
		types = append(types, ev.Type)
	}
	return types
}
