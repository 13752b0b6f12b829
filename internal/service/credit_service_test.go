package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltledger/internal/models"
	"voltledger/internal/notify"
)

func newCreditEnv(t *testing.T, stationFunds int64) (*env, *CreditService) {
	e := newEnv(t)
	registry := newRegistry(e)

	_, err := registry.RegisterStation(context.Background(), "station-b", "Fast Charger", 10)
	require.NoError(t, err)
	require.NoError(t, e.ledger.Deposit(context.Background(), "station-b", stationFunds))
	e.notifier.events = nil

	return e, NewCreditService(e.guard, e.ledger, e.notifier, e.metrics, e.logger)
}

func TestBuyElectricity(t *testing.T) {
	e, svc := newCreditEnv(t, 150)

	require.NoError(t, svc.BuyElectricity(context.Background(), "station-b", 100, 100))

	station, err := e.stations.GetByID(context.Background(), "station-b")
	require.NoError(t, err)
	assert.Equal(t, int64(100), station.Balance)
	assert.Equal(t, int64(100), e.ledger.balance(testProviderID))
	assert.Equal(t, int64(50), e.ledger.balance("station-b"))
	assert.Equal(t, []string{notify.EventElectricityPurchased}, e.notifier.eventTypes())
}

func TestBuyElectricityAmountMismatch(t *testing.T) {
	e, svc := newCreditEnv(t, 150)

	err := svc.BuyElectricity(context.Background(), "station-b", 100, 99)
	require.ErrorIs(t, err, models.ErrAmountMismatch)

	station, err := e.stations.GetByID(context.Background(), "station-b")
	require.NoError(t, err)
	assert.Zero(t, station.Balance, "balance stays at the prior value")
	assert.Empty(t, e.notifier.events)
}

func TestBuyElectricityStationOnly(t *testing.T) {
	_, svc := newCreditEnv(t, 150)

	err := svc.BuyElectricity(context.Background(), "stranger", 100, 100)
	require.ErrorIs(t, err, models.ErrForbidden)
}

func TestBuyElectricityInvalidAmount(t *testing.T) {
	_, svc := newCreditEnv(t, 150)

	err := svc.BuyElectricity(context.Background(), "station-b", 0, 0)
	require.ErrorIs(t, err, models.ErrInvalidAmount)
}

func TestWithdrawProviderOnly(t *testing.T) {
	_, svc := newCreditEnv(t, 150)

	_, err := svc.Withdraw(context.Background(), "station-b")
	require.ErrorIs(t, err, models.ErrForbidden)
}

func TestWithdrawDrainsTreasury(t *testing.T) {
	e, svc := newCreditEnv(t, 0)
	require.NoError(t, e.ledger.Deposit(context.Background(), models.TreasuryAccountID, 30))

	amount, err := svc.Withdraw(context.Background(), testProviderID)
	require.NoError(t, err)
	assert.Equal(t, int64(30), amount)
	assert.Zero(t, e.ledger.balance(models.TreasuryAccountID))
	assert.Equal(t, int64(30), e.ledger.balance(testProviderID))

	// A second withdrawal finds nothing.
	amount, err = svc.Withdraw(context.Background(), testProviderID)
	require.NoError(t, err)
	assert.Zero(t, amount)
}
