package service

import (
	"testing"
	"time"

	"safechain/internal/domain"
	"safechain/internal/models"
	"safechain/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvestDebitsWalletAndTracksTotal(t *testing.T) {
	db := testDB(t)
	svc := newInvestmentService(db)
	user := createUser(t, db, "investor", 1000)
	tier := createTier(t, db, "Starter", 50, 100, 1, 1)

	inv, err := svc.Invest(user.ID, tier.ID, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, inv.IsActive)
	assert.True(t, inv.Amount.Equal(decimal.NewFromInt(50)))
	assert.True(t, inv.ReturnAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, inv.EndDate.After(inv.StartDate))

	assert.True(t, walletBalance(t, db, user.ID).Equal(decimal.NewFromInt(950)))

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.True(t, reloaded.TotalInvested.Equal(decimal.NewFromInt(50)))

	// The cheapest tier records the client IP.
	var ipLogs []models.IPLog
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&ipLogs).Error)
	require.Len(t, ipLogs, 1)
	assert.Equal(t, "10.0.0.1", ipLogs[0].IPAddress)
}

func TestInvestInsufficientBalance(t *testing.T) {
	db := testDB(t)
	svc := newInvestmentService(db)
	user := createUser(t, db, "investor", 10)
	tier := createTier(t, db, "Starter", 50, 100, 1, 1)

	_, err := svc.Invest(user.ID, tier.ID, "")
	assert.ErrorIs(t, err, repository.ErrInsufficientBalance)
	assert.True(t, walletBalance(t, db, user.ID).Equal(decimal.NewFromInt(10)))
}

func TestInvestTierLockedByLevel(t *testing.T) {
	db := testDB(t)
	svc := newInvestmentService(db)
	user := createUser(t, db, "investor", 10000)
	tier := createTier(t, db, "Elite", 2000, 4000, 10, 2)

	_, err := svc.Invest(user.ID, tier.ID, "")
	assert.ErrorIs(t, err, ErrTierLocked)
}

func TestInvestDuplicateActiveTier(t *testing.T) {
	db := testDB(t)
	svc := newInvestmentService(db)
	user := createUser(t, db, "investor", 1000)
	tier := createTier(t, db, "Starter", 50, 100, 1, 1)

	_, err := svc.Invest(user.ID, tier.ID, "")
	require.NoError(t, err)
	_, err = svc.Invest(user.ID, tier.ID, "")
	assert.ErrorIs(t, err, ErrDuplicateInvestment)
}

func TestInvestRaisesLevelAtThreshold(t *testing.T) {
	db := testDB(t)
	svc := newInvestmentService(db)
	user := createUser(t, db, "investor", 20000)
	tier := createTier(t, db, "Whale", 10000, 20000, 30, 1)

	_, err := svc.Invest(user.ID, tier.ID, "")
	require.NoError(t, err)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.Equal(t, 2, reloaded.Level)
}

func TestSettleMaturedPaysExactlyOnce(t *testing.T) {
	db := testDB(t)
	svc := newInvestmentService(db)
	user := createUser(t, db, "investor", 0)
	tier := createTier(t, db, "Starter", 50, 100, 1, 1)

	inv := &models.Investment{
		UserID:       user.ID,
		TierID:       tier.ID,
		Amount:       tier.Amount,
		ReturnAmount: tier.ReturnAmount,
		StartDate:    time.Now().Add(-48 * time.Hour),
		EndDate:      time.Now().Add(-24 * time.Hour),
		IsActive:     true,
	}
	require.NoError(t, db.Create(inv).Error)

	n, err := svc.SettleMatured(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, walletBalance(t, db, user.ID).Equal(decimal.NewFromInt(100)))

	var reloaded models.Investment
	require.NoError(t, db.First(&reloaded, inv.ID).Error)
	assert.False(t, reloaded.IsActive)
	assert.True(t, reloaded.ProfitPaid)

	// A second sweep finds nothing to settle.
	n, err = svc.SettleMatured(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.True(t, walletBalance(t, db, user.ID).Equal(decimal.NewFromInt(100)))

	var txs []models.WalletTransaction
	require.NoError(t, db.Where("user_id = ? AND type = ?", user.ID, domain.WalletTxTypeReturn).Find(&txs).Error)
	require.Len(t, txs, 1)
}

func TestSettleSkipsUnmatured(t *testing.T) {
	db := testDB(t)
	svc := newInvestmentService(db)
	user := createUser(t, db, "investor", 1000)
	tier := createTier(t, db, "Starter", 50, 100, 5, 1)

	_, err := svc.Invest(user.ID, tier.ID, "")
	require.NoError(t, err)

	n, err := svc.SettleAllMatured()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestAutoReinvestAfterMaturity(t *testing.T) {
	db := testDB(t)
	svc := newInvestmentService(db)
	user := createUser(t, db, "investor", 0)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		UpdateColumn("auto_reinvest", true).Error)
	tier := createTier(t, db, "Starter", 50, 100, 1, 1)

	inv := &models.Investment{
		UserID:       user.ID,
		TierID:       tier.ID,
		Amount:       tier.Amount,
		ReturnAmount: tier.ReturnAmount,
		StartDate:    time.Now().Add(-48 * time.Hour),
		EndDate:      time.Now().Add(-24 * time.Hour),
		IsActive:     true,
	}
	require.NoError(t, db.Create(inv).Error)

	n, err := svc.SettleMatured(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// The R100 return funded a fresh R50 investment in the same tier.
	assert.True(t, walletBalance(t, db, user.ID).Equal(decimal.NewFromInt(50)))
	var active []models.Investment
	require.NoError(t, db.Where("user_id = ? AND is_active = ?", user.ID, true).Find(&active).Error)
	require.Len(t, active, 1)
	assert.Equal(t, tier.ID, active[0].TierID)
}

func TestCashOutNotMatured(t *testing.T) {
	db := testDB(t)
	svc := newInvestmentService(db)
	user := createUser(t, db, "investor", 1000)
	tier := createTier(t, db, "Starter", 50, 100, 5, 1)

	inv, err := svc.Invest(user.ID, tier.ID, "")
	require.NoError(t, err)

	_, err = svc.CashOut(user.ID, inv.ID)
	assert.ErrorIs(t, err, ErrNotMatured)

	status, err := svc.CheckCashOut(user.ID, inv.ID)
	require.NoError(t, err)
	assert.False(t, status.CanCashOut)
	assert.Greater(t, status.SecondsLeft, int64(0))
}

func TestCashOutMatured(t *testing.T) {
	db := testDB(t)
	svc := newInvestmentService(db)
	user := createUser(t, db, "investor", 0)
	tier := createTier(t, db, "Starter", 50, 100, 1, 1)

	inv := &models.Investment{
		UserID:       user.ID,
		TierID:       tier.ID,
		Amount:       tier.Amount,
		ReturnAmount: tier.ReturnAmount,
		StartDate:    time.Now().Add(-48 * time.Hour),
		EndDate:      time.Now().Add(-24 * time.Hour),
		IsActive:     true,
	}
	require.NoError(t, db.Create(inv).Error)

	settled, err := svc.CashOut(user.ID, inv.ID)
	require.NoError(t, err)
	assert.False(t, settled.IsActive)
	assert.True(t, settled.ProfitPaid)
	assert.True(t, walletBalance(t, db, user.ID).Equal(decimal.NewFromInt(100)))

	_, err = svc.CashOut(user.ID, inv.ID)
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestInvestAppliesActiveSpecial(t *testing.T) {
	db := testDB(t)
	svc := newInvestmentService(db)
	user := createUser(t, db, "investor", 1000)
	tier := createTier(t, db, "Starter", 50, 100, 1, 1)

	require.NoError(t, db.Create(&models.DailySpecial{
		TierID:                  tier.ID,
		StartTime:               time.Now().Add(-time.Hour),
		EndTime:                 time.Now().Add(time.Hour),
		SpecialReturnMultiplier: decimal.RequireFromString("1.5"),
		IsActive:                true,
	}).Error)

	inv, err := svc.Invest(user.ID, tier.ID, "")
	require.NoError(t, err)
	assert.True(t, inv.ReturnAmount.Equal(decimal.NewFromInt(150)))
}
