package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"safechain/config"
	"safechain/internal/database"
	"safechain/internal/domain"
	"safechain/internal/models"
	"safechain/internal/repository"
	"safechain/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testPlatformConfig() *config.Config {
	return &config.Config{
		Platform: config.PlatformConfig{
			MinDeposit:     decimal.NewFromInt(50),
			MinWithdrawal:  decimal.NewFromInt(50),
			ReferralBonus:  decimal.NewFromInt(50),
			ChatDailyLimit: 10,
			SweepInterval:  time.Minute,
		},
	}
}

func authedContext(t *testing.T, userID uint) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("user_id", userID)
	return c, w
}

// A matured investment must settle when the tier list is loaded, so the tier
// frees up for reinvestment right away instead of waiting for the sweeper.
func TestTierListSettlesMaturedInvestments(t *testing.T) {
	db := testDB(t)
	cfg := testPlatformConfig()

	user := &models.User{Username: "investor", Email: "investor@example.com", Role: domain.RoleUser, Level: 1}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&models.Wallet{UserID: user.ID, Balance: decimal.Zero, Currency: "ZAR"}).Error)

	tier := &models.InvestmentTier{
		Name:         "Starter",
		Amount:       decimal.NewFromInt(50),
		ReturnAmount: decimal.NewFromInt(100),
		DurationDays: 1,
		MinLevel:     1,
	}
	require.NoError(t, db.Create(tier).Error)

	require.NoError(t, db.Create(&models.Investment{
		UserID:       user.ID,
		TierID:       tier.ID,
		Amount:       tier.Amount,
		ReturnAmount: tier.ReturnAmount,
		StartDate:    time.Now().Add(-48 * time.Hour),
		EndDate:      time.Now().Add(-24 * time.Hour),
		IsActive:     true,
	}).Error)

	invSvc := service.NewInvestmentService(db, cfg,
		repository.NewTierRepository(db),
		repository.NewInvestmentRepository(db),
		repository.NewSpecialRepository(db))
	h := NewTierHandler(
		repository.NewUserRepository(db),
		repository.NewTierRepository(db),
		repository.NewInvestmentRepository(db),
		repository.NewSpecialRepository(db),
		invSvc)

	c, w := authedContext(t, user.ID)
	h.List(c)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Tiers []struct {
			ID        uint `json:"id"`
			HasActive bool `json:"has_active"`
		} `json:"tiers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Tiers, 1)
	assert.False(t, body.Tiers[0].HasActive)

	// The return was credited and the investment closed on this read.
	var wallet models.Wallet
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&wallet).Error)
	assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(100)))

	var inv models.Investment
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&inv).Error)
	assert.False(t, inv.IsActive)
	assert.True(t, inv.ProfitPaid)

	// The tier is immediately available again.
	_, err := invSvc.Invest(user.ID, tier.ID, "")
	require.NoError(t, err)
}
