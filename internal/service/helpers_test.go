package service

import (
	"fmt"
	"testing"
	"time"

	"safechain/config"
	"safechain/internal/database"
	"safechain/internal/domain"
	"safechain/internal/models"
	"safechain/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
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

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			AccessSecret:  "test-access-secret",
			RefreshSecret: "test-refresh-secret",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 24 * time.Hour,
			Issuer:        "safechain-test",
		},
		Platform: config.PlatformConfig{
			MinDeposit:     decimal.NewFromInt(50),
			MinWithdrawal:  decimal.NewFromInt(50),
			ReferralBonus:  decimal.NewFromInt(50),
			ChatDailyLimit: 10,
			SweepInterval:  time.Minute,
		},
	}
}

func createUser(t *testing.T, db *gorm.DB, username string, balance int64) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Level:        1,
	}
	require.NoError(t, db.Create(u).Error)
	require.NoError(t, db.Create(&models.Wallet{
		UserID:   u.ID,
		Balance:  decimal.NewFromInt(balance),
		Currency: "ZAR",
	}).Error)
	return u
}

func createTier(t *testing.T, db *gorm.DB, name string, amount, ret int64, days, minLevel int) *models.InvestmentTier {
	t.Helper()
	tier := &models.InvestmentTier{
		Name:         name,
		Amount:       decimal.NewFromInt(amount),
		ReturnAmount: decimal.NewFromInt(ret),
		DurationDays: days,
		MinLevel:     minLevel,
	}
	require.NoError(t, db.Create(tier).Error)
	return tier
}

func walletBalance(t *testing.T, db *gorm.DB, userID uint) decimal.Decimal {
	t.Helper()
	w, err := repository.NewWalletRepository(db).GetByUserID(userID)
	require.NoError(t, err)
	return w.Balance
}

func newApprovalService(db *gorm.DB) *ApprovalService {
	return NewApprovalService(db, testConfig(), repository.NewAuditRepository(db))
}

func newInvestmentService(db *gorm.DB) *InvestmentService {
	return NewInvestmentService(db, testConfig(),
		repository.NewTierRepository(db),
		repository.NewInvestmentRepository(db),
		repository.NewSpecialRepository(db))
}
