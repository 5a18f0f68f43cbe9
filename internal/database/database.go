package database

import (
	"log"

	"safechain/config"
	"safechain/internal/domain"
	"safechain/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func New(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Wallet{},
		&models.WalletTransaction{},
		&models.InvestmentTier{},
		&models.Investment{},
		&models.Deposit{},
		&models.Withdrawal{},
		&models.Voucher{},
		&models.Referral{},
		&models.ReferralReward{},
		&models.AdminActivityLog{},
		&models.ChatUsage{},
		&models.DailySpecial{},
		&models.IPLog{},
		&models.Backup{},
	)
}

// SeedAdmin creates the initial back-office account when none exists.
// Credentials come from the environment; without them nothing is seeded.
func SeedAdmin(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &models.User{
		Username:     "admin",
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Level:        1,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	if err := db.Create(&models.Wallet{UserID: admin.ID, Balance: decimal.Zero, Currency: "ZAR"}).Error; err != nil {
		return err
	}
	log.Printf("seeded admin account %s", email)
	return nil
}

type seedTier struct {
	name     string
	amount   int64
	ret      int64
	days     int
	minLevel int
}

var defaultTiers = []seedTier{
	{"Starter", 50, 100, 1, 1},
	{"Basic", 200, 400, 3, 1},
	{"Standard", 500, 1000, 5, 1},
	{"Premium", 1000, 2000, 7, 2},
	{"Elite", 2000, 4000, 10, 2},
	{"Ultimate", 5000, 10000, 15, 3},
}

// SeedTiers loads the standard product ladder on first boot.
func SeedTiers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.InvestmentTier{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, t := range defaultTiers {
		tier := models.InvestmentTier{
			Name:         t.name,
			Amount:       decimal.NewFromInt(t.amount),
			ReturnAmount: decimal.NewFromInt(t.ret),
			DurationDays: t.days,
			MinLevel:     t.minLevel,
		}
		if err := db.Create(&tier).Error; err != nil {
			return err
		}
	}
	log.Printf("seeded %d investment tiers", len(defaultTiers))
	return nil
}
