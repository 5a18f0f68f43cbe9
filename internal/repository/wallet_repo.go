package repository

import (
	"errors"

	"safechain/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrInsufficientBalance = errors.New("insufficient wallet balance")

type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) GetByUserID(userID uint) (*models.Wallet, error) {
	var w models.Wallet
	err := r.db.Where("user_id = ?", userID).First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WalletRepository) GetOrCreate(userID uint) (*models.Wallet, error) {
	w, err := r.GetByUserID(userID)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	w = &models.Wallet{UserID: userID, Balance: decimal.Zero, Currency: "ZAR"}
	if err := r.db.Create(w).Error; err != nil {
		return nil, err
	}
	return w, nil
}

// Balance mutations happen inside service transactions together with the
// status flip that caused them; this repository only reads.

func (r *WalletRepository) ListTransactions(userID uint, limit, offset int) ([]models.WalletTransaction, error) {
	var list []models.WalletTransaction
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}
