package repository

import (
	"safechain/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var u models.User
	err := r.db.First(&u, id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var u models.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var u models.User
	err := r.db.Where("username = ?", username).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(u *models.User) error {
	return r.db.Save(u).Error
}

func (r *UserRepository) UpdateLastIP(id uint, ip string) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).UpdateColumn("last_ip", ip).Error
}

func (r *UserRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.User{}).Count(&n).Error
	return n, err
}

// List returns users with optional search over username/email, newest first.
func (r *UserRepository) List(search string, page, limit int) ([]models.User, int64, error) {
	q := r.db.Model(&models.User{})
	if search != "" {
		q = q.Where("username LIKE ? OR email LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	var total int64
	q.Count(&total)
	var users []models.User
	err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&users).Error
	return users, total, err
}

// DeleteWithRelated removes the user together with their wallet, investments,
// deposits, withdrawals, vouchers and referrals. Hard delete, account closure.
func (r *UserRepository) DeleteWithRelated(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, del := range []error{
			tx.Unscoped().Where("user_id = ?", id).Delete(&models.Wallet{}).Error,
			tx.Unscoped().Where("user_id = ?", id).Delete(&models.WalletTransaction{}).Error,
			tx.Unscoped().Where("user_id = ?", id).Delete(&models.Investment{}).Error,
			tx.Unscoped().Where("user_id = ?", id).Delete(&models.Deposit{}).Error,
			tx.Unscoped().Where("user_id = ?", id).Delete(&models.Withdrawal{}).Error,
			tx.Unscoped().Where("user_id = ?", id).Delete(&models.Voucher{}).Error,
			tx.Unscoped().Where("inviter_id = ? OR invitee_id = ?", id, id).Delete(&models.Referral{}).Error,
			tx.Unscoped().Delete(&models.User{}, id).Error,
		} {
			if del != nil {
				return del
			}
		}
		return nil
	})
}
