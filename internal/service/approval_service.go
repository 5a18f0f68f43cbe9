package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"safechain/config"
	"safechain/internal/domain"
	"safechain/internal/models"
	"safechain/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrAlreadyProcessed = errors.New("request already processed")
	ErrMissingProof     = errors.New("eft deposit has no proof of payment")
)

// ApprovalService owns the admin decisions on deposits, withdrawals and
// vouchers. Every decision runs in a single transaction: the status flip, the
// wallet mutation, the ledger row and any referral payout commit together or
// not at all. The pending-status guard inside the transaction makes each
// request approvable exactly once.
type ApprovalService struct {
	db    *gorm.DB
	cfg   *config.Config
	audit *repository.AuditRepository
}

func NewApprovalService(db *gorm.DB, cfg *config.Config, audit *repository.AuditRepository) *ApprovalService {
	return &ApprovalService{db: db, cfg: cfg, audit: audit}
}

// ApproveDeposit credits the wallet and, on the invitee's first approved
// deposit, pays the inviter's referral bonus in the same transaction.
func (s *ApprovalService) ApproveDeposit(depositID, adminID uint, notes string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var dep models.Deposit
		if err := tx.First(&dep, depositID).Error; err != nil {
			return err
		}
		if dep.Status != domain.StatusPending {
			return ErrAlreadyProcessed
		}
		if dep.PaymentMethod == domain.PaymentMethodEFT && dep.ProofImage == "" {
			return ErrMissingProof
		}

		dep.Status = domain.StatusApproved
		dep.AdminNotes = notes
		if err := tx.Save(&dep).Error; err != nil {
			return err
		}
		if err := creditWallet(tx, dep.UserID, dep.Amount, domain.WalletTxTypeDeposit,
			fmt.Sprintf("deposit #%d", dep.ID)); err != nil {
			return err
		}
		return s.payReferralReward(tx, &dep)
	})
	if err != nil {
		return err
	}
	s.logAction(adminID, "approve_deposit", "Deposit", depositID, notes)
	return nil
}

func (s *ApprovalService) RejectDeposit(depositID, adminID uint, notes string) error {
	if err := s.reject(&models.Deposit{}, depositID, notes); err != nil {
		return err
	}
	s.logAction(adminID, "reject_deposit", "Deposit", depositID, notes)
	return nil
}

// ApproveWithdrawal debits the wallet. An underfunded wallet fails the whole
// transaction and leaves the request pending for the admin to reject.
func (s *ApprovalService) ApproveWithdrawal(withdrawalID, adminID uint, notes string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var w models.Withdrawal
		if err := tx.First(&w, withdrawalID).Error; err != nil {
			return err
		}
		if w.Status != domain.StatusPending {
			return ErrAlreadyProcessed
		}
		w.Status = domain.StatusApproved
		w.AdminNotes = notes
		if err := tx.Save(&w).Error; err != nil {
			return err
		}
		return debitWallet(tx, w.UserID, w.Amount, domain.WalletTxTypeWithdrawal,
			fmt.Sprintf("withdrawal #%d", w.ID))
	})
	if err != nil {
		return err
	}
	s.logAction(adminID, "approve_withdrawal", "Withdrawal", withdrawalID, notes)
	return nil
}

func (s *ApprovalService) RejectWithdrawal(withdrawalID, adminID uint, notes string) error {
	if err := s.reject(&models.Withdrawal{}, withdrawalID, notes); err != nil {
		return err
	}
	s.logAction(adminID, "reject_withdrawal", "Withdrawal", withdrawalID, notes)
	return nil
}

func (s *ApprovalService) ApproveVoucher(voucherID, adminID uint, notes string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var v models.Voucher
		if err := tx.First(&v, voucherID).Error; err != nil {
			return err
		}
		if v.Status != domain.StatusPending {
			return ErrAlreadyProcessed
		}
		v.Status = domain.StatusApproved
		if err := tx.Save(&v).Error; err != nil {
			return err
		}
		return creditWallet(tx, v.UserID, v.Amount, domain.WalletTxTypeVoucher,
			fmt.Sprintf("voucher #%d", v.ID))
	})
	if err != nil {
		return err
	}
	s.logAction(adminID, "approve_voucher", "Voucher", voucherID, notes)
	return nil
}

func (s *ApprovalService) RejectVoucher(voucherID, adminID uint, notes string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var v models.Voucher
		if err := tx.First(&v, voucherID).Error; err != nil {
			return err
		}
		if v.Status != domain.StatusPending {
			return ErrAlreadyProcessed
		}
		v.Status = domain.StatusRejected
		return tx.Save(&v).Error
	})
	if err != nil {
		return err
	}
	s.logAction(adminID, "reject_voucher", "Voucher", voucherID, notes)
	return nil
}

// BulkResult summarizes a bulk deposit action.
type BulkResult struct {
	Processed int      `json:"processed"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors,omitempty"`
}

// BulkDeposits applies approve or reject across a set of deposit IDs. A
// failure on one deposit is recorded and does not stop the rest.
func (s *ApprovalService) BulkDeposits(ids []uint, action string, adminID uint) (*BulkResult, error) {
	if action != "approve" && action != "reject" {
		return nil, fmt.Errorf("unknown bulk action %q", action)
	}
	res := &BulkResult{}
	for _, id := range ids {
		var err error
		if action == "approve" {
			err = s.ApproveDeposit(id, adminID, "bulk approval")
		} else {
			err = s.RejectDeposit(id, adminID, "bulk rejection")
		}
		if err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Sprintf("deposit %d: %v", id, err))
			continue
		}
		res.Processed++
	}
	s.logAction(adminID, "bulk_"+action+"_deposits", "Deposit", 0,
		fmt.Sprintf("%d processed, %d skipped", res.Processed, res.Skipped))
	return res, nil
}

// VerificationResult is the outcome of a pending-deposit integrity scan.
type VerificationResult struct {
	Total        int    `json:"total"`
	Verified     int    `json:"verified"`
	NoProof      []uint `json:"no_proof,omitempty"`
	BelowMinimum []uint `json:"below_minimum,omitempty"`
	Suspicious   []uint `json:"suspicious,omitempty"`
}

// VerifyDeposits scans pending deposits for missing EFT proof, amounts under
// the platform minimum, and users submitting more than three deposits in 24h.
func (s *ApprovalService) VerifyDeposits() (*VerificationResult, error) {
	var pending []models.Deposit
	if err := s.db.Where("status = ?", domain.StatusPending).Find(&pending).Error; err != nil {
		return nil, err
	}
	res := &VerificationResult{Total: len(pending)}
	cutoff := time.Now().Add(-24 * time.Hour)
	for _, d := range pending {
		flagged := false
		if d.PaymentMethod == domain.PaymentMethodEFT && d.ProofImage == "" {
			res.NoProof = append(res.NoProof, d.ID)
			flagged = true
		}
		if d.Amount.LessThan(s.cfg.Platform.MinDeposit) {
			res.BelowMinimum = append(res.BelowMinimum, d.ID)
			flagged = true
		}
		var recent int64
		if err := s.db.Model(&models.Deposit{}).
			Where("user_id = ? AND created_at >= ?", d.UserID, cutoff).
			Count(&recent).Error; err != nil {
			return nil, err
		}
		if recent > 3 {
			res.Suspicious = append(res.Suspicious, d.ID)
			flagged = true
		}
		if !flagged {
			res.Verified++
		}
	}
	return res, nil
}

// reject flips a pending deposit or withdrawal to rejected without touching
// the wallet.
func (s *ApprovalService) reject(model interface{}, id uint, notes string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(model).
			Where("id = ? AND status = ?", id, domain.StatusPending).
			Updates(map[string]interface{}{"status": domain.StatusRejected, "admin_notes": notes})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyProcessed
		}
		return nil
	})
}

// payReferralReward activates the referral and pays the inviter once, keyed on
// the unique (referrer, referred) pair. Later approved deposits by the same
// invitee find the paid row and do nothing.
func (s *ApprovalService) payReferralReward(tx *gorm.DB, dep *models.Deposit) error {
	var ref models.Referral
	err := tx.Where("invitee_id = ?", dep.UserID).First(&ref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if ref.Status == domain.ReferralStatusPending {
		ref.Status = domain.ReferralStatusActive
		if err := tx.Save(&ref).Error; err != nil {
			return err
		}
	}

	reward := models.ReferralReward{
		ReferrerID:    ref.InviterID,
		ReferredID:    ref.InviteeID,
		DepositAmount: dep.Amount,
		RewardAmount:  ref.BonusAmount,
	}
	if err := tx.Where("referrer_id = ? AND referred_id = ?", ref.InviterID, ref.InviteeID).
		FirstOrCreate(&reward).Error; err != nil {
		return err
	}
	if reward.IsPaid {
		return nil
	}
	if err := creditWallet(tx, ref.InviterID, reward.RewardAmount, domain.WalletTxTypeReferralBonus,
		fmt.Sprintf("referral of user #%d", ref.InviteeID)); err != nil {
		return err
	}
	return tx.Model(&reward).UpdateColumn("is_paid", true).Error
}

func (s *ApprovalService) logAction(adminID uint, action, targetModel string, targetID uint, details string) {
	var tid *uint
	if targetID != 0 {
		tid = &targetID
	}
	if err := s.audit.Log(adminID, action, targetModel, tid, details); err != nil {
		log.Printf("audit log %s failed: %v", action, err)
	}
}

// creditWallet adds to a user's balance atomically and appends the matching
// ledger row.
func creditWallet(tx *gorm.DB, userID uint, amount decimal.Decimal, txType, reference string) error {
	res := tx.Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if err := tx.Create(&models.Wallet{UserID: userID, Balance: amount, Currency: "ZAR"}).Error; err != nil {
			return err
		}
	}
	return tx.Create(&models.WalletTransaction{
		UserID:    userID,
		Amount:    amount,
		Type:      txType,
		Reference: reference,
	}).Error
}

// debitWallet subtracts from the balance; the guard in the WHERE clause keeps
// it from going negative.
func debitWallet(tx *gorm.DB, userID uint, amount decimal.Decimal, txType, reference string) error {
	res := tx.Model(&models.Wallet{}).
		Where("user_id = ? AND balance >= ?", userID, amount).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrInsufficientBalance
	}
	return tx.Create(&models.WalletTransaction{
		UserID:    userID,
		Amount:    amount.Neg(),
		Type:      txType,
		Reference: reference,
	}).Error
}
