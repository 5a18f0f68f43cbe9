package service

import (
	"testing"

	"safechain/internal/domain"
	"safechain/internal/models"
	"safechain/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createDeposit(t *testing.T, db *gorm.DB, userID uint, amount int64, method, proof string) *models.Deposit {
	t.Helper()
	d := &models.Deposit{
		UserID:        userID,
		Amount:        decimal.NewFromInt(amount),
		PaymentMethod: method,
		ProofImage:    proof,
		Status:        domain.StatusPending,
	}
	require.NoError(t, db.Create(d).Error)
	return d
}

func TestApproveDepositCreditsWalletOnce(t *testing.T) {
	db := testDB(t)
	svc := newApprovalService(db)
	admin := createUser(t, db, "admin1", 0)
	user := createUser(t, db, "depositor", 0)
	dep := createDeposit(t, db, user.ID, 100, domain.PaymentMethodEFT, "https://img/proof.jpg")

	require.NoError(t, svc.ApproveDeposit(dep.ID, admin.ID, "looks good"))
	assert.True(t, walletBalance(t, db, user.ID).Equal(decimal.NewFromInt(100)))

	var reloaded models.Deposit
	require.NoError(t, db.First(&reloaded, dep.ID).Error)
	assert.Equal(t, domain.StatusApproved, reloaded.Status)

	// Second approval must be a no-op.
	err := svc.ApproveDeposit(dep.ID, admin.ID, "again")
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
	assert.True(t, walletBalance(t, db, user.ID).Equal(decimal.NewFromInt(100)))

	var txs []models.WalletTransaction
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&txs).Error)
	require.Len(t, txs, 1)
	assert.Equal(t, domain.WalletTxTypeDeposit, txs[0].Type)
}

func TestApproveDepositRequiresProofForEFT(t *testing.T) {
	db := testDB(t)
	svc := newApprovalService(db)
	admin := createUser(t, db, "admin1", 0)
	user := createUser(t, db, "depositor", 0)
	dep := createDeposit(t, db, user.ID, 100, domain.PaymentMethodEFT, "")

	err := svc.ApproveDeposit(dep.ID, admin.ID, "")
	assert.ErrorIs(t, err, ErrMissingProof)
	assert.True(t, walletBalance(t, db, user.ID).IsZero())
}

func TestApproveCashDepositWithoutProof(t *testing.T) {
	db := testDB(t)
	svc := newApprovalService(db)
	admin := createUser(t, db, "admin1", 0)
	user := createUser(t, db, "depositor", 0)
	dep := createDeposit(t, db, user.ID, 200, domain.PaymentMethodCash, "")

	require.NoError(t, svc.ApproveDeposit(dep.ID, admin.ID, ""))
	assert.True(t, walletBalance(t, db, user.ID).Equal(decimal.NewFromInt(200)))
}

func TestRejectDepositLeavesWalletUntouched(t *testing.T) {
	db := testDB(t)
	svc := newApprovalService(db)
	admin := createUser(t, db, "admin1", 0)
	user := createUser(t, db, "depositor", 0)
	dep := createDeposit(t, db, user.ID, 100, domain.PaymentMethodEFT, "https://img/proof.jpg")

	require.NoError(t, svc.RejectDeposit(dep.ID, admin.ID, "mismatched reference"))
	assert.True(t, walletBalance(t, db, user.ID).IsZero())

	var reloaded models.Deposit
	require.NoError(t, db.First(&reloaded, dep.ID).Error)
	assert.Equal(t, domain.StatusRejected, reloaded.Status)
	assert.Equal(t, "mismatched reference", reloaded.AdminNotes)

	err := svc.RejectDeposit(dep.ID, admin.ID, "again")
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestApproveWithdrawalDebitsWallet(t *testing.T) {
	db := testDB(t)
	svc := newApprovalService(db)
	admin := createUser(t, db, "admin1", 0)
	user := createUser(t, db, "withdrawer", 500)

	w := &models.Withdrawal{
		UserID:        user.ID,
		Amount:        decimal.NewFromInt(300),
		PaymentMethod: domain.PaymentMethodBank,
		Status:        domain.StatusPending,
	}
	require.NoError(t, db.Create(w).Error)

	require.NoError(t, svc.ApproveWithdrawal(w.ID, admin.ID, "paid"))
	assert.True(t, walletBalance(t, db, user.ID).Equal(decimal.NewFromInt(200)))

	var txs []models.WalletTransaction
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&txs).Error)
	require.Len(t, txs, 1)
	assert.True(t, txs[0].Amount.Equal(decimal.NewFromInt(-300)))
}

func TestApproveWithdrawalInsufficientBalance(t *testing.T) {
	db := testDB(t)
	svc := newApprovalService(db)
	admin := createUser(t, db, "admin1", 0)
	user := createUser(t, db, "withdrawer", 100)

	w := &models.Withdrawal{
		UserID:        user.ID,
		Amount:        decimal.NewFromInt(300),
		PaymentMethod: domain.PaymentMethodBank,
		Status:        domain.StatusPending,
	}
	require.NoError(t, db.Create(w).Error)

	err := svc.ApproveWithdrawal(w.ID, admin.ID, "")
	assert.ErrorIs(t, err, repository.ErrInsufficientBalance)

	// The transaction rolled back, so the request is still pending.
	var reloaded models.Withdrawal
	require.NoError(t, db.First(&reloaded, w.ID).Error)
	assert.Equal(t, domain.StatusPending, reloaded.Status)
	assert.True(t, walletBalance(t, db, user.ID).Equal(decimal.NewFromInt(100)))
}

func TestApproveVoucherCreditsWallet(t *testing.T) {
	db := testDB(t)
	svc := newApprovalService(db)
	admin := createUser(t, db, "admin1", 0)
	user := createUser(t, db, "voucherer", 0)

	v := &models.Voucher{
		UserID:       user.ID,
		Amount:       decimal.NewFromInt(150),
		VoucherImage: "https://img/voucher.jpg",
		Status:       domain.StatusPending,
	}
	require.NoError(t, db.Create(v).Error)

	require.NoError(t, svc.ApproveVoucher(v.ID, admin.ID, ""))
	assert.True(t, walletBalance(t, db, user.ID).Equal(decimal.NewFromInt(150)))

	err := svc.ApproveVoucher(v.ID, admin.ID, "")
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
	assert.True(t, walletBalance(t, db, user.ID).Equal(decimal.NewFromInt(150)))
}

func TestReferralRewardPaidExactlyOnce(t *testing.T) {
	db := testDB(t)
	svc := newApprovalService(db)
	admin := createUser(t, db, "admin1", 0)
	inviter := createUser(t, db, "inviter", 0)
	invitee := createUser(t, db, "invitee", 0)

	require.NoError(t, db.Create(&models.Referral{
		InviterID:   inviter.ID,
		InviteeID:   invitee.ID,
		BonusAmount: decimal.NewFromInt(50),
		Status:      domain.ReferralStatusPending,
	}).Error)

	first := createDeposit(t, db, invitee.ID, 100, domain.PaymentMethodCash, "")
	second := createDeposit(t, db, invitee.ID, 200, domain.PaymentMethodCash, "")

	require.NoError(t, svc.ApproveDeposit(first.ID, admin.ID, ""))
	assert.True(t, walletBalance(t, db, inviter.ID).Equal(decimal.NewFromInt(50)))

	var ref models.Referral
	require.NoError(t, db.Where("invitee_id = ?", invitee.ID).First(&ref).Error)
	assert.Equal(t, domain.ReferralStatusActive, ref.Status)

	// A second approved deposit must not pay the bonus again.
	require.NoError(t, svc.ApproveDeposit(second.ID, admin.ID, ""))
	assert.True(t, walletBalance(t, db, inviter.ID).Equal(decimal.NewFromInt(50)))

	var rewards []models.ReferralReward
	require.NoError(t, db.Where("referrer_id = ?", inviter.ID).Find(&rewards).Error)
	require.Len(t, rewards, 1)
	assert.True(t, rewards[0].IsPaid)
}

func TestBulkDepositsSkipsFailures(t *testing.T) {
	db := testDB(t)
	svc := newApprovalService(db)
	admin := createUser(t, db, "admin1", 0)
	user := createUser(t, db, "depositor", 0)

	var ids []uint
	for i := 0; i < 4; i++ {
		ids = append(ids, createDeposit(t, db, user.ID, 100, domain.PaymentMethodCash, "").ID)
	}
	ids = append(ids, createDeposit(t, db, user.ID, 100, domain.PaymentMethodEFT, "").ID)

	res, err := svc.BulkDeposits(ids, "approve", admin.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Processed)
	assert.Equal(t, 1, res.Skipped)
	assert.True(t, walletBalance(t, db, user.ID).Equal(decimal.NewFromInt(400)))
}

func TestVerifyDepositsFlagsProblems(t *testing.T) {
	db := testDB(t)
	svc := newApprovalService(db)
	user := createUser(t, db, "depositor", 0)

	ok := createDeposit(t, db, user.ID, 100, domain.PaymentMethodCash, "")
	noProof := createDeposit(t, db, user.ID, 100, domain.PaymentMethodEFT, "")
	small := createDeposit(t, db, user.ID, 20, domain.PaymentMethodCash, "")
	_ = ok

	res, err := svc.VerifyDeposits()
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Contains(t, res.NoProof, noProof.ID)
	assert.Contains(t, res.BelowMinimum, small.ID)
}
