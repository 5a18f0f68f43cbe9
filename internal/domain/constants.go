package domain

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Status values shared by deposits, withdrawals and vouchers.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	PaymentMethodEFT  = "eft"
	PaymentMethodCash = "cash"
	PaymentMethodBank = "bank"
)

const (
	ReferralStatusPending  = "pending"
	ReferralStatusActive   = "active"
	ReferralStatusInactive = "inactive"
)

const (
	WalletTxTypeDeposit       = "DEPOSIT"
	WalletTxTypeWithdrawal    = "WITHDRAWAL"
	WalletTxTypeInvestment    = "INVESTMENT"
	WalletTxTypeReturn        = "RETURN"
	WalletTxTypeVoucher       = "VOUCHER"
	WalletTxTypeReferralBonus = "REFERRAL_BONUS"
)

const (
	BackupStatusSuccess    = "success"
	BackupStatusFailed     = "failed"
	BackupStatusInProgress = "in_progress"
)
