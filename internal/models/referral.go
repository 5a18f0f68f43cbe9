package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Referral links an inviter to an invitee. It starts pending and becomes
// active once the invitee has an approved deposit.
type Referral struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	InviterID   uint            `gorm:"not null;index" json:"inviter_id"`
	InviteeID   uint            `gorm:"uniqueIndex;not null" json:"invitee_id"` // a user can only be referred once
	BonusAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:50" json:"bonus_amount"`
	Status      string          `gorm:"size:10;not null;index;default:'pending'" json:"status"` // pending | active | inactive
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	Inviter User `gorm:"foreignKey:InviterID" json:"inviter,omitempty"`
	Invitee User `gorm:"foreignKey:InviteeID" json:"invitee,omitempty"`
}

func (Referral) TableName() string { return "referrals" }

// ReferralReward is the one-time bonus paid to a referrer when the invitee's
// first deposit is approved. The unique (referrer, referred) pair plus the
// IsPaid flag guarantee the wallet is credited at most once.
type ReferralReward struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	ReferrerID    uint            `gorm:"not null;index:idx_reward_pair,unique" json:"referrer_id"`
	ReferredID    uint            `gorm:"not null;index:idx_reward_pair,unique" json:"referred_id"`
	DepositAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"deposit_amount"`
	RewardAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:10" json:"reward_amount"`
	IsPaid        bool            `gorm:"not null;default:false" json:"is_paid"`
	AwardedAt     time.Time       `gorm:"autoCreateTime" json:"awarded_at"`

	Referrer User `gorm:"foreignKey:ReferrerID" json:"-"`
	Referred User `gorm:"foreignKey:ReferredID" json:"-"`
}

func (ReferralReward) TableName() string { return "referral_rewards" }
