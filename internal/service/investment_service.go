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

	"gorm.io/gorm"
)

var (
	ErrTierLocked          = errors.New("tier requires a higher level")
	ErrDuplicateInvestment = errors.New("active investment already exists in this tier")
	ErrNotMatured          = errors.New("investment has not matured yet")
)

// InvestmentService opens fixed-term investments and settles them at
// maturity. Settlement happens lazily on the read paths and from the
// background sweeper; both funnel into the same guarded transaction, so an
// investment pays out exactly once no matter who gets there first.
type InvestmentService struct {
	db          *gorm.DB
	cfg         *config.Config
	tiers       *repository.TierRepository
	investments *repository.InvestmentRepository
	specials    *repository.SpecialRepository
}

func NewInvestmentService(db *gorm.DB, cfg *config.Config, tiers *repository.TierRepository, investments *repository.InvestmentRepository, specials *repository.SpecialRepository) *InvestmentService {
	return &InvestmentService{db: db, cfg: cfg, tiers: tiers, investments: investments, specials: specials}
}

// Invest opens an investment in a tier: level gate, one active investment per
// tier, wallet debit and the term clock all settle in one transaction.
func (s *InvestmentService) Invest(userID, tierID uint, clientIP string) (*models.Investment, error) {
	tier, err := s.tiers.GetByID(tierID)
	if err != nil {
		return nil, err
	}

	returnAmount := tier.ReturnAmount
	if sp, err := s.specials.ActiveAt(time.Now()); err == nil && sp.TierID == tier.ID {
		returnAmount = tier.ReturnAmount.Mul(sp.SpecialReturnMultiplier)
	}

	var inv *models.Investment
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		if user.Level < tier.MinLevel {
			return ErrTierLocked
		}

		var active int64
		if err := tx.Model(&models.Investment{}).
			Where("user_id = ? AND tier_id = ? AND is_active = ?", userID, tierID, true).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return ErrDuplicateInvestment
		}

		if err := debitWallet(tx, userID, tier.Amount, domain.WalletTxTypeInvestment,
			fmt.Sprintf("%s tier", tier.Name)); err != nil {
			return err
		}

		now := time.Now()
		inv = &models.Investment{
			UserID:       userID,
			TierID:       tier.ID,
			Amount:       tier.Amount,
			ReturnAmount: returnAmount,
			StartDate:    now,
			EndDate:      now.AddDate(0, 0, tier.DurationDays),
			IsActive:     true,
		}
		if err := tx.Create(inv).Error; err != nil {
			return err
		}

		user.TotalInvested = user.TotalInvested.Add(tier.Amount)
		user.UpdateLevel()
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		// Entry-tier purchases log the client IP for abuse review.
		if minID, err := s.tiers.MinTierID(); err == nil && minID == tier.ID && clientIP != "" {
			if err := tx.Create(&models.IPLog{UserID: userID, IPAddress: clientIP, TierID: tier.ID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// SettleMatured pays out every matured, unsettled investment for one user.
// Safe to call on every dashboard load.
func (s *InvestmentService) SettleMatured(userID uint) (int, error) {
	return s.settle(userID)
}

// SettleAllMatured is the sweeper entry point, covering all users.
func (s *InvestmentService) SettleAllMatured() (int, error) {
	return s.settle(0)
}

func (s *InvestmentService) settle(userID uint) (int, error) {
	matured, err := s.investments.ListMaturedUnsettled(userID, time.Now())
	if err != nil {
		return 0, err
	}
	settled := 0
	for i := range matured {
		if err := s.settleOne(&matured[i]); err != nil {
			log.Printf("settle investment %d: %v", matured[i].ID, err)
			continue
		}
		settled++
	}
	return settled, nil
}

// settleOne flips the investment to settled and credits the return. The
// guarded UPDATE means a concurrent settler finds zero rows and backs off.
func (s *InvestmentService) settleOne(inv *models.Investment) error {
	var reinvest bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Investment{}).
			Where("id = ? AND is_active = ? AND profit_paid = ?", inv.ID, true, false).
			Updates(map[string]interface{}{"is_active": false, "profit_paid": true})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil // someone else settled it
		}
		if err := creditWallet(tx, inv.UserID, inv.ReturnAmount, domain.WalletTxTypeReturn,
			fmt.Sprintf("investment #%d matured", inv.ID)); err != nil {
			return err
		}
		var user models.User
		if err := tx.First(&user, inv.UserID).Error; err != nil {
			return err
		}
		reinvest = user.AutoReinvest
		return nil
	})
	if err != nil {
		return err
	}
	if reinvest {
		if _, err := s.Invest(inv.UserID, inv.TierID, ""); err != nil {
			// Reinvest is best effort; an underfunded wallet just skips it.
			log.Printf("auto-reinvest for user %d tier %d skipped: %v", inv.UserID, inv.TierID, err)
		}
	}
	return nil
}

// CashOut settles a single matured investment on the user's request.
func (s *InvestmentService) CashOut(userID, investmentID uint) (*models.Investment, error) {
	inv, err := s.investments.GetByIDForUser(investmentID, userID)
	if err != nil {
		return nil, err
	}
	if !inv.IsActive || inv.ProfitPaid {
		return nil, ErrAlreadyProcessed
	}
	if !inv.IsComplete(time.Now()) {
		return nil, ErrNotMatured
	}
	if err := s.settleOne(inv); err != nil {
		return nil, err
	}
	return s.investments.GetByIDForUser(investmentID, userID)
}

// CashOutStatus tells the client whether an investment can be cashed out and
// how long is left if not.
type CashOutStatus struct {
	InvestmentID uint      `json:"investment_id"`
	CanCashOut   bool      `json:"can_cash_out"`
	AlreadyPaid  bool      `json:"already_paid"`
	EndDate      time.Time `json:"end_date"`
	SecondsLeft  int64     `json:"seconds_left"`
}

func (s *InvestmentService) CheckCashOut(userID, investmentID uint) (*CashOutStatus, error) {
	inv, err := s.investments.GetByIDForUser(investmentID, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	st := &CashOutStatus{
		InvestmentID: inv.ID,
		AlreadyPaid:  inv.ProfitPaid,
		EndDate:      inv.EndDate,
	}
	if inv.IsActive && !inv.ProfitPaid && inv.IsComplete(now) {
		st.CanCashOut = true
	}
	if remaining := inv.EndDate.Sub(now); remaining > 0 {
		st.SecondsLeft = int64(remaining.Seconds())
	}
	return st, nil
}

// MaturitySweeper settles matured investments on a fixed interval so payouts
// land even when the user never opens the app.
type MaturitySweeper struct {
	investments *InvestmentService
	interval    time.Duration
	stop        chan struct{}
}

func NewMaturitySweeper(investments *InvestmentService, interval time.Duration) *MaturitySweeper {
	return &MaturitySweeper{investments: investments, interval: interval, stop: make(chan struct{})}
}

func (m *MaturitySweeper) Start() {
	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				n, err := m.investments.SettleAllMatured()
				if err != nil {
					log.Printf("maturity sweep failed: %v", err)
					continue
				}
				if n > 0 {
					log.Printf("maturity sweep settled %d investments", n)
				}
			case <-m.stop:
				return
			}
		}
	}()
}

func (m *MaturitySweeper) Stop() {
	close(m.stop)
}
