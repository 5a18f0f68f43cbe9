package service

import (
	"errors"
	"strings"
	"time"

	"safechain/config"
	"safechain/internal/repository"
)

var ErrChatQuotaExceeded = errors.New("daily chat limit reached")

// ChatService answers common support questions from a canned knowledge base,
// capped per user per calendar day.
type ChatService struct {
	cfg  *config.Config
	chat *repository.ChatRepository
}

func NewChatService(cfg *config.Config, chat *repository.ChatRepository) *ChatService {
	return &ChatService{cfg: cfg, chat: chat}
}

type ChatReply struct {
	Reply     string `json:"reply"`
	Remaining int    `json:"remaining"`
}

// Ask returns a canned answer and decrements the daily quota. The quota
// resets at local midnight.
func (s *ChatService) Ask(userID uint, message string) (*ChatReply, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	used, err := s.chat.CountSince(userID, midnight)
	if err != nil {
		return nil, err
	}
	limit := s.cfg.Platform.ChatDailyLimit
	if used >= int64(limit) {
		return nil, ErrChatQuotaExceeded
	}
	if err := s.chat.Record(userID); err != nil {
		return nil, err
	}
	return &ChatReply{
		Reply:     cannedReply(message),
		Remaining: limit - int(used) - 1,
	}, nil
}

func cannedReply(message string) string {
	m := strings.ToLower(message)
	switch {
	case strings.Contains(m, "deposit"):
		return "To deposit, make an EFT to our FNB account and upload your proof of payment. Deposits are reviewed within 24 hours."
	case strings.Contains(m, "withdraw"):
		return "Withdrawals are paid to your bank account within 1-3 business days after approval. The minimum withdrawal is R50."
	case strings.Contains(m, "refer"):
		return "Share your referral link from the Referrals page. You earn a bonus when your friend's first deposit is approved."
	case strings.Contains(m, "invest") || strings.Contains(m, "tier"):
		return "Pick a tier that matches your balance and level. Your return is paid to your wallet automatically when the term ends."
	case strings.Contains(m, "level"):
		return "Levels unlock higher tiers: level 2 at R10,000 total invested and level 3 at R20,000."
	case strings.Contains(m, "voucher"):
		return "Upload a photo of your voucher and its value will be credited to your wallet once approved."
	default:
		return "Thanks for your message. Our support team will get back to you, or try asking about deposits, withdrawals, investments or referrals."
	}
}
