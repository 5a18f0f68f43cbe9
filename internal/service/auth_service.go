package service

import (
	"errors"
	"log"
	"strings"

	"safechain/config"
	"safechain/internal/auth"
	"safechain/internal/domain"
	"safechain/internal/models"
	"safechain/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists    = errors.New("email already registered")
	ErrUsernameExists = errors.New("username already taken")
	ErrInvalidCreds   = errors.New("invalid email or password")
)

type AuthService struct {
	cfg       *config.Config
	users     *repository.UserRepository
	wallets   *repository.WalletRepository
	referrals *repository.ReferralRepository
}

func NewAuthService(cfg *config.Config, users *repository.UserRepository, wallets *repository.WalletRepository, referrals *repository.ReferralRepository) *AuthService {
	return &AuthService{cfg: cfg, users: users, wallets: wallets, referrals: referrals}
}

type RegisterInput struct {
	Username     string
	Email        string
	Password     string
	Phone        string
	ReferralCode string // referrer's username, from the ?ref= link
}

// Register creates the user and their wallet, and links a pending referral
// record back to the inviter when a valid referral code is supplied.
func (s *AuthService) Register(in RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.TrimSpace(in.Username)

	if _, err := s.users.GetByEmail(email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.users.GetByUsername(username); err == nil {
		return nil, ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         domain.RoleUser,
		Level:        1,
	}

	var inviter *models.User
	if code := strings.TrimSpace(in.ReferralCode); code != "" && !strings.EqualFold(code, username) {
		// A bad code never blocks signup, the referral is just skipped.
		if u, err := s.users.GetByUsername(code); err == nil {
			inviter = u
			user.ReferredByID = &u.ID
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	if _, err := s.wallets.GetOrCreate(user.ID); err != nil {
		return nil, err
	}
	if inviter != nil {
		ref := &models.Referral{
			InviterID:   inviter.ID,
			InviteeID:   user.ID,
			BonusAmount: s.cfg.Platform.ReferralBonus,
			Status:      domain.ReferralStatusPending,
		}
		if err := s.referrals.Create(ref); err != nil {
			log.Printf("referral record for user %d failed: %v", user.ID, err)
		}
	}
	return user, nil
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login verifies credentials and records the client IP on the account.
func (s *AuthService) Login(email, password, clientIP string) (*models.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCreds
		}
		return nil, nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCreds
	}
	if clientIP != "" {
		if err := s.users.UpdateLastIP(user.ID, clientIP); err != nil {
			log.Printf("update last ip for user %d failed: %v", user.ID, err)
		}
	}
	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// RefreshToken exchanges a valid refresh token for a fresh token pair.
func (s *AuthService) RefreshToken(refreshToken string) (*TokenPair, error) {
	userID, err := auth.ParseRefreshToken(&s.cfg.JWT, refreshToken)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}
	return s.issueTokens(user)
}

func (s *AuthService) ChangePassword(userID uint, current, next string) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return ErrInvalidCreds
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return s.users.Update(user)
}

// DeleteAccount closes the account after re-checking the password.
func (s *AuthService) DeleteAccount(userID uint, password string) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return ErrInvalidCreds
	}
	return s.users.DeleteWithRelated(userID)
}

func (s *AuthService) issueTokens(user *models.User) (*TokenPair, error) {
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, user.ID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
