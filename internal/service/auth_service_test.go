package service

import (
	"testing"

	"safechain/internal/auth"
	"safechain/internal/domain"
	"safechain/internal/models"
	"safechain/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(testConfig(),
		repository.NewUserRepository(db),
		repository.NewWalletRepository(db),
		repository.NewReferralRepository(db))
}

func TestRegisterCreatesUserAndWallet(t *testing.T) {
	db := testDB(t)
	svc := newAuthService(db)

	user, err := svc.Register(RegisterInput{
		Username: "newuser",
		Email:    "NewUser@Example.com",
		Password: "password123",
		Phone:    "0821234567",
	})
	require.NoError(t, err)
	assert.Equal(t, "newuser", user.Username)
	assert.Equal(t, "newuser@example.com", user.Email)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Equal(t, 1, user.Level)
	assert.NotEqual(t, "password123", user.PasswordHash)

	var wallet models.Wallet
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&wallet).Error)
	assert.True(t, wallet.Balance.IsZero())
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	db := testDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(RegisterInput{Username: "taken", Email: "taken@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterInput{Username: "other", Email: "taken@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrEmailExists)

	_, err = svc.Register(RegisterInput{Username: "taken", Email: "other@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestRegisterWithReferralCode(t *testing.T) {
	db := testDB(t)
	svc := newAuthService(db)
	inviter := createUser(t, db, "inviter", 0)

	user, err := svc.Register(RegisterInput{
		Username:     "friend",
		Email:        "friend@example.com",
		Password:     "password123",
		ReferralCode: "inviter",
	})
	require.NoError(t, err)
	require.NotNil(t, user.ReferredByID)
	assert.Equal(t, inviter.ID, *user.ReferredByID)

	var ref models.Referral
	require.NoError(t, db.Where("invitee_id = ?", user.ID).First(&ref).Error)
	assert.Equal(t, inviter.ID, ref.InviterID)
	assert.Equal(t, domain.ReferralStatusPending, ref.Status)
}

func TestRegisterIgnoresBadReferralCode(t *testing.T) {
	db := testDB(t)
	svc := newAuthService(db)

	user, err := svc.Register(RegisterInput{
		Username:     "loner",
		Email:        "loner@example.com",
		Password:     "password123",
		ReferralCode: "nosuchuser",
	})
	require.NoError(t, err)
	assert.Nil(t, user.ReferredByID)
}

func TestLogin(t *testing.T) {
	db := testDB(t)
	svc := newAuthService(db)
	createUser(t, db, "login", 0)

	user, tokens, err := svc.Login("login@example.com", "password123", "192.168.1.9")
	require.NoError(t, err)
	require.NotNil(t, tokens)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	claims, err := auth.ParseAccessToken(&testConfig().JWT, tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.Equal(t, "192.168.1.9", reloaded.LastIP)
}

func TestLoginWrongPassword(t *testing.T) {
	db := testDB(t)
	svc := newAuthService(db)
	createUser(t, db, "login", 0)

	_, _, err := svc.Login("login@example.com", "wrongpass", "")
	assert.ErrorIs(t, err, ErrInvalidCreds)

	_, _, err = svc.Login("nobody@example.com", "password123", "")
	assert.ErrorIs(t, err, ErrInvalidCreds)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	db := testDB(t)
	svc := newAuthService(db)
	createUser(t, db, "refresher", 0)

	_, tokens, err := svc.Login("refresher@example.com", "password123", "")
	require.NoError(t, err)

	fresh, err := svc.RefreshToken(tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)

	_, err = svc.RefreshToken("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	db := testDB(t)
	svc := newAuthService(db)
	user := createUser(t, db, "changer", 0)

	err := svc.ChangePassword(user.ID, "wrongpass", "newpassword1")
	assert.ErrorIs(t, err, ErrInvalidCreds)

	require.NoError(t, svc.ChangePassword(user.ID, "password123", "newpassword1"))
	_, _, err = svc.Login("changer@example.com", "newpassword1", "")
	require.NoError(t, err)
}

func TestDeleteAccountRemovesRelatedRows(t *testing.T) {
	db := testDB(t)
	svc := newAuthService(db)
	user := createUser(t, db, "leaver", 100)

	err := svc.DeleteAccount(user.ID, "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCreds)

	require.NoError(t, svc.DeleteAccount(user.ID, "password123"))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.Wallet{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)
}
