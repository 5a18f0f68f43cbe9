package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"safechain/internal/domain"
	"safechain/internal/models"
	"safechain/internal/repository"
	"safechain/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAdminHandler(db *gorm.DB) *AdminHandler {
	cfg := testPlatformConfig()
	auditRepo := repository.NewAuditRepository(db)
	return NewAdminHandler(
		repository.NewUserRepository(db),
		repository.NewDepositRepository(db),
		repository.NewWithdrawalRepository(db),
		repository.NewVoucherRepository(db),
		repository.NewTierRepository(db),
		repository.NewSpecialRepository(db),
		auditRepo,
		repository.NewBackupRepository(db),
		repository.NewWalletRepository(db),
		service.NewApprovalService(db, cfg, auditRepo))
}

func adminPost(t *testing.T, adminID uint, paramID uint, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("user_id", adminID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(paramID)}}
	return c, w
}

func TestPromoteUser(t *testing.T) {
	db := testDB(t)
	h := newAdminHandler(db)

	admin := &models.User{Username: "staff", Email: "staff@example.com", Role: domain.RoleAdmin, Level: 1}
	require.NoError(t, db.Create(admin).Error)
	user := &models.User{Username: "member", Email: "member@example.com", Role: domain.RoleUser, Level: 1}
	require.NoError(t, db.Create(user).Error)

	c, w := adminPost(t, admin.ID, user.ID, `{"level":3}`)
	h.PromoteUser(c)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.User
	require.NoError(t, db.First(&got, user.ID).Error)
	assert.Equal(t, 3, got.Level)

	// Investing afterwards must not pull the level back down.
	got.TotalInvested = got.TotalInvested.Add(models.Level2Threshold)
	got.UpdateLevel()
	assert.Equal(t, 3, got.Level)

	var logs int64
	require.NoError(t, db.Model(&models.AdminActivityLog{}).
		Where("action = ?", "promote_user").Count(&logs).Error)
	assert.EqualValues(t, 1, logs)
}

func TestPromoteUserRejectsBadLevel(t *testing.T) {
	db := testDB(t)
	h := newAdminHandler(db)

	admin := &models.User{Username: "staff", Email: "staff@example.com", Role: domain.RoleAdmin, Level: 1}
	require.NoError(t, db.Create(admin).Error)

	c, w := adminPost(t, admin.ID, admin.ID, `{"level":5}`)
	h.PromoteUser(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
