package router

import (
	"time"

	"safechain/config"
	"safechain/internal/handler"
	"safechain/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth       *handler.AuthHandler
	Home       *handler.HomeHandler
	Dashboard  *handler.DashboardHandler
	Tier       *handler.TierHandler
	Investment *handler.InvestmentHandler
	Wallet     *handler.WalletHandler
	Deposit    *handler.DepositHandler
	Withdrawal *handler.WithdrawalHandler
	Voucher    *handler.VoucherHandler
	Referral   *handler.ReferralHandler
	Profile    *handler.ProfileHandler
	Feed       *handler.FeedHandler
	Chat       *handler.ChatHandler
	Admin      *handler.AdminHandler
}

func New(cfg *config.Config, h *Handlers) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/health", h.Home.Health)

	api := r.Group("/api")

	// Public endpoints, rate limited to keep scrapers and brute force out.
	public := api.Group("")
	public.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(60, time.Minute)))
	{
		public.GET("/home", h.Home.Home)
		public.GET("/banking-info", h.Home.BankingInfo)
		public.GET("/feed", h.Feed.Feed)
		public.POST("/auth/register", h.Auth.Register)
		public.POST("/auth/login", h.Auth.Login)
		public.POST("/auth/refresh", h.Auth.Refresh)
	}

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(&cfg.JWT))
	{
		authed.POST("/auth/change-password", h.Auth.ChangePassword)
		authed.POST("/auth/delete-account", h.Auth.DeleteAccount)

		authed.GET("/dashboard", h.Dashboard.Dashboard)
		authed.GET("/tiers", h.Tier.List)

		authed.GET("/investments", h.Investment.List)
		authed.POST("/investments", h.Investment.Invest)
		authed.POST("/investments/:id/cash-out", h.Investment.CashOut)
		authed.GET("/investments/:id/cash-out", h.Investment.CheckCashOut)

		authed.GET("/wallet", h.Wallet.Get)
		authed.GET("/wallet/transactions", h.Wallet.Transactions)

		authed.POST("/deposits", h.Deposit.Create)
		authed.GET("/deposits", h.Deposit.List)

		authed.POST("/withdrawals", h.Withdrawal.Create)
		authed.GET("/withdrawals", h.Withdrawal.List)

		authed.POST("/vouchers", h.Voucher.Create)
		authed.GET("/vouchers", h.Voucher.List)

		authed.GET("/referrals", h.Referral.Overview)

		authed.GET("/profile", h.Profile.Get)
		authed.PUT("/profile", h.Profile.Update)
		authed.POST("/profile/image", h.Profile.UploadImage)

		authed.POST("/chat", h.Chat.Ask)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(&cfg.JWT), middleware.AdminRequired())
	{
		admin.GET("/dashboard", h.Admin.Dashboard)

		admin.GET("/deposits", h.Admin.ListDeposits)
		admin.POST("/deposits/:id/approve", h.Admin.ApproveDeposit)
		admin.POST("/deposits/:id/reject", h.Admin.RejectDeposit)
		admin.POST("/deposits/bulk", h.Admin.BulkDeposits)
		admin.GET("/deposits/verify", h.Admin.VerifyDeposits)

		admin.GET("/withdrawals", h.Admin.ListWithdrawals)
		admin.POST("/withdrawals/:id/approve", h.Admin.ApproveWithdrawal)
		admin.POST("/withdrawals/:id/reject", h.Admin.RejectWithdrawal)

		admin.GET("/vouchers", h.Admin.ListVouchers)
		admin.POST("/vouchers/:id/approve", h.Admin.ApproveVoucher)
		admin.POST("/vouchers/:id/reject", h.Admin.RejectVoucher)

		admin.GET("/users", h.Admin.ListUsers)
		admin.GET("/users/:id", h.Admin.GetUser)
		admin.POST("/users/:id/promote", h.Admin.PromoteUser)
		admin.DELETE("/users/:id", h.Admin.DeleteUser)

		admin.POST("/tiers", h.Admin.CreateTier)
		admin.PUT("/tiers/:id", h.Admin.UpdateTier)

		admin.GET("/specials", h.Admin.ListSpecials)
		admin.POST("/specials", h.Admin.CreateSpecial)

		admin.GET("/activity", h.Admin.ActivityLog)

		admin.GET("/backups", h.Admin.ListBackups)
		admin.POST("/backups", h.Admin.RecordBackup)
	}

	return r
}
