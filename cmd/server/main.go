package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"safechain/config"
	"safechain/internal/database"
	"safechain/internal/handler"
	"safechain/internal/repository"
	"safechain/internal/router"
	"safechain/internal/service"
	"safechain/pkg/cloudinary"
)

func main() {
	cfg := config.Load()

	db, err := database.New(&cfg.Database)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := database.SeedTiers(db); err != nil {
		log.Fatalf("tier seeding failed: %v", err)
	}
	if err := database.SeedAdmin(db, os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD")); err != nil {
		log.Fatalf("admin seeding failed: %v", err)
	}

	uploads, err := cloudinary.NewClientFromParams(
		cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
	if err != nil {
		log.Fatalf("cloudinary init failed: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	tierRepo := repository.NewTierRepository(db)
	investmentRepo := repository.NewInvestmentRepository(db)
	depositRepo := repository.NewDepositRepository(db)
	withdrawalRepo := repository.NewWithdrawalRepository(db)
	voucherRepo := repository.NewVoucherRepository(db)
	referralRepo := repository.NewReferralRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	chatRepo := repository.NewChatRepository(db)
	specialRepo := repository.NewSpecialRepository(db)
	backupRepo := repository.NewBackupRepository(db)

	authSvc := service.NewAuthService(cfg, userRepo, walletRepo, referralRepo)
	approvalSvc := service.NewApprovalService(db, cfg, auditRepo)
	investmentSvc := service.NewInvestmentService(db, cfg, tierRepo, investmentRepo, specialRepo)
	chatSvc := service.NewChatService(cfg, chatRepo)

	sweeper := service.NewMaturitySweeper(investmentSvc, cfg.Platform.SweepInterval)
	sweeper.Start()
	defer sweeper.Stop()

	h := &router.Handlers{
		Auth:       handler.NewAuthHandler(authSvc),
		Home:       handler.NewHomeHandler(userRepo, investmentRepo, referralRepo),
		Dashboard:  handler.NewDashboardHandler(userRepo, walletRepo, investmentRepo, depositRepo, referralRepo, investmentSvc),
		Tier:       handler.NewTierHandler(userRepo, tierRepo, investmentRepo, specialRepo, investmentSvc),
		Investment: handler.NewInvestmentHandler(investmentRepo, investmentSvc),
		Wallet:     handler.NewWalletHandler(walletRepo),
		Deposit:    handler.NewDepositHandler(cfg, depositRepo, uploads),
		Withdrawal: handler.NewWithdrawalHandler(cfg, withdrawalRepo, walletRepo),
		Voucher:    handler.NewVoucherHandler(voucherRepo, uploads),
		Referral:   handler.NewReferralHandler(userRepo, referralRepo, cfg.Server.BaseURL),
		Profile:    handler.NewProfileHandler(userRepo, uploads),
		Feed:       handler.NewFeedHandler(),
		Chat:       handler.NewChatHandler(chatSvc),
		Admin: handler.NewAdminHandler(
			userRepo, depositRepo, withdrawalRepo, voucherRepo, tierRepo,
			specialRepo, auditRepo, backupRepo, walletRepo, approvalSvc),
	}

	engine := router.New(cfg, h)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
}
