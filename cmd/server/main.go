package main

import (
	"fmt"
	"log"

	"bizmate/internal/config"
	"bizmate/internal/email/noop"
	"bizmate/internal/email/ses"
	"bizmate/internal/handler"
	"bizmate/internal/port"
	"bizmate/internal/preview"
	"bizmate/internal/repository/postgres"
	"bizmate/internal/router"
	"bizmate/internal/service"
	s3storage "bizmate/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	docRepo := postgres.NewDocumentRepo(db)
	attRepo := postgres.NewAttachmentRepo(db)
	policyRepo := postgres.NewPolicyRepo(db)
	boardRepo := postgres.NewBoardRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	var sender port.EmailSender
	if cfg.Email.Provider == "ses" {
		sender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.FrontendURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		sender = noop.NewNoopSender()
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	approvalSvc := service.NewApprovalService(docRepo, attRepo, userRepo, policyRepo, sender)
	attachmentSvc := service.NewAttachmentService(attRepo, s3Client, preview.NewPDFExtractor(), &cfg.S3)
	boardSvc := service.NewBoardService(boardRepo)
	userSvc := service.NewUserService(userRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	approvalH := handler.NewApprovalHandler(approvalSvc)
	attachmentH := handler.NewAttachmentHandler(attachmentSvc)
	boardH := handler.NewBoardHandler(boardSvc)
	userH := handler.NewUserHandler(userSvc)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, authH, approvalH, attachmentH, boardH, userH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
