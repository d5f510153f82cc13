package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"task-service/internal/audit"
	"task-service/internal/auth"
	"task-service/internal/config"
	"task-service/internal/http"
	"task-service/internal/infra/cache"
	"task-service/internal/infra/s3"
	"task-service/internal/notify"
	"task-service/internal/repository/postgres"
	"task-service/pkg/mailer"

	"github.com/joho/godotenv"
)

const (
	envFilePath      = ".env"
	serverAddrPrefix = ":"
	signalBufferSize = 1
	logOutputFlags   = log.LstdFlags | log.Lshortfile
)

var shutdownSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
}

func main() {
	if err := godotenv.Load(envFilePath); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(logOutputFlags)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Println("Configuration loaded successfully")

	db, err := postgres.New(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Database connection established")

	orgRepo := postgres.NewOrganizationRepository(db)
	deptRepo := postgres.NewDepartmentRepository(db)
	userRepo := postgres.NewUserRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	attachmentRepo := postgres.NewAttachmentRepository(db)
	commentRepo := postgres.NewCommentRepository(db)
	vendorRepo := postgres.NewVendorRepository(db)
	materialRepo := postgres.NewMaterialRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	s3Client, err := s3.NewClient(&cfg.AWS)
	if err != nil {
		log.Fatalf("Failed to create S3 client: %v", err)
	}

	log.Println("S3 client initialized")

	urlCache := cache.NewURLCache()
	auditLogger := audit.NewLogger(db.Pool)

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryDuration)
	authMiddleware := auth.NewMiddleware(jwtService, userRepo, orgRepo)
	policyMiddleware := auth.NewPolicyMiddleware(auditLogger, auth.PolicyRepos{
		Tasks:         taskRepo,
		Users:         userRepo,
		Organizations: orgRepo,
		Departments:   deptRepo,
		Attachments:   attachmentRepo,
		Comments:      commentRepo,
		Vendors:       vendorRepo,
		Materials:     materialRepo,
		Notifications: notificationRepo,
	})

	var mailService *mailer.EmailService
	if cfg.Mail.ResendAPIKey != "" {
		mailService, err = mailer.NewEmailService(mailer.EmailServiceConfig{
			Providers: []mailer.EmailProvider{
				mailer.NewResendProvider(mailer.ResendConfig{APIKey: cfg.Mail.ResendAPIKey}),
			},
			DefaultFrom: cfg.Mail.FromAddress,
		})
		if err != nil {
			log.Fatalf("Failed to configure mail service: %v", err)
		}
		log.Println("Outbound mail enabled")
	} else {
		log.Println("RESEND_API_KEY not set, outbound mail disabled")
	}

	notifier := notify.New(notificationRepo, userRepo, mailService)

	serverDeps := &http.ServerDependencies{
		Config:           cfg,
		DB:               db,
		OrgRepo:          orgRepo,
		DeptRepo:         deptRepo,
		UserRepo:         userRepo,
		TaskRepo:         taskRepo,
		AttachmentRepo:   attachmentRepo,
		CommentRepo:      commentRepo,
		VendorRepo:       vendorRepo,
		MaterialRepo:     materialRepo,
		NotificationRepo: notificationRepo,
		AttachmentStore:  s3Client,
		URLCache:         urlCache,
		JWTService:       jwtService,
		AuthMiddleware:   authMiddleware,
		PolicyMiddleware: policyMiddleware,
		Notifier:         notifier,
	}

	server := http.NewServer(serverDeps)

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := server.Start(serverAddrPrefix + cfg.Server.Port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, signalBufferSize)
	signal.Notify(quit, shutdownSignals...)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
