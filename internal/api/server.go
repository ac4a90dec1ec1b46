// @title League Service API
// @version 1.0
// @description Registration, referral, payment and support endpoints.
// @host localhost:3000
// @BasePath /
// @schemes http
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer <JWT>

package api

import (
	"context"
	"fmt"
	"time"

	"github.com/SundayYogurt/league_service/config"
	"github.com/SundayYogurt/league_service/infra/cache"
	"github.com/SundayYogurt/league_service/infra/queue"
	"github.com/SundayYogurt/league_service/internal/api/rest/handlers"
	"github.com/SundayYogurt/league_service/internal/clients/stripe"
	"github.com/SundayYogurt/league_service/internal/domain"
	"github.com/SundayYogurt/league_service/internal/helper"
	"github.com/SundayYogurt/league_service/internal/interfaces"
	"github.com/SundayYogurt/league_service/internal/repository"
	"github.com/SundayYogurt/league_service/internal/services"
	"github.com/SundayYogurt/league_service/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// shared by every instance so only one runs migrations at a time
const migrateLockID int64 = 20260222

func StartServer(cfg config.Config, log *logger.Logger) {
	app := fiber.New()
	RegisterSwagger(app)

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: cfg.BaseURL != "*",
	}))

	// ---------- DB ----------
	db, err := connectDB(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Info("database connected")

	if err := migrate(db); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Info("migration successful")

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
		log,
	)
	defer kafkaProducer.Close()

	var guard interfaces.SubmissionGuard
	if cfg.RedisAddr != "" {
		rdb, err := cache.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
		if err != nil {
			log.Fatalf("redis init error: %v", err)
		}
		defer rdb.Close()
		guard = cache.NewSubmissionGuard(rdb, "league:")
	} else {
		log.Warn("REDIS_ADDR not set, duplicate submission guard disabled")
	}

	processor, err := stripe.New(cfg.StripeSecretKey)
	if err != nil {
		log.Fatalf("stripe init error: %v", err)
	}

	authHelper := helper.SetupAuth(cfg.AccessSecret, cfg.TokenTTL)

	// ---------- Repositories ----------
	txManager := repository.NewTxManager(db)
	userRepo := repository.NewUserRepository(db)
	identityRepo := repository.NewIdentityRepository(db)
	cashRepo := repository.NewCashPaymentRepository(db)
	ticketRepo := repository.NewSupportTicketRepository(db)
	referralRepo := repository.NewReferralRepository(db)

	// ---------- Services ----------
	identitySvc := services.NewIdentityService(identityRepo, userRepo, authHelper, kafkaProducer, log)
	referralSvc := services.NewReferralService(userRepo, referralRepo, services.NewCodeAllocator(userRepo), log)
	userSvc := services.NewUserService(
		userRepo,
		cashRepo,
		identityRepo,
		txManager,
		identitySvc,
		referralSvc,
		guard,
		authHelper,
		kafkaProducer,
		log,
	)
	paymentSvc := services.NewPaymentService(
		userRepo,
		cashRepo,
		txManager,
		processor,
		userSvc,
		services.CardCharge{Amount: cfg.CardPaymentAmount, Currency: cfg.CardPaymentCurrency},
		kafkaProducer,
		log,
	)
	supportSvc := services.NewSupportService(ticketRepo, userSvc, kafkaProducer, log)

	seedAdmin(userSvc, cfg, log)

	// ---------- Handlers ----------
	handlers.NewAuthHandler(identitySvc).SetupRoutes(app)
	handlers.NewUserHandler(userSvc, identitySvc).SetupRoutes(app)
	handlers.NewReferralHandler(referralSvc, identitySvc).SetupRoutes(app)
	handlers.NewPaymentHandler(paymentSvc, userSvc, identitySvc).SetupRoutes(app)
	handlers.NewSupportHandler(supportSvc).SetupRoutes(app)
	handlers.NewAdminHandler(userSvc, paymentSvc, supportSvc, identitySvc).SetupRoutes(app)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	log.Info("listening on ", cfg.ServerPort)
	if err := app.Listen(cfg.ServerPort); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func connectDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN is empty")
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Error),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetMaxOpenConns(200)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// migrate runs AutoMigrate under a postgres advisory lock.
func migrate(db *gorm.DB) error {
	return db.Connection(func(conn *gorm.DB) error {
		if err := conn.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
			return fmt.Errorf("migration lock: %w", err)
		}
		defer conn.Exec("SELECT pg_advisory_unlock(?)", migrateLockID)

		return conn.AutoMigrate(
			&domain.IdentityAccount{},
			&domain.User{},
			&domain.CashPaymentRequest{},
			&domain.SupportTicket{},
			&domain.ReferralReward{},
		)
	})
}

func seedAdmin(users services.UserService, cfg config.Config, log *logger.Logger) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Warn("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin bootstrap")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := users.SeedAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminUsername)
	if err != nil {
		log.Fatalf("admin bootstrap error: %v", err)
	}
	log.WithField("referralCode", admin.ReferralCode).Info("admin ready")
}
