package app

import (
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lorf543/payroll-sub000/internal/auth"
	"github.com/lorf543/payroll-sub000/internal/authsession"
	"github.com/lorf543/payroll-sub000/internal/autologout"
	"github.com/lorf543/payroll-sub000/internal/bootstrap"
	"github.com/lorf543/payroll-sub000/internal/messaging/kafka"
	"github.com/lorf543/payroll-sub000/internal/middleware"
	"github.com/lorf543/payroll-sub000/internal/rbac"
	"github.com/lorf543/payroll-sub000/internal/registry"
	"github.com/lorf543/payroll-sub000/internal/shared/counter"
	"github.com/lorf543/payroll-sub000/internal/workday"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	loc *time.Location,
) error {
	logger := zap.L()

	// --- Repositories ---
	registryRepo := registry.NewRepository(gormDB)
	workdayRepo := workday.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}

	// --- Services ---
	presence := registry.NewPresence(registryRepo, logger)
	rateResolver := registry.NewRateResolver(registryRepo, logger)
	employeeFactory := registry.NewEmployeeFactory(registryRepo, counterRepo)
	sessionStore := authsession.NewStore(rdb)
	auditLogger := bootstrap.NewZapAuditLogger(logger)

	workdayService := workday.NewServiceWithOutbox(db, workdayRepo, rateResolver, outboxRepo, loc)
	authService := auth.NewService(authRepo, presence, sessionStore)
	autologoutService := autologout.NewService(
		registryRepo, presence, workdayService, sessionStore, auditLogger, logger, loc)

	// --- Handlers ---
	registryHandler := registry.NewHandler(employeeFactory, registryRepo)
	workdayHandler := workday.NewHandler(workdayService)
	authHandler := auth.NewHandler(authService)
	autologoutHandler := autologout.NewHandler(autologoutService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(middleware.Idempotency(rdb))
	{
		auth.RegisterRoutes(api, authHandler)
		registry.RegisterRoutes(api, registryHandler, enforcer)
		workday.RegisterRoutes(api, workdayHandler, enforcer)
		autologout.RegisterRoutes(api, autologoutHandler, enforcer)
	}

	return nil
}
