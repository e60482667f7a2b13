package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/lorf543/payroll-sub000/internal/authsession"
	"github.com/lorf543/payroll-sub000/internal/autologout"
	"github.com/lorf543/payroll-sub000/internal/bootstrap"
	"github.com/lorf543/payroll-sub000/internal/messaging/kafka"
	"github.com/lorf543/payroll-sub000/internal/messaging/kafka/producer"
	"github.com/lorf543/payroll-sub000/internal/registry"
	"github.com/lorf543/payroll-sub000/internal/shared/connection"
	"github.com/lorf543/payroll-sub000/internal/workday"
)

// RunWorker starts the background side of the system: the outbox
// drainer and the auto-logout sweep scheduler. Blocks until a shutdown
// signal arrives.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	loc, err := loadLocation()
	if err != nil {
		return err
	}

	registryRepo := registry.NewRepository(gormDB)
	workdayRepo := workday.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	presence := registry.NewPresence(registryRepo, zap.L())
	rateResolver := registry.NewRateResolver(registryRepo, zap.L())
	sessionStore := authsession.NewStore(redisClient)
	auditLogger := bootstrap.NewZapAuditLogger(zap.L())

	workdayService := workday.NewServiceWithOutbox(sqlDB, workdayRepo, rateResolver, outboxRepo, loc)
	sweepService := autologout.NewService(
		registryRepo, presence, workdayService, sessionStore, auditLogger, zap.L(), loc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)

	go autologout.RunScheduler(ctx, sweepService, sweepInterval(), zap.L())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

func sweepInterval() time.Duration {
	if v := os.Getenv("AUTOLOGOUT_SWEEP_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return time.Minute
}
