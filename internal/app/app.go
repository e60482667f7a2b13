package app

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lorf543/payroll-sub000/internal/shared/connection"
)

// BuildApp connects the infrastructure and registers every module on
// the router.
func BuildApp(router *gin.Engine) error {
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
	zap.L().Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	zap.L().Info("redis connection established")

	loc, err := loadLocation()
	if err != nil {
		return err
	}

	return registerModules(router, sqlDB, gormDB, redisClient, loc)
}

// loadLocation resolves the business timezone all day boundaries and
// night windows are evaluated in.
func loadLocation() (*time.Location, error) {
	name := os.Getenv("APP_TIMEZONE")
	if name == "" {
		name = "America/Santo_Domingo"
	}
	return time.LoadLocation(name)
}
