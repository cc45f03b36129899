package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	"go-payroll/internal/leave"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/middleware"
	"go-payroll/internal/payroll"
	"go-payroll/internal/payrollconfig"
	"go-payroll/internal/penalty"
	"go-payroll/internal/shared/counter"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))
	router.Use(middleware.RateLimitByIP(rate.Limit(50), 100))
	router.Use(middleware.RateLimitByActor(rate.Limit(20), 40))

	payrollRepo := payroll.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	payrollService := payroll.NewServiceWithOutbox(db, payrollRepo, payroll.Collaborators{
		Directory:  employee.NewDirectory(gormDB),
		Config:     payrollconfig.NewStore(gormDB),
		Attendance: attendance.NewReader(gormDB),
		Leaves:     leave.NewReader(gormDB),
		Penalties:  penalty.NewReader(gormDB),
		Counter:    counter.NewRepository(gormDB),
	}, outboxRepo)

	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)

	api := router.Group("/api/v1")
	{
		payroll.RegisterRoutes(api, payrollHandler, rdb)
	}

	return nil
}
