package payroll

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-payroll/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	runs := r.Group("/payroll-runs")
	{
		runs.GET("", handler.List)
		runs.GET("/:number", handler.Get)
		runs.GET("/:number/details", handler.ListDetails)
		runs.GET("/:number/payslips", handler.ListPayslips)
		runs.GET("/:number/payslips/:employeeId/download", handler.DownloadPayslip)

		if redisClient != nil {
			runs.POST("", middleware.Idempotency(redisClient), handler.Create)
		} else {
			runs.POST("", handler.Create)
		}
		runs.PATCH("/:number/period", handler.UpdatePeriod)
		runs.POST("/:number/start", handler.StartInitiation)
		runs.POST("/:number/draft", handler.GenerateDraft)
		runs.POST("/:number/hr-events", handler.ProcessHREvents)
		runs.POST("/:number/submit", handler.SubmitForReview)
		runs.POST("/:number/reject", handler.Reject)
		runs.POST("/:number/lock", handler.Lock)
		runs.POST("/:number/mark-paid", handler.MarkPaid)
		runs.POST("/:number/payslips", handler.GeneratePayslips)
	}
}
