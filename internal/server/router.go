package server

import (
	"net/http"
	"time"

	"dayflow/internal/config"
	"dayflow/internal/handlers"
	"dayflow/internal/middleware"
	"dayflow/internal/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(zap.L()))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Dayflow HRMS API is running"})
	})

	api := r.Group("/api")

	// public: bootstrap probe, one-time setup, login
	api.GET("/company/exists", handlers.CompanyExists)
	api.POST("/company/setup", handlers.SetupCompany)

	loginLimiter := middleware.NewRateLimiter(cfg.LoginRateLimit)
	api.POST("/auth/login", loginLimiter.Middleware(), handlers.Login(cfg))
	api.POST("/auth/logout", handlers.Logout)

	auth := api.Group("/")
	auth.Use(middleware.RequireAuth([]byte(cfg.JWTSecret)))

	admin := middleware.RequireRole(models.RoleAdmin)

	auth.GET("/auth/me", handlers.Me)
	auth.POST("/auth/change-password", handlers.ChangePassword)

	auth.GET("/company", handlers.GetCompany)

	auth.GET("/employees", handlers.ListEmployees)
	auth.POST("/employees", admin, handlers.CreateEmployee)
	auth.GET("/employees/:id", handlers.GetEmployee)
	auth.PUT("/employees/:id", handlers.UpdateEmployee)
	auth.DELETE("/employees/:id", admin, handlers.DeleteEmployee)

	auth.POST("/attendance/checkin", handlers.CheckIn)
	auth.POST("/attendance/checkout", handlers.CheckOut)
	auth.GET("/attendance/daily", handlers.DailyAttendance)
	auth.GET("/attendance/weekly", handlers.WeeklyAttendance)
	auth.GET("/attendance/user/:id", admin, handlers.UserAttendance)

	auth.POST("/leave/request", handlers.CreateLeaveRequest)
	auth.GET("/leave/my-requests", handlers.MyLeaveRequests)
	auth.GET("/leave/pending", admin, handlers.PendingLeaveRequests)
	auth.GET("/leave/all", admin, handlers.AllLeaveRequests)
	auth.PUT("/leave/:id/approve", admin, handlers.ApproveLeave)
	auth.PUT("/leave/:id/reject", admin, handlers.RejectLeave)

	auth.GET("/payroll/my-payroll", handlers.MyPayroll)
	auth.GET("/payroll", admin, handlers.ListPayroll)
	auth.GET("/payroll/user/:id", admin, handlers.UserPayroll)
	auth.POST("/payroll", admin, handlers.CreatePayroll)
	auth.PUT("/payroll/:id", admin, handlers.UpdatePayroll)
	auth.DELETE("/payroll/:id", admin, handlers.DeletePayroll)

	auth.GET("/audit", admin, handlers.ListAuditLogs)

	return r
}
