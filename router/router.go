package router

import (
	"net/http"
	"time"

	"budget/api"
	"budget/config"
	_ "budget/docs"
	"budget/middleware"
	"budget/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 业务服务
	validator := service.NewValidator(cfg.Profile.AllowedEmailDomains)
	approval := service.NewApprovalService(validator)
	stats := service.NewStatsService()

	// API v1 路由组（供 App 和后台使用）
	v1 := r.Group("/api/v1")
	{
		// 认证相关路由（无需登录）
		authHandler := api.NewAuthHandler(cfg)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", middleware.LoginRateLimit(5, time.Minute), authHandler.Login)

			// 邮箱验证相关
			auth.POST("/send-code", authHandler.SendVerificationCode)
			auth.POST("/verify-email", authHandler.VerifyEmail)
		}

		// 消费类别与收入来源（无需登录）
		expenseHandler := api.NewExpenseHandler(validator)
		incomeHandler := api.NewIncomeHandler(validator)
		v1.GET("/categories", expenseHandler.GetCategories)
		v1.GET("/income-sources", incomeHandler.GetSources)

		// 需要 JWT 认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			// 用户相关
			authorized.GET("/auth/profile", authHandler.GetProfile)

			// 资料变更（姓名/邮箱修改走审批流程）
			profileHandler := api.NewProfileHandler(approval)
			authorized.PUT("/profile", profileHandler.UpdateProfile)
			authorized.GET("/profile/change-requests", profileHandler.GetMyChangeRequests)

			// 收入相关
			incomes := authorized.Group("/incomes")
			{
				incomes.POST("", incomeHandler.Create)
				incomes.GET("", incomeHandler.List)
				incomes.GET("/:id", incomeHandler.Get)
				incomes.PUT("/:id", incomeHandler.Update)
				incomes.DELETE("/:id", incomeHandler.Delete)
			}

			// 消费记录相关
			expenses := authorized.Group("/expenses")
			{
				expenses.POST("", expenseHandler.Create)
				expenses.GET("", expenseHandler.List)
				expenses.GET("/:id", expenseHandler.Get)
				expenses.PUT("/:id", expenseHandler.Update)
				expenses.DELETE("/:id", expenseHandler.Delete)
			}

			// 储蓄目标相关
			savingHandler := api.NewSavingHandler(validator)
			savings := authorized.Group("/savings")
			{
				savings.POST("", savingHandler.Create)
				savings.GET("", savingHandler.List)
				savings.GET("/:id", savingHandler.Get)
				savings.PUT("/:id", savingHandler.Update)
				savings.DELETE("/:id", savingHandler.Delete)
			}

			// 月度财务摘要
			dashboardHandler := api.NewDashboardHandler(stats)
			authorized.GET("/dashboard/summary", dashboardHandler.GetSummary)

			// 商品比价
			priceHandler := api.NewPriceComparisonHandler()
			authorized.GET("/price-comparisons", priceHandler.List)
		}

		// 管理员路由（JWT + 管理员校验）
		adminHandler := api.NewAdminHandler(approval, stats)
		admin := v1.Group("/admin")
		admin.Use(middleware.JWTAuth(), middleware.AdminOnly())
		{
			admin.GET("/change-requests", adminHandler.ListChangeRequests)
			admin.POST("/change-requests/:id/approve", adminHandler.ApproveChangeRequest)
			admin.POST("/change-requests/:id/deny", adminHandler.DenyChangeRequest)
			admin.GET("/dashboard", adminHandler.GetDashboard)
			admin.GET("/users", adminHandler.GetAllUsers)

			// 数据报表
			reportsHandler := api.NewReportsHandler(stats)
			exportHandler := api.NewExportHandler(reportsHandler)
			reports := admin.Group("/reports")
			{
				reports.GET("", reportsHandler.ListReports)
				reports.GET("/user-growth", reportsHandler.PreviewUserGrowth)
				reports.GET("/financial-overview", reportsHandler.PreviewFinancialOverview)
				reports.GET("/savings-performance", reportsHandler.PreviewSavingsPerformance)
				reports.GET("/:type/csv", exportHandler.DownloadCSV)
				reports.GET("/:type/excel", exportHandler.DownloadExcel)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
