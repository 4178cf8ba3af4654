package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"careerhub/internal/api/middleware"
	"careerhub/internal/auth"
	"careerhub/internal/config"
	"careerhub/internal/store"
)

// RegisterRoutes 注册 API 路由，不包含 /api 前缀。
func RegisterRoutes(
	router *gin.Engine,
	st *store.Store,
	authService *auth.AuthService,
	redisClient redis.UniversalClient,
	storageClient ResumeStorage,
	uploadCfg config.UploadConfig,
	logger *slog.Logger,
) {
	authHandler := NewAuthHandler(st.Users, authService, redisClient, logger)
	jobHandler := NewJobHandler(st.Jobs)
	applicationHandler := NewApplicationHandler(st.Applications, st.Jobs)
	alertHandler := NewAlertHandler(st.Alerts)
	questionHandler := NewQuestionHandler(st.Questions)
	resumeHandler := NewResumeHandler(st.Resumes, storageClient, redisClient, uploadCfg.ClamdAddr, uploadCfg.MaxBytes, uploadCfg.MaxUploadsPerDay)
	authMiddleware := middleware.AuthMiddleware(authService)

	v1 := router.Group("/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
		}

		jobGroup := v1.Group("/jobs")
		jobGroup.Use(authMiddleware)
		{
			jobGroup.GET("", jobHandler.ListJobs)
			jobGroup.POST("", jobHandler.CreateJob)
			jobGroup.GET("/:id", jobHandler.GetJob)
			jobGroup.PATCH("/:id", jobHandler.UpdateJob)
			jobGroup.DELETE("/:id", jobHandler.DeleteJob)
		}

		applicationGroup := v1.Group("/applications")
		applicationGroup.Use(authMiddleware)
		{
			applicationGroup.GET("", applicationHandler.ListApplications)
			applicationGroup.POST("", applicationHandler.CreateApplication)
			applicationGroup.GET("/:id", applicationHandler.GetApplication)
			applicationGroup.PATCH("/:id", applicationHandler.UpdateApplication)
			applicationGroup.DELETE("/:id", applicationHandler.WithdrawApplication)
		}

		alertGroup := v1.Group("/alerts")
		alertGroup.Use(authMiddleware)
		{
			alertGroup.GET("", alertHandler.ListAlerts)
			alertGroup.POST("", alertHandler.CreateAlert)
			alertGroup.GET("/:id", alertHandler.GetAlert)
			alertGroup.PATCH("/:id", alertHandler.UpdateAlert)
			alertGroup.DELETE("/:id", alertHandler.DeleteAlert)
			alertGroup.POST("/:id/toggle", alertHandler.ToggleAlert)
		}

		questionGroup := v1.Group("/questions")
		questionGroup.Use(authMiddleware)
		{
			questionGroup.GET("", questionHandler.ListQuestions)
			questionGroup.POST("", questionHandler.CreateQuestion)
			questionGroup.GET("/:id", questionHandler.GetQuestion)
		}

		resumeGroup := v1.Group("/resumes")
		resumeGroup.Use(authMiddleware)
		{
			resumeGroup.GET("", resumeHandler.ListResumes)
			resumeGroup.POST("", resumeHandler.UploadResume)
			resumeGroup.DELETE("/:id", resumeHandler.DeleteResume)
			resumeGroup.POST("/:id/default", resumeHandler.SetDefaultResume)
			resumeGroup.GET("/:id/download-link", resumeHandler.GetDownloadLink)
		}
	}
}
