package app

import (
	"lms_backend/internal/config"
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	// 把配置注入请求上下文，AuthMiddleware 从这里取 JWT Secret
	router.Use(func(ctx *gin.Context) {
		ctx.Set("config", cfg)
		ctx.Next()
	})

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		// 公开接口
		api.GET("/health", c.health.Health)
		api.POST("/auth/register", c.auth.Register)
		api.POST("/auth/login", c.auth.Login)
		api.GET("/certificates/:code/verify", c.certificate.Verify)
		api.GET("/courses", c.course.ListCourses)

		// 需要登录的接口
		auth := api.Group("")
		auth.Use(middleware.AuthMiddleware())
		{
			auth.GET("/auth/profile", c.auth.GetProfile)

			auth.GET("/courses/:courseId", c.course.GetCourse)
			auth.GET("/courses/:courseId/modules", c.course.GetCourseModules)
			auth.GET("/courses/:courseId/modules/:moduleId/contents", c.course.GetModuleContents)
			auth.GET("/courses/:courseId/assignments", c.course.GetCourseAssignments)

			auth.POST("/courses/:courseId/enroll", c.enrollment.Enroll)
			auth.GET("/my/enrollments", c.enrollment.MyEnrollments)
			auth.GET("/my/certificates", c.certificate.MyCertificates)
			auth.POST("/my/completion/refresh", c.viewer.RefreshMyCompletion)

			// 课程查看器（进度引擎的对外入口）
			auth.GET("/courses/:courseId/viewer", c.viewer.GetViewer)
			auth.DELETE("/courses/:courseId/viewer", c.viewer.DropSession)
			auth.POST("/courses/:courseId/contents/:contentId/watch", c.viewer.ReportWatch)
			auth.POST("/courses/:courseId/modules/:moduleId/contents/:contentId/complete", c.viewer.MarkContentComplete)
			auth.GET("/courses/:courseId/modules/:moduleId/progress", c.viewer.GetModuleProgress)

			auth.POST("/courses/:courseId/ratings", c.rating.RateCourse)
			auth.GET("/courses/:courseId/ratings/mine", c.rating.MyRating)

			// 课程编辑（教师/管理员）
			edit := auth.Group("")
			edit.Use(middleware.RoleMiddleware(model.Teacher, model.Admin))
			{
				edit.POST("/courses", c.course.CreateCourse)
				edit.PUT("/courses/:courseId", c.course.UpdateCourse)
				edit.POST("/courses/:courseId/modules", c.course.CreateModule)
				edit.POST("/courses/:courseId/modules/:moduleId/contents", c.content.CreateContent)
				edit.POST("/courses/:courseId/assignments", c.content.CreateAssignment)
				edit.POST("/courses/:courseId/videos", c.content.UploadVideo)
			}
		}
	}
}
