package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/edusphere/backend/internal/app/controllers"
	"github.com/edusphere/backend/internal/app/models"
	"github.com/edusphere/backend/internal/app/models/dto"
	"github.com/edusphere/backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	subscriptionController *controllers.SubscriptionController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
		auth.POST("/logout", authController.Logout)

		auth.GET("/me", authMiddleware.JWTAuth(), authController.Profile)
	}

	// --- Course routes ---
	courses := v1.Group("/courses")
	{
		// Public routes
		courses.POST("/s", courseController.StoreCourse)
		courses.GET("", courseController.GetAllCourses)

		// Lecture listing requires an active subscription; admins pass
		// the gate without one
		courses.GET("/:id", authMiddleware.JWTAuth(), authMiddleware.SubscriberRequired(), courseController.GetLectures)

		// Admin-only routes
		coursesAdmin := courses.Group("")
		coursesAdmin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(models.RoleAdmin))
		{
			coursesAdmin.POST("", courseController.CreateCourse)
			coursesAdmin.PUT("/:id", courseController.UpdateCourse)
			coursesAdmin.DELETE("/:id", courseController.DeleteCourse)
			coursesAdmin.POST("/:id", courseController.AddLecture)
			coursesAdmin.PUT("/:id/lecture/:lectureId", courseController.UpdateLecture)
			coursesAdmin.DELETE("/:id/lecture/:lectureId", courseController.DeleteLecture)
		}
	}

	// --- Subscription routes ---
	subscriptions := v1.Group("/subscriptions")
	subscriptions.Use(authMiddleware.JWTAuth())
	{
		subscriptions.POST("", subscriptionController.Subscribe)
		subscriptions.DELETE("", subscriptionController.Cancel)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewSuccessResponse("ok"))
	})

	// Swagger routes are set up in bootstrap.go already
}
