package routes

import (
	"taskhabit-api/internal/handlers"
	"taskhabit-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes() *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "TaskHabit API is running",
		})
	})

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/register", handlers.Register)
		api.POST("/login", handlers.Login)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		// Profile
		protectedRoutes.GET("/me", handlers.GetMe)

		// Task endpoints
		protectedRoutes.GET("/tasks", handlers.GetTasks)
		protectedRoutes.GET("/tasks/:id", handlers.GetTaskByID)
		protectedRoutes.POST("/tasks", handlers.CreateTask)
		protectedRoutes.PUT("/tasks/:id", handlers.UpdateTask)
		protectedRoutes.PATCH("/tasks/:id/toggle", handlers.ToggleTask)
		protectedRoutes.DELETE("/tasks/:id", handlers.DeleteTask)

		// Habit endpoints
		protectedRoutes.GET("/habits", handlers.GetHabits)
		protectedRoutes.GET("/habits/:id", handlers.GetHabitByID)
		protectedRoutes.POST("/habits", handlers.CreateHabit)
		protectedRoutes.PUT("/habits/:id", handlers.UpdateHabit)
		protectedRoutes.POST("/habits/:id/pause", handlers.PauseHabit)
		protectedRoutes.POST("/habits/:id/resume", handlers.ResumeHabit)
		protectedRoutes.POST("/habits/:id/toggle", handlers.ToggleHabitLog)
		protectedRoutes.DELETE("/habits/:id", handlers.DeleteHabit)

		// Analytics endpoints
		protectedRoutes.GET("/analytics/summary", handlers.GetAnalyticsSummary)
		protectedRoutes.GET("/analytics/weekly", handlers.GetWeeklyAnalytics)
		protectedRoutes.GET("/analytics/monthly", handlers.GetMonthlyAnalytics)
		protectedRoutes.GET("/analytics/productive-days", handlers.GetProductiveDays)
		protectedRoutes.GET("/analytics/habit-consistency", handlers.GetHabitConsistency)

		// Realtime refresh events
		protectedRoutes.GET("/ws", handlers.WebSocketHandler)
	}

	return ginRouter
}
