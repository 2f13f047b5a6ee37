package main

import (
	"log"
	"os"
	"taskhabit-api/internal/database"
	"taskhabit-api/internal/routes"
)

func main() {
	// Init database
	database.InitDB()

	// Setup the routes (public and protected routes)
	ginRoutes := routes.SetupRoutes()

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8008"
	}
	log.Printf("Server starting on port :%s", port)
	log.Println("API endpoints:")
	log.Println("  POST   /api/register")
	log.Println("  POST   /api/login")
	log.Println("  GET    /api/me")
	log.Println("  GET    /api/tasks")
	log.Println("  POST   /api/tasks")
	log.Println("  PATCH  /api/tasks/:id/toggle")
	log.Println("  GET    /api/habits")
	log.Println("  POST   /api/habits")
	log.Println("  POST   /api/habits/:id/toggle")
	log.Println("  GET    /api/analytics/summary")
	log.Println("  GET    /api/ws")
	log.Println("  GET    /health")

	if err := ginRoutes.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
