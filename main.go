package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"

	"github.com/finassist/backend/api"
	"github.com/finassist/backend/config"
	"github.com/finassist/backend/db"
	_ "github.com/finassist/backend/docs"
)

// @title Finance Assistant API
// @version 1.0
// @description Personal-finance tracking backend: transactions, savings
// @description goals and user accounts behind bearer-token auth.
// @BasePath /

// @SecurityDefinitions.apikey ApiKeyAuth
// @In header
// @Name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}

	cfg := config.Load()

	storage, err := db.NewStorage(cfg.PostgresURL)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer storage.Close()

	handler := api.NewHandler(storage, cfg.JWTSecret, cfg.TokenLifetime)

	r := gin.Default()
	registerRoutes(r, handler)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

func registerRoutes(r *gin.Engine, handler *api.Handler) {
	root := r.Group("/api")

	root.POST("/auth/register", handler.Register)
	root.POST("/auth/login", handler.Login)

	protected := root.Group("/", handler.AuthMiddleware())
	protected.GET("/auth/me", handler.Me)

	protected.PATCH("/users/update", handler.UpdateProfile)
	protected.PATCH("/users/update-password", handler.UpdatePassword)

	protected.POST("/transactions", handler.CreateTransaction)
	protected.GET("/transactions", handler.GetTransactions)
	protected.GET("/transactions/:id", handler.GetTransaction)
	protected.PATCH("/transactions/:id", handler.UpdateTransaction)
	protected.DELETE("/transactions/:id", handler.DeleteTransaction)

	protected.POST("/savings-goals", handler.CreateSavingsGoal)
	protected.GET("/savings-goals", handler.GetSavingsGoals)
	protected.GET("/savings-goals/:id", handler.GetSavingsGoal)
	protected.PATCH("/savings-goals/:id", handler.UpdateSavingsGoal)
	protected.DELETE("/savings-goals/:id", handler.DeleteSavingsGoal)
	protected.PATCH("/savings-goals/:id/contribute", handler.ContributeToSavingsGoal)

	protected.GET("/dashboard/summary", handler.GetSummary)
}
