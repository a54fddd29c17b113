package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"leo-portal-backend/config"
	"leo-portal-backend/db"
	"leo-portal-backend/handlers"
	"leo-portal-backend/logger"
	"leo-portal-backend/middleware"
	"leo-portal-backend/models"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// Fine in production, where the environment is set externally.
		fmt.Println("No .env file found, using process environment")
	}

	cfg := config.Load()
	logger.Initialize(cfg.LogLevel)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("unable to connect to database", zap.Error(err))
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := db.RunMigrations(ctx, pool); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	if err := seedAdminUser(ctx, pool, cfg); err != nil {
		logger.Warn("failed to seed admin user", zap.Error(err))
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(pool, cfg.JWTSecret)
	eventHandler := handlers.NewEventHandler(pool)
	participationHandler := handlers.NewParticipationHandler(pool)
	paymentHandler := handlers.NewPaymentHandler(pool)
	coordinatorHandler := handlers.NewCoordinatorHandler(pool)
	leaderboardHandler := handlers.NewLeaderboardHandler(pool)

	requireAuth := middleware.RequireAuth(cfg.JWTSecret)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	// Setup Gin
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Operational routes
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "LEO Club Event Portal Backend Running"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "timestamp": time.Now().Unix()})
	})
	router.GET("/db-test", func(c *gin.Context) {
		var now time.Time
		if err := pool.QueryRow(c, "SELECT NOW()").Scan(&now); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "databaseTime": now})
	})
	router.GET("/db-info", func(c *gin.Context) {
		var name string
		if err := pool.QueryRow(c, "SELECT current_database()").Scan(&name); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"current_database": name})
	})

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
		auth.GET("/me", requireAuth, authHandler.Me)
	}

	events := api.Group("/events")
	{
		events.GET("", eventHandler.GetAll)
		events.GET("/:id", eventHandler.GetByID)
		events.POST("", requireAuth, adminOnly, eventHandler.Create)
		events.PUT("/:id", requireAuth, adminOnly, eventHandler.Update)
		events.PATCH("/:id/status", requireAuth, adminOnly, eventHandler.UpdateStatus)
		events.GET("/:id/passes", eventHandler.GetPasses)

		events.GET("/:id/participations", requireAuth, participationHandler.GetByEvent)
		events.GET("/:id/coordinators", coordinatorHandler.GetByEvent)

		events.GET("/:id/leaderboard", requireAuth, leaderboardHandler.GetLeaderboard)
		events.PATCH("/:id/leaderboard", requireAuth,
			middleware.RequireRole(models.RoleAdmin, models.RoleCoordinator),
			leaderboardHandler.UpsertScore)
		events.GET("/:id/winners", requireAuth, leaderboardHandler.GetWinners)
		events.PATCH("/:id/complete", requireAuth, adminOnly, leaderboardHandler.CompleteEvent)
	}

	participations := api.Group("/participations", requireAuth)
	{
		participations.GET("", participationHandler.GetAll)
		participations.POST("", participationHandler.Create)
		participations.DELETE("/:id", participationHandler.Remove)
		participations.PATCH("/:id", participationHandler.Update)
	}

	payments := api.Group("/payments", requireAuth)
	{
		payments.POST("", paymentHandler.Create)
		payments.GET("/summary", adminOnly, paymentHandler.GetSummary)
	}

	coordinators := api.Group("/event-coordinators", requireAuth)
	{
		coordinators.GET("/me", coordinatorHandler.MyEventIDs)
		coordinators.POST("", middleware.RequireRole(models.RoleCoordinator), coordinatorHandler.Join)
		coordinators.DELETE("/:id", coordinatorHandler.LeaveByID)
		coordinators.DELETE("", coordinatorHandler.LeaveByEvent)
	}

	users := api.Group("/users", requireAuth, adminOnly)
	{
		users.GET("/coordinators", coordinatorHandler.List)
		users.PATCH("/coordinators/:id/status", coordinatorHandler.UpdateStatus)
	}

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

// seedAdminUser creates the default admin account on first start so the
// portal is usable before any other account exists.
func seedAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg *config.Config) error {
	var id string
	err := pool.QueryRow(ctx,
		"SELECT id FROM users WHERE LOWER(email) = LOWER($1) AND role = 'admin'",
		cfg.AdminEmail).Scan(&id)
	if err == nil {
		return nil
	}
	if err != pgx.ErrNoRows {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, role, name, status)
		 VALUES ($1, $2, $3, 'admin', 'Administrator', 'approved')`,
		uuid.New(), cfg.AdminEmail, string(hash))
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("seeded default admin user", zap.String("email", cfg.AdminEmail))
	return nil
}
