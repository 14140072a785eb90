package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/cafedesk/cafe-api/cart"
	"github.com/cafedesk/cafe-api/models"
	"github.com/cafedesk/cafe-api/routes"
	"github.com/cafedesk/cafe-api/session"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	log.Info("Starting cafe API...")

	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) == 0 {
		log.Fatal("JWT_SECRET is not set")
	}

	// Init DB
	db := initDatabase(log)

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalw("AutoMigrate failed", "error", err)
	}

	// Session store for carts
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	redisClient, err := session.NewRedisClient(redisURL)
	if err != nil {
		log.Fatalw("Redis connection failed", "error", err)
	}
	carts := cart.NewService(session.NewRedisStore(redisClient, cartTTL()), log)

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, db, carts, jwtSecret)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Infow("Server running", "port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalw("Failed to start server", "error", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase(log *zap.SugaredLogger) *gorm.DB {
	// Order items outlive the catalog rows they snapshot, so no FK
	// constraints are created between them.
	gormConfig := &gorm.Config{DisableForeignKeyConstraintWhenMigrating: true}

	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), gormConfig)
		if err != nil {
			log.Fatalw("DB connection failed", "error", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		log.Fatalw("Failed to connect DB", "error", err)
	}
	return db
}

// cartTTL reads the abandoned-cart expiry, default 72h.
func cartTTL() time.Duration {
	hours := 72
	if raw := os.Getenv("CART_TTL_HOURS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			hours = parsed
		}
	}
	return time.Duration(hours) * time.Hour
}
