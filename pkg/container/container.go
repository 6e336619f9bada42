package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"petmarket-backend/internal/config"
	contacthandler "petmarket-backend/internal/domains/contact/handler"
	contactrepo "petmarket-backend/internal/domains/contact/repository"
	contactservice "petmarket-backend/internal/domains/contact/service"
	favoritehandler "petmarket-backend/internal/domains/favorite/handler"
	favoriterepo "petmarket-backend/internal/domains/favorite/repository"
	favoriteservice "petmarket-backend/internal/domains/favorite/service"
	pethandler "petmarket-backend/internal/domains/pet/handler"
	petrepo "petmarket-backend/internal/domains/pet/repository"
	petservice "petmarket-backend/internal/domains/pet/service"
	rediscache "petmarket-backend/internal/infrastructure/cache"
	"petmarket-backend/internal/infrastructure/database"
	"petmarket-backend/pkg/cache"
	"petmarket-backend/pkg/jwt"
)

// Container holds every long-lived dependency of the API. Everything is
// wired once at startup; a wiring failure aborts the process.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache

	JWTManager *jwt.Manager

	PetHandler      *pethandler.PetHandler
	FavoriteHandler *favoritehandler.FavoriteHandler
	ContactHandler  *contacthandler.ContactHandler

	redisClient *rediscache.RedisClient
}

// NewContainer wires the whole application graph.
func NewContainer() (*Container, error) {
	// ========================================
	// 1. CONFIG
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log.Println("✅ Config loaded")

	// ========================================
	// 2. DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("✅ Database connected")

	// ========================================
	// 3. REDIS
	// ========================================
	redisClient := rediscache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisClient.Connect(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Println("✅ Redis connected")

	// ========================================
	// 4. SHARED SERVICES
	// ========================================
	jwtManager := jwt.NewManager(cfg.JWT.Secret)

	// ========================================
	// 5. DOMAINS
	// ========================================
	petRepository := petrepo.NewPostgresRepository(db.Pool, redisClient)
	petService := petservice.NewPetService(petRepository)
	petHandler := pethandler.NewPetHandler(petService)

	favoriteRepository := favoriterepo.NewPostgresRepository(db.Pool)
	favoriteService := favoriteservice.NewFavoriteService(favoriteRepository, petRepository)
	favoriteHandler := favoritehandler.NewFavoriteHandler(favoriteService)

	contactRepository := contactrepo.NewPostgresRepository(db.Pool)
	contactService := contactservice.NewContactService(contactRepository)
	contactHandler := contacthandler.NewContactHandler(contactService)

	log.Println("✅ Container initialized")

	return &Container{
		Config:          cfg,
		DB:              db,
		Cache:           redisClient,
		JWTManager:      jwtManager,
		PetHandler:      petHandler,
		FavoriteHandler: favoriteHandler,
		ContactHandler:  contactHandler,
		redisClient:     redisClient,
	}, nil
}

// Cleanup releases every held connection. Safe to call once on shutdown.
func (c *Container) Cleanup() {
	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			log.Printf("⚠️  Failed to close redis: %v", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	log.Println("✅ Container cleaned up")
}
