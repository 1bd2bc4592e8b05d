package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"helpdesk-agent/internal/models"
	"helpdesk-agent/internal/repository"
	"helpdesk-agent/pkg/auth"
	"helpdesk-agent/pkg/config"
	"helpdesk-agent/pkg/logger"
	"helpdesk-agent/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type seedUser struct {
	Username string
	Email    string
	Role     models.Role
}

var seedUsers = []seedUser{
	{Username: "Agente IA", Email: "ia@support.local", Role: models.RoleAIAgent},
	{Username: "tecnico", Email: "tecnico@support.local", Role: models.RoleTechnician},
	{Username: "admin", Email: "admin@support.local", Role: models.RoleAdmin},
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Service); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.RunMigrations(db, cfg.Database.MigrationsPath, appLogger); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	appLogger.Info("Starting database seeding...")

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "password"
	}

	userRepo := repository.NewUserRepository(db, appLogger)
	if err := seedAccounts(ctx, userRepo, password, appLogger); err != nil {
		appLogger.Fatal("Failed to seed users", zap.Error(err))
	}

	knowledgeRepo := repository.NewKnowledgeRepository(db, appLogger)
	if err := seedKnowledgeBase(ctx, knowledgeRepo, appLogger); err != nil {
		appLogger.Fatal("Failed to seed knowledge base", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!")
}

// seedAccounts creates the staff accounts that do not exist yet.
func seedAccounts(ctx context.Context, users *repository.UserRepository, password string, logger *zap.Logger) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	for _, u := range seedUsers {
		_, err := users.GetByEmail(ctx, u.Email)
		if err == nil {
			logger.Info("User already exists, skipping", zap.String("email", u.Email))
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		now := time.Now()
		if err := users.Create(ctx, &models.User{
			ID:        uuid.New(),
			Username:  u.Username,
			Email:     u.Email,
			Password:  hash,
			Role:      u.Role,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return err
		}
		logger.Info("User created", zap.String("email", u.Email), zap.String("role", string(u.Role)))
	}
	return nil
}

func seedKnowledgeBase(ctx context.Context, knowledge *repository.KnowledgeRepository, logger *zap.Logger) error {
	now := time.Now()
	for _, entry := range knowledgeEntries {
		entry.CreatedAt = now
		if err := knowledge.Upsert(ctx, entry); err != nil {
			return err
		}
	}
	logger.Info("Knowledge base seeded", zap.Int("entries", len(knowledgeEntries)))
	return nil
}
