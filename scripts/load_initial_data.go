package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tenant-admin-backend/internal/auth"
	"tenant-admin-backend/internal/config"
	"tenant-admin-backend/internal/database"
	"tenant-admin-backend/internal/database/models"
	"tenant-admin-backend/internal/store"
	"tenant-admin-backend/internal/tenant"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// UserData mirrors one entry of a users YAML file. TenantID is generated
// for non super-admins when left empty.
type UserData struct {
	Email         string `yaml:"email"`
	Name          string `yaml:"name"`
	ShopName      string `yaml:"shop_name"`
	ContactNumber string `yaml:"contact_number"`
	Role          string `yaml:"role"`
	TenantID      string `yaml:"tenant_id,omitempty"`
}

// UsersFile is the layout of scripts/data/*users*.yaml
type UsersFile struct {
	Users []UserData `yaml:"users"`
}

func main() {
	dataDir := flag.String("data", "scripts/data", "directory holding the YAML seed files")
	printTokens := flag.Bool("tokens", false, "print a bearer token for every seeded user")
	flag.Parse()

	log.Println("Loading initial data from YAML files...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Postgres may still be starting when run next to docker compose
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, database.PoolOptions{MaxConns: 4})
	if err != nil {
		log.Fatalf("Failed to create pool: %v", err)
	}
	defer pool.Close()

	users, err := loadUsers(*dataDir)
	if err != nil {
		log.Fatalf("Failed to read seed files: %v", err)
	}

	seeded, err := seedUsers(ctx, db, newProvisioner(pool, cfg), users)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	if *printTokens {
		if err := printBearerTokens(cfg, seeded); err != nil {
			log.Fatalf("Failed to issue tokens: %v", err)
		}
	}

	log.Printf("Initial data loaded: %d users", len(seeded))
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	opts := &database.Options{LogLevel: logger.Silent}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func newProvisioner(pool *pgxpool.Pool, cfg *config.Config) *tenant.Provisioner {
	executor := store.NewExecutor(pool, store.Options{
		AcquireTimeout:   cfg.AcquireTimeout,
		StatementTimeout: cfg.StatementTimeout,
		MaxAttempts:      cfg.RetryMaxAttempts,
		InitialInterval:  cfg.RetryInitialInterval,
		MaxInterval:      cfg.RetryMaxInterval,
	}, nil)
	return tenant.NewProvisioner(executor, nil)
}

func loadUsers(dataDir string) ([]UserData, error) {
	var all []UserData

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".yaml") || !strings.Contains(filepath.Base(path), "users") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var file UsersFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		all = append(all, file.Users...)
		return nil
	})

	return all, err
}

func seedUsers(ctx context.Context, db *gorm.DB, provisioner *tenant.Provisioner, users []UserData) ([]models.User, error) {
	seeded := make([]models.User, 0, len(users))
	for _, data := range users {
		user, created, err := createUser(ctx, db, data)
		if err != nil {
			return nil, err
		}
		if created {
			log.Printf("created user %s (%s)", user.Email, user.Role)
		}

		if user.HasTenant() {
			if err := provisioner.Ensure(ctx, *user.TenantID); err != nil {
				return nil, fmt.Errorf("provision tenant of %s: %w", user.Email, err)
			}
		}
		seeded = append(seeded, *user)
	}
	return seeded, nil
}

func createUser(ctx context.Context, db *gorm.DB, data UserData) (*models.User, bool, error) {
	var user models.User
	err := db.WithContext(ctx).Where("email = ?", data.Email).First(&user).Error
	if err == nil {
		return &user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to query user: %w", err)
	}

	role, err := models.ParseRole(data.Role)
	if err != nil {
		return nil, false, fmt.Errorf("user %s: %w", data.Email, err)
	}

	user = models.User{
		Email:         data.Email,
		Name:          data.Name,
		ShopName:      data.ShopName,
		ContactNumber: data.ContactNumber,
		Role:          role,
	}
	if role != models.RoleSuperAdmin {
		tenantID := data.TenantID
		if tenantID == "" {
			tenantID = uuid.NewString()
		}
		if err := tenant.ValidateTenantID(tenantID); err != nil {
			return nil, false, fmt.Errorf("user %s: %w", data.Email, err)
		}
		user.TenantID = &tenantID
	}

	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, true, nil
}

func printBearerTokens(cfg *config.Config, users []models.User) error {
	authService, err := auth.NewAuthService(&auth.AuthConfig{JWTSecret: cfg.JWTSecret})
	if err != nil {
		return err
	}
	for i := range users {
		token, err := authService.GenerateJWT(&users[i])
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%s\n", users[i].Email, token)
	}
	return nil
}
