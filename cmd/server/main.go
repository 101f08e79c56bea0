package main

import (
	"log"
	"net/http"
	"os"

	_ "github.com/mm-grybel/CS50-Study/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mm-grybel/CS50-Study/internal/auth"
	"github.com/mm-grybel/CS50-Study/internal/cache"
	"github.com/mm-grybel/CS50-Study/internal/config"
	"github.com/mm-grybel/CS50-Study/internal/db"
	"github.com/mm-grybel/CS50-Study/internal/handler"
	"github.com/mm-grybel/CS50-Study/internal/model"
	"github.com/mm-grybel/CS50-Study/internal/repository"
	"github.com/mm-grybel/CS50-Study/internal/router"
	"github.com/mm-grybel/CS50-Study/internal/service"
)

// @title Trivia Questions API
// @version 1.0
// @description Trivia question management with categories, search and session authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Question{},
			&model.Category{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Question{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	questionRepo := repository.NewQuestionRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)

	// Initialize auth components
	tokenService := auth.NewTokenService(cfg.SecretKey)
	sessionStore := auth.NewSessionStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokenService, sessionStore)
	questionService := service.NewQuestionService(questionRepo, categoryRepo, cacheClient, cfg.QuestionsPerPage)
	categoryService := service.NewCategoryService(categoryRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	questionHandler := handler.NewQuestionHandler(questionService)
	categoryHandler := handler.NewCategoryHandler(categoryService)

	// Register routes
	router.Register(
		e,
		cfg,
		authService,
		authHandler,
		questionHandler,
		categoryHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
