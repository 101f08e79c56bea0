package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mm-grybel/CS50-Study/internal/config"
	"github.com/mm-grybel/CS50-Study/internal/db"
	"github.com/mm-grybel/CS50-Study/internal/model"
	"github.com/mm-grybel/CS50-Study/internal/repository"
)

const defaultSeedSource = "seed/questions.json"

// seedFixture is the on-disk/remote fixture format.
type seedFixture struct {
	Categories []string       `json:"categories"`
	Questions  []seedQuestion `json:"questions"`
}

type seedQuestion struct {
	QuestionText string `json:"question_text"`
	Answer       string `json:"answer"`
	Category     string `json:"category"`
	Difficulty   int    `json:"difficulty"`
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Category{}, &model.Question{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	source := os.Getenv("SEED_SOURCE")
	if source == "" {
		source = defaultSeedSource
	}

	fixture, err := loadFixture(source)
	if err != nil {
		log.Fatalf("Failed to load fixture: %v", err)
	}
	log.Printf("Loaded %d categories and %d questions from %s", len(fixture.Categories), len(fixture.Questions), source)

	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	questionRepo := repository.NewQuestionRepository(gormDB)
	ctx := context.Background()

	author, err := ensureSeedAuthor(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to ensure seed author: %v", err)
	}

	created, skipped, err := seedCategories(ctx, categoryRepo, fixture.Categories, author.ID)
	if err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}
	log.Printf("Categories: %d created, %d already present", created, skipped)

	created, skipped, err = seedQuestions(ctx, questionRepo, categoryRepo, fixture.Questions, author.ID)
	if err != nil {
		log.Fatalf("Failed to seed questions: %v", err)
	}
	log.Printf("Questions: %d created, %d skipped", created, skipped)

	log.Println("Seed completed successfully!")
}

// loadFixture reads the fixture from a local path or, when the source looks
// like a URL, over HTTP.
func loadFixture(source string) (*seedFixture, error) {
	var body []byte
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Get(source)
		if err != nil {
			return nil, fmt.Errorf("fetch fixture: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fixture URL returned status code: %d", resp.StatusCode)
		}
		if body, err = io.ReadAll(resp.Body); err != nil {
			return nil, fmt.Errorf("read fixture body: %w", err)
		}
	} else {
		var err error
		if body, err = os.ReadFile(source); err != nil {
			return nil, fmt.Errorf("read fixture file: %w", err)
		}
	}

	var fixture seedFixture
	if err := json.Unmarshal(body, &fixture); err != nil {
		return nil, fmt.Errorf("parse fixture JSON: %w", err)
	}
	return &fixture, nil
}

// ensureSeedAuthor finds or creates the account that owns seeded rows.
func ensureSeedAuthor(ctx context.Context, repo repository.UserRepository) (*model.User, error) {
	email := os.Getenv("SEED_AUTHOR_EMAIL")
	if email == "" {
		email = "seed@example.com"
	}

	existing, err := repo.FindByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find seed author: %w", err)
	}

	author := &model.User{Email: email, Username: "seed"}
	password := os.Getenv("SEED_AUTHOR_PASSWORD")
	if password == "" {
		password = "seed-password"
	}
	if err := author.SetPassword(password); err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}
	if err := repo.Create(ctx, author); err != nil {
		return nil, fmt.Errorf("create seed author: %w", err)
	}
	return author, nil
}

// seedCategories creates fixture categories that do not exist yet.
func seedCategories(ctx context.Context, repo repository.CategoryRepository, labels []string, authorID uint) (created, skipped int, err error) {
	for _, label := range labels {
		_, err := repo.FindByType(ctx, label)
		if err == nil {
			skipped++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, skipped, fmt.Errorf("error checking category %q: %w", label, err)
		}

		category := &model.Category{Type: label, Timestamp: time.Now().UTC(), AuthorID: authorID}
		if err := repo.Create(ctx, category); err != nil {
			return created, skipped, fmt.Errorf("error creating category %q: %w", label, err)
		}
		created++
	}
	return created, skipped, nil
}

// seedQuestions creates fixture questions, skipping rows whose text already
// exists or whose fields would not pass validation.
func seedQuestions(ctx context.Context, repo repository.QuestionRepository, categories repository.CategoryRepository, questions []seedQuestion, authorID uint) (created, skipped int, err error) {
	for _, item := range questions {
		if item.QuestionText == "" || item.Answer == "" || !model.ValidDifficulty(item.Difficulty) {
			log.Printf("Skipping invalid question %q", item.QuestionText)
			skipped++
			continue
		}
		if _, err := categories.FindByType(ctx, item.Category); err != nil {
			log.Printf("Skipping question %q with unknown category %q", item.QuestionText, item.Category)
			skipped++
			continue
		}

		matches, err := repo.Search(ctx, item.QuestionText)
		if err != nil {
			return created, skipped, fmt.Errorf("error checking question %q: %w", item.QuestionText, err)
		}
		if exists := containsExact(matches, item.QuestionText); exists {
			skipped++
			continue
		}

		question := &model.Question{
			QuestionText: item.QuestionText,
			Answer:       item.Answer,
			Category:     item.Category,
			Difficulty:   item.Difficulty,
			Timestamp:    time.Now().UTC(),
			AuthorID:     authorID,
		}
		if err := repo.Create(ctx, question); err != nil {
			return created, skipped, fmt.Errorf("error creating question %q: %w", item.QuestionText, err)
		}
		created++
	}
	return created, skipped, nil
}

func containsExact(questions []model.Question, text string) bool {
	for _, q := range questions {
		if q.QuestionText == text {
			return true
		}
	}
	return false
}
