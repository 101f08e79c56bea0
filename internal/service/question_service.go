package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mm-grybel/CS50-Study/internal/cache"
	apperrors "github.com/mm-grybel/CS50-Study/internal/errors"
	"github.com/mm-grybel/CS50-Study/internal/model"
	"github.com/mm-grybel/CS50-Study/internal/repository"
)

const questionCacheTTL = 5 * time.Minute

// QuestionInput carries the mutable fields of a question.
type QuestionInput struct {
	QuestionText string
	Answer       string
	Category     string
	Difficulty   int
}

// QuestionPage is one page of the id-ordered question listing.
type QuestionPage struct {
	Questions []model.Question `json:"questions"`
	Page      int              `json:"page"`
	PageSize  int              `json:"page_size"`
	Total     int64            `json:"total"`
}

// SearchResult holds the full materialized result of a substring search.
type SearchResult struct {
	Count int              `json:"count"`
	Data  []model.Question `json:"data"`
}

// QuestionService exposes question domain operations.
type QuestionService interface {
	ListQuestions(ctx context.Context, page int) (*QuestionPage, error)
	GetQuestion(ctx context.Context, id uint) (*model.Question, error)
	AddQuestion(ctx context.Context, input QuestionInput, authorID uint) (*model.Question, error)
	UpdateQuestion(ctx context.Context, id uint, input QuestionInput) (*model.Question, error)
	SearchQuestions(ctx context.Context, term string) (*SearchResult, error)
	QuestionsByAuthor(ctx context.Context, authorID uint) ([]model.Question, error)
}

type questionService struct {
	questionRepo repository.QuestionRepository
	categoryRepo repository.CategoryRepository
	cache        *cache.Client
	pageSize     int
}

// NewQuestionService builds a QuestionService. pageSize comes from
// QUESTIONS_PER_PAGE and applies to ListQuestions only.
func NewQuestionService(questionRepo repository.QuestionRepository, categoryRepo repository.CategoryRepository, cache *cache.Client, pageSize int) QuestionService {
	if pageSize < 1 {
		pageSize = 8
	}
	return &questionService{
		questionRepo: questionRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
		pageSize:     pageSize,
	}
}

func (s *questionService) cacheKey(id uint) string {
	return fmt.Sprintf("question:%d", id)
}

// ListQuestions returns page (1-based) of questions ordered by id ascending.
// A page past the end yields an empty page, never an error.
func (s *questionService) ListQuestions(ctx context.Context, page int) (*QuestionPage, error) {
	if page < 1 {
		page = 1
	}

	questions, err := s.questionRepo.List(ctx, (page-1)*s.pageSize, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	total, err := s.questionRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}

	return &QuestionPage{
		Questions: questions,
		Page:      page,
		PageSize:  s.pageSize,
		Total:     total,
	}, nil
}

func (s *questionService) GetQuestion(ctx context.Context, id uint) (*model.Question, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Question
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	question, err := s.questionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("find question: %w", err)
	}

	if payload, err := json.Marshal(question); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, questionCacheTTL)
	}
	return question, nil
}

// AddQuestion validates and stores a new question. The timestamp is set here
// and never changes afterwards.
func (s *questionService) AddQuestion(ctx context.Context, input QuestionInput, authorID uint) (*model.Question, error) {
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	question := &model.Question{
		QuestionText: input.QuestionText,
		Answer:       input.Answer,
		Category:     input.Category,
		Difficulty:   input.Difficulty,
		Timestamp:    time.Now().UTC(),
		AuthorID:     authorID,
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}

	return question, nil
}

// UpdateQuestion overwrites the mutable fields of an existing question.
// Author and timestamp are immutable, and no ownership check applies: any
// authenticated user may edit any question.
func (s *questionService) UpdateQuestion(ctx context.Context, id uint, input QuestionInput) (*model.Question, error) {
	question, err := s.questionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("find question: %w", err)
	}

	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	question.QuestionText = input.QuestionText
	question.Answer = input.Answer
	question.Category = input.Category
	question.Difficulty = input.Difficulty

	if err := s.questionRepo.Update(ctx, question); err != nil {
		return nil, fmt.Errorf("update question: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return question, nil
}

// SearchQuestions matches term as a case-insensitive substring of
// question_text. An empty or whitespace-only term matches nothing. The full
// result set is materialized; search is not paginated.
func (s *questionService) SearchQuestions(ctx context.Context, term string) (*SearchResult, error) {
	if strings.TrimSpace(term) == "" {
		return &SearchResult{Count: 0, Data: []model.Question{}}, nil
	}

	questions, err := s.questionRepo.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}

	return &SearchResult{Count: len(questions), Data: questions}, nil
}

// QuestionsByAuthor returns the materialized list of questions a user wrote.
func (s *questionService) QuestionsByAuthor(ctx context.Context, authorID uint) ([]model.Question, error) {
	questions, err := s.questionRepo.FindByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("questions by author: %w", err)
	}
	return questions, nil
}

func (s *questionService) validateInput(ctx context.Context, input QuestionInput) error {
	if strings.TrimSpace(input.QuestionText) == "" || strings.TrimSpace(input.Answer) == "" {
		return apperrors.ErrMissingField
	}
	if !model.ValidDifficulty(input.Difficulty) {
		return apperrors.ErrInvalidDifficulty
	}

	if _, err := s.categoryRepo.FindByType(ctx, input.Category); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidCategory
		}
		return fmt.Errorf("check category: %w", err)
	}
	return nil
}
