package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/mm-grybel/CS50-Study/internal/model"
)

// QuestionRepository defines persistence operations for questions.
type QuestionRepository interface {
	Create(ctx context.Context, question *model.Question) error
	FindByID(ctx context.Context, id uint) (*model.Question, error)
	Update(ctx context.Context, question *model.Question) error
	List(ctx context.Context, offset, limit int) ([]model.Question, error)
	Count(ctx context.Context) (int64, error)
	Search(ctx context.Context, term string) ([]model.Question, error)
	FindByAuthor(ctx context.Context, authorID uint) ([]model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository builds a GORM-backed repository.
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, question *model.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *questionRepository) FindByID(ctx context.Context, id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.WithContext(ctx).First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) Update(ctx context.Context, question *model.Question) error {
	return r.db.WithContext(ctx).Save(question).Error
}

// List returns a page of questions ordered by id ascending. An offset past
// the last row yields an empty slice, not an error.
func (r *questionRepository) List(ctx context.Context, offset, limit int) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Question{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Search performs a case-insensitive substring match against question_text.
func (r *questionRepository) Search(ctx context.Context, term string) ([]model.Question, error) {
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	var questions []model.Question
	err := r.db.WithContext(ctx).
		Where("LOWER(question_text) LIKE ?", pattern).
		Order("id ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindByAuthor(ctx context.Context, authorID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("id ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// escapeLike neutralizes LIKE metacharacters so a search for "50%" matches
// literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
