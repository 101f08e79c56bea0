package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "github.com/mm-grybel/CS50-Study/internal/errors"
	"github.com/mm-grybel/CS50-Study/internal/model"
)

// MockQuestionRepository is a mock implementation of QuestionRepository.
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(ctx context.Context, question *model.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) FindByID(ctx context.Context, id uint) (*model.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Question), args.Error(1)
}

func (m *MockQuestionRepository) Update(ctx context.Context, question *model.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) List(ctx context.Context, offset, limit int) ([]model.Question, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Question), args.Error(1)
}

func (m *MockQuestionRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuestionRepository) Search(ctx context.Context, term string) ([]model.Question, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Question), args.Error(1)
}

func (m *MockQuestionRepository) FindByAuthor(ctx context.Context, authorID uint) ([]model.Question, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Question), args.Error(1)
}

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uint) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByType(ctx context.Context, typeLabel string) (*model.Category, error) {
	args := m.Called(ctx, typeLabel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func knownCategory(m *MockCategoryRepository, label string) {
	m.On("FindByType", mock.Anything, label).Return(&model.Category{ID: 1, Type: label}, nil)
}

func TestQuestionService_AddQuestion(t *testing.T) {
	valid := QuestionInput{
		QuestionText: "What is the capital of France?",
		Answer:       "Paris",
		Category:     "Geography",
		Difficulty:   model.DifficultyEasy,
	}

	tests := []struct {
		name          string
		input         QuestionInput
		setupMock     func(*MockQuestionRepository, *MockCategoryRepository)
		expectedError error
	}{
		{
			name:  "valid question",
			input: valid,
			setupMock: func(mQ *MockQuestionRepository, mC *MockCategoryRepository) {
				knownCategory(mC, "Geography")
				mQ.On("Create", mock.Anything, mock.AnythingOfType("*model.Question")).Return(nil)
			},
		},
		{
			name: "difficulty 3 accepted",
			input: QuestionInput{
				QuestionText: valid.QuestionText,
				Answer:       valid.Answer,
				Category:     valid.Category,
				Difficulty:   model.DifficultyDifficult,
			},
			setupMock: func(mQ *MockQuestionRepository, mC *MockCategoryRepository) {
				knownCategory(mC, "Geography")
				mQ.On("Create", mock.Anything, mock.AnythingOfType("*model.Question")).Return(nil)
			},
		},
		{
			name: "difficulty out of range",
			input: QuestionInput{
				QuestionText: valid.QuestionText,
				Answer:       valid.Answer,
				Category:     valid.Category,
				Difficulty:   4,
			},
			setupMock:     func(mQ *MockQuestionRepository, mC *MockCategoryRepository) {},
			expectedError: apperrors.ErrInvalidDifficulty,
		},
		{
			name: "empty question text",
			input: QuestionInput{
				QuestionText: "   ",
				Answer:       valid.Answer,
				Category:     valid.Category,
				Difficulty:   valid.Difficulty,
			},
			setupMock:     func(mQ *MockQuestionRepository, mC *MockCategoryRepository) {},
			expectedError: apperrors.ErrMissingField,
		},
		{
			name: "empty answer",
			input: QuestionInput{
				QuestionText: valid.QuestionText,
				Answer:       "",
				Category:     valid.Category,
				Difficulty:   valid.Difficulty,
			},
			setupMock:     func(mQ *MockQuestionRepository, mC *MockCategoryRepository) {},
			expectedError: apperrors.ErrMissingField,
		},
		{
			name: "unknown category",
			input: QuestionInput{
				QuestionText: valid.QuestionText,
				Answer:       valid.Answer,
				Category:     "Astrology",
				Difficulty:   valid.Difficulty,
			},
			setupMock: func(mQ *MockQuestionRepository, mC *MockCategoryRepository) {
				mC.On("FindByType", mock.Anything, "Astrology").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQuestions := new(MockQuestionRepository)
			mockCategories := new(MockCategoryRepository)
			tt.setupMock(mockQuestions, mockCategories)

			service := NewQuestionService(mockQuestions, mockCategories, nil, 8)
			question, err := service.AddQuestion(context.Background(), tt.input, 1)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, question)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, question)
				assert.Equal(t, tt.input.QuestionText, question.QuestionText)
				assert.Equal(t, uint(1), question.AuthorID)
				assert.False(t, question.Timestamp.IsZero())
			}

			mockQuestions.AssertExpectations(t)
			mockCategories.AssertExpectations(t)
		})
	}
}

func TestQuestionService_ListQuestionsPagination(t *testing.T) {
	// Ten rows paged by eight: 8, then 2, then an empty page.
	rows := make([]model.Question, 10)
	for i := range rows {
		rows[i] = model.Question{ID: uint(i + 1)}
	}

	mockQuestions := new(MockQuestionRepository)
	mockCategories := new(MockCategoryRepository)
	mockQuestions.On("List", mock.Anything, 0, 8).Return(rows[0:8], nil)
	mockQuestions.On("List", mock.Anything, 8, 8).Return(rows[8:10], nil)
	mockQuestions.On("List", mock.Anything, 16, 8).Return([]model.Question{}, nil)
	mockQuestions.On("Count", mock.Anything).Return(int64(10), nil)

	service := NewQuestionService(mockQuestions, mockCategories, nil, 8)
	ctx := context.Background()

	page1, err := service.ListQuestions(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, page1.Questions, 8)
	assert.Equal(t, uint(1), page1.Questions[0].ID)
	assert.Equal(t, uint(8), page1.Questions[7].ID)
	assert.Equal(t, int64(10), page1.Total)

	page2, err := service.ListQuestions(ctx, 2)
	assert.NoError(t, err)
	assert.Len(t, page2.Questions, 2)
	assert.Equal(t, uint(9), page2.Questions[0].ID)
	assert.Equal(t, uint(10), page2.Questions[1].ID)

	page3, err := service.ListQuestions(ctx, 3)
	assert.NoError(t, err)
	assert.Empty(t, page3.Questions)

	// Page numbers below one clamp to the first page.
	clamped, err := service.ListQuestions(ctx, 0)
	assert.NoError(t, err)
	assert.Len(t, clamped.Questions, 8)
}

func TestQuestionService_GetQuestion(t *testing.T) {
	mockQuestions := new(MockQuestionRepository)
	mockCategories := new(MockCategoryRepository)
	mockQuestions.On("FindByID", mock.Anything, uint(1)).Return(&model.Question{ID: 1, QuestionText: "Q"}, nil)
	mockQuestions.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	service := NewQuestionService(mockQuestions, mockCategories, nil, 8)

	question, err := service.GetQuestion(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), question.ID)

	question, err = service.GetQuestion(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrQuestionNotFound)
	assert.Nil(t, question)
}

func TestQuestionService_UpdateQuestion(t *testing.T) {
	t.Run("overwrites mutable fields only", func(t *testing.T) {
		existing := &model.Question{
			ID:           1,
			QuestionText: "old text",
			Answer:       "old answer",
			Category:     "History",
			Difficulty:   model.DifficultyEasy,
			AuthorID:     7,
		}

		mockQuestions := new(MockQuestionRepository)
		mockCategories := new(MockCategoryRepository)
		mockQuestions.On("FindByID", mock.Anything, uint(1)).Return(existing, nil)
		knownCategory(mockCategories, "Science")
		mockQuestions.On("Update", mock.Anything, mock.AnythingOfType("*model.Question")).Return(nil)

		service := NewQuestionService(mockQuestions, mockCategories, nil, 8)
		updated, err := service.UpdateQuestion(context.Background(), 1, QuestionInput{
			QuestionText: "new text",
			Answer:       "new answer",
			Category:     "Science",
			Difficulty:   model.DifficultyMedium,
		})

		assert.NoError(t, err)
		assert.Equal(t, "new text", updated.QuestionText)
		assert.Equal(t, "new answer", updated.Answer)
		assert.Equal(t, "Science", updated.Category)
		assert.Equal(t, model.DifficultyMedium, updated.Difficulty)
		// Authorship never changes on edit.
		assert.Equal(t, uint(7), updated.AuthorID)
	})

	t.Run("missing question", func(t *testing.T) {
		mockQuestions := new(MockQuestionRepository)
		mockCategories := new(MockCategoryRepository)
		mockQuestions.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		service := NewQuestionService(mockQuestions, mockCategories, nil, 8)
		updated, err := service.UpdateQuestion(context.Background(), 404, QuestionInput{
			QuestionText: "text",
			Answer:       "answer",
			Category:     "Science",
			Difficulty:   model.DifficultyEasy,
		})

		assert.ErrorIs(t, err, apperrors.ErrQuestionNotFound)
		assert.Nil(t, updated)
	})
}

func TestQuestionService_SearchQuestions(t *testing.T) {
	t.Run("substring match", func(t *testing.T) {
		mockQuestions := new(MockQuestionRepository)
		mockCategories := new(MockCategoryRepository)
		mockQuestions.On("Search", mock.Anything, "cap").
			Return([]model.Question{{ID: 1, QuestionText: "Capital of France"}}, nil)

		service := NewQuestionService(mockQuestions, mockCategories, nil, 8)
		result, err := service.SearchQuestions(context.Background(), "cap")

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Count)
		assert.Equal(t, "Capital of France", result.Data[0].QuestionText)
	})

	t.Run("empty term matches nothing", func(t *testing.T) {
		mockQuestions := new(MockQuestionRepository)
		mockCategories := new(MockCategoryRepository)

		service := NewQuestionService(mockQuestions, mockCategories, nil, 8)

		for _, term := range []string{"", "   "} {
			result, err := service.SearchQuestions(context.Background(), term)
			assert.NoError(t, err)
			assert.Equal(t, 0, result.Count)
			assert.Empty(t, result.Data)
		}
		mockQuestions.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})
}

func TestQuestionService_QuestionsByAuthor(t *testing.T) {
	mockQuestions := new(MockQuestionRepository)
	mockCategories := new(MockCategoryRepository)
	mockQuestions.On("FindByAuthor", mock.Anything, uint(7)).
		Return([]model.Question{{ID: 2, AuthorID: 7}, {ID: 5, AuthorID: 7}}, nil)

	service := NewQuestionService(mockQuestions, mockCategories, nil, 8)
	questions, err := service.QuestionsByAuthor(context.Background(), 7)

	assert.NoError(t, err)
	assert.Len(t, questions, 2)
}
