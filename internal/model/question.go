package model

import "time"

// Difficulty levels for a question.
const (
	DifficultyEasy      = 1
	DifficultyMedium    = 2
	DifficultyDifficult = 3
)

// ValidDifficulty reports whether d is one of the three recognized levels.
func ValidDifficulty(d int) bool {
	return d >= DifficultyEasy && d <= DifficultyDifficult
}

// Question is a single trivia question. Category holds the category type
// label rather than a foreign key, matching the persisted schema.
type Question struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	QuestionText string    `json:"question_text" gorm:"type:text;not null"`
	Answer       string    `json:"answer" gorm:"type:text;not null"`
	Category     string    `json:"category" gorm:"size:64;not null"`
	Difficulty   int       `json:"difficulty" gorm:"not null"`
	Timestamp    time.Time `json:"timestamp" gorm:"index"` // set once at creation
	AuthorID     uint      `json:"author_id" gorm:"not null;index"`

	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

func (Question) TableName() string { return "questions" }
