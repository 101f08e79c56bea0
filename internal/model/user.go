package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// User represents a registered account. Users own the questions and
// categories they create.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:64;not null"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:64;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Questions  []Question `json:"questions,omitempty" gorm:"foreignKey:AuthorID"`
	Categories []Category `json:"categories,omitempty" gorm:"foreignKey:AuthorID"`
}

// TableName overrides the default GORM pluralization to match the schema.
func (User) TableName() string { return "users" }

// SetPassword stores a salted bcrypt hash of plaintext. The plaintext is
// never persisted.
func (u *User) SetPassword(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// VerifyPassword reports whether plaintext matches the stored hash.
// A malformed or empty hash verifies as false, never as an error.
func (u *User) VerifyPassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)) == nil
}
