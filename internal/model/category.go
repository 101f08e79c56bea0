package model

import "time"

// Category groups questions under a unique type label. Read-only after
// creation.
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Type      string    `json:"type" gorm:"uniqueIndex;size:64;not null"`
	Timestamp time.Time `json:"timestamp" gorm:"index"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`

	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

func (Category) TableName() string { return "categories" }
