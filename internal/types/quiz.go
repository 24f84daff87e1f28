package types

import (
	"time"

	"github.com/google/uuid"
)

type Quiz struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string    `gorm:"not null;column:title" json:"title"`
	Prompt     string    `gorm:"not null;type:text;column:prompt" json:"prompt"`
	Category   *string   `gorm:"column:category" json:"category"`
	Difficulty string    `gorm:"not null;default:medium;column:difficulty" json:"difficulty"`
	OwnerID    uuid.UUID `gorm:"type:uuid;index;not null;column:owner_id" json:"owner_id"`
	Owner      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:OwnerID;references:ID" json:"-"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`

	Questions []*Question `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuizID;references:ID" json:"questions"`
}

func (Quiz) TableName() string {
	return "quiz"
}
