package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Question struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID    uuid.UUID      `gorm:"type:uuid;index;not null;column:quiz_id" json:"quiz_id"`
	Quiz      *Quiz          `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuizID;references:ID" json:"-"`
	Text      string         `gorm:"not null;type:text;column:text" json:"text"`
	Options   datatypes.JSON `gorm:"not null;column:options" json:"options"`
	Correct   int            `gorm:"not null;column:correct" json:"correct"`
	Index     int            `gorm:"not null;default:0;column:position" json:"order"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

func (Question) TableName() string {
	return "question"
}
