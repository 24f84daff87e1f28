package types

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null;column:name" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password  string    `gorm:"column:password" json:"-"`
	GoogleID  *string   `gorm:"uniqueIndex;column:google_id" json:"-"`
	IsActive  bool      `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	Quizzes []*Quiz `gorm:"foreignKey:OwnerID;references:ID" json:"-"`
}

func (User) TableName() string {
	return "user"
}
