package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question keeps its option strings as an ordered JSON array so the order
// shown to students is exactly the order the author saved.
type Question struct {
	ID            uuid.UUID                   `json:"questionId" gorm:"type:uuid;primaryKey"`
	AssessmentID  uuid.UUID                   `json:"assessmentId" gorm:"type:uuid;index;not null"`
	Text          string                      `json:"text" gorm:"not null"`
	Options       datatypes.JSONSlice[string] `json:"options" gorm:"not null"`
	CorrectOption int                         `json:"correctOption" gorm:"not null"`
	Marks         int                         `json:"marks" gorm:"not null"`
	CreatedAt     time.Time                   `json:"-"`
	UpdatedAt     time.Time                   `json:"-"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
