package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Result records a student's score on one assessment. It goes away with
// either parent.
type Result struct {
	ID           uuid.UUID `json:"resultId" gorm:"type:uuid;primaryKey"`
	AssessmentID uuid.UUID `json:"assessmentId" gorm:"type:uuid;index;not null"`
	UserID       uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	Score        int       `json:"score" gorm:"not null"`
	CompletedAt  time.Time `json:"completedAt" gorm:"not null"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

func (r *Result) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
