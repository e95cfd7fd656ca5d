package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Assessment struct {
	ID          uuid.UUID `json:"assessmentId" gorm:"type:uuid;primaryKey"`
	CourseID    uuid.UUID `json:"courseId" gorm:"type:uuid;index;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	MaxScore    int       `json:"maxScore" gorm:"not null"`
	DueDate     time.Time `json:"dueDate" gorm:"not null"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`

	Questions []Question `json:"questions" gorm:"foreignKey:AssessmentID"`
	Results   []Result   `json:"-" gorm:"foreignKey:AssessmentID"`
}

func (a *Assessment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
