package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Course is owned by exactly one instructor. The owning user cannot be
// deleted while it exists; deleting the course takes its assessments with it.
type Course struct {
	ID           uuid.UUID `json:"courseId" gorm:"type:uuid;primaryKey"`
	Title        string    `json:"title" gorm:"not null"`
	Description  string    `json:"description" gorm:"not null"`
	MediaURL     string    `json:"mediaUrl" gorm:"not null"`
	InstructorID uuid.UUID `json:"instructorId" gorm:"type:uuid;index;not null"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`

	Assessments []Assessment `json:"-" gorm:"foreignKey:CourseID"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
