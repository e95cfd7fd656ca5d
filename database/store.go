package database

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"edusync/models"
)

// ErrUserOwnsCourses is returned when a delete is refused because the user
// still owns at least one course.
var ErrUserOwnsCourses = errors.New("user still owns courses")

// DeleteCourse removes a course together with its assessments and their
// questions and results, all inside one transaction.
func DeleteCourse(db *gorm.DB, courseID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var assessmentIDs []uuid.UUID
		if err := tx.Model(&models.Assessment{}).
			Where("course_id = ?", courseID).
			Pluck("id", &assessmentIDs).Error; err != nil {
			return err
		}

		if len(assessmentIDs) > 0 {
			if err := tx.Where("assessment_id IN ?", assessmentIDs).Delete(&models.Result{}).Error; err != nil {
				return err
			}
			if err := tx.Where("assessment_id IN ?", assessmentIDs).Delete(&models.Question{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", assessmentIDs).Delete(&models.Assessment{}).Error; err != nil {
				return err
			}
		}

		return tx.Where("id = ?", courseID).Delete(&models.Course{}).Error
	})
}

// DeleteAssessment removes an assessment with its questions and results.
func DeleteAssessment(db *gorm.DB, assessmentID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assessment_id = ?", assessmentID).Delete(&models.Result{}).Error; err != nil {
			return err
		}
		if err := tx.Where("assessment_id = ?", assessmentID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", assessmentID).Delete(&models.Assessment{}).Error
	})
}

// DeleteUser removes a user and their results. The delete is refused with
// ErrUserOwnsCourses while any course still names the user as instructor.
// There is no HTTP endpoint for this; it is the store-level contract.
func DeleteUser(db *gorm.DB, userID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var owned int64
		if err := tx.Model(&models.Course{}).
			Where("instructor_id = ?", userID).
			Count(&owned).Error; err != nil {
			return err
		}
		if owned > 0 {
			return ErrUserOwnsCourses
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.Result{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", userID).Delete(&models.User{}).Error
	})
}

// IsDuplicateKey reports whether err is a unique-constraint violation. The
// string checks cover drivers that predate gorm's error translation.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
