package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment status values
const (
	EnrollmentActive    = "ACTIVE"
	EnrollmentCompleted = "COMPLETED"
	EnrollmentRevoked   = "REVOKED"
)

// Enrollment tracks a student's membership in a course
type Enrollment struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_course"`
	CourseID    uint       `json:"course_id" gorm:"index;not null;uniqueIndex:idx_user_course"`
	Status      string     `json:"status" gorm:"default:'ACTIVE'"` // ACTIVE, COMPLETED, REVOKED
	CompletedAt *time.Time `json:"completed_at"`
	IsDeleted   bool       `gorm:"default:false"`
}
