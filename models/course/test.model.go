package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Test attempt status values
const (
	AttemptSubmitted = "SUBMITTED"
	AttemptGraded    = "GRADED"
)

// Test represents a scheduled test gating a topic's completion
type Test struct {
	gorm.Model
	CourseID    uint       `json:"course_id" gorm:"index;not null"`
	TopicID     uint       `json:"topic_id" gorm:"index;not null"`
	Title       string     `json:"title"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	IsDeleted   bool       `gorm:"default:false"`
}

// TestAttempt records a student's submission and its grading outcome
type TestAttempt struct {
	gorm.Model
	TestID        uint           `json:"test_id" gorm:"index;not null;uniqueIndex:idx_test_user"`
	UserID        uint           `json:"user_id" gorm:"index;not null;uniqueIndex:idx_test_user"`
	Answers       datatypes.JSON `json:"answers"` // Raw submitted answers, graded manually
	MarksObtained int            `json:"marks_obtained" gorm:"default:0"`
	TotalMarks    int            `json:"total_marks" gorm:"default:0"`
	Status        string         `json:"status" gorm:"default:'SUBMITTED'"` // SUBMITTED, GRADED
	GradedBy      *uint          `json:"graded_by"`
	GradedAt      *time.Time     `json:"graded_at"`
	IsDeleted     bool           `gorm:"default:false"`
}
