package course

import "gorm.io/gorm"

// Progress tracks per-student unlock and completion state for a single topic.
// The (user, course, topic) tuple is unique; all writes are upserts on it.
type Progress struct {
	gorm.Model
	UserID       uint   `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_course_topic"`
	CourseID     uint   `json:"course_id" gorm:"index;not null;uniqueIndex:idx_user_course_topic"`
	TopicID      uint   `json:"topic_id" gorm:"index;not null;uniqueIndex:idx_user_course_topic"`
	IsUnlocked   bool   `json:"is_unlocked" gorm:"default:false"`
	IsCompleted  bool   `json:"is_completed" gorm:"default:false"`
	CompletedVia string `json:"completed_via" gorm:"default:''"` // SELF_REPORT or GRADING
	IsDeleted    bool   `gorm:"default:false"`
}
