package course

import "gorm.io/gorm"

// Topic represents an ordered unit of content within a course
type Topic struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null;uniqueIndex:idx_course_order"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index" gorm:"default:0;uniqueIndex:idx_course_order"` // Topic order in course
	IsPreview   bool   `json:"is_preview" gorm:"default:false"`                           // Visible before unlock
	IsDeleted   bool   `gorm:"default:false"`
}
