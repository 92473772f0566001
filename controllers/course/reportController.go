package controllers

import (
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetCourseReport returns per-student progress for a course, most recent activity first
func GetCourseReport(c *fiber.Ctx) error {
	if _, ok := requireStaff(c); !ok {
		return nil
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	tracker := database.NewTracker()
	summaries, err := tracker.Report(uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build report!", nil)
	}

	type studentRow struct {
		UserID                uint       `json:"user_id"`
		Name                  string     `json:"name"`
		Email                 string     `json:"email"`
		Status                string     `json:"status"`
		CompletedCount        int        `json:"completed_count"`
		TotalTopics           int        `json:"total_topics"`
		ProgressPercent       int        `json:"progress_percent"`
		CurrentTopicID        uint       `json:"current_topic_id"`
		CurrentTopicTitle     string     `json:"current_topic_title"`
		CurrentTopicCompleted bool       `json:"current_topic_completed"`
		LastActivity          *time.Time `json:"last_activity"`
	}

	rows := make([]studentRow, 0, len(summaries))
	for _, s := range summaries {
		row := studentRow{
			UserID:                s.UserID,
			Status:                s.Status,
			CompletedCount:        s.CompletedCount,
			TotalTopics:           s.TotalTopics,
			ProgressPercent:       s.ProgressPercent,
			CurrentTopicID:        s.CurrentTopicID,
			CurrentTopicCompleted: s.CurrentTopicCompleted,
		}
		if !s.LastActivity.IsZero() {
			ts := s.LastActivity
			row.LastActivity = &ts
		}

		var user models.User
		if err := database.Database.Db.Select("name, email").Where("id = ?", s.UserID).First(&user).Error; err == nil {
			row.Name = user.Name
			row.Email = user.Email
		}

		if s.CurrentTopicID != 0 {
			var topic courseModels.Topic
			if err := database.Database.Db.Select("title").Where("id = ?", s.CurrentTopicID).First(&topic).Error; err == nil {
				row.CurrentTopicTitle = topic.Title
			}
		}

		rows = append(rows, row)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Report fetched successfully!", fiber.Map{
		"course_id":    course.ID,
		"course_title": course.Title,
		"students":     rows,
		"total":        len(rows),
	})
}
