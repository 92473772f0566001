package controllers

import (
	"errors"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/progress"

	"github.com/gofiber/fiber/v2"
)

// GetMyProgress returns the logged-in student's per-topic state for a course
func GetMyProgress(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}
	if enrollment.Status == courseModels.EnrollmentRevoked {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Your enrollment has been revoked!", nil)
	}

	var topics []courseModels.Topic
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&topics).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch topics!", nil)
	}

	var records []courseModels.Progress
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?",
		userID, courseID, false).Find(&records).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	byTopic := make(map[uint]courseModels.Progress, len(records))
	for _, r := range records {
		byTopic[r.TopicID] = r
	}

	type topicProgress struct {
		TopicID     uint   `json:"topic_id"`
		Title       string `json:"title"`
		OrderIndex  int    `json:"order_index"`
		IsUnlocked  bool   `json:"is_unlocked"`
		IsCompleted bool   `json:"is_completed"`
	}

	out := make([]topicProgress, 0, len(topics))
	completed := 0
	for _, t := range topics {
		tp := topicProgress{TopicID: t.ID, Title: t.Title, OrderIndex: t.OrderIndex}
		if r, ok := byTopic[t.ID]; ok {
			tp.IsUnlocked = r.IsUnlocked
			tp.IsCompleted = r.IsCompleted
		}
		if tp.IsCompleted {
			completed++
		}
		out = append(out, tp)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment_status": enrollment.Status,
		"total_topics":      len(topics),
		"completed_topics":  completed,
		"topics":            out,
	})
}

// MarkTopicComplete records a self-reported completion and unlocks the next topic
func MarkTopicComplete(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	courseID := c.Locals("courseID").(int)
	topicID := c.Locals("topicID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND status = ?",
		userID, courseID, courseModels.EnrollmentActive).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not actively enrolled in this course!", nil)
	}

	tracker := database.NewTracker()

	err := tracker.MarkCompleted(userID, uint(courseID), uint(topicID), progress.SourceSelfReport)
	if err != nil {
		if errors.Is(err, progress.ErrNotAccessible) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This topic is not unlocked yet!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark topic complete!", nil)
	}

	nextID, err := tracker.Advance(userID, uint(courseID), uint(topicID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unlock next topic!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Topic marked as complete!", fiber.Map{
		"completed_topic_id": topicID,
		"next_topic_id":      nextID,
		"course_finished":    nextID == 0,
	})
}

// AdminUnlockTopic unlocks any topic for a student without touching completion
func AdminUnlockTopic(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return nil
	}

	courseID := c.Locals("courseID").(int)
	topicID := c.Locals("topicID").(int)

	reqData, ok := c.Locals("validatedUnlock").(*struct {
		UserID uint `json:"user_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ?", reqData.UserID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student is not enrolled in this course!", nil)
	}

	var topic courseModels.Topic
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", topicID, courseID, false).First(&topic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Topic not found!", nil)
	}

	tracker := database.NewTracker()
	if err := tracker.Unlock(reqData.UserID, uint(courseID), uint(topicID)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unlock topic!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Topic unlocked for student!", fiber.Map{
		"user_id":  reqData.UserID,
		"topic_id": topicID,
	})
}
