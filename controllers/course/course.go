package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// TopicWithAccess decorates a topic with the caller's unlock state
type TopicWithAccess struct {
	courseModels.Topic
	IsUnlocked  bool                 `json:"is_unlocked"`
	IsCompleted bool                 `json:"is_completed"`
	Videos      []courseModels.Video `json:"videos,omitempty"`
}

// GetAllCourses lists active courses
func GetAllCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Retrieve validated pagination request
	reqData, _ := c.Locals("validatedCourseList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).Where("is_deleted = ? AND is_active = ?", false, true)

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetCourseDetails gets a course with its topics, annotated with the caller's
// unlock/completion state. Video links are withheld on locked topics unless
// the topic is flagged as a preview.
func GetCourseDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_active = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Get topics in course order
	var topics []courseModels.Topic
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&topics)

	// Check enrollment
	var enrollment courseModels.Enrollment
	isEnrolled := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error == nil

	result := make([]TopicWithAccess, len(topics))
	for i, topic := range topics {
		result[i] = TopicWithAccess{Topic: topic}

		var record courseModels.Progress
		if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND topic_id = ? AND is_deleted = ?",
			userID, courseID, topic.ID, false).First(&record).Error; err == nil {
			result[i].IsUnlocked = record.IsUnlocked
			result[i].IsCompleted = record.IsCompleted
		}

		// Admins see everything; students see video links only for unlocked
		// or preview topics
		if user.Role == "ADMIN" || result[i].IsUnlocked || topic.IsPreview {
			var videos []courseModels.Video
			database.Database.Db.Where("topic_id = ? AND is_deleted = ?", topic.ID, false).
				Order("order_index asc").Find(&videos)
			result[i].Videos = videos
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":      course,
		"topics":      result,
		"is_enrolled": isEnrolled,
		"enrollment":  enrollment,
	})
}
