package controllers

import (
	"errors"
	"math"
	"time"

	"lms/config"
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/progress"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// AdminCreateTest schedules a test for a topic
func AdminCreateTest(c *fiber.Ctx) error {
	if _, ok := requireStaff(c); !ok {
		return nil
	}

	courseID := c.Locals("courseID").(int)
	topicID := c.Locals("topicID").(int)

	var topic courseModels.Topic
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", topicID, courseID, false).First(&topic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Topic not found!", nil)
	}

	reqData, ok := c.Locals("validatedTest").(*struct {
		Title       string     `json:"title"`
		ScheduledAt *time.Time `json:"scheduled_at"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	test := courseModels.Test{
		CourseID: uint(courseID),
		TopicID:  uint(topicID),
		Title:    reqData.Title,
	}
	if reqData.ScheduledAt != nil {
		test.ScheduledAt = reqData.ScheduledAt
	}

	if err := database.Database.Db.Create(&test).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create test!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Test created successfully!", test)
}

// AdminListAttempts lists submitted attempts for a test
func AdminListAttempts(c *fiber.Ctx) error {
	if _, ok := requireStaff(c); !ok {
		return nil
	}

	testID := c.Locals("testID").(int)

	var attempts []courseModels.TestAttempt
	if err := database.Database.Db.Where("test_id = ?", testID).
		Order("created_at asc").Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", fiber.Map{
		"attempts": attempts,
		"total":    len(attempts),
	})
}

// SubmitAttempt records a student's answers for a test
func SubmitAttempt(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	testID := c.Locals("testID").(int)

	var test courseModels.Test
	if err := database.Database.Db.Where("id = ?", testID).First(&test).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Test not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND status = ?",
		userID, test.CourseID, courseModels.EnrollmentActive).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not actively enrolled in this course!", nil)
	}

	tracker := database.NewTracker()
	unlocked, err := tracker.IsUnlocked(userID, test.CourseID, test.TopicID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check topic access!", nil)
	}
	if !unlocked {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This topic is not unlocked yet!", nil)
	}

	var existing courseModels.TestAttempt
	if err := database.Database.Db.Where("test_id = ? AND user_id = ?", testID, userID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already submitted this test!", nil)
	}

	reqData, ok := c.Locals("validatedAttempt").(*struct {
		Answers datatypes.JSON `json:"answers"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	attempt := courseModels.TestAttempt{
		TestID:  uint(testID),
		UserID:  userID,
		Answers: reqData.Answers,
		Status:  courseModels.AttemptSubmitted,
	}

	if err := database.Database.Db.Create(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit attempt!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Test submitted successfully!", attempt)
}

// GradeAttempt records marks and, on a pass, completes the topic and unlocks the next one
func GradeAttempt(c *fiber.Ctx) error {
	admin, ok := requireStaff(c)
	if !ok {
		return nil
	}

	attemptID := c.Locals("attemptID").(int)

	var attempt courseModels.TestAttempt
	if err := database.Database.Db.Where("id = ?", attemptID).First(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Attempt not found!", nil)
	}

	var test courseModels.Test
	if err := database.Database.Db.Where("id = ?", attempt.TestID).First(&test).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Test not found!", nil)
	}

	reqData, ok := c.Locals("validatedGrade").(*struct {
		MarksObtained int `json:"marks_obtained"`
		TotalMarks    int `json:"total_marks"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	if reqData.TotalMarks <= 0 || reqData.MarksObtained < 0 || reqData.MarksObtained > reqData.TotalMarks {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid marks!", nil)
	}

	now := time.Now()
	attempt.MarksObtained = reqData.MarksObtained
	attempt.TotalMarks = reqData.TotalMarks
	attempt.Status = courseModels.AttemptGraded
	attempt.GradedBy = &admin.ID
	attempt.GradedAt = &now

	if err := database.Database.Db.Save(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to grade attempt!", nil)
	}

	percent := int(math.Round(float64(reqData.MarksObtained) * 100 / float64(reqData.TotalMarks)))
	passed := percent >= config.AppConfig.PassPercent

	var nextID uint
	if passed {
		tracker := database.NewTracker()
		err := tracker.MarkCompleted(attempt.UserID, test.CourseID, test.TopicID, progress.SourceGrading)
		if err != nil && !errors.Is(err, progress.ErrNotAccessible) {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		}
		if err == nil {
			nextID, err = tracker.Advance(attempt.UserID, test.CourseID, test.TopicID)
			if err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unlock next topic!", nil)
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt graded successfully!", fiber.Map{
		"attempt_id":    attempt.ID,
		"percent":       percent,
		"passed":        passed,
		"next_topic_id": nextID,
	})
}

// GetMyAttempts lists the logged-in student's graded and pending attempts
func GetMyAttempts(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	var attempts []courseModels.TestAttempt
	if err := database.Database.Db.Where("user_id = ?", userID).
		Order("created_at desc").Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", fiber.Map{
		"attempts": attempts,
		"total":    len(attempts),
	})
}
