package controllers

import (
	"errors"
	"log"
	"time"

	"lms/config"
	authController "lms/controllers/auth"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/progress"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

func requireAdmin(c *fiber.Ctx) (models.User, bool) {
	userID := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
		return models.User{}, false
	}
	if user.Role != "ADMIN" {
		middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
		return models.User{}, false
	}
	return user, true
}

// ListRequests lists enrollment requests, optionally filtered by status
func ListRequests(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return nil
	}

	reqData, ok := c.Locals("validatedRequestList").(*struct {
		Page   *int   `json:"page"`
		Limit  *int   `json:"limit"`
		Status string `json:"status"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page := 1
	limit := 10
	if reqData.Page != nil && *reqData.Page > 0 {
		page = *reqData.Page
	}
	if reqData.Limit != nil && *reqData.Limit > 0 {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	query := database.Database.Db.Model(&models.EnrollmentRequest{})
	if reqData.Status != "" {
		query = query.Where("status = ?", reqData.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to count requests!", nil)
	}

	var requests []models.EnrollmentRequest
	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Requests fetched successfully!", fiber.Map{
		"requests": requests,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// VerifyRequest approves a request, creating the student account and an active
// enrollment. The first topic is unlocked as part of verification; a course
// with no topics still verifies, it just cannot activate anything yet.
func VerifyRequest(c *fiber.Ctx) error {
	admin, ok := requireAdmin(c)
	if !ok {
		return nil
	}

	requestID := c.Locals("requestID").(int)

	var request models.EnrollmentRequest
	if err := database.Database.Db.Where("id = ?", requestID).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Request not found!", nil)
	}
	if request.Status != models.RequestPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Request has already been processed!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", request.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Reuse the account when the student already exists from another course
	var user models.User
	newAccount := false
	plainPassword := ""
	err := database.Database.Db.Where("email = ? AND is_deleted = ?", request.Email, false).First(&user).Error
	if err != nil {
		plainPassword = utils.GeneratePassword(10)
		hashedPassword, hashErr := bcrypt.GenerateFromPassword([]byte(plainPassword), config.AppConfig.SaltRound)
		if hashErr != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create account!", nil)
		}

		user = models.User{
			Name:     request.FullName,
			Email:    request.Email,
			Phone:    request.Phone,
			Role:     "STUDENT",
			Password: string(hashedPassword),
		}
		if err := database.Database.Db.Create(&user).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create account!", nil)
		}
		newAccount = true

		if err := authController.SeedPermissions(database.Database.Db, user.Role, user.ID); err != nil {
			log.Printf("Failed to seed permissions for user %d: %v", user.ID, err)
		}
	}

	var enrollment courseModels.Enrollment
	err = database.Database.Db.Where("user_id = ? AND course_id = ?", user.ID, request.CourseID).First(&enrollment).Error
	if err != nil {
		enrollment = courseModels.Enrollment{
			UserID:   user.ID,
			CourseID: request.CourseID,
			Status:   courseModels.EnrollmentActive,
		}
		if err := database.Database.Db.Create(&enrollment).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create enrollment!", nil)
		}
	} else if enrollment.Status == courseModels.EnrollmentRevoked {
		enrollment.Status = courseModels.EnrollmentActive
		if err := database.Database.Db.Save(&enrollment).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reactivate enrollment!", nil)
		}
	}

	tracker := database.NewTracker()
	firstTopicID, actErr := tracker.Activate(user.ID, request.CourseID)
	if actErr != nil && !errors.Is(actErr, progress.ErrNoTopics) {
		log.Printf("Failed to activate first topic for user %d course %d: %v", user.ID, request.CourseID, actErr)
	}

	now := time.Now()
	request.Status = models.RequestVerified
	request.ProcessedBy = &admin.ID
	request.ProcessedAt = &now
	request.CreatedUserID = &user.ID
	if err := database.Database.Db.Save(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update request!", nil)
	}

	if newAccount {
		utils.SendCredentialsEmail(user.Email, user.Name, course.Title, plainPassword)
		utils.SendCredentialsSMS(user.Phone, user.Email)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Request verified successfully!", fiber.Map{
		"request_id":      request.ID,
		"user_id":         user.ID,
		"new_account":     newAccount,
		"enrollment_id":   enrollment.ID,
		"first_topic_id":  firstTopicID,
		"topics_missing":  errors.Is(actErr, progress.ErrNoTopics),
	})
}

// RejectRequest marks a pending request as rejected and notifies the applicant
func RejectRequest(c *fiber.Ctx) error {
	admin, ok := requireAdmin(c)
	if !ok {
		return nil
	}

	requestID := c.Locals("requestID").(int)

	reqData, ok := c.Locals("validatedReject").(*struct {
		Reason string `json:"reason"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var request models.EnrollmentRequest
	if err := database.Database.Db.Where("id = ?", requestID).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Request not found!", nil)
	}
	if request.Status != models.RequestPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Request has already been processed!", nil)
	}

	var course courseModels.Course
	database.Database.Db.Where("id = ?", request.CourseID).First(&course)

	now := time.Now()
	request.Status = models.RequestRejected
	request.ProcessedBy = &admin.ID
	request.ProcessedAt = &now
	request.Notes = reqData.Reason
	if err := database.Database.Db.Save(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update request!", nil)
	}

	utils.SendRequestRejectedEmail(request.Email, request.FullName, course.Title, reqData.Reason)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Request rejected!", fiber.Map{
		"request_id": request.ID,
		"status":     request.Status,
	})
}
