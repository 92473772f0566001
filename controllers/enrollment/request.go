package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// SubmitRequest accepts a public enrollment request with payment receipt details
func SubmitRequest(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedEnrollmentRequest").(*models.EnrollmentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_active = ? AND is_deleted = ?",
		reqData.CourseID, true, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not open for enrollment!", nil)
	}

	var existing models.EnrollmentRequest
	if err := database.Database.Db.Where("transaction_id = ?", reqData.TransactionID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A request with this transaction ID already exists!", nil)
	}

	if err := database.Database.Db.Where("email = ? AND course_id = ? AND status = ?",
		reqData.Email, reqData.CourseID, models.RequestPending).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You already have a pending request for this course!", nil)
	}

	request := models.EnrollmentRequest{
		CourseID:      reqData.CourseID,
		FullName:      reqData.FullName,
		Phone:         reqData.Phone,
		Email:         reqData.Email,
		TransactionID: reqData.TransactionID,
		ReceiptURL:    reqData.ReceiptURL,
		Notes:         reqData.Notes,
		Status:        models.RequestPending,
	}

	if err := database.Database.Db.Create(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit request!", nil)
	}

	utils.SendRequestReceivedEmail(request.Email, request.FullName, course.Title)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrollment request submitted successfully!", fiber.Map{
		"request_id": request.ID,
		"status":     request.Status,
	})
}
