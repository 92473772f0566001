package controllers

import (
	"fmt"
	"strings"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// IssueCertificate issues a completion certificate once a student has finished every topic
func IssueCertificate(c *fiber.Ctx) error {
	admin, ok := requireAdmin(c)
	if !ok {
		return nil
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedCertificate").(*struct {
		UserID         uint   `json:"user_id"`
		CertificateURL string `json:"certificate_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var student models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.UserID, false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ?", reqData.UserID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student is not enrolled in this course!", nil)
	}
	if enrollment.Status == courseModels.EnrollmentRevoked {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Enrollment has been revoked!", nil)
	}

	var existing courseModels.Certificate
	if err := database.Database.Db.Where("user_id = ? AND course_id = ?", reqData.UserID, courseID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate already issued for this course!", existing)
	}

	var totalTopics int64
	if err := database.Database.Db.Model(&courseModels.Topic{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&totalTopics).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check course topics!", nil)
	}
	if totalTopics == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course has no topics!", nil)
	}

	var completedTopics int64
	if err := database.Database.Db.Model(&courseModels.Progress{}).
		Where("user_id = ? AND course_id = ? AND is_completed = ? AND is_deleted = ?",
			reqData.UserID, courseID, true, false).Count(&completedTopics).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check student progress!", nil)
	}
	if completedTopics < totalTopics {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
			fmt.Sprintf("Student has completed %d of %d topics!", completedTopics, totalTopics), nil)
	}

	now := time.Now()
	certNumber := fmt.Sprintf("CERT-%d-%s", courseID, strings.ToUpper(uuid.New().String()[:8]))

	certificate := courseModels.Certificate{
		UserID:            reqData.UserID,
		CourseID:          uint(courseID),
		EnrollmentID:      enrollment.ID,
		CertificateNumber: certNumber,
		CertificateURL:    reqData.CertificateURL,
		IssuedBy:          admin.ID,
		IssuedAt:          now,
	}

	if err := database.Database.Db.Create(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	if enrollment.Status != courseModels.EnrollmentCompleted {
		enrollment.Status = courseModels.EnrollmentCompleted
		enrollment.CompletedAt = &now
		if err := database.Database.Db.Save(&enrollment).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update enrollment!", nil)
		}
	}

	utils.SendCertificateEmail(student.Email, student.Name, course.Title, certNumber)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate issued successfully!", certificate)
}

// GetUserCertificates lists the logged-in user's certificates
func GetUserCertificates(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	var certificates []courseModels.Certificate
	if err := database.Database.Db.Where("user_id = ?", userID).
		Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	type certRow struct {
		courseModels.Certificate
		CourseTitle string `json:"course_title"`
	}

	rows := make([]certRow, 0, len(certificates))
	for _, cert := range certificates {
		row := certRow{Certificate: cert}
		var course courseModels.Course
		if err := database.Database.Db.Select("title").Where("id = ?", cert.CourseID).First(&course).Error; err == nil {
			row.CourseTitle = course.Title
		}
		rows = append(rows, row)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": rows,
		"total":        len(rows),
	})
}
