package controllers

import (
	"time"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
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

// ListStudents returns students with their enrollment counts, paginated
func ListStudents(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return nil
	}

	reqData, ok := c.Locals("validatedStudentList").(*struct {
		Page  *int   `json:"page"`
		Limit *int   `json:"limit"`
		Query string `json:"query"`
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

	query := database.Database.Db.Model(&models.User{}).
		Where("role = ? AND is_deleted = ?", "STUDENT", false)
	if reqData.Query != "" {
		like := "%" + reqData.Query + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to count students!", nil)
	}

	var students []models.User
	if err := query.Select("id, name, email, phone, is_blocked, last_login, created_at").
		Order("created_at desc").Offset(offset).Limit(limit).Find(&students).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
	}

	type studentRow struct {
		models.User
		EnrollmentCount int64 `json:"enrollment_count"`
	}

	rows := make([]studentRow, 0, len(students))
	for _, s := range students {
		row := studentRow{User: s}
		database.Database.Db.Model(&courseModels.Enrollment{}).
			Where("user_id = ?", s.ID).Count(&row.EnrollmentCount)
		rows = append(rows, row)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Students fetched successfully!", fiber.Map{
		"students": rows,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// GetStudentDetails returns a student's profile and per-course progress
func GetStudentDetails(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return nil
	}

	studentID := c.Locals("studentID").(int)

	var student models.User
	if err := database.Database.Db.Where("id = ? AND role = ? AND is_deleted = ?",
		studentID, "STUDENT", false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}
	student.Password = ""

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ?", studentID).Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type enrollmentRow struct {
		courseModels.Enrollment
		CourseTitle     string `json:"course_title"`
		CompletedTopics int64  `json:"completed_topics"`
		TotalTopics     int64  `json:"total_topics"`
	}

	rows := make([]enrollmentRow, 0, len(enrollments))
	for _, e := range enrollments {
		row := enrollmentRow{Enrollment: e}

		var course courseModels.Course
		if err := database.Database.Db.Select("title").Where("id = ?", e.CourseID).First(&course).Error; err == nil {
			row.CourseTitle = course.Title
		}
		database.Database.Db.Model(&courseModels.Topic{}).
			Where("course_id = ? AND is_deleted = ?", e.CourseID, false).Count(&row.TotalTopics)
		database.Database.Db.Model(&courseModels.Progress{}).
			Where("user_id = ? AND course_id = ? AND is_completed = ? AND is_deleted = ?",
				studentID, e.CourseID, true, false).Count(&row.CompletedTopics)

		rows = append(rows, row)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student details fetched successfully!", fiber.Map{
		"student":     student,
		"enrollments": rows,
	})
}

// ToggleStudentBlock blocks or unblocks a student's account
func ToggleStudentBlock(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return nil
	}

	studentID := c.Locals("studentID").(int)

	var student models.User
	if err := database.Database.Db.Where("id = ? AND role = ? AND is_deleted = ?",
		studentID, "STUDENT", false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	student.IsBlocked = !student.IsBlocked
	student.BlockedUntil = nil
	student.FailedLoginAttempts = 0
	if err := database.Database.Db.Save(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update student!", nil)
	}

	msg := "Student unblocked successfully!"
	if student.IsBlocked {
		msg = "Student blocked successfully!"
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, msg, fiber.Map{
		"student_id": student.ID,
		"is_blocked": student.IsBlocked,
	})
}

// ResetStudentPassword generates a new password and emails it to the student
func ResetStudentPassword(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return nil
	}

	studentID := c.Locals("studentID").(int)

	var student models.User
	if err := database.Database.Db.Where("id = ? AND role = ? AND is_deleted = ?",
		studentID, "STUDENT", false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	plainPassword := utils.GeneratePassword(10)
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(plainPassword), config.AppConfig.SaltRound)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset password!", nil)
	}

	updates := map[string]interface{}{
		"password":              string(hashedPassword),
		"failed_login_attempts": 0,
		"blocked_until":         nil,
		"updated_at":            time.Now(),
	}
	if err := database.Database.Db.Model(&student).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset password!", nil)
	}

	utils.SendPasswordResetEmail(student.Email, student.Name, plainPassword)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset successfully! New credentials emailed to the student.", nil)
}

// RevokeEnrollment revokes a student's access to a course
func RevokeEnrollment(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return nil
	}

	studentID := c.Locals("studentID").(int)
	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ?", studentID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}
	if enrollment.Status == courseModels.EnrollmentRevoked {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Enrollment is already revoked!", nil)
	}

	enrollment.Status = courseModels.EnrollmentRevoked
	if err := database.Database.Db.Save(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to revoke enrollment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment revoked successfully!", fiber.Map{
		"user_id":   studentID,
		"course_id": courseID,
		"status":    enrollment.Status,
	})
}
