package controllers

import (
	"log"

	"lms/config"
	authController "lms/controllers/auth"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// CreateInstructor provisions an instructor account with a generated password
func CreateInstructor(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return nil
	}

	reqData, ok := c.Locals("validatedInstructor").(*struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var existing models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A user with this email already exists!", nil)
	}

	plainPassword := utils.GeneratePassword(10)
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(plainPassword), config.AppConfig.SaltRound)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create instructor!", nil)
	}

	instructor := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Phone:    reqData.Phone,
		Role:     "INSTRUCTOR",
		Password: string(hashedPassword),
	}

	if err := database.Database.Db.Create(&instructor).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create instructor!", nil)
	}

	if err := authController.SeedPermissions(database.Database.Db, instructor.Role, instructor.ID); err != nil {
		log.Printf("Failed to seed permissions for instructor %d: %v", instructor.ID, err)
	}

	utils.SendInstructorWelcomeEmail(instructor.Email, instructor.Name, plainPassword)

	instructor.Password = ""
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Instructor created successfully!", instructor)
}

// ListInstructors returns all instructor accounts, paginated
func ListInstructors(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return nil
	}

	reqData, _ := c.Locals("validatedInstructorList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil && *reqData.Page > 0 {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil && *reqData.Limit > 0 {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	query := database.Database.Db.Model(&models.User{}).
		Where("role = ? AND is_deleted = ?", "INSTRUCTOR", false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to count instructors!", nil)
	}

	var instructors []models.User
	if err := query.Select("id, name, email, phone, is_blocked, last_login, created_at").
		Order("created_at desc").Offset(offset).Limit(limit).Find(&instructors).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch instructors!", nil)
	}

	type instructorRow struct {
		models.User
		CoursesCreated int64 `json:"courses_created"`
	}

	rows := make([]instructorRow, 0, len(instructors))
	for _, i := range instructors {
		row := instructorRow{User: i}
		database.Database.Db.Model(&courseModels.Course{}).
			Where("created_by = ? AND is_deleted = ?", i.ID, false).Count(&row.CoursesCreated)
		rows = append(rows, row)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Instructors fetched successfully!", fiber.Map{
		"instructors": rows,
		"total":       total,
		"page":        page,
		"limit":       limit,
	})
}

// ChangeUserRole switches a user between STUDENT and INSTRUCTOR, reseeding
// their permission set
func ChangeUserRole(c *fiber.Ctx) error {
	admin, ok := requireAdmin(c)
	if !ok {
		return nil
	}

	userID := c.Locals("targetUserID").(int)

	reqData, ok := c.Locals("validatedRoleChange").(*struct {
		Role string `json:"role"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if uint(userID) == admin.ID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot change your own role!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}
	if user.Role == "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Admin roles cannot be changed here!", nil)
	}
	if user.Role == reqData.Role {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "User already has this role!", fiber.Map{
			"user_id": user.ID,
			"role":    user.Role,
		})
	}

	tx := database.Database.Db.Begin()

	if err := tx.Model(&user).Update("role", reqData.Role).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
	}

	// Replace the old permission set with the new role's defaults
	if err := tx.Where("user_id = ?", user.ID).Delete(&models.Permission{}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update permissions!", nil)
	}
	if err := authController.SeedPermissions(tx, reqData.Role, user.ID); err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update permissions!", nil)
	}

	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role updated successfully!", fiber.Map{
		"user_id": user.ID,
		"role":    reqData.Role,
	})
}
