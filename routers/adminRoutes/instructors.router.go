package adminRoutes

import (
	controllers "lms/controllers/admin"
	"lms/middleware"
	validators "lms/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminInstructorRoutes sets up admin instructor management routes
func SetupAdminInstructorRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/instructor")

	adminGroup.Post("/create", middleware.JWTMiddleware, validators.CreateInstructor(), controllers.CreateInstructor)
	adminGroup.Get("/list", middleware.JWTMiddleware, validators.InstructorList(), controllers.ListInstructors)
	adminGroup.Patch("/user/:user_id/role", middleware.JWTMiddleware, validators.ChangeRole(), controllers.ChangeUserRole)
}
