package adminRoutes

import (
	controllers "lms/controllers/admin"
	"lms/middleware"
	validators "lms/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminStudentRoutes sets up admin student management routes
func SetupAdminStudentRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/student")

	adminGroup.Get("/list", middleware.JWTMiddleware, validators.StudentList(), controllers.ListStudents)
	adminGroup.Get("/:student_id", middleware.JWTMiddleware, validators.StudentID(), controllers.GetStudentDetails)
	adminGroup.Patch("/:student_id/block", middleware.JWTMiddleware, validators.StudentID(), controllers.ToggleStudentBlock)
	adminGroup.Patch("/:student_id/reset/password", middleware.JWTMiddleware, validators.StudentID(), controllers.ResetStudentPassword)
	adminGroup.Delete("/:student_id/course/:course_id/enrollment", middleware.JWTMiddleware, validators.RevokeEnrollment(), controllers.RevokeEnrollment)
}
