package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all student-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	userGroup := app.Group("/course")

	// Course listing and details
	userGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)
	userGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseDetails(), controllers.GetCourseDetails)

	// Progress
	userGroup.Get("/:id/progress", middleware.JWTMiddleware, validators.MyProgress(), controllers.GetMyProgress)
	userGroup.Post("/:course_id/topic/:topic_id/complete", middleware.JWTMiddleware, validators.MarkComplete(), controllers.MarkTopicComplete)

	// Tests
	userGroup.Post("/test/:test_id/submit", middleware.JWTMiddleware, validators.SubmitAttempt(), controllers.SubmitAttempt)
	userGroup.Get("/test/attempts/my", middleware.JWTMiddleware, controllers.GetMyAttempts)

	// Certificates
	userGroup.Get("/certificates/my", middleware.JWTMiddleware, controllers.GetUserCertificates)
}
