package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course")

	// Course CRUD
	adminGroup.Post("/create", middleware.JWTMiddleware, validators.CreateCourseAdmin(), controllers.AdminCreateCourse)
	adminGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.AdminGetAllCourses)
	adminGroup.Put("/:id", middleware.JWTMiddleware, validators.UpdateCourseAdmin(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, validators.DeleteCourse(), controllers.AdminDeleteCourse)

	// Topic CRUD
	adminGroup.Post("/:id/topic", middleware.JWTMiddleware, validators.CreateTopic(), controllers.AdminCreateTopic)
	adminGroup.Get("/:id/topics", middleware.JWTMiddleware, validators.ListTopics(), controllers.AdminListTopics)
	adminGroup.Put("/:course_id/topic/:topic_id", middleware.JWTMiddleware, validators.UpdateTopic(), controllers.AdminUpdateTopic)
	adminGroup.Delete("/:course_id/topic/:topic_id", middleware.JWTMiddleware, validators.DeleteTopic(), controllers.AdminDeleteTopic)

	// Video CRUD
	adminGroup.Post("/topic/:topic_id/video", middleware.JWTMiddleware, validators.AddVideo(), controllers.AdminAddVideo)
	adminGroup.Put("/video/:video_id", middleware.JWTMiddleware, validators.UpdateVideo(), controllers.AdminUpdateVideo)
	adminGroup.Delete("/video/:video_id", middleware.JWTMiddleware, validators.DeleteVideo(), controllers.AdminDeleteVideo)

	// Tests and grading
	adminGroup.Post("/:course_id/topic/:topic_id/test", middleware.JWTMiddleware, validators.CreateTest(), controllers.AdminCreateTest)
	adminGroup.Get("/test/:test_id/attempts", middleware.JWTMiddleware, validators.ListAttempts(), controllers.AdminListAttempts)
	adminGroup.Patch("/test/attempt/:attempt_id/grade", middleware.JWTMiddleware, validators.GradeAttempt(), controllers.GradeAttempt)

	// Manual unlock
	adminGroup.Post("/:course_id/topic/:topic_id/unlock", middleware.JWTMiddleware, validators.UnlockTopic(), controllers.AdminUnlockTopic)

	// Certificates and reporting
	adminGroup.Post("/:id/certificate", middleware.JWTMiddleware, validators.IssueCertificate(), controllers.IssueCertificate)
	adminGroup.Get("/:id/report", middleware.JWTMiddleware, validators.CourseReport(), controllers.GetCourseReport)
}
