package enrollmentRoutes

import (
	controllers "lms/controllers/enrollment"
	"lms/middleware"
	validators "lms/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

// SetupEnrollmentRoutes sets up public and admin enrollment request routes
func SetupEnrollmentRoutes(app *fiber.App) {
	requestGroup := app.Group("/enrollment")

	// Public request submission, no auth required
	requestGroup.Post("/request", validators.SubmitRequest(), controllers.SubmitRequest)

	adminGroup := app.Group("/admin/enrollment")

	adminGroup.Get("/requests", middleware.JWTMiddleware, validators.RequestList(), controllers.ListRequests)
	adminGroup.Patch("/request/:request_id/verify", middleware.JWTMiddleware, validators.VerifyRequest(), controllers.VerifyRequest)
	adminGroup.Patch("/request/:request_id/reject", middleware.JWTMiddleware, validators.RejectRequest(), controllers.RejectRequest)
}
