package adminValidator

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

func parseIDParam(c *fiber.Ctx, name, label string) (int, bool) {
	idStr := strings.TrimSpace(c.Params(name))
	if idStr == "" {
		middleware.JsonResponse(c, fiber.StatusBadRequest, false, label+" is required!", nil)
		return 0, false
	}

	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+"!", nil)
		return 0, false
	}
	return id, true
}

// StudentList validates student listing query
func StudentList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int   `json:"page"`
			Limit *int   `json:"limit"`
			Query string `json:"query"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		c.Locals("validatedStudentList", reqData)
		return c.Next()
	}
}

// StudentID validates a student ID path parameter
func StudentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		studentID, ok := parseIDParam(c, "student_id", "Student ID")
		if !ok {
			return nil
		}

		c.Locals("studentID", studentID)
		return c.Next()
	}
}

// RevokeEnrollment validates enrollment revocation parameters
func RevokeEnrollment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		studentID, ok := parseIDParam(c, "student_id", "Student ID")
		if !ok {
			return nil
		}
		courseID, ok := parseIDParam(c, "course_id", "Course ID")
		if !ok {
			return nil
		}

		c.Locals("studentID", studentID)
		c.Locals("courseID", courseID)
		return c.Next()
	}
}
