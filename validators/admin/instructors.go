package adminValidator

import (
	"regexp"
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
var phonePattern = regexp.MustCompile(`^\d{10}$`)

// CreateInstructor validates instructor account creation
func CreateInstructor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name  string `json:"name"`
			Email string `json:"email"`
			Phone string `json:"phone"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.Email = strings.TrimSpace(reqData.Email)

		if len(reqData.Name) < 3 {
			errors["name"] = "Name must be at least 3 characters long!"
		}

		if reqData.Email == "" || !emailPattern.MatchString(reqData.Email) {
			errors["email"] = "Invalid email!"
		}

		if reqData.Phone == "" || !phonePattern.MatchString(reqData.Phone) {
			errors["phone"] = "Invalid phone number!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedInstructor", reqData)
		return c.Next()
	}
}

// InstructorList validates instructor listing query
func InstructorList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		c.Locals("validatedInstructorList", reqData)
		return c.Next()
	}
}

// ChangeRole validates a role assignment request
func ChangeRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := parseIDParam(c, "user_id", "User ID")
		if !ok {
			return nil
		}

		reqData := new(struct {
			Role string `json:"role"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Role = strings.ToUpper(strings.TrimSpace(reqData.Role))
		if reqData.Role != "STUDENT" && reqData.Role != "INSTRUCTOR" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"role": "Role must be STUDENT or INSTRUCTOR!",
			})
		}

		c.Locals("targetUserID", userID)
		c.Locals("validatedRoleChange", reqData)
		return c.Next()
	}
}
