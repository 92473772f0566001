package enrollmentValidator

import (
	"strconv"
	"strings"

	"lms/middleware"
	"lms/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// SubmitRequest validates a public enrollment request payload
func SubmitRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID      uint   `json:"course_id" validate:"required"`
			FullName      string `json:"full_name" validate:"required,min=3,max=100"`
			Phone         string `json:"phone" validate:"required,len=10,numeric"`
			Email         string `json:"email" validate:"required,email"`
			TransactionID string `json:"transaction_id" validate:"required,min=4,max=64"`
			ReceiptURL    string `json:"receipt_url" validate:"required,url"`
			Notes         string `json:"notes" validate:"max=500"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.FullName = strings.TrimSpace(reqData.FullName)
		reqData.Email = strings.TrimSpace(reqData.Email)
		reqData.TransactionID = strings.TrimSpace(reqData.TransactionID)

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "CourseID":
					errors["course_id"] = "Course ID is required!"
				case "FullName":
					errors["full_name"] = "Full name must be between 3 and 100 characters!"
				case "Phone":
					errors["phone"] = "Phone must be a 10 digit number!"
				case "Email":
					errors["email"] = "Invalid email!"
				case "TransactionID":
					errors["transaction_id"] = "Transaction ID must be between 4 and 64 characters!"
				case "ReceiptURL":
					errors["receipt_url"] = "A valid receipt URL is required!"
				case "Notes":
					errors["notes"] = "Notes must be at most 500 characters!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		request := &models.EnrollmentRequest{
			CourseID:      reqData.CourseID,
			FullName:      reqData.FullName,
			Phone:         reqData.Phone,
			Email:         reqData.Email,
			TransactionID: reqData.TransactionID,
			ReceiptURL:    reqData.ReceiptURL,
			Notes:         strings.TrimSpace(reqData.Notes),
		}

		c.Locals("validatedEnrollmentRequest", request)
		return c.Next()
	}
}

// RequestList validates admin request listing query
func RequestList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page   *int   `json:"page"`
			Limit  *int   `json:"limit"`
			Status string `json:"status"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if reqData.Status != "" {
			validStatuses := map[string]bool{
				models.RequestPending:  true,
				models.RequestVerified: true,
				models.RequestRejected: true,
				models.RequestExpired:  true,
			}
			if !validStatuses[reqData.Status] {
				return middleware.ValidationErrorResponse(c, map[string]string{
					"status": "Status must be PENDING, VERIFIED, REJECTED, or EXPIRED!",
				})
			}
		}

		c.Locals("validatedRequestList", reqData)
		return c.Next()
	}
}

// VerifyRequest validates request verification
func VerifyRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID, ok := parseRequestID(c)
		if !ok {
			return nil
		}

		c.Locals("requestID", requestID)
		return c.Next()
	}
}

// RejectRequest validates request rejection
func RejectRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID, ok := parseRequestID(c)
		if !ok {
			return nil
		}

		reqData := new(struct {
			Reason string `json:"reason"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Reason = strings.TrimSpace(reqData.Reason)
		if reqData.Reason == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"reason": "A rejection reason is required!",
			})
		}

		c.Locals("requestID", requestID)
		c.Locals("validatedReject", reqData)
		return c.Next()
	}
}

func parseRequestID(c *fiber.Ctx) (int, bool) {
	idStr := strings.TrimSpace(c.Params("request_id"))
	if idStr == "" {
		middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Request ID is required!", nil)
		return 0, false
	}

	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Request ID!", nil)
		return 0, false
	}
	return id, true
}
