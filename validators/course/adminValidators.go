package courseValidator

import (
	"strconv"
	"strings"
	"time"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
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

// ============ Course Validators ============

// CreateCourseAdmin validates admin course creation request
func CreateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			ImageURL    string `json:"image_url"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.Description == "" {
			errors["description"] = "Description is required!"
		} else if len(reqData.Description) < 5 {
			errors["description"] = "Description must be at least 5 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourseAdmin validates admin course update request
func UpdateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseIDParam(c, "id", "Course ID")
		if !ok {
			return nil
		}

		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			ImageURL    string `json:"image_url"`
			IsActive    *bool  `json:"is_active"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)

		if reqData.Title != "" && len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.Description != "" && len(reqData.Description) < 5 {
			errors["description"] = "Description must be at least 5 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// DeleteCourse validates course deletion request
func DeleteCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseIDParam(c, "id", "Course ID")
		if !ok {
			return nil
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// ============ Topic Validators ============

// CreateTopic validates topic creation request
func CreateTopic() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseIDParam(c, "id", "Course ID")
		if !ok {
			return nil
		}

		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			OrderIndex  int    `json:"order_index"`
			IsPreview   bool   `json:"is_preview"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)

		if reqData.Title == "" {
			errors["title"] = "Topic title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Topic title must be at least 3 characters long!"
		}

		if reqData.OrderIndex < 1 {
			errors["order_index"] = "Order index must be at least 1!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedTopic", reqData)
		return c.Next()
	}
}

// UpdateTopic validates topic update request
func UpdateTopic() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseIDParam(c, "course_id", "Course ID")
		if !ok {
			return nil
		}
		topicID, ok := parseIDParam(c, "topic_id", "Topic ID")
		if !ok {
			return nil
		}

		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			OrderIndex  *int   `json:"order_index"`
			IsPreview   *bool  `json:"is_preview"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)

		if reqData.Title != "" && len(reqData.Title) < 3 {
			errors["title"] = "Topic title must be at least 3 characters long!"
		}

		if reqData.OrderIndex != nil && *reqData.OrderIndex < 1 {
			errors["order_index"] = "Order index must be at least 1!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("topicID", topicID)
		c.Locals("validatedTopicUpdate", reqData)
		return c.Next()
	}
}

// DeleteTopic validates topic deletion request
func DeleteTopic() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseIDParam(c, "course_id", "Course ID")
		if !ok {
			return nil
		}
		topicID, ok := parseIDParam(c, "topic_id", "Topic ID")
		if !ok {
			return nil
		}

		c.Locals("courseID", courseID)
		c.Locals("topicID", topicID)
		return c.Next()
	}
}

// ListTopics validates topic listing request
func ListTopics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseIDParam(c, "id", "Course ID")
		if !ok {
			return nil
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// ============ Video Validators ============

// AddVideo validates video creation request
func AddVideo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		topicID, ok := parseIDParam(c, "topic_id", "Topic ID")
		if !ok {
			return nil
		}

		reqData := new(struct {
			Title             string `json:"title"`
			YoutubeURL        string `json:"youtube_url"`
			AdminVideoURL     string `json:"admin_video_url"`
			HelperMaterialURL string `json:"helper_material_url"`
			DocumentURL       string `json:"document_url"`
			OrderIndex        int    `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)

		if reqData.Title == "" {
			errors["title"] = "Video title is required!"
		}

		if strings.TrimSpace(reqData.YoutubeURL) == "" && strings.TrimSpace(reqData.AdminVideoURL) == "" {
			errors["youtube_url"] = "Either a YouTube URL or an uploaded video URL is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("topicID", topicID)
		c.Locals("validatedVideo", reqData)
		return c.Next()
	}
}

// UpdateVideo validates video update request
func UpdateVideo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		videoID, ok := parseIDParam(c, "video_id", "Video ID")
		if !ok {
			return nil
		}

		reqData := new(struct {
			Title             string `json:"title"`
			YoutubeURL        string `json:"youtube_url"`
			AdminVideoURL     string `json:"admin_video_url"`
			HelperMaterialURL string `json:"helper_material_url"`
			DocumentURL       string `json:"document_url"`
			OrderIndex        *int   `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("videoID", videoID)
		c.Locals("validatedVideoUpdate", reqData)
		return c.Next()
	}
}

// DeleteVideo validates video deletion request
func DeleteVideo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		videoID, ok := parseIDParam(c, "video_id", "Video ID")
		if !ok {
			return nil
		}

		c.Locals("videoID", videoID)
		return c.Next()
	}
}

// ============ Test Validators ============

// CreateTest validates test creation request
func CreateTest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseIDParam(c, "course_id", "Course ID")
		if !ok {
			return nil
		}
		topicID, ok := parseIDParam(c, "topic_id", "Topic ID")
		if !ok {
			return nil
		}

		reqData := new(struct {
			Title       string     `json:"title"`
			ScheduledAt *time.Time `json:"scheduled_at"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)

		if reqData.Title == "" {
			errors["title"] = "Test title is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("topicID", topicID)
		c.Locals("validatedTest", reqData)
		return c.Next()
	}
}

// ListAttempts validates test attempt listing request
func ListAttempts() fiber.Handler {
	return func(c *fiber.Ctx) error {
		testID, ok := parseIDParam(c, "test_id", "Test ID")
		if !ok {
			return nil
		}

		c.Locals("testID", testID)
		return c.Next()
	}
}

// SubmitAttempt validates a student's test submission
func SubmitAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		testID, ok := parseIDParam(c, "test_id", "Test ID")
		if !ok {
			return nil
		}

		reqData := new(struct {
			Answers datatypes.JSON `json:"answers"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.Answers) == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"answers": "Answers are required!",
			})
		}

		c.Locals("testID", testID)
		c.Locals("validatedAttempt", reqData)
		return c.Next()
	}
}

// GradeAttempt validates admin grading request
func GradeAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		attemptID, ok := parseIDParam(c, "attempt_id", "Attempt ID")
		if !ok {
			return nil
		}

		reqData := new(struct {
			MarksObtained int `json:"marks_obtained"`
			TotalMarks    int `json:"total_marks"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.TotalMarks <= 0 {
			errors["total_marks"] = "Total marks must be a positive number!"
		}
		if reqData.MarksObtained < 0 {
			errors["marks_obtained"] = "Marks obtained cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("attemptID", attemptID)
		c.Locals("validatedGrade", reqData)
		return c.Next()
	}
}

// ============ Progress & Certificate Validators ============

// UnlockTopic validates admin manual unlock request
func UnlockTopic() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseIDParam(c, "course_id", "Course ID")
		if !ok {
			return nil
		}
		topicID, ok := parseIDParam(c, "topic_id", "Topic ID")
		if !ok {
			return nil
		}

		reqData := new(struct {
			UserID uint `json:"user_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.UserID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"user_id": "User ID is required!",
			})
		}

		c.Locals("courseID", courseID)
		c.Locals("topicID", topicID)
		c.Locals("validatedUnlock", reqData)
		return c.Next()
	}
}

// IssueCertificate validates certificate issuance request
func IssueCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseIDParam(c, "id", "Course ID")
		if !ok {
			return nil
		}

		reqData := new(struct {
			UserID         uint   `json:"user_id"`
			CertificateURL string `json:"certificate_url"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.UserID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"user_id": "User ID is required!",
			})
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedCertificate", reqData)
		return c.Next()
	}
}

// CourseReport validates course report request
func CourseReport() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseIDParam(c, "id", "Course ID")
		if !ok {
			return nil
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// CourseList validates paginated course list request
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		c.Locals("validatedCourseList", reqData)
		return c.Next()
	}
}
