package courseValidator

import (
	"github.com/gofiber/fiber/v2"
)

// CourseDetails validates course details request
func CourseDetails() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseIDParam(c, "id", "Course ID")
		if !ok {
			return nil
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// MyProgress validates a student's own progress request
func MyProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseIDParam(c, "id", "Course ID")
		if !ok {
			return nil
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// MarkComplete validates a self-reported topic completion
func MarkComplete() fiber.Handler {
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
