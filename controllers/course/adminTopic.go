package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateTopic adds a topic to a course
func AdminCreateTopic(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return nil
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedTopic").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		OrderIndex  int    `json:"order_index"`
		IsPreview   bool   `json:"is_preview"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// order_index must stay unique within the course
	var clash courseModels.Topic
	if err := database.Database.Db.Where("course_id = ? AND order_index = ? AND is_deleted = ?",
		courseID, reqData.OrderIndex, false).First(&clash).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A topic with this order index already exists!", nil)
	}

	topic := courseModels.Topic{
		CourseID:    uint(courseID),
		Title:       reqData.Title,
		Description: reqData.Description,
		OrderIndex:  reqData.OrderIndex,
		IsPreview:   reqData.IsPreview,
	}

	if err := database.Database.Db.Create(&topic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create topic!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Topic created successfully!", topic)
}

// AdminUpdateTopic updates a topic
func AdminUpdateTopic(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return nil
	}

	courseID := c.Locals("courseID").(int)
	topicID := c.Locals("topicID").(int)

	var topic courseModels.Topic
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", topicID, courseID, false).First(&topic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Topic not found!", nil)
	}

	reqData, ok := c.Locals("validatedTopicUpdate").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		OrderIndex  *int   `json:"order_index"`
		IsPreview   *bool  `json:"is_preview"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		topic.Title = reqData.Title
	}
	if reqData.Description != "" {
		topic.Description = reqData.Description
	}
	if reqData.OrderIndex != nil && *reqData.OrderIndex != topic.OrderIndex {
		var clash courseModels.Topic
		if err := database.Database.Db.Where("course_id = ? AND order_index = ? AND is_deleted = ? AND id <> ?",
			courseID, *reqData.OrderIndex, false, topic.ID).First(&clash).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "A topic with this order index already exists!", nil)
		}
		topic.OrderIndex = *reqData.OrderIndex
	}
	if reqData.IsPreview != nil {
		topic.IsPreview = *reqData.IsPreview
	}

	if err := database.Database.Db.Save(&topic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update topic!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Topic updated successfully!", topic)
}

// AdminDeleteTopic soft-deletes a topic
func AdminDeleteTopic(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return nil
	}

	courseID := c.Locals("courseID").(int)
	topicID := c.Locals("topicID").(int)

	var topic courseModels.Topic
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", topicID, courseID, false).First(&topic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Topic not found!", nil)
	}

	if err := database.Database.Db.Model(&topic).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete topic!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Topic deleted successfully!", nil)
}

// AdminListTopics lists a course's topics in order
func AdminListTopics(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return nil
	}

	courseID := c.Locals("courseID").(int)

	var topics []courseModels.Topic
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&topics).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch topics!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Topics fetched successfully!", fiber.Map{
		"topics": topics,
		"total":  len(topics),
	})
}
