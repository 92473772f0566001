package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// AdminAddVideo attaches a video to a topic
func AdminAddVideo(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return nil
	}

	topicID := c.Locals("topicID").(int)

	var topic courseModels.Topic
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", topicID, false).First(&topic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Topic not found!", nil)
	}

	reqData, ok := c.Locals("validatedVideo").(*struct {
		Title             string `json:"title"`
		YoutubeURL        string `json:"youtube_url"`
		AdminVideoURL     string `json:"admin_video_url"`
		HelperMaterialURL string `json:"helper_material_url"`
		DocumentURL       string `json:"document_url"`
		OrderIndex        int    `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	video := courseModels.Video{
		TopicID:           uint(topicID),
		Title:             reqData.Title,
		YoutubeURL:        reqData.YoutubeURL,
		AdminVideoURL:     reqData.AdminVideoURL,
		HelperMaterialURL: reqData.HelperMaterialURL,
		DocumentURL:       reqData.DocumentURL,
		OrderIndex:        reqData.OrderIndex,
	}

	if err := database.Database.Db.Create(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Video added successfully!", video)
}

// AdminUpdateVideo updates a video's details
func AdminUpdateVideo(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return nil
	}

	videoID := c.Locals("videoID").(int)

	var video courseModels.Video
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", videoID, false).First(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	reqData, ok := c.Locals("validatedVideoUpdate").(*struct {
		Title             string `json:"title"`
		YoutubeURL        string `json:"youtube_url"`
		AdminVideoURL     string `json:"admin_video_url"`
		HelperMaterialURL string `json:"helper_material_url"`
		DocumentURL       string `json:"document_url"`
		OrderIndex        *int   `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		video.Title = reqData.Title
	}
	if reqData.YoutubeURL != "" {
		video.YoutubeURL = reqData.YoutubeURL
	}
	if reqData.AdminVideoURL != "" {
		video.AdminVideoURL = reqData.AdminVideoURL
	}
	if reqData.HelperMaterialURL != "" {
		video.HelperMaterialURL = reqData.HelperMaterialURL
	}
	if reqData.DocumentURL != "" {
		video.DocumentURL = reqData.DocumentURL
	}
	if reqData.OrderIndex != nil {
		video.OrderIndex = *reqData.OrderIndex
	}

	if err := database.Database.Db.Save(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video updated successfully!", video)
}

// AdminDeleteVideo removes a video from a topic
func AdminDeleteVideo(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return nil
	}

	videoID := c.Locals("videoID").(int)

	var video courseModels.Video
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", videoID, false).First(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	if err := database.Database.Db.Model(&video).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video deleted successfully!", nil)
}
