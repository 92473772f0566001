package course

import "gorm.io/gorm"

// Video represents a lecture video attached to a topic
type Video struct {
	gorm.Model
	TopicID           uint   `json:"topic_id" gorm:"index;not null"`
	Title             string `json:"title"`
	YoutubeURL        string `json:"youtube_url"`
	AdminVideoURL     string `json:"admin_video_url"`     // Self-hosted upload, preferred over YouTube when set
	HelperMaterialURL string `json:"helper_material_url"` // Supporting notes/slides
	DocumentURL       string `json:"document_url"`
	OrderIndex        int    `json:"order_index" gorm:"default:0"`
	IsDeleted         bool   `gorm:"default:false"`
}
