package Models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Attachment kinds.
const (
	AttachmentKindPhoto = "photo"
	AttachmentKindPlan  = "plan"
)

// Attachment is an uploaded photo or plan document linked to a quote. Meta
// carries image dimensions and thumbnail path for photos as JSON.
type Attachment struct {
	gorm.Model
	QuoteID    uint           `json:"quote_id" gorm:"not null;index"`
	Kind       string         `json:"kind" gorm:"size:20;not null"`
	FileName   string         `json:"file_name" gorm:"size:255;not null"`
	StoredPath string         `json:"stored_path" gorm:"size:500;not null"`
	Meta       datatypes.JSON `json:"meta"`
}
