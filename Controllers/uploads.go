package Controllers

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"Handwerk/Models"
)

var photoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// UploadDir returns the attachment directory, created on demand.
func UploadDir() string {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "uploads"
	}
	_ = os.MkdirAll(dir, 0755)
	return dir
}

type attachmentMeta struct {
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Size      int64  `json:"size"`
}

// UploadAttachment stores a photo or plan document for a quote. Photos are
// limited to image types and get a thumbnail; plans may also be PDFs.
// POST /api/quotes/:id/attachments
func UploadAttachment(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid quote ID"})
	}

	var quote Models.Quote
	if err := Models.DB.First(&quote, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quote not found"})
	}

	kind := ctx.FormValue("kind", Models.AttachmentKindPhoto)
	if kind != Models.AttachmentKindPhoto && kind != Models.AttachmentKindPlan {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "kind must be photo or plan"})
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file uploaded"})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := photoExtensions[ext]
	if kind == Models.AttachmentKindPlan {
		allowed = allowed || ext == ".pdf"
	}
	if !allowed {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "File type not allowed",
			"message": fmt.Sprintf("extension %s is not accepted for %s uploads", ext, kind),
		})
	}

	storedName := fmt.Sprintf("%d_%d%s", quote.ID, time.Now().UnixNano(), ext)
	storedPath := filepath.Join(UploadDir(), storedName)
	if err := ctx.SaveFile(file, storedPath); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store file"})
	}

	meta := attachmentMeta{Size: file.Size}
	if photoExtensions[ext] {
		if img, err := imaging.Open(storedPath); err == nil {
			bounds := img.Bounds()
			meta.Width = bounds.Dx()
			meta.Height = bounds.Dy()

			thumb := imaging.Fit(img, 400, 400, imaging.Lanczos)
			thumbPath := filepath.Join(UploadDir(), "thumb_"+storedName)
			if err := imaging.Save(thumb, thumbPath); err == nil {
				meta.Thumbnail = thumbPath
			}
		}
	}
	metaJSON, _ := json.Marshal(meta)

	attachment := Models.Attachment{
		QuoteID:    quote.ID,
		Kind:       kind,
		FileName:   file.Filename,
		StoredPath: storedPath,
		Meta:       datatypes.JSON(metaJSON),
	}
	if err := Models.DB.Create(&attachment).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save attachment"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(attachment)
}

// GetAttachment streams a stored file.
// GET /api/attachments/:id
func GetAttachment(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid attachment ID"})
	}

	var attachment Models.Attachment
	if err := Models.DB.First(&attachment, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Attachment not found"})
	}
	return ctx.SendFile(attachment.StoredPath)
}

// DeleteAttachment removes the record and the stored files.
// DELETE /api/attachments/:id
func DeleteAttachment(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid attachment ID"})
	}

	var attachment Models.Attachment
	if err := Models.DB.First(&attachment, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Attachment not found"})
	}

	var meta attachmentMeta
	_ = json.Unmarshal(attachment.Meta, &meta)

	if err := Models.DB.Delete(&attachment).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete attachment"})
	}

	_ = os.Remove(attachment.StoredPath)
	if meta.Thumbnail != "" {
		_ = os.Remove(meta.Thumbnail)
	}
	return ctx.JSON(fiber.Map{"message": "Attachment deleted"})
}
