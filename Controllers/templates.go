package Controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Handwerk/Models"
)

type TemplateRequest struct {
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description"`
	Quantity    float64          `json:"quantity"`
	UnitPrice   float64          `json:"unit_price"`
	ItemType    string           `json:"item_type" validate:"omitempty,oneof=standard labor"`
	SubItems    []SubItemRequest `json:"sub_items" validate:"dive"`
}

// GetTemplates retrieves all position templates.
// GET /api/templates
func GetTemplates(ctx *fiber.Ctx) error {
	var templates []Models.PositionTemplate
	if err := Models.DB.Preload("SubItems").Order("name ASC").Find(&templates).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve templates"})
	}
	return ctx.JSON(templates)
}

// CreateTemplate creates a position template with its sub-items.
// POST /api/templates
func CreateTemplate(ctx *fiber.Ctx) error {
	var req TemplateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "message": err.Error()})
	}
	if fields := validateStruct(req); fields != nil {
		return failValidation(ctx, fields)
	}

	itemType := req.ItemType
	if itemType == "" {
		itemType = Models.ItemTypeStandard
	}

	template := Models.PositionTemplate{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		ItemType:    itemType,
	}
	for _, sub := range req.SubItems {
		template.SubItems = append(template.SubItems, Models.PositionTemplateSubItem{
			Kind:          sub.Kind,
			RequiresOrder: sub.RequiresOrder,
			SupplierName:  sub.SupplierName,
			PartNumber:    sub.PartNumber,
			PartQuantity:  sub.PartQuantity,
			PartPrice:     sub.PartPrice,
			Hours:         sub.Hours,
			HourlyRate:    sub.HourlyRate,
			Quantity:      sub.Quantity,
			UnitPrice:     sub.UnitPrice,
		})
	}

	if err := Models.DB.Create(&template).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create template"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(template)
}

// DeleteTemplate removes a position template.
// DELETE /api/templates/:id
func DeleteTemplate(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid template ID"})
	}

	var template Models.PositionTemplate
	if err := Models.DB.First(&template, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	if err := Models.DB.Select("SubItems").Delete(&template).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete template"})
	}
	return ctx.JSON(fiber.Map{"message": "Template deleted"})
}
