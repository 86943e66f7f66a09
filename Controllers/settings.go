package Controllers

import (
	"github.com/gofiber/fiber/v2"

	"Handwerk/Models"
)

// GetSettings returns all tunables as a flat key/value map.
// GET /api/settings
func GetSettings(ctx *fiber.Ctx) error {
	var settings []Models.CompanySetting
	if err := Models.DB.Order("key ASC").Find(&settings).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve settings"})
	}

	values := make(map[string]string, len(settings))
	for _, s := range settings {
		values[s.Key] = s.Value
	}
	return ctx.JSON(values)
}

// UpdateSettings upserts the posted key/value pairs.
// PUT /api/settings
func UpdateSettings(ctx *fiber.Ctx) error {
	var values map[string]string
	if err := ctx.BodyParser(&values); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "message": err.Error()})
	}

	for key, value := range values {
		if err := Models.SetSetting(Models.DB, key, value); err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save setting " + key})
		}
	}
	return GetSettings(ctx)
}
