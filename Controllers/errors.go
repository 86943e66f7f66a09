package Controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"Handwerk/Models"
)

// fail maps the model layer's error kinds onto HTTP responses: validation
// errors become 400, state conflicts 409, missing records 404, everything
// else a rolled-back 500.
func fail(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, Models.ErrValidation):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": err.Error(),
		})
	case errors.Is(err, Models.ErrStateConflict):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":   "Not allowed in current status",
			"message": err.Error(),
		})
	case errors.Is(err, Models.ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not found",
			"message": err.Error(),
		})
	}

	log.Println(err)
	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Database error",
		"message": err.Error(),
	})
}

// failValidation renders per-field form errors.
func failValidation(ctx *fiber.Ctx, fields map[string]string) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "Validation failed",
		"fields": fields,
	})
}
