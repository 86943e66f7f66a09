package Controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Handwerk/Models"
)

type OrderRequest struct {
	Status         string `json:"status" validate:"omitempty,oneof=planned in_progress completed cancelled"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	ProjectManager string `json:"project_manager"`
	Notes          string `json:"notes"`
}

// orderResponse flattens the quote-derived fields onto the order for display.
func orderResponse(order Models.Order) fiber.Map {
	return fiber.Map{
		"order":        order,
		"customer":     order.Quote.Customer,
		"total_amount": order.Quote.TotalAmount,
	}
}

// GetOrders retrieves all orders with their quotes and customers.
// GET /api/orders
func GetOrders(ctx *fiber.Ctx) error {
	query := Models.DB.Preload("Quote").Preload("Quote.Customer").Order("id DESC")
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []Models.Order
	if err := query.Find(&orders).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve orders"})
	}
	return ctx.JSON(orders)
}

// GetOrder retrieves one order with the full quote aggregate.
// GET /api/orders/:id
func GetOrder(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	var order Models.Order
	err = Models.DB.Preload("Quote").Preload("Quote.Customer").
		Preload("Quote.LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Preload("Quote.LineItems.SubItems").
		First(&order, id).Error
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}
	return ctx.JSON(orderResponse(order))
}

// UpdateOrder updates scheduling fields and drives the order status machine.
// Cancelling reverts the quote so it can be re-accepted later.
// PUT /api/orders/:id
func UpdateOrder(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	var req OrderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "message": err.Error()})
	}
	if fields := validateStruct(req); fields != nil {
		return failValidation(ctx, fields)
	}

	var order Models.Order
	err = Models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: order %d", Models.ErrNotFound, id)
			}
			return err
		}

		updates := map[string]interface{}{}
		if req.ProjectManager != "" {
			updates["project_manager"] = req.ProjectManager
		}
		if req.Notes != "" {
			updates["notes"] = req.Notes
		}
		if req.StartDate != "" {
			parsed, err := time.Parse("2006-01-02", req.StartDate)
			if err != nil {
				return fmt.Errorf("%w: start_date must be in YYYY-MM-DD format", Models.ErrValidation)
			}
			updates["start_date"] = parsed
		}
		if req.EndDate != "" {
			parsed, err := time.Parse("2006-01-02", req.EndDate)
			if err != nil {
				return fmt.Errorf("%w: end_date must be in YYYY-MM-DD format", Models.ErrValidation)
			}
			updates["end_date"] = parsed
		}

		if req.Status != "" && req.Status != order.Status {
			if !order.CanTransition(req.Status) {
				return fmt.Errorf("%w: cannot change order from %s to %s", Models.ErrStateConflict, order.Status, req.Status)
			}
			updates["status"] = req.Status
		}

		if len(updates) > 0 {
			if err := tx.Model(&order).Updates(updates).Error; err != nil {
				return err
			}
		}

		// Cancellation unlocks the quote for re-acceptance.
		if req.Status == Models.OrderStatusCancelled {
			if err := tx.Model(&Models.Quote{}).Where("id = ?", order.QuoteID).
				Update("status", Models.QuoteStatusAcceptedCancelled).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fail(ctx, err)
	}

	Models.DB.Preload("Quote").Preload("Quote.Customer").First(&order, order.ID)
	return ctx.JSON(orderResponse(order))
}
