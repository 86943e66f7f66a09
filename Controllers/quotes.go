package Controllers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Handwerk/Models"
)

type QuoteRequest struct {
	CustomerID         uint     `json:"customer_id" validate:"required"`
	ProjectDescription string   `json:"project_description"`
	MarkupPercent      *float64 `json:"markup_percent"`
	ValidUntil         string   `json:"valid_until"`
}

type LineItemRequest struct {
	Position    int     `json:"position"`
	Description string  `json:"description" validate:"required"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	ItemType    string  `json:"item_type" validate:"omitempty,oneof=standard labor"`
}

// LineItemUpdateRequest uses pointers throughout so an omitted field leaves
// the stored value alone instead of zeroing it.
type LineItemUpdateRequest struct {
	Position    *int     `json:"position"`
	Description *string  `json:"description"`
	Quantity    *float64 `json:"quantity"`
	UnitPrice   *float64 `json:"unit_price"`
	ItemType    *string  `json:"item_type" validate:"omitempty,oneof=standard labor"`
}

type SubItemRequest struct {
	Kind string `json:"kind" validate:"required,oneof=ordered_part labor_operation other"`

	RequiresOrder bool    `json:"requires_order"`
	SupplierName  string  `json:"supplier_name"`
	PartNumber    string  `json:"part_number"`
	PartQuantity  string  `json:"part_quantity"`
	PartPrice     float64 `json:"part_price"`
	Hours         float64 `json:"hours"`
	HourlyRate    float64 `json:"hourly_rate"`
	Quantity      string  `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
}

type QuoteStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// editableQuote loads a quote and rejects the mutation once it is accepted.
func editableQuote(tx *gorm.DB, quoteID uint) (*Models.Quote, error) {
	var quote Models.Quote
	if err := tx.First(&quote, quoteID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: quote %d", Models.ErrNotFound, quoteID)
		}
		return nil, err
	}
	if !quote.Editable() {
		return nil, fmt.Errorf("%w: quote %s is accepted and frozen", Models.ErrStateConflict, quote.Number)
	}
	return &quote, nil
}

// GetQuotes retrieves all quotes, optionally filtered by status or customer.
// GET /api/quotes
func GetQuotes(ctx *fiber.Ctx) error {
	query := Models.DB.Preload("Customer").Order("id DESC")
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID := ctx.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	var quotes []Models.Quote
	if err := query.Find(&quotes).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve quotes"})
	}
	return ctx.JSON(quotes)
}

// GetQuote retrieves one quote with its full line item tree.
// GET /api/quotes/:id
func GetQuote(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid quote ID"})
	}

	var quote Models.Quote
	err = Models.DB.Preload("Customer").Preload("Attachments").
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Preload("LineItems.SubItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&quote, id).Error
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quote not found"})
	}
	return ctx.JSON(quote)
}

// CreateQuote creates a new draft quote with the next quote number.
// POST /api/quotes
func CreateQuote(ctx *fiber.Ctx) error {
	var req QuoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "message": err.Error()})
	}
	if fields := validateStruct(req); fields != nil {
		return failValidation(ctx, fields)
	}

	var customer Models.Customer
	if err := Models.DB.First(&customer, req.CustomerID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	markup := 15.0
	if req.MarkupPercent != nil {
		markup = *req.MarkupPercent
	}

	var validUntil *time.Time
	if req.ValidUntil != "" {
		parsed, err := time.Parse("2006-01-02", req.ValidUntil)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "Invalid date format",
				"message": "valid_until must be in YYYY-MM-DD format",
			})
		}
		validUntil = &parsed
	}

	var quote Models.Quote
	err := Models.DB.Transaction(func(tx *gorm.DB) error {
		number, err := Models.NextQuoteNumber(tx, time.Now())
		if err != nil {
			return err
		}
		quote = Models.Quote{
			Number:             number,
			CustomerID:         req.CustomerID,
			ProjectDescription: req.ProjectDescription,
			Status:             Models.QuoteStatusDraft,
			MarkupPercent:      markup,
			ValidUntil:         validUntil,
		}
		return tx.Create(&quote).Error
	})
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(quote)
}

// UpdateQuote updates the header fields of a quote. Accepted quotes are
// frozen; markup changes re-run the total pipeline.
// PUT /api/quotes/:id
func UpdateQuote(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid quote ID"})
	}

	var req QuoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "message": err.Error()})
	}

	var updated *Models.Quote
	err = Models.DB.Transaction(func(tx *gorm.DB) error {
		quote, err := editableQuote(tx, uint(id))
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if req.CustomerID != 0 {
			updates["customer_id"] = req.CustomerID
		}
		if req.ProjectDescription != "" {
			updates["project_description"] = req.ProjectDescription
		}
		if req.MarkupPercent != nil {
			updates["markup_percent"] = *req.MarkupPercent
		}
		if req.ValidUntil != "" {
			parsed, err := time.Parse("2006-01-02", req.ValidUntil)
			if err != nil {
				return fmt.Errorf("%w: valid_until must be in YYYY-MM-DD format", Models.ErrValidation)
			}
			updates["valid_until"] = parsed
		}
		if len(updates) > 0 {
			if err := tx.Model(quote).Updates(updates).Error; err != nil {
				return err
			}
		}

		updated, err = Models.RecalculateQuote(tx, quote.ID)
		return err
	})
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(updated)
}

// DeleteQuote removes a quote and its line item tree. Accepted quotes must
// have their order cancelled first.
// DELETE /api/quotes/:id
func DeleteQuote(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid quote ID"})
	}

	err = Models.DB.Transaction(func(tx *gorm.DB) error {
		quote, err := editableQuote(tx, uint(id))
		if err != nil {
			return err
		}
		return tx.Select("LineItems", "Attachments").Delete(quote).Error
	})
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(fiber.Map{"message": "Quote deleted"})
}

// ChangeQuoteStatus drives the quote lifecycle. Accepting creates the order
// and the per-supplier purchase buckets in the same transaction.
// POST /api/quotes/:id/status
func ChangeQuoteStatus(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid quote ID"})
	}

	var req QuoteStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "message": err.Error()})
	}
	if fields := validateStruct(req); fields != nil {
		return failValidation(ctx, fields)
	}

	var quote Models.Quote
	var order *Models.Order
	err = Models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&quote, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: quote %d", Models.ErrNotFound, id)
			}
			return err
		}
		if !quote.CanTransition(req.Status) {
			return fmt.Errorf("%w: cannot change quote from %s to %s", Models.ErrStateConflict, quote.Status, req.Status)
		}

		if err := tx.Model(&quote).Update("status", req.Status).Error; err != nil {
			return err
		}
		quote.Status = req.Status

		if req.Status != Models.QuoteStatusAccepted {
			return nil
		}

		// Acceptance: totals are frozen into the cache, the order is opened
		// and the ordered parts are bucketed per supplier.
		if _, err := Models.RecalculateQuote(tx, quote.ID); err != nil {
			return err
		}

		existing, err := Models.ActiveOrderForQuote(tx, quote.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: quote %s already has order %s", Models.ErrStateConflict, quote.Number, existing.Number)
		}

		number, err := Models.NextOrderNumber(tx, time.Now())
		if err != nil {
			return err
		}
		order = &Models.Order{
			Number:  number,
			QuoteID: quote.ID,
			Status:  Models.OrderStatusPlanned,
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		_, err = Models.BuildSupplierOrders(tx, quote.ID)
		return err
	})
	if err != nil {
		return fail(ctx, err)
	}

	response := fiber.Map{"message": "Status changed", "status": quote.Status}
	if order != nil {
		response["order"] = order
	}
	return ctx.JSON(response)
}

// CreateLineItem adds a line item to a quote.
// POST /api/quotes/:id/line-items
func CreateLineItem(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid quote ID"})
	}

	var req LineItemRequest
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

	var item Models.LineItem
	err = Models.DB.Transaction(func(tx *gorm.DB) error {
		quote, err := editableQuote(tx, uint(id))
		if err != nil {
			return err
		}

		position := req.Position
		if position == 0 {
			var maxPos int
			tx.Model(&Models.LineItem{}).Where("quote_id = ?", quote.ID).
				Select("COALESCE(MAX(position), 0)").Scan(&maxPos)
			position = maxPos + 1
		}

		item = Models.LineItem{
			QuoteID:     quote.ID,
			Position:    position,
			Description: req.Description,
			Quantity:    req.Quantity,
			UnitPrice:   req.UnitPrice,
			ItemType:    itemType,
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}

		_, err = Models.RecalculateQuote(tx, quote.ID)
		return err
	})
	if err != nil {
		return fail(ctx, err)
	}

	Models.DB.First(&item, item.ID)
	return ctx.Status(fiber.StatusCreated).JSON(item)
}

// UpdateLineItem updates a line item and refreshes the quote totals.
// PUT /api/line-items/:id
func UpdateLineItem(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid line item ID"})
	}

	var req LineItemUpdateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "message": err.Error()})
	}
	if fields := validateStruct(req); fields != nil {
		return failValidation(ctx, fields)
	}

	var item Models.LineItem
	err = Models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: line item %d", Models.ErrNotFound, id)
			}
			return err
		}
		if _, err := editableQuote(tx, item.QuoteID); err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if req.Quantity != nil {
			updates["quantity"] = *req.Quantity
		}
		if req.UnitPrice != nil {
			updates["unit_price"] = *req.UnitPrice
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Position != nil {
			updates["position"] = *req.Position
		}
		if req.ItemType != nil {
			updates["item_type"] = *req.ItemType
		}
		if len(updates) > 0 {
			if err := tx.Model(&item).Updates(updates).Error; err != nil {
				return err
			}
		}

		_, err := Models.RecalculateQuote(tx, item.QuoteID)
		return err
	})
	if err != nil {
		return fail(ctx, err)
	}

	Models.DB.Preload("SubItems").First(&item, item.ID)
	return ctx.JSON(item)
}

// DeleteLineItem removes a line item with its sub-items.
// DELETE /api/line-items/:id
func DeleteLineItem(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid line item ID"})
	}

	err = Models.DB.Transaction(func(tx *gorm.DB) error {
		var item Models.LineItem
		if err := tx.First(&item, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: line item %d", Models.ErrNotFound, id)
			}
			return err
		}
		if _, err := editableQuote(tx, item.QuoteID); err != nil {
			return err
		}
		if err := tx.Select("SubItems").Delete(&item).Error; err != nil {
			return err
		}

		_, err := Models.RecalculateQuote(tx, item.QuoteID)
		return err
	})
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(fiber.Map{"message": "Line item deleted"})
}

// applySubItemRequest copies the kind-specific fields onto a sub-item.
func applySubItemRequest(sub *Models.SubItem, req SubItemRequest) {
	sub.Kind = req.Kind
	sub.RequiresOrder = req.RequiresOrder
	sub.SupplierName = req.SupplierName
	sub.PartNumber = req.PartNumber
	sub.PartQuantity = req.PartQuantity
	sub.PartPrice = req.PartPrice
	sub.Hours = req.Hours
	sub.HourlyRate = req.HourlyRate
	sub.Quantity = req.Quantity
	sub.UnitPrice = req.UnitPrice
}

// CreateSubItem adds a sub-item to a line item.
// POST /api/line-items/:id/sub-items
func CreateSubItem(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid line item ID"})
	}

	var req SubItemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "message": err.Error()})
	}
	if fields := validateStruct(req); fields != nil {
		return failValidation(ctx, fields)
	}

	var sub Models.SubItem
	err = Models.DB.Transaction(func(tx *gorm.DB) error {
		var item Models.LineItem
		if err := tx.First(&item, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: line item %d", Models.ErrNotFound, id)
			}
			return err
		}
		if _, err := editableQuote(tx, item.QuoteID); err != nil {
			return err
		}

		sub = Models.SubItem{LineItemID: item.ID}
		applySubItemRequest(&sub, req)
		if err := tx.Create(&sub).Error; err != nil {
			return err
		}

		_, err := Models.RecalculateQuote(tx, item.QuoteID)
		return err
	})
	if err != nil {
		return fail(ctx, err)
	}

	Models.DB.First(&sub, sub.ID)
	return ctx.Status(fiber.StatusCreated).JSON(sub)
}

// UpdateSubItem updates a sub-item and refreshes the pricing chain.
// PUT /api/sub-items/:id
func UpdateSubItem(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid sub-item ID"})
	}

	var req SubItemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "message": err.Error()})
	}
	if fields := validateStruct(req); fields != nil {
		return failValidation(ctx, fields)
	}

	var sub Models.SubItem
	err = Models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&sub, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: sub-item %d", Models.ErrNotFound, id)
			}
			return err
		}

		var item Models.LineItem
		if err := tx.First(&item, sub.LineItemID).Error; err != nil {
			return err
		}
		if _, err := editableQuote(tx, item.QuoteID); err != nil {
			return err
		}

		applySubItemRequest(&sub, req)
		if err := tx.Save(&sub).Error; err != nil {
			return err
		}

		_, err := Models.RecalculateQuote(tx, item.QuoteID)
		return err
	})
	if err != nil {
		return fail(ctx, err)
	}

	Models.DB.First(&sub, sub.ID)
	return ctx.JSON(sub)
}

// DeleteSubItem removes a sub-item.
// DELETE /api/sub-items/:id
func DeleteSubItem(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid sub-item ID"})
	}

	err = Models.DB.Transaction(func(tx *gorm.DB) error {
		var sub Models.SubItem
		if err := tx.First(&sub, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: sub-item %d", Models.ErrNotFound, id)
			}
			return err
		}

		var item Models.LineItem
		if err := tx.First(&item, sub.LineItemID).Error; err != nil {
			return err
		}
		if _, err := editableQuote(tx, item.QuoteID); err != nil {
			return err
		}
		if err := tx.Delete(&sub).Error; err != nil {
			return err
		}

		_, err := Models.RecalculateQuote(tx, item.QuoteID)
		return err
	})
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(fiber.Map{"message": "Sub-item deleted"})
}

// ApplyTemplate copies a position template into a quote as a new line item.
// POST /api/quotes/:id/apply-template/:templateId
func ApplyTemplate(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid quote ID"})
	}
	templateID, err := strconv.Atoi(ctx.Params("templateId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid template ID"})
	}

	var item Models.LineItem
	err = Models.DB.Transaction(func(tx *gorm.DB) error {
		quote, err := editableQuote(tx, uint(id))
		if err != nil {
			return err
		}

		var template Models.PositionTemplate
		if err := tx.Preload("SubItems").First(&template, templateID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: template %d", Models.ErrNotFound, templateID)
			}
			return err
		}

		var maxPos int
		tx.Model(&Models.LineItem{}).Where("quote_id = ?", quote.ID).
			Select("COALESCE(MAX(position), 0)").Scan(&maxPos)

		item = template.ToLineItem(quote.ID, maxPos+1)
		if err := tx.Create(&item).Error; err != nil {
			return err
		}

		_, err = Models.RecalculateQuote(tx, quote.ID)
		return err
	})
	if err != nil {
		return fail(ctx, err)
	}

	Models.DB.Preload("SubItems").First(&item, item.ID)
	return ctx.Status(fiber.StatusCreated).JSON(item)
}
