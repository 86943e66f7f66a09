package Controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Handwerk/Models"
	"Handwerk/email"
)

// SupplierController handles supplier and supplier order endpoints
type SupplierController struct {
	DB *gorm.DB
}

// NewSupplierController creates a new SupplierController
func NewSupplierController(db *gorm.DB) *SupplierController {
	return &SupplierController{DB: db}
}

// GetSuppliers retrieves all suppliers
func (c *SupplierController) GetSuppliers(ctx *fiber.Ctx) error {
	var suppliers []Models.Supplier
	result := c.DB.Order("name ASC").Find(&suppliers)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve suppliers"})
	}
	return ctx.JSON(suppliers)
}

// GetSupplier retrieves a single supplier by ID
func (c *SupplierController) GetSupplier(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	var supplier Models.Supplier
	result := c.DB.First(&supplier, id)
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Supplier not found"})
	}
	return ctx.JSON(supplier)
}

// CreateSupplier creates a new supplier
func (c *SupplierController) CreateSupplier(ctx *fiber.Ctx) error {
	var input Models.Supplier
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	supplier := Models.Supplier{
		Name:          input.Name,
		ContactPerson: input.ContactPerson,
		Email:         input.Email,
		Phone:         input.Phone,
		Notes:         input.Notes,
	}
	result := c.DB.Create(&supplier)
	if result.Error != nil {
		if strings.Contains(result.Error.Error(), "unique constraint") ||
			strings.Contains(result.Error.Error(), "UNIQUE constraint") ||
			strings.Contains(result.Error.Error(), "Duplicate entry") {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "A supplier with this name already exists",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create supplier",
		})
	}
	return ctx.Status(fiber.StatusCreated).JSON(supplier)
}

// UpdateSupplier updates an existing supplier
func (c *SupplierController) UpdateSupplier(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	var supplier Models.Supplier
	result := c.DB.First(&supplier, id)
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Supplier not found"})
	}

	var input Models.Supplier
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	c.DB.Model(&supplier).Updates(Models.Supplier{
		Name:          input.Name,
		ContactPerson: input.ContactPerson,
		Email:         input.Email,
		Phone:         input.Phone,
		Notes:         input.Notes,
	})
	return ctx.JSON(supplier)
}

// DeleteSupplier soft deletes a supplier
func (c *SupplierController) DeleteSupplier(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	var supplier Models.Supplier
	result := c.DB.First(&supplier, id)
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Supplier not found"})
	}

	if err := c.DB.Delete(&supplier).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete supplier"})
	}
	return ctx.JSON(fiber.Map{"message": "Supplier deleted"})
}

// GetSupplierOrders retrieves the purchase buckets, optionally per quote
func (c *SupplierController) GetSupplierOrders(ctx *fiber.Ctx) error {
	query := c.DB.Preload("Items").Preload("Quote").Order("id DESC")
	if quoteID := ctx.Query("quote_id"); quoteID != "" {
		query = query.Where("quote_id = ?", quoteID)
	}

	var orders []Models.SupplierOrder
	if err := query.Find(&orders).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve supplier orders"})
	}
	return ctx.JSON(orders)
}

// GetSupplierOrder retrieves one purchase bucket with its items
func (c *SupplierController) GetSupplierOrder(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid supplier order ID"})
	}

	var order Models.SupplierOrder
	result := c.DB.Preload("Items").Preload("Items.SubItem").Preload("Quote").First(&order, id)
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Supplier order not found"})
	}
	return ctx.JSON(order)
}

// GetSupplierOrderEmail returns the pre-filled purchase request draft for a
// supplier order. Nothing is sent; the operator copies it into their client.
func (c *SupplierController) GetSupplierOrderEmail(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid supplier order ID"})
	}

	var order Models.SupplierOrder
	result := c.DB.Preload("Items").Preload("Quote").First(&order, id)
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Supplier order not found"})
	}

	// The recipient address comes from the supplier directory when the
	// free-text supplier name matches an entry there.
	var supplier Models.Supplier
	c.DB.Where("name = ?", order.SupplierName).First(&supplier)

	draft := email.BuildPurchaseDraft(c.DB, order, supplier)
	return ctx.JSON(draft)
}

// SendSupplierOrderEmail dispatches the purchase request via SMTP and flags
// the bucket as ordered. Requires SMTP_* to be configured and the supplier to
// have an address on file.
func (c *SupplierController) SendSupplierOrderEmail(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid supplier order ID"})
	}

	var order Models.SupplierOrder
	if err := c.DB.Preload("Items").Preload("Quote").First(&order, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Supplier order not found"})
	}

	var supplier Models.Supplier
	if err := c.DB.Where("name = ?", order.SupplierName).First(&supplier).Error; err != nil || supplier.Email == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Supplier has no email address on file",
		})
	}

	config := email.ConfigFromEnv()
	if config.SMTPServer == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "SMTP is not configured, use the draft endpoint instead",
		})
	}

	draft := email.BuildPurchaseDraft(c.DB, order, supplier)
	message := Models.EmailMessage{
		To:      []string{draft.To},
		Subject: draft.Subject,
		Body:    draft.HTMLBody,
		IsHTML:  true,
	}
	if err := email.SendEmail(config, message); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to send email",
			"message": err.Error(),
		})
	}

	if err := c.DB.Model(&order).Update("status", "ordered").Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update supplier order"})
	}
	return ctx.JSON(fiber.Map{"message": "Purchase request sent", "to": draft.To})
}

// MarkSupplierOrderSent flags a purchase bucket as ordered
func (c *SupplierController) MarkSupplierOrderSent(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid supplier order ID"})
	}

	var order Models.SupplierOrder
	if err := c.DB.First(&order, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Supplier order not found"})
	}

	if err := c.DB.Model(&order).Update("status", "ordered").Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update supplier order"})
	}
	return ctx.JSON(order)
}
