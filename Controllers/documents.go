package Controllers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Handwerk/Documents"
	"Handwerk/Models"
)

func sendPDF(ctx *fiber.Ctx, filename string, data []byte) error {
	ctx.Set("Content-Type", "application/pdf")
	ctx.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return ctx.Send(data)
}

// GetQuotePDF renders a quote as PDF.
// GET /api/quotes/:id/pdf
func GetQuotePDF(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid quote ID"})
	}

	var quote Models.Quote
	err = Models.DB.Preload("Customer").
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Preload("LineItems.SubItems").
		First(&quote, id).Error
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quote not found"})
	}

	company := Documents.LoadCompanyInfo(Models.DB)
	rate := Models.DefaultHourlyRate(Models.DB)
	vatRate := Models.DefaultVatRate(Models.DB)

	data, err := Documents.GenerateQuotePDF(company, &quote, rate, vatRate)
	if err != nil {
		return fail(ctx, err)
	}
	return sendPDF(ctx, fmt.Sprintf("Angebot_%s.pdf", quote.Number), data)
}

// GetInvoicePDF renders an invoice as PDF.
// GET /api/invoices/:id/pdf
func GetInvoicePDF(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid invoice ID"})
	}

	var invoice Models.Invoice
	err = Models.DB.Preload("Customer").Preload("Order").First(&invoice, id).Error
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Invoice not found"})
	}

	company := Documents.LoadCompanyInfo(Models.DB)
	data, err := Documents.GenerateInvoicePDF(company, &invoice)
	if err != nil {
		return fail(ctx, err)
	}
	return sendPDF(ctx, fmt.Sprintf("Rechnung_%s.pdf", invoice.Number), data)
}

// GetWorkInstructionPDF renders the internal job sheet for an order.
// GET /api/orders/:id/work-instruction
func GetWorkInstructionPDF(ctx *fiber.Ctx) error {
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

	company := Documents.LoadCompanyInfo(Models.DB)
	data, err := Documents.GenerateWorkInstructionPDF(company, &order)
	if err != nil {
		return fail(ctx, err)
	}
	return sendPDF(ctx, fmt.Sprintf("Arbeitsanweisung_%s.pdf", order.Number), data)
}
