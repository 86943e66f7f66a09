package Controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"Handwerk/Format"
	"Handwerk/Models"
)

// Dashboard renders the landing page with the day-to-day numbers: open
// quotes, running orders and what is still unpaid.
// GET /
func Dashboard(ctx *fiber.Ctx) error {
	var customerCount int64
	Models.DB.Model(&Models.Customer{}).Count(&customerCount)

	var openQuotes int64
	Models.DB.Model(&Models.Quote{}).
		Where("status IN ?", []string{Models.QuoteStatusDraft, Models.QuoteStatusSent}).
		Count(&openQuotes)

	var activeOrders int64
	Models.DB.Model(&Models.Order{}).
		Where("status IN ?", []string{Models.OrderStatusPlanned, Models.OrderStatusInProgress}).
		Count(&activeOrders)

	var openInvoices []Models.Invoice
	Models.DB.Where("payment_status <> ?", Models.PaymentStatusPaid).
		Order("due_date ASC").Find(&openInvoices)

	var outstanding float64
	overdue := 0
	now := time.Now()
	for _, inv := range openInvoices {
		outstanding += inv.GrossAmount - inv.PaidAmount
		if inv.DueDate != nil && inv.DueDate.Before(now) {
			overdue++
		}
	}

	return ctx.Render("index", fiber.Map{
		"CustomerCount": customerCount,
		"OpenQuotes":    openQuotes,
		"ActiveOrders":  activeOrders,
		"OpenInvoices":  len(openInvoices),
		"Overdue":       overdue,
		"Outstanding":   Format.Euro(outstanding),
	})
}
