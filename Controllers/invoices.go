package Controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Handwerk/Models"
)

type InvoiceRequest struct {
	OrderID          *uint    `json:"order_id"`
	CustomerID       uint     `json:"customer_id"`
	Type             string   `json:"type" validate:"required,oneof=advance interim final general"`
	Percentage       float64  `json:"percentage"`
	BaseAmount       *float64 `json:"base_amount"`
	PreviousPayments *float64 `json:"previous_payments"`
	VatRate          *float64 `json:"vat_rate"`
	DueDate          string   `json:"due_date"`
}

type InvoiceUpdateRequest struct {
	Percentage       *float64 `json:"percentage"`
	BaseAmount       *float64 `json:"base_amount"`
	PreviousPayments *float64 `json:"previous_payments"`
	VatRate          *float64 `json:"vat_rate"`
	DueDate          string   `json:"due_date"`
	MarkSent         bool     `json:"mark_sent"`
}

type PaymentRequest struct {
	Amount float64 `json:"amount" validate:"required"`
}

type ReminderRequest struct {
	Note string `json:"note"`
}

// GetInvoices retrieves all invoices.
// GET /api/invoices
func GetInvoices(ctx *fiber.Ctx) error {
	query := Models.DB.Preload("Customer").Preload("Order").Order("id DESC")
	if status := ctx.Query("payment_status"); status != "" {
		query = query.Where("payment_status = ?", status)
	}
	if invoiceType := ctx.Query("type"); invoiceType != "" {
		query = query.Where("type = ?", invoiceType)
	}

	var invoices []Models.Invoice
	if err := query.Find(&invoices).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve invoices"})
	}
	return ctx.JSON(invoices)
}

// GetInvoice retrieves one invoice with reminders.
// GET /api/invoices/:id
func GetInvoice(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid invoice ID"})
	}

	var invoice Models.Invoice
	err = Models.DB.Preload("Customer").Preload("Order").Preload("Order.Quote").
		Preload("Reminders", func(db *gorm.DB) *gorm.DB {
			return db.Order("level ASC")
		}).
		First(&invoice, id).Error
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Invoice not found"})
	}
	return ctx.JSON(invoice)
}

// CreateInvoice creates a billing document. Order-linked invoices take their
// base amount from the quote's billed total and preset the final invoice's
// deduction from the amounts already invoiced; general invoices need an
// explicit customer and base amount.
// POST /api/invoices
func CreateInvoice(ctx *fiber.Ctx) error {
	var req InvoiceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "message": err.Error()})
	}
	if fields := validateStruct(req); fields != nil {
		return failValidation(ctx, fields)
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "Invalid date format",
				"message": "due_date must be in YYYY-MM-DD format",
			})
		}
		dueDate = &parsed
	}

	var invoice Models.Invoice
	err := Models.DB.Transaction(func(tx *gorm.DB) error {
		invoice = Models.Invoice{
			Type:       req.Type,
			Percentage: req.Percentage,
			DueDate:    dueDate,
			VatRate:    Models.DefaultVatRate(tx),
		}
		if req.VatRate != nil {
			invoice.VatRate = *req.VatRate
		}

		if req.Type == Models.InvoiceTypeGeneral {
			if req.OrderID != nil {
				return fmt.Errorf("%w: general invoices are standalone", Models.ErrValidation)
			}
			if req.CustomerID == 0 {
				return fmt.Errorf("%w: customer_id is required for general invoices", Models.ErrValidation)
			}
			if req.BaseAmount == nil {
				return fmt.Errorf("%w: base_amount is required for general invoices", Models.ErrValidation)
			}
			invoice.CustomerID = req.CustomerID
			invoice.BaseAmount = *req.BaseAmount
		} else {
			if req.OrderID == nil {
				return fmt.Errorf("%w: order_id is required for %s invoices", Models.ErrValidation, req.Type)
			}
			var order Models.Order
			if err := tx.Preload("Quote").First(&order, *req.OrderID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return fmt.Errorf("%w: order %d", Models.ErrNotFound, *req.OrderID)
				}
				return err
			}
			if err := Models.CheckInvoiceTypeAllowed(tx, order.ID, req.Type); err != nil {
				return err
			}

			invoice.OrderID = &order.ID
			invoice.CustomerID = order.Quote.CustomerID
			invoice.BaseAmount = order.Quote.TotalAmount
			if req.BaseAmount != nil {
				invoice.BaseAmount = *req.BaseAmount
			}

			if req.Type == Models.InvoiceTypeFinal {
				previous, err := Models.PreviousPaymentsForOrder(tx, order.ID)
				if err != nil {
					return err
				}
				invoice.PreviousPayments = previous
			}
		}
		if req.PreviousPayments != nil {
			invoice.PreviousPayments = *req.PreviousPayments
		}

		if err := invoice.CalculateAmounts(); err != nil {
			return err
		}

		number, err := Models.NextInvoiceNumber(tx, time.Now())
		if err != nil {
			return err
		}
		invoice.Number = number

		return tx.Create(&invoice).Error
	})
	if err != nil {
		return fail(ctx, err)
	}

	Models.DB.Preload("Customer").Preload("Order").First(&invoice, invoice.ID)
	return ctx.Status(fiber.StatusCreated).JSON(invoice)
}

// UpdateInvoice changes amounts or the due date; final, VAT and gross are
// always re-derived together afterwards.
// PUT /api/invoices/:id
func UpdateInvoice(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid invoice ID"})
	}

	var req InvoiceUpdateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "message": err.Error()})
	}

	var invoice Models.Invoice
	err = Models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&invoice, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: invoice %d", Models.ErrNotFound, id)
			}
			return err
		}
		if invoice.PaymentStatus == Models.PaymentStatusPaid {
			return fmt.Errorf("%w: invoice %s is fully paid", Models.ErrStateConflict, invoice.Number)
		}

		if req.Percentage != nil {
			invoice.Percentage = *req.Percentage
		}
		if req.BaseAmount != nil {
			invoice.BaseAmount = *req.BaseAmount
		}
		if req.PreviousPayments != nil {
			invoice.PreviousPayments = *req.PreviousPayments
		}
		if req.VatRate != nil {
			invoice.VatRate = *req.VatRate
		}
		if req.DueDate != "" {
			parsed, err := time.Parse("2006-01-02", req.DueDate)
			if err != nil {
				return fmt.Errorf("%w: due_date must be in YYYY-MM-DD format", Models.ErrValidation)
			}
			invoice.DueDate = &parsed
		}
		if req.MarkSent && invoice.PaymentStatus == Models.PaymentStatusCreated {
			invoice.PaymentStatus = Models.PaymentStatusSent
		}

		if err := invoice.CalculateAmounts(); err != nil {
			return err
		}
		invoice.RefreshPaymentStatus()

		return tx.Save(&invoice).Error
	})
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(invoice)
}

// DeleteInvoice removes an unpaid invoice.
// DELETE /api/invoices/:id
func DeleteInvoice(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid invoice ID"})
	}

	err = Models.DB.Transaction(func(tx *gorm.DB) error {
		var invoice Models.Invoice
		if err := tx.First(&invoice, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: invoice %d", Models.ErrNotFound, id)
			}
			return err
		}
		if invoice.PaidAmount > 0 {
			return fmt.Errorf("%w: invoice %s has payments registered", Models.ErrStateConflict, invoice.Number)
		}
		return tx.Select("Reminders").Delete(&invoice).Error
	})
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(fiber.Map{"message": "Invoice deleted"})
}

// RegisterInvoicePayment records a received amount; the payment status is
// derived from the running paid total.
// POST /api/invoices/:id/payments
func RegisterInvoicePayment(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid invoice ID"})
	}

	var req PaymentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "message": err.Error()})
	}
	if fields := validateStruct(req); fields != nil {
		return failValidation(ctx, fields)
	}

	var invoice Models.Invoice
	err = Models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&invoice, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: invoice %d", Models.ErrNotFound, id)
			}
			return err
		}
		if err := invoice.RegisterPayment(req.Amount); err != nil {
			return err
		}
		return tx.Model(&invoice).Updates(map[string]interface{}{
			"paid_amount":    invoice.PaidAmount,
			"payment_status": invoice.PaymentStatus,
		}).Error
	})
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(invoice)
}

// CreateInvoiceReminder files the next dunning step for an invoice.
// POST /api/invoices/:id/reminders
func CreateInvoiceReminder(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid invoice ID"})
	}

	var req ReminderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "message": err.Error()})
	}

	var reminder Models.InvoiceReminder
	err = Models.DB.Transaction(func(tx *gorm.DB) error {
		var invoice Models.Invoice
		if err := tx.First(&invoice, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: invoice %d", Models.ErrNotFound, id)
			}
			return err
		}
		if invoice.PaymentStatus == Models.PaymentStatusPaid {
			return fmt.Errorf("%w: invoice %s is fully paid", Models.ErrStateConflict, invoice.Number)
		}

		var count int64
		if err := tx.Model(&Models.InvoiceReminder{}).
			Where("invoice_id = ?", invoice.ID).Count(&count).Error; err != nil {
			return err
		}

		reminder = Models.InvoiceReminder{
			InvoiceID: invoice.ID,
			Level:     int(count) + 1,
			SentAt:    time.Now(),
			Note:      req.Note,
		}
		return tx.Create(&reminder).Error
	})
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(reminder)
}
