package Models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Invoice types.
const (
	InvoiceTypeAdvance = "advance"
	InvoiceTypeInterim = "interim"
	InvoiceTypeFinal   = "final"
	InvoiceTypeGeneral = "general"
)

// Payment statuses. PaidAmount is authoritative; the status is derived from
// comparing it against GrossAmount, never set independently once money is in.
const (
	PaymentStatusCreated       = "created"
	PaymentStatusSent          = "sent"
	PaymentStatusPartiallyPaid = "partially_paid"
	PaymentStatusPaid          = "paid"
)

// Invoice is a billing document against an order, or standalone for the
// general type. OrderID stays nil for general invoices.
type Invoice struct {
	gorm.Model
	Number           string     `json:"number" gorm:"size:50;uniqueIndex;not null"`
	OrderID          *uint      `json:"order_id" gorm:"index"`
	CustomerID       uint       `json:"customer_id" gorm:"not null;index"`
	Type             string     `json:"type" gorm:"size:20;not null"`
	Percentage       float64    `json:"percentage"`
	BaseAmount       float64    `json:"base_amount" gorm:"not null"`
	PreviousPayments float64    `json:"previous_payments"`
	FinalAmount      float64    `json:"final_amount"`
	VatRate          float64    `json:"vat_rate" gorm:"not null;default:20"`
	VatAmount        float64    `json:"vat_amount"`
	GrossAmount      float64    `json:"gross_amount"`
	DueDate          *time.Time `json:"due_date"`
	PaymentStatus    string     `json:"payment_status" gorm:"size:30;not null;default:'created'"`
	PaidAmount       float64    `json:"paid_amount"`

	Order     *Order            `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	Customer  Customer          `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Reminders []InvoiceReminder `json:"reminders,omitempty" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// InvoiceReminder records a dunning step sent for an overdue invoice.
type InvoiceReminder struct {
	gorm.Model
	InvoiceID uint      `json:"invoice_id" gorm:"not null;index"`
	Level     int       `json:"level" gorm:"not null;default:1"`
	SentAt    time.Time `json:"sent_at"`
	Note      string    `json:"note" gorm:"type:text"`
}

// CalculateAmounts derives FinalAmount, VatAmount and GrossAmount from the
// invoice type. The three are always written together; changing BaseAmount,
// Percentage, PreviousPayments or VatRate without calling this again leaves
// the invoice inconsistent, so every mutating handler calls it last.
//
// A final invoice whose previous payments exceed the base goes negative on
// purpose: that is a credit note, not an error.
func (inv *Invoice) CalculateAmounts() error {
	switch inv.Type {
	case InvoiceTypeAdvance, InvoiceTypeInterim:
		if inv.Percentage <= 0 {
			return fmt.Errorf("%w: percentage is required for %s invoices", ErrValidation, inv.Type)
		}
		inv.FinalAmount = inv.BaseAmount * inv.Percentage / 100
	case InvoiceTypeFinal:
		inv.FinalAmount = inv.BaseAmount - inv.PreviousPayments
	case InvoiceTypeGeneral:
		inv.Percentage = 100
		inv.FinalAmount = inv.BaseAmount
	default:
		return fmt.Errorf("%w: unknown invoice type %q", ErrValidation, inv.Type)
	}

	inv.VatAmount = inv.FinalAmount * inv.VatRate / 100
	inv.GrossAmount = inv.FinalAmount + inv.VatAmount
	return nil
}

// RegisterPayment adds a received amount and re-derives the payment status.
func (inv *Invoice) RegisterPayment(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: payment amount must be positive", ErrValidation)
	}
	inv.PaidAmount += amount
	inv.RefreshPaymentStatus()
	return nil
}

// RefreshPaymentStatus derives the status from PaidAmount vs GrossAmount.
// Invoices with no payment keep their created/sent status untouched.
func (inv *Invoice) RefreshPaymentStatus() {
	if inv.PaidAmount <= 0 {
		return
	}
	if inv.PaidAmount >= inv.GrossAmount {
		inv.PaymentStatus = PaymentStatusPaid
		return
	}
	inv.PaymentStatus = PaymentStatusPartiallyPaid
}

// CheckInvoiceTypeAllowed enforces the one-advance, one-final rule per order.
func CheckInvoiceTypeAllowed(tx *gorm.DB, orderID uint, invoiceType string) error {
	if invoiceType != InvoiceTypeAdvance && invoiceType != InvoiceTypeFinal {
		return nil
	}
	var count int64
	if err := tx.Model(&Invoice{}).
		Where("order_id = ? AND type = ?", orderID, invoiceType).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: order already has a %s invoice", ErrStateConflict, invoiceType)
	}
	return nil
}

// PreviousPaymentsForOrder sums the net amounts already invoiced against an
// order, used to preset the final invoice's deduction.
func PreviousPaymentsForOrder(tx *gorm.DB, orderID uint) (float64, error) {
	var sum float64
	err := tx.Model(&Invoice{}).
		Where("order_id = ? AND type IN ?", orderID, []string{InvoiceTypeAdvance, InvoiceTypeInterim}).
		Select("COALESCE(SUM(final_amount), 0)").
		Scan(&sum).Error
	return sum, err
}
