package Models

import (
	"errors"
	"testing"
)

func TestInvoiceCalculateAmounts(t *testing.T) {
	tests := []struct {
		name      string
		invoice   Invoice
		wantFinal float64
		wantVat   float64
		wantGross float64
		wantErr   bool
	}{
		{
			name:      "advance takes percentage of base",
			invoice:   Invoice{Type: InvoiceTypeAdvance, BaseAmount: 1150, Percentage: 30, VatRate: 20},
			wantFinal: 345, wantVat: 69, wantGross: 414,
		},
		{
			name:      "interim behaves like advance",
			invoice:   Invoice{Type: InvoiceTypeInterim, BaseAmount: 1000, Percentage: 50, VatRate: 20},
			wantFinal: 500, wantVat: 100, wantGross: 600,
		},
		{
			name:      "final deducts previous payments",
			invoice:   Invoice{Type: InvoiceTypeFinal, BaseAmount: 1150, PreviousPayments: 345, VatRate: 20},
			wantFinal: 805, wantVat: 161, wantGross: 966,
		},
		{
			name:      "overpaid final goes negative as credit note",
			invoice:   Invoice{Type: InvoiceTypeFinal, BaseAmount: 1000, PreviousPayments: 1200, VatRate: 20},
			wantFinal: -200, wantVat: -40, wantGross: -240,
		},
		{
			name:      "general bills the full base",
			invoice:   Invoice{Type: InvoiceTypeGeneral, BaseAmount: 500, Percentage: 30, VatRate: 20},
			wantFinal: 500, wantVat: 100, wantGross: 600,
		},
		{
			name:    "advance without percentage is invalid",
			invoice: Invoice{Type: InvoiceTypeAdvance, BaseAmount: 1000, VatRate: 20},
			wantErr: true,
		},
		{
			name:    "interim with negative percentage is invalid",
			invoice: Invoice{Type: InvoiceTypeInterim, BaseAmount: 1000, Percentage: -10, VatRate: 20},
			wantErr: true,
		},
		{
			name:    "unknown type is invalid",
			invoice: Invoice{Type: "proforma", BaseAmount: 1000, VatRate: 20},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.invoice.CalculateAmounts()
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("expected ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CalculateAmounts() error: %v", err)
			}
			if !almostEqual(tt.invoice.FinalAmount, tt.wantFinal) {
				t.Errorf("FinalAmount = %v, want %v", tt.invoice.FinalAmount, tt.wantFinal)
			}
			if !almostEqual(tt.invoice.VatAmount, tt.wantVat) {
				t.Errorf("VatAmount = %v, want %v", tt.invoice.VatAmount, tt.wantVat)
			}
			if !almostEqual(tt.invoice.GrossAmount, tt.wantGross) {
				t.Errorf("GrossAmount = %v, want %v", tt.invoice.GrossAmount, tt.wantGross)
			}
		})
	}
}

func TestInvoiceCalculateAmountsIdempotent(t *testing.T) {
	inv := Invoice{Type: InvoiceTypeGeneral, BaseAmount: 500, VatRate: 20}
	if err := inv.CalculateAmounts(); err != nil {
		t.Fatal(err)
	}
	first := inv.GrossAmount
	if err := inv.CalculateAmounts(); err != nil {
		t.Fatal(err)
	}
	if !almostEqual(inv.GrossAmount, first) {
		t.Errorf("second run changed gross: %v -> %v", first, inv.GrossAmount)
	}
	if inv.Percentage != 100 {
		t.Errorf("general invoice percentage = %v, want 100", inv.Percentage)
	}
}

func TestInvoicePayments(t *testing.T) {
	inv := Invoice{Type: InvoiceTypeGeneral, BaseAmount: 1000, VatRate: 20, PaymentStatus: PaymentStatusSent}
	if err := inv.CalculateAmounts(); err != nil {
		t.Fatal(err)
	}

	if err := inv.RegisterPayment(-5); !errors.Is(err, ErrValidation) {
		t.Fatalf("negative payment: expected ErrValidation, got %v", err)
	}

	if err := inv.RegisterPayment(600); err != nil {
		t.Fatal(err)
	}
	if inv.PaymentStatus != PaymentStatusPartiallyPaid {
		t.Errorf("status after partial payment = %s, want %s", inv.PaymentStatus, PaymentStatusPartiallyPaid)
	}

	if err := inv.RegisterPayment(600); err != nil {
		t.Fatal(err)
	}
	if inv.PaymentStatus != PaymentStatusPaid {
		t.Errorf("status after full payment = %s, want %s", inv.PaymentStatus, PaymentStatusPaid)
	}
}

func TestRefreshPaymentStatusWithoutPayment(t *testing.T) {
	inv := Invoice{PaymentStatus: PaymentStatusSent, GrossAmount: 100}
	inv.RefreshPaymentStatus()
	if inv.PaymentStatus != PaymentStatusSent {
		t.Errorf("status without payment = %s, want %s", inv.PaymentStatus, PaymentStatusSent)
	}
}

func TestCheckInvoiceTypeAllowed(t *testing.T) {
	db := testDB(t)
	quote := seedQuote(t, db)
	order := Order{Number: "AU-2026_111", QuoteID: quote.ID, Status: OrderStatusPlanned}
	if err := db.Create(&order).Error; err != nil {
		t.Fatal(err)
	}

	if err := CheckInvoiceTypeAllowed(db, order.ID, InvoiceTypeAdvance); err != nil {
		t.Fatalf("first advance should be allowed: %v", err)
	}

	orderID := order.ID
	adv := Invoice{Number: "RE-2026-001", OrderID: &orderID, CustomerID: quote.CustomerID,
		Type: InvoiceTypeAdvance, BaseAmount: 1000, Percentage: 30, VatRate: 20}
	if err := db.Create(&adv).Error; err != nil {
		t.Fatal(err)
	}

	if err := CheckInvoiceTypeAllowed(db, order.ID, InvoiceTypeAdvance); !errors.Is(err, ErrStateConflict) {
		t.Fatalf("second advance: expected ErrStateConflict, got %v", err)
	}
	if err := CheckInvoiceTypeAllowed(db, order.ID, InvoiceTypeInterim); err != nil {
		t.Fatalf("interim invoices are unlimited: %v", err)
	}
	if err := CheckInvoiceTypeAllowed(db, order.ID, InvoiceTypeFinal); err != nil {
		t.Fatalf("first final should be allowed: %v", err)
	}
}

func TestPreviousPaymentsForOrder(t *testing.T) {
	db := testDB(t)
	quote := seedQuote(t, db)
	order := Order{Number: "AU-2026_111", QuoteID: quote.ID, Status: OrderStatusInProgress}
	if err := db.Create(&order).Error; err != nil {
		t.Fatal(err)
	}
	orderID := order.ID

	invoices := []Invoice{
		{Number: "RE-2026-001", OrderID: &orderID, CustomerID: quote.CustomerID,
			Type: InvoiceTypeAdvance, FinalAmount: 345, VatRate: 20},
		{Number: "RE-2026-002", OrderID: &orderID, CustomerID: quote.CustomerID,
			Type: InvoiceTypeInterim, FinalAmount: 200, VatRate: 20},
		// finals never count toward their own deduction
		{Number: "RE-2026-003", OrderID: &orderID, CustomerID: quote.CustomerID,
			Type: InvoiceTypeFinal, FinalAmount: 605, VatRate: 20},
	}
	if err := db.Create(&invoices).Error; err != nil {
		t.Fatal(err)
	}

	sum, err := PreviousPaymentsForOrder(db, order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(sum, 545) {
		t.Errorf("PreviousPaymentsForOrder() = %v, want 545", sum)
	}

	empty, err := PreviousPaymentsForOrder(db, 999)
	if err != nil {
		t.Fatal(err)
	}
	if empty != 0 {
		t.Errorf("PreviousPaymentsForOrder() for unknown order = %v, want 0", empty)
	}
}
