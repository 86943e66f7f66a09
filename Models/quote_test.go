package Models

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSubItemCalculatePrice(t *testing.T) {
	tests := []struct {
		name string
		sub  SubItem
		want float64
	}{
		{
			name: "labor with default rate",
			sub:  SubItem{Kind: KindLabor, Hours: 3.5},
			want: 332.5,
		},
		{
			name: "labor with own rate wins",
			sub:  SubItem{Kind: KindLabor, Hours: 2, HourlyRate: 120},
			want: 240,
		},
		{
			name: "other with parsed quantity",
			sub:  SubItem{Kind: KindOther, Quantity: "2,5 m²", UnitPrice: 10},
			want: 25,
		},
		{
			name: "other without leading number falls back to unit price",
			sub:  SubItem{Kind: KindOther, Quantity: "pauschal", UnitPrice: 45},
			want: 45,
		},
		{
			name: "ordered part uses part price verbatim",
			sub:  SubItem{Kind: KindOrderedPart, PartPrice: 89.9, UnitPrice: 999},
			want: 89.9,
		},
		{
			name: "unknown kind prices at zero",
			sub:  SubItem{Kind: "mystery", UnitPrice: 50},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sub.CalculatePrice(95); !almostEqual(got, tt.want) {
				t.Errorf("CalculatePrice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLineItemCalculatePrice(t *testing.T) {
	t.Run("sub-items win over own quantity", func(t *testing.T) {
		li := LineItem{
			Quantity:  10,
			UnitPrice: 100,
			SubItems: []SubItem{
				{Kind: KindLabor, Hours: 2},
				{Kind: KindOrderedPart, PartPrice: 50},
			},
		}
		if got := li.CalculatePrice(95); !almostEqual(got, 240) {
			t.Errorf("CalculatePrice() = %v, want 240", got)
		}
	})

	t.Run("stale sub-item caches are ignored", func(t *testing.T) {
		li := LineItem{
			TotalPrice: 99999,
			SubItems: []SubItem{
				{Kind: KindLabor, Hours: 1, Price: 99999},
			},
		}
		if got := li.CalculatePrice(95); !almostEqual(got, 95) {
			t.Errorf("CalculatePrice() = %v, want 95", got)
		}
	})

	t.Run("no sub-items uses quantity times unit price", func(t *testing.T) {
		li := LineItem{Quantity: 4, UnitPrice: 25.5}
		if got := li.CalculatePrice(95); !almostEqual(got, 102) {
			t.Errorf("CalculatePrice() = %v, want 102", got)
		}
	})
}

func TestQuoteTotals(t *testing.T) {
	quote := Quote{
		MarkupPercent: 15,
		LineItems: []LineItem{
			{Quantity: 1, UnitPrice: 600},
			{Quantity: 2, UnitPrice: 200},
		},
	}

	if got := quote.NetTotal(95); !almostEqual(got, 1000) {
		t.Fatalf("NetTotal() = %v, want 1000", got)
	}
	if got := quote.MarkupAmount(95); !almostEqual(got, 150) {
		t.Errorf("MarkupAmount() = %v, want 150", got)
	}
	if got := quote.CalculatedTotal(95); !almostEqual(got, 1150) {
		t.Errorf("CalculatedTotal() = %v, want 1150", got)
	}

	quote.MarkupPercent = 0
	if got := quote.CalculatedTotal(95); !almostEqual(got, 1000) {
		t.Errorf("CalculatedTotal() with zero markup = %v, want 1000", got)
	}

	quote.MarkupPercent = -5
	if got := quote.MarkupAmount(95); got != 0 {
		t.Errorf("MarkupAmount() with negative markup = %v, want 0", got)
	}
}

func TestQuoteCanTransition(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{QuoteStatusDraft, QuoteStatusSent, true},
		{QuoteStatusDraft, QuoteStatusAccepted, true},
		{QuoteStatusSent, QuoteStatusAccepted, true},
		{QuoteStatusSent, QuoteStatusDraft, true},
		{QuoteStatusAccepted, QuoteStatusDraft, false},
		{QuoteStatusAccepted, QuoteStatusSent, false},
		{QuoteStatusAccepted, QuoteStatusAcceptedCancelled, false},
		{QuoteStatusAcceptedCancelled, QuoteStatusAccepted, true},
		{QuoteStatusRejected, QuoteStatusDraft, true},
		{QuoteStatusRejected, QuoteStatusAccepted, false},
	}

	for _, tt := range tests {
		q := Quote{Status: tt.from}
		if got := q.CanTransition(tt.to); got != tt.want {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestQuoteEditable(t *testing.T) {
	for _, status := range []string{QuoteStatusDraft, QuoteStatusSent, QuoteStatusRejected, QuoteStatusAcceptedCancelled} {
		q := Quote{Status: status}
		if !q.Editable() {
			t.Errorf("quote in status %s should be editable", status)
		}
	}
	if (&Quote{Status: QuoteStatusAccepted}).Editable() {
		t.Error("accepted quote must not be editable")
	}
}

func TestAcceptedQuoteStaysFrozenWhileOrderRuns(t *testing.T) {
	db := testDB(t)
	quote := seedQuote(t, db)

	if err := db.Model(quote).Update("status", QuoteStatusAccepted).Error; err != nil {
		t.Fatalf("failed to accept quote: %v", err)
	}
	quote.Status = QuoteStatusAccepted
	order := Order{Number: "AU-2026_111", QuoteID: quote.ID, Status: OrderStatusPlanned}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("failed to create order: %v", err)
	}

	// The status endpoint must not offer a way out of the freeze while the
	// order is still active.
	if quote.CanTransition(QuoteStatusAcceptedCancelled) {
		t.Error("accepted quote must not transition to accepted_cancelled directly")
	}
	if quote.Editable() {
		t.Error("accepted quote must stay frozen")
	}

	active, err := ActiveOrderForQuote(db, quote.ID)
	if err != nil {
		t.Fatalf("ActiveOrderForQuote() error: %v", err)
	}
	if active == nil || active.ID != order.ID {
		t.Fatal("expected the planned order to still be active")
	}

	// Cancelling the order is the one path that unlocks the quote.
	if err := db.Model(&order).Update("status", OrderStatusCancelled).Error; err != nil {
		t.Fatalf("failed to cancel order: %v", err)
	}
	if err := db.Model(quote).Update("status", QuoteStatusAcceptedCancelled).Error; err != nil {
		t.Fatalf("failed to revert quote: %v", err)
	}
	quote.Status = QuoteStatusAcceptedCancelled
	if !quote.Editable() {
		t.Error("quote must be editable again after the order is cancelled")
	}
	if !quote.CanTransition(QuoteStatusAccepted) {
		t.Error("cancelled quote must be re-acceptable")
	}
}

func TestRecalculateQuote(t *testing.T) {
	db := testDB(t)
	quote := seedQuote(t, db)

	li := LineItem{QuoteID: quote.ID, Position: 1, Description: "Badsanierung", ItemType: ItemTypeLabor}
	if err := db.Create(&li).Error; err != nil {
		t.Fatalf("failed to create line item: %v", err)
	}
	subs := []SubItem{
		{LineItemID: li.ID, Kind: KindLabor, Hours: 3.5},
		{LineItemID: li.ID, Kind: KindOrderedPart, PartPrice: 200, Price: 12345},
	}
	if err := db.Create(&subs).Error; err != nil {
		t.Fatalf("failed to create sub-items: %v", err)
	}

	recalced, err := RecalculateQuote(db, quote.ID)
	if err != nil {
		t.Fatalf("RecalculateQuote() error: %v", err)
	}

	// 3.5 h * 95 + 200 = 532.50 net, plus 15 % markup
	wantNet := 532.5
	wantTotal := wantNet * 1.15
	if !almostEqual(recalced.TotalAmount, wantTotal) {
		t.Errorf("TotalAmount = %v, want %v", recalced.TotalAmount, wantTotal)
	}

	var persisted Quote
	if err := db.First(&persisted, quote.ID).Error; err != nil {
		t.Fatalf("failed to reload quote: %v", err)
	}
	if !almostEqual(persisted.TotalAmount, wantTotal) {
		t.Errorf("persisted TotalAmount = %v, want %v", persisted.TotalAmount, wantTotal)
	}

	var persistedLi LineItem
	if err := db.First(&persistedLi, li.ID).Error; err != nil {
		t.Fatalf("failed to reload line item: %v", err)
	}
	if !almostEqual(persistedLi.TotalPrice, wantNet) {
		t.Errorf("line item TotalPrice = %v, want %v", persistedLi.TotalPrice, wantNet)
	}

	var persistedSubs []SubItem
	if err := db.Where("line_item_id = ?", li.ID).Order("id ASC").Find(&persistedSubs).Error; err != nil {
		t.Fatalf("failed to reload sub-items: %v", err)
	}
	if persistedSubs[0].SubNumber != "1.1" || persistedSubs[1].SubNumber != "1.2" {
		t.Errorf("sub-numbers = %q, %q, want 1.1, 1.2", persistedSubs[0].SubNumber, persistedSubs[1].SubNumber)
	}
	if !almostEqual(persistedSubs[0].Price, 332.5) {
		t.Errorf("labor sub-item Price = %v, want 332.5", persistedSubs[0].Price)
	}
	if !almostEqual(persistedSubs[1].Price, 200) {
		t.Errorf("part sub-item stale cache survived: Price = %v, want 200", persistedSubs[1].Price)
	}
}

func TestRecalculateQuoteUsesConfiguredRate(t *testing.T) {
	db := testDB(t)
	if err := SetSetting(db, SettingDefaultHourlyRate, "110"); err != nil {
		t.Fatalf("failed to set rate: %v", err)
	}

	quote := seedQuote(t, db)
	li := LineItem{QuoteID: quote.ID, Position: 1, ItemType: ItemTypeLabor}
	if err := db.Create(&li).Error; err != nil {
		t.Fatalf("failed to create line item: %v", err)
	}
	if err := db.Create(&SubItem{LineItemID: li.ID, Kind: KindLabor, Hours: 2}).Error; err != nil {
		t.Fatalf("failed to create sub-item: %v", err)
	}

	recalced, err := RecalculateQuote(db, quote.ID)
	if err != nil {
		t.Fatalf("RecalculateQuote() error: %v", err)
	}
	want := 220 * 1.15
	if !almostEqual(recalced.TotalAmount, want) {
		t.Errorf("TotalAmount = %v, want %v", recalced.TotalAmount, want)
	}
}

func TestRecalculateQuoteNotFound(t *testing.T) {
	db := testDB(t)
	_, err := RecalculateQuote(db, 999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
