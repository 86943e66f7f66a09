package Models

import "testing"

func TestOrderCanTransition(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{OrderStatusPlanned, OrderStatusInProgress, true},
		{OrderStatusPlanned, OrderStatusCancelled, true},
		{OrderStatusPlanned, OrderStatusCompleted, false},
		{OrderStatusInProgress, OrderStatusCompleted, true},
		{OrderStatusInProgress, OrderStatusCancelled, true},
		{OrderStatusCompleted, OrderStatusInProgress, false},
		{OrderStatusCancelled, OrderStatusPlanned, false},
	}

	for _, tt := range tests {
		o := Order{Status: tt.from}
		if got := o.CanTransition(tt.to); got != tt.want {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestActiveOrderForQuote(t *testing.T) {
	db := testDB(t)
	quote := seedQuote(t, db)

	active, err := ActiveOrderForQuote(db, quote.ID)
	if err != nil {
		t.Fatal(err)
	}
	if active != nil {
		t.Fatalf("expected no active order, got %v", active.Number)
	}

	cancelled := Order{Number: "AU-2026_111", QuoteID: quote.ID, Status: OrderStatusCancelled}
	if err := db.Create(&cancelled).Error; err != nil {
		t.Fatal(err)
	}

	// a cancelled order does not block re-acceptance
	active, err = ActiveOrderForQuote(db, quote.ID)
	if err != nil {
		t.Fatal(err)
	}
	if active != nil {
		t.Fatalf("cancelled order reported as active: %v", active.Number)
	}

	running := Order{Number: "AU-2026_112", QuoteID: quote.ID, Status: OrderStatusInProgress}
	if err := db.Create(&running).Error; err != nil {
		t.Fatal(err)
	}

	active, err = ActiveOrderForQuote(db, quote.ID)
	if err != nil {
		t.Fatal(err)
	}
	if active == nil || active.Number != "AU-2026_112" {
		t.Fatalf("active order = %v, want AU-2026_112", active)
	}
}
