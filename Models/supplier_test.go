package Models

import "testing"

func TestBuildSupplierOrders(t *testing.T) {
	db := testDB(t)
	quote := seedQuote(t, db)

	li := LineItem{QuoteID: quote.ID, Position: 1, Description: "Heizung"}
	if err := db.Create(&li).Error; err != nil {
		t.Fatal(err)
	}
	subs := []SubItem{
		{LineItemID: li.ID, Kind: KindOrderedPart, RequiresOrder: true, SupplierName: "Haustechnik Huber",
			PartNumber: "HT-100", PartQuantity: "2 Stk", PartPrice: 150},
		{LineItemID: li.ID, Kind: KindOrderedPart, RequiresOrder: true, SupplierName: "Elektro Meier",
			PartNumber: "EM-7", PartQuantity: "1", PartPrice: 89.9},
		{LineItemID: li.ID, Kind: KindOrderedPart, RequiresOrder: true, SupplierName: "Haustechnik Huber",
			PartNumber: "HT-200", PartQuantity: "5 m", PartPrice: 12},
		// on stock, no purchase needed
		{LineItemID: li.ID, Kind: KindOrderedPart, RequiresOrder: false, SupplierName: "Haustechnik Huber",
			PartNumber: "HT-300", PartPrice: 5},
		// no supplier known yet
		{LineItemID: li.ID, Kind: KindOrderedPart, RequiresOrder: true, PartNumber: "???", PartPrice: 1},
		// labor never produces a purchase
		{LineItemID: li.ID, Kind: KindLabor, Hours: 4},
	}
	if err := db.Create(&subs).Error; err != nil {
		t.Fatal(err)
	}

	orders, err := BuildSupplierOrders(db, quote.ID)
	if err != nil {
		t.Fatalf("BuildSupplierOrders() error: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("got %d supplier orders, want 2", len(orders))
	}

	// first-seen order of suppliers is preserved
	if orders[0].SupplierName != "Haustechnik Huber" || orders[1].SupplierName != "Elektro Meier" {
		t.Errorf("supplier order sequence = %q, %q", orders[0].SupplierName, orders[1].SupplierName)
	}
	if len(orders[0].Items) != 2 {
		t.Errorf("Huber bucket has %d items, want 2", len(orders[0].Items))
	}
	if len(orders[1].Items) != 1 {
		t.Errorf("Meier bucket has %d items, want 1", len(orders[1].Items))
	}
	if orders[0].Status != "open" {
		t.Errorf("new supplier order status = %q, want open", orders[0].Status)
	}
}

func TestBuildSupplierOrdersIsIdempotent(t *testing.T) {
	db := testDB(t)
	quote := seedQuote(t, db)

	li := LineItem{QuoteID: quote.ID, Position: 1}
	if err := db.Create(&li).Error; err != nil {
		t.Fatal(err)
	}
	sub := SubItem{LineItemID: li.ID, Kind: KindOrderedPart, RequiresOrder: true,
		SupplierName: "Haustechnik Huber", PartNumber: "HT-100", PartPrice: 150}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatal(err)
	}

	if _, err := BuildSupplierOrders(db, quote.ID); err != nil {
		t.Fatal(err)
	}

	// a part added later must land in the existing bucket on the next run
	extra := SubItem{LineItemID: li.ID, Kind: KindOrderedPart, RequiresOrder: true,
		SupplierName: "Haustechnik Huber", PartNumber: "HT-900", PartPrice: 40}
	if err := db.Create(&extra).Error; err != nil {
		t.Fatal(err)
	}

	orders, err := BuildSupplierOrders(db, quote.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 1 {
		t.Fatalf("got %d supplier orders after rerun, want 1", len(orders))
	}
	if len(orders[0].Items) != 2 {
		t.Errorf("bucket has %d items after rerun, want 2", len(orders[0].Items))
	}

	var itemCount int64
	db.Model(&SupplierOrderItem{}).Count(&itemCount)
	if itemCount != 2 {
		t.Errorf("item rows = %d, want 2 (no duplicates)", itemCount)
	}
}
