package Models

import "testing"

func TestTemplateToLineItem(t *testing.T) {
	tmpl := PositionTemplate{
		Name:        "Steckdose setzen",
		Description: "Steckdose inkl. Material",
		ItemType:    ItemTypeStandard,
		SubItems: []PositionTemplateSubItem{
			{Kind: KindLabor, Hours: 0.5},
			{Kind: KindOrderedPart, RequiresOrder: true, SupplierName: "Elektro Meier",
				PartNumber: "EM-7", PartQuantity: "1", PartPrice: 8.9},
		},
	}

	li := tmpl.ToLineItem(42, 3)

	if li.QuoteID != 42 || li.Position != 3 {
		t.Errorf("placement = quote %d pos %d, want quote 42 pos 3", li.QuoteID, li.Position)
	}
	if li.Description != "Steckdose inkl. Material" {
		t.Errorf("Description = %q", li.Description)
	}
	if len(li.SubItems) != 2 {
		t.Fatalf("got %d sub-items, want 2", len(li.SubItems))
	}
	if li.SubItems[1].SupplierName != "Elektro Meier" || !li.SubItems[1].RequiresOrder {
		t.Errorf("ordered part fields not carried over: %+v", li.SubItems[1])
	}
	// prices stay unset until the recalculation pipeline runs
	if li.TotalPrice != 0 || li.SubItems[0].Price != 0 {
		t.Errorf("template application must not price items")
	}
}

func TestTemplateNameFallsBackAsDescription(t *testing.T) {
	tmpl := PositionTemplate{Name: "Kleinmaterial"}
	li := tmpl.ToLineItem(1, 1)
	if li.Description != "Kleinmaterial" {
		t.Errorf("Description = %q, want template name", li.Description)
	}
}
