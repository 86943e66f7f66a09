package email

import (
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"Handwerk/Models"
)

func draftTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&Models.CompanySetting{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestBuildPurchaseDraft(t *testing.T) {
	db := draftTestDB(t)
	if err := Models.SetSetting(db, Models.SettingCompanyName, "Handwerk GmbH"); err != nil {
		t.Fatal(err)
	}

	order := Models.SupplierOrder{
		SupplierName: "Haustechnik Huber",
		Quote:        Models.Quote{Number: "AN-2026_111"},
		Items: []Models.SupplierOrderItem{
			{PartNumber: "HT-100", PartQuantity: "2 Stk", PartPrice: 150},
			{PartNumber: "HT-200", PartQuantity: "", PartPrice: 12.5},
		},
	}
	supplier := Models.Supplier{
		Name:          "Haustechnik Huber",
		ContactPerson: "Herr Huber",
		Email:         "bestellung@huber.example",
	}

	draft := BuildPurchaseDraft(db, order, supplier)

	if draft.To != "bestellung@huber.example" {
		t.Errorf("To = %q", draft.To)
	}
	if draft.Subject != "Bestellung zu Angebot AN-2026_111 – Handwerk GmbH" {
		t.Errorf("Subject = %q", draft.Subject)
	}
	if !strings.Contains(draft.PlainBody, "Sehr geehrte/r Herr Huber,") {
		t.Errorf("plain body misses personal greeting:\n%s", draft.PlainBody)
	}
	if !strings.Contains(draft.PlainBody, "1. HT-100 – Menge: 2 Stk – 150,00 €") {
		t.Errorf("plain body misses first position:\n%s", draft.PlainBody)
	}
	// empty quantity defaults to 1
	if !strings.Contains(draft.PlainBody, "2. HT-200 – Menge: 1 – 12,50 €") {
		t.Errorf("plain body misses quantity fallback:\n%s", draft.PlainBody)
	}
	if !strings.Contains(draft.HTMLBody, "<td>HT-100</td>") {
		t.Errorf("html body misses part number:\n%s", draft.HTMLBody)
	}
}

func TestBuildPurchaseDraftGenericGreeting(t *testing.T) {
	db := draftTestDB(t)

	order := Models.SupplierOrder{
		SupplierName: "Elektro Meier",
		Quote:        Models.Quote{Number: "AN-2026_112"},
		Items:        []Models.SupplierOrderItem{{PartNumber: "EM-7", PartPrice: 89.9}},
	}
	draft := BuildPurchaseDraft(db, order, Models.Supplier{Name: "Elektro Meier"})

	if !strings.Contains(draft.PlainBody, "Sehr geehrte Damen und Herren,") {
		t.Errorf("plain body misses generic greeting:\n%s", draft.PlainBody)
	}
	if draft.Subject != "Bestellung zu Angebot AN-2026_112" {
		t.Errorf("Subject without company name = %q", draft.Subject)
	}
	if draft.To != "" {
		t.Errorf("To = %q, want empty for supplier without address", draft.To)
	}
}
