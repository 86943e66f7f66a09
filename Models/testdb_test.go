package Models

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a fresh in-memory database with the full schema and the
// default settings seeded.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	SeedDefaultSettings(db)
	return db
}

// seedQuote creates a customer and an empty quote for tests that need a
// persisted aggregate to hang line items off.
func seedQuote(t *testing.T, db *gorm.DB) *Quote {
	t.Helper()

	customer := Customer{Name: "Muster GmbH", City: "Wien"}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("failed to create customer: %v", err)
	}
	quote := Quote{
		Number:        "AN-2026_111",
		CustomerID:    customer.ID,
		Status:        QuoteStatusDraft,
		MarkupPercent: 15,
	}
	if err := db.Create(&quote).Error; err != nil {
		t.Fatalf("failed to create quote: %v", err)
	}
	return &quote
}
