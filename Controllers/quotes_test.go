package Controllers

import (
	"fmt"
	"math"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"Handwerk/Models"
)

// lineItemTestApp swaps the global database for a fresh in-memory one and
// mounts only the route under test.
func lineItemTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := Models.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	Models.SeedDefaultSettings(db)
	Models.DB = db

	app := fiber.New()
	app.Put("/api/line-items/:id", UpdateLineItem)
	return app
}

func seedLineItem(t *testing.T) (*Models.Quote, *Models.LineItem) {
	t.Helper()

	customer := Models.Customer{Name: "Muster GmbH", City: "Wien"}
	if err := Models.DB.Create(&customer).Error; err != nil {
		t.Fatalf("failed to create customer: %v", err)
	}
	quote := Models.Quote{
		Number:        "AN-2026_111",
		CustomerID:    customer.ID,
		Status:        Models.QuoteStatusDraft,
		MarkupPercent: 15,
	}
	if err := Models.DB.Create(&quote).Error; err != nil {
		t.Fatalf("failed to create quote: %v", err)
	}
	item := Models.LineItem{
		QuoteID:     quote.ID,
		Position:    1,
		Description: "Fliesen",
		Quantity:    2,
		UnitPrice:   100,
		ItemType:    Models.ItemTypeStandard,
	}
	if err := Models.DB.Create(&item).Error; err != nil {
		t.Fatalf("failed to create line item: %v", err)
	}
	return &quote, &item
}

func putJSON(t *testing.T, app *fiber.App, path, body string) int {
	t.Helper()

	req := httptest.NewRequest("PUT", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestUpdateLineItemKeepsOmittedFields(t *testing.T) {
	app := lineItemTestApp(t)
	quote, item := seedLineItem(t)

	// A body carrying only the description must not zero the pricing fields.
	status := putJSON(t, app, fmt.Sprintf("/api/line-items/%d", item.ID), `{"description":"Fliesen verlegen"}`)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", status, fiber.StatusOK)
	}

	var reloaded Models.LineItem
	if err := Models.DB.First(&reloaded, item.ID).Error; err != nil {
		t.Fatalf("failed to reload line item: %v", err)
	}
	if reloaded.Description != "Fliesen verlegen" {
		t.Errorf("Description = %q, want %q", reloaded.Description, "Fliesen verlegen")
	}
	if reloaded.Quantity != 2 {
		t.Errorf("Quantity = %v, want 2", reloaded.Quantity)
	}
	if reloaded.UnitPrice != 100 {
		t.Errorf("UnitPrice = %v, want 100", reloaded.UnitPrice)
	}

	var reloadedQuote Models.Quote
	if err := Models.DB.First(&reloadedQuote, quote.ID).Error; err != nil {
		t.Fatalf("failed to reload quote: %v", err)
	}
	if math.Abs(reloadedQuote.TotalAmount-230) > 1e-6 {
		t.Errorf("TotalAmount = %v, want 230", reloadedQuote.TotalAmount)
	}
}

func TestUpdateLineItemRepricesWhenQuantitySent(t *testing.T) {
	app := lineItemTestApp(t)
	quote, item := seedLineItem(t)

	status := putJSON(t, app, fmt.Sprintf("/api/line-items/%d", item.ID), `{"quantity":3}`)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", status, fiber.StatusOK)
	}

	var reloaded Models.LineItem
	if err := Models.DB.First(&reloaded, item.ID).Error; err != nil {
		t.Fatalf("failed to reload line item: %v", err)
	}
	if reloaded.Quantity != 3 {
		t.Errorf("Quantity = %v, want 3", reloaded.Quantity)
	}
	if reloaded.UnitPrice != 100 {
		t.Errorf("UnitPrice = %v, want 100", reloaded.UnitPrice)
	}

	var reloadedQuote Models.Quote
	if err := Models.DB.First(&reloadedQuote, quote.ID).Error; err != nil {
		t.Fatalf("failed to reload quote: %v", err)
	}
	if math.Abs(reloadedQuote.TotalAmount-345) > 1e-6 {
		t.Errorf("TotalAmount = %v, want 345", reloadedQuote.TotalAmount)
	}
}

func TestUpdateLineItemRejectsUnknownItemType(t *testing.T) {
	app := lineItemTestApp(t)
	_, item := seedLineItem(t)

	status := putJSON(t, app, fmt.Sprintf("/api/line-items/%d", item.ID), `{"item_type":"material"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want %d", status, fiber.StatusBadRequest)
	}
}
