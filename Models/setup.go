package Models

import (
	"log"
	"os"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the database from DATABASE_URL and runs the migrations.
// Postgres and MySQL DSNs are recognized by prefix; anything else (including
// an empty variable) falls back to a local sqlite file.
func Connect() {
	dsn := os.Getenv("DATABASE_URL")

	var dialector gorm.Dialector
	switch {
	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://"):
		dialector = postgres.Open(dsn)
	case strings.HasPrefix(dsn, "mysql://"):
		dialector = mysql.Open(strings.TrimPrefix(dsn, "mysql://"))
	default:
		file := dsn
		if file == "" {
			file = "database.db"
		}
		dialector = sqlite.Open(file)
	}

	connection, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	DB = connection

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	SeedDefaultSettings(DB)
}

// Migrate creates the schema, base tables first, then everything that hangs
// off them.
func Migrate(db *gorm.DB) error {
	// 1. Tables without foreign keys
	if err := db.AutoMigrate(
		&Customer{},
		&Supplier{},
		&CompanySetting{},
		&LoginAdmin{},
		&DocumentCounter{},
		&PositionTemplate{},
	); err != nil {
		return err
	}

	// 2. Quote aggregate
	if err := db.AutoMigrate(
		&Quote{},
		&LineItem{},
		&SubItem{},
		&Attachment{},
		&PositionTemplateSubItem{},
	); err != nil {
		return err
	}

	// 3. Everything built on accepted quotes
	return db.AutoMigrate(
		&Order{},
		&Invoice{},
		&InvoiceReminder{},
		&SupplierOrder{},
		&SupplierOrderItem{},
	)
}
