package Controllers

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"Handwerk/Models"
)

// backupTable describes one sheet of the backup workbook. Rows are carried as
// strings so the same descriptor drives the Excel export, the CSV export and
// the restore.
type backupTable struct {
	name    string
	headers []string
	rows    func(db *gorm.DB) ([][]string, error)
	restore func(tx *gorm.DB, rows [][]string) error
}

func fstr(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func timeStr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func timePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// backupTables lists every sheet in dependency order: parents first, so the
// restore can insert top to bottom after wiping bottom to top. Admin logins
// are deliberately absent; a restore never locks the operator out.
var backupTables = []backupTable{
	{
		name:    "Customers",
		headers: []string{"ID", "Name", "ContactPerson", "Address", "Zip", "City", "Phone", "Email", "Notes"},
		rows: func(db *gorm.DB) ([][]string, error) {
			var records []Models.Customer
			if err := db.Order("id ASC").Find(&records).Error; err != nil {
				return nil, err
			}
			out := make([][]string, 0, len(records))
			for _, r := range records {
				out = append(out, []string{
					cast.ToString(r.ID), r.Name, r.ContactPerson, r.Address,
					r.Zip, r.City, r.Phone, r.Email, r.Notes,
				})
			}
			return out, nil
		},
		restore: func(tx *gorm.DB, rows [][]string) error {
			for _, row := range rows {
				record := Models.Customer{
					Name: cell(row, 1), ContactPerson: cell(row, 2), Address: cell(row, 3),
					Zip: cell(row, 4), City: cell(row, 5), Phone: cell(row, 6),
					Email: cell(row, 7), Notes: cell(row, 8),
				}
				record.ID = cast.ToUint(cell(row, 0))
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
			}
			return nil
		},
	},
	{
		name:    "Suppliers",
		headers: []string{"ID", "Name", "ContactPerson", "Email", "Phone", "Notes"},
		rows: func(db *gorm.DB) ([][]string, error) {
			var records []Models.Supplier
			if err := db.Order("id ASC").Find(&records).Error; err != nil {
				return nil, err
			}
			out := make([][]string, 0, len(records))
			for _, r := range records {
				out = append(out, []string{
					cast.ToString(r.ID), r.Name, r.ContactPerson, r.Email, r.Phone, r.Notes,
				})
			}
			return out, nil
		},
		restore: func(tx *gorm.DB, rows [][]string) error {
			for _, row := range rows {
				record := Models.Supplier{
					Name: cell(row, 1), ContactPerson: cell(row, 2),
					Email: cell(row, 3), Phone: cell(row, 4), Notes: cell(row, 5),
				}
				record.ID = cast.ToUint(cell(row, 0))
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
			}
			return nil
		},
	},
	{
		name:    "Settings",
		headers: []string{"Key", "Value"},
		rows: func(db *gorm.DB) ([][]string, error) {
			var records []Models.CompanySetting
			if err := db.Order("key ASC").Find(&records).Error; err != nil {
				return nil, err
			}
			out := make([][]string, 0, len(records))
			for _, r := range records {
				out = append(out, []string{r.Key, r.Value})
			}
			return out, nil
		},
		restore: func(tx *gorm.DB, rows [][]string) error {
			for _, row := range rows {
				if err := Models.SetSetting(tx, cell(row, 0), cell(row, 1)); err != nil {
					return err
				}
			}
			return nil
		},
	},
	{
		name: "Quotes",
		headers: []string{"ID", "Number", "CustomerID", "ProjectDescription", "Status",
			"MarkupPercent", "ValidUntil", "TotalAmount"},
		rows: func(db *gorm.DB) ([][]string, error) {
			var records []Models.Quote
			if err := db.Order("id ASC").Find(&records).Error; err != nil {
				return nil, err
			}
			out := make([][]string, 0, len(records))
			for _, r := range records {
				out = append(out, []string{
					cast.ToString(r.ID), r.Number, cast.ToString(r.CustomerID),
					r.ProjectDescription, r.Status, fstr(r.MarkupPercent),
					timeStr(r.ValidUntil), fstr(r.TotalAmount),
				})
			}
			return out, nil
		},
		restore: func(tx *gorm.DB, rows [][]string) error {
			for _, row := range rows {
				record := Models.Quote{
					Number:             cell(row, 1),
					CustomerID:         cast.ToUint(cell(row, 2)),
					ProjectDescription: cell(row, 3),
					Status:             cell(row, 4),
					MarkupPercent:      cast.ToFloat64(cell(row, 5)),
					ValidUntil:         timePtr(cell(row, 6)),
					TotalAmount:        cast.ToFloat64(cell(row, 7)),
				}
				record.ID = cast.ToUint(cell(row, 0))
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
			}
			return nil
		},
	},
	{
		name: "LineItems",
		headers: []string{"ID", "QuoteID", "Position", "Description", "Quantity",
			"UnitPrice", "TotalPrice", "ItemType"},
		rows: func(db *gorm.DB) ([][]string, error) {
			var records []Models.LineItem
			if err := db.Order("id ASC").Find(&records).Error; err != nil {
				return nil, err
			}
			out := make([][]string, 0, len(records))
			for _, r := range records {
				out = append(out, []string{
					cast.ToString(r.ID), cast.ToString(r.QuoteID), cast.ToString(r.Position),
					r.Description, fstr(r.Quantity), fstr(r.UnitPrice), fstr(r.TotalPrice), r.ItemType,
				})
			}
			return out, nil
		},
		restore: func(tx *gorm.DB, rows [][]string) error {
			for _, row := range rows {
				record := Models.LineItem{
					QuoteID:     cast.ToUint(cell(row, 1)),
					Position:    cast.ToInt(cell(row, 2)),
					Description: cell(row, 3),
					Quantity:    cast.ToFloat64(cell(row, 4)),
					UnitPrice:   cast.ToFloat64(cell(row, 5)),
					TotalPrice:  cast.ToFloat64(cell(row, 6)),
					ItemType:    cell(row, 7),
				}
				record.ID = cast.ToUint(cell(row, 0))
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
			}
			return nil
		},
	},
	{
		name: "SubItems",
		headers: []string{"ID", "LineItemID", "SubNumber", "Kind", "RequiresOrder",
			"SupplierName", "PartNumber", "PartQuantity", "PartPrice",
			"Hours", "HourlyRate", "Quantity", "UnitPrice", "Price"},
		rows: func(db *gorm.DB) ([][]string, error) {
			var records []Models.SubItem
			if err := db.Order("id ASC").Find(&records).Error; err != nil {
				return nil, err
			}
			out := make([][]string, 0, len(records))
			for _, r := range records {
				out = append(out, []string{
					cast.ToString(r.ID), cast.ToString(r.LineItemID), r.SubNumber, r.Kind,
					strconv.FormatBool(r.RequiresOrder), r.SupplierName, r.PartNumber,
					r.PartQuantity, fstr(r.PartPrice), fstr(r.Hours), fstr(r.HourlyRate),
					r.Quantity, fstr(r.UnitPrice), fstr(r.Price),
				})
			}
			return out, nil
		},
		restore: func(tx *gorm.DB, rows [][]string) error {
			for _, row := range rows {
				record := Models.SubItem{
					LineItemID:    cast.ToUint(cell(row, 1)),
					SubNumber:     cell(row, 2),
					Kind:          cell(row, 3),
					RequiresOrder: cast.ToBool(cell(row, 4)),
					SupplierName:  cell(row, 5),
					PartNumber:    cell(row, 6),
					PartQuantity:  cell(row, 7),
					PartPrice:     cast.ToFloat64(cell(row, 8)),
					Hours:         cast.ToFloat64(cell(row, 9)),
					HourlyRate:    cast.ToFloat64(cell(row, 10)),
					Quantity:      cell(row, 11),
					UnitPrice:     cast.ToFloat64(cell(row, 12)),
					Price:         cast.ToFloat64(cell(row, 13)),
				}
				record.ID = cast.ToUint(cell(row, 0))
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
			}
			return nil
		},
	},
	{
		name: "Orders",
		headers: []string{"ID", "Number", "QuoteID", "Status", "StartDate", "EndDate",
			"ProjectManager", "Notes"},
		rows: func(db *gorm.DB) ([][]string, error) {
			var records []Models.Order
			if err := db.Order("id ASC").Find(&records).Error; err != nil {
				return nil, err
			}
			out := make([][]string, 0, len(records))
			for _, r := range records {
				out = append(out, []string{
					cast.ToString(r.ID), r.Number, cast.ToString(r.QuoteID), r.Status,
					timeStr(r.StartDate), timeStr(r.EndDate), r.ProjectManager, r.Notes,
				})
			}
			return out, nil
		},
		restore: func(tx *gorm.DB, rows [][]string) error {
			for _, row := range rows {
				record := Models.Order{
					Number:         cell(row, 1),
					QuoteID:        cast.ToUint(cell(row, 2)),
					Status:         cell(row, 3),
					StartDate:      timePtr(cell(row, 4)),
					EndDate:        timePtr(cell(row, 5)),
					ProjectManager: cell(row, 6),
					Notes:          cell(row, 7),
				}
				record.ID = cast.ToUint(cell(row, 0))
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
			}
			return nil
		},
	},
	{
		name: "Invoices",
		headers: []string{"ID", "Number", "OrderID", "CustomerID", "Type", "Percentage",
			"BaseAmount", "PreviousPayments", "FinalAmount", "VatRate", "VatAmount",
			"GrossAmount", "DueDate", "PaymentStatus", "PaidAmount"},
		rows: func(db *gorm.DB) ([][]string, error) {
			var records []Models.Invoice
			if err := db.Order("id ASC").Find(&records).Error; err != nil {
				return nil, err
			}
			out := make([][]string, 0, len(records))
			for _, r := range records {
				orderID := ""
				if r.OrderID != nil {
					orderID = cast.ToString(*r.OrderID)
				}
				out = append(out, []string{
					cast.ToString(r.ID), r.Number, orderID, cast.ToString(r.CustomerID),
					r.Type, fstr(r.Percentage), fstr(r.BaseAmount), fstr(r.PreviousPayments),
					fstr(r.FinalAmount), fstr(r.VatRate), fstr(r.VatAmount), fstr(r.GrossAmount),
					timeStr(r.DueDate), r.PaymentStatus, fstr(r.PaidAmount),
				})
			}
			return out, nil
		},
		restore: func(tx *gorm.DB, rows [][]string) error {
			for _, row := range rows {
				record := Models.Invoice{
					Number:           cell(row, 1),
					CustomerID:       cast.ToUint(cell(row, 3)),
					Type:             cell(row, 4),
					Percentage:       cast.ToFloat64(cell(row, 5)),
					BaseAmount:       cast.ToFloat64(cell(row, 6)),
					PreviousPayments: cast.ToFloat64(cell(row, 7)),
					FinalAmount:      cast.ToFloat64(cell(row, 8)),
					VatRate:          cast.ToFloat64(cell(row, 9)),
					VatAmount:        cast.ToFloat64(cell(row, 10)),
					GrossAmount:      cast.ToFloat64(cell(row, 11)),
					DueDate:          timePtr(cell(row, 12)),
					PaymentStatus:    cell(row, 13),
					PaidAmount:       cast.ToFloat64(cell(row, 14)),
				}
				if raw := cell(row, 2); raw != "" {
					orderID := cast.ToUint(raw)
					record.OrderID = &orderID
				}
				record.ID = cast.ToUint(cell(row, 0))
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
			}
			return nil
		},
	},
	{
		name:    "InvoiceReminders",
		headers: []string{"ID", "InvoiceID", "Level", "SentAt", "Note"},
		rows: func(db *gorm.DB) ([][]string, error) {
			var records []Models.InvoiceReminder
			if err := db.Order("id ASC").Find(&records).Error; err != nil {
				return nil, err
			}
			out := make([][]string, 0, len(records))
			for _, r := range records {
				sentAt := r.SentAt
				out = append(out, []string{
					cast.ToString(r.ID), cast.ToString(r.InvoiceID), cast.ToString(r.Level),
					timeStr(&sentAt), r.Note,
				})
			}
			return out, nil
		},
		restore: func(tx *gorm.DB, rows [][]string) error {
			for _, row := range rows {
				record := Models.InvoiceReminder{
					InvoiceID: cast.ToUint(cell(row, 1)),
					Level:     cast.ToInt(cell(row, 2)),
					Note:      cell(row, 4),
				}
				if sentAt := timePtr(cell(row, 3)); sentAt != nil {
					record.SentAt = *sentAt
				}
				record.ID = cast.ToUint(cell(row, 0))
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
			}
			return nil
		},
	},
	{
		name:    "SupplierOrders",
		headers: []string{"ID", "QuoteID", "SupplierName", "Status"},
		rows: func(db *gorm.DB) ([][]string, error) {
			var records []Models.SupplierOrder
			if err := db.Order("id ASC").Find(&records).Error; err != nil {
				return nil, err
			}
			out := make([][]string, 0, len(records))
			for _, r := range records {
				out = append(out, []string{
					cast.ToString(r.ID), cast.ToString(r.QuoteID), r.SupplierName, r.Status,
				})
			}
			return out, nil
		},
		restore: func(tx *gorm.DB, rows [][]string) error {
			for _, row := range rows {
				record := Models.SupplierOrder{
					QuoteID:      cast.ToUint(cell(row, 1)),
					SupplierName: cell(row, 2),
					Status:       cell(row, 3),
				}
				record.ID = cast.ToUint(cell(row, 0))
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
			}
			return nil
		},
	},
	{
		name:    "SupplierOrderItems",
		headers: []string{"ID", "SupplierOrderID", "SubItemID", "PartNumber", "PartQuantity", "PartPrice"},
		rows: func(db *gorm.DB) ([][]string, error) {
			var records []Models.SupplierOrderItem
			if err := db.Order("id ASC").Find(&records).Error; err != nil {
				return nil, err
			}
			out := make([][]string, 0, len(records))
			for _, r := range records {
				out = append(out, []string{
					cast.ToString(r.ID), cast.ToString(r.SupplierOrderID), cast.ToString(r.SubItemID),
					r.PartNumber, r.PartQuantity, fstr(r.PartPrice),
				})
			}
			return out, nil
		},
		restore: func(tx *gorm.DB, rows [][]string) error {
			for _, row := range rows {
				record := Models.SupplierOrderItem{
					SupplierOrderID: cast.ToUint(cell(row, 1)),
					SubItemID:       cast.ToUint(cell(row, 2)),
					PartNumber:      cell(row, 3),
					PartQuantity:    cell(row, 4),
					PartPrice:       cast.ToFloat64(cell(row, 5)),
				}
				record.ID = cast.ToUint(cell(row, 0))
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
			}
			return nil
		},
	},
	{
		name:    "Templates",
		headers: []string{"ID", "Name", "Description", "Quantity", "UnitPrice", "ItemType"},
		rows: func(db *gorm.DB) ([][]string, error) {
			var records []Models.PositionTemplate
			if err := db.Order("id ASC").Find(&records).Error; err != nil {
				return nil, err
			}
			out := make([][]string, 0, len(records))
			for _, r := range records {
				out = append(out, []string{
					cast.ToString(r.ID), r.Name, r.Description,
					fstr(r.Quantity), fstr(r.UnitPrice), r.ItemType,
				})
			}
			return out, nil
		},
		restore: func(tx *gorm.DB, rows [][]string) error {
			for _, row := range rows {
				record := Models.PositionTemplate{
					Name:        cell(row, 1),
					Description: cell(row, 2),
					Quantity:    cast.ToFloat64(cell(row, 3)),
					UnitPrice:   cast.ToFloat64(cell(row, 4)),
					ItemType:    cell(row, 5),
				}
				record.ID = cast.ToUint(cell(row, 0))
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
			}
			return nil
		},
	},
	{
		name: "TemplateSubItems",
		headers: []string{"ID", "TemplateID", "Kind", "RequiresOrder", "SupplierName",
			"PartNumber", "PartQuantity", "PartPrice", "Hours", "HourlyRate", "Quantity", "UnitPrice"},
		rows: func(db *gorm.DB) ([][]string, error) {
			var records []Models.PositionTemplateSubItem
			if err := db.Order("id ASC").Find(&records).Error; err != nil {
				return nil, err
			}
			out := make([][]string, 0, len(records))
			for _, r := range records {
				out = append(out, []string{
					cast.ToString(r.ID), cast.ToString(r.PositionTemplateID), r.Kind,
					strconv.FormatBool(r.RequiresOrder), r.SupplierName, r.PartNumber,
					r.PartQuantity, fstr(r.PartPrice), fstr(r.Hours), fstr(r.HourlyRate),
					r.Quantity, fstr(r.UnitPrice),
				})
			}
			return out, nil
		},
		restore: func(tx *gorm.DB, rows [][]string) error {
			for _, row := range rows {
				record := Models.PositionTemplateSubItem{
					PositionTemplateID: cast.ToUint(cell(row, 1)),
					Kind:               cell(row, 2),
					RequiresOrder:      cast.ToBool(cell(row, 3)),
					SupplierName:       cell(row, 4),
					PartNumber:         cell(row, 5),
					PartQuantity:       cell(row, 6),
					PartPrice:          cast.ToFloat64(cell(row, 7)),
					Hours:              cast.ToFloat64(cell(row, 8)),
					HourlyRate:         cast.ToFloat64(cell(row, 9)),
					Quantity:           cell(row, 10),
					UnitPrice:          cast.ToFloat64(cell(row, 11)),
				}
				record.ID = cast.ToUint(cell(row, 0))
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
			}
			return nil
		},
	},
	{
		name:    "Counters",
		headers: []string{"ID", "DocType", "Year", "LastValue"},
		rows: func(db *gorm.DB) ([][]string, error) {
			var records []Models.DocumentCounter
			if err := db.Order("id ASC").Find(&records).Error; err != nil {
				return nil, err
			}
			out := make([][]string, 0, len(records))
			for _, r := range records {
				out = append(out, []string{
					cast.ToString(r.ID), r.DocType, cast.ToString(r.Year), cast.ToString(r.LastValue),
				})
			}
			return out, nil
		},
		restore: func(tx *gorm.DB, rows [][]string) error {
			for _, row := range rows {
				record := Models.DocumentCounter{
					DocType:   cell(row, 1),
					Year:      cast.ToInt(cell(row, 2)),
					LastValue: cast.ToInt(cell(row, 3)),
				}
				record.ID = cast.ToUint(cell(row, 0))
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
			}
			return nil
		},
	},
}

// wipeOrder lists the models cleared before a restore, children first.
var wipeOrder = []interface{}{
	&Models.SupplierOrderItem{},
	&Models.SupplierOrder{},
	&Models.InvoiceReminder{},
	&Models.Invoice{},
	&Models.Order{},
	&Models.Attachment{},
	&Models.SubItem{},
	&Models.LineItem{},
	&Models.Quote{},
	&Models.PositionTemplateSubItem{},
	&Models.PositionTemplate{},
	&Models.DocumentCounter{},
	&Models.Supplier{},
	&Models.Customer{},
}

// ExportBackup writes every table into one Excel workbook, one sheet per
// table.
// GET /api/backup/excel
func ExportBackup(ctx *fiber.Ctx) error {
	file := excelize.NewFile()

	for _, table := range backupTables {
		if _, err := file.NewSheet(table.name); err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build workbook"})
		}
		for col, header := range table.headers {
			cellName, _ := excelize.CoordinatesToCellName(col+1, 1)
			_ = file.SetCellValue(table.name, cellName, header)
		}

		rows, err := table.rows(Models.DB)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read " + table.name})
		}
		for i, row := range rows {
			for col, value := range row {
				cellName, _ := excelize.CoordinatesToCellName(col+1, i+2)
				_ = file.SetCellValue(table.name, cellName, value)
			}
		}
	}
	_ = file.DeleteSheet("Sheet1")

	buf, err := file.WriteToBuffer()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write workbook"})
	}

	filename := fmt.Sprintf("backup_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return ctx.Send(buf.Bytes())
}

// ExportBackupCSV writes the same tables as individual CSV files inside a ZIP
// archive, for consumers that cannot read xlsx.
// GET /api/backup/csv
func ExportBackupCSV(ctx *fiber.Ctx) error {
	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)

	for _, table := range backupTables {
		entry, err := archive.Create(table.name + ".csv")
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build archive"})
		}
		w := csv.NewWriter(entry)
		if err := w.Write(table.headers); err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write " + table.name})
		}

		rows, err := table.rows(Models.DB)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read " + table.name})
		}
		if err := w.WriteAll(rows); err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write " + table.name})
		}
	}

	if err := archive.Close(); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to close archive"})
	}

	filename := fmt.Sprintf("backup_%s.zip", time.Now().Format("2006-01-02"))
	ctx.Set("Content-Type", "application/zip")
	ctx.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return ctx.Send(buf.Bytes())
}

// ImportBackup replaces all business data with the contents of an uploaded
// backup workbook. The whole restore runs in one transaction; a malformed file
// leaves the database untouched. Admin logins are never part of the backup, so
// the current credentials survive.
// POST /api/restore/excel
func ImportBackup(ctx *fiber.Ctx) error {
	upload, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file uploaded"})
	}

	src, err := upload.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to open file"})
	}
	defer src.Close()

	workbook, err := excelize.OpenReader(src)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File is not a valid backup workbook"})
	}
	defer workbook.Close()

	err = Models.DB.Transaction(func(tx *gorm.DB) error {
		for _, model := range wipeOrder {
			if err := tx.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("1 = 1").Delete(&Models.CompanySetting{}).Error; err != nil {
			return err
		}

		for _, table := range backupTables {
			rows, err := workbook.GetRows(table.name)
			if err != nil {
				continue // sheet absent in older backups
			}
			if len(rows) <= 1 {
				continue
			}
			if err := table.restore(tx, rows[1:]); err != nil {
				return fmt.Errorf("restoring %s: %w", table.name, err)
			}
		}
		return nil
	})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Restore failed, no data was changed",
			"message": err.Error(),
		})
	}

	Models.SeedDefaultSettings(Models.DB)
	return ctx.JSON(fiber.Map{"message": "Backup restored"})
}
