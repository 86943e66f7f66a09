package FiberConfig

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/template/html"
	"gorm.io/gorm"

	"Handwerk/Controllers"
	"Handwerk/Models"
	"Handwerk/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	supplierController := Controllers.NewSupplierController(db)

	app.Post("/api/login", Controllers.Login)
	app.Post("/api/logout", Controllers.Logout)

	app.Get("/", middleware.Verify(), Controllers.Dashboard)

	api := app.Group("/api", middleware.Verify())
	api.Get("/user", Controllers.CurrentUser)

	// Customer routes
	customers := api.Group("/customers")
	customers.Get("/", Controllers.GetCustomers)
	customers.Post("/", Controllers.CreateCustomer)
	customers.Get("/:id", Controllers.GetCustomer)
	customers.Put("/:id", Controllers.UpdateCustomer)
	customers.Delete("/:id", Controllers.DeleteCustomer)

	// Quote routes
	quotes := api.Group("/quotes")
	quotes.Get("/", Controllers.GetQuotes)
	quotes.Post("/", Controllers.CreateQuote)
	quotes.Get("/:id", Controllers.GetQuote)
	quotes.Put("/:id", Controllers.UpdateQuote)
	quotes.Delete("/:id", Controllers.DeleteQuote)
	quotes.Post("/:id/status", Controllers.ChangeQuoteStatus)
	quotes.Post("/:id/line-items", Controllers.CreateLineItem)
	quotes.Post("/:id/apply-template/:templateId", Controllers.ApplyTemplate)
	quotes.Get("/:id/pdf", Controllers.GetQuotePDF)
	quotes.Post("/:id/attachments", Controllers.UploadAttachment)

	// Line item and sub-item routes
	lineItems := api.Group("/line-items")
	lineItems.Put("/:id", Controllers.UpdateLineItem)
	lineItems.Delete("/:id", Controllers.DeleteLineItem)
	lineItems.Post("/:id/sub-items", Controllers.CreateSubItem)

	subItems := api.Group("/sub-items")
	subItems.Put("/:id", Controllers.UpdateSubItem)
	subItems.Delete("/:id", Controllers.DeleteSubItem)

	// Attachment routes
	attachments := api.Group("/attachments")
	attachments.Get("/:id", Controllers.GetAttachment)
	attachments.Delete("/:id", Controllers.DeleteAttachment)

	// Order routes
	orders := api.Group("/orders")
	orders.Get("/", Controllers.GetOrders)
	orders.Get("/:id", Controllers.GetOrder)
	orders.Put("/:id", Controllers.UpdateOrder)
	orders.Get("/:id/work-instruction", Controllers.GetWorkInstructionPDF)

	// Invoice routes
	invoices := api.Group("/invoices")
	invoices.Get("/", Controllers.GetInvoices)
	invoices.Post("/", Controllers.CreateInvoice)
	invoices.Get("/:id", Controllers.GetInvoice)
	invoices.Put("/:id", Controllers.UpdateInvoice)
	invoices.Delete("/:id", Controllers.DeleteInvoice)
	invoices.Post("/:id/payments", Controllers.RegisterInvoicePayment)
	invoices.Post("/:id/reminders", Controllers.CreateInvoiceReminder)
	invoices.Get("/:id/pdf", Controllers.GetInvoicePDF)

	// Supplier routes
	suppliers := api.Group("/suppliers")
	suppliers.Get("/", supplierController.GetSuppliers)
	suppliers.Post("/", supplierController.CreateSupplier)
	suppliers.Get("/:id", supplierController.GetSupplier)
	suppliers.Put("/:id", supplierController.UpdateSupplier)
	suppliers.Delete("/:id", supplierController.DeleteSupplier)

	// Supplier order routes
	supplierOrders := api.Group("/supplier-orders")
	supplierOrders.Get("/", supplierController.GetSupplierOrders)
	supplierOrders.Get("/:id", supplierController.GetSupplierOrder)
	supplierOrders.Get("/:id/email", supplierController.GetSupplierOrderEmail)
	supplierOrders.Post("/:id/send", supplierController.SendSupplierOrderEmail)
	supplierOrders.Patch("/:id/sent", supplierController.MarkSupplierOrderSent)

	// Position template routes
	templates := api.Group("/templates")
	templates.Get("/", Controllers.GetTemplates)
	templates.Post("/", Controllers.CreateTemplate)
	templates.Delete("/:id", Controllers.DeleteTemplate)

	// Settings routes
	settings := api.Group("/settings")
	settings.Get("/", Controllers.GetSettings)
	settings.Put("/", Controllers.UpdateSettings)

	// Backup routes
	api.Get("/backup/excel", Controllers.ExportBackup)
	api.Get("/backup/csv", Controllers.ExportBackupCSV)
	api.Post("/restore/excel", Controllers.ImportBackup)
}

func FiberConfig() {
	fmt.Println("Server Up...")
	engine := html.New("./Templates", ".html")
	app := fiber.New(fiber.Config{
		Views:     engine,
		BodyLimit: 16 * 1024 * 1024,
	})
	app.Use(middleware.RequestLogger())
	app.Use(middleware.ErrorLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           300,
	}))

	SetupRoutes(app, Models.DB)
	app.Static("/static", "static/")

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	app.Listen(":" + port)
}
