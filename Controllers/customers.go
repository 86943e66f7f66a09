package Controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"Handwerk/Models"
)

// GetCustomers retrieves all customers, optionally filtered by a search term.
// GET /api/customers
func GetCustomers(ctx *fiber.Ctx) error {
	query := Models.DB.Order("name ASC")
	if search := strings.TrimSpace(ctx.Query("search")); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR city LIKE ? OR email LIKE ?", like, like, like)
	}

	var customers []Models.Customer
	if err := query.Find(&customers).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve customers"})
	}
	return ctx.JSON(customers)
}

// GetCustomer retrieves one customer with its quotes.
// GET /api/customers/:id
func GetCustomer(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var customer Models.Customer
	result := Models.DB.Preload("Quotes").First(&customer, id)
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}
	return ctx.JSON(customer)
}

// CreateCustomer creates a new customer.
// POST /api/customers
func CreateCustomer(ctx *fiber.Ctx) error {
	var req Models.CustomerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if fields := validateStruct(req); fields != nil {
		return failValidation(ctx, fields)
	}

	customer := Models.Customer{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Address:       req.Address,
		Zip:           req.Zip,
		City:          req.City,
		Phone:         req.Phone,
		Email:         req.Email,
		Notes:         req.Notes,
	}
	if err := Models.DB.Create(&customer).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create customer"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(customer)
}

// UpdateCustomer updates an existing customer.
// PUT /api/customers/:id
func UpdateCustomer(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var customer Models.Customer
	if err := Models.DB.First(&customer, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	var req Models.CustomerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if fields := validateStruct(req); fields != nil {
		return failValidation(ctx, fields)
	}

	if err := Models.DB.Model(&customer).Updates(map[string]interface{}{
		"name":           req.Name,
		"contact_person": req.ContactPerson,
		"address":        req.Address,
		"zip":            req.Zip,
		"city":           req.City,
		"phone":          req.Phone,
		"email":          req.Email,
		"notes":          req.Notes,
	}).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update customer"})
	}
	return ctx.JSON(customer)
}

// DeleteCustomer soft deletes a customer.
// DELETE /api/customers/:id
func DeleteCustomer(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var customer Models.Customer
	if err := Models.DB.First(&customer, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	var quoteCount int64
	Models.DB.Model(&Models.Quote{}).Where("customer_id = ?", customer.ID).Count(&quoteCount)
	if quoteCount > 0 {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Customer still has quotes and cannot be deleted",
		})
	}

	if err := Models.DB.Delete(&customer).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete customer"})
	}
	return ctx.JSON(fiber.Map{"message": "Customer deleted"})
}
