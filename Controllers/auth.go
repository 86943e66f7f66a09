package Controllers

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"Handwerk/Models"
	"Handwerk/middleware"
)

// EnsureAdmin creates the operator account on first start. Credentials come
// from ADMIN_USER / ADMIN_PASSWORD, defaulting to admin/admin for local use.
func EnsureAdmin() {
	var count int64
	Models.DB.Model(&Models.LoginAdmin{}).Count(&count)
	if count > 0 {
		return
	}

	username := os.Getenv("ADMIN_USER")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("Failed to hash admin password:", err)
		return
	}
	admin := Models.LoginAdmin{Username: username, PasswordHash: hash}
	if err := Models.DB.Create(&admin).Error; err != nil {
		log.Println("Failed to create admin account:", err)
	}
}

// Login checks the credentials and sets the JWT cookie.
// POST /api/login
func Login(ctx *fiber.Ctx) error {
	var req Models.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
	}
	if fields := validateStruct(req); fields != nil {
		return failValidation(ctx, fields)
	}

	var admin Models.LoginAdmin
	if err := Models.DB.Where("username = ?", req.Username).First(&admin).Error; err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Wrong username or password",
		})
	}
	if err := bcrypt.CompareHashAndPassword(admin.PasswordHash, []byte(req.Password)); err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Wrong username or password",
		})
	}

	claims := jwt.RegisteredClaims{
		Issuer:    strconv.Itoa(int(admin.ID)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(middleware.SecretKey())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create token",
		})
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
	})

	return ctx.JSON(fiber.Map{"message": "Logged in", "username": admin.Username})
}

// Logout clears the JWT cookie.
// POST /api/logout
func Logout(ctx *fiber.Ctx) error {
	ctx.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return ctx.JSON(fiber.Map{"message": "Logged out"})
}

// CurrentUser returns the logged-in admin.
// GET /api/user
func CurrentUser(ctx *fiber.Ctx) error {
	admin, ok := ctx.Locals("admin").(Models.LoginAdmin)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not Logged In.",
		})
	}
	return ctx.JSON(fiber.Map{"id": admin.ID, "username": admin.Username})
}
