package middleware

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"Handwerk/Models"
)

// LogData contains the information written per request.
type LogData struct {
	Timestamp time.Time     `json:"timestamp"`
	Method    string        `json:"method"`
	Path      string        `json:"path"`
	URL       string        `json:"url"`
	Status    int           `json:"status"`
	Latency   time.Duration `json:"latency"`
	IP        string        `json:"ip"`
	UserAgent string        `json:"user_agent"`
	Username  string        `json:"username,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// RequestLogger logs every request to the console and to logs/requests.log
// as JSON lines. Static assets are skipped.
func RequestLogger() fiber.Handler {
	if err := os.MkdirAll("logs", 0755); err != nil {
		log.Printf("Error creating logs directory: %v\n", err)
	}

	return func(c *fiber.Ctx) error {
		if c.Path() == "/health" || c.Path() == "/static" {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()
		latency := time.Since(start)

		var username string
		if admin := c.Locals("admin"); admin != nil {
			if adminStruct, ok := admin.(Models.LoginAdmin); ok {
				username = adminStruct.Username
			}
		}

		data := LogData{
			Timestamp: start,
			Method:    c.Method(),
			Path:      c.Path(),
			URL:       c.OriginalURL(),
			Status:    c.Response().StatusCode(),
			Latency:   latency,
			IP:        c.IP(),
			UserAgent: c.Get("User-Agent"),
			Username:  username,
		}
		if err != nil {
			data.Error = err.Error()
		}

		jsonData, _ := json.Marshal(data)
		log.Println(string(jsonData))
		logToFile("logs/requests.log", string(jsonData))

		return err
	}
}

// ErrorLogger writes failed requests (status >= 400) to logs/errors.log.
func ErrorLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		if err != nil || c.Response().StatusCode() >= 400 {
			data := LogData{
				Timestamp: start,
				Method:    c.Method(),
				Path:      c.Path(),
				URL:       c.OriginalURL(),
				Status:    c.Response().StatusCode(),
				Latency:   time.Since(start),
				IP:        c.IP(),
			}
			if err != nil {
				data.Error = err.Error()
			}
			jsonData, _ := json.Marshal(data)
			logToFile("logs/errors.log", string(jsonData))
		}

		return err
	}
}

// logToFile appends one log line to the given file.
func logToFile(filePath, message string) {
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Error opening log file: %v\n", err)
		return
	}
	defer file.Close()

	if _, err := file.WriteString(fmt.Sprintf("%s\n", message)); err != nil {
		log.Printf("Error writing to log file: %v\n", err)
	}
}
