package main

import (
	"log"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"Handwerk/Controllers"
	"Handwerk/FiberConfig"
	"Handwerk/Models"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	Models.Connect()
	Controllers.EnsureAdmin()
	FiberConfig.FiberConfig()
}
