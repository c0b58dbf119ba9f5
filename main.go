package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/babyduj/shower-api/cmd/app"
)

// @title        Baby shower API
// @version      1.0
// @description  Gender votes, predictions, gift registry, guest book and photo gallery.
//
// @contact.name  Shower hosts
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token returned by /auth/login or /auth/signup.
func main() {
	if err := app.Start(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
