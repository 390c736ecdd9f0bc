package main

import (
	"os"
)

// @title Community Currency Ledger API
// @version 1.0
// @description Single-currency community ledger: one-time initialization, balances and authorized transfers.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
