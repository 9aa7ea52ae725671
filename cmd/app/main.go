package main

import (
	"hotelops/config"
	"hotelops/di"
	"hotelops/shared/logger"
)

// @title Hotel Operations API
// @version 1.0
// @description Multi-tenant hotel operations backend: rooms, bookings, customers and reporting.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)
	logger.SetOutput(cfg)

	http := di.InitializeService()
	http.Serve()
}
