package main

import (
	"trailguard/config"
	"trailguard/di"
	"trailguard/shared/logger"

	_ "trailguard/docs"
)

// @title TrailGuard API
// @version 1.0
// @description QR based tourist location tracking with overdue safety alerts.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
