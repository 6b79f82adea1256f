package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"studytrack/backend/config"
	"studytrack/backend/routes"
	"studytrack/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger(utils.LoggerConfig{
		Level:        cfg.LogLevel,
		Format:       cfg.LogFormat,
		EnableColors: cfg.LogFormat == "text",
	})

	if cfg.UsesDefaultSecret() {
		logger.Warningf("JWT_SECRET is unset, signing tokens with the built-in default (DB_DRIVER=%s); set JWT_SECRET before exposing this server", cfg.DBDriver)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		logger.Fatalf("Error initializing database: %v", err)
	}
	logger.Infof("Connected to %s database", cfg.DBDriver)

	app := routes.NewApp(db, cfg, logger)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info("Shutting down")
		if err := app.Shutdown(); err != nil {
			logger.Errorf("Shutdown: %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		logger.Fatalf("Server stopped: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
