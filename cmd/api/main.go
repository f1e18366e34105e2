package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/joshuadev/bigasan-pos/internal/application/service"
	"github.com/joshuadev/bigasan-pos/internal/config"
	"github.com/joshuadev/bigasan-pos/internal/infrastructure/localstore"
	"github.com/joshuadev/bigasan-pos/internal/presentation/http/handler"
	"github.com/joshuadev/bigasan-pos/internal/presentation/http/routes"
	"github.com/joshuadev/bigasan-pos/internal/store"
	"github.com/joshuadev/bigasan-pos/internal/sync"
	"github.com/joshuadev/bigasan-pos/pkg/logger"
	"github.com/joshuadev/bigasan-pos/pkg/oauth"
	"github.com/joshuadev/bigasan-pos/pkg/printer"
	"github.com/joshuadev/bigasan-pos/pkg/utils"
)

const connectTimeout = 30 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.New(cfg.App.LogLevel)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// The in-memory store is the single source of truth
	st := store.New()

	// Local file storage for owner credentials
	local, err := localstore.New(cfg.Storage.Path)
	if err != nil {
		log.WithError(err).Fatal("failed to open local storage")
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:     cfg.OAuth.GoogleClientID,
		ClientSecret: cfg.OAuth.GoogleClientSecret,
		RedirectURL:  cfg.OAuth.GoogleRedirectURL,
		SuccessURL:   cfg.OAuth.SuccessURL,
		ErrorURL:     cfg.OAuth.ErrorURL,
		OwnerEmails:  cfg.OAuth.OwnerEmails,
	})

	// Hydrate owner credentials before anything can serve requests
	authService := service.NewAuthService(st, local, jwtManager, googleOAuthService, log)
	if err := authService.LoadOwner(); err != nil {
		log.WithError(err).Fatal("failed to load owner credentials")
	}

	// Cloud sync: connect, pull the remote dataset, then mirror both ways.
	// Any failure here leaves the app fully usable offline.
	syncer := sync.New(st, log)
	if cfg.Sync.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		remote, err := sync.NewFirestoreRemote(ctx, cfg.Sync.ProjectID, cfg.Sync.CredentialsFile, cfg.Sync.Collection, log)
		if err != nil {
			log.WithError(err).Warn("cloud sync unavailable, running offline")
		} else if err := syncer.Connect(ctx, remote); err != nil {
			log.WithError(err).Warn("cloud sync unreachable, running offline")
		} else {
			if err := syncer.PullAll(ctx); err != nil {
				log.WithError(err).Warn("initial pull failed")
			}
			if err := syncer.ListenAll(context.Background()); err != nil {
				log.WithError(err).Warn("sync listeners failed, running offline")
			}
		}
		cancel()
	}

	// Initialize services
	productService := service.NewProductService(st)
	salesService := service.NewSalesService(st)
	customerService := service.NewCustomerService(st)
	supplierService := service.NewSupplierService(st)
	creditService := service.NewCreditService(st)
	settingsService := service.NewSettingsService(st)
	dashboardService := service.NewDashboardService(st)
	backupService := service.NewBackupService(st, syncer, log)

	// First run gets a starter dataset; an existing remote dataset was
	// already pulled above and wins.
	backupService.SeedIfEmpty()

	// Sweep overdue credits once at startup and then daily
	creditService.RefreshStatuses()
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			creditService.RefreshStatuses()
		}
	}()

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.WithError(err).Warn("failed to initialize printer")
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, st, cfg.Printer.Type, log)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Product:   handler.NewProductHandler(productService),
		Sales:     handler.NewSalesHandler(salesService),
		Customer:  handler.NewCustomerHandler(customerService, creditService),
		Supplier:  handler.NewSupplierHandler(supplierService),
		Credit:    handler.NewCreditHandler(creditService),
		Settings:  handler.NewSettingsHandler(settingsService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Backup:    handler.NewBackupHandler(backupService),
		Sync:      handler.NewSyncHandler(syncer),
		Printer:   handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
		Log:        log,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.WithField("port", port).Infof("starting %s (%s)", cfg.App.Name, cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
