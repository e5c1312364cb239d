package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/nurpe/procurement/internal/auth"
	"github.com/nurpe/procurement/internal/config"
	"github.com/nurpe/procurement/internal/db"
	"github.com/nurpe/procurement/internal/excel"
	httphandler "github.com/nurpe/procurement/internal/http"
	"github.com/nurpe/procurement/internal/logger"
	"github.com/nurpe/procurement/internal/metrics"
	"github.com/nurpe/procurement/internal/pdf"
	"github.com/nurpe/procurement/internal/repository"
	"github.com/nurpe/procurement/internal/scoring"
	"github.com/nurpe/procurement/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(cfg.Metrics.Prefix, registry)

	scoringCfg := scoring.DefaultConfig().WithFallbackRates(cfg.Currency.FallbackUSDToTRY, cfg.Currency.FallbackEURToTRY)

	supplierRepo := repository.NewSupplierRepository(database)
	quoteRepo := repository.NewQuoteRepository(database)
	orderRepo := repository.NewOrderRepository(database)
	projectRepo := repository.NewProjectRepository(database)
	currencyRepo := repository.NewCurrencyRepository(database)
	notificationRepo := repository.NewNotificationRepository(database)

	notifications := service.NewNotificationService(notificationRepo, log)
	services := httphandler.Services{
		Projects:  service.NewProjectService(projectRepo, notifications),
		Suppliers: service.NewSupplierService(supplierRepo, scoringCfg, appMetrics, log),
		Quotes: service.NewQuoteService(service.QuoteServiceDeps{
			Quotes:    quoteRepo,
			Suppliers: supplierRepo,
			Parts:     projectRepo,
			Rates:     currencyRepo,
			Tokens:    auth.NewQuoteTokens(cfg.QuoteToken.Secret, cfg.QuoteToken.TTL),
			Excel:     excel.NewGenerator(),
			PDF:       pdf.NewGenerator(),
			Notifier:  notifications,
			Metrics:   appMetrics,
			Scoring:   scoringCfg,
			Log:       log,
		}),
		Orders:        service.NewOrderService(orderRepo, quoteRepo, notifications, appMetrics, scoringCfg, log),
		Currency:      service.NewCurrencyService(currencyRepo, scoringCfg),
		Notifications: notifications,
	}

	handler := httphandler.NewHandler(services, log)
	router := httphandler.NewRouter(handler, httphandler.RouterConfig{
		Environment: cfg.Environment,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Log:         log,
		Metrics:     appMetrics,
	})

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting procurement service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
