package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"salonpos/internal/cache"
	"salonpos/internal/config"
	"salonpos/internal/db"
	"salonpos/internal/httpserver"
	"salonpos/internal/publisher"
	catalogrepo "salonpos/internal/repository/catalog"
	clientrepo "salonpos/internal/repository/client"
	outboxrepo "salonpos/internal/repository/outbox"
	paymentrepo "salonpos/internal/repository/payment"
	tenantrepo "salonpos/internal/repository/tenant"
	treatmentrepo "salonpos/internal/repository/treatment"
	catalogsvc "salonpos/internal/service/catalog"
	checkoutsvc "salonpos/internal/service/checkout"
	treatmentsvc "salonpos/internal/service/treatment"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	var catalogCache cache.CatalogCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		catalogCache = cache.NewRedisCache(rdb)
	}

	tenantRepo := tenantrepo.NewPostgres(dbpool)
	clientRepo := clientrepo.NewPostgres(dbpool)
	catalogRepo := catalogrepo.NewPostgres(dbpool)
	treatmentRepo := treatmentrepo.NewPostgres(dbpool)
	paymentRepo := paymentrepo.NewPostgres(dbpool)

	catalogService := catalogsvc.New(catalogRepo, catalogCache, logger)
	treatmentService := treatmentsvc.New(treatmentRepo, clientRepo, catalogRepo)
	checkoutService := checkoutsvc.New(treatmentRepo, paymentRepo)
	resolver := httpserver.NewTenantResolver(tenantRepo, cfg.TenantHosts, cfg.DefaultTenantKey)

	if len(cfg.KafkaBrokers) > 0 {
		poller := publisher.NewOutboxPoller(outboxrepo.NewPostgres(dbpool), logger, cfg.KafkaBrokers...)
		go poller.Run(ctx)
	} else {
		logger.Printf("no kafka brokers configured, outbox publishing disabled")
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		TenantResolver: resolver,
		CatalogSvc:     catalogService,
		TreatmentSvc:   treatmentService,
		CheckoutSvc:    checkoutService,
		PaymentMethods: paymentRepo,
		Clients:        clientRepo,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
