package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/config"
	"github.com/olawale190/Apinlero-MVP-sub000/internal/db"
	"github.com/olawale190/Apinlero-MVP-sub000/internal/engine"
	"github.com/olawale190/Apinlero-MVP-sub000/internal/httpserver"
	"github.com/olawale190/Apinlero-MVP-sub000/internal/parser"
	aliasrepo "github.com/olawale190/Apinlero-MVP-sub000/internal/repository/alias"
	customerrepo "github.com/olawale190/Apinlero-MVP-sub000/internal/repository/customer"
	orderrepo "github.com/olawale190/Apinlero-MVP-sub000/internal/repository/order"
	productrepo "github.com/olawale190/Apinlero-MVP-sub000/internal/repository/product"
	sessionrepo "github.com/olawale190/Apinlero-MVP-sub000/internal/repository/session"
	"github.com/olawale190/Apinlero-MVP-sub000/internal/resolver"
	"github.com/olawale190/Apinlero-MVP-sub000/internal/zones"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	productRepo := productrepo.NewPostgres(dbpool, logger)
	customerRepo := customerrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	aliasRepo := aliasrepo.NewPostgres(dbpool, logger)
	sessionStore := sessionrepo.NewCached(sessionrepo.NewPostgres(dbpool, logger))

	zoneCalc := zones.NewDefault()
	productResolver := resolver.New(aliasRepo, productRepo, nil, logger)
	msgParser := parser.New(productResolver, zoneCalc, logger)

	eng := engine.New(sessionStore, productRepo, customerRepo, orderRepo, msgParser, zoneCalc, engine.Config{
		AutoConfirmMinOrders: cfg.AutoConfirmMinOrders,
		AutoConfirmMaxCents:  cfg.AutoConfirmMaxCents,
		AnonymousTTL:         cfg.SessionTTLAnonymous,
		TenantTTL:            cfg.SessionTTLTenant,
		Production:           cfg.Production,
	}, logger)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Engine:          eng,
		DefaultTenantID: cfg.DefaultTenantID,
		MetaVerifyToken: cfg.MetaVerifyToken,
	})

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

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
