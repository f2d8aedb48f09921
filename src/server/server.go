package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"truenorth/src/connectors"
	"truenorth/src/controller"
	"truenorth/src/handler"
	"truenorth/src/market"
	"truenorth/src/repository"
	"truenorth/src/session"
)

func StartServer(port string) {
	connectorsCfg := connectors.GetConfig()
	marketCfg := market.GetConfig()

	// Market catalog: warm it once before accepting traffic, then keep it
	// fresh in the background. The first fetch degrades to the fallback
	// list, so startup never blocks on the upstream being healthy.
	catalog := market.NewCatalog(
		connectors.NewCoinGeckoClient(connectorsCfg.CoinGeckoAPIKey, connectorsCfg.CoinGeckoBaseURL),
	)

	warmCtx, warmCancel := context.WithTimeout(context.Background(), marketCfg.FetchTimeout)
	catalog.Refresh(warmCtx)
	warmCancel()

	refreshCtx, stopRefresher := context.WithCancel(context.Background())
	defer stopRefresher()
	catalog.StartRefresher(refreshCtx, marketCfg.RefreshInterval, marketCfg.FetchTimeout)

	// Submission gateway: hard dependency on the orders store, soft
	// dependency on the operator chat.
	orderController := controller.NewOrderController(
		repository.NewOrderRepository(),
		connectors.NewTelegramNotifier(
			connectorsCfg.TelegramBotToken,
			connectorsCfg.TelegramChatID,
			connectorsCfg.TelegramBaseURL,
		),
	)

	// Router with middleware
	r := chi.NewRouter()

	// Public routes
	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.WithError(err).Error(" \"/health error")
		}
	})

	r.Get("/api/currencies", handler.CurrenciesHandler(catalog))
	r.Get("/api/convert", handler.ConvertHandler(catalog))
	r.Post("/api/orders", handler.CreateOrderHandler(orderController))
	r.Get("/api/orders/latest", handler.DefaultLatestOrdersHandler())
	r.Get("/ws/session", session.Handler(catalog, orderController))

	// Graceful server
	// Server setup
	addr := ":" + port
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// Start server in goroutine
	go func() {
		logger.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server crashed")
		}
	}()

	// Shutdown on SIGINT or SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Shutdown error")
	}
}
