// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"oxa/internal/config"
	httptransport "oxa/internal/http"
	"oxa/internal/infra"
	"oxa/internal/modules/catalog"
	"oxa/internal/modules/order"
	"oxa/internal/session"
	"oxa/internal/store"
	"oxa/internal/upload"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Firebase.ProjectID == "" {
		log.Fatal("OXA_FIREBASE_PROJECT_ID is required")
	}
	fsClient, err := infra.NewFirestore(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		log.Fatalf("firebase init: %v", err)
	}
	defer fsClient.Close()

	docStore := store.New(fsClient,
		store.WithOpTimeout(cfg.Store.OpTimeout),
		store.WithLogger(logger),
	)

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	sessions := session.NewManager(redisClient, cfg.Session.TTL)

	var events order.EventSink
	if cfg.Events.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.Events.DSN)
		if err != nil {
			log.Fatalf("event log init: %v", err)
		}
		defer dbPool.Close()
		events = order.NewEventLog(dbPool)
	}

	orderSvc := order.NewService(docStore, events, logger)
	catalogSvc := catalog.NewService(docStore)

	deps := httptransport.ServerDeps{
		Orders:   orderSvc,
		Catalog:  catalogSvc,
		Watcher:  docStore,
		Stats:    docStore,
		Sessions: sessions,
		Log:      logger,
	}
	if cfg.Imgur.ClientID != "" {
		deps.Uploader = upload.NewClient(cfg.Imgur.ClientID)
	}

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: httptransport.NewServer(deps).Routes()}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	logger.Info("listening", "addr", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
