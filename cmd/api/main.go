package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/zhouzirui/treat-or-hell/backend/internal/config"
	"github.com/zhouzirui/treat-or-hell/backend/internal/handler"
	"github.com/zhouzirui/treat-or-hell/backend/internal/model/persona"
	"github.com/zhouzirui/treat-or-hell/backend/internal/model/questionnaire"
	"github.com/zhouzirui/treat-or-hell/backend/internal/service/ai"
	"github.com/zhouzirui/treat-or-hell/backend/internal/service/record"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	catalog := questionnaire.Seed()

	backend, err := record.OpenBackend(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("failed to open %s record backend: %v", cfg.Store.Driver, err)
	}
	records := record.NewStore(backend, catalog)
	defer func() {
		if err := records.Close(); err != nil {
			log.Printf("warning: failed to close record backend: %v", err)
		}
	}()
	log.Printf("behavior record backend: %s", cfg.Store.Driver)

	personaStore := persona.NewMemoryStore(persona.Seed())

	// Initialize AI service
	var aiService *ai.Service
	gateway, err := ai.NewGateway(ctx, cfg.AI)
	if err != nil {
		log.Printf("warning: failed to initialize chat gateway: %v", err)
		log.Println("continuing without chat functionality")
	} else {
		aiService = ai.NewService(gateway, records, catalog, cfg.AI.Timeout)
		log.Printf("chat provider %s initialized", gateway.Name())
	}

	router := handler.NewRouter(handler.Deps{
		Catalog:           catalog,
		Records:           records,
		Personas:          personaStore,
		AI:                aiService,
		QuestionnairePage: cfg.Web.QuestionnairePath,
	})

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("TreatOrHell backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Printf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
