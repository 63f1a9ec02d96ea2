package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Muhsin-Gun/mobile-app/internal/ai"
	"github.com/Muhsin-Gun/mobile-app/internal/config"
	"github.com/Muhsin-Gun/mobile-app/internal/httpapi"
	"github.com/Muhsin-Gun/mobile-app/internal/mpesa"
	"github.com/Muhsin-Gun/mobile-app/internal/store"
	"github.com/Muhsin-Gun/mobile-app/internal/store/memory"
	"github.com/Muhsin-Gun/mobile-app/internal/store/postgres"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf(".env not found, reading from environment")
	}

	cfg := config.Load()
	rootCtx, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()

	var st store.Store
	var closer func()

	if cfg.DatabaseURL != "" {
		pg, err := postgres.NewStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to init postgres store: %v", err)
		}
		st = pg
		closer = pg.Close
		log.Printf("using postgres store")
	} else {
		st = memory.NewStore()
		log.Printf("using memory store")
	}

	if closer != nil {
		defer closer()
	}

	if cfg.ConversationRetentionDays > 0 {
		if purger, ok := st.(interface {
			PurgeConversationsBefore(ctx context.Context, before time.Time) (int, error)
		}); ok {
			go runConversationRetentionLoop(rootCtx, purger, cfg.ConversationRetentionDays)
		}
	}

	payments := mpesa.NewClient(mpesa.Config{
		BaseURL:        cfg.MpesaBaseURL(),
		ConsumerKey:    cfg.MpesaConsumerKey,
		ConsumerSecret: cfg.MpesaConsumerSecret,
		Shortcode:      cfg.MpesaShortcode,
		Passkey:        cfg.MpesaPasskey,
	})

	relay := ai.NewClient(ai.Config{
		BaseURL: cfg.OpenAIBaseURL,
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
	})

	srv := httpapi.NewServer(cfg, st, payments, relay)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("CrypTex server listening on %s (mpesa env: %s)", cfg.ListenAddr(), cfg.MpesaEnv)
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Printf("shutdown requested")
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	cancelRoot()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	_ = httpServer.Shutdown(ctxShutdown)
}

func runConversationRetentionLoop(
	ctx context.Context,
	purger interface {
		PurgeConversationsBefore(ctx context.Context, before time.Time) (int, error)
	},
	retentionDays int,
) {
	retention := time.Duration(retentionDays) * 24 * time.Hour

	runOnce := func() {
		before := time.Now().UTC().Add(-retention)
		ctxPurge, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		n, err := purger.PurgeConversationsBefore(ctxPurge, before)
		if err != nil {
			log.Printf("conversation retention purge failed: %v", err)
			return
		}
		if n > 0 {
			log.Printf("retention purged %d conversations (< %s)", n, before.Format(time.RFC3339))
		}
	}

	runOnce()

	t := time.NewTicker(24 * time.Hour)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			runOnce()
		}
	}
}
