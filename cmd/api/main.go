package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sevasetu/ngo-directory-service/internal/auth"
	"github.com/sevasetu/ngo-directory-service/internal/db"
	"github.com/sevasetu/ngo-directory-service/internal/enrich"
	internalhttp "github.com/sevasetu/ngo-directory-service/internal/http"
	"github.com/sevasetu/ngo-directory-service/internal/messaging"
	"github.com/sevasetu/ngo-directory-service/internal/telemetry"
)

func main() {
	ctx := context.Background()

	// Initialize OpenTelemetry. The service runs fine without a collector.
	otelCfg := telemetry.LoadConfig()
	provider, err := telemetry.InitProvider(ctx, otelCfg)
	if err != nil {
		log.Printf("Warning: OpenTelemetry initialization failed: %v", err)
	}
	if provider != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			provider.Shutdown(shutdownCtx)
		}()
	}

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		log.Printf("Warning: metrics initialization failed: %v", err)
		metrics = nil
	}

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer database.Close()

	verifier, err := auth.NewVerifierFromEnv()
	if err != nil {
		log.Fatalf("failed to initialize token verifier: %v", err)
	}

	permissionsPath := os.Getenv("PERMISSIONS_FILE")
	if permissionsPath == "" {
		permissionsPath = "permissions.yml"
	}
	perms, err := auth.LoadPermissions(permissionsPath)
	if err != nil {
		log.Fatalf("failed to load permissions: %v", err)
	}

	// Event publishing is best effort; the API serves without a broker.
	publisher, err := messaging.NewPublisher()
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, events will not be published: %v", err)
	}
	if publisher != nil {
		defer publisher.Close()
	}

	// Text enrichment is optional; without GROQ_API_KEY the deterministic
	// fallback applies.
	groq, err := enrich.NewGroqClient()
	if err != nil {
		log.Printf("Warning: Groq client initialization failed: %v", err)
	}
	var enrichClient enrich.Client
	if groq != nil {
		enrichClient = groq
	} else {
		log.Println("Text enrichment backend disabled")
	}

	router := internalhttp.SetupRouter(database, verifier, perms, publisher, enrichClient, metrics)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      internalhttp.CORSMiddleware(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("ngo-directory-service listening on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("✓ Server stopped")
}
