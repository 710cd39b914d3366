package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/sevasetu/ngo-directory-service/internal/category"
	"github.com/sevasetu/ngo-directory-service/internal/db"
	"github.com/sevasetu/ngo-directory-service/internal/enrich"
	"github.com/sevasetu/ngo-directory-service/internal/ingest"
	"github.com/sevasetu/ngo-directory-service/internal/messaging"
	"github.com/sevasetu/ngo-directory-service/internal/ngo"
)

func main() {
	var (
		filePath = flag.String("file", "", "path to a JSON array of scraped records")
		source   = flag.String("source", "darpan", "provenance label stamped on imported records")
	)
	flag.Parse()

	if *filePath == "" {
		log.Fatal("usage: ingest -file <records.json> [-source <label>]")
	}

	data, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("failed to read %s: %v", *filePath, err)
	}

	var records []ingest.RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Fatalf("failed to parse %s: %v", *filePath, err)
	}
	log.Printf("Loaded %d records from %s", len(records), *filePath)

	ctx := context.Background()

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer database.Close()

	publisher, err := messaging.NewPublisher()
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, events will not be published: %v", err)
	}
	if publisher != nil {
		defer publisher.Close()
	}

	groq, err := enrich.NewGroqClient()
	if err != nil {
		log.Printf("Warning: Groq client initialization failed: %v", err)
	}
	var enrichClient enrich.Client
	if groq != nil {
		enrichClient = groq
	}

	categoryService := category.NewService(category.NewRepository(database))
	ngoService := ngo.NewService(
		ngo.NewRepository(database),
		categoryService,
		enrich.NewEngine(enrichClient, nil),
		publisher,
	)

	summary := ingest.NewIngestor(ngoService, *source).Run(ctx, records)
	if summary.Failed > 0 {
		os.Exit(1)
	}
}
