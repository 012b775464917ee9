package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"triage/internal/classify"
	"triage/internal/config"
	"triage/internal/openai"
	"triage/internal/processor"
	"triage/internal/store"
)

func main() {
	// Parse command line flags
	csvPath := flag.String("csv", "", "Path to CSV file with support emails (sender, subject, body, sent_date)")
	flag.Parse()

	if *csvPath == "" {
		fmt.Println("Usage:")
		fmt.Println("  Import CSV:  import-emails -csv /path/to/emails.csv")
		os.Exit(1)
	}

	// Load configuration
	cfg := config.Load()
	logger := cfg.SetupLogger()

	aiClient, err := openai.NewClient(cfg)
	if err != nil {
		fmt.Println("No OpenAI key configured, classification will use fallback analysis")
	}

	analyzer := classify.NewAnalyzer(aiClient, logger)
	proc := processor.New(analyzer, logger)
	st := store.New(proc, logger)

	fmt.Printf("Parsing CSV from: %s\n", *csvPath)
	raws, err := store.LoadSampleCSV(*csvPath)
	if err != nil {
		log.Fatalf("Failed to parse CSV: %v", err)
	}
	fmt.Printf("Successfully parsed %d emails\n", len(raws))

	fmt.Println("Processing emails through the classification pipeline...")
	stored, failed := st.ProcessBulk(context.Background(), raws)

	analytics := st.Analytics()

	fmt.Println("\n✓ Email import complete!")
	fmt.Printf("  - Parsed: %d emails\n", len(raws))
	fmt.Printf("  - Stored: %d emails (%d errors)\n", stored, failed)
	fmt.Printf("  - Support-relevant: %d (urgent: %d)\n", analytics.TotalEmails, analytics.UrgentEmails)
}
