package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/miketud/realestateapp/internal/adapter/postgres"
	"github.com/miketud/realestateapp/internal/platform/logging"
)

func main() {
	var (
		databaseURL = flag.String("database", os.Getenv("DATABASE_URL"), "PostgreSQL URL (or set DATABASE_URL env)")
		status      = flag.Bool("status", false, "Print the schema version and exit without migrating")
		verbose     = flag.Bool("verbose", false, "Verbose logging")
		timeout     = flag.Duration("timeout", 2*time.Minute, "Overall timeout")
	)
	flag.Parse()

	if *databaseURL == "" {
		log.Fatal("Database URL required (--database or DATABASE_URL env)")
	}

	level := "info"
	if *verbose {
		level = "debug"
	}
	logging.InitLogger(level, "text")

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := postgres.Connect(ctx, *databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if *status {
		st, err := postgres.Status(ctx, pool)
		if err != nil {
			log.Fatalf("Failed to read schema version: %v", err)
		}
		fmt.Printf("schema version %d of %d", st.Current, st.Latest)
		if n := st.Pending(); n > 0 {
			fmt.Printf(" (%d pending)", n)
		}
		fmt.Println()
		return
	}

	start := time.Now()
	if err := postgres.RunMigrationsWithLock(ctx, pool); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	st, err := postgres.Status(ctx, pool)
	if err != nil {
		log.Fatalf("Failed to read schema version: %v", err)
	}
	slog.Info("Migration complete", "version", st.Current, "duration", time.Since(start))
}
