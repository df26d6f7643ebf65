package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/config"
	"github.com/olawale190/Apinlero-MVP-sub000/internal/db"
	"github.com/olawale190/Apinlero-MVP-sub000/internal/importer"
)

func main() {
	var (
		filePath string
		tenantID string
	)
	flag.StringVar(&filePath, "file", "", "Path to catalog CSV (name,category,price,currency,aliases_en,aliases_yo)")
	flag.StringVar(&tenantID, "tenant", "", "Tenant id to import into")
	flag.Parse()

	if filePath == "" || tenantID == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, importer.NewPGWriter(pool), tenantID)

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Imported %d products for tenant %s in %s\n", count, tenantID, time.Since(start).Truncate(time.Millisecond))
}
