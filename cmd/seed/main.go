package main

import (
	"context"
	"log"
	"os"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/config"
	"github.com/olawale190/Apinlero-MVP-sub000/internal/db"
	"github.com/olawale190/Apinlero-MVP-sub000/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	tenantID, err := seed.Apply(ctx, pool)
	if err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Printf("seed applied, demo tenant id=%s", tenantID)
}
