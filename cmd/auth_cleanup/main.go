package main

import (
	"context"
	"log"
	"os"
	"time"

	"canbrs/internal/database"
	"canbrs/internal/repository"
)

const unusedKeyRetention = 30 * 24 * time.Hour

// Periodic maintenance: blank expired password-reset tokens and purge
// registration keys that were never redeemed. Meant to run from cron.
func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	ctx := context.Background()

	adminRepo := repository.NewAdminRepository(db)
	residentRepo := repository.NewResidentRepository(db)
	regKeyRepo := repository.NewRegKeyRepository(db)

	adminTokens, err := adminRepo.ClearExpiredResetTokens(ctx)
	if err != nil {
		log.Fatalf("cleanup admin reset tokens failed: %v", err)
	}

	residentTokens, err := residentRepo.ClearExpiredResetTokens(ctx)
	if err != nil {
		log.Fatalf("cleanup resident reset tokens failed: %v", err)
	}

	staleKeys, err := regKeyRepo.DeleteUnusedOlderThan(ctx, time.Now().Add(-unusedKeyRetention))
	if err != nil {
		log.Fatalf("cleanup registration keys failed: %v", err)
	}

	log.Printf("auth cleanup completed: admin_tokens=%d resident_tokens=%d registration_keys=%d",
		adminTokens, residentTokens, staleKeys)
}
