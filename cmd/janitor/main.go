package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/jose-valero/staff-tracker-bot/internal/app/service"
	"github.com/jose-valero/staff-tracker-bot/internal/infra/storage"
)

// Mantenimiento fuera de banda, idempotente: repara un next_reset ilegible,
// poda claves de config desconocidas y reporta contadores imposibles.
func handler(ctx context.Context) (string, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return "no DATABASE_URL", nil
	}

	days := 7
	if v := os.Getenv("RESET_INTERVAL_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}

	db, err := storage.Open(ctx, dsn)
	if err != nil {
		return fmt.Sprintf("open: %v", err), nil
	}
	defer db.Close()

	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cfgRepo := storage.NewConfigRepo(db)
	activity := storage.NewActivityRepo(db)

	// next_reset ilegible → se recalcula hacia adelante
	if raw := cfgRepo.Get(cctx, service.ConfigKeyNextReset, ""); raw != "" {
		if _, perr := time.Parse(time.RFC3339, raw); perr != nil {
			next := time.Now().UTC().Add(time.Duration(days) * 24 * time.Hour)
			if serr := cfgRepo.Set(cctx, service.ConfigKeyNextReset, next.Format(time.RFC3339)); serr != nil {
				return fmt.Sprintf("repair next_reset: %v", serr), nil
			}
			log.Printf("repaired next_reset %q -> %s", raw, next.Format(time.RFC3339))
		}
	}

	if n, err := cfgRepo.PruneExcept(cctx, []string{service.ConfigKeyNextReset}); err == nil && n > 0 {
		log.Printf("pruned %d unknown config keys", n)
	}

	if ids, err := activity.NegativeCounters(cctx); err == nil && len(ids) > 0 {
		recs, _ := activity.GetMany(cctx, ids)
		for _, rec := range recs {
			log.Printf("⚠️ negative counters user=%s messages=%d mod_actions=%d", rec.UserID, rec.Messages, rec.ModActions)
		}
	}

	return "ok", nil
}

func main() { lambda.Start(handler) }
