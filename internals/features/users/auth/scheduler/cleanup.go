package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	authRepo "trainingcenter_backend/internals/features/users/auth/repository"
)

// RunTokenCleanup deletes expired blacklist entries and dead refresh tokens once.
func RunTokenCleanup(ctx context.Context, db *gorm.DB) error {
	bl, rt, err := authRepo.CleanupExpired(ctx, db, time.Now().UTC())
	if err != nil {
		return err
	}
	log.Printf("[CLEANUP] removed %d blacklisted tokens, %d refresh tokens", bl, rt)
	return nil
}

// StartTokenCleanupCron schedules RunTokenCleanup; the caller stops the returned cron on shutdown.
func StartTokenCleanupCron(db *gorm.DB, spec string) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := RunTokenCleanup(ctx, db); err != nil {
			log.Printf("[CLEANUP ERROR] %v", err)
		}
	}); err != nil {
		return nil, err
	}
	c.Start()
	log.Printf("[INFO] token cleanup scheduled (%s)", spec)
	return c, nil
}
