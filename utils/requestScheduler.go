package utils

import (
	"log"
	"time"

	"lms/config"
	"lms/database"
	"lms/models"

	"github.com/robfig/cron/v3"
)

// InitializeRequestScheduler sets up the enrollment request expiry scheduler
func InitializeRequestScheduler() *cron.Cron {
	log.Println("[REQUEST-SCHEDULER] Initializing enrollment request scheduler...")

	c := cron.New()

	// Run daily at 6 AM to expire stale pending requests
	c.AddFunc("0 6 * * *", func() {
		log.Println("[REQUEST-SCHEDULER] Running daily stale request check...")
		ExpireStaleRequests()
	})

	c.Start()
	log.Println("[REQUEST-SCHEDULER] Scheduler started - runs daily at 6 AM")
	return c
}

// ExpireStaleRequests marks pending enrollment requests older than the
// configured window as expired. Manual payment verification goes stale when
// nobody follows up; expiring keeps the admin queue honest.
func ExpireStaleRequests() {
	db := database.Database.Db
	cutoff := time.Now().AddDate(0, 0, -config.AppConfig.RequestExpiryDays)

	result := db.Model(&models.EnrollmentRequest{}).
		Where("status = ? AND is_deleted = ? AND created_at < ?", models.RequestPending, false, cutoff).
		Update("status", models.RequestExpired)

	if result.Error != nil {
		log.Printf("[REQUEST-SCHEDULER] Error expiring stale requests: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[REQUEST-SCHEDULER] Expired %d stale enrollment requests", result.RowsAffected)
	}
}
