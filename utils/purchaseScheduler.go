package utils

import (
	"log"
	"time"

	"github.com/dibyajyoti0750/Ascend-LMS/database"
	"github.com/dibyajyoti0750/Ascend-LMS/models"

	"github.com/robfig/cron/v3"
)

// stalePendingAge is how long a purchase may sit in pending before the
// sweep fails it. Gateways that never deliver a webhook (abandoned
// checkout pages) are cleaned up here.
const stalePendingAge = 24 * time.Hour

// InitializePurchaseScheduler sets up the stale purchase sweep
func InitializePurchaseScheduler() {
	log.Println("[PURCHASE-SWEEP] Initializing purchase scheduler...")

	c := cron.New()

	// Run daily at 9 AM to fail stale pending purchases
	c.AddFunc("0 9 * * *", func() {
		log.Println("[PURCHASE-SWEEP] Running daily stale purchase check...")
		FailStalePendingPurchases()
	})

	c.Start()
	log.Println("[PURCHASE-SWEEP] Purchase scheduler started - runs daily at 9 AM")
}

// FailStalePendingPurchases marks purchases stuck in pending for more
// than stalePendingAge as failed. The conditional status write keeps
// this safe against a webhook landing at the same moment.
func FailStalePendingPurchases() {
	db := database.Database.Db
	cutoff := time.Now().Add(-stalePendingAge)

	result := db.Model(&models.Purchase{}).
		Where("status = ? AND created_at < ?", models.PurchaseStatusPending, cutoff).
		Update("status", models.PurchaseStatusFailed)

	if result.Error != nil {
		log.Printf("[PURCHASE-SWEEP] Sweep failed: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[PURCHASE-SWEEP] Failed %d stale pending purchase(s)", result.RowsAffected)
	}
}
