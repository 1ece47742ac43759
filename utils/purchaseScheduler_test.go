package utils

import (
	"fmt"
	"testing"
	"time"

	"github.com/dibyajyoti0750/Ascend-LMS/database"
	"github.com/dibyajyoti0750/Ascend-LMS/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSweepDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}
	return db
}

func createPurchase(t *testing.T, db *gorm.DB, status string, age time.Duration) *models.Purchase {
	t.Helper()

	purchase := &models.Purchase{
		CourseID: 1,
		UserID:   "user_abc",
		Amount:   39.99,
		Gateway:  models.GatewayStripe,
		Status:   status,
	}
	require.NoError(t, db.Create(purchase).Error)

	if age > 0 {
		require.NoError(t, db.Model(purchase).
			UpdateColumn("created_at", time.Now().Add(-age)).Error)
	}
	return purchase
}

func TestFailStalePendingPurchases(t *testing.T) {
	db := setupSweepDB(t)

	stale := createPurchase(t, db, models.PurchaseStatusPending, 48*time.Hour)
	fresh := createPurchase(t, db, models.PurchaseStatusPending, time.Hour)
	done := createPurchase(t, db, models.PurchaseStatusCompleted, 48*time.Hour)

	FailStalePendingPurchases()

	statusOf := func(id uint) string {
		var p models.Purchase
		require.NoError(t, db.First(&p, id).Error)
		return p.Status
	}

	assert.Equal(t, models.PurchaseStatusFailed, statusOf(stale.ID))
	assert.Equal(t, models.PurchaseStatusPending, statusOf(fresh.ID))
	assert.Equal(t, models.PurchaseStatusCompleted, statusOf(done.ID))
}
