package paymentController

import (
	"fmt"
	"testing"

	"github.com/dibyajyoti0750/Ascend-LMS/config"
	"github.com/dibyajyoti0750/Ascend-LMS/database"
	"github.com/dibyajyoti0750/Ascend-LMS/models"
	courseModels "github.com/dibyajyoti0750/Ascend-LMS/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:              "test-secret",
		RazorpayKeySecret:   "rzp_test_secret",
		StripeWebhookSecret: "whsec_stripe_test",
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}
	return db
}

func seedPurchase(t *testing.T, db *gorm.DB) (*models.User, *courseModels.Course, *models.Purchase) {
	t.Helper()

	user := &models.User{ID: "user_abc", Name: "Test Student", Email: "student@example.com"}
	require.NoError(t, db.Create(user).Error)

	courseData := &courseModels.Course{
		Title:       "Go From Scratch",
		Description: "A course",
		Price:       49.99,
		Discount:    20,
		IsPublished: true,
		EducatorID:  "edu_xyz",
	}
	require.NoError(t, db.Create(courseData).Error)

	purchase := &models.Purchase{
		CourseID: courseData.ID,
		UserID:   user.ID,
		Amount:   courseData.DiscountedPrice(),
		Gateway:  models.GatewayRazorpay,
		Status:   models.PurchaseStatusPending,
	}
	require.NoError(t, db.Create(purchase).Error)

	return user, courseData, purchase
}

func enrollmentCount(t *testing.T, db *gorm.DB, userID string, courseID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error)
	return count
}

func TestFinalizePurchaseEnrollsOnce(t *testing.T) {
	db := setupTestDB(t)
	user, courseData, purchase := seedPurchase(t, db)

	require.NoError(t, FinalizePurchase(db, purchase.ID, "order_1", "pay_1"))

	var updated models.Purchase
	require.NoError(t, db.First(&updated, purchase.ID).Error)
	assert.Equal(t, models.PurchaseStatusCompleted, updated.Status)
	assert.Equal(t, "order_1", updated.OrderID)
	assert.Equal(t, "pay_1", updated.PaymentID)
	assert.NotNil(t, updated.PaidAt)

	assert.EqualValues(t, 1, enrollmentCount(t, db, user.ID, courseData.ID))
}

func TestFinalizePurchaseIdempotent(t *testing.T) {
	db := setupTestDB(t)
	user, courseData, purchase := seedPurchase(t, db)

	// Webhooks are at-least-once; a duplicate delivery must not add a
	// second enrollment or flip the status.
	require.NoError(t, FinalizePurchase(db, purchase.ID, "order_1", "pay_1"))
	require.NoError(t, FinalizePurchase(db, purchase.ID, "order_1", "pay_1"))

	var updated models.Purchase
	require.NoError(t, db.First(&updated, purchase.ID).Error)
	assert.Equal(t, models.PurchaseStatusCompleted, updated.Status)

	assert.EqualValues(t, 1, enrollmentCount(t, db, user.ID, courseData.ID))
}

func TestFinalizePurchaseUnknownRecords(t *testing.T) {
	db := setupTestDB(t)

	err := FinalizePurchase(db, 9999, "order_1", "pay_1")
	assert.ErrorIs(t, err, ErrPurchaseNotFound)

	// Purchase referencing a user that was never synced.
	courseData := &courseModels.Course{Title: "Orphan", Description: "x", Price: 10, EducatorID: "edu"}
	require.NoError(t, db.Create(courseData).Error)
	purchase := &models.Purchase{CourseID: courseData.ID, UserID: "ghost", Amount: 10, Gateway: models.GatewayStripe}
	require.NoError(t, db.Create(purchase).Error)

	err = FinalizePurchase(db, purchase.ID, "order_2", "pay_2")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFailPurchaseNeverEnrolls(t *testing.T) {
	db := setupTestDB(t)
	user, courseData, purchase := seedPurchase(t, db)

	// Deliver the failure signal more than once.
	require.NoError(t, FailPurchase(db, purchase.ID))
	require.NoError(t, FailPurchase(db, purchase.ID))

	var updated models.Purchase
	require.NoError(t, db.First(&updated, purchase.ID).Error)
	assert.Equal(t, models.PurchaseStatusFailed, updated.Status)

	assert.EqualValues(t, 0, enrollmentCount(t, db, user.ID, courseData.ID))
}

func TestFailPurchaseKeepsCompletedTerminal(t *testing.T) {
	db := setupTestDB(t)
	_, _, purchase := seedPurchase(t, db)

	require.NoError(t, FinalizePurchase(db, purchase.ID, "order_1", "pay_1"))
	require.NoError(t, FailPurchase(db, purchase.ID))

	var updated models.Purchase
	require.NoError(t, db.First(&updated, purchase.ID).Error)
	assert.Equal(t, models.PurchaseStatusCompleted, updated.Status)
}

func TestFailPurchaseUnknownPurchase(t *testing.T) {
	db := setupTestDB(t)
	assert.ErrorIs(t, FailPurchase(db, 4242), ErrPurchaseNotFound)
}

func TestMinorUnits(t *testing.T) {
	assert.EqualValues(t, 3999, minorUnits(39.99))
	assert.EqualValues(t, 8000, minorUnits(80))
	assert.EqualValues(t, 0, minorUnits(0))
	assert.EqualValues(t, 1339, minorUnits(13.39))
}
