package paymentController

import (
	"errors"
	"log"
	"math"
	"time"

	"github.com/dibyajyoti0750/Ascend-LMS/models"
	courseModels "github.com/dibyajyoti0750/Ascend-LMS/models/course"
	"github.com/dibyajyoti0750/Ascend-LMS/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPurchaseNotFound = errors.New("purchase not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrCourseNotFound   = errors.New("course not found")
)

// FinalizePurchase grants course access for a confirmed payment and
// marks the purchase completed. Both gateways funnel through here, so
// the idempotency rule is enforced identically regardless of which one
// delivered the confirmation.
//
// Webhooks are delivered at least once; a purchase that is already
// completed is a success and performs no further writes. The enrollment
// insert uses ON CONFLICT DO NOTHING and the status write only fires on
// a purchase still pending, so duplicate or concurrent deliveries apply
// the enrollment effect at most once.
func FinalizePurchase(db *gorm.DB, purchaseID uint, orderID, paymentID string) error {
	var purchase models.Purchase
	if err := db.Where("id = ?", purchaseID).First(&purchase).Error; err != nil {
		return ErrPurchaseNotFound
	}

	var user models.User
	if err := db.Where("id = ?", purchase.UserID).First(&user).Error; err != nil {
		return ErrUserNotFound
	}

	var courseData courseModels.Course
	if err := db.Where("id = ?", purchase.CourseID).First(&courseData).Error; err != nil {
		return ErrCourseNotFound
	}

	// Duplicate delivery: already reconciled, nothing to do.
	if purchase.Status == models.PurchaseStatusCompleted {
		return nil
	}

	// Enroll student. The composite unique index makes this a
	// set-membership add, so re-applying it is harmless.
	enrollment := courseModels.Enrollment{
		UserID:   user.ID,
		CourseID: courseData.ID,
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&enrollment).Error; err != nil {
		return err
	}

	// Complete the purchase unless another delivery already did.
	// Completed is terminal; a purchase failed by an earlier bad
	// signature can still be completed by a later valid confirmation.
	now := time.Now()
	result := db.Model(&models.Purchase{}).
		Where("id = ? AND status <> ?", purchase.ID, models.PurchaseStatusCompleted).
		Updates(map[string]interface{}{
			"status":     models.PurchaseStatusCompleted,
			"order_id":   orderID,
			"payment_id": paymentID,
			"paid_at":    now,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		log.Printf("Purchase %d completed via %s for user %s", purchase.ID, purchase.Gateway, user.ID)
		if err := utils.SendEnrollmentEmail(user.Email, user.Name, courseData.Title); err != nil {
			log.Printf("Failed to send enrollment email for purchase %d: %v", purchase.ID, err)
		}
	}

	return nil
}

// FailPurchase records a failed payment. Completed is terminal, so a
// late failure signal for an already reconciled purchase is ignored.
// Enrollment is never touched on the failure path.
func FailPurchase(db *gorm.DB, purchaseID uint) error {
	result := db.Model(&models.Purchase{}).
		Where("id = ? AND status <> ?", purchaseID, models.PurchaseStatusCompleted).
		Update("status", models.PurchaseStatusFailed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either the purchase does not exist or it already completed.
		var count int64
		db.Model(&models.Purchase{}).Where("id = ?", purchaseID).Count(&count)
		if count == 0 {
			return ErrPurchaseNotFound
		}
	}
	return nil
}

// minorUnits converts a two-decimal amount to the gateway's minor unit
// (cents or paise). Half-up rounding, same rule for both gateways, so
// the charged amount always matches the recorded one.
func minorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
