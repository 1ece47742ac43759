package paymentController

import (
	"fmt"
	"log"
	"time"

	"github.com/dibyajyoti0750/Ascend-LMS/config"
	"github.com/dibyajyoti0750/Ascend-LMS/database"
	"github.com/dibyajyoti0750/Ascend-LMS/middleware"
	"github.com/dibyajyoti0750/Ascend-LMS/models"
	courseModels "github.com/dibyajyoti0750/Ascend-LMS/models/course"
	"github.com/dibyajyoti0750/Ascend-LMS/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"
)

// beginPurchase runs the shared checkout preconditions: course exists
// and is published, no completed purchase for this (user, course) pair
// already exists, and the refund policy was accepted. It returns the
// course and the pending purchase skeleton.
func beginPurchase(c *fiber.Ctx, gateway string) (*courseModels.Course, *models.Purchase, error) {
	userID := c.Locals("userId").(string)
	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedPurchase").(*struct {
		CourseID             uint `json:"courseId"`
		AgreedToRefundPolicy bool `json:"agreedToRefundPolicy"`
	})
	if !ok {
		return nil, nil, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var courseData courseModels.Course
	if err := db.Where("id = ? AND is_published = ?", reqData.CourseID, true).First(&courseData).Error; err != nil {
		return nil, nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// One paid enrollment per (user, course).
	var existing models.Purchase
	if err := db.Where("user_id = ? AND course_id = ? AND status = ?",
		userID, courseData.ID, models.PurchaseStatusCompleted).First(&existing).Error; err == nil {
		return nil, nil, middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already purchased this course!", nil)
	}

	purchase := &models.Purchase{
		CourseID:               courseData.ID,
		UserID:                 userID,
		Amount:                 courseData.DiscountedPrice(),
		Gateway:                gateway,
		Status:                 models.PurchaseStatusPending,
		AgreedToRefundPolicy:   true,
		RefundPolicyAcceptedAt: time.Now(),
	}

	return &courseData, purchase, nil
}

// PurchaseCourseStripe creates a pending purchase and opens a Stripe
// Checkout session. The purchase id rides in the session metadata so
// the webhook can resolve it.
func PurchaseCourseStripe(c *fiber.Ctx) error {
	courseData, purchase, earlyResp := beginPurchase(c, models.GatewayStripe)
	if courseData == nil {
		return earlyResp
	}

	db := database.Database.Db
	if err := db.Create(purchase).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create purchase!", nil)
	}

	origin := c.Get("Origin")
	if origin == "" {
		origin = "http://localhost:5173"
	}

	stripe.Key = config.AppConfig.StripeSecretKey

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(origin + "/loading/my-enrollments"),
		CancelURL:  stripe.String(origin + "/"),
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String("usd"),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(courseData.Title),
					},
					UnitAmount: stripe.Int64(minorUnits(purchase.Amount)),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.AddMetadata("purchaseId", fmt.Sprint(purchase.ID))

	s, err := session.New(params)
	if err != nil {
		log.Printf("Failed to create stripe session for purchase %d: %v", purchase.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create checkout session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout session created!", fiber.Map{
		"session_url": s.URL,
	})
}

// PurchaseCourseRazorpay creates a pending purchase and a Razorpay
// order. Prices are stored in USD; the charged amount is converted to
// INR at the current rate and returned in paise for client-side
// checkout.
func PurchaseCourseRazorpay(c *fiber.Ctx) error {
	_, purchase, earlyResp := beginPurchase(c, models.GatewayRazorpay)
	if purchase == nil {
		return earlyResp
	}

	rate := utils.GetUSDToINRRate()
	purchase.ExchangeRate = rate
	purchase.INRAmount = round2(purchase.Amount * rate)

	db := database.Database.Db
	if err := db.Create(purchase).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create purchase!", nil)
	}

	receipt := "rcpt_" + uuid.NewString()
	order, err := utils.CreateRazorpayOrder(minorUnits(purchase.INRAmount), receipt, map[string]string{
		"purchaseId": fmt.Sprint(purchase.ID),
	})
	if err != nil {
		log.Printf("Failed to create razorpay order for purchase %d: %v", purchase.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create payment order!", nil)
	}

	purchase.OrderID = order.ID
	if err := db.Save(purchase).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save purchase!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment order created!", fiber.Map{
		"orderId":    order.ID,
		"amount":     order.Amount,
		"currency":   order.Currency,
		"key":        config.AppConfig.RazorpayKeyID,
		"purchaseId": purchase.ID,
	})
}
