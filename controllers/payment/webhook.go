package paymentController

import (
	"encoding/json"
	"errors"
	"log"
	"strconv"

	"github.com/dibyajyoti0750/Ascend-LMS/config"
	"github.com/dibyajyoti0750/Ascend-LMS/database"
	"github.com/dibyajyoti0750/Ascend-LMS/middleware"
	"github.com/dibyajyoti0750/Ascend-LMS/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"
)

// StripeWebhook handles Stripe's payment lifecycle events. There is no
// user auth here; authenticity comes from the stripe-signature header.
// A non-2xx response makes Stripe redeliver, which is safe because
// FinalizePurchase is idempotent.
func StripeWebhook(c *fiber.Ctx) error {
	event, err := webhook.ConstructEvent(c.Body(), c.Get("stripe-signature"), config.AppConfig.StripeWebhookSecret)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Webhook signature verification failed!", nil)
	}

	db := database.Database.Db

	switch event.Type {
	case "checkout.session.completed":
		purchaseID, err := sessionPurchaseID(event)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		}
		sess, _ := eventSession(event)
		paymentIntent := ""
		if sess != nil && sess.PaymentIntent != nil {
			paymentIntent = sess.PaymentIntent.ID
		}
		sessionID := ""
		if sess != nil {
			sessionID = sess.ID
		}
		if err := FinalizePurchase(db, purchaseID, sessionID, paymentIntent); err != nil {
			log.Printf("Stripe webhook: failed to finalize purchase %d: %v", purchaseID, err)
			return webhookError(c, err)
		}

	case "checkout.session.async_payment_failed", "checkout.session.expired":
		purchaseID, err := sessionPurchaseID(event)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		}
		if err := FailPurchase(db, purchaseID); err != nil {
			log.Printf("Stripe webhook: failed to fail purchase %d: %v", purchaseID, err)
			return webhookError(c, err)
		}

	default:
		// Acknowledge events we don't act on so Stripe stops resending.
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Received", nil)
}

// VerifyRazorpayPayment finalizes a Razorpay purchase from the
// client-side checkout callback. The signature is recomputed
// server-side; a mismatch fails the purchase and the request.
func VerifyRazorpayPayment(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedVerify").(*struct {
		RazorpayOrderID   string `json:"razorpay_order_id"`
		RazorpayPaymentID string `json:"razorpay_payment_id"`
		RazorpaySignature string `json:"razorpay_signature"`
		PurchaseID        uint   `json:"purchaseId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if !utils.VerifyRazorpaySignature(reqData.RazorpayOrderID, reqData.RazorpayPaymentID,
		reqData.RazorpaySignature, config.AppConfig.RazorpayKeySecret) {
		if err := FailPurchase(db, reqData.PurchaseID); err != nil && !errors.Is(err, ErrPurchaseNotFound) {
			log.Printf("Failed to mark purchase %d failed: %v", reqData.PurchaseID, err)
		}
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid signature", nil)
	}

	if err := FinalizePurchase(db, reqData.PurchaseID, reqData.RazorpayOrderID, reqData.RazorpayPaymentID); err != nil {
		return webhookError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment verified!", fiber.Map{
		"success": true,
	})
}

// webhookError maps reconciliation errors onto the response taxonomy.
func webhookError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrPurchaseNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrCourseNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, err.Error(), nil)
	default:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process payment!", nil)
	}
}

func eventSession(event stripe.Event) (*stripe.CheckoutSession, error) {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func sessionPurchaseID(event stripe.Event) (uint, error) {
	sess, err := eventSession(event)
	if err != nil {
		return 0, errors.New("malformed event payload")
	}
	raw, ok := sess.Metadata["purchaseId"]
	if !ok || raw == "" {
		return 0, errors.New("missing purchaseId metadata")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.New("malformed purchaseId metadata")
	}
	return uint(id), nil
}
