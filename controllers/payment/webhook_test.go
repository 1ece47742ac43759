package paymentController

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dibyajyoti0750/Ascend-LMS/config"
	"github.com/dibyajyoti0750/Ascend-LMS/models"
	userValidator "github.com/dibyajyoti0750/Ascend-LMS/validators/user"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v74/webhook"
)

func newWebhookTestApp() *fiber.App {
	app := fiber.New()
	app.Post("/stripe", StripeWebhook)
	app.Post("/api/user/verify-rzp", userValidator.VerifyRazorpay(), VerifyRazorpayPayment)
	return app
}

func signRazorpay(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func verifyBody(t *testing.T, purchaseID uint, orderID, paymentID, signature string) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
		"razorpay_signature":  signature,
		"purchaseId":          purchaseID,
	})
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func TestVerifyRazorpayValidSignatureEnrolls(t *testing.T) {
	db := setupTestDB(t)
	user, courseData, purchase := seedPurchase(t, db)
	app := newWebhookTestApp()

	sig := signRazorpay("order_rzp1", "pay_rzp1", config.AppConfig.RazorpayKeySecret)
	req := httptest.NewRequest("POST", "/api/user/verify-rzp",
		verifyBody(t, purchase.ID, "order_rzp1", "pay_rzp1", sig))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.Purchase
	require.NoError(t, db.First(&updated, purchase.ID).Error)
	assert.Equal(t, models.PurchaseStatusCompleted, updated.Status)
	assert.Equal(t, "pay_rzp1", updated.PaymentID)
	assert.EqualValues(t, 1, enrollmentCount(t, db, user.ID, courseData.ID))
}

func TestVerifyRazorpayInvalidSignatureFailsPurchase(t *testing.T) {
	db := setupTestDB(t)
	user, courseData, purchase := seedPurchase(t, db)
	app := newWebhookTestApp()

	wrongSignatures := []string{
		"deadbeef",
		signRazorpay("order_rzp1", "pay_rzp1", "some-other-secret"),
		signRazorpay("order_other", "pay_rzp1", config.AppConfig.RazorpayKeySecret),
	}

	for _, sig := range wrongSignatures {
		req := httptest.NewRequest("POST", "/api/user/verify-rzp",
			verifyBody(t, purchase.ID, "order_rzp1", "pay_rzp1", sig))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	}

	var updated models.Purchase
	require.NoError(t, db.First(&updated, purchase.ID).Error)
	assert.Equal(t, models.PurchaseStatusFailed, updated.Status)
	assert.EqualValues(t, 0, enrollmentCount(t, db, user.ID, courseData.ID))
}

func TestVerifyRazorpayRecoversAfterBadSignature(t *testing.T) {
	db := setupTestDB(t)
	user, courseData, purchase := seedPurchase(t, db)
	app := newWebhookTestApp()

	// A bad callback fails the purchase first.
	req := httptest.NewRequest("POST", "/api/user/verify-rzp",
		verifyBody(t, purchase.ID, "order_rzp1", "pay_rzp1", "bogus"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// The real callback still completes it.
	sig := signRazorpay("order_rzp1", "pay_rzp1", config.AppConfig.RazorpayKeySecret)
	req = httptest.NewRequest("POST", "/api/user/verify-rzp",
		verifyBody(t, purchase.ID, "order_rzp1", "pay_rzp1", sig))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.Purchase
	require.NoError(t, db.First(&updated, purchase.ID).Error)
	assert.Equal(t, models.PurchaseStatusCompleted, updated.Status)
	assert.EqualValues(t, 1, enrollmentCount(t, db, user.ID, courseData.ID))
}

func stripeEventPayload(t *testing.T, eventType string, purchaseID uint) []byte {
	t.Helper()
	payload, err := json.Marshal(map[string]interface{}{
		"id":          "evt_test",
		"object":      "event",
		"api_version": "2022-11-15",
		"type":        eventType,
		"data": map[string]interface{}{
			"object": map[string]interface{}{
				"id":             "cs_test_123",
				"object":         "checkout.session",
				"payment_intent": "pi_test_123",
				"metadata": map[string]string{
					"purchaseId": fmt.Sprint(purchaseID),
				},
			},
		},
	})
	require.NoError(t, err)
	return payload
}

func stripeSignatureHeader(payload []byte, secret string) string {
	now := time.Now()
	sig := webhook.ComputeSignature(now, payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", now.Unix(), hex.EncodeToString(sig))
}

func postStripeEvent(t *testing.T, app *fiber.App, payload []byte, header string) int {
	t.Helper()
	req := httptest.NewRequest("POST", "/stripe", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("stripe-signature", header)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestStripeWebhookCompletedEnrollsIdempotently(t *testing.T) {
	db := setupTestDB(t)
	user, courseData, purchase := seedPurchase(t, db)
	app := newWebhookTestApp()

	payload := stripeEventPayload(t, "checkout.session.completed", purchase.ID)
	secret := config.AppConfig.StripeWebhookSecret

	// Deliver twice, as Stripe may.
	assert.Equal(t, fiber.StatusOK, postStripeEvent(t, app, payload, stripeSignatureHeader(payload, secret)))
	assert.Equal(t, fiber.StatusOK, postStripeEvent(t, app, payload, stripeSignatureHeader(payload, secret)))

	var updated models.Purchase
	require.NoError(t, db.First(&updated, purchase.ID).Error)
	assert.Equal(t, models.PurchaseStatusCompleted, updated.Status)
	assert.Equal(t, "pi_test_123", updated.PaymentID)
	assert.EqualValues(t, 1, enrollmentCount(t, db, user.ID, courseData.ID))
}

func TestStripeWebhookFailureEventsNeverEnroll(t *testing.T) {
	db := setupTestDB(t)
	user, courseData, purchase := seedPurchase(t, db)
	app := newWebhookTestApp()

	secret := config.AppConfig.StripeWebhookSecret
	for _, eventType := range []string{"checkout.session.async_payment_failed", "checkout.session.expired"} {
		payload := stripeEventPayload(t, eventType, purchase.ID)
		assert.Equal(t, fiber.StatusOK, postStripeEvent(t, app, payload, stripeSignatureHeader(payload, secret)))
	}

	var updated models.Purchase
	require.NoError(t, db.First(&updated, purchase.ID).Error)
	assert.Equal(t, models.PurchaseStatusFailed, updated.Status)
	assert.EqualValues(t, 0, enrollmentCount(t, db, user.ID, courseData.ID))
}

func TestStripeWebhookRejectsBadSignature(t *testing.T) {
	db := setupTestDB(t)
	_, _, purchase := seedPurchase(t, db)
	app := newWebhookTestApp()

	payload := stripeEventPayload(t, "checkout.session.completed", purchase.ID)
	status := postStripeEvent(t, app, payload, stripeSignatureHeader(payload, "whsec_wrong"))
	assert.Equal(t, fiber.StatusBadRequest, status)

	var updated models.Purchase
	require.NoError(t, db.First(&updated, purchase.ID).Error)
	assert.Equal(t, models.PurchaseStatusPending, updated.Status)
}

func TestStripeWebhookIgnoresUnknownEvents(t *testing.T) {
	db := setupTestDB(t)
	_, _, purchase := seedPurchase(t, db)
	app := newWebhookTestApp()

	payload := stripeEventPayload(t, "charge.refunded", purchase.ID)
	status := postStripeEvent(t, app, payload, stripeSignatureHeader(payload, config.AppConfig.StripeWebhookSecret))
	assert.Equal(t, fiber.StatusOK, status)

	var updated models.Purchase
	require.NoError(t, db.First(&updated, purchase.ID).Error)
	assert.Equal(t, models.PurchaseStatusPending, updated.Status)
}
