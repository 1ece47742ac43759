package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/dibyajyoti0750/Ascend-LMS/config"

	"github.com/go-resty/resty/v2"
)

const razorpayOrdersURL = "https://api.razorpay.com/v1/orders"

// RazorpayOrder is the subset of the Orders API response we use.
type RazorpayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // paise
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateRazorpayOrder opens an order with the Razorpay Orders API.
// Amount is in paise.
func CreateRazorpayOrder(amountPaise int64, receipt string, notes map[string]string) (*RazorpayOrder, error) {
	payload := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		payload["notes"] = notes
	}

	client := resty.New()
	resp, err := client.R().
		SetBasicAuth(config.AppConfig.RazorpayKeyID, config.AppConfig.RazorpayKeySecret).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(razorpayOrdersURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create razorpay order: %v", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("razorpay API error: %s", resp.String())
	}

	var order RazorpayOrder
	if err := json.Unmarshal(resp.Body(), &order); err != nil {
		return nil, fmt.Errorf("failed to parse razorpay response: %v", err)
	}

	return &order, nil
}

// VerifyRazorpaySignature recomputes the checkout signature and
// compares it to the value the client supplied. The scheme is
// HMAC-SHA256 over "orderId|paymentId" with the key secret, hex
// encoded.
func VerifyRazorpaySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
