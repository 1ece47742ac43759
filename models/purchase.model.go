package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	GatewayStripe   = "stripe"
	GatewayRazorpay = "razorpay"
)

const (
	PurchaseStatusPending   = "pending"
	PurchaseStatusCompleted = "completed"
	PurchaseStatusFailed    = "failed"
)

// Purchase tracks a single checkout attempt for a course. It is created
// in pending status before the gateway session is requested, so webhook
// and verify handlers always have a record to resolve against.
type Purchase struct {
	gorm.Model
	CourseID uint   `json:"courseId" gorm:"index;not null"`
	UserID   string `json:"userId" gorm:"index;not null"`

	// Amount is the USD price after discount, rounded to two decimals.
	// INRAmount and ExchangeRate are only set on the Razorpay path.
	Amount       float64 `json:"amount" gorm:"not null"`
	INRAmount    float64 `json:"inrAmount"`
	ExchangeRate float64 `json:"exchangeRate"`

	Gateway string `json:"paymentGateway" gorm:"not null"` // stripe, razorpay
	Status  string `json:"status" gorm:"default:'pending'"`

	// Gateway specific IDs
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`

	// Refund consent proof
	AgreedToRefundPolicy   bool       `json:"agreedToRefundPolicy" gorm:"not null"`
	RefundPolicyAcceptedAt time.Time  `json:"refundPolicyAcceptedAt"`
	PaidAt                 *time.Time `json:"paidAt"`
}
