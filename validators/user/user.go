package userValidator

import (
	"strings"

	"github.com/dibyajyoti0750/Ascend-LMS/middleware"

	"github.com/gofiber/fiber/v2"
)

// PurchaseCourse validates the checkout body shared by both gateways.
func PurchaseCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID             uint `json:"courseId"`
			AgreedToRefundPolicy bool `json:"agreedToRefundPolicy"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["courseId"] = "Course ID is required!"
		}

		// Refund consent is recorded with the purchase, so it has to be
		// explicit.
		if !reqData.AgreedToRefundPolicy {
			errors["agreedToRefundPolicy"] = "You must agree to the refund policy!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPurchase", reqData)
		return c.Next()
	}
}

// VerifyRazorpay validates the client-side checkout callback body.
func VerifyRazorpay() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			RazorpayOrderID   string `json:"razorpay_order_id"`
			RazorpayPaymentID string `json:"razorpay_payment_id"`
			RazorpaySignature string `json:"razorpay_signature"`
			PurchaseID        uint   `json:"purchaseId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.RazorpayOrderID) == "" {
			errors["razorpay_order_id"] = "Order ID is required!"
		}
		if strings.TrimSpace(reqData.RazorpayPaymentID) == "" {
			errors["razorpay_payment_id"] = "Payment ID is required!"
		}
		if strings.TrimSpace(reqData.RazorpaySignature) == "" {
			errors["razorpay_signature"] = "Signature is required!"
		}
		if reqData.PurchaseID == 0 {
			errors["purchaseId"] = "Purchase ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedVerify", reqData)
		return c.Next()
	}
}

// UpdateProgress validates the lecture completion body.
func UpdateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID  uint   `json:"courseId"`
			LectureID string `json:"lectureId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["courseId"] = "Course ID is required!"
		}
		if strings.TrimSpace(reqData.LectureID) == "" {
			errors["lectureId"] = "Lecture ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

// AddRating validates the rating body. Ratings are whole numbers from 1
// to 5.
func AddRating() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID uint `json:"courseId"`
			Rating   int  `json:"rating"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["courseId"] = "Course ID is required!"
		}
		if reqData.Rating < 1 || reqData.Rating > 5 {
			errors["rating"] = "Rating must be between 1 and 5!"
		}

		if len(errors) > 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Validation failed!", errors)
		}

		c.Locals("validatedRating", reqData)
		return c.Next()
	}
}
