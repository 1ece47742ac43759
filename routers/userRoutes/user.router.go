package userRoutes

import (
	paymentControllers "github.com/dibyajyoti0750/Ascend-LMS/controllers/payment"
	controllers "github.com/dibyajyoti0750/Ascend-LMS/controllers/user"
	"github.com/dibyajyoti0750/Ascend-LMS/middleware"
	validators "github.com/dibyajyoti0750/Ascend-LMS/validators/user"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up all authenticated user routes
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/api/user", middleware.JWTMiddleware)

	userGroup.Get("/data", controllers.GetUserData)
	userGroup.Get("/enrolled-courses", controllers.GetEnrolledCourses)

	// Checkout
	userGroup.Post("/purchase-stripe", validators.PurchaseCourse(), paymentControllers.PurchaseCourseStripe)
	userGroup.Post("/purchase-rzp", validators.PurchaseCourse(), paymentControllers.PurchaseCourseRazorpay)
	userGroup.Post("/verify-rzp", validators.VerifyRazorpay(), paymentControllers.VerifyRazorpayPayment)

	// Progress tracking
	userGroup.Post("/update-course-progress", validators.UpdateProgress(), controllers.UpdateCourseProgress)
	userGroup.Get("/course-progress", controllers.GetAllCourseProgress)
	userGroup.Get("/course-progress/:courseId", controllers.GetCourseProgress)

	// Ratings
	userGroup.Post("/add-rating", validators.AddRating(), controllers.AddRating)
}
