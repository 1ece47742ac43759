package webhookRoutes

import (
	paymentControllers "github.com/dibyajyoti0750/Ascend-LMS/controllers/payment"
	controllers "github.com/dibyajyoti0750/Ascend-LMS/controllers/webhook"

	"github.com/gofiber/fiber/v2"
)

// SetupWebhookRoutes sets up the gateway and identity-provider webhook
// endpoints. No user auth: authenticity comes from each caller's own
// signature scheme over the raw body.
func SetupWebhookRoutes(app *fiber.App) {
	app.Post("/stripe", paymentControllers.StripeWebhook)
	app.Post("/clerk", controllers.ClerkWebhook)
}
