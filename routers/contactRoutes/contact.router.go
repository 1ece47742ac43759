package contactRoutes

import (
	controllers "github.com/dibyajyoti0750/Ascend-LMS/controllers/support"
	validators "github.com/dibyajyoti0750/Ascend-LMS/validators/support"

	"github.com/gofiber/fiber/v2"
)

// SetupContactRoutes sets up the public contact-form relay
func SetupContactRoutes(app *fiber.App) {
	contactGroup := app.Group("/api/contact")

	contactGroup.Post("/send-email", validators.SendEmail(), controllers.SendContactEmail)
}
