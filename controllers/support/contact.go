package supportController

import (
	"github.com/dibyajyoti0750/Ascend-LMS/middleware"
	"github.com/dibyajyoti0750/Ascend-LMS/utils"

	"github.com/gofiber/fiber/v2"
)

// SendContactEmail relays a contact-form message to the site inbox.
func SendContactEmail(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedContact").(*struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := utils.SendContactEmail(reqData.Name, reqData.Email, reqData.Message); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send email!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Email sent successfully", nil)
}
