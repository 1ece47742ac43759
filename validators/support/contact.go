package supportValidator

import (
	"strings"

	"github.com/dibyajyoti0750/Ascend-LMS/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// SendEmail validates the contact-form body.
func SendEmail() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name    string `json:"name"`
			Email   string `json:"email"`
			Message string `json:"message"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.Email = strings.TrimSpace(reqData.Email)
		reqData.Message = strings.TrimSpace(reqData.Message)

		errors := make(map[string]string)

		if reqData.Name == "" {
			errors["name"] = "Name is required!"
		}
		if reqData.Email == "" {
			errors["email"] = "Email is required!"
		} else if err := validate.Var(reqData.Email, "email"); err != nil {
			errors["email"] = "Email is not valid!"
		}
		if reqData.Message == "" {
			errors["message"] = "Message is required!"
		}

		if len(errors) > 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "All fields are required", errors)
		}

		c.Locals("validatedContact", reqData)
		return c.Next()
	}
}
