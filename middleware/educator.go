package middleware

import (
	"github.com/dibyajyoti0750/Ascend-LMS/database"
	"github.com/dibyajyoti0750/Ascend-LMS/models"

	"github.com/gofiber/fiber/v2"
)

// EducatorMiddleware allows only users whose role is educator. The role
// claim is checked first; the User row is the authority, since the role
// can change between token issuance and use.
func EducatorMiddleware(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": "Unauthorized: User ID not found",
			"data":    nil,
		})
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": "User not found!",
			"data":    nil,
		})
	}

	if user.Role != models.RoleEducator {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  false,
			"message": "Unauthorized access",
			"data":    nil,
		})
	}

	return c.Next()
}
