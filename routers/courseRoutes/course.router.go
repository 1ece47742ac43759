package courseRoutes

import (
	controllers "github.com/dibyajyoti0750/Ascend-LMS/controllers/course"
	"github.com/dibyajyoti0750/Ascend-LMS/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the public course read paths. Course detail
// takes an optional token so enrolled callers get un-redacted lecture
// URLs.
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/api/course")

	courseGroup.Get("/all", controllers.GetAllCourses)
	courseGroup.Get("/:id", middleware.OptionalJWTMiddleware, controllers.GetCourseByID)
}
