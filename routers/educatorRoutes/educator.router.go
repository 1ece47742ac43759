package educatorRoutes

import (
	controllers "github.com/dibyajyoti0750/Ascend-LMS/controllers/educator"
	"github.com/dibyajyoti0750/Ascend-LMS/middleware"
	validators "github.com/dibyajyoti0750/Ascend-LMS/validators/educator"

	"github.com/gofiber/fiber/v2"
)

// SetupEducatorRoutes sets up the educator routes. Role upgrade only
// needs a valid token; everything else requires the educator role.
func SetupEducatorRoutes(app *fiber.App) {
	educatorGroup := app.Group("/api/educator")

	educatorGroup.Get("/update-role", middleware.JWTMiddleware, controllers.UpdateRoleToEducator)

	educatorGroup.Post("/add-course", middleware.JWTMiddleware, middleware.EducatorMiddleware,
		validators.AddCourse(), controllers.AddCourse)
	educatorGroup.Patch("/update/course/:courseId", middleware.JWTMiddleware, middleware.EducatorMiddleware,
		validators.UpdateCourse(), controllers.UpdateCourse)
	educatorGroup.Delete("/course/:courseId", middleware.JWTMiddleware, middleware.EducatorMiddleware,
		controllers.DeleteCourse)

	educatorGroup.Get("/courses", middleware.JWTMiddleware, middleware.EducatorMiddleware, controllers.GetEducatorCourses)
	educatorGroup.Get("/dashboard", middleware.JWTMiddleware, middleware.EducatorMiddleware, controllers.EducatorDashboard)
	educatorGroup.Get("/enrolled-students", middleware.JWTMiddleware, middleware.EducatorMiddleware, controllers.GetEnrolledStudents)
}
