package userController

import (
	"github.com/dibyajyoti0750/Ascend-LMS/database"
	"github.com/dibyajyoti0750/Ascend-LMS/middleware"
	"github.com/dibyajyoti0750/Ascend-LMS/models"
	courseModels "github.com/dibyajyoti0750/Ascend-LMS/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetUserData returns the caller's own user record.
func GetUserData(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User fetched successfully!", fiber.Map{
		"user": user,
	})
}

// GetEnrolledCourses returns the caller's courses with full content.
// Enrolled users see lecture URLs, so nothing is redacted here.
func GetEnrolledCourses(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)
	db := database.Database.Db

	var enrollments []courseModels.Enrollment
	if err := db.Where("user_id = ?", userID).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	courseIDs := make([]uint, len(enrollments))
	for i, e := range enrollments {
		courseIDs[i] = e.CourseID
	}

	var courses []courseModels.Course
	if len(courseIDs) > 0 {
		if err := db.Where("id IN ?", courseIDs).
			Preload("Chapters", func(db *gorm.DB) *gorm.DB { return db.Order("order_index asc") }).
			Preload("Chapters.Lectures", func(db *gorm.DB) *gorm.DB { return db.Order("order_index asc") }).
			Preload("Ratings").
			Find(&courses).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled courses fetched successfully!", fiber.Map{
		"enrolledCourses": courses,
	})
}
