package userController

import (
	"github.com/dibyajyoti0750/Ascend-LMS/database"
	"github.com/dibyajyoti0750/Ascend-LMS/middleware"
	courseModels "github.com/dibyajyoti0750/Ascend-LMS/models/course"

	"github.com/gofiber/fiber/v2"
)

// AddRating upserts the caller's rating for a purchased course. One
// rating per (user, course); a second submission overwrites the value
// in place instead of adding an entry.
func AddRating(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)

	reqData, ok := c.Locals("validatedRating").(*struct {
		CourseID uint `json:"courseId"`
		Rating   int  `json:"rating"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var courseData courseModels.Course
	if err := db.Where("id = ?", reqData.CourseID).First(&courseData).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Purchase required before rating.
	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", userID, reqData.CourseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must purchase this course before rating it!", nil)
	}

	var rating courseModels.Rating
	if err := db.Where("course_id = ? AND user_id = ?", reqData.CourseID, userID).First(&rating).Error; err == nil {
		rating.Rating = reqData.Rating
		if err := db.Save(&rating).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update rating!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Rating updated!", nil)
	}

	rating = courseModels.Rating{
		CourseID: reqData.CourseID,
		UserID:   userID,
		Rating:   reqData.Rating,
	}
	if err := db.Create(&rating).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add rating!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Rating added!", nil)
}
