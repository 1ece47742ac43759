package userController

import (
	"github.com/dibyajyoti0750/Ascend-LMS/database"
	"github.com/dibyajyoti0750/Ascend-LMS/middleware"
	courseModels "github.com/dibyajyoti0750/Ascend-LMS/models/course"

	"github.com/gofiber/fiber/v2"
)

// UpdateCourseProgress records one lecture completion. Submitting the
// same lecture twice is a conflict, not a silent no-op, so the client
// can surface double submissions.
func UpdateCourseProgress(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)

	reqData, ok := c.Locals("validatedProgress").(*struct {
		CourseID  uint   `json:"courseId"`
		LectureID string `json:"lectureId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Progress is only tracked for enrolled users.
	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", userID, reqData.CourseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	var existing courseModels.LectureCompletion
	if err := db.Where("user_id = ? AND course_id = ? AND lecture_key = ?",
		userID, reqData.CourseID, reqData.LectureID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Lecture already completed!", nil)
	}

	// First completion for the course creates the progress record.
	var progress courseModels.CourseProgress
	if err := db.Where("user_id = ? AND course_id = ?", userID, reqData.CourseID).First(&progress).Error; err != nil {
		progress = courseModels.CourseProgress{
			UserID:   userID,
			CourseID: reqData.CourseID,
		}
		if err := db.Create(&progress).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create progress record!", nil)
		}
	}

	completion := courseModels.LectureCompletion{
		UserID:     userID,
		CourseID:   reqData.CourseID,
		LectureKey: reqData.LectureID,
	}
	if err := db.Create(&completion).Error; err != nil {
		// Unique index backstop against a concurrent duplicate.
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Lecture already completed!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated!", nil)
}

// GetCourseProgress returns the progress record for one course.
func GetCourseProgress(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)
	courseID := c.Params("courseId")

	db := database.Database.Db

	var progress courseModels.CourseProgress
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No progress found for this course!", nil)
	}

	lectures := completedLectures(userID, progress.CourseID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"progressData": fiber.Map{
			"courseId":         progress.CourseID,
			"completed":        progress.Completed,
			"lectureCompleted": lectures,
		},
	})
}

// GetAllCourseProgress returns a courseId -> progress mapping for every
// course the user has touched. Completion percentage is the caller's
// job; the server only reports the completed set.
func GetAllCourseProgress(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)
	db := database.Database.Db

	var records []courseModels.CourseProgress
	if err := db.Where("user_id = ?", userID).Find(&records).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	progressMap := make(map[uint]fiber.Map, len(records))
	for _, record := range records {
		progressMap[record.CourseID] = fiber.Map{
			"completed":        record.Completed,
			"lectureCompleted": completedLectures(userID, record.CourseID),
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"progressMap": progressMap,
	})
}

func completedLectures(userID string, courseID uint) []string {
	var lectures []string
	database.Database.Db.Model(&courseModels.LectureCompletion{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("id asc").
		Pluck("lecture_key", &lectures)
	return lectures
}
