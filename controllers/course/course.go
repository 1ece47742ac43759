package courseController

import (
	"github.com/dibyajyoti0750/Ascend-LMS/database"
	"github.com/dibyajyoti0750/Ascend-LMS/middleware"
	"github.com/dibyajyoti0750/Ascend-LMS/models"
	courseModels "github.com/dibyajyoti0750/Ascend-LMS/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetAllCourses lists published courses. Heavy fields (chapter content,
// enrollment data) are stripped for payload size; ratings ride along
// for the client's average computation.
func GetAllCourses(c *fiber.Ctx) error {
	db := database.Database.Db

	var courses []courseModels.Course
	if err := db.Where("is_published = ?", true).
		Preload("Ratings").
		Order("created_at desc").
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	result := make([]fiber.Map, len(courses))
	for i, courseData := range courses {
		var enrolledCount int64
		db.Model(&courseModels.Enrollment{}).Where("course_id = ?", courseData.ID).Count(&enrolledCount)

		educator := educatorSummary(courseData.EducatorID)

		result[i] = fiber.Map{
			"_id":               courseData.ID,
			"courseTitle":       courseData.Title,
			"courseDescription": courseData.Description,
			"courseThumbnail":   courseData.ThumbnailURL,
			"coursePrice":       courseData.Price,
			"discount":          courseData.Discount,
			"isBestSeller":      courseData.IsBestSeller,
			"courseRatings":     courseData.Ratings,
			"educator":          educator,
			"enrolledCount":     enrolledCount,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": result,
	})
}

// GetCourseByID returns full course detail. Lecture URLs of non-preview
// lectures are blanked unless the caller holds a valid token and is
// enrolled; the stored URL is never touched, this is response shaping
// only.
func GetCourseByID(c *fiber.Ctx) error {
	db := database.Database.Db
	courseID := c.Params("id")

	var courseData courseModels.Course
	if err := db.Where("id = ?", courseID).
		Preload("Chapters", func(db *gorm.DB) *gorm.DB { return db.Order("order_index asc") }).
		Preload("Chapters.Lectures", func(db *gorm.DB) *gorm.DB { return db.Order("order_index asc") }).
		Preload("Ratings").
		First(&courseData).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	enrolled := false
	if userID, ok := c.Locals("userId").(string); ok {
		var enrollment courseModels.Enrollment
		enrolled = db.Where("user_id = ? AND course_id = ?", userID, courseData.ID).
			First(&enrollment).Error == nil
	}

	if !enrolled {
		RedactLectureURLs(&courseData)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"courseData": courseData,
		"educator":   educatorSummary(courseData.EducatorID),
		"isEnrolled": enrolled,
	})
}

// RedactLectureURLs blanks the video URL of every lecture that is not a
// free preview.
func RedactLectureURLs(courseData *courseModels.Course) {
	for i := range courseData.Chapters {
		for j := range courseData.Chapters[i].Lectures {
			if !courseData.Chapters[i].Lectures[j].IsPreviewFree {
				courseData.Chapters[i].Lectures[j].URL = ""
			}
		}
	}
}

func educatorSummary(educatorID string) fiber.Map {
	var educator models.User
	if err := database.Database.Db.Where("id = ?", educatorID).First(&educator).Error; err != nil {
		return fiber.Map{"_id": educatorID}
	}
	return fiber.Map{
		"_id":      educator.ID,
		"name":     educator.Name,
		"imageUrl": educator.ImageURL,
	}
}
