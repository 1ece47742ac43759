package educatorController

import (
	"log"

	"github.com/dibyajyoti0750/Ascend-LMS/database"
	"github.com/dibyajyoti0750/Ascend-LMS/middleware"
	"github.com/dibyajyoti0750/Ascend-LMS/models"
	courseModels "github.com/dibyajyoti0750/Ascend-LMS/models/course"
	"github.com/dibyajyoti0750/Ascend-LMS/utils"
	educatorValidator "github.com/dibyajyoti0750/Ascend-LMS/validators/educator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UpdateRoleToEducator promotes the caller to educator. A fresh token
// is returned so the new role claim takes effect immediately.
func UpdateRoleToEducator(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)
	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if user.Role != models.RoleEducator {
		user.Role = models.RoleEducator
		if err := db.Save(&user).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
		}
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue token!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "You can publish a course now", fiber.Map{
		"token": token,
	})
}

// AddCourse creates a course from the validated payload and uploads the
// thumbnail. Chapter and lecture keys missing from the payload get
// generated ids.
func AddCourse(c *fiber.Ctx) error {
	educatorID := c.Locals("userId").(string)

	payload, ok := c.Locals("validatedCourse").(*educatorValidator.CoursePayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	imageFile, err := c.FormFile("image")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Thumbnail not attached", nil)
	}

	courseData := buildCourse(payload, educatorID)

	db := database.Database.Db
	if err := db.Create(courseData).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	upload, err := utils.UploadThumbnail(imageFile)
	if err != nil {
		log.Printf("Thumbnail upload failed for course %d: %v", courseData.ID, err)
	} else {
		courseData.ThumbnailURL = upload.SecureURL
		courseData.ThumbnailID = upload.PublicID
		if err := db.Save(courseData).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save thumbnail!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course added", fiber.Map{
		"courseId": courseData.ID,
	})
}

// UpdateCourse patches an educator's own course. Chapters and lectures
// are replaced wholesale from the payload, matching how the editor
// submits the full course body.
func UpdateCourse(c *fiber.Ctx) error {
	educatorID := c.Locals("userId").(string)
	courseID := c.Params("courseId")

	payload, ok := c.Locals("validatedCourse").(*educatorValidator.CoursePayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var courseData courseModels.Course
	if err := db.Where("id = ?", courseID).First(&courseData).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if courseData.EducatorID != educatorID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only update your own courses!", nil)
	}

	updated := buildCourse(payload, educatorID)

	courseData.Title = updated.Title
	courseData.Description = updated.Description
	courseData.Requirements = updated.Requirements
	courseData.Price = updated.Price
	courseData.Discount = updated.Discount
	courseData.IsPublished = updated.IsPublished
	courseData.IsBestSeller = updated.IsBestSeller

	if newThumbnail, err := c.FormFile("newThumbnail"); err == nil {
		upload, err := utils.UploadThumbnail(newThumbnail)
		if err != nil {
			log.Printf("Thumbnail re-upload failed for course %d: %v", courseData.ID, err)
		} else {
			courseData.ThumbnailURL = upload.SecureURL
			courseData.ThumbnailID = upload.PublicID
		}
	}

	// Replace the content tree.
	if err := deleteCourseContent(db, courseData.ID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course content!", nil)
	}
	courseData.Chapters = updated.Chapters

	if err := db.Save(&courseData).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated", nil)
}

// DeleteCourse removes an educator's own course, but only while no
// student is enrolled.
func DeleteCourse(c *fiber.Ctx) error {
	educatorID := c.Locals("userId").(string)
	courseID := c.Params("courseId")

	db := database.Database.Db

	var courseData courseModels.Course
	if err := db.Where("id = ?", courseID).First(&courseData).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if courseData.EducatorID != educatorID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only delete your own courses!", nil)
	}

	var enrolledCount int64
	db.Model(&courseModels.Enrollment{}).Where("course_id = ?", courseData.ID).Count(&enrolledCount)
	if enrolledCount > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course has enrolled students and cannot be deleted!", nil)
	}

	if err := deleteCourseContent(db, courseData.ID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}
	if err := db.Delete(&courseData).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted", nil)
}

// deleteCourseContent drops a course's chapters and their lectures.
func deleteCourseContent(db *gorm.DB, courseID uint) error {
	var chapterIDs []uint
	if err := db.Model(&courseModels.Chapter{}).Where("course_id = ?", courseID).
		Pluck("id", &chapterIDs).Error; err != nil {
		return err
	}
	if len(chapterIDs) > 0 {
		if err := db.Where("chapter_id IN ?", chapterIDs).Delete(&courseModels.Lecture{}).Error; err != nil {
			return err
		}
	}
	return db.Where("course_id = ?", courseID).Delete(&courseModels.Chapter{}).Error
}

// GetEducatorCourses lists the caller's own courses.
func GetEducatorCourses(c *fiber.Ctx) error {
	educatorID := c.Locals("userId").(string)

	var courses []courseModels.Course
	if err := database.Database.Db.Where("educator_id = ?", educatorID).
		Preload("Ratings").
		Order("created_at desc").
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// EducatorDashboard aggregates totals across the educator's courses:
// enrollment count, course count, earnings from completed purchases,
// and the latest enrollments.
func EducatorDashboard(c *fiber.Ctx) error {
	educatorID := c.Locals("userId").(string)
	db := database.Database.Db

	var courses []courseModels.Course
	if err := db.Where("educator_id = ?", educatorID).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	courseIDs := make([]uint, len(courses))
	for i, courseData := range courses {
		courseIDs[i] = courseData.ID
	}

	var totalEnrollments int64
	var totalEarnings float64
	latest := []fiber.Map{}

	if len(courseIDs) > 0 {
		db.Model(&courseModels.Enrollment{}).Where("course_id IN ?", courseIDs).Count(&totalEnrollments)

		db.Model(&models.Purchase{}).
			Where("course_id IN ? AND status = ?", courseIDs, models.PurchaseStatusCompleted).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&totalEarnings)

		var enrollments []courseModels.Enrollment
		db.Where("course_id IN ?", courseIDs).Order("created_at desc").Limit(10).Find(&enrollments)

		titleByID := make(map[uint]string, len(courses))
		for _, courseData := range courses {
			titleByID[courseData.ID] = courseData.Title
		}

		for _, enrollment := range enrollments {
			var student models.User
			db.Where("id = ?", enrollment.UserID).First(&student)
			latest = append(latest, fiber.Map{
				"student":     fiber.Map{"name": student.Name, "imageUrl": student.ImageURL},
				"courseTitle": titleByID[enrollment.CourseID],
				"enrolledAt":  enrollment.CreatedAt,
			})
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard data fetched successfully!", fiber.Map{
		"dashboardData": fiber.Map{
			"totalEnrollments":  totalEnrollments,
			"totalCourses":      len(courses),
			"totalEarnings":     totalEarnings,
			"latestEnrollments": latest,
		},
	})
}

// GetEnrolledStudents returns the (student, course, purchase date) feed
// built from completed purchases across the educator's courses.
func GetEnrolledStudents(c *fiber.Ctx) error {
	educatorID := c.Locals("userId").(string)
	db := database.Database.Db

	var courses []courseModels.Course
	if err := db.Where("educator_id = ?", educatorID).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	courseIDs := make([]uint, len(courses))
	titleByID := make(map[uint]string, len(courses))
	for i, courseData := range courses {
		courseIDs[i] = courseData.ID
		titleByID[courseData.ID] = courseData.Title
	}

	students := []fiber.Map{}
	if len(courseIDs) > 0 {
		var purchases []models.Purchase
		if err := db.Where("course_id IN ? AND status = ?", courseIDs, models.PurchaseStatusCompleted).
			Order("created_at desc").
			Find(&purchases).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch purchases!", nil)
		}

		for _, purchase := range purchases {
			var student models.User
			db.Where("id = ?", purchase.UserID).First(&student)
			students = append(students, fiber.Map{
				"student":      fiber.Map{"name": student.Name, "imageUrl": student.ImageURL},
				"courseTitle":  titleByID[purchase.CourseID],
				"purchaseDate": purchase.CreatedAt,
			})
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled students fetched successfully!", fiber.Map{
		"enrolledStudents": students,
	})
}

// buildCourse maps a validated payload onto the course models,
// generating chapter/lecture keys where the editor didn't supply them.
func buildCourse(payload *educatorValidator.CoursePayload, educatorID string) *courseModels.Course {
	published := true
	if payload.IsPublished != nil {
		published = *payload.IsPublished
	}

	courseData := &courseModels.Course{
		Title:        payload.CourseTitle,
		Description:  payload.CourseDescription,
		Requirements: payload.CourseRequirements,
		Price:        payload.CoursePrice,
		Discount:     payload.Discount,
		IsPublished:  published,
		IsBestSeller: payload.IsBestSeller,
		EducatorID:   educatorID,
	}

	for _, chapterPayload := range payload.CourseContent {
		chapterKey := chapterPayload.ChapterID
		if chapterKey == "" {
			chapterKey = uuid.NewString()
		}
		chapter := courseModels.Chapter{
			ChapterKey: chapterKey,
			Title:      chapterPayload.ChapterTitle,
			Order:      chapterPayload.ChapterOrder,
		}
		for _, lecturePayload := range chapterPayload.ChapterContent {
			lectureKey := lecturePayload.LectureID
			if lectureKey == "" {
				lectureKey = uuid.NewString()
			}
			chapter.Lectures = append(chapter.Lectures, courseModels.Lecture{
				LectureKey:    lectureKey,
				Title:         lecturePayload.LectureTitle,
				Duration:      lecturePayload.LectureDuration,
				URL:           lecturePayload.LectureURL,
				IsPreviewFree: lecturePayload.IsPreviewFree,
				Order:         lecturePayload.LectureOrder,
			})
		}
		courseData.Chapters = append(courseData.Chapters, chapter)
	}

	return courseData
}
