package educatorValidator

import (
	"encoding/json"

	"github.com/dibyajyoti0750/Ascend-LMS/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// LecturePayload is one lecture in the add/update course body.
type LecturePayload struct {
	LectureID       string `json:"lectureId"`
	LectureTitle    string `json:"lectureTitle" validate:"required,min=3"`
	LectureDuration int    `json:"lectureDuration" validate:"gte=0"`
	LectureURL      string `json:"lectureUrl" validate:"required,url"`
	IsPreviewFree   bool   `json:"isPreviewFree"`
	LectureOrder    int    `json:"lectureOrder" validate:"gte=0"`
}

// ChapterPayload is one chapter in the add/update course body.
type ChapterPayload struct {
	ChapterID      string           `json:"chapterId"`
	ChapterTitle   string           `json:"chapterTitle" validate:"required,min=3"`
	ChapterOrder   int              `json:"chapterOrder" validate:"gte=0"`
	ChapterContent []LecturePayload `json:"chapterContent" validate:"dive"`
}

// CoursePayload is the courseData JSON part of the multipart add-course
// request.
type CoursePayload struct {
	CourseTitle        string           `json:"courseTitle" validate:"required,min=3"`
	CourseDescription  string           `json:"courseDescription" validate:"required,min=5"`
	CourseRequirements string           `json:"courseRequirements"`
	CoursePrice        float64          `json:"coursePrice" validate:"gte=0"`
	Discount           float64          `json:"discount" validate:"gte=0,lte=100"`
	IsPublished        *bool            `json:"isPublished"`
	IsBestSeller       bool             `json:"isBestSeller"`
	CourseContent      []ChapterPayload `json:"courseContent" validate:"dive"`
}

// AddCourse validates the multipart add-course request: a courseData
// JSON field plus an image file.
func AddCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.FormValue("courseData")
		if raw == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "courseData is required!", nil)
		}

		payload := new(CoursePayload)
		if err := json.Unmarshal([]byte(raw), payload); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid courseData JSON!", nil)
		}

		if err := validate.Struct(payload); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		if _, err := c.FormFile("image"); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Thumbnail not attached", nil)
		}

		c.Locals("validatedCourse", payload)
		return c.Next()
	}
}

// UpdateCourse validates the patch body; the thumbnail is optional
// here.
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.FormValue("courseData")
		if raw == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "courseData is required!", nil)
		}

		payload := new(CoursePayload)
		if err := json.Unmarshal([]byte(raw), payload); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid courseData JSON!", nil)
		}

		if err := validate.Struct(payload); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedCourse", payload)
		return c.Next()
	}
}

func fieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["courseData"] = "Invalid course data!"
		return errors
	}
	for _, fieldErr := range validationErrors {
		errors[fieldErr.Field()] = "Failed validation: " + fieldErr.Tag()
	}
	return errors
}
