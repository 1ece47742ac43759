package course

import "gorm.io/gorm"

// Rating is one user's rating of a course. The composite unique index
// enforces the one-rating-per-user rule; the write path upserts in
// place.
type Rating struct {
	gorm.Model
	CourseID uint   `json:"-" gorm:"uniqueIndex:idx_course_user_rating;not null"`
	UserID   string `json:"userId" gorm:"uniqueIndex:idx_course_user_rating;not null"`
	Rating   int    `json:"rating" gorm:"not null"` // 1-5
}
