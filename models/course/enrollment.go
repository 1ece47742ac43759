package course

import "gorm.io/gorm"

// Enrollment grants a user access to a course. One row represents both
// sides of the user<->course relation; the composite unique index gives
// the insert set semantics, so applying the same enrollment twice is a
// no-op.
type Enrollment struct {
	gorm.Model
	UserID   string `json:"userId" gorm:"uniqueIndex:idx_user_course_enrollment;not null"`
	CourseID uint   `json:"courseId" gorm:"uniqueIndex:idx_user_course_enrollment;not null"`
}
