package course

import "gorm.io/gorm"

// CourseProgress tracks a user's progress through a course. Created on
// the first lecture completion; at most one record per (user, course).
type CourseProgress struct {
	gorm.Model
	UserID    string `json:"userId" gorm:"uniqueIndex:idx_user_course_progress;not null"`
	CourseID  uint   `json:"courseId" gorm:"uniqueIndex:idx_user_course_progress;not null"`
	Completed bool   `json:"completed" gorm:"default:false"`
}

// LectureCompletion marks one lecture as completed by a user. The
// unique index keeps the completed set duplicate-free; a second
// submission for the same lecture is rejected with a conflict.
type LectureCompletion struct {
	gorm.Model
	UserID     string `json:"userId" gorm:"uniqueIndex:idx_user_course_lecture;not null"`
	CourseID   uint   `json:"courseId" gorm:"uniqueIndex:idx_user_course_lecture;not null"`
	LectureKey string `json:"lectureId" gorm:"uniqueIndex:idx_user_course_lecture;not null"`
}
