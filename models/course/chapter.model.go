package course

import "gorm.io/gorm"

// Chapter is a section within a course. Order defines the display
// sequence.
type Chapter struct {
	gorm.Model
	CourseID   uint      `json:"-" gorm:"index;not null"`
	ChapterKey string    `json:"chapterId" gorm:"index;not null"`
	Title      string    `json:"chapterTitle"`
	Order      int       `json:"chapterOrder" gorm:"column:order_index;default:0"`
	Lectures   []Lecture `json:"chapterContent" gorm:"foreignKey:ChapterID"`
}

// Lecture is a single video lecture within a chapter. URL is the
// authoritative video location; read paths blank it out for
// non-preview lectures unless the caller is enrolled.
type Lecture struct {
	gorm.Model
	ChapterID     uint   `json:"-" gorm:"index;not null"`
	LectureKey    string `json:"lectureId" gorm:"index;not null"`
	Title         string `json:"lectureTitle"`
	Duration      int    `json:"lectureDuration"` // minutes
	URL           string `json:"lectureUrl"`
	IsPreviewFree bool   `json:"isPreviewFree"`
	Order         int    `json:"lectureOrder" gorm:"column:order_index;default:0"`
}
