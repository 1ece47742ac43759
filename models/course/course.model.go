package course

import (
	"math"

	"gorm.io/gorm"
)

// Course is a published learning course owned by an educator.
type Course struct {
	gorm.Model
	Title        string  `json:"courseTitle"`
	Description  string  `json:"courseDescription" gorm:"type:text"`
	Requirements string  `json:"courseRequirements" gorm:"type:text"`
	ThumbnailURL string  `json:"courseThumbnail" gorm:"default:'https://placehold.co/600x400?text=No+Thumbnail'"`
	ThumbnailID  string  `json:"-"` // storage public id, used on re-upload
	Price        float64 `json:"coursePrice" gorm:"not null"`
	Discount     float64 `json:"discount" gorm:"not null"` // percent, 0-100
	IsPublished  bool    `json:"isPublished"`
	IsBestSeller bool    `json:"isBestSeller" gorm:"default:false"`
	EducatorID   string  `json:"educator" gorm:"index;not null"`

	Chapters []Chapter `json:"courseContent" gorm:"foreignKey:CourseID"`
	Ratings  []Rating  `json:"courseRatings" gorm:"foreignKey:CourseID"`
}

// DiscountedPrice returns the payable USD amount rounded to two
// decimals. The same rounding is applied before converting to the
// gateway's minor unit, so the recorded and charged amounts agree.
func (c *Course) DiscountedPrice() float64 {
	return round2(c.Price - (c.Discount*c.Price)/100)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
