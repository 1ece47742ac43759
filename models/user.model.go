package models

import "time"

const (
	RoleStudent  = "student"
	RoleEducator = "educator"
)

// User mirrors the identity provider's user record. The ID is the
// provider's id, so it is a string primary key rather than an
// auto-increment.
type User struct {
	ID        string    `json:"_id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	Email     string    `json:"email" gorm:"index"`
	ImageURL  string    `json:"imageUrl"`
	Role      string    `json:"role" gorm:"default:'student'"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
