package models

import (
	"strings"
	"time"
)

// User 用户模型, id comes from the identity provider subject claim
type User struct {
	ID              string    `gorm:"type:varchar(255);primaryKey" json:"id"`
	Email           *string   `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	FirstName       string    `gorm:"type:varchar(100)" json:"firstName"`
	LastName        string    `gorm:"type:varchar(100)" json:"lastName"`
	ProfileImageURL string    `gorm:"type:varchar(255)" json:"profileImageUrl"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (u *User) GetDisplayName() string {
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		return name
	}
	if u.Email != nil {
		return *u.Email
	}
	return u.ID
}
