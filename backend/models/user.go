package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Disabled     bool      `gorm:"not null;default:false" json:"disabled"`
	IsTeacher    bool      `gorm:"not null;default:false" json:"is_teacher"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`

	Progress []Progress `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
}
