package models

import "time"

type Topic struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"uniqueIndex;not null" json:"name"`
	Description   string    `json:"description"`
	Subject       string    `gorm:"index" json:"subject"` // calculus, linear_algebra, ...
	Difficulty    int       `json:"difficulty"`
	EstimatedTime float64   `json:"estimated_time"` // hours
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}
