package services

import (
	"time"

	"studytrack/backend/models"
)

// Request schemas. Pointer fields are optional: nil leaves the stored value
// untouched.

// RegisterRequest carries no role or status fields: a new account is always
// enabled and never a teacher. "me" is reserved by the /users/me routes.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=64,ne=me"`
	Email    string `json:"email" validate:"required,email,max=255"`
	FullName string `json:"full_name" validate:"required,max=255"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

// LoginRequest is sent form-encoded by OAuth2 password clients; JSON works too.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type UserUpdate struct {
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	FullName  *string `json:"full_name" validate:"omitempty,max=255"`
	Password  *string `json:"password" validate:"omitempty,min=1,maxbytes=72"`
	Disabled  *bool   `json:"disabled"`
	IsTeacher *bool   `json:"is_teacher"`
}

type TopicRequest struct {
	Name          string  `json:"name" validate:"required,max=255"`
	Description   string  `json:"description" validate:"max=2000"`
	Subject       string  `json:"subject" validate:"required,max=64"`
	Difficulty    int     `json:"difficulty" validate:"min=1,max=5"`
	EstimatedTime float64 `json:"estimated_time" validate:"gte=0"`
}

type TopicUpdate struct {
	Name          *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Description   *string  `json:"description" validate:"omitempty,max=2000"`
	Subject       *string  `json:"subject" validate:"omitempty,min=1,max=64"`
	Difficulty    *int     `json:"difficulty" validate:"omitempty,min=1,max=5"`
	EstimatedTime *float64 `json:"estimated_time" validate:"omitempty,gte=0"`
}

type ProgressCreate struct {
	TopicID        uint                  `json:"topic_id" validate:"required"`
	Status         models.ProgressStatus `json:"status" validate:"required,oneof=not_started in_progress completed"`
	CompletionDate *time.Time            `json:"completion_date"`
	Score          *float64              `json:"score" validate:"omitempty,gte=0"`
}

type ProgressUpdate struct {
	Status         *models.ProgressStatus `json:"status" validate:"omitempty,oneof=not_started in_progress completed"`
	CompletionDate *time.Time             `json:"completion_date"`
	Score          *float64               `json:"score" validate:"omitempty,gte=0"`
}
