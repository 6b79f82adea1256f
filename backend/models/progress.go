package models

import "time"

type ProgressStatus string

const (
	StatusNotStarted ProgressStatus = "not_started"
	StatusInProgress ProgressStatus = "in_progress"
	StatusCompleted  ProgressStatus = "completed"
)

// Progress links one student to one topic. (student_id, topic_id) is unique.
type Progress struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	StudentID      uint           `gorm:"not null;uniqueIndex:idx_progress_student_topic" json:"student_id"`
	TopicID        uint           `gorm:"not null;uniqueIndex:idx_progress_student_topic;index" json:"topic_id"`
	Status         ProgressStatus `gorm:"not null;default:'not_started'" json:"status"`
	CompletionDate *time.Time     `json:"completion_date"`
	Score          *float64       `json:"score"` // placeholder until quizzes exist
	CreatedAt      time.Time      `json:"-"`
	UpdatedAt      time.Time      `json:"-"`

	Topic Topic `gorm:"constraint:OnDelete:RESTRICT" json:"topic"`
}

func (Progress) TableName() string {
	return "progress"
}

type StudentProgress struct {
	Student  User       `json:"student"`
	Progress []Progress `json:"progress"`
}

type TopicProgress struct {
	Topic    Topic      `json:"topic"`
	Progress []Progress `json:"progress"`
}
