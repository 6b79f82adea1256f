package services

import (
	"context"
	"time"

	"studytrack/backend/models"
	"studytrack/backend/utils"

	"gorm.io/gorm"
)

type ProgressService struct {
	DB     *gorm.DB
	Policy Policy
}

func NewProgressService(db *gorm.DB, policy Policy) *ProgressService {
	return &ProgressService{DB: db, Policy: policy}
}

// Start records that student began a topic. A student has at most one
// progress entry per topic.
func (s *ProgressService) Start(ctx context.Context, student *models.User, req ProgressCreate) (*models.Progress, error) {
	progress := models.Progress{
		StudentID: student.ID,
		TopicID:   req.TopicID,
		Score:     req.Score,
	}
	if err := applyStatus(&progress, req.Status, req.CompletionDate, time.Now()); err != nil {
		return nil, err
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		topic, err := findTopic(tx, req.TopicID)
		if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Progress{}).
			Where("student_id = ? AND topic_id = ?", student.ID, topic.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return utils.NewConflictError("Progress for this topic already exists")
		}

		if err := tx.Omit("Topic").Create(&progress).Error; err != nil {
			if isDuplicate(err) {
				return utils.NewConflictError("Progress for this topic already exists")
			}
			return err
		}
		progress.Topic = *topic
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// ForStudent lists a student's progress joined with the topics. Students see
// their own, teachers see anyone's.
func (s *ProgressService) ForStudent(ctx context.Context, actor *models.User, username string) (*models.StudentProgress, error) {
	if err := s.Policy.CanManage(actor, username, "view progress of"); err != nil {
		return nil, err
	}

	db := s.DB.WithContext(ctx)
	student, err := findUser(db, username)
	if err != nil {
		return nil, err
	}

	progress := []models.Progress{}
	if err := db.Preload("Topic").Where("student_id = ?", student.ID).Order("id").Find(&progress).Error; err != nil {
		return nil, err
	}
	return &models.StudentProgress{Student: *student, Progress: progress}, nil
}

// Update changes status, completion date or score of an entry owned by the
// actor. Teachers may update any entry.
func (s *ProgressService) Update(ctx context.Context, actor *models.User, id uint, in ProgressUpdate) (*models.Progress, error) {
	var progress models.Progress
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&progress, id).Error; err != nil {
			if isNotFound(err) {
				return utils.NewNotFoundError("Progress not found")
			}
			return err
		}
		if progress.StudentID != actor.ID && !actor.IsTeacher {
			return utils.NewForbiddenError("Only teachers can update progress of other users")
		}

		status := progress.Status
		if in.Status != nil {
			status = *in.Status
		}
		if in.Status != nil || in.CompletionDate != nil {
			if err := applyStatus(&progress, status, in.CompletionDate, time.Now()); err != nil {
				return err
			}
		}
		if in.Score != nil {
			progress.Score = in.Score
		}

		if err := tx.Omit("Topic").Save(&progress).Error; err != nil {
			return err
		}
		topic, err := findTopic(tx, progress.TopicID)
		if err != nil {
			return err
		}
		progress.Topic = *topic
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// applyStatus sets status and keeps completion_date consistent with it: a
// completed entry always has a date, any other status has none.
func applyStatus(p *models.Progress, status models.ProgressStatus, date *time.Time, now time.Time) error {
	p.Status = status
	if status != models.StatusCompleted {
		if date != nil {
			return utils.NewValidationError("completion_date requires status completed", map[string]string{
				"completion_date": "requires status completed",
			})
		}
		p.CompletionDate = nil
		return nil
	}

	switch {
	case date != nil:
		d := date.UTC()
		p.CompletionDate = &d
	case p.CompletionDate == nil:
		d := now.UTC()
		p.CompletionDate = &d
	}
	return nil
}
