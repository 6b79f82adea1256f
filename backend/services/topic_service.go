package services

import (
	"context"
	"strings"

	"studytrack/backend/models"
	"studytrack/backend/utils"

	"gorm.io/gorm"
)

type TopicService struct {
	DB     *gorm.DB
	Policy Policy
}

func NewTopicService(db *gorm.DB, policy Policy) *TopicService {
	return &TopicService{DB: db, Policy: policy}
}

// List returns topics ordered by name, optionally filtered by subject and a
// case-insensitive search over name and description.
func (s *TopicService) List(ctx context.Context, subject, search string) ([]models.Topic, error) {
	query := s.DB.WithContext(ctx).Model(&models.Topic{})
	if subject != "" {
		query = query.Where("subject = ?", subject)
	}
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	topics := []models.Topic{}
	if err := query.Order("name").Find(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

func (s *TopicService) Get(ctx context.Context, id uint) (*models.Topic, error) {
	return findTopic(s.DB.WithContext(ctx), id)
}

func (s *TopicService) Create(ctx context.Context, actor *models.User, req TopicRequest) (*models.Topic, error) {
	if err := s.Policy.RequireTeacher(actor, "create topics"); err != nil {
		return nil, err
	}

	topic := models.Topic{
		Name:          req.Name,
		Description:   req.Description,
		Subject:       req.Subject,
		Difficulty:    req.Difficulty,
		EstimatedTime: req.EstimatedTime,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureTopicName(tx, topic.Name, 0); err != nil {
			return err
		}
		if err := tx.Create(&topic).Error; err != nil {
			if isDuplicate(err) {
				return utils.NewConflictError("Topic name already exists")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (s *TopicService) Update(ctx context.Context, actor *models.User, id uint, in TopicUpdate) (*models.Topic, error) {
	if err := s.Policy.RequireTeacher(actor, "update topics"); err != nil {
		return nil, err
	}

	var topic *models.Topic
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if topic, err = findTopic(forUpdate(tx), id); err != nil {
			return err
		}

		if in.Name != nil && *in.Name != topic.Name {
			if err := ensureTopicName(tx, *in.Name, topic.ID); err != nil {
				return err
			}
			topic.Name = *in.Name
		}
		if in.Description != nil {
			topic.Description = *in.Description
		}
		if in.Subject != nil {
			topic.Subject = *in.Subject
		}
		if in.Difficulty != nil {
			topic.Difficulty = *in.Difficulty
		}
		if in.EstimatedTime != nil {
			topic.EstimatedTime = *in.EstimatedTime
		}
		return tx.Save(topic).Error
	})
	if err != nil {
		return nil, err
	}
	return topic, nil
}

// Delete refuses to remove a topic that students have progress on.
func (s *TopicService) Delete(ctx context.Context, actor *models.User, id uint) error {
	if err := s.Policy.RequireTeacher(actor, "delete topics"); err != nil {
		return err
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		topic, err := findTopic(forUpdate(tx), id)
		if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Progress{}).Where("topic_id = ?", topic.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return utils.NewConflictError("Topic has progress records")
		}
		return tx.Delete(topic).Error
	})
}

// Progress lists every student's progress on a topic.
func (s *TopicService) Progress(ctx context.Context, actor *models.User, id uint) (*models.TopicProgress, error) {
	if err := s.Policy.RequireTeacher(actor, "view topic progress"); err != nil {
		return nil, err
	}

	db := s.DB.WithContext(ctx)
	topic, err := findTopic(db, id)
	if err != nil {
		return nil, err
	}

	progress := []models.Progress{}
	if err := db.Preload("Topic").Where("topic_id = ?", topic.ID).Order("student_id").Find(&progress).Error; err != nil {
		return nil, err
	}
	return &models.TopicProgress{Topic: *topic, Progress: progress}, nil
}

func findTopic(db *gorm.DB, id uint) (*models.Topic, error) {
	var topic models.Topic
	if err := db.First(&topic, id).Error; err != nil {
		if isNotFound(err) {
			return nil, utils.NewNotFoundError("Topic not found")
		}
		return nil, err
	}
	return &topic, nil
}

func ensureTopicName(tx *gorm.DB, name string, exceptID uint) error {
	query := tx.Model(&models.Topic{}).Where("name = ?", name)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return utils.NewConflictError("Topic name already exists")
	}
	return nil
}
