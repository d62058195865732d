package repository

import (
	"errors"

	"github.com/harukimz/taskboard-app/models"
	"gorm.io/gorm"
)

// CreateCommentWithNotification inserts the comment and, when the comment
// derived a notification for the task's assignee, persists both in the same
// transaction. notif may be nil.
func (s *Store) CreateCommentWithNotification(comment *models.Comment, notif *models.Notification) error {
	return s.transact(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		if notif != nil {
			return tx.Create(notif).Error
		}
		return nil
	})
}

func (s *Store) ListTaskComments(taskID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Preload("User").
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *Store) GetComment(taskID, commentID uint) (*models.Comment, error) {
	var comment models.Comment
	err := s.db.Where("id = ? AND task_id = ?", commentID, taskID).
		First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *Store) DeleteComment(id uint) error {
	return s.transact(func(tx *gorm.DB) error {
		return tx.Delete(&models.Comment{}, id).Error
	})
}
