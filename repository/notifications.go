package repository

import (
	"time"

	"github.com/harukimz/taskboard-app/models"
	"gorm.io/gorm"
)

// Notification lists are capped; retention itself is unbounded.
const notificationListLimit = 50

func (s *Store) CreateNotification(notif *models.Notification) error {
	return s.transact(func(tx *gorm.DB) error {
		return tx.Create(notif).Error
	})
}

func (s *Store) ListNotifications(userID uint, unreadOnly bool) ([]models.Notification, error) {
	q := s.db.Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	var notifs []models.Notification
	err := q.Order("created_at DESC, id DESC").Limit(notificationListLimit).Find(&notifs).Error
	if err != nil {
		return nil, err
	}
	return notifs, nil
}

func (s *Store) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkNotificationRead flips is_read for one of the user's notifications.
// Returns false when the notification does not exist or belongs to someone else.
func (s *Store) MarkNotificationRead(id, userID uint) (bool, error) {
	var found bool
	err := s.transact(func(tx *gorm.DB) error {
		res := tx.Model(&models.Notification{}).
			Where("id = ? AND user_id = ?", id, userID).
			Update("is_read", true)
		if res.Error != nil {
			return res.Error
		}
		found = res.RowsAffected > 0
		return nil
	})
	return found, err
}

func (s *Store) MarkAllNotificationsRead(userID uint) error {
	return s.transact(func(tx *gorm.DB) error {
		return tx.Model(&models.Notification{}).
			Where("user_id = ? AND is_read = ?", userID, false).
			Update("is_read", true).Error
	})
}

// CreateNotificationIfNoneSince inserts notif unless a notification of the
// same kind for the same task was already created at or after the cutoff.
// The check and the insert share one transaction so two concurrent sweeps
// cannot both slip past the check. Returns whether notif was created.
func (s *Store) CreateNotificationIfNoneSince(notif *models.Notification, taskID uint, kind string, since time.Time) (bool, error) {
	var created bool
	err := s.transact(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Notification{}).
			Where("task_id = ? AND type = ? AND created_at >= ?", taskID, kind, since).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		if err := tx.Create(notif).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}
