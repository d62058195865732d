package repository

import (
	"errors"

	"github.com/harukimz/taskboard-app/models"
	"gorm.io/gorm"
)

// TaskFilter narrows ListTasks. Zero values mean "no filter".
type TaskFilter struct {
	AssigneeID *uint
	ProjectID  *uint
	Search     string
	Skip       int
	Limit      int
}

func (s *Store) CreateTask(task *models.Task) error {
	return s.transact(func(tx *gorm.DB) error {
		return tx.Create(task).Error
	})
}

func (s *Store) GetTask(id uint) (*models.Task, error) {
	var task models.Task
	err := s.db.First(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *Store) ListTasks(filter TaskFilter) ([]models.Task, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	q := s.db.Model(&models.Task{})
	if filter.AssigneeID != nil {
		q = q.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.ProjectID != nil {
		q = q.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var tasks []models.Task
	if err := q.Offset(filter.Skip).Limit(limit).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *Store) UpdateTask(task *models.Task) error {
	return s.transact(func(tx *gorm.DB) error {
		return tx.Save(task).Error
	})
}

// UpdateTaskWithNotification saves the task and, when the update derived a
// notification, persists it in the same transaction. notif may be nil.
func (s *Store) UpdateTaskWithNotification(task *models.Task, notif *models.Notification) error {
	return s.transact(func(tx *gorm.DB) error {
		if err := tx.Save(task).Error; err != nil {
			return err
		}
		if notif != nil {
			return tx.Create(notif).Error
		}
		return nil
	})
}

// DeleteTask removes the task and its comments as one unit.
func (s *Store) DeleteTask(id uint) error {
	return s.transact(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).
			Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, id).Error
	})
}

// ListTasksDueOn returns tasks due exactly on the given calendar date that are
// still open and have someone assigned. Used by the due-date scanner.
func (s *Store) ListTasksDueOn(date string) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.Where("due_date = ? AND status != ? AND assignee_id IS NOT NULL",
		date, models.TaskStatusDone).Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}
