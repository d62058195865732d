package repository

import (
	"errors"

	"github.com/harukimz/taskboard-app/models"
	"gorm.io/gorm"
)

func (s *Store) CreateProject(project *models.Project) error {
	return s.transact(func(tx *gorm.DB) error {
		return tx.Create(project).Error
	})
}

func (s *Store) GetProject(id uint) (*models.Project, error) {
	var project models.Project
	err := s.db.First(&project, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *Store) ListProjects(skip, limit int) ([]models.Project, error) {
	if limit <= 0 {
		limit = 100
	}
	var projects []models.Project
	if err := s.db.Offset(skip).Limit(limit).Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *Store) ListProjectsByOwner(ownerID uint, skip, limit int) ([]models.Project, error) {
	if limit <= 0 {
		limit = 100
	}
	var projects []models.Project
	err := s.db.Where("owner_id = ?", ownerID).
		Offset(skip).Limit(limit).Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *Store) UpdateProject(project *models.Project) error {
	return s.transact(func(tx *gorm.DB) error {
		return tx.Save(project).Error
	})
}

// DeleteProject removes the project together with its tasks and their
// comments. The cascade is spelled out here instead of leaning on FK
// configuration so the whole delete commits or rolls back as one unit.
func (s *Store) DeleteProject(id uint) error {
	return s.transact(func(tx *gorm.DB) error {
		var taskIDs []uint
		if err := tx.Model(&models.Task{}).
			Where("project_id = ?", id).
			Pluck("id", &taskIDs).Error; err != nil {
			return err
		}
		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).
				Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id = ?", id).
				Delete(&models.Task{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}

func (s *Store) ListProjectTasks(projectID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.Where("project_id = ?", projectID).Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}
