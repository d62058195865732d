package repository

import (
	"errors"

	"github.com/harukimz/taskboard-app/models"
	"gorm.io/gorm"
)

func (s *Store) CreateUser(user *models.User) error {
	err := s.transact(func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})
	if isConstraint(err) {
		return &DuplicateError{Field: "email"}
	}
	return err
}

func (s *Store) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) ListUsers(skip, limit int) ([]models.User, error) {
	if limit <= 0 {
		limit = 100
	}
	var users []models.User
	if err := s.db.Offset(skip).Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) UpdateUser(user *models.User) error {
	err := s.transact(func(tx *gorm.DB) error {
		return tx.Save(user).Error
	})
	if isConstraint(err) {
		return &DuplicateError{Field: "email"}
	}
	return err
}

func (s *Store) DeleteUser(id uint) error {
	return s.transact(func(tx *gorm.DB) error {
		return tx.Delete(&models.User{}, id).Error
	})
}
