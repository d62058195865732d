package models

import "time"

type User struct {
	ID             uint    `gorm:"primaryKey"`
	Email          string  `gorm:"type:varchar(255); unique;not null"`
	Name           string  `gorm:"type:varchar(255); not null"`
	HashedPassword string  `gorm:"type:varchar(255); not null"`
	Avatar         *string `gorm:"type:varchar(255)"`
	IsActive       bool    `gorm:"not null;default:true"`
	CreatedAt      time.Time
}
