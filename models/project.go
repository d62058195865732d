package models

import "time"

type Project struct {
	ID          uint    `gorm:"primaryKey"`
	Title       string  `gorm:"type:varchar(255); not null"`
	Description *string `gorm:"type:text"`
	Color       string  `gorm:"type:varchar(50);not null;default:aqua"`
	OwnerID     uint    `gorm:"not null"`
	Owner       *User   `gorm:"foreignKey:OwnerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt   time.Time
}
