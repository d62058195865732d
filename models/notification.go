package models

import (
	"time"
)

// Notification kinds.
const (
	NotificationAssigned = "assigned"
	NotificationComment  = "comment"
	NotificationDueSoon  = "due_soon"
)

type Notification struct {
	ID        uint  `gorm:"primaryKey"`
	UserID    uint  `gorm:"not null"`
	User      *User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	TaskID    *uint
	Task      *Task     `gorm:"foreignKey:TaskID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Type      string    `gorm:"type:varchar(20);not null"`
	Message   string    `gorm:"type:text;not null"`
	IsRead    bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
}
