package models

import "time"

// Task statuses mirror the kanban columns on the board.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "inProgress"
	TaskStatusReview     = "review"
	TaskStatusDone       = "done"
)

const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

type Task struct {
	ID          uint    `gorm:"primaryKey"`
	Title       string  `gorm:"type:varchar(255); not null"`
	Description *string `gorm:"type:text"`
	Status      string  `gorm:"type:varchar(20);not null;default:todo"`
	Priority    string  `gorm:"type:varchar(20);not null;default:medium"`
	// Calendar date in ISO form (2006-01-02), no time zone attached.
	DueDate   *string  `gorm:"type:varchar(10)"`
	StartTime *string  `gorm:"type:varchar(20)"`
	EndTime   *string  `gorm:"type:varchar(20)"`
	AssigneeID *uint
	Assignee   *User `gorm:"foreignKey:AssigneeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	ProjectID  *uint
	Project    *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	CreatedAt  time.Time
}
