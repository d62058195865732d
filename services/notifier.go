package services

import (
	"fmt"

	"github.com/harukimz/taskboard-app/models"
)

const commentExcerptLimit = 50

// TaskAssigned derives the notification for a task update that may have
// changed the assignee. Returns nil when the task is unassigned, the assignee
// did not change, or the actor assigned the task to themselves.
func TaskAssigned(task *models.Task, oldAssigneeID *uint, actor *models.User) *models.Notification {
	if task.AssigneeID == nil {
		return nil
	}
	if oldAssigneeID != nil && *oldAssigneeID == *task.AssigneeID {
		return nil
	}
	if *task.AssigneeID == actor.ID {
		return nil
	}
	return &models.Notification{
		UserID:  *task.AssigneeID,
		TaskID:  &task.ID,
		Type:    models.NotificationAssigned,
		Message: fmt.Sprintf("%s assigned \"%s\" to you", actor.Name, task.Title),
	}
}

// CommentCreated derives the notification for a new comment. Returns nil when
// the task has no assignee or the assignee wrote the comment themselves.
func CommentCreated(task *models.Task, comment *models.Comment, actor *models.User) *models.Notification {
	if task.AssigneeID == nil || *task.AssigneeID == actor.ID {
		return nil
	}
	return &models.Notification{
		UserID: *task.AssigneeID,
		TaskID: &task.ID,
		Type:   models.NotificationComment,
		Message: fmt.Sprintf("%s commented on \"%s\": %s",
			actor.Name, task.Title, excerpt(comment.Content, commentExcerptLimit)),
	}
}

// DueSoon derives the reminder for a task whose due date is daysBefore days
// away. Deduplication against alerts already created today is the caller's
// job, not re-derived here.
func DueSoon(task *models.Task, daysBefore int) *models.Notification {
	if task.AssigneeID == nil {
		return nil
	}

	var message string
	switch {
	case daysBefore == 0:
		message = fmt.Sprintf("\"%s\" is due today!", task.Title)
	case daysBefore == 1:
		message = fmt.Sprintf("\"%s\" is due tomorrow", task.Title)
	default:
		message = fmt.Sprintf("\"%s\" is due in %d days", task.Title, daysBefore)
	}

	return &models.Notification{
		UserID:  *task.AssigneeID,
		TaskID:  &task.ID,
		Type:    models.NotificationDueSoon,
		Message: message,
	}
}

// excerpt caps s at max characters, appending an ellipsis marker only when
// something was cut. Counts runes so multi-byte content is not split.
func excerpt(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
