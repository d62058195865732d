package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harukimz/taskboard-app/repository"
	"github.com/harukimz/taskboard-app/services"
	"github.com/harukimz/taskboard-app/utils"
)

type NotificationController struct {
	Store   *repository.Store
	Scanner *services.DueDateScanner
}

func NewNotificationController(store *repository.Store) *NotificationController {
	return &NotificationController{
		Store:   store,
		Scanner: services.NewDueDateScanner(store),
	}
}

// GetNotifications -> the caller's notifications, newest first, capped at 50
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	unreadOnly := c.Query("unread_only") == "true"
	notifs, err := nc.Store.ListNotifications(userID, unreadOnly)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notifications", notifs)
}

// GetUnreadCount
func (nc *NotificationController) GetUnreadCount(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	count, err := nc.Store.UnreadCount(userID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Unread count", gin.H{"count": count})
}

// MarkAsRead -> flips is_read on one of the caller's notifications
func (nc *NotificationController) MarkAsRead(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	idStr := c.Param("notif_id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid notification id"))
		return
	}

	found, err := nc.Store.MarkNotificationRead(uint(id), userID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if !found {
		utils.RespondError(c, http.StatusNotFound, errors.New("notification not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notification marked as read", nil)
}

// MarkAllAsRead
func (nc *NotificationController) MarkAllAsRead(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	if err := nc.Store.MarkAllNotificationsRead(userID); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All notifications marked as read", nil)
}

// CheckDueDates -> triggers one due-date sweep; safe to call repeatedly
func (nc *NotificationController) CheckDueDates(c *gin.Context) {
	created, checked, err := nc.Scanner.Run(time.Now())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if created > 0 {
		utils.InfoLogger.Printf("Due-date sweep created %d notification(s)", created)
	}
	utils.RespondJSON(c, http.StatusOK, "Due dates checked", gin.H{
		"created":       created,
		"checked_dates": checked,
	})
}
