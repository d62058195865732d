package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/harukimz/taskboard-app/models"
	"github.com/harukimz/taskboard-app/realtime"
	"github.com/harukimz/taskboard-app/repository"
	"github.com/harukimz/taskboard-app/services"
	"github.com/harukimz/taskboard-app/utils"
)

type CommentController struct {
	Store *repository.Store
}

func NewCommentController(store *repository.Store) *CommentController {
	return &CommentController{Store: store}
}

// GetTaskComments -> newest first
func (cc *CommentController) GetTaskComments(c *gin.Context) {
	task, done := cc.loadTask(c)
	if done {
		return
	}

	comments, err := cc.Store.ListTaskComments(task.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Task comments", comments)
}

// CreateComment -> may notify the task's assignee in the same transaction
func (cc *CommentController) CreateComment(c *gin.Context) {
	actor, err := currentUser(c, cc.Store)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	task, done := cc.loadTask(c)
	if done {
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	comment := models.Comment{
		Content: req.Content,
		TaskID:  task.ID,
		UserID:  actor.ID,
	}

	notif := services.CommentCreated(task, &comment, actor)
	if err := cc.Store.CreateCommentWithNotification(&comment, notif); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastCommentCreated(comment)

	utils.InfoLogger.Printf("Comment %d on task %d by user %d", comment.ID, task.ID, actor.ID)
	utils.RespondJSON(c, http.StatusCreated, "Comment created", comment)
}

// DeleteComment -> author only
func (cc *CommentController) DeleteComment(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	task, done := cc.loadTask(c)
	if done {
		return
	}

	commentIDStr := c.Param("comment_id")
	commentID, err := strconv.Atoi(commentIDStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid comment id"))
		return
	}

	comment, err := cc.Store.GetComment(task.ID, uint(commentID))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if comment == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("comment not found"))
		return
	}

	if comment.UserID != userID {
		utils.RespondError(c, http.StatusForbidden, errors.New("you do not have permission to delete this comment"))
		return
	}

	if err := cc.Store.DeleteComment(comment.ID); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastCommentDeleted(comment.ID, task.ID)

	utils.RespondJSON(c, http.StatusOK, "Comment deleted", gin.H{
		"id":      comment.ID,
		"task_id": task.ID,
	})
}

func (cc *CommentController) loadTask(c *gin.Context) (*models.Task, bool) {
	idStr := c.Param("task_id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid task id"))
		return nil, true
	}

	task, err := cc.Store.GetTask(uint(id))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return nil, true
	}
	if task == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("task not found"))
		return nil, true
	}
	return task, false
}
