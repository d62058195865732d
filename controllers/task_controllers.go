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

type TaskController struct {
	Store *repository.Store
}

func NewTaskController(store *repository.Store) *TaskController {
	return &TaskController{Store: store}
}

// CreateTask -> assignee defaults to the creator when omitted
func (tc *TaskController) CreateTask(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var req struct {
		Title       string  `json:"title" binding:"required"`
		Description *string `json:"description"`
		Status      string  `json:"status"`
		Priority    string  `json:"priority"`
		DueDate     *string `json:"due_date"`
		StartTime   *string `json:"start_time"`
		EndTime     *string `json:"end_time"`
		AssigneeID  *uint   `json:"assignee_id"`
		ProjectID   *uint   `json:"project_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatusTodo,
		Priority:    models.TaskPriorityMedium,
		DueDate:     req.DueDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		AssigneeID:  req.AssigneeID,
		ProjectID:   req.ProjectID,
	}
	if req.Status != "" {
		task.Status = req.Status
	}
	if req.Priority != "" {
		task.Priority = req.Priority
	}
	if task.AssigneeID == nil {
		task.AssigneeID = &userID
	}

	if err := tc.Store.CreateTask(&task); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastTaskCreated(task)

	utils.InfoLogger.Printf("Task %d created by user %d", task.ID, userID)
	utils.RespondJSON(c, http.StatusCreated, "Task created", task)
}

// GetAllTasks -> optionally only the caller's tasks
func (tc *TaskController) GetAllTasks(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	filter := repository.TaskFilter{Skip: skip, Limit: limit}
	if c.Query("my_tasks") == "true" {
		filter.AssigneeID = &userID
	}

	tasks, err := tc.Store.ListTasks(filter)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tasks", tasks)
}

// SearchTasks -> free-text over title and description
func (tc *TaskController) SearchTasks(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("query parameter q is required"))
		return
	}

	tasks, err := tc.Store.ListTasks(repository.TaskFilter{Search: q})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Search results", tasks)
}

// GetTaskByID
func (tc *TaskController) GetTaskByID(c *gin.Context) {
	task, done := tc.loadTask(c)
	if done {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Task detail", task)
}

// UpdateTask -> partial update; a changed assignee may notify the new one
func (tc *TaskController) UpdateTask(c *gin.Context) {
	actor, err := currentUser(c, tc.Store)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	task, done := tc.loadTask(c)
	if done {
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
		Priority    *string `json:"priority"`
		DueDate     *string `json:"due_date"`
		StartTime   *string `json:"start_time"`
		EndTime     *string `json:"end_time"`
		AssigneeID  *uint   `json:"assignee_id"`
		ProjectID   *uint   `json:"project_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	oldAssigneeID := task.AssigneeID

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.StartTime != nil {
		task.StartTime = req.StartTime
	}
	if req.EndTime != nil {
		task.EndTime = req.EndTime
	}
	if req.AssigneeID != nil {
		task.AssigneeID = req.AssigneeID
	}
	if req.ProjectID != nil {
		task.ProjectID = req.ProjectID
	}

	// Notification (if any) commits in the same transaction as the update.
	notif := services.TaskAssigned(task, oldAssigneeID, actor)
	if err := tc.Store.UpdateTaskWithNotification(task, notif); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastTaskUpdated(*task)

	utils.RespondJSON(c, http.StatusOK, "Task updated", task)
}

// DeleteTask -> cascades to the task's comments
func (tc *TaskController) DeleteTask(c *gin.Context) {
	task, done := tc.loadTask(c)
	if done {
		return
	}

	if err := tc.Store.DeleteTask(task.ID); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastTaskDeleted(task.ID)

	utils.InfoLogger.Printf("Task %d deleted", task.ID)
	utils.RespondJSON(c, http.StatusOK, "Task deleted", gin.H{"id": task.ID})
}

func (tc *TaskController) loadTask(c *gin.Context) (*models.Task, bool) {
	idStr := c.Param("task_id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid task id"))
		return nil, true
	}

	task, err := tc.Store.GetTask(uint(id))
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
