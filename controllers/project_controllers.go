package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/harukimz/taskboard-app/models"
	"github.com/harukimz/taskboard-app/realtime"
	"github.com/harukimz/taskboard-app/repository"
	"github.com/harukimz/taskboard-app/utils"
)

type ProjectController struct {
	Store *repository.Store
}

func NewProjectController(store *repository.Store) *ProjectController {
	return &ProjectController{Store: store}
}

// CreateProject -> owned by the caller
func (pc *ProjectController) CreateProject(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var req struct {
		Title       string  `json:"title" binding:"required"`
		Description *string `json:"description"`
		Color       string  `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	project := models.Project{
		Title:       req.Title,
		Description: req.Description,
		Color:       "aqua",
		OwnerID:     userID,
	}
	if req.Color != "" {
		project.Color = req.Color
	}

	if err := pc.Store.CreateProject(&project); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastProjectCreated(project)

	utils.InfoLogger.Printf("Project %d created by user %d", project.ID, userID)
	utils.RespondJSON(c, http.StatusCreated, "Project created", project)
}

// GetAllProjects -> shared across users
func (pc *ProjectController) GetAllProjects(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	projects, err := pc.Store.ListProjects(skip, limit)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of projects", projects)
}

// GetProjectByID
func (pc *ProjectController) GetProjectByID(c *gin.Context) {
	project, done := pc.loadProject(c)
	if done {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Project detail", project)
}

// UpdateProject -> owner only
func (pc *ProjectController) UpdateProject(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	project, done := pc.loadProject(c)
	if done {
		return
	}

	if project.OwnerID != userID {
		utils.RespondError(c, http.StatusForbidden, errors.New("you do not have permission to update this project"))
		return
	}

	var req struct {
		Title       string  `json:"title" binding:"required"`
		Description *string `json:"description"`
		Color       string  `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	project.Title = req.Title
	project.Description = req.Description
	if req.Color != "" {
		project.Color = req.Color
	}

	if err := pc.Store.UpdateProject(project); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastProjectUpdated(*project)

	utils.RespondJSON(c, http.StatusOK, "Project updated", project)
}

// DeleteProject -> owner only, cascades to tasks and their comments
func (pc *ProjectController) DeleteProject(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	project, done := pc.loadProject(c)
	if done {
		return
	}

	if project.OwnerID != userID {
		utils.RespondError(c, http.StatusForbidden, errors.New("you do not have permission to delete this project"))
		return
	}

	if err := pc.Store.DeleteProject(project.ID); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastProjectDeleted(project.ID)

	utils.InfoLogger.Printf("Project %d deleted by user %d", project.ID, userID)
	utils.RespondJSON(c, http.StatusOK, "Project deleted", gin.H{"id": project.ID})
}

// GetProjectTasks -> tasks inside one project
func (pc *ProjectController) GetProjectTasks(c *gin.Context) {
	project, done := pc.loadProject(c)
	if done {
		return
	}

	tasks, err := pc.Store.ListProjectTasks(project.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Project tasks", tasks)
}

// loadProject resolves :project_id, responding 400/404/500 itself. The bool
// result reports whether a response was already written.
func (pc *ProjectController) loadProject(c *gin.Context) (*models.Project, bool) {
	idStr := c.Param("project_id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid project id"))
		return nil, true
	}

	project, err := pc.Store.GetProject(uint(id))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return nil, true
	}
	if project == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("project not found"))
		return nil, true
	}
	return project, false
}
