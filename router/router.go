package router

import (
	"github.com/gin-gonic/gin"
	"github.com/harukimz/taskboard-app/controllers"
	"github.com/harukimz/taskboard-app/middlewares"
	"github.com/harukimz/taskboard-app/repository"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	store := repository.NewStore(db)

	userCtrl := controllers.NewUserController(store)
	projectCtrl := controllers.NewProjectController(store)
	taskCtrl := controllers.NewTaskController(store)
	commentCtrl := controllers.NewCommentController(store)
	notifCtrl := controllers.NewNotificationController(store)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	public := r.Group("/api")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Avatars are public once uploaded; the filename is the only secret.
	r.GET("/api/avatars/:filename", userCtrl.GetAvatar)

	// Live event stream (token via query, browsers cannot set ws headers)
	r.GET("/ws", middlewares.WebSocketAuthMiddleware(), controllers.WSHandler)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	{
		api.GET("/users", userCtrl.GetAllUsers)
		api.GET("/users/me", userCtrl.GetProfile)
		api.DELETE("/users/:user_id", userCtrl.DeleteUser)

		api.GET("/profile", userCtrl.GetProfile)
		api.PUT("/profile", userCtrl.UpdateProfile)
		api.POST("/profile/avatar", userCtrl.UploadAvatar)
		api.DELETE("/profile/avatar", userCtrl.DeleteAvatar)

		api.POST("/projects", projectCtrl.CreateProject)
		api.GET("/projects", projectCtrl.GetAllProjects)
		api.GET("/projects/:project_id", projectCtrl.GetProjectByID)
		api.PUT("/projects/:project_id", projectCtrl.UpdateProject)
		api.DELETE("/projects/:project_id", projectCtrl.DeleteProject)
		api.GET("/projects/:project_id/tasks", projectCtrl.GetProjectTasks)

		api.GET("/tasks/search", taskCtrl.SearchTasks)
		api.POST("/tasks", taskCtrl.CreateTask)
		api.GET("/tasks", taskCtrl.GetAllTasks)
		api.GET("/tasks/:task_id", taskCtrl.GetTaskByID)
		api.PUT("/tasks/:task_id", taskCtrl.UpdateTask)
		api.DELETE("/tasks/:task_id", taskCtrl.DeleteTask)

		api.GET("/tasks/:task_id/comments", commentCtrl.GetTaskComments)
		api.POST("/tasks/:task_id/comments", commentCtrl.CreateComment)
		api.DELETE("/tasks/:task_id/comments/:comment_id", commentCtrl.DeleteComment)

		api.GET("/notifications", notifCtrl.GetNotifications)
		api.GET("/notifications/unread-count", notifCtrl.GetUnreadCount)
		api.PUT("/notifications/read-all", notifCtrl.MarkAllAsRead)
		api.PUT("/notifications/:notif_id/read", notifCtrl.MarkAsRead)
		api.GET("/notifications/check-due-dates", notifCtrl.CheckDueDates)
	}

	return r
}
