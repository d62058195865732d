package controllers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/harukimz/taskboard-app/models"
	"github.com/harukimz/taskboard-app/repository"
	"github.com/harukimz/taskboard-app/utils"
	"golang.org/x/crypto/bcrypt"
)

type UserController struct {
	Store *repository.Store
}

func NewUserController(store *repository.Store) *UserController {
	return &UserController{Store: store}
}

func avatarDir() string {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "uploads/avatars"
	}
	return dir
}

// Register a new user
func (uc *UserController) Register(c *gin.Context) {
	type request struct {
		Email    string `json:"email" binding:"required,email"`
		Name     string `json:"name" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	user := models.User{
		Email:          req.Email,
		Name:           req.Name,
		HashedPassword: string(hashed),
		IsActive:       true,
	}

	if err := uc.Store.CreateUser(&user); err != nil {
		if repository.IsDuplicate(err) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("this email address is already registered"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New user registered: %s", user.Email)

	utils.RespondJSON(c, http.StatusCreated, "User registered", gin.H{
		"user_id": user.ID,
	})
}

// Login -> return JWT
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	user, err := uc.Store.GetUserByEmail(input.Email)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if user == nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
	})
}

// GetProfile -> the user behind the JWT
func (uc *UserController) GetProfile(c *gin.Context) {
	user, err := currentUser(c, uc.Store)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", gin.H{
		"id":     user.ID,
		"email":  user.Email,
		"name":   user.Name,
		"avatar": user.Avatar,
	})
}

// UpdateProfile -> name/email/password, all optional
func (uc *UserController) UpdateProfile(c *gin.Context) {
	user, err := currentUser(c, uc.Store)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil && *req.Name != "" {
		user.Name = *req.Name
	}
	if req.Email != nil && *req.Email != "" {
		existing, err := uc.Store.GetUserByEmail(*req.Email)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		if existing != nil && existing.ID != user.ID {
			utils.RespondError(c, http.StatusBadRequest, errors.New("this email address is already in use"))
			return
		}
		user.Email = *req.Email
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		user.HashedPassword = string(hashed)
	}

	if err := uc.Store.UpdateUser(user); err != nil {
		if repository.IsDuplicate(err) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("this email address is already in use"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile updated", gin.H{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
	})
}

// GetAllUsers -> for assignee pickers
func (uc *UserController) GetAllUsers(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	users, err := uc.Store.ListUsers(skip, limit)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All users", users)
}

// DeleteUser -> remove a user record
func (uc *UserController) DeleteUser(c *gin.Context) {
	idStr := c.Param("user_id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid user id"))
		return
	}

	user, err := uc.Store.GetUserByID(uint(id))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if user == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}

	if err := uc.Store.DeleteUser(user.ID); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("User %d deleted", user.ID)
	utils.RespondJSON(c, http.StatusOK, "User deleted", gin.H{"user_id": user.ID})
}

// UploadAvatar -> stores the image under a fresh uuid filename
func (uc *UserController) UploadAvatar(c *gin.Context) {
	user, err := currentUser(c, uc.Store)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		utils.RespondError(c, http.StatusBadRequest, errors.New("only JPEG, PNG, GIF or WEBP images are allowed"))
		return
	}
	if file.Size > 5*1024*1024 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("file size must be 5MB or less"))
		return
	}

	dir := avatarDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	filename := uuid.NewString() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Replace the previous avatar file, if any.
	if user.Avatar != nil {
		os.Remove(filepath.Join(dir, *user.Avatar))
	}

	user.Avatar = &filename
	if err := uc.Store.UpdateUser(user); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Avatar uploaded", gin.H{"avatar": filename})
}

// DeleteAvatar -> clears the avatar reference and removes the file
func (uc *UserController) DeleteAvatar(c *gin.Context) {
	user, err := currentUser(c, uc.Store)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	if user.Avatar == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("no avatar set"))
		return
	}

	os.Remove(filepath.Join(avatarDir(), *user.Avatar))

	user.Avatar = nil
	if err := uc.Store.UpdateUser(user); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Avatar removed", nil)
}

// GetAvatar -> serves a stored avatar image
func (uc *UserController) GetAvatar(c *gin.Context) {
	filename := filepath.Base(c.Param("filename"))
	path := filepath.Join(avatarDir(), filename)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		utils.RespondError(c, http.StatusNotFound, errors.New("image not found"))
		return
	}
	c.File(path)
}
