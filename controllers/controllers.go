package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/harukimz/taskboard-app/models"
	"github.com/harukimz/taskboard-app/repository"
)

var errUnauthenticated = errors.New("user id not found in context")

// currentUserID reads the authenticated user's id set by the auth middleware.
func currentUserID(c *gin.Context) (uint, error) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, errUnauthenticated
	}
	id, ok := v.(uint)
	if !ok {
		return 0, errUnauthenticated
	}
	return id, nil
}

// currentUser loads the full user record for the authenticated caller.
func currentUser(c *gin.Context, store *repository.Store) (*models.User, error) {
	id, err := currentUserID(c)
	if err != nil {
		return nil, err
	}
	user, err := store.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errUnauthenticated
	}
	return user, nil
}
