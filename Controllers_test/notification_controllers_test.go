package Controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harukimz/taskboard-app/models"
)

func TestNotificationEndpoints(t *testing.T) {
	db, store := setupTestDB(t)
	r := newRouter(db)
	alice := seedUser(t, store, "alice@example.com", "Alice")
	bob := seedUser(t, store, "bob@example.com", "Bob")

	for i := 0; i < 2; i++ {
		require.NoError(t, store.CreateNotification(&models.Notification{
			UserID:  alice.ID,
			Type:    models.NotificationComment,
			Message: fmt.Sprintf("message %d", i),
		}))
	}
	require.NoError(t, store.CreateNotification(&models.Notification{
		UserID:  bob.ID,
		Type:    models.NotificationAssigned,
		Message: "for bob",
	}))

	// Alice sees only her own.
	w := doJSON(t, r, "GET", "/api/notifications", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "for bob")

	w = doJSON(t, r, "GET", "/api/notifications/unread-count", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decodeData(t, w)["count"])

	// Mark one read.
	var listResp struct {
		Data []models.Notification `json:"data"`
	}
	w = doJSON(t, r, "GET", "/api/notifications", alice, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	require.NotEmpty(t, listResp.Data)

	w = doJSON(t, r, "PUT", fmt.Sprintf("/api/notifications/%d/read", listResp.Data[0].ID), alice, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "GET", "/api/notifications/unread-count", alice, nil)
	assert.Equal(t, float64(1), decodeData(t, w)["count"])

	// Alice cannot read Bob's notification.
	bobNotifs, err := store.ListNotifications(bob.ID, false)
	require.NoError(t, err)
	require.Len(t, bobNotifs, 1)
	w = doJSON(t, r, "PUT", fmt.Sprintf("/api/notifications/%d/read", bobNotifs[0].ID), alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Mark all read.
	w = doJSON(t, r, "PUT", "/api/notifications/read-all", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "GET", "/api/notifications/unread-count", alice, nil)
	assert.Equal(t, float64(0), decodeData(t, w)["count"])

	// Filter to unread only.
	w = doJSON(t, r, "GET", "/api/notifications?unread_only=true", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var unread struct {
		Data []models.Notification `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &unread))
	assert.Empty(t, unread.Data)
}

func TestCheckDueDatesEndpointIsIdempotent(t *testing.T) {
	db, store := setupTestDB(t)
	r := newRouter(db)
	alice := seedUser(t, store, "alice@example.com", "Alice")
	bob := seedUser(t, store, "bob@example.com", "Bob")

	// Task T assigned to Bob, due tomorrow, still open.
	due := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	task := &models.Task{Title: "Quarterly report", Status: models.TaskStatusTodo, Priority: models.TaskPriorityMedium, DueDate: &due, AssigneeID: &bob.ID}
	require.NoError(t, store.CreateTask(task))

	w := doJSON(t, r, "GET", "/api/notifications/check-due-dates", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeData(t, w)["created"])

	notifs, err := store.ListNotifications(bob.ID, false)
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotificationDueSoon, notifs[0].Type)
	assert.Equal(t, `"Quarterly report" is due tomorrow`, notifs[0].Message)

	// Triggering the sweep again the same day creates nothing new.
	w = doJSON(t, r, "GET", "/api/notifications/check-due-dates", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeData(t, w)["created"])

	notifs, err = store.ListNotifications(bob.ID, false)
	require.NoError(t, err)
	assert.Len(t, notifs, 1)
}
