package services

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/harukimz/taskboard-app/models"
	"github.com/harukimz/taskboard-app/repository"
	"github.com/harukimz/taskboard-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

func setupScanner(t *testing.T) (*DueDateScanner, *repository.Store, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.Comment{},
		&models.Notification{},
	))
	store := repository.NewStore(db)
	return NewDueDateScanner(store), store, db
}

func seedScanUser(t *testing.T, store *repository.Store, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, Name: email, HashedPassword: "x", IsActive: true}
	require.NoError(t, store.CreateUser(u))
	return u
}

func dueTask(t *testing.T, store *repository.Store, title, due string, assignee *uint, status string) *models.Task {
	t.Helper()
	task := &models.Task{
		Title:      title,
		Status:     status,
		Priority:   models.TaskPriorityMedium,
		DueDate:    &due,
		AssigneeID: assignee,
	}
	require.NoError(t, store.CreateTask(task))
	return task
}

func TestScannerCreatesAlertsAtEachThreshold(t *testing.T) {
	scanner, store, _ := setupScanner(t)
	user := seedScanUser(t, store, "b@example.com")
	today := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	dueTask(t, store, "due today", "2024-06-10", &user.ID, models.TaskStatusTodo)
	dueTask(t, store, "due tomorrow", "2024-06-11", &user.ID, models.TaskStatusTodo)
	dueTask(t, store, "due in three", "2024-06-13", &user.ID, models.TaskStatusInProgress)
	// Outside every threshold.
	dueTask(t, store, "due in two", "2024-06-12", &user.ID, models.TaskStatusTodo)

	created, checked, err := scanner.Run(today)
	require.NoError(t, err)
	assert.Equal(t, 3, created)
	assert.Equal(t, []string{"2024-06-13", "2024-06-11", "2024-06-10"}, checked)

	notifs, err := store.ListNotifications(user.ID, false)
	require.NoError(t, err)
	require.Len(t, notifs, 3)

	messages := make([]string, 0, len(notifs))
	for _, n := range notifs {
		assert.Equal(t, models.NotificationDueSoon, n.Type)
		messages = append(messages, n.Message)
	}
	assert.Contains(t, messages, `"due today" is due today!`)
	assert.Contains(t, messages, `"due tomorrow" is due tomorrow`)
	assert.Contains(t, messages, `"due in three" is due in 3 days`)
}

func TestScannerIsIdempotentWithinADay(t *testing.T) {
	scanner, store, _ := setupScanner(t)
	user := seedScanUser(t, store, "b@example.com")
	today := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	dueTask(t, store, "report", "2024-06-11", &user.ID, models.TaskStatusTodo)

	created, _, err := scanner.Run(today)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	// Second sweep the same day, later in the afternoon.
	created, _, err = scanner.Run(today.Add(7 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	notifs, err := store.ListNotifications(user.ID, false)
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t, `"report" is due tomorrow`, notifs[0].Message)
}

func TestScannerSkipsDoneAndUnassigned(t *testing.T) {
	scanner, store, _ := setupScanner(t)
	user := seedScanUser(t, store, "b@example.com")
	today := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	dueTask(t, store, "finished", "2024-06-10", &user.ID, models.TaskStatusDone)
	dueTask(t, store, "orphan", "2024-06-10", nil, models.TaskStatusTodo)

	created, _, err := scanner.Run(today)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	notifs, err := store.ListNotifications(user.ID, false)
	require.NoError(t, err)
	assert.Empty(t, notifs)
}

func TestScannerAlertsAgainNextDay(t *testing.T) {
	scanner, store, db := setupScanner(t)
	user := seedScanUser(t, store, "b@example.com")

	dueTask(t, store, "report", "2024-06-11", &user.ID, models.TaskStatusTodo)

	day1 := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	created, _, err := scanner.Run(day1)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	// Age yesterday's alert so it falls outside the next day's dedup window.
	require.NoError(t, db.Model(&models.Notification{}).
		Where("user_id = ?", user.ID).
		Update("created_at", day1.Add(-2*time.Hour)).Error)

	day2 := day1.AddDate(0, 0, 1)
	created, _, err = scanner.Run(day2)
	require.NoError(t, err)
	assert.Equal(t, 1, created, "the due-today alert should fire on the new day")
}
