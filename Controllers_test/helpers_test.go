package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/harukimz/taskboard-app/models"
	"github.com/harukimz/taskboard-app/repository"
	"github.com/harukimz/taskboard-app/router"
	"github.com/harukimz/taskboard-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) (*gorm.DB, *repository.Store) {
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
	return db, repository.NewStore(db)
}

func seedUser(t *testing.T, store *repository.Store, email, name string) *models.User {
	t.Helper()
	user := &models.User{
		Email:          email,
		Name:           name,
		HashedPassword: "not-a-real-hash",
		IsActive:       true,
	}
	require.NoError(t, store.CreateUser(user))
	return user
}

// doJSON performs an authenticated JSON request against the router.
func doJSON(t *testing.T, r *gin.Engine, method, url string, user *models.User, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		token, err := utils.GenerateToken(user.ID)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, _ := resp["data"].(map[string]interface{})
	return data
}

func newRouter(db *gorm.DB) *gin.Engine {
	return router.SetupRouter(db)
}
