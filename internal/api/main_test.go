package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"contact_api/internal/db"
	"contact_api/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTest returns a router backed by a fresh in-memory database
func setupTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// One connection, so every query sees the same in-memory database
	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(database))
	return NewRouter(database, nil), database
}

// doRequest performs one request against the router. An empty token leaves
// the Authorization header unset.
func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a response body into a generic map
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// registerAndLogin creates a user through the API and returns a session token
func registerAndLogin(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/api/users", "", gin.H{
		"username": username,
		"password": password,
		"name":     "Test " + username,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/users/login", "", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code)
	token, ok := decodeBody(t, w)["data"].(map[string]any)["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

// seedContacts inserts n contacts for username directly into the database
// and returns their ids. Contacts are numbered 0..n-1, so a "First1" name
// filter against 15 rows matches exactly six (First1, First10..First14).
func seedContacts(t *testing.T, database *gorm.DB, username string, n int) []uint {
	t.Helper()
	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		contact := domain.Contact{
			Username:  username,
			FirstName: fmt.Sprintf("First%d", i),
			LastName:  fmt.Sprintf("Last%d", i),
			Email:     fmt.Sprintf("contact%d@example.com", i),
			Phone:     fmt.Sprintf("08090000%02d", i),
		}
		require.NoError(t, database.Create(&contact).Error)
		ids = append(ids, contact.ID)
	}
	return ids
}
