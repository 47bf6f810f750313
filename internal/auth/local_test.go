package auth

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/arsalankhan8/Cigul-Recruitment/internal/database"
	"github.com/arsalankhan8/Cigul-Recruitment/internal/utilities"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var teardown func(context.Context) error
	teardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if teardown != nil {
		_ = teardown(ctx)
	}
}

func TestLocalLogin_success(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	rec, resp, err := utilities.SimulateAPICall(handler.LocalLoginHandler, "/login", http.MethodPost, map[string]string{
		"username": database.TestAdminUser.Username,
		"password": database.TestSeedPassword,
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, resp["access_token"])

	user := resp["user"].(map[string]interface{})
	assert.Equal(t, database.TestAdminUser.Username, user["username"])
	// the password hash never leaves the server
	assert.NotContains(t, user, "password")

	// the issued token verifies and carries the operator id
	token, err := ValidatedToken(resp["access_token"].(string))
	assert.NoError(t, err)
	assert.True(t, token.Valid)
}

func TestLocalLogin_badCredentials(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	rec, wrongPwd, err := utilities.SimulateAPICall(handler.LocalLoginHandler, "/login", http.MethodPost, map[string]string{
		"username": database.TestAdminUser.Username,
		"password": "WrongPass!",
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, unknownUser, err := utilities.SimulateAPICall(handler.LocalLoginHandler, "/login", http.MethodPost, map[string]string{
		"username": "who_is_this",
		"password": database.TestSeedPassword,
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// unknown usernames and wrong passwords are indistinguishable
	assert.Equal(t, wrongPwd["error"], unknownUser["error"])
}

func TestLocalLogin_missingFields(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	rec, _, err := utilities.SimulateAPICall(handler.LocalLoginHandler, "/login", http.MethodPost, map[string]string{
		"username": database.TestAdminUser.Username,
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
