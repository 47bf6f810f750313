package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/arsalankhan8/Cigul-Recruitment/internal/auth"
	"github.com/arsalankhan8/Cigul-Recruitment/internal/database"
	"github.com/arsalankhan8/Cigul-Recruitment/internal/model"
	"github.com/arsalankhan8/Cigul-Recruitment/internal/testutil"
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

func guardedEngine() *gin.Engine {
	r := gin.New()
	r.GET("/protected", RequireAuth(testDB), CheckRole(model.RoleAdmin), func(c *gin.Context) {
		user, _ := utilities.ExtractUser(c)
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})
	return r
}

func TestRequireAuth_validToken(t *testing.T) {
	r := guardedEngine()

	token, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/protected", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.TestAdminUser.Username, resp["username"])
}

func TestRequireAuth_missingHeader(t *testing.T) {
	r := guardedEngine()

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequireAuth_garbageToken(t *testing.T) {
	r := guardedEngine()

	rec, _ := testutil.MakeJSONRequest(nil, "garbage", r, "/protected", http.MethodGet)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_expiredToken(t *testing.T) {
	r := guardedEngine()

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    auth.JwtIssuer,
		Subject:   database.TestAdminUser.ID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
	})
	signed, err := expired.SignedString([]byte(auth.SECRET_KEY))
	assert.NoError(t, err)

	rec, resp := testutil.MakeJSONRequest(nil, signed, r, "/protected", http.MethodGet)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Access token expired", resp["error"])
}

func TestRequireAuth_wrongIssuer(t *testing.T) {
	r := guardedEngine()

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Subject:   database.TestAdminUser.ID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := foreign.SignedString([]byte(auth.SECRET_KEY))
	assert.NoError(t, err)

	rec, _ := testutil.MakeJSONRequest(nil, signed, r, "/protected", http.MethodGet)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_unknownSubject(t *testing.T) {
	r := guardedEngine()

	// a well-formed token whose operator no longer exists
	signed, err := auth.GenerateToken(uuid.New())
	assert.NoError(t, err)

	rec, _ := testutil.MakeJSONRequest(nil, signed, r, "/protected", http.MethodGet)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckRole_forbidsNonAdmin(t *testing.T) {
	r := guardedEngine()

	hashed, err := utilities.HashPassword("ViewerPass1!")
	assert.NoError(t, err)
	viewer := model.User{
		Username: "viewer_" + uuid.NewString()[:8],
		Password: hashed,
		Role:     "viewer",
	}
	assert.NoError(t, testDB.Create(&viewer).Error)

	token, err := auth.GetAccessToken(t, testDB, viewer.Username, "ViewerPass1!")
	assert.NoError(t, err)

	rec, _ := testutil.MakeJSONRequest(nil, token, r, "/protected", http.MethodGet)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
