package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backend/internal/database"
	"backend/internal/middleware"
	"backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "unit-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

// setupGuard wires the permission guard against a fresh in-memory store and
// returns a router with one protected route plus a user seeding helper.
func setupGuard(t *testing.T, required model.Permission) (*gin.Engine, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	middleware.InitAuthMiddleware(db)
	middleware.ClearUserCache(0)
	t.Cleanup(func() { middleware.ClearUserCache(0) })

	router := gin.New()
	router.DELETE("/protected", middleware.RequirePermission(required), func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})
	return router, db
}

func seedUser(t *testing.T, db *gorm.DB, permissions model.Permission, active bool) *model.User {
	t.Helper()
	user := &model.User{
		Email:        "guard@parish.example",
		Username:     "guard",
		PasswordHash: "x",
		IsActive:     active,
		Roles:        []model.Role{{Name: "Tester", Permissions: permissions}},
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func signToken(t *testing.T, userID uint) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doDelete(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequirePermission_NoToken(t *testing.T) {
	router, _ := setupGuard(t, model.PermissionDelete)

	rec := doDelete(router, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequirePermission_MalformedToken(t *testing.T) {
	router, _ := setupGuard(t, model.PermissionDelete)

	rec := doDelete(router, "not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequirePermission_WrongSecret(t *testing.T) {
	router, db := setupGuard(t, model.PermissionDelete)
	user := seedUser(t, db, model.PermissionDelete, true)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := forged.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	rec := doDelete(router, signed)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequirePermission_InsufficientPermission(t *testing.T) {
	router, db := setupGuard(t, model.PermissionDelete)
	user := seedUser(t, db, model.PermissionView, true)

	rec := doDelete(router, signToken(t, user.ID))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequirePermission_Granted(t *testing.T) {
	router, db := setupGuard(t, model.PermissionDelete)
	user := seedUser(t, db, model.PermissionView|model.PermissionDelete, true)

	rec := doDelete(router, signToken(t, user.ID))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "guard")
}

func TestRequirePermission_InactiveUser(t *testing.T) {
	router, db := setupGuard(t, model.PermissionDelete)
	user := seedUser(t, db, model.PermissionDelete, false)

	rec := doDelete(router, signToken(t, user.ID))
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "disabled accounts fail authentication, not authorization")
}

func TestRequirePermission_UnknownUser(t *testing.T) {
	router, _ := setupGuard(t, model.PermissionDelete)

	rec := doDelete(router, signToken(t, 9999))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_NoPermissionNeeded(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	middleware.InitAuthMiddleware(db)
	middleware.ClearUserCache(0)
	t.Cleanup(func() { middleware.ClearUserCache(0) })

	// A valid user with no roles at all can still reach RequireAuth routes
	user := &model.User{Email: "norole@parish.example", Username: "norole", PasswordHash: "x", IsActive: true}
	require.NoError(t, db.Create(user).Error)

	router := gin.New()
	router.GET("/me", middleware.RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, user.ID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestParseUserID(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	id, err := middleware.ParseUserID(signToken(t, 42), []byte(testSecret))
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	_, err = middleware.ParseUserID("garbage", []byte(testSecret))
	assert.Error(t, err)
}
