package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"backend/internal/model"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// Context keys set by the guard for downstream handlers
const (
	ContextUserIDKey = "userID"
	ContextUserKey   = "currentUser"
)

func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: JWT_SECRET environment variable is required in production mode")
		}
		secret = "default_super_secret_key" // development fallback only
	}
	return []byte(secret)
}

// SetTokenCookies sets access_token and refresh_token as HttpOnly cookies
func SetTokenCookies(c *gin.Context, accessToken, refreshToken string) {
	sameSite := http.SameSiteLaxMode
	secure := false
	if os.Getenv("GIN_MODE") == "release" {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	c.SetCookie("access_token", accessToken, 3600*24, "/", "", secure, true)
	c.SetCookie("refresh_token", refreshToken, 3600*24*7, "/", "", secure, true)
}

// ClearTokenCookies removes access_token and refresh_token cookies
func ClearTokenCookies(c *gin.Context) {
	sameSite := http.SameSiteLaxMode
	secure := false
	if os.Getenv("GIN_MODE") == "release" {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	c.SetCookie("access_token", "", -1, "/", "", secure, true)
	c.SetCookie("refresh_token", "", -1, "/", "", secure, true)
}

// userCacheEntry stores a user's effective permission bitmask with TTL
type userCacheEntry struct {
	user      *model.User
	expiresAt time.Time
}

var (
	userCache    sync.Map // userID (uint) -> userCacheEntry
	userCacheTTL = 5 * time.Minute
)

// authDB holds the database reference for permission lookups, set via InitAuthMiddleware
var authDB *gorm.DB

// InitAuthMiddleware sets the DB reference used by the permission guard
func InitAuthMiddleware(db *gorm.DB) {
	authDB = db
}

// ClearUserCache drops the cached roles for a user (or all users when id is 0).
// Call after role assignment changes so the guard picks up new permissions.
func ClearUserCache(userID uint) {
	if userID == 0 {
		userCache.Range(func(key, _ interface{}) bool {
			userCache.Delete(key)
			return true
		})
		return
	}
	userCache.Delete(userID)
}

func extractToken(c *gin.Context) (string, error) {
	// Try cookie first, fallback to Authorization header
	if tokenString, err := c.Cookie("access_token"); err == nil && tokenString != "" {
		return tokenString, nil
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("authorization is missing")
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fmt.Errorf("invalid authorization format, expected 'Bearer <token>'")
	}
	return parts[1], nil
}

// ParseUserID validates a signed access token and returns the subject user id
func ParseUserID(tokenString string, secret []byte) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}

	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, fmt.Errorf("subject missing from token")
	}
	return uint(sub), nil
}

// RequirePermission validates the JWT and checks the acting user's roles
// against the required permission flag. Unauthenticated requests are
// rejected with 401 before any lookup detail leaks; authenticated users
// missing the flag get 403. The target handler only runs when the check
// passes.
func RequirePermission(required model.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authenticate(c)
		if !ok {
			return
		}

		if !user.HasPermission(required) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: insufficient permissions"))
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// RequireAuth only checks for a valid, active principal (no permission flag)
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authenticate(c)
		if !ok {
			return
		}
		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// authenticate resolves the acting user or aborts with 401. Failures carry
// no detail about whether the token, the user, or the account state was at
// fault.
func authenticate(c *gin.Context) (*model.User, bool) {
	tokenString, err := extractToken(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Unauthorized"))
		return nil, false
	}

	userID, err := ParseUserID(tokenString, GetJWTSecret())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Unauthorized"))
		return nil, false
	}

	user, err := loadUser(userID)
	if err != nil || !user.IsActive {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Unauthorized"))
		return nil, false
	}
	return user, true
}

// CurrentUser returns the authenticated user set by the guard, if any
func CurrentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok
}

// loadUser returns a cached or DB-fetched user with roles preloaded
func loadUser(userID uint) (*model.User, error) {
	if entry, ok := userCache.Load(userID); ok {
		cached := entry.(userCacheEntry)
		if time.Now().Before(cached.expiresAt) {
			return cached.user, nil
		}
	}

	if authDB == nil {
		return nil, fmt.Errorf("auth middleware not initialized")
	}

	var user model.User
	if err := authDB.Preload("Roles").First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	userCache.Store(userID, userCacheEntry{
		user:      &user,
		expiresAt: time.Now().Add(userCacheTTL),
	})

	return &user, nil
}
