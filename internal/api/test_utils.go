package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/bradleyburgess/diabeateeze/internal/database"
	"github.com/bradleyburgess/diabeateeze/internal/middleware"
	"github.com/bradleyburgess/diabeateeze/internal/models"
	"github.com/bradleyburgess/diabeateeze/internal/service"
)

// TestEnv holds the database, services and router used by handler tests.
// The database is a throwaway SQLite file so tests run without Docker.
type TestEnv struct {
	DB          *gorm.DB
	AuthService *service.AuthService
	Router      *gin.Engine
}

// SetupTestEnv creates a migrated database and a fully wired router.
func SetupTestEnv(t *testing.T) *TestEnv {
	gin.SetMode(gin.TestMode)

	db, err := database.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	authService := service.NewAuthService(db, "test-secret")

	authHandler := NewAuthHandler(authService)
	glucoseHandler := NewGlucoseHandler(service.NewGlucoseService(db))
	insulinService := service.NewInsulinService(db)
	insulinHandler := NewInsulinHandler(insulinService)
	mealHandler := NewMealHandler(service.NewMealService(db))
	scaleService := service.NewScaleService(db)
	scaleHandler := NewScaleHandler(scaleService)
	activityHandler := NewActivityHandler(service.NewActivityService(db), insulinService, scaleService)

	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	activityHandler.RegisterRoutes(protected)
	glucoseHandler.RegisterRoutes(protected)
	insulinHandler.RegisterRoutes(protected)
	mealHandler.RegisterRoutes(protected)
	scaleHandler.RegisterRoutes(protected)

	return &TestEnv{DB: db, AuthService: authService, Router: router}
}

// CreateTestUserAndToken creates a user and returns their id and a valid token.
func CreateTestUserAndToken(t *testing.T, env *TestEnv) (uuid.UUID, string) {
	hash, err := bcrypt.GenerateFromPassword([]byte("testpassword123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		Name:         "Test User",
		Email:        fmt.Sprintf("testuser+%s@example.com", uuid.NewString()),
		PasswordHash: string(hash),
	}
	if err := env.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	token, err := env.AuthService.GenerateToken(user.ID, user.Email)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return user.ID, token
}

// PerformRequest sends a request through the router, attaching the token when
// one is given.
func PerformRequest(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	router.ServeHTTP(w, req)
	return w
}
