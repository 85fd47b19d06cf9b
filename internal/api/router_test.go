package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gramflow/gramflow/internal/db"
	"github.com/gramflow/gramflow/pkg/config"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	cfg := &config.Config{
		Feed: config.FeedConfig{
			MaxPosts:         500,
			MaxImagesPerPost: 10,
			WriteRateLimit:   60,
			WriteRateWindow:  time.Minute,
		},
	}

	engine := gin.New()
	NewRouter(cfg, &db.DB{DB: gdb}, nil).SetupRoutes(engine)
	return engine
}

func TestHealthHandlerReportsEachStore(t *testing.T) {
	engine := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode health body: %v", err)
	}

	if body["status"] != "OK" {
		t.Errorf("Expected overall status OK, got %q", body["status"])
	}
	if body["database"] != "UP" {
		t.Errorf("Expected database UP, got %q", body["database"])
	}
	// Unconfigured redis reports as disabled without failing the check
	if body["redis"] != "disabled" {
		t.Errorf("Expected redis disabled, got %q", body["redis"])
	}
}
