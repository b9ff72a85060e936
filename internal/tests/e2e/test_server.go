package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	httpx "github.com/Ohuru-Tech/authkit/internal/http"
	"github.com/Ohuru-Tech/authkit/internal/http/handlers"
	"github.com/Ohuru-Tech/authkit/internal/http/middleware"
	"github.com/Ohuru-Tech/authkit/internal/infrastructure/audit"
	"github.com/Ohuru-Tech/authkit/internal/infrastructure/auth"
	"github.com/Ohuru-Tech/authkit/internal/infrastructure/notifications"
	"github.com/Ohuru-Tech/authkit/internal/infrastructure/repositories"
	"github.com/Ohuru-Tech/authkit/internal/metrics"
	"github.com/Ohuru-Tech/authkit/internal/services"
)

// TestServer hosts the full HTTP stack over in-memory backends: SQLite for
// users, miniredis for verification tokens. Only the SMTP mailer is swapped
// for the console backend.
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	Redis  *miniredis.Miniredis
	Client *http.Client
}

// newTestServer wires the real services behind the router, so requests
// exercise the same code paths as production.
func newTestServer(t *testing.T, opts services.Options) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&repositories.DBUser{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	tokenSvc, err := auth.NewJWTService("e2e-test-secret", "HS256", "authkit", "authkit-clients", 30*time.Minute, 720*time.Hour)
	if err != nil {
		t.Fatalf("failed to create token service: %v", err)
	}

	logger := zap.NewNop()
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	authSvc := services.NewAuthService(
		repositories.NewUserRepository(db),
		auth.NewPasswordService(),
		tokenSvc,
		repositories.NewVerificationRepository(redisClient, time.Hour),
		notifications.NewConsoleMailer(logger, "http://localhost/auth/verify"),
		audit.NewZapAuditLogger(logger),
		collector,
		opts,
	)

	router := httpx.BuildRouter(
		handlers.NewAuthHandlers(authSvc),
		middleware.NewAuthMW(tokenSvc, collector),
		logger,
		registry,
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{
		Server: server,
		DB:     db,
		Redis:  mr,
		Client: server.Client(),
	}
}

// postJSON sends a JSON body and decodes the response envelope.
func (ts *TestServer) postJSON(t *testing.T, path string, body any, bearer string) (int, map[string]any) {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+path, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	return ts.do(t, req)
}

// getJSON issues a GET and decodes the response envelope.
func (ts *TestServer) getJSON(t *testing.T, path, bearer string) (int, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.Server.URL+path, nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	return ts.do(t, req)
}

func (ts *TestServer) do(t *testing.T, req *http.Request) (int, map[string]any) {
	t.Helper()

	resp, err := ts.Client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var parsed map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return resp.StatusCode, parsed
}

// pendingVerificationToken returns the single outstanding verification token
// stored in Redis, reading it the way the verification repository writes it.
func (ts *TestServer) pendingVerificationToken(t *testing.T) string {
	t.Helper()

	var tokens []string
	for _, key := range ts.Redis.Keys() {
		if strings.HasPrefix(key, "verify:") {
			tokens = append(tokens, strings.TrimPrefix(key, "verify:"))
		}
	}
	if len(tokens) != 1 {
		t.Fatalf("expected exactly one pending verification token, got %d", len(tokens))
	}
	return tokens[0]
}

// dataField digs the named field out of the response's data envelope.
func dataField(t *testing.T, body map[string]any, field string) string {
	t.Helper()

	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("response has no data envelope: %v", body)
	}
	value, ok := data[field].(string)
	if !ok {
		t.Fatalf("data.%s is not a string: %v", field, data[field])
	}
	return value
}
