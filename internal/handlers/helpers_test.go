package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"GroceryWise/internal/auth"
	"GroceryWise/internal/config"
	"GroceryWise/internal/handlers"
	"GroceryWise/internal/repo"
	"GroceryWise/internal/service"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testServer struct {
	router http.Handler
	tokens *auth.TokenService
	db     *gorm.DB
}

// newTestServer поднимает полный роутер поверх именованной in-memory SQLite.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := repo.InitDB("file:handlers_" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	logger := zap.NewNop().Sugar()
	cfg := &config.Config{
		ProjectName: "GroceryWise API",
		APIPrefix:   "/api/v1",
		AuthSecret:  "test-secret",
		CORSOrigins: []string{"http://localhost"},
	}
	tokens := auth.NewTokenService(cfg.AuthSecret, 30*time.Minute)
	userSvc := service.NewUserService(repo.NewUserRepository(db), auth.NewHasher(4))
	grocerySvc := service.NewGroceryService(repo.NewGroceryRepository(db), logger)

	h := handlers.NewHandler(userSvc, grocerySvc, tokens, logger, cfg)
	return &testServer{router: h.Router, tokens: tokens, db: db}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func (s *testServer) register(t *testing.T, email, password string) map[string]any {
	t.Helper()
	rr := s.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decodeMap(t, rr)
}

func (s *testServer) login(t *testing.T, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"username": {email}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func (s *testServer) token(t *testing.T, email, password string) string {
	t.Helper()
	rr := s.login(t, email, password)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	tok, _ := decodeMap(t, rr)["access_token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

func decodeMap(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &m), rr.Body.String())
	return m
}

func decodeList(t *testing.T, rr *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var l []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &l), rr.Body.String())
	return l
}
