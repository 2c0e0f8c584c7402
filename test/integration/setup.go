//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"go-calc-api/internal/auth"
	"go-calc-api/internal/config"
	"go-calc-api/internal/database"
	"go-calc-api/internal/handler"
	"go-calc-api/internal/middleware"
	"go-calc-api/internal/repository"
	"go-calc-api/internal/router"
	"go-calc-api/internal/service"
)

type testApp struct {
	Server *httptest.Server
	DB     *database.DB
	Redis  *miniredis.Miniredis
	Tokens *auth.TokenService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("calcapi"),
		postgres.WithUsername("calcapi"),
		postgres.WithPassword("calcapi"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.New(ctx, connStr, 5, 1)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.EnsureSchema(ctx))

	redisServer := miniredis.RunT(t)
	blacklist := auth.NewRedisBlacklist("redis://" + redisServer.Addr())
	t.Cleanup(func() { _ = blacklist.Close() })

	cfg := &config.Config{
		ServerPort:              "8080",
		ServerReadHeaderTimeout: 15 * time.Second,
		ServerWriteTimeout:      30 * time.Second,
		ServerIdleTimeout:       120 * time.Second,
		RequestTimeout:          30 * time.Second,
		JWTSecret:               "test-secret",
		JWTAccessTTL:            15 * time.Minute,
		JWTRefreshTTL:           24 * time.Hour,
		BcryptCost:              4,
		CORSOrigins:             []string{"*"},
		RateLimitRPM:            10000,
		AuthRateLimitRPM:        10000,
	}

	userRepo := repository.NewUserRepository(db.Pool)
	calculationRepo := repository.NewCalculationRepository(db.Pool)

	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL, blacklist)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	authService := service.NewAuthService(userRepo, hasher, tokenService)
	calculationService := service.NewCalculationService(calculationRepo)

	authMiddleware := middleware.NewAuthMiddleware(tokenService, authService.Resolver())
	appRouter := router.New(cfg, db, authMiddleware,
		handler.NewAuthHandler(authService),
		handler.NewCalculationHandler(calculationService))

	server := httptest.NewServer(appRouter)
	t.Cleanup(server.Close)

	return &testApp{Server: server, DB: db, Redis: redisServer, Tokens: tokenService}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type tokenPairData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	User         struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
}

func (a *testApp) do(t *testing.T, method string, path string, body any, accessToken string) (*http.Response, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, a.Server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var parsed envelope
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	}

	return resp, parsed
}

func (a *testApp) register(t *testing.T, username string) {
	t.Helper()

	resp, _ := a.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"first_name":       "Test",
		"last_name":        "User",
		"email":            username + "@example.com",
		"username":         username,
		"password":         "SecurePass123!",
		"confirm_password": "SecurePass123!",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func (a *testApp) login(t *testing.T, username string) tokenPairData {
	t.Helper()

	resp, parsed := a.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": username,
		"password": "SecurePass123!",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var pair tokenPairData
	require.NoError(t, json.Unmarshal(parsed.Data, &pair))
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	return pair
}
