package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/yigyaps/yigyaps/internal/db"
	"github.com/yigyaps/yigyaps/internal/handlers"
	"github.com/yigyaps/yigyaps/internal/logger"
	"github.com/yigyaps/yigyaps/internal/middleware"
	"github.com/yigyaps/yigyaps/internal/repos"
	"github.com/yigyaps/yigyaps/internal/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := db.NewSQLite("file::memory:")
	require.NoError(t, err)
	log := logger.NewNop()

	userRepo := repos.NewUserRepo(gdb, log)
	apiKeyRepo := repos.NewApiKeyRepo(gdb, log)
	packageRepo := repos.NewPackageRepo(gdb, log)
	installRepo := repos.NewInstallationRepo(gdb, log)
	reviewRepo := repos.NewReviewRepo(gdb, log)
	mintRepo := repos.NewMintRepo(gdb, log)
	royaltyRepo := repos.NewRoyaltyRepo(gdb, log)

	auth := services.NewAuthService(gdb, log, userRepo, apiKeyRepo, "test-secret", time.Hour, 24*time.Hour)
	user := services.NewUserService(gdb, log, userRepo, nil)
	catalog := services.NewCatalogService(gdb, log, packageRepo, reviewRepo, userRepo)
	install := services.NewInstallService(gdb, log, packageRepo, installRepo, royaltyRepo, userRepo)
	review := services.NewReviewService(gdb, log, reviewRepo, packageRepo, catalog)
	mint := services.NewMintService(gdb, log, mintRepo, packageRepo, royaltyRepo, userRepo)
	royalty := services.NewRoyaltyService(gdb, log, royaltyRepo)

	return NewRouter(RouterConfig{
		ServiceName:         "yigyaps-test",
		AuthMiddleware:      middleware.RequireAuth(log, auth),
		AuthHandler:         handlers.NewAuthHandler(log, auth),
		UserHandler:         handlers.NewUserHandler(log, user),
		PackageHandler:      handlers.NewPackageHandler(log, catalog),
		ReviewHandler:       handlers.NewReviewHandler(log, review),
		InstallationHandler: handlers.NewInstallationHandler(log, install),
		MintHandler:         handlers.NewMintHandler(log, mint),
		RoyaltyHandler:      handlers.NewRoyaltyHandler(log, royalty),
		DiscoveryHandler: handlers.NewDiscoveryHandler(log, handlers.RegistryInfo{
			Name:        "yigyaps-test",
			Description: "test registry",
			URL:         "http://localhost:8080",
			Version:     "1.0.0",
		}),
		HealthcheckHandler: handlers.NewHealthcheckHandler(log, gdb),
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path, bearer string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded), "body: %s", w.Body.String())
	}
	return w, decoded
}

func login(t *testing.T, router *gin.Engine, username string) (token, apiKey string) {
	t.Helper()
	w, body := doJSON(t, router, http.MethodPost, "/v1/auth/login", "", map[string]any{
		"username": username,
		"password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return body["token"].(string), body["apiKey"].(string)
}

func publishBody(packageID string) map[string]any {
	return map[string]any{
		"packageId":    packageID,
		"version":      "1.0.0",
		"displayName":  "Echo Tool",
		"description":  "Echoes its input back.",
		"authorName":   "tester",
		"license":      "open-source",
		"category":     "utilities",
		"mcpTransport": "stdio",
		"mcpCommand":   "npx",
		"mcpArgs":      []string{"-y", "echo-server"},
	}
}

func TestPublishAndFetchFlow(t *testing.T) {
	router := newTestRouter(t)
	token, _ := login(t, router, "author")

	w, created := doJSON(t, router, http.MethodPost, "/v1/packages", token, publishBody("echo"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Equal(t, "echo", created["packageId"])
	require.Equal(t, "1.0.0", created["version"])
	// Unrated packages expose an explicit null mean.
	mean, present := created["ratingMean"]
	require.True(t, present)
	require.Nil(t, mean)

	w, fetched := doJSON(t, router, http.MethodGet, "/v1/packages/by-name/echo", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, created["id"], fetched["id"])

	w, page := doJSON(t, router, http.MethodGet, "/v1/packages?q=echo", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.EqualValues(t, 1, page["total"])
	require.EqualValues(t, 20, page["limit"])
	data := page["data"].([]any)
	require.Len(t, data, 1)
}

func TestErrorEnvelopeShape(t *testing.T) {
	router := newTestRouter(t)

	w, body := doJSON(t, router, http.MethodGet, "/v1/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "UNAUTHENTICATED", body["code"])
	require.NotEmpty(t, body["error"])

	token, _ := login(t, router, "author")
	bad := publishBody("echo")
	bad["version"] = "not-semver"
	w, body = doJSON(t, router, http.MethodPost, "/v1/packages", token, bad)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "VALIDATION", body["code"])

	w, body = doJSON(t, router, http.MethodGet, "/v1/packages/by-name/nope", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "NOT_FOUND", body["code"])
}

func TestInstallStatusCodes(t *testing.T) {
	router := newTestRouter(t)
	authorToken, _ := login(t, router, "author")
	installerToken, _ := login(t, router, "installer")

	w, created := doJSON(t, router, http.MethodPost, "/v1/packages", authorToken, publishBody("echo"))
	require.Equal(t, http.StatusCreated, w.Code)
	pkgID := created["id"].(string)

	installReq := map[string]any{"packageId": pkgID, "agentId": "agent-1"}
	w, first := doJSON(t, router, http.MethodPost, "/v1/installations", installerToken, installReq)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, second := doJSON(t, router, http.MethodPost, "/v1/installations", installerToken, installReq)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, first["id"], second["id"])

	w, page := doJSON(t, router, http.MethodGet, "/v1/installations", installerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.EqualValues(t, 1, page["total"])
}

func TestApiKeyHeaderFallback(t *testing.T) {
	router := newTestRouter(t)
	_, apiKey := login(t, router, "keyed")

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	req.Header.Set("X-API-Key", apiKey)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var me map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	require.Equal(t, "keyed", me["username"])
	// The password hash never serializes.
	_, leaked := me["passwordHash"]
	require.False(t, leaked)
}

func TestDiscoveryAndHealth(t *testing.T) {
	router := newTestRouter(t)

	w, body := doJSON(t, router, http.MethodGet, "/.well-known/mcp.json", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	registries := body["registries"].([]any)
	require.Len(t, registries, 1)
	first := registries[0].(map[string]any)
	require.Equal(t, "yigyaps-test", first["name"])
	require.Equal(t, "1.0.0", first["version"])

	w, body = doJSON(t, router, http.MethodGet, "/healthcheck", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", body["status"])
}

func TestReviewEndpoints(t *testing.T) {
	router := newTestRouter(t)
	authorToken, _ := login(t, router, "author")
	reviewerToken, _ := login(t, router, "reviewer")

	w, created := doJSON(t, router, http.MethodPost, "/v1/packages", authorToken, publishBody("echo"))
	require.Equal(t, http.StatusCreated, w.Code)
	pkgID := created["id"].(string)

	reviewPath := fmt.Sprintf("/v1/packages/%s/reviews", pkgID)
	w, _ = doJSON(t, router, http.MethodPost, reviewPath, reviewerToken, map[string]any{"rating": 5, "title": "great"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, body := doJSON(t, router, http.MethodPost, reviewPath, reviewerToken, map[string]any{"rating": 1})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "CONFLICT", body["code"])

	w, page := doJSON(t, router, http.MethodGet, reviewPath, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.EqualValues(t, 1, page["total"])

	w, pkg := doJSON(t, router, http.MethodGet, "/v1/packages/"+pkgID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.EqualValues(t, 5, pkg["ratingMean"])
	require.EqualValues(t, 1, pkg["ratingCount"])
}
