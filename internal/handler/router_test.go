package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/deckbw/bwbridge/internal/bw"
	"github.com/deckbw/bwbridge/internal/config"
	"github.com/deckbw/bwbridge/internal/credstore"
	"github.com/deckbw/bwbridge/internal/handler"
	"github.com/deckbw/bwbridge/internal/service"
)

type stubLocator struct {
	path string
}

func (s stubLocator) EnsureCLI(ctx context.Context) (string, error) {
	return s.path, nil
}

func setupRouter(t *testing.T, script string, mutateWindow time.Duration) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	binPath := filepath.Join(t.TempDir(), "bw")
	require.NoError(t, os.WriteFile(binPath, []byte("#!/bin/sh\n"+script), 0o755))
	locator := stubLocator{path: binPath}
	runner := bw.NewRunner(locator)
	creds := credstore.New(t.TempDir())

	vaultService := service.NewVaultService(runner, creds)
	itemService := service.NewItemService(runner, creds, 16, time.Minute)
	vaultService.OnSync(itemService.InvalidateCache)

	deps := handler.RouterDeps{
		Setup:        handler.NewSetupHandler(locator),
		Vault:        handler.NewVaultHandler(vaultService),
		Items:        handler.NewItemHandler(itemService),
		Sends:        handler.NewSendHandler(service.NewSendService(runner, creds)),
		Tools:        handler.NewToolHandler(service.NewToolService(runner, creds)),
		Serve:        handler.NewServeHandler(service.NewServeService(locator, config.ServeConfig{Port: 8087, Hostname: "localhost"})),
		MutateWindow: mutateWindow,
	}

	engine := gin.New()
	handler.RegisterRoutes(engine.Group("/api/v1"), deps)
	return engine
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestHealth(t *testing.T) {
	router := setupRouter(t, "exit 0\n", 0)
	rec := doRequest(t, router, http.MethodGet, "/api/v1/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "ok")
}

func TestInstallCLIReturnsPath(t *testing.T) {
	router := setupRouter(t, "exit 0\n", 0)
	rec := doRequest(t, router, http.MethodPost, "/api/v1/cli/install", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "bw")
}

func TestVaultStatusWithoutBody(t *testing.T) {
	script := `printf '{"serverUrl":null,"lastSync":null,"userEmail":null,"userId":null,"status":"unauthenticated"}'` + "\n"
	router := setupRouter(t, script, 0)
	rec := doRequest(t, router, http.MethodPost, "/api/v1/vault/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `"success":true`)
	require.Contains(t, body, "unauthenticated")
}

func TestItemsListRequiresEntity(t *testing.T) {
	router := setupRouter(t, "echo '[]'\n", 0)
	rec := doRequest(t, router, http.MethodPost, "/api/v1/items/list", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "entity required")
}

func TestItemsListPassesThrough(t *testing.T) {
	router := setupRouter(t, `echo '[{"id":"item-1"}]'`+"\n", 0)
	rec := doRequest(t, router, http.MethodPost, "/api/v1/items/list", `{"entity":"items","search":"github"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `"success":true`)
	require.Contains(t, body, "item-1")
}

func TestItemsGetFailurePassesReturnCode(t *testing.T) {
	router := setupRouter(t, "echo 'Not found.' >&2\nexit 1\n", 0)
	rec := doRequest(t, router, http.MethodPost, "/api/v1/items/get", `{"entity":"item","id":"missing"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `"success":false`)
	require.Contains(t, body, `"returncode":1`)
	require.Contains(t, body, "Not found.")
}

func TestSendsReceiveRequiresURL(t *testing.T) {
	router := setupRouter(t, "exit 0\n", 0)
	rec := doRequest(t, router, http.MethodPost, "/api/v1/sends/receive", `{}`)
	require.Contains(t, rec.Body.String(), "url required")
}

func TestToolsEncodePipesInput(t *testing.T) {
	// the stub echoes stdin back, standing in for `bw encode`
	router := setupRouter(t, "cat\n", 0)
	rec := doRequest(t, router, http.MethodPost, "/api/v1/tools/encode", `{"input":"{\"name\":\"x\"}"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `name`)
}

func TestMutateRateLimit(t *testing.T) {
	router := setupRouter(t, "exit 0\n", time.Minute)
	first := doRequest(t, router, http.MethodPost, "/api/v1/vault/sync", "")
	require.Contains(t, first.Body.String(), `"success":true`)
	second := doRequest(t, router, http.MethodPost, "/api/v1/vault/sync", "")
	require.NotContains(t, second.Body.String(), `"success":true`)

	// other routes have their own window
	other := doRequest(t, router, http.MethodPost, "/api/v1/items/create", `{"entity":"item","encoded_json":"e30="}`)
	require.Contains(t, other.Body.String(), `"success":true`)
}

func TestServeStatusDefaultsToStopped(t *testing.T) {
	router := setupRouter(t, "exit 0\n", 0)
	rec := doRequest(t, router, http.MethodGet, "/api/v1/serve/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"running":false`)
}

func TestVaultCredentialsLifecycle(t *testing.T) {
	script := "echo 'You are logged in!'\n" +
		"echo '$ export BW_SESSION=\"tok123==\"'\n"
	router := setupRouter(t, script, 0)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/vault/login",
		`{"email":"user@example.com","password":"hunter2","remember_password":true}`)
	require.Contains(t, rec.Body.String(), `"success":true`)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/vault/credentials", "")
	body := rec.Body.String()
	require.Contains(t, body, "user@example.com")
	require.Contains(t, body, `"has_password":true`)
	require.Contains(t, body, `"has_session":true`)
	// secrets never leave the store through this route
	require.NotContains(t, body, "hunter2")
	require.NotContains(t, body, "tok123==")

	rec = doRequest(t, router, http.MethodPost, "/api/v1/vault/credentials/clear", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/vault/credentials", "")
	require.Contains(t, rec.Body.String(), `"has_session":false`)
}
