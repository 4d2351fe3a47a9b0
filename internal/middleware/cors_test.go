package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestCORS_AllowAllWhenListEmpty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("GET", "/api/v1/health", nil)

	CORS(nil)(c)

	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	// no auth on this surface, so the header set stays minimal
	require.NotContains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestCORS_AllowlistMatchesOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("GET", "/api/v1/health", nil)
	c.Request.Header.Set("Origin", "https://panel.local")

	CORS([]string{"https://panel.local"})(c)

	require.Equal(t, "https://panel.local", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "Origin", rec.Header().Get("Vary"))
}

func TestCORS_AllowlistRejectsUnknownOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("GET", "/api/v1/health", nil)
	c.Request.Header.Set("Origin", "https://evil.local")

	CORS([]string{"https://panel.local"})(c)

	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("OPTIONS", "/api/v1/vault/sync", nil)

	CORS(nil)(c)

	require.True(t, c.IsAborted())
	require.Equal(t, 204, rec.Code)
}
