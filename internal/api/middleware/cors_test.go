package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestOriginList(t *testing.T) {
	l := NewOriginList([]string{" https://shower.example/ ", ""})
	assert.True(t, l.Allowed("https://shower.example"))
	assert.True(t, l.Allowed("HTTPS://SHOWER.EXAMPLE"))
	assert.False(t, l.Allowed("https://evil.example"))

	l.Set([]string{"*"})
	assert.True(t, l.Allowed("https://evil.example"))
}

func TestConfigCORS_Preflight(t *testing.T) {
	origins := NewOriginList([]string{"https://shower.example"})
	r := gin.New()
	r.Use(ConfigCORS(origins))
	r.PUT("/api/v1/votes/me", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/votes/me", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPut)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	rec := preflight("https://shower.example")
	assert.Equal(t, "https://shower.example", rec.Header().Get("Access-Control-Allow-Origin"))

	origins.Set([]string{"https://other.example"})
	rec = preflight("https://shower.example")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
