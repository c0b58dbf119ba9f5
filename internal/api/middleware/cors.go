package middleware

import (
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// OriginList is the set of origins allowed by CORS. It can be replaced while
// the server runs when the config file changes.
type OriginList struct {
	mu      sync.RWMutex
	origins []string
}

func NewOriginList(origins []string) *OriginList {
	l := &OriginList{}
	l.Set(origins)

	return l
}

func (l *OriginList) Set(origins []string) {
	cleaned := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			cleaned = append(cleaned, o)
		}
	}

	l.mu.Lock()
	l.origins = cleaned
	l.mu.Unlock()
}

func (l *OriginList) Allowed(origin string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, o := range l.origins {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}

	return false
}

func ConfigCORS(origins *OriginList) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc:  origins.Allowed,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
